// Package encoding detects the character set of version files and decodes
// them to UTF-8 for display.
package encoding

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
)

// Charset is a character set the viewer can decode.
type Charset struct {
	Name    string            // Display name
	ID      string            // Internal identifier
	Decoder encoding.Encoding // x/text codec (nil for UTF-8)
	Aliases []string          // Names chardet may report
}

// Detection is the outcome of charset detection.
type Detection struct {
	Charset    *Charset
	Confidence int  // 0-100
	HasBOM     bool // A byte order mark was found
	Known      bool // Charset is one we can decode
}

// Charsets lists every charset that can be decoded.
var Charsets = []*Charset{
	{Name: "UTF-8", ID: "utf-8", Aliases: []string{"UTF-8", "utf8", "ascii", "US-ASCII"}},
	{Name: "UTF-8 BOM", ID: "utf-8-bom"},
	{Name: "UTF-16 LE", ID: "utf-16-le", Decoder: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), Aliases: []string{"UTF-16LE"}},
	{Name: "UTF-16 BE", ID: "utf-16-be", Decoder: unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), Aliases: []string{"UTF-16BE"}},
	{Name: "ISO-8859-1", ID: "iso-8859-1", Decoder: charmap.ISO8859_1, Aliases: []string{"latin1", "Latin-1"}},
	{Name: "Windows-1252", ID: "windows-1252", Decoder: charmap.Windows1252, Aliases: []string{"CP1252"}},
	{Name: "ISO-8859-15", ID: "iso-8859-15", Decoder: charmap.ISO8859_15, Aliases: []string{"latin9", "Latin-9"}},
	{Name: "Shift-JIS", ID: "shift-jis", Decoder: japanese.ShiftJIS, Aliases: []string{"Shift_JIS", "SJIS"}},
	{Name: "EUC-JP", ID: "euc-jp", Decoder: japanese.EUCJP},
	{Name: "GBK", ID: "gbk", Decoder: simplifiedchinese.GBK, Aliases: []string{"GB2312", "GB-2312"}},
	{Name: "GB18030", ID: "gb18030", Decoder: simplifiedchinese.GB18030},
	{Name: "EUC-KR", ID: "euc-kr", Decoder: korean.EUCKR},
}

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// binarySniffLen is how much of a file is checked for NUL bytes.
const binarySniffLen = 8000

// Lookup finds a charset by id, name or alias, case-insensitively.
func Lookup(name string) *Charset {
	for _, cs := range Charsets {
		if strings.EqualFold(cs.ID, name) || strings.EqualFold(cs.Name, name) {
			return cs
		}
		for _, alias := range cs.Aliases {
			if strings.EqualFold(alias, name) {
				return cs
			}
		}
	}
	return nil
}

// Detect guesses the charset of data. BOMs win, then valid UTF-8, then chardet.
func Detect(data []byte) Detection {
	switch {
	case bytes.HasPrefix(data, utf8BOM):
		return Detection{Charset: Lookup("utf-8-bom"), Confidence: 100, HasBOM: true, Known: true}
	case bytes.HasPrefix(data, utf16BEBOM):
		return Detection{Charset: Lookup("utf-16-be"), Confidence: 100, HasBOM: true, Known: true}
	case bytes.HasPrefix(data, utf16LEBOM):
		return Detection{Charset: Lookup("utf-16-le"), Confidence: 100, HasBOM: true, Known: true}
	case utf8.Valid(data):
		return Detection{Charset: Lookup("utf-8"), Confidence: 100, Known: true}
	}

	best, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || best == nil || strings.HasPrefix(strings.ToUpper(best.Charset), "UTF-8") {
		// Latin-1 decodes any byte sequence.
		return Detection{Charset: Lookup("iso-8859-1"), Confidence: 50, Known: true}
	}

	if cs := Lookup(best.Charset); cs != nil && cs.Decoder != nil {
		return Detection{Charset: cs, Confidence: best.Confidence, Known: true}
	}
	return Detection{
		Charset:    &Charset{Name: best.Charset, ID: strings.ToLower(best.Charset)},
		Confidence: best.Confidence,
	}
}

// IsBinary reports whether data looks like a binary file.
func IsBinary(data []byte) bool {
	if bytes.HasPrefix(data, utf16LEBOM) || bytes.HasPrefix(data, utf16BEBOM) {
		return false
	}
	n := len(data)
	if n > binarySniffLen {
		n = binarySniffLen
	}
	return bytes.IndexByte(data[:n], 0) >= 0
}

// Decode converts data in charset cs to UTF-8, dropping any BOM.
// A nil charset is treated as UTF-8.
func Decode(data []byte, cs *Charset) (string, error) {
	if cs == nil || cs.Decoder == nil {
		if cs != nil && cs.Decoder == nil && cs.ID != "utf-8" && cs.ID != "utf-8-bom" {
			return "", fmt.Errorf("unsupported charset %s", cs.Name)
		}
		return string(bytes.TrimPrefix(data, utf8BOM)), nil
	}

	switch cs.ID {
	case "utf-16-le":
		data = bytes.TrimPrefix(data, utf16LEBOM)
	case "utf-16-be":
		data = bytes.TrimPrefix(data, utf16BEBOM)
	}

	out, err := cs.Decoder.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", cs.Name, err)
	}
	return string(out), nil
}

// DecodeAuto detects the charset of data and decodes it.
// Unknown charsets fall back to Latin-1 so the file can still be shown.
func DecodeAuto(data []byte) (string, *Charset, error) {
	det := Detect(data)
	cs := det.Charset
	if !det.Known {
		cs = Lookup("iso-8859-1")
	}
	text, err := Decode(data, cs)
	if err != nil {
		return "", nil, err
	}
	return text, cs, nil
}
