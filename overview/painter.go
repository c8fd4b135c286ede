package overview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cornish/revu/codeview"
	"github.com/cornish/revu/linter"
)

// Row is one painted overview row.
type Row struct {
	Index int
	Key   string // Stable identity: joined message uids for indicators, else the index

	Line   int    // Representative line; 0 for empty rows
	Target string // Line anchor, or codeview.NoTarget
	Title  string

	Height     int
	PaddingTop int

	HasIndicator bool
	Severity     linter.Severity
	Messages     []linter.Message

	Glyph *LineShape // nil when an indicator is shown or the row is empty
}

// Empty reports whether the row represents no lines.
func (r Row) Empty() bool {
	return r.Line == 0
}

// Paint renders one row group. A nil group gives an empty row; a group with
// linter messages on any of its lines gives a severity indicator instead of
// the representative line's glyph.
func Paint(rowIndex int, group *RowGroup, messages *linter.MessageMap, g Geometry) Row {
	row := Row{
		Index:      rowIndex,
		Key:        strconv.Itoa(rowIndex),
		Target:     codeview.NoTarget,
		Height:     g.LineHeight,
		PaddingTop: g.PaddingTop(rowIndex),
	}

	line, ok := group.Representative()
	if !ok {
		return row
	}

	row.Line = line
	row.Target = codeview.LineAnchor(line)
	row.Title = fmt.Sprintf("Jump to line %d", line)

	if msgs := messages.ForLines(group.Lines()); len(msgs) > 0 {
		uids := make([]string, len(msgs))
		for i, m := range msgs {
			uids[i] = m.UID
		}
		row.Key = strings.Join(uids, ":")
		row.HasIndicator = true
		row.Severity = linter.FindMostSevereType(msgs)
		row.Messages = msgs
		return row
	}

	shape := group.Shapes[0]
	row.Glyph = &shape
	return row
}
