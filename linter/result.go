package linter

import (
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// uidNamespace seeds synthesized message uids.
var uidNamespace = uuid.MustParse("6f1c2a8e-3b7d-4c39-9a52-1d0e8f4b7c21")

// Result is a parsed validation report for one version.
type Result struct {
	Messages []Message
}

// Summary counts messages per severity across all files.
type Summary struct {
	Errors   int
	Warnings int
	Notices  int
	Other    int
}

// rawMessage mirrors one message in a validation report.
// Both the AMO validation format and the raw addons-linter format are accepted.
type rawMessage struct {
	UID         string          `json:"uid"`
	Type        string          `json:"type"`
	AltType     string          `json:"_type"`
	ID          json.RawMessage `json:"id"`
	Code        string          `json:"code"`
	File        *string         `json:"file"`
	Line        *int            `json:"line"`
	Column      *int            `json:"column"`
	Message     string          `json:"message"`
	Description description     `json:"description"`
}

// description accepts either a string or a list of strings.
type description []string

func (d *description) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = nil
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*d = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("description: %w", err)
	}
	*d = strings.Split(s, "\n")
	return nil
}

type rawReport struct {
	Validation *struct {
		Messages []rawMessage `json:"messages"`
	} `json:"validation"`
	Messages []rawMessage `json:"messages"`
	Errors   []rawMessage `json:"errors"`
	Warnings []rawMessage `json:"warnings"`
	Notices  []rawMessage `json:"notices"`
}

// ParseResult decodes a validation report.
func ParseResult(r io.Reader) (*Result, error) {
	var report rawReport
	if err := json.NewDecoder(r).Decode(&report); err != nil {
		return nil, fmt.Errorf("decode validation report: %w", err)
	}

	var raw []rawMessage
	if report.Validation != nil {
		raw = append(raw, report.Validation.Messages...)
	}
	raw = append(raw, report.Messages...)
	raw = append(raw, withType(report.Errors, "error")...)
	raw = append(raw, withType(report.Warnings, "warning")...)
	raw = append(raw, withType(report.Notices, "notice")...)

	result := &Result{Messages: make([]Message, 0, len(raw))}
	for i, rm := range raw {
		result.Messages = append(result.Messages, rm.toMessage(i))
	}
	return result, nil
}

func withType(msgs []rawMessage, t string) []rawMessage {
	for i := range msgs {
		if msgs[i].Type == "" && msgs[i].AltType == "" {
			msgs[i].Type = t
		}
	}
	return msgs
}

func (rm rawMessage) toMessage(index int) Message {
	msg := Message{
		UID:         rm.UID,
		Type:        rm.Type,
		Code:        rm.Code,
		Heading:     rm.Message,
		Description: []string(rm.Description),
	}
	if msg.Type == "" {
		msg.Type = rm.AltType
	}
	if msg.Code == "" {
		msg.Code = rawID(rm.ID)
	}
	if rm.File != nil {
		msg.File = normalizePath(*rm.File)
	}
	if rm.Line != nil {
		msg.Line = *rm.Line
	}
	if rm.Column != nil {
		msg.Column = *rm.Column
	}
	if msg.UID == "" {
		// Stable across reloads of the same report.
		key := strconv.Itoa(index) + "\x00" + msg.Code + "\x00" + msg.File + "\x00" + strconv.Itoa(msg.Line)
		msg.UID = uuid.NewSHA1(uidNamespace, []byte(key)).String()
	}
	return msg
}

// rawID flattens the AMO "id" list (e.g. ["testcases_scripting", "x"]) to a code.
func rawID(data json.RawMessage) string {
	if len(data) == 0 {
		return ""
	}
	var parts []string
	if err := json.Unmarshal(data, &parts); err == nil {
		return strings.Join(parts, ".")
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	return ""
}

func normalizePath(p string) string {
	if p == "" {
		return ""
	}
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}

// ForPath returns the message map for one file of the version.
func (r *Result) ForPath(p string) *MessageMap {
	if r == nil {
		return NewMessageMap(nil)
	}
	p = normalizePath(p)
	var msgs []Message
	for _, msg := range r.Messages {
		if msg.File == p {
			msgs = append(msgs, msg)
		}
	}
	return NewMessageMap(msgs)
}

// Summary counts the messages of the whole report.
func (r *Result) Summary() Summary {
	var s Summary
	if r == nil {
		return s
	}
	for _, msg := range r.Messages {
		switch msg.Severity() {
		case SeverityError:
			s.Errors++
		case SeverityWarning:
			s.Warnings++
		case SeverityNotice:
			s.Notices++
		default:
			s.Other++
		}
	}
	return s
}
