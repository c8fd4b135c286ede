// Package linter models validation messages produced for an extension
// version and indexes them by file line.
package linter

import (
	"sort"
	"strings"
)

// Severity is the urgency tier of a linter message.
// Values are ordered so that a larger value is more severe.
type Severity int

const (
	SeverityOther Severity = iota // Unknown or future types
	SeverityNotice
	SeverityWarning
	SeverityError
)

// ParseSeverity maps a message type to a Severity.
// Anything that is not error, warning or notice is SeverityOther.
func ParseSeverity(t string) Severity {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "error":
		return SeverityError
	case "warning":
		return SeverityWarning
	case "notice":
		return SeverityNotice
	default:
		return SeverityOther
	}
}

// String returns the message type name for the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNotice:
		return "notice"
	default:
		return "other"
	}
}

// MoreSevereThan reports whether s outranks o.
func (s Severity) MoreSevereThan(o Severity) bool {
	return s > o
}

// Message is a single validation message.
type Message struct {
	UID         string   // Stable identifier, used to key rendered rows
	Type        string   // Raw type as reported: "error", "warning", "notice", ...
	Code        string   // Linter rule code, e.g. "UNSAFE_VAR_ASSIGNMENT"
	File        string   // Path of the file inside the version
	Line        int      // 1-indexed line, 0 for file-level messages
	Column      int      // 1-indexed column, 0 when unknown
	Heading     string   // Short message, may contain HTML entities
	Description []string // Description lines, may contain HTML entities and URLs
}

// Severity returns the parsed severity of the message type.
func (m Message) Severity() Severity {
	return ParseSeverity(m.Type)
}

// MostSevere returns the most severe message.
// Ties keep the first message in iteration order. ok is false when msgs is empty.
func MostSevere(msgs []Message) (msg Message, ok bool) {
	for i, m := range msgs {
		if i == 0 || m.Severity().MoreSevereThan(msg.Severity()) {
			msg = m
		}
	}
	return msg, len(msgs) > 0
}

// FindMostSevereType returns the highest severity present in msgs.
// An empty list yields SeverityOther.
func FindMostSevereType(msgs []Message) Severity {
	m, ok := MostSevere(msgs)
	if !ok {
		return SeverityOther
	}
	return m.Severity()
}

// SortByLine orders messages by line, then column, keeping input order for ties.
func SortByLine(msgs []Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].Line != msgs[j].Line {
			return msgs[i].Line < msgs[j].Line
		}
		return msgs[i].Column < msgs[j].Column
	})
}
