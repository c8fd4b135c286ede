package linter

import "sort"

// MessageMap indexes the messages of one file by line.
// A nil *MessageMap behaves like an empty map.
type MessageMap struct {
	// Global holds messages that apply to the whole file.
	Global []Message
	// ByLine holds messages keyed by 1-indexed line.
	ByLine map[int][]Message
}

// NewMessageMap indexes msgs. Messages without a line go to Global.
func NewMessageMap(msgs []Message) *MessageMap {
	m := &MessageMap{ByLine: make(map[int][]Message)}
	for _, msg := range msgs {
		if msg.Line <= 0 {
			m.Global = append(m.Global, msg)
			continue
		}
		m.ByLine[msg.Line] = append(m.ByLine[msg.Line], msg)
	}
	return m
}

// ForLine returns the messages on line.
func (m *MessageMap) ForLine(line int) []Message {
	if m == nil {
		return nil
	}
	return m.ByLine[line]
}

// ForLines collects the messages of every listed line, in line order given.
func (m *MessageMap) ForLines(lines []int) []Message {
	if m == nil {
		return nil
	}
	var out []Message
	for _, line := range lines {
		out = append(out, m.ByLine[line]...)
	}
	return out
}

// Lines returns the lines that carry messages, ascending.
func (m *MessageMap) Lines() []int {
	if m == nil {
		return nil
	}
	lines := make([]int, 0, len(m.ByLine))
	for line, msgs := range m.ByLine {
		if len(msgs) > 0 {
			lines = append(lines, line)
		}
	}
	sort.Ints(lines)
	return lines
}

// Len returns the total number of messages, global ones included.
func (m *MessageMap) Len() int {
	if m == nil {
		return 0
	}
	n := len(m.Global)
	for _, msgs := range m.ByLine {
		n += len(msgs)
	}
	return n
}

// Counts returns the number of messages per severity.
func (m *MessageMap) Counts() map[Severity]int {
	counts := make(map[Severity]int)
	if m == nil {
		return counts
	}
	for _, msg := range m.Global {
		counts[msg.Severity()]++
	}
	for _, msgs := range m.ByLine {
		for _, msg := range msgs {
			counts[msg.Severity()]++
		}
	}
	return counts
}

// NextLine returns the first line with messages after line.
// It wraps around to the first such line; ok is false when there are none.
func (m *MessageMap) NextLine(line int) (next int, ok bool) {
	lines := m.Lines()
	if len(lines) == 0 {
		return 0, false
	}
	for _, l := range lines {
		if l > line {
			return l, true
		}
	}
	return lines[0], true
}

// PrevLine returns the last line with messages before line, wrapping around.
func (m *MessageMap) PrevLine(line int) (prev int, ok bool) {
	lines := m.Lines()
	if len(lines) == 0 {
		return 0, false
	}
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i] < line {
			return lines[i], true
		}
	}
	return lines[len(lines)-1], true
}
