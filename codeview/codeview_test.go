package codeview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"empty", "", nil},
		{"single line", "a", []string{"a"}},
		{"four lines", "a\nb\nc\nd", []string{"a", "b", "c", "d"}},
		{"trailing newline", "a\n", []string{"a", ""}},
		{"crlf", "a\r\nb", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Lines(tt.content))
		})
	}
}

func TestLineAnchorRoundTrip(t *testing.T) {
	assert.Equal(t, "#L12", LineAnchor(12))

	line, ok := ParseLineAnchor(LineAnchor(12))
	assert.True(t, ok)
	assert.Equal(t, 12, line)

	line, ok = ParseLineAnchor("L3")
	assert.True(t, ok)
	assert.Equal(t, 3, line)
}

func TestParseLineAnchorRejects(t *testing.T) {
	for _, anchor := range []string{NoTarget, "", "#L", "#L0", "#L-2", "#Lx", "#main"} {
		_, ok := ParseLineAnchor(anchor)
		assert.False(t, ok, "anchor %q", anchor)
	}
}
