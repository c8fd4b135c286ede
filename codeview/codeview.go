// Package codeview holds the navigation helpers shared by the code view and
// the overview: splitting content into lines and line anchors.
package codeview

import (
	"strconv"
	"strings"
)

// anchorPrefix starts every line anchor, e.g. "#L12".
const anchorPrefix = "#L"

// NoTarget is the anchor used by rows that link nowhere.
const NoTarget = "#"

// Lines splits content into lines.
// Empty content has no lines. A trailing "\r" is dropped from each line so
// files with CRLF endings render the same as LF ones.
func Lines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// LineAnchor returns the URL fragment for a 1-indexed line.
func LineAnchor(line int) string {
	return anchorPrefix + strconv.Itoa(line)
}

// ParseLineAnchor returns the line encoded in a LineAnchor fragment.
// The leading "#" is optional. ok is false for anything that is not a
// positive line anchor, including NoTarget.
func ParseLineAnchor(anchor string) (line int, ok bool) {
	anchor = strings.TrimPrefix(anchor, "#")
	if !strings.HasPrefix(anchor, "L") {
		return 0, false
	}
	n, err := strconv.Atoi(anchor[1:])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
