package linter

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const amoReport = `{
  "validation": {
    "messages": [
      {
        "uid": "u1",
        "type": "error",
        "id": ["testcases_scripting", "dangerous"],
        "file": "background.js",
        "line": 12,
        "column": 4,
        "message": "Unsafe assignment to innerHTML",
        "description": ["Due to both security and performance concerns &amp; more.", "See https://mzl.la/2hFRUWJ"]
      },
      {
        "uid": "u2",
        "type": "notice",
        "file": "manifest.json",
        "line": null,
        "message": "Unknown key",
        "description": "single string\nsecond line"
      }
    ]
  }
}`

const linterReport = `{
  "count": 2,
  "errors": [],
  "warnings": [
    {"_type": "warning", "code": "UNSAFE_VAR_ASSIGNMENT", "message": "Unsafe", "file": "./content/main.js", "line": 3, "column": 1, "description": ["d"]}
  ],
  "notices": [
    {"code": "NOTICE_X", "message": "n", "file": "content/main.js", "line": 8}
  ]
}`

func TestParseResultAMOFormat(t *testing.T) {
	r, err := ParseResult(strings.NewReader(amoReport))
	require.NoError(t, err)
	require.Len(t, r.Messages, 2)

	first := r.Messages[0]
	assert.Equal(t, "u1", first.UID)
	assert.Equal(t, SeverityError, first.Severity())
	assert.Equal(t, "testcases_scripting.dangerous", first.Code)
	assert.Equal(t, "background.js", first.File)
	assert.Equal(t, 12, first.Line)
	assert.Equal(t, 4, first.Column)
	assert.Len(t, first.Description, 2)

	second := r.Messages[1]
	assert.Zero(t, second.Line)
	assert.Equal(t, []string{"single string", "second line"}, second.Description)
}

func TestParseResultLinterFormat(t *testing.T) {
	r, err := ParseResult(strings.NewReader(linterReport))
	require.NoError(t, err)
	require.Len(t, r.Messages, 2)

	assert.Equal(t, "warning", r.Messages[0].Type)
	assert.Equal(t, "notice", r.Messages[1].Type, "type comes from the list name")
	assert.Equal(t, "content/main.js", r.Messages[0].File, "paths are cleaned")
	assert.NotEmpty(t, r.Messages[1].UID, "missing uids are synthesized")

	again, err := ParseResult(strings.NewReader(linterReport))
	require.NoError(t, err)
	assert.Equal(t, r.Messages[1].UID, again.Messages[1].UID, "synthesized uids are stable")

	m := r.ForPath("content/main.js")
	assert.Equal(t, []int{3, 8}, m.Lines())
}

func TestParseResultInvalid(t *testing.T) {
	_, err := ParseResult(strings.NewReader("{"))
	assert.Error(t, err)
}

func TestResultSummary(t *testing.T) {
	r, err := ParseResult(strings.NewReader(amoReport))
	require.NoError(t, err)

	s := r.Summary()
	assert.Equal(t, 1, s.Errors)
	assert.Equal(t, 1, s.Notices)
	assert.Zero(t, s.Warnings)
}

func TestProviderSelected(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "validation.json"), []byte(amoReport), 0o644))

	p := NewProvider(dir)
	v := Version{ID: 7, ValidationURL: "validation.json", SelectedPath: "background.js"}

	m, err := p.Selected(context.Background(), v)
	require.NoError(t, err)
	assert.Len(t, m.ForLine(12), 1)

	// Cached: removing the file does not matter any more.
	require.NoError(t, os.Remove(filepath.Join(dir, "validation.json")))
	m, err = p.Selected(context.Background(), Version{ID: 7, ValidationURL: "validation.json", SelectedPath: "manifest.json"})
	require.NoError(t, err)
	assert.Len(t, m.Global, 1)
}

func TestProviderFileURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "v.json")
	require.NoError(t, os.WriteFile(path, []byte(linterReport), 0o644))

	p := NewProvider("")
	r, err := p.Result(context.Background(), Version{ID: 1, ValidationURL: "file://" + filepath.ToSlash(path)})
	require.NoError(t, err)
	assert.Len(t, r.Messages, 2)
}

func TestProviderRejectsRemote(t *testing.T) {
	p := NewProvider(t.TempDir())
	_, err := p.Result(context.Background(), Version{ID: 1, ValidationURL: "https://addons.example/validation/1"})
	assert.ErrorIs(t, err, ErrRemoteValidation)
}

func TestProviderWithoutReport(t *testing.T) {
	p := NewProvider(t.TempDir())
	m, err := p.Selected(context.Background(), Version{ID: 3, SelectedPath: "a.js"})
	require.NoError(t, err)
	assert.Zero(t, m.Len())
}

func TestProviderLoad(t *testing.T) {
	p := NewProvider("")
	_, err := p.Load(9, strings.NewReader(linterReport))
	require.NoError(t, err)

	r, err := p.Result(context.Background(), Version{ID: 9, ValidationURL: "ignored.json"})
	require.NoError(t, err)
	assert.Len(t, r.Messages, 2)
}
