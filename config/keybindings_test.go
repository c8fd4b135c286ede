package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultKeybindingsHaveNoConflicts(t *testing.T) {
	kb := DefaultKeybindings()
	if conflicts := kb.FindConflicts(); len(conflicts) != 0 {
		t.Errorf("default keybindings conflict: %v", conflicts)
	}
	for _, action := range AllActions() {
		if kb.GetBinding(action).Primary == "" {
			t.Errorf("action %q has no default key", action)
		}
		if ActionNames[action] == "" {
			t.Errorf("action %q has no display name", action)
		}
	}
}

func TestKeyBindingMatches(t *testing.T) {
	b := KeyBinding{Primary: "n", Alternate: "ctrl+G"}
	tests := []struct {
		key  string
		want bool
	}{
		{"n", true},
		{"N", false},
		{"ctrl+g", true},
		{"CTRL+G", true},
		{"g", false},
	}
	for _, tt := range tests {
		if got := b.Matches(tt.key); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
	if (KeyBinding{}).Matches("") {
		t.Error("empty binding should match nothing")
	}
}

func TestAction(t *testing.T) {
	kb := DefaultKeybindings()
	tests := map[string]string{
		"n":      "next_message",
		"N":      "prev_message",
		"G":      "bottom",
		"g":      "top",
		"ctrl+c": "quit",
		"v":      "version_chooser",
		"z":      "",
	}
	for key, want := range tests {
		if got := kb.Action(key); got != want {
			t.Errorf("Action(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestSetBinding(t *testing.T) {
	kb := DefaultKeybindings()
	kb.SetBinding("copy_link", KeyBinding{Primary: "c"})
	if kb.CopyLink.Primary != "c" {
		t.Errorf("SetBinding did not update CopyLink: %+v", kb.CopyLink)
	}
	kb.SetBinding("no_such_action", KeyBinding{Primary: "x"})
	if got := kb.GetBinding("no_such_action"); got != (KeyBinding{}) {
		t.Errorf("GetBinding(unknown) = %+v, want zero", got)
	}
}

func TestFindConflicts(t *testing.T) {
	kb := DefaultKeybindings()
	kb.CopyLink = KeyBinding{Primary: "n"}
	conflicts := kb.FindConflicts()
	if len(conflicts["n"]) != 2 {
		t.Errorf("FindConflicts()[n] = %v, want two actions", conflicts["n"])
	}
}

func TestFormatKeyForDisplay(t *testing.T) {
	tests := map[string]string{
		"ctrl+g":       "Ctrl+G",
		"alt+shift+f5": "Alt+Shift+F5",
		"pgdown":       "PgDn",
		"f1":           "F1",
		"up":           "↑",
		"?":            "?",
		"":             "",
	}
	for in, want := range tests {
		if got := FormatKeyForDisplay(in); got != want {
			t.Errorf("FormatKeyForDisplay(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDisplayString(t *testing.T) {
	if got := (KeyBinding{}).DisplayString(); got != "(none)" {
		t.Errorf("DisplayString() = %q, want (none)", got)
	}
	if got := (KeyBinding{Primary: "home", Alternate: "g"}).DisplayString(); got != "Home / g" {
		t.Errorf("DisplayString() = %q, want 'Home / g'", got)
	}
}

func TestLoadKeybindingsFrom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keybindings.toml")

	kb := DefaultKeybindings()
	kb.CopyLink = KeyBinding{Primary: "c", Alternate: "ctrl+y"}
	if err := kb.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded, err := LoadKeybindingsFrom(path)
	if err != nil {
		t.Fatalf("LoadKeybindingsFrom() error = %v", err)
	}
	if loaded.CopyLink != kb.CopyLink {
		t.Errorf("CopyLink = %+v, want %+v", loaded.CopyLink, kb.CopyLink)
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("quit = ["), 0644); err != nil {
		t.Fatal(err)
	}
	loaded, err = LoadKeybindingsFrom(bad)
	var loadErr *ConfigLoadError
	if !errors.As(err, &loadErr) {
		t.Errorf("LoadKeybindingsFrom(bad) error = %v, want *ConfigLoadError", err)
	}
	if loaded.Quit != DefaultKeybindings().Quit {
		t.Error("a parse error should fall back to defaults")
	}

	loaded, err = LoadKeybindingsFrom(filepath.Join(dir, "missing.toml"))
	if err != nil || loaded == nil {
		t.Errorf("missing keybindings file: %v", err)
	}
}
