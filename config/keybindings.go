package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// KeyBinding represents a single action's key bindings
type KeyBinding struct {
	Primary   string `toml:"primary"`
	Alternate string `toml:"alternate,omitempty"`
}

// KeybindingsConfig holds all configurable keybindings
type KeybindingsConfig struct {
	Quit KeyBinding `toml:"quit"`
	Help KeyBinding `toml:"help"`

	// Scrolling
	ScrollUp   KeyBinding `toml:"scroll_up"`
	ScrollDown KeyBinding `toml:"scroll_down"`
	PageUp     KeyBinding `toml:"page_up"`
	PageDown   KeyBinding `toml:"page_down"`
	Top        KeyBinding `toml:"top"`
	Bottom     KeyBinding `toml:"bottom"`
	GoToLine   KeyBinding `toml:"goto_line"`

	// Linter messages
	NextMessage KeyBinding `toml:"next_message"`
	PrevMessage KeyBinding `toml:"prev_message"`

	// View toggles
	ToggleOverview    KeyBinding `toml:"toggle_overview"`
	ToggleLinterPanel KeyBinding `toml:"toggle_linter_panel"`
	ToggleLineNumbers KeyBinding `toml:"toggle_line_numbers"`

	// Review navigation
	VersionChooser KeyBinding `toml:"version_chooser"`
	OpenPath       KeyBinding `toml:"open_path"`
	CopyLink       KeyBinding `toml:"copy_link"`
}

// DefaultKeybindings returns the default keybinding configuration
func DefaultKeybindings() *KeybindingsConfig {
	return &KeybindingsConfig{
		Quit: KeyBinding{Primary: "q", Alternate: "ctrl+c"},
		Help: KeyBinding{Primary: "?", Alternate: "f1"},

		ScrollUp:   KeyBinding{Primary: "up", Alternate: "k"},
		ScrollDown: KeyBinding{Primary: "down", Alternate: "j"},
		PageUp:     KeyBinding{Primary: "pgup", Alternate: "ctrl+b"},
		PageDown:   KeyBinding{Primary: "pgdown", Alternate: "ctrl+f"},
		Top:        KeyBinding{Primary: "home", Alternate: "g"},
		Bottom:     KeyBinding{Primary: "end", Alternate: "G"},
		GoToLine:   KeyBinding{Primary: ":", Alternate: "ctrl+g"},

		NextMessage: KeyBinding{Primary: "n"},
		PrevMessage: KeyBinding{Primary: "N"},

		ToggleOverview:    KeyBinding{Primary: "m"},
		ToggleLinterPanel: KeyBinding{Primary: "l"},
		ToggleLineNumbers: KeyBinding{Primary: "#"},

		VersionChooser: KeyBinding{Primary: "v"},
		OpenPath:       KeyBinding{Primary: "o"},
		CopyLink:       KeyBinding{Primary: "y"},
	}
}

// ActionNames maps action names for display
var ActionNames = map[string]string{
	"quit":                "Quit",
	"help":                "Help",
	"scroll_up":           "Scroll Up",
	"scroll_down":         "Scroll Down",
	"page_up":             "Page Up",
	"page_down":           "Page Down",
	"top":                 "Top of File",
	"bottom":              "End of File",
	"goto_line":           "Go to Line",
	"next_message":        "Next Linter Message",
	"prev_message":        "Previous Linter Message",
	"toggle_overview":     "Toggle Overview",
	"toggle_linter_panel": "Toggle Linter Panel",
	"toggle_line_numbers": "Toggle Line Numbers",
	"version_chooser":     "Compare Versions",
	"open_path":           "Open File or Route",
	"copy_link":           "Copy Link",
}

// KeybindingsPath returns the path to the keybindings file
func KeybindingsPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "keybindings.toml"), nil
}

// LoadKeybindings loads keybindings from the default path, returning
// defaults if not found
func LoadKeybindings() (*KeybindingsConfig, error) {
	path, err := KeybindingsPath()
	if err != nil {
		return DefaultKeybindings(), nil
	}
	return LoadKeybindingsFrom(path)
}

// LoadKeybindingsFrom loads keybindings from path. Unset actions keep their
// defaults; a parse error returns the defaults and a ConfigLoadError.
func LoadKeybindingsFrom(path string) (*KeybindingsConfig, error) {
	kb := DefaultKeybindings()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return kb, nil
	}

	if _, err := toml.DecodeFile(path, kb); err != nil {
		return DefaultKeybindings(), &ConfigLoadError{FilePath: path, Err: err}
	}
	return kb, nil
}

// SaveTo writes keybindings to path
func (kb *KeybindingsConfig) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header := "# revu keybindings\n" +
		"# Format: primary = \"key\", alternate = \"key\" (optional)\n" +
		"# Examples: \"ctrl+g\", \"alt+v\", \"f1\", \"n\"\n\n"
	if _, err := f.WriteString(header); err != nil {
		return err
	}
	return toml.NewEncoder(f).Encode(kb)
}

// bindings returns pointers to every binding keyed by action name
func (kb *KeybindingsConfig) bindings() map[string]*KeyBinding {
	return map[string]*KeyBinding{
		"quit":                &kb.Quit,
		"help":                &kb.Help,
		"scroll_up":           &kb.ScrollUp,
		"scroll_down":         &kb.ScrollDown,
		"page_up":             &kb.PageUp,
		"page_down":           &kb.PageDown,
		"top":                 &kb.Top,
		"bottom":              &kb.Bottom,
		"goto_line":           &kb.GoToLine,
		"next_message":        &kb.NextMessage,
		"prev_message":        &kb.PrevMessage,
		"toggle_overview":     &kb.ToggleOverview,
		"toggle_linter_panel": &kb.ToggleLinterPanel,
		"toggle_line_numbers": &kb.ToggleLineNumbers,
		"version_chooser":     &kb.VersionChooser,
		"open_path":           &kb.OpenPath,
		"copy_link":           &kb.CopyLink,
	}
}

// GetBinding returns the KeyBinding for a given action name
func (kb *KeybindingsConfig) GetBinding(action string) KeyBinding {
	if b, ok := kb.bindings()[action]; ok {
		return *b
	}
	return KeyBinding{}
}

// SetBinding sets the KeyBinding for a given action name
func (kb *KeybindingsConfig) SetBinding(action string, binding KeyBinding) {
	if b, ok := kb.bindings()[action]; ok {
		*b = binding
	}
}

// Action returns the action bound to key, or "" when none is
func (kb *KeybindingsConfig) Action(key string) string {
	for _, action := range AllActions() {
		if kb.GetBinding(action).Matches(key) {
			return action
		}
	}
	return ""
}

// AllActions returns a list of all action names in display order
func AllActions() []string {
	return []string{
		"scroll_up", "scroll_down", "page_up", "page_down", "top", "bottom", "goto_line",
		"next_message", "prev_message",
		"toggle_overview", "toggle_linter_panel", "toggle_line_numbers",
		"version_chooser", "open_path", "copy_link",
		"help", "quit",
	}
}

// Matches checks if a key string matches this binding (primary or alternate).
// Single-character keys are case-sensitive so that "n" and "N" differ.
func (b KeyBinding) Matches(key string) bool {
	return keyEqual(b.Primary, key) || keyEqual(b.Alternate, key)
}

func keyEqual(bound, key string) bool {
	if bound == "" {
		return false
	}
	if len(bound) == 1 || len(key) == 1 {
		return bound == key
	}
	return strings.EqualFold(bound, key)
}

// DisplayString returns a human-readable string for the binding
func (b KeyBinding) DisplayString() string {
	if b.Primary == "" && b.Alternate == "" {
		return "(none)"
	}
	if b.Alternate == "" {
		return FormatKeyForDisplay(b.Primary)
	}
	return FormatKeyForDisplay(b.Primary) + " / " + FormatKeyForDisplay(b.Alternate)
}

// keyDisplayNames maps key names to display names
var keyDisplayNames = map[string]string{
	"up":     "↑",
	"down":   "↓",
	"left":   "←",
	"right":  "→",
	"pgup":   "PgUp",
	"pgdown": "PgDn",
	"home":   "Home",
	"end":    "End",
	"tab":    "Tab",
	"enter":  "Enter",
	"esc":    "Esc",
}

// FormatKeyForDisplay converts a key string to a more readable format
func FormatKeyForDisplay(key string) string {
	if key == "" {
		return ""
	}

	parts := strings.Split(key, "+")
	for i, part := range parts {
		lower := strings.ToLower(part)
		switch {
		case i < len(parts)-1 && lower == "ctrl":
			parts[i] = "Ctrl"
		case i < len(parts)-1 && lower == "alt":
			parts[i] = "Alt"
		case i < len(parts)-1 && lower == "shift":
			parts[i] = "Shift"
		case keyDisplayNames[lower] != "":
			parts[i] = keyDisplayNames[lower]
		case len(lower) >= 2 && lower[0] == 'f' && isDigits(lower[1:]):
			parts[i] = "F" + lower[1:]
		case len(part) == 1 && i > 0:
			parts[i] = strings.ToUpper(part)
		}
	}
	return strings.Join(parts, "+")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// FindConflicts checks for key conflicts and returns a map of conflicting actions
func (kb *KeybindingsConfig) FindConflicts() map[string][]string {
	keyToActions := make(map[string][]string)
	for _, action := range AllActions() {
		binding := kb.GetBinding(action)
		for _, key := range []string{binding.Primary, binding.Alternate} {
			if key != "" {
				keyToActions[key] = append(keyToActions[key], action)
			}
		}
	}

	conflicts := make(map[string][]string)
	for key, actions := range keyToActions {
		if len(actions) > 1 {
			conflicts[key] = actions
		}
	}
	return conflicts
}
