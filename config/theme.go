package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/cornish/revu/syntax"
)

// Theme holds complete color theme settings
// This is the format for theme TOML files in <config>/revu/themes/
type Theme struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Author      string `toml:"author"`

	UI     UIColors     `toml:"ui"`
	Linter LinterColors `toml:"linter"`
	Syntax SyntaxColors `toml:"syntax"`
}

// UIColors holds UI color settings
type UIColors struct {
	HeaderBg         string `toml:"header_bg"`
	HeaderFg         string `toml:"header_fg"`
	HeaderAccent     string `toml:"header_accent"`
	StatusBg         string `toml:"status_bg"`
	StatusFg         string `toml:"status_fg"`
	StatusAccent     string `toml:"status_accent"`
	CursorLineBg     string `toml:"cursor_line_bg"`
	LineNumber       string `toml:"line_number"`
	LineNumberActive string `toml:"line_number_active"`
	ErrorFg          string `toml:"error_fg"`
	DisabledFg       string `toml:"disabled_fg"`
	LinkFg           string `toml:"link_fg"`
	OverviewGlyph    string `toml:"overview_glyph"`
	OverviewHover    string `toml:"overview_hover"`
	OverviewViewport string `toml:"overview_viewport"` // Rows currently on screen
	DialogBg         string `toml:"dialog_bg"`
	DialogFg         string `toml:"dialog_fg"`
	DialogBorder     string `toml:"dialog_border"`
	DialogTitle      string `toml:"dialog_title"`
	DialogButton     string `toml:"dialog_button"`
	DialogButtonFg   string `toml:"dialog_button_fg"`
}

// LinterColors holds the colors of message variants and overview indicators
type LinterColors struct {
	Danger    string `toml:"danger"`    // error
	Warning   string `toml:"warning"`   // warning
	Notice    string `toml:"notice"`    // notice indicator
	Secondary string `toml:"secondary"` // notice and unknown message boxes, other indicator
}

// SyntaxColors holds syntax highlighting color settings
type SyntaxColors struct {
	Keyword  string `toml:"keyword"`
	String   string `toml:"string"`
	Comment  string `toml:"comment"`
	Number   string `toml:"number"`
	Operator string `toml:"operator"`
	Function string `toml:"function"`
	Type     string `toml:"type"`
	Error    string `toml:"error"`
}

// Highlighter converts the theme's syntax colors for the highlighter
func (s SyntaxColors) Highlighter() syntax.Colors {
	return syntax.Colors{
		Keyword:  s.Keyword,
		String:   s.String,
		Comment:  s.Comment,
		Number:   s.Number,
		Operator: s.Operator,
		Function: s.Function,
		Type:     s.Type,
		Error:    s.Error,
	}
}

// Built-in themes
var builtinThemes = map[string]Theme{
	"default": {
		Name:        "default",
		Description: "Blue header and status bars on the terminal background",
		Author:      "revu",
		UI: UIColors{
			HeaderBg:         "4",  // Dark blue
			HeaderFg:         "15", // Bright white
			HeaderAccent:     "14", // Bright cyan
			StatusBg:         "4",  // Dark blue
			StatusFg:         "15", // Bright white
			StatusAccent:     "14", // Bright cyan
			CursorLineBg:     "236",
			LineNumber:       "8", // Gray
			LineNumberActive: "3", // Yellow
			ErrorFg:          "9", // Bright red
			DisabledFg:       "8", // Gray
			LinkFg:           "12",
			OverviewGlyph:    "8",
			OverviewHover:    "15",
			OverviewViewport: "237",
			DialogBg:         "7",  // Light gray
			DialogFg:         "0",  // Black
			DialogBorder:     "0",  // Black
			DialogTitle:      "4",  // Blue
			DialogButton:     "2",  // Green
			DialogButtonFg:   "15", // White
		},
		Linter: LinterColors{
			Danger:    "9",  // Bright red
			Warning:   "11", // Bright yellow
			Notice:    "12", // Bright blue
			Secondary: "8",  // Gray
		},
		Syntax: SyntaxColors{
			Keyword:  "14", // Bright cyan
			String:   "10", // Bright green
			Comment:  "8",  // Gray
			Number:   "11", // Bright yellow
			Operator: "13", // Bright magenta
			Function: "12", // Bright blue
			Type:     "11", // Bright yellow
			Error:    "9",  // Bright red
		},
	},
	"dark": {
		Name:        "dark",
		Description: "Modern dark theme with muted colors",
		Author:      "revu",
		UI: UIColors{
			HeaderBg:         "236",
			HeaderFg:         "252",
			HeaderAccent:     "43",
			StatusBg:         "236",
			StatusFg:         "252",
			StatusAccent:     "43",
			CursorLineBg:     "235",
			LineNumber:       "240",
			LineNumberActive: "250",
			ErrorFg:          "203",
			DisabledFg:       "240",
			LinkFg:           "75",
			OverviewGlyph:    "240",
			OverviewHover:    "252",
			OverviewViewport: "238",
			DialogBg:         "238",
			DialogFg:         "252",
			DialogBorder:     "245",
			DialogTitle:      "43",
			DialogButton:     "24",
			DialogButtonFg:   "15",
		},
		Linter: LinterColors{
			Danger:    "203",
			Warning:   "215",
			Notice:    "75",
			Secondary: "245",
		},
		Syntax: SyntaxColors{
			Keyword:  "176", // Purple
			String:   "114", // Green
			Comment:  "245", // Gray
			Number:   "215", // Orange
			Operator: "80",  // Cyan
			Function: "75",  // Light blue
			Type:     "222", // Yellow
			Error:    "203",
		},
	},
	"light": {
		Name:        "light",
		Description: "Light theme for bright environments",
		Author:      "revu",
		UI: UIColors{
			HeaderBg:         "254",
			HeaderFg:         "235",
			HeaderAccent:     "26",
			StatusBg:         "254",
			StatusFg:         "235",
			StatusAccent:     "26",
			CursorLineBg:     "255",
			LineNumber:       "249",
			LineNumberActive: "235",
			ErrorFg:          "160",
			DisabledFg:       "249",
			LinkFg:           "26",
			OverviewGlyph:    "249",
			OverviewHover:    "235",
			OverviewViewport: "253",
			DialogBg:         "255",
			DialogFg:         "235",
			DialogBorder:     "240",
			DialogTitle:      "26",
			DialogButton:     "32",
			DialogButtonFg:   "15",
		},
		Linter: LinterColors{
			Danger:    "160",
			Warning:   "166",
			Notice:    "26",
			Secondary: "245",
		},
		Syntax: SyntaxColors{
			Keyword:  "26",  // Blue
			String:   "28",  // Green
			Comment:  "245", // Gray
			Number:   "166", // Orange
			Operator: "90",  // Magenta
			Function: "26",  // Blue
			Type:     "30",  // Teal
			Error:    "160",
		},
	},
	"monokai": {
		Name:        "monokai",
		Description: "Monokai-inspired dark theme",
		Author:      "revu",
		UI: UIColors{
			HeaderBg:         "235",
			HeaderFg:         "231",
			HeaderAccent:     "208",
			StatusBg:         "235",
			StatusFg:         "231",
			StatusAccent:     "208",
			CursorLineBg:     "237",
			LineNumber:       "59",
			LineNumberActive: "231",
			ErrorFg:          "197",
			DisabledFg:       "59",
			LinkFg:           "81",
			OverviewGlyph:    "59",
			OverviewHover:    "231",
			OverviewViewport: "237",
			DialogBg:         "237",
			DialogFg:         "231",
			DialogBorder:     "208",
			DialogTitle:      "208",
			DialogButton:     "64",
			DialogButtonFg:   "231",
		},
		Linter: LinterColors{
			Danger:    "197",
			Warning:   "208",
			Notice:    "81",
			Secondary: "59",
		},
		Syntax: SyntaxColors{
			Keyword:  "197", // Pink-red
			String:   "186", // Yellow
			Comment:  "59",  // Gray
			Number:   "141", // Purple
			Operator: "197", // Pink-red
			Function: "81",  // Light blue
			Type:     "81",  // Light blue
			Error:    "197",
		},
	},
}

// DefaultTheme returns the default theme
func DefaultTheme() Theme {
	return builtinThemes["default"]
}

// LoadTheme loads a theme by name
// Checks user themes directory first, then falls back to built-in themes
func LoadTheme(name string) Theme {
	if name == "" {
		return DefaultTheme()
	}

	dir, err := ThemesDir()
	if err == nil {
		if theme, err := LoadThemeFile(filepath.Join(dir, name+".toml")); err == nil {
			return theme
		}
	}

	if builtin, ok := builtinThemes[name]; ok {
		return builtin
	}
	return DefaultTheme()
}

// LoadThemeFile decodes a theme file and fills missing colors from the
// built-in theme of the same name, or the default theme.
func LoadThemeFile(path string) (Theme, error) {
	var theme Theme
	if _, err := toml.DecodeFile(path, &theme); err != nil {
		return Theme{}, err
	}
	if theme.Name == "" {
		theme.Name = strings.TrimSuffix(filepath.Base(path), ".toml")
	}
	base, ok := builtinThemes[theme.Name]
	if !ok {
		base = DefaultTheme()
	}
	return mergeTheme(theme, base), nil
}

// fill sets *dst to def when empty
func fill(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

// mergeTheme fills in any missing theme values from def
func mergeTheme(theme, def Theme) Theme {
	ui, d := &theme.UI, def.UI
	fill(&ui.HeaderBg, d.HeaderBg)
	fill(&ui.HeaderFg, d.HeaderFg)
	fill(&ui.HeaderAccent, d.HeaderAccent)
	fill(&ui.StatusBg, d.StatusBg)
	fill(&ui.StatusFg, d.StatusFg)
	fill(&ui.StatusAccent, d.StatusAccent)
	fill(&ui.CursorLineBg, d.CursorLineBg)
	fill(&ui.LineNumber, d.LineNumber)
	fill(&ui.LineNumberActive, d.LineNumberActive)
	fill(&ui.ErrorFg, d.ErrorFg)
	fill(&ui.DisabledFg, d.DisabledFg)
	fill(&ui.LinkFg, d.LinkFg)
	fill(&ui.OverviewGlyph, d.OverviewGlyph)
	fill(&ui.OverviewHover, d.OverviewHover)
	fill(&ui.OverviewViewport, d.OverviewViewport)
	fill(&ui.DialogBg, d.DialogBg)
	fill(&ui.DialogFg, d.DialogFg)
	fill(&ui.DialogBorder, d.DialogBorder)
	fill(&ui.DialogTitle, d.DialogTitle)
	fill(&ui.DialogButton, d.DialogButton)
	fill(&ui.DialogButtonFg, d.DialogButtonFg)

	lc, dl := &theme.Linter, def.Linter
	fill(&lc.Danger, dl.Danger)
	fill(&lc.Warning, dl.Warning)
	fill(&lc.Notice, dl.Notice)
	fill(&lc.Secondary, dl.Secondary)

	sc, ds := &theme.Syntax, def.Syntax
	fill(&sc.Keyword, ds.Keyword)
	fill(&sc.String, ds.String)
	fill(&sc.Comment, ds.Comment)
	fill(&sc.Number, ds.Number)
	fill(&sc.Operator, ds.Operator)
	fill(&sc.Function, ds.Function)
	fill(&sc.Type, ds.Type)
	fill(&sc.Error, ds.Error)

	return theme
}

// ThemeNames returns the list of built-in theme names
func ThemeNames() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListUserThemes returns a list of user-defined theme names
func ListUserThemes() []string {
	themesDir, err := ThemesDir()
	if err != nil {
		return nil
	}

	entries, err := os.ReadDir(themesDir)
	if err != nil {
		return nil
	}

	var themes []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name := entry.Name(); filepath.Ext(name) == ".toml" {
			themes = append(themes, strings.TrimSuffix(name, ".toml"))
		}
	}
	return themes
}
