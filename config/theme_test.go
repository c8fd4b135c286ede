package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinThemesComplete(t *testing.T) {
	for _, name := range ThemeNames() {
		theme := builtinThemes[name]
		if merged := mergeTheme(theme, DefaultTheme()); merged != theme {
			t.Errorf("theme %q has unset colors", name)
		}
		if theme.Linter.Danger == "" || theme.Linter.Warning == "" || theme.Linter.Secondary == "" {
			t.Errorf("theme %q is missing linter colors", name)
		}
		if theme.UI.OverviewGlyph == "" {
			t.Errorf("theme %q is missing the overview glyph color", name)
		}
	}
}

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	want := []string{"dark", "default", "light", "monokai"}
	if len(names) != len(want) {
		t.Fatalf("ThemeNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("ThemeNames()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestLoadThemeFallbacks(t *testing.T) {
	if got := LoadTheme(""); got.Name != "default" {
		t.Errorf("LoadTheme(\"\") = %q, want default", got.Name)
	}
	if got := LoadTheme("no-such-theme"); got.Name != "default" {
		t.Errorf("LoadTheme(unknown) = %q, want default", got.Name)
	}
}

func TestLoadThemeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.toml")
	data := `
description = "partial"

[linter]
danger = "#ff0000"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	theme, err := LoadThemeFile(path)
	if err != nil {
		t.Fatalf("LoadThemeFile() error = %v", err)
	}
	if theme.Name != "mine" {
		t.Errorf("Name = %q, want mine", theme.Name)
	}
	if theme.Linter.Danger != "#ff0000" {
		t.Errorf("Linter.Danger = %q", theme.Linter.Danger)
	}
	def := DefaultTheme()
	if theme.Linter.Warning != def.Linter.Warning {
		t.Errorf("missing colors should come from the default theme, got %q", theme.Linter.Warning)
	}
	if theme.Syntax.Keyword != def.Syntax.Keyword {
		t.Errorf("Syntax.Keyword = %q, want %q", theme.Syntax.Keyword, def.Syntax.Keyword)
	}
}

func TestSyntaxColorsHighlighter(t *testing.T) {
	sc := DefaultTheme().Syntax
	hc := sc.Highlighter()
	if hc.Keyword != sc.Keyword || hc.Error != sc.Error {
		t.Errorf("Highlighter() = %+v", hc)
	}
}
