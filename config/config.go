package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/cornish/revu/overview"
)

// configDirName is the directory under the user config dir.
const configDirName = "revu"

// Config holds the viewer configuration
type Config struct {
	Viewer        ViewerConfig   `toml:"viewer"`
	Overview      OverviewConfig `toml:"overview"`
	Theme         ThemeConfig    `toml:"theme"`
	Lang          string         `toml:"lang"`                     // Locale segment of routes
	LogLevel      string         `toml:"log_level"`                // debug, info, warn, error
	RecentReviews []string       `toml:"recent_reviews,omitempty"` // Recently opened review directories (max 10)
}

// MaxRecentReviews is the maximum number of recent review directories to track
const MaxRecentReviews = 10

// AddRecentReview moves dir to the front of the recent reviews list
func (c *Config) AddRecentReview(dir string) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		absPath = dir
	}

	newList := make([]string, 0, MaxRecentReviews)
	newList = append(newList, absPath)
	for _, d := range c.RecentReviews {
		if d != absPath {
			newList = append(newList, d)
		}
	}

	if len(newList) > MaxRecentReviews {
		newList = newList[:MaxRecentReviews]
	}
	c.RecentReviews = newList
}

// ViewerConfig holds code view settings
type ViewerConfig struct {
	LineNumbers     bool  `toml:"line_numbers"`
	SyntaxHighlight bool  `toml:"syntax_highlight"`
	Scrollbar       bool  `toml:"scrollbar"`
	ShowOverview    bool  `toml:"show_overview"`
	LinterPanel     bool  `toml:"linter_panel"` // Show messages of the cursor line
	TabWidth        int   `toml:"tab_width"`
	TrueColor       *bool `toml:"true_color"` // nil = auto, false = force 256-color
	AsciiMode       *bool `toml:"ascii_mode"` // nil = auto-detect, true/false = override
	Mouse           bool  `toml:"mouse"`
}

// OverviewConfig holds the overview column layout, in terminal cells
type OverviewConfig struct {
	Padding       int `toml:"padding"`
	LinePadding   int `toml:"line_padding"`
	LineHeight    int `toml:"line_height"`
	Width         int `toml:"width"`           // Glyph width in cells
	MaxLineLength int `toml:"max_line_length"` // Source columns mapped to the full glyph width
	SettleDelayMS int `toml:"settle_delay_ms"` // Quiet period after a resize
}

// Geometry returns the overview geometry
func (o OverviewConfig) Geometry() overview.Geometry {
	return overview.Geometry{
		Padding:     o.Padding,
		LinePadding: o.LinePadding,
		LineHeight:  o.LineHeight,
	}
}

// SettleDelay returns the resize quiet period
func (o OverviewConfig) SettleDelay() time.Duration {
	if o.SettleDelayMS <= 0 {
		return overview.DefaultSettleDelay
	}
	return time.Duration(o.SettleDelayMS) * time.Millisecond
}

// OverviewOptions returns overview build options for this config
func (c *Config) OverviewOptions() overview.Options {
	return overview.Options{
		Geometry: c.Overview.Geometry(),
		Shapes: overview.ShapeOptions{
			MaxLineLength: c.Overview.MaxLineLength,
			TabWidth:      c.Viewer.TabWidth,
		},
	}
}

// ThemeConfig holds the theme reference in the main config
// Just references a theme by name - the actual colors come from theme files
type ThemeConfig struct {
	Name string `toml:"name"` // Theme name (built-in or from themes/ directory)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cell := overview.CellGeometry()
	return &Config{
		Viewer: ViewerConfig{
			LineNumbers:     true,
			SyntaxHighlight: true,
			Scrollbar:       true,
			ShowOverview:    true,
			LinterPanel:     true,
			TabWidth:        4,
			Mouse:           true,
		},
		Overview: OverviewConfig{
			Padding:       cell.Padding,
			LinePadding:   cell.LinePadding,
			LineHeight:    cell.LineHeight,
			Width:         12,
			MaxLineLength: overview.DefaultShapeOptions().MaxLineLength,
			SettleDelayMS: int(overview.DefaultSettleDelay / time.Millisecond),
		},
		Theme: ThemeConfig{
			Name: "default",
		},
		Lang:     DefaultLang,
		LogLevel: "info",
	}
}

// Dir returns the revu config directory
func Dir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, configDirName), nil
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ThemesDir returns the path to the user themes directory
func ThemesDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "themes"), nil
}

// ConfigLoadError holds details about a config loading error
type ConfigLoadError struct {
	FilePath string
	Err      error
}

func (e *ConfigLoadError) Error() string {
	return e.FilePath + ": " + e.Err.Error()
}

func (e *ConfigLoadError) Unwrap() error {
	return e.Err
}

// Load reads the configuration from the default path
// Returns default config if file doesn't exist
// Returns ConfigLoadError if file exists but has parse errors
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil // Return defaults on error
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from path, with the same fallbacks as Load.
// On a parse error the returned config is still usable: defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return DefaultConfig(), &ConfigLoadError{FilePath: path, Err: err}
	}

	cfg.normalize()
	return cfg, nil
}

// normalize replaces out-of-range values with defaults
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Viewer.TabWidth <= 0 {
		c.Viewer.TabWidth = def.Viewer.TabWidth
	}
	if c.Overview.LineHeight <= 0 {
		c.Overview.LineHeight = def.Overview.LineHeight
	}
	if c.Overview.Padding < 0 {
		c.Overview.Padding = def.Overview.Padding
	}
	if c.Overview.LinePadding < 0 {
		c.Overview.LinePadding = def.Overview.LinePadding
	}
	if c.Overview.Width <= 0 {
		c.Overview.Width = def.Overview.Width
	}
	if c.Overview.MaxLineLength <= 0 {
		c.Overview.MaxLineLength = def.Overview.MaxLineLength
	}
	if c.Lang == "" {
		c.Lang = def.Lang
	}
}

// SaveTo writes the configuration to path
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString("# revu configuration\n\n"); err != nil {
		return err
	}
	return toml.NewEncoder(f).Encode(c)
}

// GetResolved loads and returns the complete theme
func (t *ThemeConfig) GetResolved() Theme {
	return LoadTheme(t.Name)
}
