package review

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/cornish/revu/versions"
)

// Manifest file names, in lookup order.
const (
	ManifestTOML = "review.toml"
	ManifestYAML = "review.yaml"
)

// Manifest describes a review directory.
type Manifest struct {
	AddonID     int            `toml:"addon_id" yaml:"addon_id"`
	Name        string         `toml:"name" yaml:"name"`
	DefaultPath string         `toml:"default_path" yaml:"default_path"`
	Versions    []VersionEntry `toml:"versions" yaml:"versions"`
}

// VersionEntry is one version of the extension under review.
type VersionEntry struct {
	ID         int              `toml:"id" yaml:"id"`
	Version    string           `toml:"version" yaml:"version"`
	Channel    versions.Channel `toml:"channel" yaml:"channel"`
	Path       string           `toml:"path" yaml:"path"`             // Source directory, relative to the review directory
	Validation string           `toml:"validation" yaml:"validation"` // Linter report, relative path or file:// URL
}

// LoadManifest reads review.toml, or review.yaml when there is no TOML file.
func LoadManifest(dir string) (*Manifest, string, error) {
	for _, name := range []string{ManifestTOML, ManifestYAML, "review.yml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, path, fmt.Errorf("read manifest: %w", err)
		}

		m, err := ParseManifest(data, filepath.Ext(name))
		if err != nil {
			return nil, path, err
		}
		return m, path, nil
	}
	return nil, "", fmt.Errorf("%w in %s", ErrNoManifest, dir)
}

// ParseManifest decodes a manifest; ext selects the format (".toml", ".yaml", ".yml").
func ParseManifest(data []byte, ext string) (*Manifest, error) {
	var m Manifest
	switch ext {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&m); err != nil {
			return nil, fmt.Errorf("parse manifest: %w", err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("parse manifest: %w", err)
		}
	default:
		return nil, fmt.Errorf("parse manifest: unknown format %q", ext)
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	if m.AddonID <= 0 {
		return fmt.Errorf("%w: addon_id must be positive", ErrInvalidManifest)
	}
	if len(m.Versions) == 0 {
		return fmt.Errorf("%w: no versions", ErrInvalidManifest)
	}

	seen := make(map[int]bool, len(m.Versions))
	for i := range m.Versions {
		v := &m.Versions[i]
		if v.ID <= 0 {
			return fmt.Errorf("%w: version %d: id must be positive", ErrInvalidManifest, i)
		}
		if seen[v.ID] {
			return fmt.Errorf("%w: duplicate version id %d", ErrInvalidManifest, v.ID)
		}
		seen[v.ID] = true

		switch v.Channel {
		case "":
			v.Channel = versions.ChannelListed
		case versions.ChannelListed, versions.ChannelUnlisted:
		default:
			return fmt.Errorf("%w: version %d: unknown channel %q", ErrInvalidManifest, v.ID, v.Channel)
		}
		if v.Path == "" {
			v.Path = v.Version
		}
	}
	return nil
}
