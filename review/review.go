// Package review reads a local review directory: a manifest listing the
// versions of one extension, their source trees and their linter reports.
package review

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cornish/revu/encoding"
	"github.com/cornish/revu/internal/logging"
	"github.com/cornish/revu/linter"
	"github.com/cornish/revu/versions"
)

var (
	// ErrNoManifest is returned when a directory has no review manifest.
	ErrNoManifest = errors.New("no review manifest")
	// ErrInvalidManifest wraps manifest validation failures.
	ErrInvalidManifest = errors.New("invalid review manifest")
	// ErrVersionNotFound is returned for version ids missing from the manifest.
	ErrVersionNotFound = errors.New("version not found")
	// ErrFileNotFound is returned for paths missing from a version.
	ErrFileNotFound = errors.New("file not found")
	// ErrAddonMismatch is returned when asking for another extension's versions.
	ErrAddonMismatch = errors.New("addon id does not match review")
)

// Review is an opened review directory.
type Review struct {
	Dir          string
	ManifestPath string
	Manifest     Manifest
}

// File is a decoded source file.
type File struct {
	Path    string
	Content string
	Charset string // Display name of the detected charset
	Binary  bool   // Content is empty for binary files
	Size    int
}

// Open loads the manifest in dir.
func Open(dir string) (*Review, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve review dir: %w", err)
	}
	m, manifestPath, err := LoadManifest(abs)
	if err != nil {
		return nil, err
	}
	return &Review{Dir: abs, ManifestPath: manifestPath, Manifest: *m}, nil
}

// AddonID returns the id of the extension under review.
func (r *Review) AddonID() int {
	return r.Manifest.AddonID
}

// Version looks a version up by id.
func (r *Review) Version(id int) (VersionEntry, error) {
	for _, v := range r.Manifest.Versions {
		if v.ID == id {
			return v, nil
		}
	}
	return VersionEntry{}, fmt.Errorf("%w: %d", ErrVersionNotFound, id)
}

// Latest returns the version with the highest id.
func (r *Review) Latest() VersionEntry {
	latest := r.Manifest.Versions[0]
	for _, v := range r.Manifest.Versions[1:] {
		if v.ID > latest.ID {
			latest = v
		}
	}
	return latest
}

// Previous returns the highest version older than id.
func (r *Review) Previous(id int) (VersionEntry, bool) {
	var prev VersionEntry
	found := false
	for _, v := range r.Manifest.Versions {
		if v.ID < id && (!found || v.ID > prev.ID) {
			prev = v
			found = true
		}
	}
	return prev, found
}

// VersionsMap returns the version list grouped by channel, newest first.
func (r *Review) VersionsMap() *versions.Map {
	m := &versions.Map{}
	for _, v := range r.Manifest.Versions {
		item := versions.ListItem{ID: v.ID, Version: v.Version}
		if v.Channel == versions.ChannelUnlisted {
			m.Unlisted = append(m.Unlisted, item)
		} else {
			m.Listed = append(m.Listed, item)
		}
	}
	byIDDesc := func(items []versions.ListItem) {
		sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	}
	byIDDesc(m.Listed)
	byIDDesc(m.Unlisted)
	return m
}

// FetchVersionsList implements versions.Fetcher.
func (r *Review) FetchVersionsList(ctx context.Context, addonID int) (*versions.Map, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if addonID != r.AddonID() {
		return nil, fmt.Errorf("%w: want %d, got %d", ErrAddonMismatch, r.AddonID(), addonID)
	}
	return r.VersionsMap(), nil
}

// sourceRoot returns the absolute source directory of a version.
func (r *Review) sourceRoot(v VersionEntry) string {
	if filepath.IsAbs(v.Path) {
		return v.Path
	}
	return filepath.Join(r.Dir, filepath.FromSlash(v.Path))
}

// cleanPath normalizes a slash-separated path inside a version and rejects
// paths that escape it.
func cleanPath(p string) (string, error) {
	p = path.Clean("/" + strings.TrimSpace(p))
	p = strings.TrimPrefix(p, "/")
	if p == "" || p == "." {
		return "", fmt.Errorf("%w: empty path", ErrFileNotFound)
	}
	return p, nil
}

// Files lists every regular file of a version as sorted slash paths.
func (r *Review) Files(versionID int) ([]string, error) {
	v, err := r.Version(versionID)
	if err != nil {
		return nil, err
	}

	root := r.sourceRoot(v)
	var files []string
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && p != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list files of version %d: %w", versionID, err)
	}
	sort.Strings(files)
	return files, nil
}

// DefaultPath picks the file to open first: the manifest's default path when
// the version has it, else manifest.json, else the first file.
func (r *Review) DefaultPath(versionID int) (string, error) {
	files, err := r.Files(versionID)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("%w: version %d has no files", ErrFileNotFound, versionID)
	}
	for _, want := range []string{r.Manifest.DefaultPath, "manifest.json"} {
		if want == "" {
			continue
		}
		for _, f := range files {
			if f == want {
				return f, nil
			}
		}
	}
	return files[0], nil
}

// ReadFile reads and decodes one file of a version.
func (r *Review) ReadFile(versionID int, p string) (*File, error) {
	v, err := r.Version(versionID)
	if err != nil {
		return nil, err
	}
	clean, err := cleanPath(p)
	if err != nil {
		return nil, err
	}

	full := filepath.Join(r.sourceRoot(v), filepath.FromSlash(clean))
	data, err := os.ReadFile(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s in version %d", ErrFileNotFound, clean, versionID)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", clean, err)
	}

	f := &File{Path: clean, Size: len(data)}
	if encoding.IsBinary(data) {
		f.Binary = true
		return f, nil
	}

	text, cs, err := encoding.DecodeAuto(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", clean, err)
	}
	f.Content = text
	f.Charset = cs.Name
	return f, nil
}

// LinterVersion describes a version for the linter provider.
func (r *Review) LinterVersion(versionID int, selectedPath string) (linter.Version, error) {
	v, err := r.Version(versionID)
	if err != nil {
		return linter.Version{}, err
	}
	return linter.Version{
		ID:            v.ID,
		ValidationURL: v.Validation,
		SelectedPath:  selectedPath,
	}, nil
}

// NewLinterProvider returns a provider that resolves reports against the
// review directory.
func (r *Review) NewLinterProvider() *linter.Provider {
	return linter.NewProvider(r.Dir)
}

// Preload parses the linter reports of the given versions concurrently.
func (r *Review) Preload(ctx context.Context, provider *linter.Provider, ids ...int) error {
	logger := logging.FromContext(ctx)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, id := range ids {
		lv, err := r.LinterVersion(id, "")
		if err != nil {
			return err
		}
		g.Go(func() error {
			res, err := provider.Result(ctx, lv)
			if err != nil {
				return fmt.Errorf("version %d: %w", lv.ID, err)
			}
			logger.Debug("preloaded linter report", logging.FieldVersion, lv.ID, logging.FieldMessages, len(res.Messages))
			return nil
		})
	}
	return g.Wait()
}
