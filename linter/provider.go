package linter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/cornish/revu/internal/logging"
)

// ErrRemoteValidation is returned for validation URLs that would need a
// network fetch. Only local reports are read.
var ErrRemoteValidation = errors.New("remote validation reports are not supported")

// Version identifies the file whose messages are wanted.
type Version struct {
	ID            int
	ValidationURL string // Path or file:// URL of the validation report
	SelectedPath  string // File inside the version
}

// Provider loads validation reports and hands out per-file message maps.
// Reports are cached per version ID; Provider is safe for concurrent use.
type Provider struct {
	baseDir string

	mu      sync.Mutex
	results map[int]*Result
}

// NewProvider creates a provider resolving relative report paths against baseDir.
func NewProvider(baseDir string) *Provider {
	return &Provider{
		baseDir: baseDir,
		results: make(map[int]*Result),
	}
}

// Result returns the full report for v, loading it on first use.
func (p *Provider) Result(ctx context.Context, v Version) (*Result, error) {
	p.mu.Lock()
	if r, ok := p.results[v.ID]; ok {
		p.mu.Unlock()
		return r, nil
	}
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	if v.ValidationURL == "" {
		logger.Debug("no validation report", logging.FieldVersion, v.ID)
		r := &Result{}
		p.store(v.ID, r)
		return r, nil
	}

	path, err := p.resolve(v.ValidationURL)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open validation report for version %d: %w", v.ID, err)
	}
	defer f.Close()

	r, err := ParseResult(f)
	if err != nil {
		return nil, fmt.Errorf("version %d: %w", v.ID, err)
	}
	logger.Debug("loaded validation report",
		logging.FieldVersion, v.ID,
		logging.FieldPath, path,
		logging.FieldMessages, len(r.Messages),
	)

	p.store(v.ID, r)
	return r, nil
}

// Selected returns the message map for v.SelectedPath.
func (p *Provider) Selected(ctx context.Context, v Version) (*MessageMap, error) {
	r, err := p.Result(ctx, v)
	if err != nil {
		return nil, err
	}
	return r.ForPath(v.SelectedPath), nil
}

// Load parses a report from r and caches it for version id.
func (p *Provider) Load(id int, r io.Reader) (*Result, error) {
	result, err := ParseResult(r)
	if err != nil {
		return nil, err
	}
	p.store(id, result)
	return result, nil
}

func (p *Provider) store(id int, r *Result) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.results[id] = r
}

func (p *Provider) resolve(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("validation url %q: %w", raw, err)
	}
	switch u.Scheme {
	case "":
		if filepath.IsAbs(raw) {
			return raw, nil
		}
		return filepath.Join(p.baseDir, filepath.FromSlash(raw)), nil
	case "file":
		return filepath.FromSlash(u.Path), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrRemoteValidation, raw)
	}
}
