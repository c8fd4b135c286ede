package viewer

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cornish/revu/codeview"
	"github.com/cornish/revu/config"
	"github.com/cornish/revu/internal/logging"
	"github.com/cornish/revu/linter"
	"github.com/cornish/revu/review"
	"github.com/cornish/revu/syntax"
	"github.com/cornish/revu/versions"
)

// Document is one decoded file of one version, with everything the code
// view derives from it.
type Document struct {
	Route    versions.Route // Fully resolved: head and path are set
	Base     review.VersionEntry
	Head     review.VersionEntry
	File     *review.File
	Lines    []string
	Colors   [][]syntax.ColorSpan
	Language string
	Messages *linter.MessageMap
}

// Content returns the decoded file text.
func (d *Document) Content() string {
	if d == nil || d.File == nil {
		return ""
	}
	return d.File.Content
}

type documentLoadedMsg struct {
	doc *Document
	err error
}

type versionsLoadedMsg struct {
	versions *versions.Map
	err      error
}

// Loader resolves routes against a review directory.
type Loader struct {
	Review    *review.Review
	Provider  *linter.Provider
	Lang      string
	Theme     config.Theme
	Highlight bool
}

// Resolve fills in the defaults of a route: the configured language, the
// latest version when no head is given, the previous version as base for
// compare routes without one, and the default file when no path is given.
func (l *Loader) Resolve(r versions.Route) (versions.Route, error) {
	r.AddonID = l.Review.AddonID()
	if r.Lang == "" {
		r.Lang = l.Lang
	}
	if r.Head == 0 {
		r.Head = l.Review.Latest().ID
	}
	if r.Kind == versions.RouteCompare && r.Base == 0 {
		prev, ok := l.Review.Previous(r.Head)
		if !ok {
			r.Kind = versions.RouteBrowse
		} else {
			r.Base = prev.ID
		}
	}
	if r.Path == "" {
		p, err := l.Review.DefaultPath(r.Head)
		if err != nil {
			return r, err
		}
		r.Path = p
	}
	return r, nil
}

// Load reads the file of r and its linter messages.
func (l *Loader) Load(ctx context.Context, r versions.Route) (*Document, error) {
	logger := logging.FromContext(ctx)

	r, err := l.Resolve(r)
	if err != nil {
		return nil, err
	}

	doc := &Document{Route: r}
	if doc.Head, err = l.Review.Version(r.Head); err != nil {
		return nil, err
	}
	if r.Kind == versions.RouteCompare {
		if doc.Base, err = l.Review.Version(r.Base); err != nil {
			return nil, err
		}
	}

	if doc.File, err = l.Review.ReadFile(r.Head, r.Path); err != nil {
		return nil, err
	}
	doc.Lines = codeview.Lines(doc.File.Content)

	lv, err := l.Review.LinterVersion(r.Head, r.Path)
	if err != nil {
		return nil, err
	}
	if doc.Messages, err = l.Provider.Selected(ctx, lv); err != nil {
		return nil, fmt.Errorf("linter messages: %w", err)
	}

	if !doc.File.Binary {
		h := syntax.New(r.Path, []byte(doc.File.Content))
		h.SetColors(l.Theme.Syntax.Highlighter())
		h.SetEnabled(l.Highlight)
		doc.Colors = h.Highlight(doc.File.Content)
		doc.Language = h.Language()
	}

	logger.Debug("loaded document",
		logging.FieldRoute, r.String(),
		logging.FieldPath, r.Path,
		logging.FieldEncoding, doc.File.Charset,
		logging.FieldLanguage, doc.Language,
		logging.FieldMessages, doc.Messages.Len(),
	)
	return doc, nil
}

func (m *Model) loadCmd(r versions.Route) tea.Cmd {
	ctx := m.ctx
	loader := m.loader
	return func() tea.Msg {
		doc, err := loader.Load(ctx, r)
		return documentLoadedMsg{doc: doc, err: err}
	}
}

func (m *Model) fetchVersionsCmd() tea.Cmd {
	ctx := m.ctx
	chooser := m.chooser
	return func() tea.Msg {
		vm, err := chooser.Fetch(ctx)
		return versionsLoadedMsg{versions: vm, err: err}
	}
}

// preloadCmd parses the reports of the versions on screen in the background
// so that switching between them is instant.
func (m *Model) preloadCmd(ids ...int) tea.Cmd {
	ctx := m.ctx
	loader := m.loader
	return func() tea.Msg {
		if err := loader.Review.Preload(ctx, loader.Provider, ids...); err != nil {
			logging.FromContext(ctx).Warn("preload linter reports", logging.FieldError, err)
		}
		return nil
	}
}
