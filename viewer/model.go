// Package viewer is the interactive review screen: a read-only code view with
// linter messages, the overview column and the version chooser.
package viewer

import (
	"context"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cornish/revu/clipboard"
	"github.com/cornish/revu/config"
	"github.com/cornish/revu/internal/logging"
	"github.com/cornish/revu/overview"
	"github.com/cornish/revu/review"
	"github.com/cornish/revu/ui"
	"github.com/cornish/revu/versions"
)

// Mode represents the viewer mode
type Mode int

const (
	ModeNormal Mode = iota
	ModePrompt
	ModeHelp
	ModeChooser
)

// PromptAction represents what to do with the prompt result
type PromptAction int

const (
	PromptNone PromptAction = iota
	PromptGoToLine
	PromptOpenPath
)

// Options configures a Model.
type Options struct {
	Review      *review.Review
	Config      *config.Config
	Keybindings *config.KeybindingsConfig
	Caps        *config.TermCapabilities
	Route       versions.Route // Zero head opens the latest version
	Logger      *log.Logger
	Clipboard   *clipboard.Clipboard
	Clock       overview.Clock // Settle timer clock, the system clock when nil

	// StartupError is shown in the status bar once the screen is up,
	// e.g. a config file that failed to parse.
	StartupError string
}

// Model is the main Bubbletea model of the viewer
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *log.Logger

	cfg       *config.Config
	keys      *config.KeybindingsConfig
	loader    *Loader
	clipboard *clipboard.Clipboard

	// Version selection
	store       *versions.Store
	chooser     *versions.Chooser
	chooserView *ui.ChooserView

	// UI components
	styles       ui.Styles
	box          ui.BoxChars
	ascii        bool
	hyperlinks   bool
	viewport     *ui.Viewport
	codeView     *ui.CodeView
	scrollbar    *ui.Scrollbar
	overviewView *ui.OverviewView
	statusbar    *ui.StatusBar

	// Overview sizing
	feed           *overview.ResizeFeed
	sizer          *overview.Sizer
	overviewHeight atomic.Int64
	layoutCh       chan struct{}
	mounted        bool

	// State
	route     versions.Route
	doc       *Document
	loading   bool
	mode      Mode
	showPanel bool
	width     int
	height    int

	// Prompt mode state
	promptText   string
	promptInput  string
	promptAction PromptAction

	startupError string
}

// New creates a viewer for opts.Review.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	keys := opts.Keybindings
	if keys == nil {
		keys = config.DefaultKeybindings()
	}
	caps := opts.Caps
	if caps == nil {
		caps = config.GetCapabilities()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.New(os.Stdout)
	}

	ctx, cancel := context.WithCancel(logging.WithLogger(context.Background(), logger))
	theme := cfg.Theme.GetResolved()
	styles := ui.NewStyles(theme)
	ascii := caps.ShouldUseASCII(cfg.Viewer.AsciiMode)

	m := &Model{
		ctx:       ctx,
		cancel:    cancel,
		logger:    logger,
		cfg:       cfg,
		keys:      keys,
		clipboard: clip,
		loader: &Loader{
			Review:    opts.Review,
			Provider:  opts.Review.NewLinterProvider(),
			Lang:      cfg.Lang,
			Theme:     theme,
			Highlight: cfg.Viewer.SyntaxHighlight,
		},
		store:        versions.NewStore(),
		styles:       styles,
		box:          ui.Box(ascii),
		ascii:        ascii,
		hyperlinks:   caps.Hyperlinks,
		viewport:     ui.NewViewport(),
		codeView:     ui.NewCodeView(styles),
		scrollbar:    ui.NewScrollbar(styles),
		overviewView: ui.NewOverviewView(styles, cfg.Overview.Geometry(), cfg.Overview.Width),
		statusbar:    ui.NewStatusBar(styles),
		feed:         &overview.ResizeFeed{},
		layoutCh:     make(chan struct{}, 1),
		route:        opts.Route,
		showPanel:    cfg.Viewer.LinterPanel,
		width:        80,
		height:       24,
		startupError: opts.StartupError,
	}

	m.chooser = versions.NewChooser(opts.Review.AddonID(), cfg.Lang, m.store, opts.Review)
	m.chooserView = ui.NewChooserView(m.chooser)

	m.viewport.ShowLineNumbers(cfg.Viewer.LineNumbers)
	m.codeView.SetASCII(ascii)
	m.scrollbar.SetEnabled(cfg.Viewer.Scrollbar)
	m.scrollbar.SetASCII(ascii)
	m.overviewView.SetEnabled(cfg.Viewer.ShowOverview)
	m.overviewView.SetASCII(ascii)

	sizerOpts := []overview.SizerOption{
		overview.WithSettleDelay(cfg.Overview.SettleDelay()),
		overview.WithOnChange(m.signalLayout),
	}
	if opts.Clock != nil {
		sizerOpts = append(sizerOpts, overview.WithClock(opts.Clock))
	}
	m.sizer = overview.NewSizer(m.measureOverview, m.feed, sizerOpts...)

	return m
}

// measureOverview reports the height of the overview container. It runs on
// the settle timer goroutine, hence the atomic.
func (m *Model) measureOverview() int {
	return int(m.overviewHeight.Load())
}

// signalLayout wakes waitLayout without blocking the sizer.
func (m *Model) signalLayout() {
	select {
	case m.layoutCh <- struct{}{}:
	default:
	}
}

type layoutMsg struct{}

func (m *Model) waitLayout() tea.Cmd {
	ctx := m.ctx
	ch := m.layoutCh
	return func() tea.Msg {
		select {
		case <-ch:
			return layoutMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	m.loading = true
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		m.loadCmd(m.route),
		m.waitLayout(),
	}
	if m.cfg.Viewer.Mouse {
		cmds = append(cmds, tea.EnableMouseAllMotion)
	}
	if m.startupError != "" {
		m.statusbar.SetMessage(m.startupError, ui.MessageError)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case layoutMsg:
		m.refreshOverview()
		return m, m.waitLayout()

	case documentLoadedMsg:
		return m, m.handleDocument(msg)

	case versionsLoadedMsg:
		if msg.err != nil {
			m.logger.Error("fetch versions", logging.FieldError, msg.err)
			m.statusbar.SetMessage("Error: "+msg.err.Error(), ui.MessageError)
			return m, nil
		}
		m.chooser.Receive(msg.versions)
		m.chooserView.Reset()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m, nil
}

func (m *Model) handleDocument(msg documentLoadedMsg) tea.Cmd {
	m.loading = false
	if msg.err != nil {
		m.logger.Error("load document", logging.FieldRoute, m.route.String(), logging.FieldError, msg.err)
		m.statusbar.SetMessage("Error: "+msg.err.Error(), ui.MessageError)
		return nil
	}

	doc := msg.doc
	m.doc = doc
	m.route = doc.Route
	m.store.SetCurrent(doc.Route.Base, doc.Route.Head)
	m.store.SetSelectedPath(doc.Route.Path)

	m.viewport.SetTotal(len(doc.Lines))
	m.viewport.SetScrollX(0)
	m.viewport.Top()
	m.layout()

	m.statusbar.SetPath(doc.Route.Path)
	m.statusbar.SetLanguage(doc.Language)
	m.statusbar.SetCounts(doc.Messages.Counts())
	if doc.File.Charset != "" {
		m.statusbar.SetEncoding(doc.File.Charset)
	}
	if doc.File.Binary {
		m.statusbar.SetMessage("Binary file not shown", ui.MessageInfo)
	}

	m.refreshOverview()

	if doc.Route.Kind == versions.RouteCompare {
		return m.preloadCmd(doc.Route.Base, doc.Route.Head)
	}
	return nil
}

// navigate opens a route typed or produced by the chooser.
func (m *Model) navigate(raw string) tea.Cmd {
	r, err := versions.ParseRoute(raw)
	if err != nil {
		m.statusbar.SetMessage("Error: "+err.Error(), ui.MessageError)
		return nil
	}
	if r.AddonID != m.loader.Review.AddonID() {
		m.statusbar.SetMessage("Route is for another add-on", ui.MessageError)
		return nil
	}
	m.logger.Debug("navigate", logging.FieldRoute, raw)
	m.loading = true
	return m.loadCmd(r)
}

// openPath opens another file of the version on screen.
func (m *Model) openPath(p string) tea.Cmd {
	r := m.route
	r.Path = p
	m.loading = true
	return m.loadCmd(r)
}

// Link returns the route of the current view with the cursor line anchor.
func (m *Model) Link() string {
	if m.doc == nil {
		return ""
	}
	return m.route.String() + m.lineAnchor()
}

func (m *Model) close() {
	m.sizer.Unmount()
	m.cancel()
}

// View implements tea.Model
func (m *Model) View() string {
	bodyHeight := m.bodyHeight()
	codeHeight := m.viewport.Height()
	leftWidth := m.width - m.overviewView.Width()

	screen := make([]string, 0, m.height)
	screen = append(screen, ui.RenderHeader(m.headerInfo(), m.width, m.styles))

	codeRows := m.codeView.Render(m.viewport.Width()-m.viewport.ScrollbarWidth(), codeHeight, m.renderState())
	barRows := m.scrollbar.Render(m.viewport.ScrollY(), codeHeight, m.viewport.Total())
	panelRows := m.panelRows(leftWidth, bodyHeight-codeHeight)

	var overviewRows []string
	if m.overviewView.IsEnabled() {
		first, last := m.viewport.VisibleRange()
		overviewRows = m.overviewView.Render(bodyHeight, first, last)
	}

	for y := 0; y < bodyHeight; y++ {
		var sb strings.Builder
		switch {
		case y < codeHeight:
			sb.WriteString(codeRows[y])
			if y < len(barRows) {
				sb.WriteString(barRows[y])
			}
		case y-codeHeight < len(panelRows):
			sb.WriteString(fitWidth(panelRows[y-codeHeight], leftWidth))
		default:
			sb.WriteString(strings.Repeat(" ", max(leftWidth, 0)))
		}
		if y < len(overviewRows) {
			sb.WriteString(overviewRows[y])
		}
		screen = append(screen, sb.String())
	}

	switch m.mode {
	case ModeHelp:
		screen = ui.HelpDialog(m.keys, m.box, m.styles).Overlay(screen, m.width, len(screen))
	case ModeChooser:
		screen = m.chooserView.Overlay(screen, m.width, len(screen), m.box, m.styles)
	}

	if m.mode == ModePrompt {
		m.statusbar.SetPrompt(m.promptText + m.promptInput + "_")
	} else {
		m.statusbar.SetPrompt("")
	}
	m.statusbar.SetPosition(m.viewport.Line(), m.viewport.Total())
	screen = append(screen, m.statusbar.View())

	return strings.Join(screen, "\n")
}

func (m *Model) headerInfo() ui.HeaderInfo {
	info := ui.HeaderInfo{
		Addon:   m.loader.Review.Manifest.Name,
		Mode:    "browse",
		Loading: m.loading,
	}
	if info.Addon == "" {
		info.Addon = "add-on " + strconv.Itoa(m.loader.Review.AddonID())
	}
	if m.doc != nil {
		info.Head = m.doc.Head.Version
		info.Path = m.doc.Route.Path
		if m.doc.Route.Kind == versions.RouteCompare {
			info.Mode = "compare"
			info.Base = m.doc.Base.Version
		}
	}
	return info
}

func (m *Model) renderState() *ui.RenderState {
	if m.doc == nil {
		return nil
	}
	return &ui.RenderState{
		Lines:           m.doc.Lines,
		LineColors:      m.doc.Colors,
		Messages:        m.doc.Messages,
		ScrollY:         m.viewport.ScrollY(),
		ScrollX:         m.viewport.ScrollX(),
		CursorLine:      m.viewport.Cursor(),
		TabWidth:        m.cfg.Viewer.TabWidth,
		ShowLineNumbers: m.viewport.ShowLineNum(),
		LineNumberWidth: m.viewport.LineNumberWidth(),
	}
}

// panelRows renders the messages of the cursor line below the code.
func (m *Model) panelRows(width, height int) []string {
	if height <= 0 || m.doc == nil {
		return nil
	}
	msgs := m.doc.Messages.ForLine(m.viewport.Line())
	if len(msgs) == 0 {
		msgs = m.doc.Messages.Global
	}
	if len(msgs) == 0 {
		return []string{m.styles.Subtle.Render(" No linter messages on this line")}
	}
	rows := strings.Split(ui.RenderMessages(msgs, width, m.hyperlinks, m.styles), "\n")
	if len(rows) > height {
		rows = rows[:height]
	}
	return rows
}

// fitWidth pads or cuts a styled line to exactly width cells.
func fitWidth(s string, width int) string {
	w := ansi.StringWidth(s)
	if w > width {
		return ansi.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-w)
}
