package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cornish/revu/clipboard"
	"github.com/cornish/revu/config"
	"github.com/cornish/revu/internal/logging"
	"github.com/cornish/revu/review"
	"github.com/cornish/revu/ui"
	"github.com/cornish/revu/versions"
	"github.com/cornish/revu/viewer"
)

// target is the review and the view a command works on.
type target struct {
	review *review.Review
	route  versions.Route
}

// routeFlags select a view without spelling out a route.
type routeFlags struct {
	head int
	path string
}

func (f *routeFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.head, "head", 0, "version id to show (default: latest)")
	cmd.Flags().StringVar(&f.path, "path", "", "file inside the version (default: the manifest's default path)")
}

// resolveTarget opens the review directory in args[0] (the working directory
// when absent) and parses the optional route in args[1]. Flags override the
// route's version and path.
func resolveTarget(args []string, flags routeFlags) (*target, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	r, err := review.Open(dir)
	if err != nil {
		return nil, err
	}

	t := &target{review: r}
	if len(args) > 1 {
		if t.route, err = versions.ParseRoute(args[1]); err != nil {
			return nil, err
		}
		if t.route.AddonID != r.AddonID() {
			return nil, fmt.Errorf("%w: route is for add-on %d, review is for %d",
				versions.ErrInvalidRoute, t.route.AddonID, r.AddonID())
		}
	}
	if flags.head != 0 {
		t.route.Head = flags.head
	}
	if flags.path != "" {
		t.route.Path = flags.path
	}
	return t, nil
}

func newOpenCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open [dir] [route]",
		Short: "Open the review viewer",
		Long: `Open the interactive viewer on a review directory.

The optional route selects the view, e.g.
  /en-US/browse/7/versions/30/?path=background.js
  /en-US/compare/7/versions/10...30/`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpen(cmd, args, opts)
		},
	}
	return cmd
}

func runOpen(cmd *cobra.Command, args []string, opts *globalOptions) error {
	stderrLogger := logging.Default()

	cfg, loadErr := opts.loadConfig(stderrLogger)
	var cle *config.ConfigLoadError
	if loadErr != nil && !errors.As(loadErr, &cle) {
		return loadErr
	}

	t, err := resolveTarget(args, routeFlags{})
	if err != nil {
		return err
	}

	logger, closer, err := opts.viewerLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closer.Close()

	config.InitCapabilities()
	caps := config.GetCapabilities()
	ui.UseTrueColor = caps.ShouldUseTrueColor(cfg.Viewer.TrueColor)

	keys, err := config.LoadKeybindings()
	if err != nil {
		logger.Warn("using default keybindings", logging.FieldError, err)
		keys = config.DefaultKeybindings()
	}

	startupError := ""
	if cle != nil {
		startupError = "Config error in " + cle.FilePath + ": " + cle.Err.Error()
	} else {
		opts.rememberReview(t.review.Dir, logger)
	}

	logger.Info("opening review",
		logging.FieldDir, t.review.Dir,
		logging.FieldAddon, t.review.AddonID(),
		logging.FieldRoute, routeLabel(t.route),
	)

	m := viewer.New(viewer.Options{
		Review:       t.review,
		Config:       cfg,
		Keybindings:  keys,
		Caps:         caps,
		Route:        t.route,
		Logger:       logger,
		Clipboard:    clipboard.New(os.Stdout),
		StartupError: startupError,
	})

	programOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithOutput(cmd.OutOrStdout()),
	}
	if cfg.Viewer.Mouse {
		programOpts = append(programOpts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(m, programOpts...)
	if _, err := p.Run(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}

// rememberReview records dir in the recent reviews list of the config file.
// The file is re-read so that environment overrides are not written back.
func (o *globalOptions) rememberReview(dir string, logger *log.Logger) {
	path := o.configPath
	if path == "" {
		var err error
		if path, err = config.ConfigPath(); err != nil {
			logger.Warn("locate config", logging.FieldError, err)
			return
		}
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return
	}
	cfg.AddRecentReview(dir)
	if err := cfg.SaveTo(path); err != nil {
		logger.Warn("save config", logging.FieldPath, path, logging.FieldError, err)
	}
}

func routeLabel(r versions.Route) string {
	if r.Head == 0 {
		return "latest"
	}
	return strconv.Itoa(r.Head)
}
