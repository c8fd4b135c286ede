package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cornish/revu/config"
	"github.com/cornish/revu/internal/logging"
	"github.com/cornish/revu/internal/pretty"
	"github.com/cornish/revu/overview"
	"github.com/cornish/revu/viewer"
)

type overviewOptions struct {
	route  routeFlags
	height int
	width  int
	ascii  bool
}

func newOverviewCommand(opts *globalOptions) *cobra.Command {
	ovOpts := &overviewOptions{}

	cmd := &cobra.Command{
		Use:   "overview [dir] [route]",
		Short: "Print the overview of a file",
		Long: `Print the overview rows of a file as the viewer would paint them for a
container of the given height: one line per row with its anchor and its
glyph or severity indicator.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverview(cmd, args, opts, ovOpts)
		},
	}

	ovOpts.route.register(cmd)
	cmd.Flags().IntVar(&ovOpts.height, "height", 40, "container height in cells")
	cmd.Flags().IntVar(&ovOpts.width, "width", 0, "glyph width in cells (default: from config)")
	cmd.Flags().BoolVar(&ovOpts.ascii, "ascii", false, "use ASCII glyphs")

	return cmd
}

func runOverview(cmd *cobra.Command, args []string, opts *globalOptions, ovOpts *overviewOptions) error {
	logger := logging.Default()
	ctx := logging.WithLogger(cmd.Context(), logger)

	cfg, err := opts.loadConfig(logger)
	var cle *config.ConfigLoadError
	switch {
	case errors.As(err, &cle):
		logger.Warn("using default config", logging.FieldPath, cle.FilePath, logging.FieldError, cle.Err)
	case err != nil:
		return err
	}

	t, err := resolveTarget(args, ovOpts.route)
	if err != nil {
		return err
	}

	loader := &viewer.Loader{
		Review:   t.review,
		Provider: t.review.NewLinterProvider(),
		Lang:     cfg.Lang,
		Theme:    config.DefaultTheme(),
	}
	doc, err := loader.Load(ctx, t.route)
	if err != nil {
		return err
	}
	if doc.File.Binary {
		return fmt.Errorf("%s is a binary file", doc.Route.Path)
	}

	width := ovOpts.width
	if width <= 0 {
		width = cfg.Overview.Width
	}

	ov := overview.Build(doc.Content(), ovOpts.height, true, doc.Messages, cfg.OverviewOptions())
	logger.Debug("overview built",
		logging.FieldPath, doc.Route.Path,
		logging.FieldHeight, ovOpts.height,
		logging.FieldRows, ov.RowCount,
	)

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(opts.color, out))
	fmt.Fprintln(out, styles.FormatFileHeader(doc.Route.Path, doc.Messages.Len()))
	fmt.Fprintln(out, styles.Dim.Render(doc.Route.String()))
	fmt.Fprint(out, styles.FormatOverview(ov, width, ovOpts.ascii))
	return nil
}
