package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cornish/revu/config"
	"github.com/cornish/revu/internal/logging"
	"github.com/cornish/revu/internal/pretty"
	"github.com/cornish/revu/linter"
	"github.com/cornish/revu/viewer"
)

// ErrErrorsFound is returned by lint when the report has error messages.
// It only selects the exit code.
var ErrErrorsFound = errors.New("linter errors found")

type lintOptions struct {
	route routeFlags
	all   bool
}

func newLintCommand(opts *globalOptions) *cobra.Command {
	lintOpts := &lintOptions{}

	cmd := &cobra.Command{
		Use:   "lint [dir] [route]",
		Short: "Print the linter messages of a version",
		Long: `Print the linter messages of one file of a version, or of every file
with --all, followed by a summary. Exits non-zero when there are errors.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, opts, lintOpts)
		},
	}

	lintOpts.route.register(cmd)
	cmd.Flags().BoolVar(&lintOpts.all, "all", false, "print messages of every file")

	return cmd
}

func runLint(cmd *cobra.Command, args []string, opts *globalOptions, lintOpts *lintOptions) error {
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

	t, err := resolveTarget(args, lintOpts.route)
	if err != nil {
		return err
	}

	loader := &viewer.Loader{
		Review:   t.review,
		Provider: t.review.NewLinterProvider(),
		Lang:     cfg.Lang,
	}
	route, err := loader.Resolve(t.route)
	if err != nil {
		return err
	}

	lv, err := t.review.LinterVersion(route.Head, route.Path)
	if err != nil {
		return err
	}
	result, err := loader.Provider.Result(ctx, lv)
	if err != nil {
		return err
	}

	msgs := result.Messages
	if !lintOpts.all {
		mm := result.ForPath(route.Path)
		msgs = append(mm.Global, mm.ForLines(mm.Lines())...)
	}

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(opts.color, out))
	files := printMessages(out, styles, msgs)

	summary := (&linter.Result{Messages: msgs}).Summary()
	fmt.Fprint(out, styles.FormatSummaryOneLine(summary, files))

	if summary.Errors > 0 {
		return ErrErrorsFound
	}
	return nil
}

// printMessages prints msgs grouped by file, files sorted, messages in line
// order. It returns the number of files printed.
func printMessages(w io.Writer, styles *pretty.Styles, msgs []linter.Message) int {
	byFile := make(map[string][]linter.Message)
	for _, m := range msgs {
		byFile[m.File] = append(byFile[m.File], m)
	}

	files := make([]string, 0, len(byFile))
	for f := range byFile {
		files = append(files, f)
	}
	sort.Strings(files)

	for _, f := range files {
		fileMsgs := byFile[f]
		linter.SortByLine(fileMsgs)
		name := f
		if name == "" {
			name = "(no file)"
		}
		fmt.Fprintln(w, styles.FormatFileHeader(name, len(fileMsgs)))
		for _, m := range fileMsgs {
			fmt.Fprint(w, styles.FormatMessage(m))
		}
		fmt.Fprintln(w)
	}
	return len(files)
}
