package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/dpkgtimeline/internal/logging"
	"github.com/ccollicutt/dpkgtimeline/pkg/classifier"
	"github.com/ccollicutt/dpkgtimeline/pkg/config"
	"github.com/ccollicutt/dpkgtimeline/pkg/output"
	"github.com/ccollicutt/dpkgtimeline/pkg/parser"
	"github.com/ccollicutt/dpkgtimeline/pkg/timeline"
)

// TimelineOptions holds command-line options for printing the timeline.
type TimelineOptions struct {
	// Matcher set selection
	All         bool
	StatusCode  bool
	CommandCode bool
	Set         string

	Number int
	Clamp  bool

	Config   string
	LogGlobs []string

	Output  string
	Quiet   bool
	Verbose bool
}

// NewTimelineCommand creates the command that prints the package timeline.
// It is the root command of the binary.
func NewTimelineCommand() *cobra.Command {
	opts := &TimelineOptions{}

	cmd := &cobra.Command{
		Use:   "dpkgtimeline",
		Short: "Print a timeline of package installs and removals",
		Long: `dpkgtimeline reads the dpkg log and its rotated, possibly compressed
siblings (dpkg.log, dpkg.log.1, dpkg.log.2.gz, ...) and prints matching
lines oldest first.

Matcher sets:
  all           status and command lines (default)
  status_code   "status installed" and "status not-installed" lines
  command_code  install, remove and purge lines

A line matched by several patterns of the active set is printed once per
matching pattern.

Exit codes:
  0 - Timeline printed
  2 - Configuration, parse or read error`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimeline(cmd, opts)
		},
	}

	// Flags
	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "Print status and command lines")
	cmd.Flags().BoolVarP(&opts.StatusCode, "status_code", "s", false, "Print only status lines from logs")
	cmd.Flags().BoolVarP(&opts.CommandCode, "command_code", "c", false, "Print only command lines from logs")
	cmd.Flags().StringVar(&opts.Set, "set", "", "Matcher set from the config file (used when -a/-s/-c are not given)")
	cmd.Flags().IntVarP(&opts.Number, "number", "n", 0, "Number of lines to print (the most recent N)")
	cmd.Flags().BoolVar(&opts.Clamp, "clamp", false, "Print every match instead of failing when --number exceeds the matches")

	cmd.Flags().StringVar(&opts.Config, "config", "", "Configuration file (YAML)")
	cmd.Flags().StringSliceVar(&opts.LogGlobs, "log-glob", nil, "Log file glob(s), overriding log_sources (can be repeated)")

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json|table)")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no entries")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Log debug details to stderr")

	return cmd
}

func runTimeline(cmd *cobra.Command, opts *TimelineOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.Number < 0 {
		return fmt.Errorf("invalid --number %d: must not be negative", opts.Number)
	}

	cfg, err := loadConfig(ctx, opts.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if len(opts.LogGlobs) > 0 {
		cfg.LogSources = opts.LogGlobs
	}

	level := cfg.LogLevel
	if opts.Verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Options{
		Level:  level,
		Format: cfg.LogFormat,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	out := cmd.OutOrStdout()
	formatter, err := createFormatter(opts, out)
	if err != nil {
		return err
	}

	// Expand log source globs
	files, err := parser.ExpandGlobs(cfg.LogSources)
	if err != nil {
		return fmt.Errorf("expanding log sources: %w", err)
	}
	logger.Debug("expanded log sources", "patterns", cfg.LogSources, "files", len(files))
	if len(files) == 0 {
		logger.Warn("no log files matched", "patterns", cfg.LogSources)
	}

	builderOpts := []timeline.Option{
		timeline.WithMatcherSet(resolveMatcherSet(opts)),
		timeline.WithCount(opts.Number),
		timeline.WithLogger(logger),
	}
	if opts.Clamp {
		builderOpts = append(builderOpts, timeline.WithClamp(true))
	}

	b, err := timeline.New(cfg, builderOpts...)
	if err != nil {
		return fmt.Errorf("creating timeline: %w", err)
	}

	result, err := b.Build(ctx, files)
	if err != nil {
		var countErr *timeline.CountError
		if errors.As(err, &countErr) {
			return err
		}
		return fmt.Errorf("building timeline: %w", err)
	}

	report := output.NewReport(result, opts.Config)
	if err := formatter.Format(ctx, report, out); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	return nil
}

// loadConfig reads the config file when one is given and falls back to the
// built-in defaults otherwise.
func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	if path == "" {
		return config.Default(ctx)
	}
	return config.Load(ctx, path)
}

// resolveMatcherSet picks the active matcher set. The boolean flags win in
// the order all, status_code, command_code; --set applies only when none of
// them is given.
func resolveMatcherSet(opts *TimelineOptions) string {
	switch {
	case opts.All:
		return classifier.SetAll
	case opts.StatusCode:
		return classifier.SetStatusCode
	case opts.CommandCode:
		return classifier.SetCommandCode
	case opts.Set != "":
		return opts.Set
	default:
		return classifier.SetAll
	}
}

func createFormatter(opts *TimelineOptions, w io.Writer) (output.Formatter, error) {
	formatOpts := output.FormatOptions{
		Quiet: opts.Quiet,
		Color: output.IsColorEnabled(w),
	}

	switch opts.Output {
	case "text":
		return output.NewTextFormatter(formatOpts), nil
	case "json":
		return output.NewJSONFormatter(formatOpts), nil
	case "table":
		return output.NewTableFormatter(formatOpts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text, json or table)", opts.Output)
	}
}
