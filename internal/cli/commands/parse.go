package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/appfwlog/appfwlog/internal/logger"
	"github.com/appfwlog/appfwlog/pkg/config"
	"github.com/appfwlog/appfwlog/pkg/detector"
	"github.com/appfwlog/appfwlog/pkg/event"
	"github.com/appfwlog/appfwlog/pkg/filter"
	"github.com/appfwlog/appfwlog/pkg/parser"
)

// ExitCode is set by commands to indicate the result.
var ExitCode = 0

// ParseOptions holds command-line options for the parse command.
type ParseOptions struct {
	Config   string
	Output   string
	Year     int
	Timezone string
	Filter   string
	Follow   bool
	Force    bool
	LogLevel string
	Quiet    bool
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse [flags] <log-file|glob>...",
		Short: "Parse application firewall logs into normalized events",
		Long: `Parse one or more appfirewall.log files into normalized events.

Each file is gated through format detection first: the first line must be
the firewall's log-creation record, otherwise the file is skipped (use
--force to parse anyway). Each file gets its own parsing state, so the
inferred year and repeated-line expansion never leak across files.

Events are written to stdout; diagnostics and the run summary go to stderr.

Exit codes:
  0 - At least one file parsed
  1 - All input files were rejected by format detection
  2 - Configuration or runtime error`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && opts.Config == "" {
				return fmt.Errorf("requires at least one log file, or --config")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Config file (YAML)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.Year, "year", "y", 0, "Year of the first record (0 = infer)")
	cmd.Flags().StringVarP(&opts.Timezone, "timezone", "z", "", "IANA timezone for file metadata times")
	cmd.Flags().StringVarP(&opts.Filter, "filter", "e", "", "Only emit events matching this expression")
	cmd.Flags().BoolVarP(&opts.Follow, "follow", "f", false, "Tail a single file and parse appended lines")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Skip format detection")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "Diagnostic log level (debug|info|warn)")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Suppress the run summary")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := resolveConfig(ctx, args, opts)
	if err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logging)
	defer func() { _ = log.Sync() }()

	sink, err := buildSink(cfg)
	if err != nil {
		return err
	}

	files, err := expandInputs(cfg.Inputs)
	if err != nil {
		return err
	}

	if opts.Follow {
		if len(files) != 1 {
			return fmt.Errorf("--follow requires exactly one input file, got %d", len(files))
		}
		return followFile(ctx, files[0], cfg, loc, sink, log)
	}

	var total parser.Stats
	parsed := 0
	for _, path := range files {
		stats, err := parseFile(ctx, path, cfg, loc, sink, log, opts.Force)
		if err != nil {
			return err
		}
		if stats == nil {
			continue // rejected by format detection
		}
		parsed++
		addStats(&total, *stats)
	}

	if !opts.Quiet {
		printSummary(os.Stderr, len(files), parsed, total)
	}

	if parsed == 0 {
		ExitCode = 1
	}
	return nil
}

// resolveConfig merges the optional config file with command-line flags;
// flags win.
func resolveConfig(ctx context.Context, args []string, opts *ParseOptions) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.Config != "" {
		loaded, err := config.Load(ctx, opts.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if len(args) > 0 {
		cfg.Inputs = args
	}
	if opts.Output != "" {
		cfg.Output = opts.Output
	}
	if opts.Year != 0 {
		cfg.YearHint = opts.Year
	}
	if opts.Timezone != "" {
		cfg.Timezone = opts.Timezone
	}
	if opts.Filter != "" {
		cfg.Filter = opts.Filter
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildSink(cfg *config.Config) (event.Sink, error) {
	var sink event.Sink
	switch cfg.Output {
	case "", "text":
		sink = event.NewTextSink(os.Stdout)
	case "json":
		sink = event.NewJSONSink(os.Stdout)
	default:
		return nil, fmt.Errorf("unknown output format %q", cfg.Output)
	}

	if cfg.Filter != "" {
		f, err := filter.Compile(cfg.Filter)
		if err != nil {
			return nil, err
		}
		sink = filter.NewSink(sink, f)
	}
	return sink, nil
}

// parseFile parses one file with its own session. It returns nil stats when
// the file was rejected by format detection.
func parseFile(ctx context.Context, path string, cfg *config.Config, loc *time.Location, sink event.Sink, log *zap.SugaredLogger, force bool) (*parser.Stats, error) {
	src, err := parser.NewFileSource(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	first, err := src.Next(ctx)
	if err == io.EOF {
		log.Debugf("skipping empty file %s", path)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if !force && !detector.Detect(first.Text) {
		log.Debugf("not an application firewall log: %s", path)
		return nil, nil
	}

	sess := parser.NewSession(
		&parser.YearResolver{
			Hint:     cfg.YearHint,
			Files:    parser.StatTimes{Path: path},
			Location: loc,
		},
		sink,
		parser.WithLogger(log),
		parser.WithSource(path),
	)

	_ = sess.ProcessLine(first.Text)
	if err := parser.Run(ctx, src, sess); err != nil {
		return nil, err
	}

	stats := sess.Stats()
	return &stats, nil
}

// followFile tails a single live log. Detection is skipped: tailing starts
// at the current end of file, long past the init record.
func followFile(ctx context.Context, path string, cfg *config.Config, loc *time.Location, sink event.Sink, log *zap.SugaredLogger) error {
	src, err := parser.NewTailSource(path)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	sess := parser.NewSession(
		&parser.YearResolver{
			Hint:     cfg.YearHint,
			Files:    parser.StatTimes{Path: path},
			Location: loc,
		},
		sink,
		parser.WithLogger(log),
		parser.WithSource(path),
	)

	err = parser.Run(ctx, src, sess)
	if err == context.Canceled {
		return nil
	}
	return err
}

// expandInputs turns paths and glob patterns into a sorted, deduplicated
// file list. Patterns matching nothing are kept as literal paths so the
// open error names the missing file.
func expandInputs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			matches = []string{pattern}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

func addStats(total *parser.Stats, s parser.Stats) {
	total.Lines += s.Lines
	total.Events += s.Events
	total.NoMatch += s.NoMatch
	total.InvalidTimestamp += s.InvalidTimestamp
	total.MissingPrior += s.MissingPrior
	total.DecodeAnomalies += s.DecodeAnomalies
}

func printSummary(w io.Writer, candidates, parsed int, s parser.Stats) {
	fmt.Fprintf(w, "appfwlog: %d/%d files parsed, %d lines, %d events\n",
		parsed, candidates, s.Lines, s.Events)
	if skipped := s.NoMatch + s.InvalidTimestamp + s.MissingPrior; skipped > 0 {
		fmt.Fprintf(w, "  skipped: %d unparsable, %d invalid timestamp, %d orphan repeat markers\n",
			s.NoMatch, s.InvalidTimestamp, s.MissingPrior)
	}
	if s.DecodeAnomalies > 0 {
		fmt.Fprintf(w, "  repaired: %d events with invalid byte sequences\n", s.DecodeAnomalies)
	}
}
