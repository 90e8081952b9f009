package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"adaptercli/internal/config"
	"adaptercli/internal/files"
	"adaptercli/internal/infrastructure"
	"adaptercli/internal/operations"
	"adaptercli/internal/tableio"
	"adaptercli/pkg/contracts"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options holds the parsed command line
type options struct {
	output      string
	timeColumn  string
	dependent   string
	independent string
	configFile  string
	delimiter   string
	interval    float64
	precision   int
	strategy    string
	solver      string
	timeFormat  string
	noAlign     bool
	saveConfig  string
	parallel    int
	version     bool

	inputs []string
	set    map[string]bool
}

func newFlagSet(opts *options, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("adapter", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.output, "o", "", "output file path (default: <input>_cleaned.csv)")
	fs.StringVar(&opts.output, "output", "", "output file path (default: <input>_cleaned.csv)")
	fs.StringVar(&opts.timeColumn, "t", "", "time column name for alignment")
	fs.StringVar(&opts.timeColumn, "time", "", "time column name for alignment")
	fs.StringVar(&opts.dependent, "d", "", "comma-separated dependent variable names")
	fs.StringVar(&opts.dependent, "dependent", "", "comma-separated dependent variable names")
	fs.StringVar(&opts.independent, "i", "", "comma-separated independent variable names")
	fs.StringVar(&opts.independent, "independent", "", "comma-separated independent variable names")
	fs.StringVar(&opts.configFile, "c", "", "configuration file path")
	fs.StringVar(&opts.configFile, "config", "", "configuration file path")
	fs.StringVar(&opts.delimiter, "delimiter", "", `CSV delimiter character, "\t" for tab (default: comma)`)
	fs.Float64Var(&opts.interval, "interval", 0, "target time interval in seconds")
	fs.IntVar(&opts.precision, "precision", 0, "decimal places for numeric values")
	fs.StringVar(&opts.strategy, "strategy", "", "missing value strategy: mean, median or zero")
	fs.StringVar(&opts.solver, "solver", "", "interpolation method: linear, rk4, heun or cubic_spline")
	fs.StringVar(&opts.timeFormat, "time-format", "", "aligned time column format: iso or epoch")
	fs.BoolVar(&opts.noAlign, "no-align", false, "skip time alignment")
	fs.StringVar(&opts.saveConfig, "save-config", "", "write the effective settings to this file")
	fs.IntVar(&opts.parallel, "parallel", 0, "number of input files processed at once")
	fs.BoolVar(&opts.version, "version", false, "print version information and exit")

	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: adapter [options] <input_file|directory|pattern>...")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
	}
	return fs
}

// parseArgs parses flags and positional inputs in any order
func parseArgs(args []string, stderr io.Writer) (*options, error) {
	opts := &options{set: make(map[string]bool)}
	fs := newFlagSet(opts, stderr)

	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			break
		}
		opts.inputs = append(opts.inputs, rest[0])
		args = rest[1:]
	}

	fs.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})
	return opts, nil
}

func (o *options) isSet(names ...string) bool {
	for _, name := range names {
		if o.set[name] {
			return true
		}
	}
	return false
}

// apply overrides cfg with the flags given on the command line
func (o *options) apply(cfg *config.Config) {
	if o.isSet("t", "time") {
		cfg.TimeColumn = o.timeColumn
	}
	if o.isSet("d", "dependent") {
		cfg.DependentVariables = config.ParseList(o.dependent)
	}
	if o.isSet("i", "independent") {
		cfg.IndependentVariables = config.ParseList(o.independent)
	}
	if o.isSet("delimiter") {
		cfg.Delimiter = parseDelimiter(o.delimiter)
	}
	if o.isSet("interval") {
		cfg.TargetTimeInterval = o.interval
	}
	if o.isSet("precision") {
		cfg.NumericPrecision = o.precision
	}
	if o.isSet("strategy") {
		cfg.MissingValueStrategy = o.strategy
	}
	if o.isSet("solver") {
		cfg.SolverMethod = o.solver
	}
	if o.isSet("time-format") {
		cfg.TimeOutputFormat = o.timeFormat
	}
	if o.isSet("parallel") {
		cfg.MaxParallelFiles = o.parallel
	}
	if len(o.inputs) > 0 {
		cfg.InputFile = o.inputs[0]
	}
	if o.isSet("o", "output") {
		cfg.OutputFile = o.output
	}
}

// parseDelimiter keeps the first character; "\t" and "tab" mean a tab
func parseDelimiter(s string) string {
	switch s {
	case `\t`, "tab":
		return "\t"
	case "":
		return ""
	}
	return string([]rune(s)[:1])
}

// job is one input file and where its result goes
type job struct {
	input  string
	output string
}

// plan maps every input to its output. Directories and glob patterns
// expand to their table files. An explicit output only applies to a single
// input.
func plan(opts *options, cfg *config.Config) ([]job, error) {
	args := opts.inputs
	if len(args) == 0 && cfg.InputFile != "" {
		args = []string{cfg.InputFile}
	}
	inputs, err := files.NewDiscovery("").ExpandInputs(args)
	if err != nil {
		return nil, err
	}
	jobs := make([]job, 0, len(inputs))
	for _, input := range inputs {
		output := tableio.DefaultOutputPath(input)
		if len(inputs) == 1 && opts.isSet("o", "output") {
			output = opts.output
		}
		jobs = append(jobs, job{input: input, output: output})
	}
	return jobs, nil
}

// loadConfig builds the effective configuration: defaults, settings file,
// environment, then flags. A missing settings file is only a warning.
func loadConfig(opts *options, stderr io.Writer) (*config.Config, error) {
	cfg := config.Default()
	if opts.configFile != "" {
		err := config.LoadFile(opts.configFile, cfg)
		switch {
		case errors.Is(err, os.ErrNotExist):
			fmt.Fprintf(stderr, "Warning: config file %s not found, using defaults\n", opts.configFile)
		case err != nil:
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	opts.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 1
	}
	if opts.version {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return 0
	}

	cfg, err := loadConfig(opts, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if opts.saveConfig != "" {
		if err := config.SaveSettingsFile(opts.saveConfig, cfg); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Settings saved to: %s\n", opts.saveConfig)
	}

	jobs, err := plan(opts, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if len(jobs) == 0 {
		if opts.saveConfig != "" {
			return 0
		}
		fmt.Fprintln(stderr, "Error: No input file specified")
		return 1
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: failed to initialize logger, using default: %v\n", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	logger.Info("Starting adapter", slog.Any("config", cfg), slog.Int("inputs", len(jobs)))

	providers, err := infrastructure.InitializeOTel(cfg.Telemetry, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Error("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	metrics, err := infrastructure.NewPipelineMetrics(providers.Meter)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	pipeline, err := operations.NewPipeline(cfg, operations.PipelineOptions{
		Logger:        logger,
		Providers:     providers,
		Metrics:       metrics,
		SkipAlignment: opts.noAlign,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results := make([]string, len(jobs))
	failures := make([]error, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.MaxParallelFiles)
	for i, j := range jobs {
		g.Go(func() error {
			runCtx := infrastructure.ContextWithTraceID(gctx)
			state, err := pipeline.Run(runCtx, j.input, j.output)
			if err != nil {
				failures[i] = fmt.Errorf("%s: %w", j.input, err)
				if operations.GetErrorType(err) == operations.ErrorTypeCancellation {
					return err
				}
				return nil
			}
			results[i] = summarize(state)
			return nil
		})
	}
	_ = g.Wait()

	exit := 0
	for i := range jobs {
		if failures[i] != nil {
			fmt.Fprintf(stderr, "Error: %v\n", failures[i])
			exit = 1
			continue
		}
		fmt.Fprintln(stdout, results[i])
	}
	return exit
}

// summarize describes a finished run in one line
func summarize(state *operations.OperationState) string {
	if reason, halted := state.Halted(); halted {
		return fmt.Sprintf("Skipped %s: %s", state.InputPath, reason)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Processed %d rows from %s", state.Table.Len(), state.InputPath)
	if state.CleanStats.DuplicatesRemoved > 0 {
		fmt.Fprintf(&b, " (%d duplicates removed)", state.CleanStats.DuplicatesRemoved)
	}
	fmt.Fprintf(&b, ", output written to: %s", state.OutputPath)
	return b.String()
}
