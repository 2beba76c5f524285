// Package cli implements the logifold command: it folds the logical
// expressions of YAML expression documents and prints the results.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/funvibe/logifold/internal/ast"
	"github.com/funvibe/logifold/internal/config"
	"github.com/funvibe/logifold/internal/diagnostics"
	"github.com/funvibe/logifold/internal/fold"
	"github.com/funvibe/logifold/internal/parser"
	"github.com/funvibe/logifold/internal/pipeline"
	"github.com/funvibe/logifold/internal/prettyprinter"
)

// Exit statuses.
const (
	ExitOK    = 0
	ExitError = 1 // unreadable input, malformed document or bad configuration
	ExitUsage = 2
)

const usage = `Usage: logifold [-config file] [-watch] [-trace] [-no-color] file.yaml...

Folds the logical expressions in each YAML expression document and prints
the folded form of every entry. Directories are searched for *.yaml files.
`

type options struct {
	configPath string
	watch      bool
	trace      bool
	noColor    bool
	files      []string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("logifold", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.configPath, "config", "", "configuration file (default: ./"+config.ConfigFileName+" when present)")
	fs.BoolVar(&opts.watch, "watch", false, "fold again whenever an input file changes")
	fs.BoolVar(&opts.trace, "trace", false, "log every folding step to stderr")
	fs.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.files = fs.Args()
	if len(opts.files) == 0 {
		fs.Usage()
		return nil, errors.New("no input files")
	}
	return opts, nil
}

// Run is the logifold command. It returns the process exit status.
func Run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return RunContext(ctx, args, stdout, stderr)
}

// RunContext is Run with a caller-controlled lifetime; watch mode returns
// when ctx is done.
func RunContext(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if opts.trace {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		return ExitError
	}
	pal := palette{enabled: useColor(stdout, cfg.Color, opts.noColor)}
	errPal := palette{enabled: useColor(stderr, cfg.Color, opts.noColor)}

	files, err := expandInputs(opts.files)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return ExitError
	}

	r := &reporter{cfg: cfg, logger: logger, stdout: stdout, stderr: stderr, pal: pal, errPal: errPal}
	status := r.foldAndReport(ctx, files)
	if !opts.watch {
		return status
	}

	fw, err := newFileWatcher(files)
	if err != nil {
		fmt.Fprintf(stderr, "Error watching files: %s\n", err)
		return ExitError
	}
	defer fw.Close()
	logger.Debug("watching", "files", len(files))
	err = fw.run(ctx, func(changed []string) {
		fmt.Fprintln(stdout, pal.bold("--- changed: "+fmt.Sprint(changed)))
		r.foldAndReport(ctx, changed)
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error watching files: %s\n", err)
		return ExitError
	}
	return ExitOK
}

// loadConfig reads the configuration named by -config, or ./logifold.yaml
// when it exists, or falls back to the defaults. Environment overrides
// apply in every case.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if _, err := os.Stat(config.ConfigFileName); err == nil {
			path = config.ConfigFileName
		}
	}
	if path != "" {
		return config.LoadConfig(path)
	}
	cfg := config.Default()
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// foldFiles runs the pipeline over every file concurrently. Results keep
// the order of files. An unreadable file gets a context carrying only the
// read error, so the other files are still reported. The returned error is
// set only when ctx is cancelled.
func foldFiles(ctx context.Context, cfg *config.Config, logger *slog.Logger, files []string) ([]*pipeline.PipelineContext, error) {
	results := make([]*pipeline.PipelineContext, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			src, err := os.ReadFile(file)
			if err != nil {
				res := pipeline.NewPipelineContext(file, nil, cfg)
				res.Errors = append(res.Errors, diagnostics.NewError(diagnostics.ErrI001, file, err.Error()))
				results[i] = res
				return nil
			}
			p := pipeline.New(&parser.ParserProcessor{}, &fold.FoldProcessor{Logger: logger})
			results[i] = p.Run(pipeline.NewPipelineContext(file, src, cfg))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// reporter folds files and prints the outcome.
type reporter struct {
	cfg            *config.Config
	logger         *slog.Logger
	stdout, stderr io.Writer
	pal, errPal    palette
}

func (r *reporter) foldAndReport(ctx context.Context, files []string) int {
	results, err := foldFiles(ctx, r.cfg, r.logger, files)
	if err != nil {
		fmt.Fprintf(r.stderr, "Error: %s\n", err)
		return ExitError
	}
	status := ExitOK
	for _, res := range results {
		if r.report(res) {
			status = ExitError
		}
	}
	return status
}

// report prints the folded entries of one file and its diagnostics. It
// returns true when the file itself had errors; folding diagnostics are
// shown but do not fail the run.
func (r *reporter) report(res *pipeline.PipelineContext) bool {
	for _, err := range res.Errors {
		printDiagnostic(r.stderr, r.errPal, err)
	}
	for _, unit := range res.Units {
		fmt.Fprintf(r.stdout, "%s [%s]\n", r.pal.bold(res.FilePath), unit.Name)
		for _, entry := range unit.Entries {
			folded := prettyprinter.Print(entry.Folded)
			if _, isConst := entry.Folded.(*ast.Constant); isConst {
				folded = r.pal.green(folded)
			}
			fmt.Fprintf(r.stdout, "  %s: %s => %s\n", entry.Name, prettyprinter.Print(entry.Expr), folded)
		}
		for _, d := range unit.Diagnostics {
			printDiagnostic(r.stderr, r.errPal, d)
		}
	}
	return len(res.Errors) > 0
}

func printDiagnostic(w io.Writer, pal palette, d *diagnostics.DiagnosticError) {
	loc := d.File
	if d.Line > 0 {
		loc = fmt.Sprintf("%s:%d", d.File, d.Line)
	}
	if loc != "" {
		loc += ": "
	}
	fmt.Fprintf(w, "%s%s: %s\n", loc, pal.red("error["+string(d.Code)+"]"), d.Message)
}
