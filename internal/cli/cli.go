package cli

import (
	"context"
	"errors"
	"io"

	"github.com/nyantoasty/stitchgrid/internal/app"
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	ExitInvalid = 1
	ExitUsage   = 2
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	logFormat    string
	logLevel     string
	output       string
	strict       bool
	calcFallback int
	workers      int
}

func (f *globalFlags) config() (*app.Config, error) {
	return app.NewConfig(app.Config{
		LogFormat:    f.logFormat,
		LogLevel:     f.logLevel,
		Output:       f.output,
		Strict:       f.strict,
		CalcFallback: f.calcFallback,
		WorkerCount:  f.workers,
	})
}

// env is what a subcommand gets to work with.
type env struct {
	flags *globalFlags
	outW  io.Writer
	errW  io.Writer
}

// newApp validates the flags and builds the app.
func (e *env) newApp() (*app.App, error) {
	cfg, err := e.flags.config()
	if err != nil {
		return nil, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	return app.NewApp(e.outW, e.errW, cfg), nil
}

// NewRootCommand builds the stitchgrid command tree. Results go to outW,
// logs to errW.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	e := &env{flags: &globalFlags{}, outW: outW, errW: errW}

	root := &cobra.Command{
		Use:   "stitchgrid",
		Short: "Resolve knitting and crochet patterns row by row",
		Long: `stitchgrid reads a pattern written in HCL, JSON or YAML and works out,
for any row, the exact stitches to make and how many stitches are on the
needle before and after it.

PATH is a pattern file, or a directory of .hcl files that make up one pattern.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: ExitUsage, Message: err.Error()}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&e.flags.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	pf.StringVar(&e.flags.logLevel, "log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.StringVarP(&e.flags.output, "output", "o", app.OutputText, "Result format. Options: 'text', 'yaml' or 'json'.")
	pf.BoolVar(&e.flags.strict, "strict", false, "Treat count mismatches and unknown stitch codes as errors.")
	pf.IntVar(&e.flags.calcFallback, "calc-fallback", app.NoFallback, "Count used for unknown calculations. -1 fails on them instead.")
	pf.IntVar(&e.flags.workers, "workers", 4, "Number of documents validated at once.")

	root.AddCommand(
		newValidateCommand(e),
		newResolveCommand(e),
		newCountsCommand(e),
		newLocateCommand(e),
	)
	return root
}

// Execute runs the command tree on args. Usage problems come back as an
// ExitError with ExitUsage, invalid patterns with ExitInvalid.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	root := NewRootCommand(outW, errW)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	var cmdErr *commandError
	if errors.As(err, &cmdErr) {
		return &ExitError{Code: ExitInvalid, Message: cmdErr.err.Error()}
	}
	// Anything else was raised by cobra itself: unknown commands and
	// argument count checks.
	return &ExitError{Code: ExitUsage, Message: err.Error()}
}

// commandError marks an error returned by a command's own work.
type commandError struct {
	err error
}

func (e *commandError) Error() string { return e.err.Error() }
func (e *commandError) Unwrap() error { return e.err }

func wrap(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return &commandError{err: err}
}
