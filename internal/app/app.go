package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/hashicorp/hcl/v2"
	"github.com/nyantoasty/stitchgrid/internal/config"
	"github.com/nyantoasty/stitchgrid/internal/ctxlog"
	"github.com/nyantoasty/stitchgrid/internal/document"
	"github.com/nyantoasty/stitchgrid/internal/engine"
	hclloader "github.com/nyantoasty/stitchgrid/internal/hcl"
	"github.com/nyantoasty/stitchgrid/internal/model"
	"github.com/nyantoasty/stitchgrid/internal/validate"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	problems *problemCounter
	config   *Config
}

// NewApp is the constructor for the main application. Results are written
// to outW and logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger, problems := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")
	return &App{
		outW:     outW,
		logger:   logger,
		problems: problems,
		config:   cfg,
	}
}

// Context returns ctx carrying the app's logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Warnings is the number of warnings logged so far.
func (a *App) Warnings() int {
	return int(a.problems.warnings.Load())
}

// Document is one loaded pattern with everything known about it.
type Document struct {
	Paths   []string
	Pattern *model.Pattern
	Engine  *engine.Engine

	// Diagnostics holds load, validation and dry-run problems.
	Diagnostics hcl.Diagnostics
	// Files holds HCL sources for rendering diagnostics, when the
	// document is HCL.
	Files map[string]*hcl.File
	// Err is set when the document could not be loaded at all.
	Err error
}

// HasErrors reports whether the document is unusable.
func (d *Document) HasErrors() bool {
	return d.Err != nil || d.Diagnostics.HasErrors()
}

// Load reads the pattern at paths, validates it statically and builds its
// engine. When the static checks pass every row is resolved once as well.
// The returned document is never nil.
func (a *App) Load(ctx context.Context, paths ...string) *Document {
	ctx = a.Context(ctx)
	logger := ctxlog.FromContext(ctx)
	doc := &Document{Paths: paths}

	format, err := config.DetectFormat(paths...)
	if err != nil {
		doc.Err = err
		return doc
	}
	var loader config.Loader
	if format == config.FormatHCL {
		hl := hclloader.NewLoader()
		defer func() { doc.Files = hl.Files() }()
		loader = hl
	} else {
		loader = document.NewLoader(format)
	}

	p, err := loader.Load(ctx, paths...)
	if err != nil {
		var diags hcl.Diagnostics
		if errors.As(err, &diags) {
			doc.Diagnostics = diags
		}
		doc.Err = err
		return doc
	}
	doc.Pattern = p
	ctx = ctxlog.With(ctx, "pattern_id", p.ID)
	logger = ctxlog.FromContext(ctx)

	doc.Diagnostics = append(doc.Diagnostics, validate.Pattern(p, validate.Options{
		StrictTokens:        a.config.Strict,
		CalculationFallback: a.config.CalcFallback != NoFallback,
	})...)

	eng, err := engine.New(p, a.engineOptions(logger)...)
	if err != nil {
		doc.Err = fmt.Errorf("pattern %q: %w", p.ID, err)
		return doc
	}
	doc.Engine = eng
	if !doc.Diagnostics.HasErrors() {
		doc.Diagnostics = append(doc.Diagnostics, eng.Check()...)
	}

	logger.Debug("Pattern loaded.", "rows", p.Rows(), "diagnostics", len(doc.Diagnostics), "has_errors", doc.HasErrors())
	return doc
}

func (a *App) engineOptions(logger *slog.Logger) []engine.Option {
	opts := []engine.Option{engine.WithLogger(logger)}
	if a.config.CalcFallback != NoFallback {
		opts = append(opts, engine.WithCalculationFallback(a.config.CalcFallback))
	}
	if a.config.Strict {
		opts = append(opts, engine.WithStrictCounts(), engine.WithStrictTokens())
	}
	return opts
}

// open loads a document for a command that needs a usable engine.
func (a *App) open(ctx context.Context, paths []string) (*Document, error) {
	doc := a.Load(ctx, paths...)
	if doc.Engine == nil {
		if err := a.writeDiagnostics(doc); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, doc.Err)
	}
	for _, d := range doc.Diagnostics {
		if d.Severity == hcl.DiagError {
			a.logger.Error(d.Summary, "detail", d.Detail)
			continue
		}
		a.logger.Warn(d.Summary, "detail", d.Detail)
	}
	return doc, nil
}
