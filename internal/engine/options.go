package engine

import (
	"log/slog"

	"github.com/nyantoasty/stitchgrid/internal/calc"
	"github.com/nyantoasty/stitchgrid/internal/countstore"
)

type options struct {
	store        countstore.Store
	logger       *slog.Logger
	calcOptions  []calc.Option
	strictCounts bool
	strictTokens bool
}

// Option configures an Engine.
type Option func(*options)

// WithStore replaces the default in-memory count cache.
func WithStore(s countstore.Store) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithLogger sets the logger used for warnings and debug output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithCalculationFallback makes unknown calculations evaluate to n. Without
// it they fail with calc.ErrUnknownCalculation.
func WithCalculationFallback(n int) Option {
	return func(o *options) {
		o.calcOptions = append(o.calcOptions, calc.WithFallback(n))
	}
}

// WithStrictCounts turns declared/computed count disagreements into
// ErrCountMismatch instead of a logged warning.
func WithStrictCounts() Option {
	return func(o *options) {
		o.strictCounts = true
	}
}

// WithStrictTokens turns unknown token codes into glossary.ErrUnknownToken
// instead of a neutral fallback.
func WithStrictTokens() Option {
	return func(o *options) {
		o.strictTokens = true
	}
}
