package calc

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/nyantoasty/stitchgrid/internal/ctxlog"
	"github.com/nyantoasty/stitchgrid/internal/model"
)

// Func computes a count from a row context.
type Func func(RowContext) (int, error)

type entry struct {
	fn          Func
	description string
	builtin     bool
}

// Registry maps normalised calculation names to functions.
type Registry struct {
	entries  map[string]*entry
	fallback *int
	logger   *slog.Logger

	mu        sync.Mutex
	fallbacks map[string]int
}

// Option configures a Registry.
type Option func(*Registry)

// WithFallback makes unknown calculations evaluate to n instead of failing.
// Each use is counted and logged.
func WithFallback(n int) Option {
	if n < 0 {
		panic("calc: fallback must not be negative")
	}
	return func(r *Registry) {
		r.fallback = &n
	}
}

// WithLogger sets the logger used to report fallbacks.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// New returns a registry preloaded with the built-in calculations.
func New(opts ...Option) *Registry {
	r := &Registry{
		entries:   make(map[string]*entry),
		fallbacks: make(map[string]int),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = ctxlog.OrDiscard(r.logger)
	registerBuiltins(r)
	return r
}

// Normalize canonicalises a calculation name: surrounding space is dropped,
// the U+2212 minus sign becomes '-', and spaces around it are removed.
func Normalize(name string) string {
	n := strings.TrimSpace(name)
	n = strings.ReplaceAll(n, "−", "-")
	n = strings.ReplaceAll(n, " - ", "-")
	return n
}

// Register adds a calculation. Registering a name twice is a programming
// error and panics.
func (r *Registry) Register(name string, fn Func, description string) {
	if err := r.add(name, fn, description, false); err != nil {
		panic(err.Error())
	}
}

func (r *Registry) add(name string, fn Func, description string, builtin bool) error {
	key := Normalize(name)
	if key == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidExpression)
	}
	if _, exists := r.entries[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicate, key)
	}
	r.entries[key] = &entry{fn: fn, description: description, builtin: builtin}
	return nil
}

// RegisterDefs registers the calculations a pattern document defines.
func (r *Registry) RegisterDefs(defs []*model.CalculationDef) error {
	for _, def := range defs {
		if def.Expression == nil {
			return fmt.Errorf("%w: calculation %q has no value", ErrInvalidExpression, def.Name)
		}
		if err := r.add(def.Name, FromExpression(def.Expression), def.Description, false); err != nil {
			return err
		}
	}
	return nil
}

// Has reports whether name resolves to a registered calculation.
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[Normalize(name)]
	return ok
}

// IsBuiltin reports whether name is one of the built-in calculations.
func (r *Registry) IsBuiltin(name string) bool {
	e, ok := r.entries[Normalize(name)]
	return ok && e.builtin
}

// Describe returns the human-readable contract of a calculation.
func (r *Registry) Describe(name string) string {
	if e, ok := r.entries[Normalize(name)]; ok {
		return e.description
	}
	return ""
}

// Names lists registered calculations in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Evaluate runs the named calculation against rc.
func (r *Registry) Evaluate(name string, rc RowContext) (int, error) {
	key := Normalize(name)
	e, ok := r.entries[key]
	if !ok {
		if r.fallback == nil {
			return 0, fmt.Errorf("%w: %q (row %d)", ErrUnknownCalculation, name, rc.Row)
		}
		r.mu.Lock()
		r.fallbacks[key]++
		r.mu.Unlock()
		r.logger.Warn("Unknown calculation, using configured fallback.", "calculation", name, "row", rc.Row, "fallback", *r.fallback)
		return *r.fallback, nil
	}

	n, err := e.fn(rc)
	if err != nil {
		return 0, fmt.Errorf("calculation %q (row %d): %w", key, rc.Row, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %q gave %d on row %d (starting %d, consumed %d)", ErrNegativeCount, key, n, rc.Row, rc.StartingCount, rc.Consumed)
	}
	return n, nil
}

// Fallbacks returns how often each unknown calculation fell back.
func (r *Registry) Fallbacks() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int, len(r.fallbacks))
	for k, v := range r.fallbacks {
		out[k] = v
	}
	return out
}
