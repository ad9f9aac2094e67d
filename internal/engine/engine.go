// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package engine

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/nyantoasty/stitchgrid/internal/calc"
	"github.com/nyantoasty/stitchgrid/internal/countstore"
	"github.com/nyantoasty/stitchgrid/internal/ctxlog"
	"github.com/nyantoasty/stitchgrid/internal/expand"
	"github.com/nyantoasty/stitchgrid/internal/glossary"
	"github.com/nyantoasty/stitchgrid/internal/inmemorystore"
	"github.com/nyantoasty/stitchgrid/internal/model"
	"github.com/nyantoasty/stitchgrid/internal/templateindex"
)

// Engine resolves rows of one loaded pattern.
type Engine struct {
	mu sync.Mutex

	opts   options
	logger *slog.Logger
	store  countstore.Store

	pattern  *model.Pattern
	index    *templateindex.Index
	glossary *glossary.Registry
	calcs    *calc.Registry
}

// New creates an engine and loads p into it.
func New(p *model.Pattern, opts ...Option) (*Engine, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.store == nil {
		o.store = inmemorystore.New()
	}
	e := &Engine{
		opts:   o,
		logger: ctxlog.OrDiscard(o.logger),
		store:  o.store,
	}
	if err := e.Load(p); err != nil {
		return nil, err
	}
	return e, nil
}

// Load replaces the current pattern and discards every cached count. On
// error the previously loaded pattern stays in place.
func (e *Engine) Load(p *model.Pattern) error {
	if p == nil {
		return fmt.Errorf("engine: nil pattern")
	}
	for _, t := range p.Templates {
		if err := model.ValidateTemplate(t); err != nil {
			return err
		}
	}

	logger := e.logger.With("pattern_id", p.ID)
	calcs := calc.New(append([]calc.Option{calc.WithLogger(logger)}, e.opts.calcOptions...)...)
	if err := calcs.RegisterDefs(p.Calculations); err != nil {
		return fmt.Errorf("pattern %q: %w", p.ID, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.pattern = p
	e.index = templateindex.New(p.Templates)
	e.glossary = glossary.New(p.Glossary, logger)
	e.calcs = calcs
	e.store.Reset()

	logger.Debug("Pattern loaded into engine.", "templates", len(p.Templates), "rows", p.Rows(), "glossary", len(p.Glossary))
	return nil
}

// Pattern returns the loaded pattern.
func (e *Engine) Pattern() *model.Pattern {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pattern
}

// Glossary returns the glossary registry of the loaded pattern.
func (e *Engine) Glossary() *glossary.Registry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.glossary
}

// Calculations returns the calculation registry of the loaded pattern.
func (e *Engine) Calculations() *calc.Registry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calcs
}

// Index returns the template index of the loaded pattern.
func (e *Engine) Index() *templateindex.Index {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.index
}

// Rows is the row total of the loaded pattern.
func (e *Engine) Rows() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pattern.Rows()
}

func (e *Engine) deps() expand.Deps {
	return expand.Deps{Glossary: e.glossary, Calcs: e.calcs}
}

func (e *Engine) checkRange(row int) error {
	if total := e.pattern.Rows(); row < 1 || row > total {
		return rowErr(row, fmt.Errorf("%w: %d not in [1, %d]", ErrOutOfRange, row, total))
	}
	return nil
}
