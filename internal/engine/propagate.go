// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package engine

import (
	"fmt"

	"github.com/nyantoasty/stitchgrid/internal/calc"
	"github.com/nyantoasty/stitchgrid/internal/countstore"
	"github.com/nyantoasty/stitchgrid/internal/expand"
	"github.com/nyantoasty/stitchgrid/internal/model"
)

// StartingCount is the running count at the start of row.
func (e *Engine) StartingCount(row int) (int, error) {
	c, err := e.Counts(row)
	return c.Starting, err
}

// EndingCount is the running count at the end of row.
func (e *Engine) EndingCount(row int) (int, error) {
	c, err := e.Counts(row)
	return c.Ending, err
}

// Counts returns both running counts of row.
func (e *Engine) Counts(row int) (countstore.Counts, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.counts(row)
}

// counts fills the cache up to row. Callers hold e.mu.
func (e *Engine) counts(row int) (countstore.Counts, error) {
	if err := e.checkRange(row); err != nil {
		return countstore.Counts{}, err
	}
	if c, ok := e.store.Get(row); ok {
		return c, nil
	}

	first := row
	for first > 1 {
		if _, ok := e.store.Get(first - 1); ok {
			break
		}
		first--
	}
	if first < row {
		e.logger.Debug("Propagating counts forward.", "from_row", first, "to_row", row)
	}

	var c countstore.Counts
	for r := first; r <= row; r++ {
		starting, err := e.startingFor(r)
		if err != nil {
			return countstore.Counts{}, rowErr(r, err)
		}
		c, err = e.computeCounts(r, starting)
		if err != nil {
			return countstore.Counts{}, rowErr(r, err)
		}
		e.store.Put(r, c)
	}
	return c, nil
}

// startingFor relies on counts having cached row-1 already.
func (e *Engine) startingFor(row int) (int, error) {
	if row > 1 {
		prev, ok := e.store.Get(row - 1)
		if !ok {
			panic(fmt.Sprintf("engine: row %d resolved before row %d", row, row-1))
		}
		return prev.Ending, nil
	}
	return e.castOn()
}

func (e *Engine) castOn() (int, error) {
	if e.pattern.Metadata.CastOn != nil {
		return *e.pattern.Metadata.CastOn, nil
	}
	tpl, err := e.index.Lookup(1)
	if err == nil {
		if exact, ok := tpl.(*model.ExactTemplate); ok && exact.StartingCount != nil {
			return *exact.StartingCount, nil
		}
	}
	return 0, ErrNoCastOn
}

func (e *Engine) computeCounts(row, starting int) (countstore.Counts, error) {
	tpl, err := e.index.Lookup(row)
	if err != nil {
		return countstore.Counts{}, err
	}

	if exact, ok := tpl.(*model.ExactTemplate); ok && exact.StartingCount != nil && *exact.StartingCount != starting {
		if err := e.mismatch(row, "starting", *exact.StartingCount, starting); err != nil {
			return countstore.Counts{}, err
		}
	}

	declared := declaredEnding(tpl, starting)
	instrs, err := e.instructions(tpl, row, starting)
	if err != nil {
		if declared == nil || e.opts.strictCounts {
			return countstore.Counts{}, err
		}
		// The declared count stands; ResolveRow still reports the failure.
		e.logger.Debug("Chunks failed to expand, using declared ending count.", "row", row, "error", err)
		return countstore.Counts{Starting: starting, Ending: *declared}, nil
	}

	computed := starting + expand.NetChange(instrs, e.glossary)
	if declared == nil {
		return countstore.Counts{Starting: starting, Ending: computed}, nil
	}
	if computed != *declared {
		if err := e.mismatch(row, "ending", *declared, computed); err != nil {
			return countstore.Counts{}, err
		}
	}
	return countstore.Counts{Starting: starting, Ending: *declared}, nil
}

func (e *Engine) mismatch(row int, which string, declared, computed int) error {
	if e.opts.strictCounts {
		return fmt.Errorf("%w: %s count declared %d, computed %d", ErrCountMismatch, which, declared, computed)
	}
	e.logger.Warn("Declared count disagrees with computed count.", "row", row, "count", which, "declared", declared, "computed", computed)
	return nil
}

// declaredEnding is the ending count the template states without expansion.
func declaredEnding(tpl model.StepTemplate, starting int) *int {
	switch t := tpl.(type) {
	case *model.ExactTemplate:
		return t.EndingCount
	case *model.RangedTemplate:
		if t.NetChange != nil {
			return model.IntPtr(starting + *t.NetChange)
		}
		return nil
	default:
		panic(fmt.Sprintf("engine: unhandled template type %T", tpl))
	}
}

// instructions expands tpl for row. Pre-expanded rows are copied through.
func (e *Engine) instructions(tpl model.StepTemplate, row, starting int) ([]model.AtomicInstruction, error) {
	var instrs []model.AtomicInstruction
	if exact, ok := tpl.(*model.ExactTemplate); ok && exact.IsPreExpanded() {
		instrs = append([]model.AtomicInstruction{}, exact.Expanded...)
	} else {
		rc := calc.RowContext{
			Row:            row,
			StartingCount:  starting,
			DeclaredEnding: declaredEnding(tpl, starting),
		}
		var err error
		instrs, err = expand.Row(tpl.Chunks(), rc, e.deps())
		if err != nil {
			return nil, err
		}
	}

	if e.opts.strictTokens {
		for _, in := range instrs {
			if _, err := e.glossary.Resolve(in.Token, true); err != nil {
				return nil, err
			}
		}
	}
	return instrs, nil
}
