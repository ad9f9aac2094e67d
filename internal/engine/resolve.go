// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package engine

import (
	"fmt"

	"github.com/nyantoasty/stitchgrid/internal/expand"
	"github.com/nyantoasty/stitchgrid/internal/locate"
	"github.com/nyantoasty/stitchgrid/internal/model"
)

// ResolveRow expands row into atomic instructions with its running counts.
// Resolving the same row twice yields identical output.
func (e *Engine) ResolveRow(row int) (*model.ResolvedRow, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resolveRow(row)
}

func (e *Engine) resolveRow(row int) (*model.ResolvedRow, error) {
	c, err := e.counts(row)
	if err != nil {
		return nil, err
	}
	tpl, err := e.index.Lookup(row)
	if err != nil {
		return nil, rowErr(row, err)
	}
	instrs, err := e.instructions(tpl, row, c.Starting)
	if err != nil {
		return nil, rowErr(row, err)
	}

	meta := tpl.Meta()
	kind := meta.Kind
	if kind == "" {
		kind = model.KindRegular
	}
	return &model.ResolvedRow{
		Row:                 row,
		Side:                meta.Side,
		Section:             meta.Section,
		Kind:                kind,
		Description:         meta.Description,
		StartingCount:       c.Starting,
		EndingCount:         c.Ending,
		ComputedEndingCount: c.Starting + expand.NetChange(instrs, e.glossary),
		Instructions:        instrs,
	}, nil
}

// ResolveRange resolves rows from..to inclusive.
func (e *Engine) ResolveRange(from, to int) ([]*model.ResolvedRow, error) {
	if to < from {
		return nil, fmt.Errorf("%w: range %d-%d is inverted", ErrOutOfRange, from, to)
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	rows := make([]*model.ResolvedRow, 0, to-from+1)
	for row := from; row <= to; row++ {
		rr, err := e.resolveRow(row)
		if err != nil {
			return nil, err
		}
		rows = append(rows, rr)
	}
	return rows, nil
}

// Locate finds the instruction that produced the stitch at position of row.
func (e *Engine) Locate(row, position int) (locate.Location, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rr, err := e.resolveRow(row)
	if err != nil {
		return locate.Location{}, err
	}
	loc, err := locate.Locate(rr.Instructions, position, e.glossary)
	if err != nil {
		return locate.Location{}, rowErr(row, err)
	}
	return loc, nil
}
