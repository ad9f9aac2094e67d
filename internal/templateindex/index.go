// Package templateindex resolves a row number to the template that authors
// it. An exact template for a row always wins over any ranged template that
// covers the same row; among overlapping ranged templates the first one in
// document order wins. Overlaps and duplicate exact rows are kept so that
// validation can report them.
package templateindex

import (
	"errors"
	"fmt"

	"github.com/nyantoasty/stitchgrid/internal/model"
)

// ErrTemplateNotFound means no template covers the requested row.
var ErrTemplateNotFound = errors.New("templateindex: no template covers row")

// Overlap describes two ranged templates that share rows.
type Overlap struct {
	Winner *model.RangedTemplate
	Loser  *model.RangedTemplate
	From   int
	To     int
}

// Index is an immutable row -> template lookup.
type Index struct {
	exact      map[int]*model.ExactTemplate
	ranged     []*model.RangedTemplate
	duplicates []*model.ExactTemplate
	overlaps   []Overlap
	maxRow     int
}

// New builds an index over templates in document order.
func New(templates []model.StepTemplate) *Index {
	ix := &Index{exact: make(map[int]*model.ExactTemplate)}
	for _, t := range templates {
		switch tt := t.(type) {
		case *model.ExactTemplate:
			if _, exists := ix.exact[tt.Row]; exists {
				ix.duplicates = append(ix.duplicates, tt)
				continue
			}
			ix.exact[tt.Row] = tt
		case *model.RangedTemplate:
			for _, earlier := range ix.ranged {
				from, to := max(earlier.From, tt.From), min(earlier.To, tt.To)
				if from <= to {
					ix.overlaps = append(ix.overlaps, Overlap{Winner: earlier, Loser: tt, From: from, To: to})
				}
			}
			ix.ranged = append(ix.ranged, tt)
		default:
			panic(fmt.Sprintf("templateindex: unhandled template type %T", t))
		}
		if _, last := t.Span(); last > ix.maxRow {
			ix.maxRow = last
		}
	}
	return ix
}

// Lookup returns the template for row.
func (ix *Index) Lookup(row int) (model.StepTemplate, error) {
	if t, ok := ix.exact[row]; ok {
		return t, nil
	}
	for _, t := range ix.ranged {
		if t.Covers(row) {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrTemplateNotFound, row)
}

// Overlaps lists every pair of ranged templates that share rows.
func (ix *Index) Overlaps() []Overlap {
	return ix.overlaps
}

// Duplicates lists exact templates shadowed by an earlier template for the same row.
func (ix *Index) Duplicates() []*model.ExactTemplate {
	return ix.duplicates
}

// MaxRow is the highest row covered by any template.
func (ix *Index) MaxRow() int {
	return ix.maxRow
}

// Gaps lists rows in [1, limit] that no template covers.
func (ix *Index) Gaps(limit int) []int {
	var gaps []int
	for row := 1; row <= limit; row++ {
		if _, err := ix.Lookup(row); err != nil {
			gaps = append(gaps, row)
		}
	}
	return gaps
}
