// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// TemplateKind distinguishes stitch rows from free-text instructions such as
// "cast on" or "bind off".
type TemplateKind string

const (
	KindRegular TemplateKind = "regular"
	KindSpecial TemplateKind = "special"
)

// ParseTemplateKind accepts the document spellings of a kind. Empty means regular.
func ParseTemplateKind(s string) (TemplateKind, error) {
	switch s {
	case "", "regular":
		return KindRegular, nil
	case "special", "specialInstruction":
		return KindSpecial, nil
	}
	return "", fmt.Errorf("%w: unknown row type %q", ErrInvalidTemplate, s)
}

// TemplateMeta is the descriptive part shared by both template variants.
type TemplateMeta struct {
	Side        string
	Section     string
	Description string
	Kind        TemplateKind
}

// StepTemplate is the authored form of one row or a range of rows. It is
// implemented by *ExactTemplate and *RangedTemplate only.
type StepTemplate interface {
	// Span returns the first and last row covered, inclusive.
	Span() (first, last int)
	Covers(row int) bool
	Chunks() []Fragment
	Meta() TemplateMeta
	Label() string
	Range() hcl.Range
	template()
}

// ExactTemplate describes a single row.
type ExactTemplate struct {
	TemplateMeta
	Row           int
	StartingCount *int
	EndingCount   *int
	Fragments     []Fragment

	// Expanded holds rows stored fully expanded. When set, the row resolves
	// to exactly these instructions and Fragments is ignored.
	Expanded []AtomicInstruction

	DefRange hcl.Range
}

// RangedTemplate describes an inclusive range of rows sharing one fragment list.
type RangedTemplate struct {
	TemplateMeta
	From      int
	To        int
	NetChange *int
	Fragments []Fragment
	DefRange  hcl.Range
}

func (t *ExactTemplate) Span() (int, int)    { return t.Row, t.Row }
func (t *ExactTemplate) Covers(row int) bool { return row == t.Row }
func (t *ExactTemplate) Chunks() []Fragment  { return t.Fragments }
func (t *ExactTemplate) Meta() TemplateMeta  { return t.TemplateMeta }
func (t *ExactTemplate) Label() string       { return fmt.Sprintf("row %d", t.Row) }
func (t *ExactTemplate) Range() hcl.Range    { return t.DefRange }
func (*ExactTemplate) template()             {}

func (t *RangedTemplate) Span() (int, int)    { return t.From, t.To }
func (t *RangedTemplate) Covers(row int) bool { return row >= t.From && row <= t.To }
func (t *RangedTemplate) Chunks() []Fragment  { return t.Fragments }
func (t *RangedTemplate) Meta() TemplateMeta  { return t.TemplateMeta }
func (t *RangedTemplate) Label() string       { return fmt.Sprintf("rows %d-%d", t.From, t.To) }
func (t *RangedTemplate) Range() hcl.Range    { return t.DefRange }
func (*RangedTemplate) template()             {}

// IsPreExpanded reports whether the row is stored fully expanded. An empty
// instruction list does not count.
func (t *ExactTemplate) IsPreExpanded() bool {
	return len(t.Expanded) > 0
}

// ValidateTemplate rejects structures the engine can never resolve: rows
// below 1, inverted ranges, negative counts and negative repeats. A row may
// be stored expanded or as chunks, not both.
func ValidateTemplate(t StepTemplate) error {
	switch tt := t.(type) {
	case *ExactTemplate:
		if tt.Row < 1 {
			return fmt.Errorf("%w: row number %d is below 1", ErrInvalidTemplate, tt.Row)
		}
		if tt.StartingCount != nil && *tt.StartingCount < 0 {
			return fmt.Errorf("%w: %s has negative starting count", ErrInvalidTemplate, tt.Label())
		}
		if tt.EndingCount != nil && *tt.EndingCount < 0 {
			return fmt.Errorf("%w: %s has negative ending count", ErrInvalidTemplate, tt.Label())
		}
		if tt.IsPreExpanded() && len(tt.Fragments) > 0 {
			return fmt.Errorf("%w: %s has both expanded instructions and chunks", ErrInvalidTemplate, tt.Label())
		}
		for _, in := range tt.Expanded {
			if in.Count < 0 {
				return fmt.Errorf("%w: %s has negative count for %q", ErrInvalidTemplate, tt.Label(), in.Token)
			}
		}
	case *RangedTemplate:
		if tt.From < 1 || tt.To < tt.From {
			return fmt.Errorf("%w: invalid row range %d-%d", ErrInvalidTemplate, tt.From, tt.To)
		}
	case nil:
		return fmt.Errorf("%w: nil template", ErrInvalidTemplate)
	default:
		panic(fmt.Sprintf("model: unhandled template type %T", t))
	}
	for _, f := range t.Chunks() {
		if err := validateFragment(f); err != nil {
			return fmt.Errorf("%s: %w", t.Label(), err)
		}
	}
	return nil
}
