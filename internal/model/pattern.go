// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import (
	"github.com/hashicorp/hcl/v2"
)

// Pattern is the format-agnostic representation of a pattern document.
type Pattern struct {
	ID           string
	Metadata     Metadata
	Glossary     map[string]GlossaryEntry
	Templates    []StepTemplate
	Calculations []*CalculationDef
	Source       *FSInfo
}

// Metadata holds the descriptive header of a pattern.
type Metadata struct {
	Name   string
	Author string
	Craft  string

	// MaxRows is the declared row total. Zero means "the highest row any
	// template covers".
	MaxRows int

	// CastOn is the foundational count row 1 starts from.
	CastOn *int

	Extra map[string]string
}

// CalculationDef is a user-defined dynamic calculation carried by the
// document. Expression is evaluated by the calc package.
type CalculationDef struct {
	Name        string
	Description string
	Expression  hcl.Expression
	DefRange    hcl.Range
}

// NewPattern creates an empty pattern with initialised collections.
func NewPattern(id string) *Pattern {
	return &Pattern{
		ID:       id,
		Glossary: make(map[string]GlossaryEntry),
		Metadata: Metadata{Extra: make(map[string]string)},
	}
}

// Rows returns the declared row total, falling back to the highest row
// covered by a template.
func (p *Pattern) Rows() int {
	if p.Metadata.MaxRows > 0 {
		return p.Metadata.MaxRows
	}
	highest := 0
	for _, t := range p.Templates {
		_, last := t.Span()
		if last > highest {
			highest = last
		}
	}
	return highest
}

// Name returns the pattern's display name, or its ID when it has none.
func (p *Pattern) Name() string {
	if p.Metadata.Name != "" {
		return p.Metadata.Name
	}
	return p.ID
}

// IntPtr is a small helper for optional counts.
func IntPtr(v int) *int {
	return &v
}
