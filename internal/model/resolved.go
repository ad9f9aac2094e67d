// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

// AtomicInstruction is one fully resolved (token, count) pair together with
// the fragment that produced it. IterationIndex and IterationTotal are zero
// unless the instruction came from a repeat.
type AtomicInstruction struct {
	Token          string       `json:"token" yaml:"token"`
	Count          int          `json:"count" yaml:"count"`
	FragmentID     string       `json:"fragmentId" yaml:"fragmentId"`
	FragmentType   FragmentType `json:"fragmentType" yaml:"fragmentType"`
	IterationIndex int          `json:"iterationIndex,omitempty" yaml:"iterationIndex,omitempty"`
	IterationTotal int          `json:"iterationTotal,omitempty" yaml:"iterationTotal,omitempty"`
}

// ResolvedRow is a row expanded into atomic instructions. It is never stored.
type ResolvedRow struct {
	Row           int          `json:"row" yaml:"row"`
	Side          string       `json:"side,omitempty" yaml:"side,omitempty"`
	Section       string       `json:"section,omitempty" yaml:"section,omitempty"`
	Kind          TemplateKind `json:"kind" yaml:"kind"`
	Description   string       `json:"description,omitempty" yaml:"description,omitempty"`
	StartingCount int          `json:"startingCount" yaml:"startingCount"`
	EndingCount   int          `json:"endingCount" yaml:"endingCount"`

	// ComputedEndingCount is StartingCount plus the net change of
	// Instructions. It differs from EndingCount only when the template
	// declares a count its chunks disagree with.
	ComputedEndingCount int `json:"computedEndingCount" yaml:"computedEndingCount"`

	Instructions []AtomicInstruction `json:"instructions" yaml:"instructions"`
}

// Consistent reports whether the declared and computed ending counts agree.
func (r *ResolvedRow) Consistent() bool {
	return r.EndingCount == r.ComputedEndingCount
}
