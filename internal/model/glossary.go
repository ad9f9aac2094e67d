// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

// GlossaryEntry describes one stitch token and its cost.
type GlossaryEntry struct {
	Name        string
	Description string
	Consumed    int
	Produced    int
	Category    string
	Symbol      string
}

// Net is the change in running count caused by one application of the token.
func (e GlossaryEntry) Net() int {
	return e.Produced - e.Consumed
}

// NeutralEntry stands in for tokens missing from a glossary. It consumes and
// produces one stitch, so it never changes the running count.
var NeutralEntry = GlossaryEntry{
	Name:     "unknown",
	Consumed: 1,
	Produced: 1,
	Category: "unknown",
}
