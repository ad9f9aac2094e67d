// Package locate maps an absolute stitch position within a resolved row
// back to the instruction that produced it.
//
// Each instruction claims a contiguous span of count*produced stitches, in
// row order. Instructions that produce nothing (yarn carries, bind-offs)
// occupy no span and are never returned.
//
// Complexity: O(n) in the number of atomic instructions of the row.
package locate

import (
	"errors"
	"fmt"

	"github.com/nyantoasty/stitchgrid/internal/glossary"
	"github.com/nyantoasty/stitchgrid/internal/model"
)

// ErrNotFound means the position lies outside [1, TotalWidth].
var ErrNotFound = errors.New("locate: position not found")

// Location identifies the origin of one stitch.
type Location struct {
	Position     int                `json:"position" yaml:"position"`
	Token        string             `json:"token" yaml:"token"`
	FragmentID   string             `json:"fragmentId" yaml:"fragmentId"`
	FragmentType model.FragmentType `json:"fragmentType" yaml:"fragmentType"`

	// InstructionIndex is the zero based index into the row's instructions.
	InstructionIndex int `json:"instructionIndex" yaml:"instructionIndex"`

	// PositionInInstruction and PositionInFragment are 1 based offsets.
	PositionInInstruction int `json:"positionInInstruction" yaml:"positionInInstruction"`
	PositionInFragment    int `json:"positionInFragment" yaml:"positionInFragment"`

	// Application is which of the instruction's count applications made the
	// stitch, 1 based.
	Application int `json:"application" yaml:"application"`

	IterationIndex int `json:"iterationIndex,omitempty" yaml:"iterationIndex,omitempty"`
	IterationTotal int `json:"iterationTotal,omitempty" yaml:"iterationTotal,omitempty"`
}

// TotalWidth is the number of stitches the instructions leave on the needle.
func TotalWidth(instrs []model.AtomicInstruction, g *glossary.Registry) int {
	total := 0
	for _, in := range instrs {
		total += in.Count * g.Width(in.Token)
	}
	return total
}

// Locate returns the origin of the stitch at position (1 based).
func Locate(instrs []model.AtomicInstruction, position int, g *glossary.Registry) (Location, error) {
	if position < 1 {
		return Location{}, fmt.Errorf("%w: %d is below 1", ErrNotFound, position)
	}

	cumulative := 0
	fragmentStart := 0
	for i, in := range instrs {
		if i == 0 || in.FragmentID != instrs[i-1].FragmentID {
			fragmentStart = cumulative
		}
		produced := g.Width(in.Token)
		width := in.Count * produced
		if position <= cumulative+width {
			offset := position - cumulative
			return Location{
				Position:              position,
				Token:                 in.Token,
				FragmentID:            in.FragmentID,
				FragmentType:          in.FragmentType,
				InstructionIndex:      i,
				PositionInInstruction: offset,
				PositionInFragment:    position - fragmentStart,
				Application:           (offset-1)/produced + 1,
				IterationIndex:        in.IterationIndex,
				IterationTotal:        in.IterationTotal,
			}, nil
		}
		cumulative += width
	}
	return Location{}, fmt.Errorf("%w: %d exceeds row width %d", ErrNotFound, position, cumulative)
}
