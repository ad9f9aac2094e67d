// Package expand turns template fragments into atomic instructions.
//
// Static chunks are emitted unchanged, repeat chunks are emitted once per
// iteration with the iteration tagged on each instruction, and dynamic chunks
// have their placeholder counts computed by the calc registry. Within a row
// the running number of consumed stitches is tracked so placeholders such as
// "toLast3" see how much of the row is already worked.
package expand

import (
	"fmt"

	"github.com/nyantoasty/stitchgrid/internal/calc"
	"github.com/nyantoasty/stitchgrid/internal/glossary"
	"github.com/nyantoasty/stitchgrid/internal/model"
)

// Deps are the registries expansion reads from.
type Deps struct {
	Glossary *glossary.Registry
	Calcs    *calc.Registry
}

// Fragment expands a single fragment. rc.Consumed must count the stitches
// used by everything before the fragment in its row.
func Fragment(f model.Fragment, rc calc.RowContext, d Deps) ([]model.AtomicInstruction, error) {
	switch fr := f.(type) {
	case *model.StaticFragment:
		out := make([]model.AtomicInstruction, 0, len(fr.Stitches))
		for _, s := range fr.Stitches {
			out = append(out, model.AtomicInstruction{
				Token:        s.Token,
				Count:        s.Count,
				FragmentID:   fr.ID,
				FragmentType: model.FragmentStatic,
			})
		}
		return out, nil

	case *model.RepeatFragment:
		if fr.Times < 0 {
			panic(fmt.Sprintf("expand: chunk %q repeats %d times", fr.ID, fr.Times))
		}
		out := make([]model.AtomicInstruction, 0, len(fr.Stitches)*fr.Times)
		for i := 0; i < fr.Times; i++ {
			for _, s := range fr.Stitches {
				out = append(out, model.AtomicInstruction{
					Token:          s.Token,
					Count:          s.Count,
					FragmentID:     fr.ID,
					FragmentType:   model.FragmentRepeat,
					IterationIndex: i + 1,
					IterationTotal: fr.Times,
				})
			}
		}
		return out, nil

	case *model.DynamicFragment:
		out := make([]model.AtomicInstruction, 0, len(fr.Stitches))
		local := rc
		for _, s := range fr.Stitches {
			count := s.Count
			if s.IsPlaceholder() {
				n, err := d.Calcs.Evaluate(s.Calculation, local)
				if err != nil {
					return nil, fmt.Errorf("chunk %q: %w", fr.ID, err)
				}
				count = n
			}
			out = append(out, model.AtomicInstruction{
				Token:        s.Token,
				Count:        count,
				FragmentID:   fr.ID,
				FragmentType: model.FragmentDynamic,
			})
			local.Consumed += count * d.Glossary.Get(s.Token).Consumed
		}
		return out, nil

	default:
		panic(fmt.Sprintf("expand: unhandled fragment type %T", f))
	}
}

// Row expands a template's fragments in order.
func Row(fragments []model.Fragment, rc calc.RowContext, d Deps) ([]model.AtomicInstruction, error) {
	out := make([]model.AtomicInstruction, 0, len(fragments))
	for _, f := range fragments {
		instrs, err := Fragment(f, rc, d)
		if err != nil {
			return nil, err
		}
		rc.Consumed += Consumed(instrs, d.Glossary)
		out = append(out, instrs...)
	}
	return out, nil
}

// NetChange is the sum of count*(produced-consumed) over instrs.
func NetChange(instrs []model.AtomicInstruction, g *glossary.Registry) int {
	total := 0
	for _, in := range instrs {
		total += in.Count * g.Get(in.Token).Net()
	}
	return total
}

// Consumed is the number of stitches instrs use up.
func Consumed(instrs []model.AtomicInstruction, g *glossary.Registry) int {
	total := 0
	for _, in := range instrs {
		total += in.Count * g.Get(in.Token).Consumed
	}
	return total
}

// Produced is the number of stitches instrs leave on the needle.
func Produced(instrs []model.AtomicInstruction, g *glossary.Registry) int {
	total := 0
	for _, in := range instrs {
		total += in.Count * g.Get(in.Token).Produced
	}
	return total
}
