package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode"

	"github.com/nyantoasty/stitchgrid/internal/model"
	"gopkg.in/yaml.v3"
)

// render writes v in the configured output format; text output is left to
// the caller's writer.
func (a *App) render(v any, text func() error) error {
	switch a.config.Output {
	case OutputYAML:
		enc := yaml.NewEncoder(a.outW)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case OutputJSON:
		enc := json.NewEncoder(a.outW)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return text()
	}
}

func writeRows(w io.Writer, rows []*model.ResolvedRow) error {
	for _, rr := range rows {
		var tags []string
		if rr.Side != "" {
			tags = append(tags, rr.Side)
		}
		if rr.Section != "" {
			tags = append(tags, rr.Section)
		}
		header := fmt.Sprintf("Row %d", rr.Row)
		if len(tags) > 0 {
			header += " (" + strings.Join(tags, ", ") + ")"
		}

		if rr.Kind == model.KindSpecial {
			if _, err := fmt.Fprintf(w, "%s: %s [%d sts]\n", header, rr.Description, rr.EndingCount); err != nil {
				return err
			}
			continue
		}

		net := rr.EndingCount - rr.StartingCount
		if _, err := fmt.Fprintf(w, "%s: %d -> %d sts (%s)\n  %s\n",
			header, rr.StartingCount, rr.EndingCount, model.FormatNetChange(net), FormatInstructions(rr.Instructions)); err != nil {
			return err
		}
		if !rr.Consistent() {
			if _, err := fmt.Fprintf(w, "  note: the stitches end with %d sts, the pattern says %d\n", rr.ComputedEndingCount, rr.EndingCount); err != nil {
				return err
			}
		}
	}
	return nil
}

// FormatInstructions renders instructions in pattern shorthand: "k, kfb,
// [yo, k2tog] x3, k13". A count of 1 is left off. Repeats are shown once
// with their count.
func FormatInstructions(instrs []model.AtomicInstruction) string {
	var parts []string
	for i := 0; i < len(instrs); {
		in := instrs[i]
		if in.FragmentType != model.FragmentRepeat || in.IterationTotal < 2 {
			parts = append(parts, formatStitch(in.Token, in.Count))
			i++
			continue
		}

		var body []string
		j := i
		for j < len(instrs) && instrs[j].FragmentID == in.FragmentID && instrs[j].FragmentType == model.FragmentRepeat {
			if instrs[j].IterationIndex == in.IterationIndex {
				body = append(body, formatStitch(instrs[j].Token, instrs[j].Count))
			}
			j++
		}
		parts = append(parts, fmt.Sprintf("[%s] x%d", strings.Join(body, ", "), in.IterationTotal))
		i = j
	}
	return strings.Join(parts, ", ")
}

// formatStitch writes "k15" for plain codes and "k2tog tbl x2" when
// appending the count would be ambiguous.
func formatStitch(token string, count int) string {
	if count == 1 {
		return token
	}
	plain := true
	for _, r := range token {
		if !unicode.IsLetter(r) {
			plain = false
			break
		}
	}
	if plain {
		return fmt.Sprintf("%s%d", token, count)
	}
	return fmt.Sprintf("%s x%d", token, count)
}

func writeCounts(w io.Writer, rows []RowCounts) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "ROW\tTEMPLATE\tSTART\tEND\tNET"); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\n", r.Row, r.Label, r.Starting, r.Ending, r.Net); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func describeLocation(l RowLocation) string {
	s := fmt.Sprintf("row %d, stitch %d: %s (instruction %d, stitch %d of it), chunk %q (%s)",
		l.Row, l.Position, l.Token, l.InstructionIndex+1, l.PositionInInstruction, l.FragmentID, l.FragmentType)
	if l.IterationTotal > 0 {
		s += fmt.Sprintf(", repeat %d of %d", l.IterationIndex, l.IterationTotal)
	}
	return s
}
