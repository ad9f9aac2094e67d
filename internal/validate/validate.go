package validate

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/nyantoasty/stitchgrid/internal/calc"
	"github.com/nyantoasty/stitchgrid/internal/model"
	"github.com/nyantoasty/stitchgrid/internal/templateindex"
)

// Options relax or tighten individual checks.
type Options struct {
	// StrictTokens reports unknown stitch codes as errors instead of warnings.
	StrictTokens bool
	// CalculationFallback downgrades unknown calculations to warnings because
	// the engine will substitute a fixed count for them.
	CalculationFallback bool
}

// Pattern runs every static check against p.
func Pattern(p *model.Pattern, opts Options) hcl.Diagnostics {
	var diags hcl.Diagnostics

	calcs := calc.New()
	if err := calcs.RegisterDefs(p.Calculations); err != nil {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid calculation",
			Detail:   err.Error(),
		})
	}
	diags = append(diags, checkCalculationDefs(p.Calculations)...)

	ix := templateindex.New(p.Templates)
	diags = append(diags, checkCastOn(p, ix)...)
	diags = append(diags, checkCoverage(p, ix)...)
	// First template using each calculation, for the pattern-wide checks.
	firstUse := make(map[string]model.StepTemplate)
	for _, tpl := range p.Templates {
		diags = append(diags, checkTokens(p, tpl, opts)...)
		calcDiags, used := checkCalculations(calcs, tpl, opts)
		diags = append(diags, calcDiags...)
		for _, key := range used {
			if _, ok := firstUse[key]; !ok {
				firstUse[key] = tpl
			}
		}
	}
	diags = append(diags, checkMixedBases(firstUse)...)
	return diags
}

func checkCastOn(p *model.Pattern, ix *templateindex.Index) hcl.Diagnostics {
	if p.Metadata.CastOn != nil {
		if *p.Metadata.CastOn < 0 {
			return hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Invalid cast-on count",
				Detail:   fmt.Sprintf("The cast-on count must not be negative, got %d.", *p.Metadata.CastOn),
			}}
		}
		return nil
	}
	if tpl, err := ix.Lookup(1); err == nil {
		if exact, ok := tpl.(*model.ExactTemplate); ok && exact.StartingCount != nil {
			return nil
		}
	}
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Missing cast-on count",
		Detail:   "Set cast_on on the pattern or a starting count on row 1; no row can be counted without one.",
	}}
}

func checkCoverage(p *model.Pattern, ix *templateindex.Index) hcl.Diagnostics {
	var diags hcl.Diagnostics
	for _, dup := range ix.Duplicates() {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagWarning,
			Summary:  "Duplicate row template",
			Detail:   fmt.Sprintf("Row %d is defined more than once; the first definition is used.", dup.Row),
			Subject:  subject(dup),
		})
	}
	for _, ov := range ix.Overlaps() {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagWarning,
			Summary:  "Overlapping row ranges",
			Detail: fmt.Sprintf("%s and %s both cover rows %d-%d; %s is used for them.",
				ov.Winner.Label(), ov.Loser.Label(), ov.From, ov.To, ov.Winner.Label()),
			Subject: subject(ov.Loser),
		})
	}

	total := p.Rows()
	if ix.MaxRow() > total {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagWarning,
			Summary:  "Rows beyond the pattern length",
			Detail:   fmt.Sprintf("Templates cover rows up to %d but the pattern has %d rows.", ix.MaxRow(), total),
		})
	}
	for _, run := range runs(ix.Gaps(total)) {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Rows without a template",
			Detail:   fmt.Sprintf("No template covers %s.", run),
		})
	}
	return diags
}

func checkTokens(p *model.Pattern, tpl model.StepTemplate, opts Options) hcl.Diagnostics {
	severity := hcl.DiagWarning
	if opts.StrictTokens {
		severity = hcl.DiagError
	}

	var codes []string
	for _, f := range tpl.Chunks() {
		codes = append(codes, model.Tokens(f)...)
	}
	if exact, ok := tpl.(*model.ExactTemplate); ok {
		for _, in := range exact.Expanded {
			codes = append(codes, in.Token)
		}
	}

	var diags hcl.Diagnostics
	seen := make(map[string]bool)
	for _, code := range codes {
		if seen[code] {
			continue
		}
		seen[code] = true
		if _, ok := p.Glossary[code]; ok {
			continue
		}
		diags = append(diags, &hcl.Diagnostic{
			Severity: severity,
			Summary:  "Unknown stitch code",
			Detail:   fmt.Sprintf("%s uses %q, which is not in the glossary; it is counted as one stitch in, one stitch out.", tpl.Label(), code),
			Subject:  subject(tpl),
		})
	}
	return diags
}

// checkCalculations reports unknown and approximate calculations of tpl and
// returns the normalized names it uses, in order.
func checkCalculations(calcs *calc.Registry, tpl model.StepTemplate, opts Options) (hcl.Diagnostics, []string) {
	var diags hcl.Diagnostics
	var order []string
	used := make(map[string]bool)
	for _, f := range tpl.Chunks() {
		for _, name := range model.Calculations(f) {
			key := calc.Normalize(name)
			if used[key] {
				continue
			}
			used[key] = true
			order = append(order, key)

			switch {
			case !calcs.Has(key):
				severity := hcl.DiagError
				if opts.CalculationFallback {
					severity = hcl.DiagWarning
				}
				diags = append(diags, &hcl.Diagnostic{
					Severity: severity,
					Summary:  "Unknown calculation",
					Detail:   fmt.Sprintf("%s uses calculation %q, which is neither built in nor defined by the pattern.", tpl.Label(), name),
					Subject:  subject(tpl),
				})
			case key == calc.ToMarker:
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagWarning,
					Summary:  "Approximate calculation",
					Detail:   fmt.Sprintf("%s uses %q, which assumes the first marker sits a third of the way across the row.", tpl.Label(), name),
					Subject:  subject(tpl),
				})
			}
		}
	}

	return diags, order
}

// checkMixedBases flags patterns that count some rows from the unworked
// stitches and others from the whole row.
func checkMixedBases(firstUse map[string]model.StepTemplate) hcl.Diagnostics {
	last3, ok3 := firstUse[calc.ToLast3]
	total6, ok6 := firstUse[calc.TotalM6]
	if !ok3 || !ok6 {
		return nil
	}
	where := last3.Label()
	if total6 != last3 {
		where = last3.Label() + " and " + total6.Label()
	}
	return hcl.Diagnostics{{
		Severity: hcl.DiagWarning,
		Summary:  "Mixed calculation bases",
		Detail: fmt.Sprintf("The pattern uses both %q and %q (first in %s). The first counts from the stitches still unworked, the second from the whole row, so they only agree when exactly 3 stitches are worked first.",
			calc.ToLast3, calc.TotalM6, where),
		Subject: subject(total6),
	}}
}

func checkCalculationDefs(defs []*model.CalculationDef) hcl.Diagnostics {
	var diags hcl.Diagnostics
	for _, def := range defs {
		if def.Expression == nil {
			continue
		}
		for _, name := range calc.Variables(def.Expression) {
			if calc.KnownVariable(name) {
				continue
			}
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unknown variable in calculation",
				Detail:   fmt.Sprintf("Calculation %q refers to %q. Available variables are total, remaining, consumed, row and declared_ending.", def.Name, name),
				Subject:  def.Expression.Range().Ptr(),
			})
		}
	}
	return diags
}

// runs folds sorted rows into "row 4" and "rows 6-9" phrases.
func runs(rows []int) []string {
	var out []string
	for i := 0; i < len(rows); {
		j := i
		for j+1 < len(rows) && rows[j+1] == rows[j]+1 {
			j++
		}
		if i == j {
			out = append(out, fmt.Sprintf("row %d", rows[i]))
		} else {
			out = append(out, fmt.Sprintf("rows %d-%d", rows[i], rows[j]))
		}
		i = j + 1
	}
	return out
}

func subject(tpl model.StepTemplate) *hcl.Range {
	rng := tpl.Range()
	if rng.Filename == "" {
		return nil
	}
	return &rng
}

// Summary renders diags one per line, the way the CLI prints them when no
// source files are at hand.
func Summary(diags hcl.Diagnostics) string {
	var b strings.Builder
	for _, d := range diags {
		level := "warning"
		if d.Severity == hcl.DiagError {
			level = "error"
		}
		if d.Subject != nil {
			fmt.Fprintf(&b, "%s: %s: %s; %s\n", d.Subject.String(), level, d.Summary, d.Detail)
			continue
		}
		fmt.Fprintf(&b, "%s: %s; %s\n", level, d.Summary, d.Detail)
	}
	return b.String()
}
