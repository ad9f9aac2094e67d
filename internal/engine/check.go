package engine

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/nyantoasty/stitchgrid/internal/model"
)

// Check resolves every row of the pattern and reports what it finds as
// diagnostics: rows that fail to resolve are errors, declared counts that
// disagree with the chunks are warnings. Resolution stops at the first row
// whose counts cannot be established since no later row can start.
func (e *Engine) Check() hcl.Diagnostics {
	e.mu.Lock()
	defer e.mu.Unlock()

	var diags hcl.Diagnostics
	total := e.pattern.Rows()
	for row := 1; row <= total; row++ {
		tpl, _ := e.index.Lookup(row)
		rr, err := e.resolveRow(row)
		if err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Row cannot be resolved",
				Detail:   err.Error(),
				Subject:  subjectOf(tpl),
			})
			if _, cached := e.store.Get(row); !cached {
				if row < total {
					diags = append(diags, &hcl.Diagnostic{
						Severity: hcl.DiagError,
						Summary:  "Later rows skipped",
						Detail:   fmt.Sprintf("Rows %d-%d were not checked because row %d has no running count.", row+1, total, row),
					})
				}
				break
			}
			continue
		}

		if exact, ok := tpl.(*model.ExactTemplate); ok && exact.StartingCount != nil && *exact.StartingCount != rr.StartingCount {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagWarning,
				Summary:  "Starting count mismatch",
				Detail:   fmt.Sprintf("Row %d declares a starting count of %d but the previous row ends with %d.", row, *exact.StartingCount, rr.StartingCount),
				Subject:  subjectOf(tpl),
			})
		}
		if !rr.Consistent() {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagWarning,
				Summary:  "Count mismatch",
				Detail: fmt.Sprintf("Row %d (%s) declares an ending count of %d but its chunks end with %d (net %s).",
					row, tpl.Label(), rr.EndingCount, rr.ComputedEndingCount, model.FormatNetChange(rr.ComputedEndingCount-rr.StartingCount)),
				Subject: subjectOf(tpl),
			})
		}
	}
	return diags
}

func subjectOf(tpl model.StepTemplate) *hcl.Range {
	if tpl == nil {
		return nil
	}
	rng := tpl.Range()
	if rng.Filename == "" {
		return nil
	}
	return &rng
}
