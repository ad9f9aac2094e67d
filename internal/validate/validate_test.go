package validate

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/nyantoasty/stitchgrid/internal/calc"
	"github.com/nyantoasty/stitchgrid/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basePattern() *model.Pattern {
	p := model.NewPattern("p")
	p.Metadata.CastOn = model.IntPtr(10)
	p.Glossary = map[string]model.GlossaryEntry{
		"k":     {Name: "Knit", Consumed: 1, Produced: 1},
		"k2tog": {Name: "Knit 2 together", Consumed: 2, Produced: 1},
	}
	p.Templates = []model.StepTemplate{
		&model.RangedTemplate{From: 1, To: 4, Fragments: []model.Fragment{
			&model.StaticFragment{ID: "c0", Stitches: []model.Stitch{{Token: "k", Count: 10}}},
		}},
	}
	return p
}

func summaries(diags hcl.Diagnostics) []string {
	var out []string
	for _, d := range diags {
		out = append(out, d.Summary)
	}
	return out
}

func TestCleanPattern(t *testing.T) {
	assert.Empty(t, Pattern(basePattern(), Options{}))
}

func TestOverlappingRanges(t *testing.T) {
	p := basePattern()
	p.Templates = append(p.Templates, &model.RangedTemplate{
		From: 3, To: 6,
		DefRange: hcl.Range{Filename: "p.hcl", Start: hcl.Pos{Line: 20, Column: 1}},
	})

	diags := Pattern(p, Options{})
	require.Len(t, diags, 1)
	assert.Equal(t, "Overlapping row ranges", diags[0].Summary)
	assert.Equal(t, hcl.DiagWarning, diags[0].Severity)
	assert.Contains(t, diags[0].Detail, "rows 3-4")
	require.NotNil(t, diags[0].Subject)
	assert.Equal(t, 20, diags[0].Subject.Start.Line)
}

func TestRowsBeyondLength(t *testing.T) {
	p := basePattern()
	p.Metadata.MaxRows = 3
	assert.Equal(t, []string{"Rows beyond the pattern length"}, summaries(Pattern(p, Options{})))
}

func TestGapsAreFolded(t *testing.T) {
	p := basePattern()
	p.Metadata.MaxRows = 9
	p.Templates = append(p.Templates, &model.ExactTemplate{Row: 7})

	diags := Pattern(p, Options{})
	assert.Equal(t, []string{"Rows without a template", "Rows without a template"}, summaries(diags))
	assert.Contains(t, diags[0].Detail, "rows 5-6")
	assert.Contains(t, diags[1].Detail, "rows 8-9")
	assert.True(t, diags.HasErrors())
}

func TestDuplicateExactRow(t *testing.T) {
	p := basePattern()
	p.Templates = append(p.Templates, &model.ExactTemplate{Row: 2}, &model.ExactTemplate{Row: 2})

	diags := Pattern(p, Options{})
	assert.Equal(t, []string{"Duplicate row template"}, summaries(diags))
}

func TestUnknownTokens(t *testing.T) {
	p := basePattern()
	p.Templates[0].(*model.RangedTemplate).Fragments = append(p.Templates[0].Chunks(),
		&model.RepeatFragment{ID: "c1", Times: 2, Stitches: []model.Stitch{{Token: "ssk", Count: 1}, {Token: "ssk", Count: 1}}})

	diags := Pattern(p, Options{})
	require.Len(t, diags, 1, "reported once per template")
	assert.Equal(t, "Unknown stitch code", diags[0].Summary)
	assert.Equal(t, hcl.DiagWarning, diags[0].Severity)

	strict := Pattern(p, Options{StrictTokens: true})
	assert.True(t, strict.HasErrors())
}

func TestCalculations(t *testing.T) {
	p := basePattern()
	p.Templates[0].(*model.RangedTemplate).Fragments = []model.Fragment{
		&model.DynamicFragment{ID: "c0", Stitches: []model.DynamicStitch{
			{Token: "k", Calculation: calc.ToLast3},
			{Token: "k", Calculation: calc.TotalM6},
			{Token: "k", Calculation: calc.ToMarker},
			{Token: "k", Calculation: "toLast9"},
		}},
	}

	diags := Pattern(p, Options{})
	assert.ElementsMatch(t, []string{"Approximate calculation", "Unknown calculation", "Mixed calculation bases"}, summaries(diags))
	assert.True(t, diags.HasErrors())

	relaxed := Pattern(p, Options{CalculationFallback: true})
	assert.False(t, relaxed.HasErrors())
}

func TestMixedBasesAcrossRows(t *testing.T) {
	p := basePattern()
	p.Templates = []model.StepTemplate{
		&model.RangedTemplate{From: 1, To: 2, Fragments: []model.Fragment{
			&model.DynamicFragment{ID: "c0", Stitches: []model.DynamicStitch{{Token: "k", Calculation: calc.ToLast3}}},
		}},
		&model.RangedTemplate{From: 3, To: 4, Fragments: []model.Fragment{
			&model.DynamicFragment{ID: "c0", Stitches: []model.DynamicStitch{{Token: "k", Calculation: calc.TotalM6}}},
		}},
		&model.ExactTemplate{Row: 5, Fragments: []model.Fragment{
			&model.DynamicFragment{ID: "c0", Stitches: []model.DynamicStitch{{Token: "k", Calculation: calc.ToLast3}}},
		}},
	}

	diags := Pattern(p, Options{})
	require.Equal(t, []string{"Mixed calculation bases"}, summaries(diags), "reported once per pattern")
	assert.Equal(t, hcl.DiagWarning, diags[0].Severity)
	assert.Contains(t, diags[0].Detail, "rows 1-2 and rows 3-4")
}

func TestPatternCalculationsAreKnown(t *testing.T) {
	p := basePattern()
	expr, err := calc.ParseExpression("remaining - 5", "p.hcl")
	require.NoError(t, err)
	p.Calculations = []*model.CalculationDef{{Name: "toLast5", Expression: expr}}
	p.Templates[0].(*model.RangedTemplate).Fragments = []model.Fragment{
		&model.DynamicFragment{ID: "c0", Stitches: []model.DynamicStitch{{Token: "k", Calculation: "toLast5"}}},
	}

	assert.Empty(t, Pattern(p, Options{}))
}

func TestUnknownExpressionVariable(t *testing.T) {
	p := basePattern()
	expr, err := calc.ParseExpression("remianing - 5", "p.hcl")
	require.NoError(t, err)
	p.Calculations = []*model.CalculationDef{{Name: "toLast5", Expression: expr}}

	diags := Pattern(p, Options{})
	require.Len(t, diags, 1)
	assert.Equal(t, "Unknown variable in calculation", diags[0].Summary)
	assert.Contains(t, diags[0].Detail, "remianing")
	require.NotNil(t, diags[0].Subject)
	assert.Equal(t, "p.hcl", diags[0].Subject.Filename)
}

func TestMissingCastOn(t *testing.T) {
	p := basePattern()
	p.Metadata.CastOn = nil
	assert.Equal(t, []string{"Missing cast-on count"}, summaries(Pattern(p, Options{})))

	p.Templates = append([]model.StepTemplate{&model.ExactTemplate{Row: 1, StartingCount: model.IntPtr(10)}}, p.Templates...)
	assert.Empty(t, Pattern(p, Options{}))
}

func TestSummary(t *testing.T) {
	diags := hcl.Diagnostics{
		{Severity: hcl.DiagError, Summary: "Rows without a template", Detail: "No template covers row 5."},
		{Severity: hcl.DiagWarning, Summary: "Unknown stitch code", Detail: "x", Subject: &hcl.Range{Filename: "a.hcl", Start: hcl.Pos{Line: 3, Column: 1}, End: hcl.Pos{Line: 3, Column: 4}}},
	}
	out := Summary(diags)
	assert.Contains(t, out, "error: Rows without a template; No template covers row 5.\n")
	assert.Contains(t, out, "a.hcl:3,1-4: warning: Unknown stitch code; x\n")
}
