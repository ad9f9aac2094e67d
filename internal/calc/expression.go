package calc

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Variables available to expression calculations.
const (
	VarTotal          = "total"
	VarRemaining      = "remaining"
	VarConsumed       = "consumed"
	VarRow            = "row"
	VarDeclaredEnding = "declared_ending"
)

var expressionFunctions = map[string]function.Function{
	"min":   stdlib.MinFunc,
	"max":   stdlib.MaxFunc,
	"floor": stdlib.FloorFunc,
	"ceil":  stdlib.CeilFunc,
	"abs":   stdlib.AbsoluteFunc,
}

// ParseExpression parses HCL expression source, such as "remaining - 5",
// taken from a document that is not itself HCL.
func ParseExpression(src, filename string) (hcl.Expression, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidExpression, diags.Error())
	}
	return expr, nil
}

// EvalContext builds the HCL evaluation context for a row.
func EvalContext(rc RowContext) *hcl.EvalContext {
	declared := cty.NullVal(cty.Number)
	if rc.DeclaredEnding != nil {
		declared = cty.NumberIntVal(int64(*rc.DeclaredEnding))
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			VarTotal:          cty.NumberIntVal(int64(rc.StartingCount)),
			VarRemaining:      cty.NumberIntVal(int64(rc.Remaining())),
			VarConsumed:       cty.NumberIntVal(int64(rc.Consumed)),
			VarRow:            cty.NumberIntVal(int64(rc.Row)),
			VarDeclaredEnding: declared,
		},
		Functions: expressionFunctions,
	}
}

// FromExpression turns an HCL expression into a calculation. The expression
// must evaluate to a whole number.
func FromExpression(expr hcl.Expression) Func {
	return func(rc RowContext) (int, error) {
		val, diags := expr.Value(EvalContext(rc))
		if diags.HasErrors() {
			return 0, fmt.Errorf("%w: %s", ErrInvalidExpression, diags.Error())
		}
		val, err := convert.Convert(val, cty.Number)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
		}
		if val.IsNull() || !val.IsKnown() {
			return 0, fmt.Errorf("%w: expression has no value", ErrInvalidExpression)
		}
		var n int
		if err := gocty.FromCtyValue(val, &n); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
		}
		return n, nil
	}
}

// Variables reports the root variable names an expression references, so
// validation can flag typos before any row is resolved.
func Variables(expr hcl.Expression) []string {
	var names []string
	for _, tr := range expr.Variables() {
		names = append(names, tr.RootName())
	}
	return names
}

// KnownVariable reports whether name is available to expression calculations.
func KnownVariable(name string) bool {
	switch name {
	case VarTotal, VarRemaining, VarConsumed, VarRow, VarDeclaredEnding:
		return true
	}
	return false
}
