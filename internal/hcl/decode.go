package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/nyantoasty/stitchgrid/internal/model"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// decodeStitches reads a stitch list. Each element is either a two-element
// tuple ["k2tog", 1] or an object {code = "k", count = "toEnd"}; a string
// count names a calculation.
func decodeStitches(expr hcl.Expression) ([]model.DynamicStitch, hcl.Diagnostics) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() || !val.IsWhollyKnown() {
		return nil, hcl.Diagnostics{errorDiag("Invalid stitches", "The 'stitches' attribute must be a list of stitches.", expr.Range())}
	}
	ty := val.Type()
	if !ty.IsTupleType() && !ty.IsListType() {
		return nil, hcl.Diagnostics{errorDiag("Invalid stitches",
			fmt.Sprintf("The 'stitches' attribute must be a list, got %s.", ty.FriendlyName()), expr.Range())}
	}

	// Point at the offending element when the source is a tuple literal.
	var items []hclsyntax.Expression
	if tuple, ok := expr.(*hclsyntax.TupleConsExpr); ok {
		items = tuple.Exprs
	}

	var out []model.DynamicStitch
	i := 0
	for it := val.ElementIterator(); it.Next(); i++ {
		_, elem := it.Element()
		subject := expr.Range()
		if i < len(items) {
			subject = items[i].Range()
		}
		s, err := decodeStitch(elem)
		if err != nil {
			diags = append(diags, errorDiag("Invalid stitch", fmt.Sprintf("Stitch %d: %s.", i+1, err), subject))
			continue
		}
		out = append(out, s)
	}
	return out, diags
}

func decodeStitch(val cty.Value) (model.DynamicStitch, error) {
	var code, count cty.Value
	ty := val.Type()
	switch {
	case ty.IsTupleType() || ty.IsListType():
		if val.LengthInt() != 2 {
			return model.DynamicStitch{}, fmt.Errorf("want [code, count], got %d elements", val.LengthInt())
		}
		code, count = val.Index(cty.NumberIntVal(0)), val.Index(cty.NumberIntVal(1))
	case ty.IsObjectType():
		if !ty.HasAttribute("code") || !ty.HasAttribute("count") {
			return model.DynamicStitch{}, fmt.Errorf("object needs code and count")
		}
		code, count = val.GetAttr("code"), val.GetAttr("count")
	default:
		return model.DynamicStitch{}, fmt.Errorf("want [code, count], got %s", ty.FriendlyName())
	}

	var s model.DynamicStitch
	if err := decodeValue(code, cty.String, &s.Token); err != nil {
		return s, fmt.Errorf("code: %w", err)
	}
	if count.IsNull() {
		return s, fmt.Errorf("count of %q is null", s.Token)
	}
	if count.Type().Equals(cty.String) {
		s.Calculation = count.AsString()
	} else if err := decodeValue(count, cty.Number, &s.Count); err != nil {
		return s, fmt.Errorf("count of %q: %w", s.Token, err)
	}
	return s, nil
}

// decodeValue converts val to ty before binding it to the Go pointer target.
func decodeValue(val cty.Value, ty cty.Type, target any) error {
	converted, err := convert.Convert(val, ty)
	if err != nil {
		return fmt.Errorf("cannot convert %s to %s: %w", val.Type().FriendlyName(), ty.FriendlyName(), err)
	}
	return gocty.FromCtyValue(converted, target)
}

// decodeNetChange accepts a number or the "+2" shorthand.
func decodeNetChange(expr hcl.Expression) (*int, hcl.Diagnostics) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}

	var n int
	if val.Type().Equals(cty.String) {
		parsed, err := model.ParseNetChange(val.AsString())
		if err != nil {
			return nil, hcl.Diagnostics{errorDiag("Invalid net change", err.Error(), expr.Range())}
		}
		n = parsed
	} else if err := decodeValue(val, cty.Number, &n); err != nil {
		return nil, hcl.Diagnostics{errorDiag("Invalid net change", err.Error(), expr.Range())}
	}
	return &n, nil
}
