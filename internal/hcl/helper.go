package hcl

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/nyantoasty/stitchgrid/internal/ctxlog"
)

// isExprDefined checks if an HCL expression was actually present in the source
// code. gohcl fills omitted optional expression fields with zero-width
// placeholder expressions, so a nil check is not enough.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte

	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", exprRange.String(),
		"is_defined", isDefined,
	)
	return isDefined
}

// findUniqueBlock returns the only block of the given type. Every extra block
// of that type produces an error diagnostic; nil means none was found.
func findUniqueBlock(blocks hcl.Blocks, blockType string) (*hcl.Block, hcl.Diagnostics) {
	var found *hcl.Block
	var diags hcl.Diagnostics

	for _, block := range blocks {
		if block.Type != blockType {
			continue
		}
		if found != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate \"" + blockType + "\" block",
				Detail:   "Only one \"" + blockType + "\" block is allowed, the first one is at " + found.DefRange.String() + ".",
				Subject:  &block.DefRange,
			})
			continue
		}
		found = block
	}
	return found, diags
}

// errorDiag builds a single error diagnostic.
func errorDiag(summary, detail string, subject hcl.Range) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  subject.Ptr(),
	}
}
