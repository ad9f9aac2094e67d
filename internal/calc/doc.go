// Package calc is the dynamic calculation resolver: a registry of named,
// pure functions that turn a row context into a stitch count. Dynamic
// chunks name a calculation instead of spelling out a count ("k to last 3").
//
// Built-in contracts:
//
//	total      starting count of the row
//	total-3    starting count - 3
//	total-6    starting count - 6
//	toEnd      stitches not yet worked in the row (remaining)
//	toLast3    remaining - 3
//	toLast4    remaining - 4
//	toMarker   floor(starting count / 3); no marker position is tracked
//
// "remaining" is the starting count minus the stitches consumed by earlier
// instructions of the same row, so toLast3 and total-3 agree only when the
// placeholder opens the row.
//
// Pattern documents may add calculations as HCL expressions over the
// variables total, remaining, consumed, row and declared_ending.
//
// Errors:
//
//   - ErrUnknownCalculation: no calculation has that name and no fallback was configured.
//   - ErrNegativeCount: a calculation produced a count below zero.
//   - ErrInvalidExpression: an expression calculation failed to evaluate to a whole number.
package calc
