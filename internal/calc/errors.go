package calc

import "errors"

var (
	ErrUnknownCalculation = errors.New("calc: unknown calculation")
	ErrNegativeCount      = errors.New("calc: calculation produced a negative count")
	ErrInvalidExpression  = errors.New("calc: invalid calculation expression")
	ErrDuplicate          = errors.New("calc: calculation already registered")
)
