package app

import "errors"

// ErrInvalidPattern means at least one document failed validation.
var ErrInvalidPattern = errors.New("pattern is invalid")
