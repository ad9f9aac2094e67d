package engine

import (
	"errors"
	"fmt"

	"github.com/nyantoasty/stitchgrid/internal/templateindex"
)

var (
	// ErrTemplateNotFound means no template covers the row.
	ErrTemplateNotFound = templateindex.ErrTemplateNotFound
	// ErrOutOfRange means the row is below 1 or above the pattern's row total.
	ErrOutOfRange = errors.New("engine: row out of range")
	// ErrNoCastOn means neither the metadata nor row 1 gives a starting count.
	ErrNoCastOn = errors.New("engine: pattern has no cast-on count")
	// ErrCountMismatch means a declared count disagrees with the computed one.
	ErrCountMismatch = errors.New("engine: declared count disagrees with chunks")
)

// RowError ties a resolution failure to the row it happened on.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

func rowErr(row int, err error) error {
	var re *RowError
	if errors.As(err, &re) {
		return err
	}
	return &RowError{Row: row, Err: err}
}
