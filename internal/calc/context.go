package calc

// RowContext is what a calculation may look at.
type RowContext struct {
	Row           int
	StartingCount int

	// Consumed counts the stitches used by the instructions that precede
	// the placeholder in the same row.
	Consumed int

	// DeclaredEnding is the template's explicit ending count, if any.
	DeclaredEnding *int
}

// Remaining is the number of stitches still on the left needle.
func (c RowContext) Remaining() int {
	return c.StartingCount - c.Consumed
}
