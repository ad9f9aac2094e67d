package locate

import (
	"testing"

	"github.com/nyantoasty/stitchgrid/internal/glossary"
	"github.com/nyantoasty/stitchgrid/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGlossary() *glossary.Registry {
	return glossary.New(map[string]model.GlossaryEntry{
		"k":    {Consumed: 1, Produced: 1},
		"kfb":  {Consumed: 1, Produced: 2},
		"yo":   {Consumed: 0, Produced: 1},
		"wyif": {Consumed: 0, Produced: 0},
	}, nil)
}

func sampleRow() []model.AtomicInstruction {
	return []model.AtomicInstruction{
		{Token: "k", Count: 2, FragmentID: "a", FragmentType: model.FragmentStatic},
		{Token: "kfb", Count: 1, FragmentID: "a", FragmentType: model.FragmentStatic},
		{Token: "wyif", Count: 1, FragmentID: "b", FragmentType: model.FragmentStatic},
		{Token: "yo", Count: 1, FragmentID: "c", FragmentType: model.FragmentRepeat, IterationIndex: 1, IterationTotal: 2},
		{Token: "k", Count: 1, FragmentID: "c", FragmentType: model.FragmentRepeat, IterationIndex: 1, IterationTotal: 2},
		{Token: "yo", Count: 1, FragmentID: "c", FragmentType: model.FragmentRepeat, IterationIndex: 2, IterationTotal: 2},
		{Token: "k", Count: 3, FragmentID: "c", FragmentType: model.FragmentRepeat, IterationIndex: 2, IterationTotal: 2},
	}
}

func TestTotalWidth(t *testing.T) {
	// 2 + 2 + 0 + 1 + 1 + 1 + 3
	assert.Equal(t, 10, TotalWidth(sampleRow(), testGlossary()))
}

func TestBoundaries(t *testing.T) {
	g := testGlossary()
	row := sampleRow()
	width := TotalWidth(row, g)

	first, err := Locate(row, 1, g)
	require.NoError(t, err)
	assert.Equal(t, 0, first.InstructionIndex)

	last, err := Locate(row, width, g)
	require.NoError(t, err)
	assert.Equal(t, len(row)-1, last.InstructionIndex)
	assert.Equal(t, 3, last.PositionInInstruction)

	_, err = Locate(row, 0, g)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = Locate(row, width+1, g)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocateSpans(t *testing.T) {
	g := testGlossary()
	row := sampleRow()

	cases := []struct {
		pos         int
		token       string
		instr       int
		inFragment  int
		application int
		iteration   int
	}{
		{2, "k", 0, 2, 2, 0},
		{3, "kfb", 1, 3, 1, 0},
		{4, "kfb", 1, 4, 1, 0},
		{5, "yo", 3, 1, 1, 1}, // wyif occupies no span
		{6, "k", 4, 2, 1, 1},
		{7, "yo", 5, 3, 1, 2},
		{9, "k", 6, 5, 2, 2},
	}
	for _, tc := range cases {
		loc, err := Locate(row, tc.pos, g)
		require.NoError(t, err, "position %d", tc.pos)
		assert.Equal(t, tc.token, loc.Token, "position %d", tc.pos)
		assert.Equal(t, tc.instr, loc.InstructionIndex, "position %d", tc.pos)
		assert.Equal(t, tc.inFragment, loc.PositionInFragment, "position %d", tc.pos)
		assert.Equal(t, tc.application, loc.Application, "position %d", tc.pos)
		assert.Equal(t, tc.iteration, loc.IterationIndex, "position %d", tc.pos)
	}
}

func TestEmptyRow(t *testing.T) {
	_, err := Locate(nil, 1, testGlossary())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnknownTokenHasWidthOne(t *testing.T) {
	g := testGlossary()
	row := []model.AtomicInstruction{{Token: "mystery", Count: 3, FragmentID: "x"}}
	assert.Equal(t, 3, TotalWidth(row, g))

	loc, err := Locate(row, 3, g)
	require.NoError(t, err)
	assert.Equal(t, "mystery", loc.Token)
}
