package templateindex

import (
	"testing"

	"github.com/nyantoasty/stitchgrid/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExactWinsOverRanged(t *testing.T) {
	ranged := &model.RangedTemplate{From: 1, To: 10}
	exact := &model.ExactTemplate{Row: 5}
	ix := New([]model.StepTemplate{ranged, exact})

	got, err := ix.Lookup(5)
	require.NoError(t, err)
	assert.Same(t, exact, got)

	got, err = ix.Lookup(6)
	require.NoError(t, err)
	assert.Same(t, ranged, got)
}

func TestFirstRangedWinsAndOverlapIsReported(t *testing.T) {
	first := &model.RangedTemplate{From: 1, To: 6}
	second := &model.RangedTemplate{From: 4, To: 9}
	ix := New([]model.StepTemplate{first, second})

	got, err := ix.Lookup(5)
	require.NoError(t, err)
	assert.Same(t, first, got)

	got, err = ix.Lookup(8)
	require.NoError(t, err)
	assert.Same(t, second, got)

	require.Len(t, ix.Overlaps(), 1)
	o := ix.Overlaps()[0]
	assert.Same(t, first, o.Winner)
	assert.Same(t, second, o.Loser)
	assert.Equal(t, 4, o.From)
	assert.Equal(t, 6, o.To)
}

func TestLookupNotFound(t *testing.T) {
	ix := New([]model.StepTemplate{&model.ExactTemplate{Row: 1}, &model.RangedTemplate{From: 3, To: 4}})

	_, err := ix.Lookup(2)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
	assert.Equal(t, []int{2, 5}, ix.Gaps(5))
	assert.Equal(t, 4, ix.MaxRow())
}

func TestDuplicateExactRows(t *testing.T) {
	a := &model.ExactTemplate{Row: 2, TemplateMeta: model.TemplateMeta{Side: "RS"}}
	b := &model.ExactTemplate{Row: 2, TemplateMeta: model.TemplateMeta{Side: "WS"}}
	ix := New([]model.StepTemplate{a, b})

	got, err := ix.Lookup(2)
	require.NoError(t, err)
	assert.Same(t, a, got)
	assert.Equal(t, []*model.ExactTemplate{b}, ix.Duplicates())
}
