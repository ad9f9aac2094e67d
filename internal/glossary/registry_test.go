package glossary

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/nyantoasty/stitchgrid/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func knittingGlossary() map[string]model.GlossaryEntry {
	return map[string]model.GlossaryEntry{
		"k":         {Name: "Knit", Consumed: 1, Produced: 1},
		"kfb":       {Name: "Knit front and back", Consumed: 1, Produced: 2},
		"k2tog tbl": {Name: "Knit 2 together through back loop", Consumed: 2, Produced: 1},
		"yo":        {Name: "Yarn over", Consumed: 0, Produced: 1},
		"wyib":      {Name: "With yarn in back", Consumed: 0, Produced: 0},
	}
}

func TestGetKnownCodes(t *testing.T) {
	r := New(knittingGlossary(), nil)

	assert.Equal(t, 1, r.Net("kfb"))
	assert.Equal(t, -1, r.Net("k2tog tbl"))
	assert.Equal(t, 1, r.Net("yo"))
	assert.Equal(t, 0, r.Width("wyib"))
	assert.Empty(t, r.Unknown())
}

func TestUnknownCodeFallsBackToNeutral(t *testing.T) {
	var buf bytes.Buffer
	r := New(knittingGlossary(), slog.New(slog.NewTextHandler(&buf, nil)))

	e := r.Get("m1l")
	assert.Equal(t, model.NeutralEntry, e)
	assert.Equal(t, 1, e.Consumed)
	assert.Equal(t, 1, e.Produced)
	assert.Equal(t, 0, r.Net("m1l"))

	_, ok := r.Lookup("m1l")
	assert.False(t, ok)
	assert.Equal(t, map[string]int{"m1l": 2}, r.Unknown())
	assert.Equal(t, 1, strings.Count(buf.String(), "Unknown token code"), "warning is logged once per code")
}

func TestResolveStrict(t *testing.T) {
	r := New(knittingGlossary(), nil)

	_, err := r.Resolve("m1r", true)
	assert.ErrorIs(t, err, ErrUnknownToken)

	e, err := r.Resolve("m1r", false)
	require.NoError(t, err)
	assert.Equal(t, model.NeutralEntry, e)
}

func TestCodesSorted(t *testing.T) {
	r := New(knittingGlossary(), nil)
	assert.Equal(t, []string{"k", "k2tog tbl", "kfb", "wyib", "yo"}, r.Codes())
	assert.Equal(t, 5, r.Len())
}

func TestNewRejectsNegativeCost(t *testing.T) {
	assert.Panics(t, func() {
		New(map[string]model.GlossaryEntry{"bad": {Consumed: -1}}, nil)
	})
}
