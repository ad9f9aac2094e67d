package calc

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/nyantoasty/stitchgrid/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinContracts(t *testing.T) {
	r := New()
	// 5 stitches already worked out of 100.
	rc := RowContext{Row: 7, StartingCount: 100, Consumed: 5}

	cases := []struct {
		name string
		want int
	}{
		{Total, 100},
		{TotalM3, 97},
		{TotalM6, 94},
		{ToEnd, 95},
		{ToLast3, 92},
		{ToLast4, 91},
		{ToMarker, 33},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := r.Evaluate(tc.name, rc)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.True(t, r.IsBuiltin(tc.name))
			assert.NotEmpty(t, r.Describe(tc.name))
		})
	}
}

func TestToLast3AndTotalMinus6Differ(t *testing.T) {
	r := New()
	rc := RowContext{Row: 1, StartingCount: 20}

	last3, err := r.Evaluate(ToLast3, rc)
	require.NoError(t, err)
	total6, err := r.Evaluate(TotalM6, rc)
	require.NoError(t, err)
	assert.Equal(t, 17, last3)
	assert.Equal(t, 14, total6)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "total-6", Normalize(" total−6 "))
	assert.Equal(t, "total-3", Normalize("total - 3"))

	r := New()
	got, err := r.Evaluate("total−6", RowContext{StartingCount: 10})
	require.NoError(t, err)
	assert.Equal(t, 4, got)
}

func TestUnknownCalculationFailsByDefault(t *testing.T) {
	r := New()
	_, err := r.Evaluate("toLast9", RowContext{Row: 3, StartingCount: 20})
	assert.ErrorIs(t, err, ErrUnknownCalculation)
	assert.Empty(t, r.Fallbacks())
}

func TestUnknownCalculationExplicitFallback(t *testing.T) {
	var buf bytes.Buffer
	r := New(WithFallback(1), WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	got, err := r.Evaluate("toLast9", RowContext{Row: 3, StartingCount: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, got)
	_, _ = r.Evaluate("toLast9", RowContext{Row: 4, StartingCount: 20})

	assert.Equal(t, map[string]int{"toLast9": 2}, r.Fallbacks())
	assert.Contains(t, buf.String(), "Unknown calculation")
}

func TestNegativeResultIsAnError(t *testing.T) {
	r := New()
	_, err := r.Evaluate(ToLast4, RowContext{Row: 2, StartingCount: 6, Consumed: 4})
	assert.ErrorIs(t, err, ErrNegativeCount)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	r := New()
	assert.Panics(t, func() {
		r.Register(Total, func(RowContext) (int, error) { return 0, nil }, "")
	})
}

func TestRegisterCustom(t *testing.T) {
	r := New()
	r.Register("half", func(c RowContext) (int, error) { return c.StartingCount / 2, nil }, "half the row")

	got, err := r.Evaluate("half", RowContext{StartingCount: 11})
	require.NoError(t, err)
	assert.Equal(t, 5, got)
	assert.False(t, r.IsBuiltin("half"))
	assert.Contains(t, r.Names(), "half")
}

func TestRegisterDefs(t *testing.T) {
	expr, err := ParseExpression("remaining - 5", "test")
	require.NoError(t, err)

	r := New()
	require.NoError(t, r.RegisterDefs([]*model.CalculationDef{{Name: "toLast5", Expression: expr}}))

	got, err := r.Evaluate("toLast5", RowContext{StartingCount: 30, Consumed: 2})
	require.NoError(t, err)
	assert.Equal(t, 23, got)

	err = r.RegisterDefs([]*model.CalculationDef{{Name: "toLast5", Expression: expr}})
	assert.ErrorIs(t, err, ErrDuplicate)

	err = r.RegisterDefs([]*model.CalculationDef{{Name: "empty"}})
	assert.ErrorIs(t, err, ErrInvalidExpression)
}
