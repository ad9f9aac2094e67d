package calc

import (
	"testing"

	"github.com/nyantoasty/stitchgrid/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalSource(t *testing.T, src string, rc RowContext) (int, error) {
	t.Helper()
	expr, err := ParseExpression(src, "expression_test")
	require.NoError(t, err)
	return FromExpression(expr)(rc)
}

func TestFromExpression(t *testing.T) {
	rc := RowContext{Row: 12, StartingCount: 40, Consumed: 4, DeclaredEnding: model.IntPtr(42)}

	cases := []struct {
		src  string
		want int
	}{
		{"total - 5", 35},
		{"remaining - 2", 34},
		{"consumed", 4},
		{"row", 12},
		{"floor(total / 3)", 13},
		{"ceil(total / 3)", 14},
		{"max(remaining - 50, 0)", 0},
		{"min(remaining, 10)", 10},
		{"declared_ending - total", 2},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			got, err := evalSource(t, tc.src, rc)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFromExpressionErrors(t *testing.T) {
	rc := RowContext{Row: 1, StartingCount: 10}

	_, err := evalSource(t, "total / 3", rc)
	assert.ErrorIs(t, err, ErrInvalidExpression, "fractions are rejected")

	_, err = evalSource(t, "stitches - 1", rc)
	assert.ErrorIs(t, err, ErrInvalidExpression, "unknown variable")

	_, err = evalSource(t, "declared_ending", rc)
	assert.ErrorIs(t, err, ErrInvalidExpression, "null when no ending is declared")

	_, err = ParseExpression("total -", "broken")
	assert.ErrorIs(t, err, ErrInvalidExpression)
}

func TestVariables(t *testing.T) {
	expr, err := ParseExpression("max(remaining - 2, stitches)", "vars")
	require.NoError(t, err)

	vars := Variables(expr)
	assert.ElementsMatch(t, []string{"remaining", "stitches"}, vars)
	assert.True(t, KnownVariable("remaining"))
	assert.False(t, KnownVariable("stitches"))
}
