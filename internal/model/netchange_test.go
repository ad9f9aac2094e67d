package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNetChange(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"+2", 2},
		{"-2", -2},
		{"−4", -4},
		{"3", 3},
		{" +1 ", 1},
		{"+2 sts", 2},
		{"0", 0},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseNetChange(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseNetChange_Invalid(t *testing.T) {
	for _, in := range []string{"", "two", "+", "1.5"} {
		_, err := ParseNetChange(in)
		assert.ErrorIs(t, err, ErrInvalidNetChange, "input %q", in)
	}
}

func TestFormatNetChange(t *testing.T) {
	assert.Equal(t, "+2", FormatNetChange(2))
	assert.Equal(t, "+0", FormatNetChange(0))
	assert.Equal(t, "-3", FormatNetChange(-3))
}
