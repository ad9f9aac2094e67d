package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatOf(t *testing.T) {
	for name, want := range map[string]Format{
		"a.hcl": FormatHCL, "b.JSON": FormatJSON, "c.yaml": FormatYAML, "d.yml": FormatYAML,
	} {
		got, ok := FormatOf(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
	_, ok := FormatOf("e.txt")
	assert.False(t, ok)
}

func TestDetectFormat(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.hcl"), nil, 0o644))

	f, err := DetectFormat(dir)
	require.NoError(t, err)
	assert.Equal(t, FormatHCL, f)

	f, err = DetectFormat("pattern.yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = DetectFormat(dir, "pattern.json")
	assert.ErrorIs(t, err, ErrMixedFormats)

	_, err = DetectFormat("notes.txt")
	assert.Error(t, err)
}
