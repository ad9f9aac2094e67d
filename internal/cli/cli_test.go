package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ribHCL = `
pattern "rib" {
  cast_on = 8
  rows    = 2
}
glossary "k" {
  consumed = 1
  produced = 1
}
glossary "p" {
  consumed = 1
  produced = 1
}
rows {
  from = 1
  to   = 2
  chunk "repeat" {
    id       = "rib"
    times    = 4
    stitches = [["k", 1], ["p", 1]]
  }
}
`

func writePattern(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pattern.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := Execute(context.Background(), args, &out, &errOut)
	return out.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	return exitErr.Code
}

func TestExecute_Resolve(t *testing.T) {
	t.Parallel()
	path := writePattern(t, ribHCL)

	out, err := execute(t, "resolve", path, "--row", "2")
	require.NoError(t, err)
	assert.Equal(t, "Row 2: 8 -> 8 sts (+0)\n  [k, p] x4\n", out)
}

func TestExecute_ResolveYAML(t *testing.T) {
	t.Parallel()
	path := writePattern(t, ribHCL)

	out, err := execute(t, "-o", "yaml", "resolve", path, "-r", "1", "--to", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "- row: 1\n")
	assert.Contains(t, out, "- row: 2\n")
	assert.Contains(t, out, "fragmentId: rib")
}

func TestExecute_Counts(t *testing.T) {
	t.Parallel()
	path := writePattern(t, ribHCL)

	out, err := execute(t, "counts", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ROW")
	assert.Contains(t, out, "rows 1-2")
}

func TestExecute_Locate(t *testing.T) {
	t.Parallel()
	path := writePattern(t, ribHCL)

	out, err := execute(t, "locate", path, "--row", "1", "--position", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "stitch 6: p")
	assert.Contains(t, out, "repeat 3 of 4")
}

func TestExecute_Validate(t *testing.T) {
	t.Parallel()
	good := writePattern(t, ribHCL)
	bad := writePattern(t, `
pattern "gap" {
  cast_on = 4
}
glossary "k" {
  consumed = 1
  produced = 1
}
row {
  number = 1
  chunk "static" {
    stitches = [["k", 4]]
  }
}
row {
  number = 3
  chunk "static" {
    stitches = [["k", 4]]
  }
}
`)

	out, err := execute(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, good+": ok")

	out, err = execute(t, "validate", good, bad)
	assert.Equal(t, ExitInvalid, exitCode(t, err))
	assert.Contains(t, out, "Rows without a template")
	assert.Contains(t, out, bad+": invalid")
}

func TestExecute_UsageErrors(t *testing.T) {
	t.Parallel()
	path := writePattern(t, ribHCL)

	cases := map[string][]string{
		"unknown flag":     {"--this-is-not-a-valid-flag"},
		"unknown command":  {"knit", path},
		"missing path":     {"counts"},
		"missing row":      {"resolve", path},
		"bad log format":   {"--log-format", "xml", "counts", path},
		"bad output":       {"--output", "csv", "counts", path},
		"bad fallback":     {"--calc-fallback", "-5", "counts", path},
		"inverted range":   {"resolve", path, "--row", "2", "--to", "1"},
		"missing position": {"locate", path, "--row", "1"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := execute(t, args...)
			assert.Equal(t, ExitUsage, exitCode(t, err))
		})
	}
}

func TestExecute_CommandErrors(t *testing.T) {
	t.Parallel()
	path := writePattern(t, ribHCL)

	_, err := execute(t, "resolve", path, "--row", "3")
	assert.Equal(t, ExitInvalid, exitCode(t, err))

	_, err = execute(t, "locate", path, "--row", "1", "--position", "9")
	assert.Equal(t, ExitInvalid, exitCode(t, err))

	_, err = execute(t, "counts", filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Equal(t, ExitInvalid, exitCode(t, err))
}

func TestExecute_Help(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "resolve")
	assert.Contains(t, out, "--calc-fallback")
}
