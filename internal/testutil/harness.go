package testutil

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nyantoasty/stitchgrid/internal/app"
	"github.com/nyantoasty/stitchgrid/internal/cli"
	"github.com/stretchr/testify/require"
)

// DirPlaceholder in an argument is replaced with the harness's temporary
// directory.
const DirPlaceholder = "$DIR"

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	Dir       string
}

// ExitCode is the process exit code the run would have produced.
func (r *HarnessResult) ExitCode(t *testing.T) int {
	t.Helper()
	if r.Err == nil {
		return 0
	}
	var exitErr *cli.ExitError
	require.ErrorAs(t, r.Err, &exitErr)
	return exitErr.Code
}

// RunIntegrationTest writes files into a temporary directory and runs the
// command line with args, using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, args ...string) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, args...)
}

// RunIntegrationTestWithContext is RunIntegrationTest with a caller
// provided context.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, args ...string) *HarnessResult {
	t.Helper()

	dir := WriteFiles(t, files)
	expanded := make([]string, len(args))
	for i, arg := range args {
		expanded[i] = strings.ReplaceAll(arg, DirPlaceholder, dir)
	}

	out := &app.SafeBuffer{}
	logs := &app.SafeBuffer{}
	err := cli.Execute(ctx, append([]string{"--log-level", "debug"}, expanded...), out, logs)

	if os.Getenv("STITCHGRID_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}

	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logs.String(),
		Err:       err,
		Dir:       dir,
	}
}

// WriteFiles writes files, keyed by relative path, under a fresh temporary
// directory and returns it.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}
