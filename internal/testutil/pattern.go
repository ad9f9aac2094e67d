package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nyantoasty/stitchgrid/internal/app"
)

// LoadPattern writes a single pattern file called name and loads it the way
// the validate command does. cfg is completed as app.SetupAppTest does.
func LoadPattern(t *testing.T, name, src string, cfg app.Config) (*app.Document, *app.SafeBuffer) {
	t.Helper()

	dir := WriteFiles(t, map[string]string{name: src})
	a, _, logs := app.SetupAppTest(t, cfg)
	return a.Load(context.Background(), filepath.Join(dir, name)), logs
}
