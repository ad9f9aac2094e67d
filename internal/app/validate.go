package app

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/nyantoasty/stitchgrid/internal/validate"
	"golang.org/x/sync/errgroup"
)

// ValidateAll loads every path as its own document, at most WorkerCount at a
// time. Documents come back in the order of paths.
func (a *App) ValidateAll(ctx context.Context, paths ...string) ([]*Document, error) {
	docs := make([]*Document, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.WorkerCount)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			docs[i] = a.Load(gctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// Validate checks every path and prints what it finds. It returns
// ErrInvalidPattern when any document has errors.
func (a *App) Validate(ctx context.Context, paths ...string) error {
	docs, err := a.ValidateAll(ctx, paths...)
	if err != nil {
		return err
	}

	invalid := 0
	for _, doc := range docs {
		if err := a.writeDiagnostics(doc); err != nil {
			return err
		}
		status := "ok"
		if doc.HasErrors() {
			status = "invalid"
			invalid++
		}
		fmt.Fprintf(a.outW, "%s: %s (%s)\n", doc.Paths[0], status, summarize(doc.Diagnostics))
	}
	if invalid > 0 {
		return fmt.Errorf("%w: %d of %d documents", ErrInvalidPattern, invalid, len(docs))
	}
	return nil
}

// writeDiagnostics prints doc's problems, with source snippets when the
// HCL files are at hand.
func (a *App) writeDiagnostics(doc *Document) error {
	if doc.Err != nil && len(doc.Diagnostics) == 0 {
		_, err := fmt.Fprintf(a.outW, "%s: error: %v\n", doc.Paths[0], doc.Err)
		return err
	}
	if len(doc.Diagnostics) == 0 {
		return nil
	}
	if doc.Files != nil {
		wr := hcl.NewDiagnosticTextWriter(a.outW, doc.Files, 100, false)
		return wr.WriteDiagnostics(doc.Diagnostics)
	}
	_, err := fmt.Fprint(a.outW, validate.Summary(doc.Diagnostics))
	return err
}

func summarize(diags hcl.Diagnostics) string {
	errs, warns := 0, 0
	for _, d := range diags {
		if d.Severity == hcl.DiagError {
			errs++
		} else {
			warns++
		}
	}
	return fmt.Sprintf("%d errors, %d warnings", errs, warns)
}
