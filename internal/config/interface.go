package config

import (
	"context"

	"github.com/nyantoasty/stitchgrid/internal/model"
)

// Loader is the interface for a format-specific pattern loader.
type Loader interface {
	// Load reads the documents at paths, merges them into one pattern and
	// returns it. Parse and decoding problems are returned as
	// hcl.Diagnostics wrapped in the error where the format has positions.
	Load(ctx context.Context, paths ...string) (*model.Pattern, error)
}
