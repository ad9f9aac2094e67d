package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nyantoasty/stitchgrid/internal/fsutil"
)

// Format names a pattern document encoding.
type Format string

const (
	FormatHCL  Format = "hcl"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrMixedFormats means the paths of one pattern use more than one format.
var ErrMixedFormats = errors.New("config: paths mix document formats")

// Extensions lists the file extensions of f.
func (f Format) Extensions() []string {
	switch f {
	case FormatHCL:
		return []string{".hcl"}
	case FormatJSON:
		return []string{".json"}
	case FormatYAML:
		return []string{".yaml", ".yml"}
	}
	return nil
}

// FormatOf maps a file name to its format by extension.
func FormatOf(name string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".hcl":
		return FormatHCL, true
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	}
	return "", false
}

// DetectFormat returns the single format shared by paths. Directories are
// searched for any supported document.
func DetectFormat(paths ...string) (Format, error) {
	var all []string
	all = append(all, FormatHCL.Extensions()...)
	all = append(all, FormatJSON.Extensions()...)
	all = append(all, FormatYAML.Extensions()...)

	var found Format
	for _, path := range paths {
		files := []string{path}
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			var ferr error
			files, ferr = fsutil.FindAll([]string{path}, all...)
			if ferr != nil {
				return "", ferr
			}
		}
		for _, f := range files {
			format, ok := FormatOf(f)
			if !ok {
				return "", fmt.Errorf("config: unsupported document %s", f)
			}
			if found != "" && found != format {
				return "", fmt.Errorf("%w: %s and %s", ErrMixedFormats, found, format)
			}
			found = format
		}
	}
	if found == "" {
		return "", fmt.Errorf("config: no documents given")
	}
	return found, nil
}
