// Package config defines the Loader contract that turns pattern documents
// into the format-agnostic model.Pattern, and picks the loader format for a
// set of paths.
//
// Concrete loaders live in separate packages: hcl for .hcl files and
// document for the JSON and YAML exports.
package config
