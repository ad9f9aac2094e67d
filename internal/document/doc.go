// Package document loads pattern documents in the JSON or YAML export
// format into the format-agnostic model defined in the model package.
//
// Both encodings share one schema and are decoded with gopkg.in/yaml.v3,
// which reads JSON as a subset of YAML. A step numbered 0 with type
// "specialInstruction" is the cast-on instruction of the export: it sets the
// pattern's cast-on count rather than becoming a row.
package document
