// Package validate inspects a loaded pattern without resolving any row and
// reports problems as hcl.Diagnostics. It catches the mistakes that would
// otherwise only surface as wrong counts many rows later: overlapping ranges,
// rows no template covers, stitch codes missing from the glossary, and
// calculations that are unknown or known to be approximate.
//
// Count mismatches need every row resolved and are reported by
// engine.Engine.Check instead.
package validate
