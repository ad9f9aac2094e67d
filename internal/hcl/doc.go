// Package hcl loads pattern documents written in HCL into the
// format-agnostic model defined in the model package.
//
// A pattern may be split across several .hcl files or a directory of them;
// every file contributes blocks to one pattern. Exactly one "pattern" block
// may appear across all files. Stitch lists are HCL tuples and are bound to
// Go values through go-cty, and "calculation" blocks keep their raw
// expressions for the calc package to evaluate per row.
package hcl
