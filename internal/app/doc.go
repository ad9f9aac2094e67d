// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the operations behind each command: loading
// and validating pattern documents, resolving rows, listing running counts
// and locating stitches. It is decoupled from any specific entrypoint like a
// CLI.
package app
