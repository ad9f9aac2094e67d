// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines FSInfo, which links a loaded pattern back to the file(s)
// it was read from so diagnostics can name them.
package model

// FSInfo records where a pattern document came from.
type FSInfo struct {
	FilePaths []string
	Format    string // "hcl", "json" or "yaml"
}

func NewFSInfo(format string, filePaths ...string) *FSInfo {
	return &FSInfo{
		FilePaths: filePaths,
		Format:    format,
	}
}

// Primary returns the first source file, or "" when the pattern was built in memory.
func (f *FSInfo) Primary() string {
	if f == nil || len(f.FilePaths) == 0 {
		return ""
	}
	return f.FilePaths[0]
}
