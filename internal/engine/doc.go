// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package engine is the row-resolution layer. An Engine is the context of
// one loaded pattern: its template index, glossary, calculation registry and
// the count cache. Every resolution goes through it; nothing is kept in
// package-level state.
//
// # Count propagation
//
// Row 1 starts from the pattern's cast-on count. Every later row starts
// where the previous row ended. A row's ending count is, in order of
// precedence:
//
//  1. the explicit ending count of an exact template,
//  2. the starting count plus the net-change shorthand of a ranged template,
//  3. the starting count plus the net change of the expanded instructions.
//
// Counts are cached per row. Requests for increasing rows cost O(1) each;
// a request for a distant row walks back to the nearest cached row and
// fills the cache forward from there. Loading another pattern drops the
// cache.
//
// # Errors
//
// Expected conditions come back as errors wrapped in *RowError:
// ErrTemplateNotFound, ErrOutOfRange, ErrNoCastOn, ErrCountMismatch (strict
// mode only), calc.ErrUnknownCalculation and glossary.ErrUnknownToken
// (strict mode only).
//
// The Engine is safe for concurrent use.
package engine
