// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the Go representation of a pattern document: the
// glossary of stitch tokens, the ordered row templates and the fragments they
// are made of, plus the derived, ephemeral values (atomic instructions and
// resolved rows) produced by the resolution engine.
//
// # Core Concepts
//
//   - Pattern: the root container. It is immutable once a loader has built it.
//
//   - StepTemplate: the authored form of one row (ExactTemplate) or of an
//     inclusive range of rows sharing one fragment list (RangedTemplate).
//
//   - Fragment: one chunk of a template. StaticFragment is used as-is,
//     RepeatFragment is emitted Times times, DynamicFragment carries count
//     placeholders that name a calculation evaluated against the row context.
//
//   - GlossaryEntry: the cost of a token, in stitches consumed and produced.
//
//   - ResolvedRow: a row expanded into AtomicInstructions together with its
//     starting and ending running counts.
//
// StepTemplate and Fragment are sealed interfaces. Code that switches over
// them is expected to handle every variant and panic in the default branch.
package model
