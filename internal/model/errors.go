// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import "errors"

var (
	// ErrInvalidTemplate marks a template or chunk that can never be resolved.
	ErrInvalidTemplate = errors.New("model: invalid template")
	// ErrInvalidNetChange marks a net-change shorthand that does not parse.
	ErrInvalidNetChange = errors.New("model: invalid net change")
)
