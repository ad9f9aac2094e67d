// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseNetChange parses the shorthand used by ranged templates: "+2", "-2",
// "−2" (U+2212 minus sign) or a bare "2".
func ParseNetChange(s string) (int, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.Replace(trimmed, "−", "-", 1)
	trimmed = strings.TrimSuffix(strings.TrimSuffix(trimmed, " sts"), " st")
	if trimmed == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidNetChange)
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNetChange, s)
	}
	return n, nil
}

// FormatNetChange renders n with an explicit sign.
func FormatNetChange(n int) string {
	if n >= 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
