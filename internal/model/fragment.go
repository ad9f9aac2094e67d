// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import "fmt"

// FragmentType names a fragment variant.
type FragmentType string

const (
	FragmentStatic  FragmentType = "static"
	FragmentDynamic FragmentType = "dynamic"
	FragmentRepeat  FragmentType = "repeat"
)

// ParseFragmentType converts a document string into a FragmentType.
func ParseFragmentType(s string) (FragmentType, error) {
	switch FragmentType(s) {
	case FragmentStatic, FragmentDynamic, FragmentRepeat:
		return FragmentType(s), nil
	}
	return "", fmt.Errorf("%w: unknown chunk type %q (want static, dynamic or repeat)", ErrInvalidTemplate, s)
}

// Fragment is one chunk of a template's instructions. It is implemented by
// *StaticFragment, *DynamicFragment and *RepeatFragment only.
type Fragment interface {
	FragmentID() string
	Type() FragmentType
	fragment()
}

// Stitch is a (token, count) pair.
type Stitch struct {
	Token string
	Count int
}

// DynamicStitch is a (token, count) pair whose count may be a placeholder.
// When Calculation is empty Count is used literally.
type DynamicStitch struct {
	Token       string
	Count       int
	Calculation string
}

// IsPlaceholder reports whether the count must be computed.
func (d DynamicStitch) IsPlaceholder() bool {
	return d.Calculation != ""
}

// StaticFragment is used as-is.
type StaticFragment struct {
	ID       string
	Stitches []Stitch
}

// DynamicFragment has counts computed from the row context.
type DynamicFragment struct {
	ID       string
	Stitches []DynamicStitch
}

// RepeatFragment emits Stitches Times times.
type RepeatFragment struct {
	ID       string
	Stitches []Stitch
	Times    int
}

func (f *StaticFragment) FragmentID() string  { return f.ID }
func (f *DynamicFragment) FragmentID() string { return f.ID }
func (f *RepeatFragment) FragmentID() string  { return f.ID }

func (*StaticFragment) Type() FragmentType  { return FragmentStatic }
func (*DynamicFragment) Type() FragmentType { return FragmentDynamic }
func (*RepeatFragment) Type() FragmentType  { return FragmentRepeat }

func (*StaticFragment) fragment()  {}
func (*DynamicFragment) fragment() {}
func (*RepeatFragment) fragment()  {}

// DefaultFragmentID is the ID given to the i-th (zero based) chunk of a
// template when the document does not name it.
func DefaultFragmentID(i int) string {
	return fmt.Sprintf("chunk-%d", i)
}

// Tokens lists every token code a fragment references, in order.
func Tokens(f Fragment) []string {
	var out []string
	switch fr := f.(type) {
	case *StaticFragment:
		for _, s := range fr.Stitches {
			out = append(out, s.Token)
		}
	case *RepeatFragment:
		for _, s := range fr.Stitches {
			out = append(out, s.Token)
		}
	case *DynamicFragment:
		for _, s := range fr.Stitches {
			out = append(out, s.Token)
		}
	default:
		panic(fmt.Sprintf("model: unhandled fragment type %T", f))
	}
	return out
}

// Calculations lists the calculation names a fragment references.
func Calculations(f Fragment) []string {
	fr, ok := f.(*DynamicFragment)
	if !ok {
		return nil
	}
	var out []string
	for _, s := range fr.Stitches {
		if s.IsPlaceholder() {
			out = append(out, s.Calculation)
		}
	}
	return out
}

func validateFragment(f Fragment) error {
	switch fr := f.(type) {
	case *StaticFragment:
		return validateStitches(fr.ID, fr.Stitches)
	case *RepeatFragment:
		if fr.Times < 0 {
			return fmt.Errorf("%w: chunk %q repeats %d times", ErrInvalidTemplate, fr.ID, fr.Times)
		}
		return validateStitches(fr.ID, fr.Stitches)
	case *DynamicFragment:
		for _, s := range fr.Stitches {
			if s.Token == "" {
				return fmt.Errorf("%w: chunk %q has an empty token", ErrInvalidTemplate, fr.ID)
			}
			if !s.IsPlaceholder() && s.Count < 0 {
				return fmt.Errorf("%w: chunk %q has negative count %d for %q", ErrInvalidTemplate, fr.ID, s.Count, s.Token)
			}
		}
		return nil
	case nil:
		return fmt.Errorf("%w: nil chunk", ErrInvalidTemplate)
	default:
		panic(fmt.Sprintf("model: unhandled fragment type %T", f))
	}
}

func validateStitches(id string, stitches []Stitch) error {
	for _, s := range stitches {
		if s.Token == "" {
			return fmt.Errorf("%w: chunk %q has an empty token", ErrInvalidTemplate, id)
		}
		if s.Count < 0 {
			return fmt.Errorf("%w: chunk %q has negative count %d for %q", ErrInvalidTemplate, id, s.Count, s.Token)
		}
	}
	return nil
}

// BuildFragment types a decoded chunk. Static and repeat chunks must carry
// literal counts; times is only read for repeat chunks.
func BuildFragment(typ FragmentType, id string, times int, stitches []DynamicStitch) (Fragment, error) {
	literal := func() ([]Stitch, error) {
		out := make([]Stitch, 0, len(stitches))
		for _, s := range stitches {
			if s.IsPlaceholder() {
				return nil, fmt.Errorf("%w: %s chunk %q uses calculation %q; only dynamic chunks may", ErrInvalidTemplate, typ, id, s.Calculation)
			}
			out = append(out, Stitch{Token: s.Token, Count: s.Count})
		}
		return out, nil
	}

	var f Fragment
	switch typ {
	case FragmentStatic:
		ss, err := literal()
		if err != nil {
			return nil, err
		}
		f = &StaticFragment{ID: id, Stitches: ss}
	case FragmentRepeat:
		ss, err := literal()
		if err != nil {
			return nil, err
		}
		f = &RepeatFragment{ID: id, Stitches: ss, Times: times}
	case FragmentDynamic:
		f = &DynamicFragment{ID: id, Stitches: append([]DynamicStitch(nil), stitches...)}
	default:
		return nil, fmt.Errorf("%w: unknown chunk type %q", ErrInvalidTemplate, typ)
	}
	if err := validateFragment(f); err != nil {
		return nil, err
	}
	return f, nil
}
