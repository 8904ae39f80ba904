// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is matched by every error reporting a field or tick count
// outside its valid range. Use errors.Is to test for it.
var ErrOutOfRange = errors.New("calendar: value out of range")

// ErrNullDate is returned when unmarshalling the persistence sentinel for "no
// date" (see [IsNullDate]).
var ErrNullDate = errors.New("calendar: null date")

// RangeError describes a value outside its valid range.
type RangeError struct {
	// Field names the offending input, e.g. "month" or "ticks".
	Field string
	Value int64
	Min   int64
	Max   int64
}

func rangeErr(field string, v, min, max int64) *RangeError {
	return &RangeError{Field: field, Value: v, Min: min, Max: max}
}

// Error returns the string representation of a RangeError.
func (e *RangeError) Error() string {
	return fmt.Sprintf("calendar: %s %d out of range [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

// Is reports whether target is ErrOutOfRange.
func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// ParseError describes a problem parsing a string against a pattern.
type ParseError struct {
	Pattern     string
	Value       string
	PatternElem string
	ValueElem   string
	Message     string
	// Err is the underlying cause, if any. It is a *RangeError when the
	// text matched the pattern but described an invalid date.
	Err error
}

// Error returns the string representation of a ParseError.
func (e *ParseError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("parsing %q as %q: %v", e.Value, e.Pattern, e.Err)
	case e.Message != "":
		return fmt.Sprintf("parsing %q as %q: %s", e.Value, e.Pattern, e.Message)
	}
	return fmt.Sprintf("parsing %q as %q: cannot parse %q as %q", e.Value, e.Pattern, e.ValueElem, e.PatternElem)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
