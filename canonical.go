// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"strings"
)

// Canonical machine formats. They do not depend on locale and are used to
// exchange Instants with storage and other systems.
const (
	DatePattern     = "%Y-%m-%d"
	TimePattern     = "%H:%M:%S"
	DateTimePattern = DatePattern + " " + TimePattern

	// textPattern is DateTimePattern with sub-second ticks, used by
	// MarshalText when the fraction is not zero.
	textPattern = DateTimePattern + ".%f"
)

// Sentinels used by storage layers for "no date".
const (
	NullDate     = "0000-00-00"
	NullDateTime = NullDate + " 00:00:00"
)

// IsNullDate reports whether s is one of the "no date" sentinels, ignoring
// surrounding spaces. It lets callers tell an absent date from
// 0001-01-01, which is a valid Instant.
func IsNullDate(s string) bool {
	s = strings.TrimSpace(s)
	return s == NullDate || s == NullDateTime
}

// DateString formats i as YYYY-MM-DD.
func (i Instant) DateString() string { return i.Format(DatePattern) }

// TimeString formats i as HH:MM:SS.
func (i Instant) TimeString() string { return i.Format(TimePattern) }

// String formats i as YYYY-MM-DD HH:MM:SS, in its own Offset.
//
// The returned string is meant for debugging and for storage columns that
// keep the offset elsewhere; to exchange an Instant as a single moment, use
// MarshalText.
func (i Instant) String() string { return i.Format(DateTimePattern) }

// ParseCanonical parses a canonical date (YYYY-MM-DD), time (HH:MM:SS) or
// date-time (YYYY-MM-DD HH:MM:SS), read in off. A nil off means Local.
// A time alone is placed on 0001-01-01.
func ParseCanonical(s string, off Offset) (Instant, error) {
	switch len(s) {
	case len("2006-01-02"):
		return Parse(DatePattern, s, off)
	case len("15:04:05"):
		return Parse(TimePattern, s, off)
	case len("2006-01-02 15:04:05"):
		return Parse(DateTimePattern, s, off)
	}
	return Instant{}, &ParseError{
		Pattern: DateTimePattern,
		Value:   strings.Clone(s),
		Message: "not a canonical date, time or date-time",
	}
}

// MarshalText implements the encoding.TextMarshaler interface. The moment of
// i is formatted in UTC as YYYY-MM-DD HH:MM:SS, followed by .fffffff if it
// has sub-second ticks.
func (i Instant) MarshalText() ([]byte, error) {
	u, err := i.WithOffset(UTC)
	if err != nil {
		return nil, err
	}
	pattern := DateTimePattern
	if u.wall%TicksPerSecond != 0 {
		pattern = textPattern
	}
	return u.AppendFormat(make([]byte, 0, len(textPattern)+16), pattern), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. It accepts
// the output of MarshalText and yields an Instant in UTC. The null date
// sentinels return ErrNullDate and leave i unchanged.
func (i *Instant) UnmarshalText(b []byte) error {
	s := string(b)
	if IsNullDate(s) {
		return ErrNullDate
	}
	pattern := DateTimePattern
	if len(s) > len("2006-01-02 15:04:05") {
		pattern = textPattern
	}
	v, err := Parse(pattern, s, UTC)
	if err == nil {
		*i = v
	}
	return err
}
