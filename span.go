// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// A Span is an elapsed duration, counted in ticks. It may be negative.
//
// A Span has no calendar semantics: Days(30) is always exactly 30*TicksPerDay
// ticks. Use [Instant.AddMonths] for calendar-aware arithmetic.
//
// All whole-unit queries use floored division, so the components of a
// negative Span have the same sign convention as those of a positive one:
// -90 minutes is -2 whole hours plus 30 minutes.
//
// The zero value is the empty Span.
type Span struct {
	ticks int64
}

// SpanOf returns a Span of the given number of ticks.
func SpanOf(ticks int64) (Span, error) {
	if ticks < -MaxSpanTicks || ticks > MaxSpanTicks {
		return Span{}, rangeErr("span ticks", ticks, -MaxSpanTicks, MaxSpanTicks)
	}
	return Span{ticks}, nil
}

func scaled(field string, n, unit int64) (Span, error) {
	limit := MaxSpanTicks / unit
	if n < -limit || n > limit {
		return Span{}, rangeErr(field, n, -limit, limit)
	}
	return Span{n * unit}, nil
}

// Days returns a Span of n days of 24 hours each.
func Days(n int64) (Span, error) { return scaled("days", n, TicksPerDay) }

// Hours returns a Span of n hours.
func Hours(n int64) (Span, error) { return scaled("hours", n, TicksPerHour) }

// Minutes returns a Span of n minutes.
func Minutes(n int64) (Span, error) { return scaled("minutes", n, TicksPerMinute) }

// Seconds returns a Span of n seconds.
func Seconds(n int64) (Span, error) { return scaled("seconds", n, TicksPerSecond) }

// Milliseconds returns a Span of n milliseconds.
func Milliseconds(n int64) (Span, error) { return scaled("milliseconds", n, TicksPerMillisecond) }

// SpanOfDuration converts d, truncating towards zero to whole ticks. Every
// time.Duration fits in a Span.
func SpanOfDuration(d time.Duration) Span {
	return Span{int64(d / 100)}
}

// Ticks returns the length of s in ticks.
func (s Span) Ticks() int64 { return s.ticks }

// TotalDays returns the number of whole days in s, rounded down.
func (s Span) TotalDays() int64 { return floorDiv(s.ticks, TicksPerDay) }

// TotalHours returns the number of whole hours in s, rounded down.
func (s Span) TotalHours() int64 { return floorDiv(s.ticks, TicksPerHour) }

// TotalMinutes returns the number of whole minutes in s, rounded down.
func (s Span) TotalMinutes() int64 { return floorDiv(s.ticks, TicksPerMinute) }

// TotalSeconds returns the number of whole seconds in s, rounded down.
func (s Span) TotalSeconds() int64 { return floorDiv(s.ticks, TicksPerSecond) }

// TotalMilliseconds returns the number of whole milliseconds in s, rounded
// down.
func (s Span) TotalMilliseconds() int64 { return floorDiv(s.ticks, TicksPerMillisecond) }

// DaysPart is the day component of s. It equals TotalDays.
func (s Span) DaysPart() int64 { return s.TotalDays() }

// HoursPart is the hour component of s, in [0, 24).
func (s Span) HoursPart() int { return int(modulus(s.ticks, TicksPerDay) / TicksPerHour) }

// MinutesPart is the minute component of s, in [0, 60).
func (s Span) MinutesPart() int { return int(modulus(s.ticks, TicksPerHour) / TicksPerMinute) }

// SecondsPart is the second component of s, in [0, 60).
func (s Span) SecondsPart() int { return int(modulus(s.ticks, TicksPerMinute) / TicksPerSecond) }

// TicksPart is the sub-second component of s, in [0, TicksPerSecond).
func (s Span) TicksPart() int { return int(modulus(s.ticks, TicksPerSecond)) }

// Add returns s+o.
func (s Span) Add(o Span) (Span, error) {
	// Both operands are bounded by MaxSpanTicks, so the sum cannot overflow.
	return SpanOf(s.ticks + o.ticks)
}

// Sub returns s-o.
func (s Span) Sub(o Span) (Span, error) {
	return SpanOf(s.ticks - o.ticks)
}

// Neg returns -s.
func (s Span) Neg() Span { return Span{-s.ticks} }

// Abs returns the absolute value of s.
func (s Span) Abs() Span {
	if s.ticks < 0 {
		return s.Neg()
	}
	return s
}

// Compare returns -1, 0 or +1 depending on whether s is shorter than, equal
// to or longer than o.
func (s Span) Compare(o Span) int {
	switch {
	case s.ticks < o.ticks:
		return -1
	case s.ticks > o.ticks:
		return 1
	}
	return 0
}

// Duration converts s to a time.Duration. It fails if s exceeds the range of
// time.Duration (about 292 years).
func (s Span) Duration() (time.Duration, error) {
	const limit = math.MaxInt64 / 100
	if s.ticks < -limit || s.ticks > limit {
		return 0, rangeErr("span ticks", s.ticks, -limit, limit)
	}
	return time.Duration(s.ticks * 100), nil
}

// String formats s as [-]d.hh:mm:ss[.fffffff], using floored components.
// A negative span is printed with a negative day count and non-negative
// clock components, e.g. Minutes(-90) is "-1.22:30:00".
func (s Span) String() string {
	return string(s.AppendText(make([]byte, 0, 32)))
}

// AppendText appends the String form of s to b.
func (s Span) AppendText(b []byte) []byte {
	b = strconv.AppendInt(b, s.DaysPart(), 10)
	b = append(b, '.')
	b = appendInt(b, s.HoursPart(), 2)
	b = append(b, ':')
	b = appendInt(b, s.MinutesPart(), 2)
	b = append(b, ':')
	b = appendInt(b, s.SecondsPart(), 2)
	if f := s.TicksPart(); f != 0 {
		b = append(b, '.')
		b = appendInt(b, f, 7)
	}
	return b
}

// ParseSpan parses the format produced by [Span.String].
func ParseSpan(v string) (Span, error) {
	const pattern = "d.hh:mm:ss"
	perr := func(msg string) error {
		return &ParseError{Pattern: pattern, Value: strings.Clone(v), Message: msg}
	}
	wrap := func(err error) error {
		return &ParseError{Pattern: pattern, Value: strings.Clone(v), Err: err}
	}
	days, clock, ok := strings.Cut(v, ".")
	if !ok {
		return Span{}, perr("missing day separator")
	}
	d, err := strconv.ParseInt(days, 10, 64)
	if err != nil || days[0] == '+' {
		return Span{}, perr("invalid day count")
	}
	// String writes a negative Span with a negative day count, never as -0.
	if d == 0 && days[0] == '-' {
		return Span{}, perr("negative zero day count")
	}
	clock, frac, hasFrac := strings.Cut(clock, ".")
	if len(clock) != 8 || clock[2] != ':' || clock[5] != ':' {
		return Span{}, perr("invalid clock")
	}
	var parts [3]int
	for i := range parts {
		n, ok := atoiN(clock[3*i:3*i+2], 2)
		if !ok {
			return Span{}, perr("invalid clock")
		}
		parts[i] = n
	}
	var ticks int
	if hasFrac {
		var ok bool
		if ticks, ok = atoiN(frac, 7); !ok {
			return Span{}, perr("invalid fraction")
		}
	}
	// The most negative span has a day count one below -MaxSpanTicks/TicksPerDay.
	if limit := MaxSpanTicks/TicksPerDay + 1; d < -limit || d > limit {
		return Span{}, wrap(rangeErr("days", d, -limit, limit))
	}
	clockPart, err := clockTicks(parts[0], parts[1], parts[2])
	if err != nil {
		return Span{}, wrap(err)
	}
	s, err := SpanOf(d*TicksPerDay + clockPart + int64(ticks))
	if err != nil {
		return Span{}, wrap(err)
	}
	return s, nil
}

// appendInt appends the non-negative v, zero-padded to width digits.
func appendInt(b []byte, v, width int) []byte {
	var buf [20]byte
	s := strconv.AppendInt(buf[:0], int64(v), 10)
	for i := len(s); i < width; i++ {
		b = append(b, '0')
	}
	return append(b, s...)
}

// atoiN parses exactly n decimal digits.
func atoiN(s string, n int) (int, bool) {
	if len(s) != n {
		return 0, false
	}
	v := 0
	for i := 0; i < n; i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		v = v*10 + int(s[i]-'0')
	}
	return v, true
}
