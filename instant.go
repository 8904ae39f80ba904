// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package calendar implements points in time and durations as tick counts,
// with proleptic Gregorian calendar arithmetic.
//
// A tick is 100 nanoseconds. An [Instant] counts ticks since 0001-01-01
// 00:00:00 and carries an [Offset] to relate its wall clock reading to UTC.
// A [Span] counts elapsed ticks and knows nothing about calendars.
//
// The package does not use the time package for calendar computations. It
// only relies on it to read the host clock and to resolve timezone rules
// (see [ZoneOffset]). The calendar computations follow the standard
// library's, so they make the same assumptions: there are no leap seconds,
// and the Gregorian leap year rule is applied to all years, including those
// before its introduction.
//
// Instants and Spans are values. No operation modifies its receiver, so they
// can be shared between goroutines freely.
package calendar

import (
	"fmt"
	"time"
)

// An Instant is a point in time between 0001-01-01 00:00:00 and
// 9999-12-31 23:59:59.9999999, bound to an Offset. Both its UTC moment and
// its wall clock reading are within that range.
//
// An Instant has two tick counts: its wall clock reading under its Offset,
// reported by Ticks, and the same moment in UTC, reported by UTCTicks. All
// calendar fields are derived from the former. Comparisons use the latter,
// so two Instants for the same moment are Equal whatever their Offsets.
//
// The zero value is 0001-01-01 00:00:00 UTC.
type Instant struct {
	utc  int64
	wall int64
	off  Offset // nil means UTC
}

func orLocal(off Offset) Offset {
	if off == nil {
		return Local
	}
	return off
}

// wallInstant returns the Instant with the wall clock reading wall in off.
// A reading skipped by a transition of off is moved past the transition, as
// with time.Date.
func wallInstant(wall int64, off Offset) (Instant, error) {
	if wall < MinTicks || wall > MaxTicks {
		return Instant{}, rangeErr("ticks", wall, MinTicks, MaxTicks)
	}
	return utcInstant(utcOf(wall, off), off)
}

// utcInstant returns the Instant for the moment utc, read in off. Both the
// moment and its wall clock reading must be in [MinTicks, MaxTicks], so the
// difference of two Instants always fits in a Span.
func utcInstant(utc int64, off Offset) (Instant, error) {
	if utc < MinTicks || utc > MaxTicks {
		return Instant{}, rangeErr("utc ticks", utc, MinTicks, MaxTicks)
	}
	wall := utc + int64(off.SecondsAt(utc))*TicksPerSecond
	if wall < MinTicks || wall > MaxTicks {
		return Instant{}, rangeErr("ticks", wall, MinTicks, MaxTicks)
	}
	return Instant{utc: utc, wall: wall, off: off}, nil
}

// Now returns the current Instant, read in off. A nil off means Local.
//
// Now panics if the host clock reports a time outside the representable
// range.
func Now(off Offset) Instant {
	i, err := NowFrom(SystemClock, off)
	if err != nil {
		panic(err)
	}
	return i
}

// NowUTC is Now(UTC).
func NowUTC() Instant {
	return Now(UTC)
}

// NowFrom returns the Instant c reports, read in off. A nil off means Local.
func NowFrom(c Clock, off Offset) (Instant, error) {
	t := c.Now()
	if y := t.Year(); y < minYear || y > maxYear {
		return Instant{}, rangeErr("year", int64(y), minYear, maxYear)
	}
	return utcInstant(utcTicksOf(t), orLocal(off))
}

// Of returns the Instant with the given wall clock reading in off. A nil off
// means Local.
//
// Unlike [time.Date], Of does not normalize its arguments: every field must
// be within its natural range, or an error matching ErrOutOfRange is
// returned.
func Of(year, month, day, hour, minute, second int, off Offset) (Instant, error) {
	ticks, err := TicksOf(year, month, day, hour, minute, second)
	if err != nil {
		return Instant{}, err
	}
	return wallInstant(ticks, orLocal(off))
}

// DateIn returns midnight of the given date in off.
func DateIn(year, month, day int, off Offset) (Instant, error) {
	return Of(year, month, day, 0, 0, 0, off)
}

// FromTicks returns the Instant with the wall clock reading ticks in off. A
// nil off means Local.
func FromTicks(ticks int64, off Offset) (Instant, error) {
	return wallInstant(ticks, orLocal(off))
}

// FromTime converts t, keeping its location.
func FromTime(t time.Time) (Instant, error) {
	if y := t.Year(); y < minYear || y > maxYear {
		return Instant{}, rangeErr("year", int64(y), minYear, maxYear)
	}
	off := UTC
	if loc := t.Location(); loc != time.UTC {
		off = ZoneOffset(loc)
	}
	return utcInstant(utcTicksOf(t), off)
}

// Time converts i to a time.Time in the Location of its Offset.
func (i Instant) Time() time.Time {
	sec := floorDiv(i.utc-unixEpochTicks, TicksPerSecond)
	nsec := modulus(i.utc, TicksPerSecond) * 100
	return time.Unix(sec, nsec).In(Location(i.Offset()))
}

// Ticks returns the wall clock reading of i, in ticks since
// 0001-01-01 00:00:00.
func (i Instant) Ticks() int64 { return i.wall }

// UTCTicks returns the moment of i as ticks since 0001-01-01 00:00:00 UTC.
func (i Instant) UTCTicks() int64 { return i.utc }

// Offset returns the Offset of i.
func (i Instant) Offset() Offset {
	if i.off == nil {
		return UTC
	}
	return i.off
}

// Fields decomposes the wall clock reading of i.
func (i Instant) Fields() Fields {
	f, err := FieldsOf(i.wall)
	if err != nil {
		// i.wall is validated on construction.
		panic(err)
	}
	return f
}

// Date returns the year, month and day of i.
func (i Instant) Date() (year, month, day int) {
	year, month, day, _ = dateOf(i.wall)
	return year, month, day
}

// Clock returns the hour, minute and second of i.
func (i Instant) Clock() (hour, minute, second int) {
	hour, minute, second, _ = clockOf(i.wall)
	return hour, minute, second
}

// Year returns the year of i.
func (i Instant) Year() int {
	year, _, _, _ := dateOf(i.wall)
	return year
}

// Month returns the month of i, in [1, 12].
func (i Instant) Month() int {
	_, month, _, _ := dateOf(i.wall)
	return month
}

// Day returns the day of the month of i.
func (i Instant) Day() int {
	_, _, day, _ := dateOf(i.wall)
	return day
}

// Hour returns the hour of i, in [0, 23].
func (i Instant) Hour() int { return int(i.wall % TicksPerDay / TicksPerHour) }

// Minute returns the minute of i, in [0, 59].
func (i Instant) Minute() int { return int(i.wall % TicksPerHour / TicksPerMinute) }

// Second returns the second of i, in [0, 59].
func (i Instant) Second() int { return int(i.wall % TicksPerMinute / TicksPerSecond) }

// Millisecond returns the millisecond of i, in [0, 999].
func (i Instant) Millisecond() int { return int(i.wall % TicksPerSecond / TicksPerMillisecond) }

// DayOfWeek returns the ISO day of the week of i: 1 is Monday, 7 is Sunday.
func (i Instant) DayOfWeek() int {
	// 0001-01-01 was a Monday.
	if d := (i.wall/TicksPerDay + 1) % 7; d != 0 {
		return int(d)
	}
	return 7
}

// DayOfYear returns the 0-based day of the year of i.
func (i Instant) DayOfYear() int {
	_, _, _, yday := dateOf(i.wall)
	return yday
}

// StartOfDay returns midnight of the day of i, in the same Offset. It fails
// only on 0001-01-01 in an Offset east of UTC, where midnight precedes the
// representable range.
func (i Instant) StartOfDay() (Instant, error) {
	return wallInstant(i.wall-i.wall%TicksPerDay, i.Offset())
}

// Add returns i+s. It fails if the result would be outside the representable
// range.
//
// Add counts elapsed time. If i is in an Offset with daylight saving time,
// Add(Hours(24)) across a transition changes the wall clock hour. Use
// AddMonths to move on the calendar instead.
func (i Instant) Add(s Span) (Instant, error) {
	return utcInstant(i.utc+s.ticks, i.Offset())
}

// AddDays returns i plus n days of 24 hours each.
func (i Instant) AddDays(n int64) (Instant, error) {
	s, err := Days(n)
	if err != nil {
		return Instant{}, err
	}
	return i.Add(s)
}

// AddHours returns i plus n hours.
func (i Instant) AddHours(n int64) (Instant, error) {
	s, err := Hours(n)
	if err != nil {
		return Instant{}, err
	}
	return i.Add(s)
}

// AddMinutes returns i plus n minutes.
func (i Instant) AddMinutes(n int64) (Instant, error) {
	s, err := Minutes(n)
	if err != nil {
		return Instant{}, err
	}
	return i.Add(s)
}

// AddSeconds returns i plus n seconds.
func (i Instant) AddSeconds(n int64) (Instant, error) {
	s, err := Seconds(n)
	if err != nil {
		return Instant{}, err
	}
	return i.Add(s)
}

// AddMonths returns the Instant n calendar months after i, keeping the time
// of day. If the day of the month does not exist in the target month, it is
// clamped to the last day of that month: January 31 plus one month is
// February 28, or February 29 in leap years.
func (i Instant) AddMonths(n int) (Instant, error) {
	const limit = 12 * maxYear
	if n < -limit || n > limit {
		return Instant{}, rangeErr("months", int64(n), -limit, limit)
	}
	year, month, day, _ := dateOf(i.wall)
	year, m := norm(year, month-1+n, 12)
	month = m + 1
	if year < minYear || year > maxYear {
		return Instant{}, rangeErr("year", int64(year), minYear, maxYear)
	}
	if last, _ := DaysInMonth(year, month); day > last {
		day = last
	}
	days, err := daysOf(year, month, day)
	if err != nil {
		return Instant{}, err
	}
	return wallInstant(int64(days)*TicksPerDay+i.wall%TicksPerDay, i.Offset())
}

// AddYears is AddMonths(12*n).
func (i Instant) AddYears(n int) (Instant, error) {
	if n < -maxYear || n > maxYear {
		return Instant{}, rangeErr("years", int64(n), -maxYear, maxYear)
	}
	return i.AddMonths(12 * n)
}

// Compare returns -1, 0 or +1 depending on whether i is before, at the same
// moment as, or after o.
func (i Instant) Compare(o Instant) int {
	switch {
	case i.utc < o.utc:
		return -1
	case i.utc > o.utc:
		return 1
	}
	return 0
}

// Equal reports whether i and o are the same moment, regardless of their
// Offsets. Use == to also compare Offsets.
func (i Instant) Equal(o Instant) bool { return i.utc == o.utc }

// Before reports whether i is before o.
func (i Instant) Before(o Instant) bool { return i.utc < o.utc }

// After reports whether i is after o.
func (i Instant) After(o Instant) bool { return i.utc > o.utc }

// Sub returns the elapsed time from o to i, which is negative if i is before
// o.
func (i Instant) Sub(o Instant) Span {
	return Span{i.utc - o.utc}
}

// WithOffset returns the same moment as i, read in off. The wall clock
// reading shifts by the difference between the two offsets; UTCTicks stays
// the same. A nil off means Local.
//
// It fails if the shifted wall clock reading is not representable, e.g. for
// 0001-01-01 00:00 UTC moved to a negative offset.
func (i Instant) WithOffset(off Offset) (Instant, error) {
	off = orLocal(off)
	shift := int64(OffsetDelta(off, i.Offset(), i.utc)) * TicksPerSecond
	wall := i.wall + shift
	if wall < MinTicks || wall > MaxTicks {
		return Instant{}, rangeErr("ticks", wall, MinTicks, MaxTicks)
	}
	return Instant{utc: i.utc, wall: wall, off: off}, nil
}

// ReinterpretOffset returns the Instant with the same wall clock reading as
// i, but in off. This is a different moment, unless both offsets agree. A
// nil off means Local.
func (i Instant) ReinterpretOffset(off Offset) (Instant, error) {
	return wallInstant(i.wall, orLocal(off))
}

// GoString implements fmt.GoStringer and formats i to be printed in Go source
// code. Sub-second ticks are not included.
func (i Instant) GoString() string {
	f := i.Fields()
	return fmt.Sprintf("calendar.Of(%d, %d, %d, %d, %d, %d, %s)", f.Year, f.Month, f.Day, f.Hour, f.Minute, f.Second, goOffset(i.Offset()))
}

func goOffset(off Offset) string {
	switch o := off.(type) {
	case fixedOffset:
		if o == UTC {
			return "calendar.UTC"
		}
		return fmt.Sprintf("calendar.FixedOffset(%q, %d)", o.name, o.secs)
	case zoneOffset:
		if o == Local {
			return "calendar.Local"
		}
	}
	return fmt.Sprintf("%#v", off)
}
