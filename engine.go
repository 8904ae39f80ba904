// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

// The conversion between tick counts and calendar fields follows the
// standard library's absolute-date algorithm, see
// https://cs.opensource.google/go/go/+/refs/tags/go1.20.6:src/time/time.go;l=353
// It is simpler here, as the epoch is 0001-01-01 itself and negative tick
// counts are never decomposed.

// Fields is the calendar decomposition of a tick count.
type Fields struct {
	Year   int
	Month  int // 1-12
	Day    int // 1-31
	Hour   int
	Minute int
	Second int
	// Tick is the sub-second remainder, in [0, TicksPerSecond).
	Tick int
	// YearDay is the 0-based day of the year.
	YearDay int
}

// IsLeapYear reports whether year is a leap year in the proleptic Gregorian
// calendar. Every other part of the package derives leap years from it.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// monthTable returns the cumulative days-to-month table for year.
func monthTable(year int) *[13]int {
	if IsLeapYear(year) {
		return &daysToMonthLeap
	}
	return &daysToMonth
}

// DaysInMonth returns the number of days in the given month (1-12) of year.
func DaysInMonth(year, month int) (int, error) {
	if month < 1 || month > 12 {
		return 0, rangeErr("month", int64(month), 1, 12)
	}
	t := monthTable(year)
	return t[month] - t[month-1], nil
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	return monthTable(year)[12]
}

// TicksOf returns the number of ticks from 0001-01-01 00:00:00 to the given
// date and time. Every field must lie within its natural range; the first one
// that does not is reported in a *RangeError.
func TicksOf(year, month, day, hour, minute, second int) (int64, error) {
	days, err := daysOf(year, month, day)
	if err != nil {
		return 0, err
	}
	clock, err := clockTicks(hour, minute, second)
	if err != nil {
		return 0, err
	}
	return int64(days)*TicksPerDay + clock, nil
}

// Ticks re-encodes f. Tick and YearDay are honoured and ignored,
// respectively.
func (f Fields) Ticks() (int64, error) {
	t, err := TicksOf(f.Year, f.Month, f.Day, f.Hour, f.Minute, f.Second)
	if err != nil {
		return 0, err
	}
	if f.Tick < 0 || int64(f.Tick) >= TicksPerSecond {
		return 0, rangeErr("tick", int64(f.Tick), 0, TicksPerSecond-1)
	}
	return t + int64(f.Tick), nil
}

// daysOf returns the number of days from 0001-01-01 to the given date.
func daysOf(year, month, day int) (int, error) {
	if year < minYear || year > maxYear {
		return 0, rangeErr("year", int64(year), minYear, maxYear)
	}
	if month < 1 || month > 12 {
		return 0, rangeErr("month", int64(month), 1, 12)
	}
	t := monthTable(year)
	if n := t[month] - t[month-1]; day < 1 || day > n {
		return 0, rangeErr("day", int64(day), 1, int64(n))
	}
	y := year - 1
	return y*daysPerYear + y/4 - y/100 + y/400 + t[month-1] + day - 1, nil
}

func clockTicks(hour, minute, second int) (int64, error) {
	switch {
	case hour < 0 || hour > 23:
		return 0, rangeErr("hour", int64(hour), 0, 23)
	case minute < 0 || minute > 59:
		return 0, rangeErr("minute", int64(minute), 0, 59)
	case second < 0 || second > 59:
		return 0, rangeErr("second", int64(second), 0, 59)
	}
	return int64(hour)*TicksPerHour + int64(minute)*TicksPerMinute + int64(second)*TicksPerSecond, nil
}

// FieldsOf decomposes ticks into calendar fields.
func FieldsOf(ticks int64) (Fields, error) {
	if ticks < MinTicks || ticks > MaxTicks {
		return Fields{}, rangeErr("ticks", ticks, MinTicks, MaxTicks)
	}
	var f Fields
	f.Year, f.Month, f.Day, f.YearDay = dateOf(ticks)
	f.Hour, f.Minute, f.Second, f.Tick = clockOf(ticks)
	return f, nil
}

// lastCycleQuotient is the largest valid index of a sub-cycle inside its
// enclosing cycle. The last century of a 400-year block and the last year of
// a 4-year block are one day longer than their siblings, so the final day of
// either divides out to 4 and has to be counted in sub-cycle 3.
const lastCycleQuotient = 3

// clampCycle folds a sub-cycle quotient of 4 back to lastCycleQuotient.
func clampCycle(q int) int {
	if q > lastCycleQuotient {
		return lastCycleQuotient
	}
	return q
}

// dateOf computes year, month, day and 0-based day of year of ticks, which
// must be in [MinTicks, MaxTicks].
func dateOf(ticks int64) (year, month, day, yday int) {
	d := int(ticks / TicksPerDay)

	// Account for 400 year cycles.
	n := d / daysPer400Years
	y := 400 * n
	d -= daysPer400Years * n

	// Cut off 100-year cycles.
	n = clampCycle(d / daysPer100Years)
	y += 100 * n
	d -= daysPer100Years * n

	// Cut off 4-year cycles. The last one is missing its leap day in three
	// out of four centuries, which does not affect the division.
	n = d / daysPer4Years
	y += 4 * n
	d -= daysPer4Years * n

	// Cut off years within a 4-year cycle.
	n = clampCycle(d / daysPerYear)
	y += n
	d -= daysPerYear * n

	year = y + 1
	yday = d

	// yday/32 never exceeds the index of the month containing yday, as no
	// month is longer than 31 days.
	t := monthTable(year)
	m := yday / 32
	for t[m+1] <= yday {
		m++
	}
	return year, m + 1, yday - t[m] + 1, yday
}

// clockOf splits the time of day of non-negative ticks.
func clockOf(ticks int64) (hour, minute, second, tick int) {
	t := ticks % TicksPerDay
	hour = int(t / TicksPerHour)
	minute = int(t % TicksPerHour / TicksPerMinute)
	second = int(t % TicksPerMinute / TicksPerSecond)
	tick = int(t % TicksPerSecond)
	return hour, minute, second, tick
}

// floorDiv returns a/b rounded towards negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// modulus returns a - floorDiv(a, b)*b, which has the sign of b.
func modulus(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}

// norm returns nhi, nlo such that
//
//	hi * base + lo == nhi * base + nlo
//	0 <= nlo < base
func norm(hi, lo, base int) (nhi, nlo int) {
	if lo < 0 {
		n := (-lo-1)/base + 1
		hi -= n
		lo += n * base
	}
	if lo >= base {
		n := lo / base
		hi += n
		lo -= n * base
	}
	return hi, lo
}
