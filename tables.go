// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

// Tick scales. A tick is 100 nanoseconds.
const (
	TicksPerMillisecond int64 = 10_000
	TicksPerSecond            = 1000 * TicksPerMillisecond
	TicksPerMinute            = 60 * TicksPerSecond
	TicksPerHour              = 60 * TicksPerMinute
	TicksPerDay               = 24 * TicksPerHour
)

// Days in a given period of years. Each longer cycle is an exact number of
// the next shorter one, plus or minus the leap day the Gregorian rule adds or
// removes at its boundary.
const (
	daysPerYear     = 365
	daysPer4Years   = 4*daysPerYear + 1
	daysPer100Years = 25*daysPer4Years - 1
	daysPer400Years = 4*daysPer100Years + 1
)

const (
	minYear = 1
	maxYear = 9999

	// daysToMaxYearEnd is the number of days from 0001-01-01 to 10000-01-01.
	daysToMaxYearEnd = maxYear*daysPerYear + maxYear/4 - maxYear/100 + maxYear/400

	// daysToUnixEpoch is the number of days from 0001-01-01 to 1970-01-01.
	daysToUnixEpoch = 1969*daysPerYear + 1969/4 - 1969/100 + 1969/400

	unixEpochTicks = daysToUnixEpoch * TicksPerDay
)

// Range of representable tick counts.
const (
	// MinTicks is 0001-01-01 00:00:00.
	MinTicks int64 = 0
	// MaxTicks is 9999-12-31 23:59:59.9999999.
	MaxTicks int64 = daysToMaxYearEnd*TicksPerDay - 1
	// MaxSpanTicks is the largest magnitude of a Span: the full representable
	// range of an Instant.
	MaxSpanTicks = MaxTicks
)

// daysToMonth[m] counts the days of a regular year before month m+1 begins.
// Entry 12 is the length of the year.
var daysToMonth = [13]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}

// daysToMonthLeap is daysToMonth for leap years.
var daysToMonthLeap = [13]int{0, 31, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335, 366}
