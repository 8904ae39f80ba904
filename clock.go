// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import "time"

// A Clock reads the current time. Code that needs the current Instant
// should take a Clock, so tests can substitute a fixed one.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the host's wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// FixedClock returns a Clock that always reports i.
func FixedClock(i Instant) Clock {
	t := i.Time()
	return ClockFunc(func() time.Time { return t })
}

// utcTicksOf returns the UTC tick count of t. It avoids t.UnixNano, which
// only covers the years 1678 to 2262.
func utcTicksOf(t time.Time) int64 {
	return t.Unix()*TicksPerSecond + int64(t.Nanosecond()/100) + unixEpochTicks
}
