// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"strings"
	"time"
)

// An Offset describes the relation between UTC and the wall clock of a
// timezone. Offsets may depend on the moment they are evaluated at, to model
// daylight saving time.
//
// Implementations must be safe for concurrent use and comparable with ==.
type Offset interface {
	// Name identifies the offset, e.g. "UTC", "+02:00" or "Europe/Berlin".
	Name() string
	// SecondsAt returns the offset east of UTC, in seconds, in effect at the
	// moment utcTicks (ticks since 0001-01-01 00:00:00 UTC).
	SecondsAt(utcTicks int64) int
}

type fixedOffset struct {
	name string
	secs int
}

func (f fixedOffset) Name() string        { return f.name }
func (f fixedOffset) SecondsAt(int64) int { return f.secs }
func (f fixedOffset) String() string      { return f.name }

// FixedOffset returns an Offset that is always seconds east of UTC. If name
// is empty, the offset is named after its value, e.g. "+05:30".
func FixedOffset(name string, seconds int) Offset {
	if name == "" {
		name = string(appendOffset(nil, seconds, true))
	}
	return fixedOffset{name: name, secs: seconds}
}

// UTC is Coordinated Universal Time.
var UTC Offset = fixedOffset{name: "UTC"}

// Local is the host's local timezone.
var Local Offset = ZoneOffset(time.Local)

type zoneOffset struct {
	loc *time.Location
}

// ZoneOffset adapts a time.Location, resolving its offset from the host
// timezone database. A nil loc is treated as time.UTC.
func ZoneOffset(loc *time.Location) Offset {
	if loc == nil {
		loc = time.UTC
	}
	return zoneOffset{loc}
}

func (z zoneOffset) Name() string   { return z.loc.String() }
func (z zoneOffset) String() string { return z.loc.String() }

func (z zoneOffset) SecondsAt(utcTicks int64) int {
	_, secs := time.Unix(floorDiv(utcTicks-unixEpochTicks, TicksPerSecond), 0).In(z.loc).Zone()
	return secs
}

// Location returns the time.Location an Offset resolves against. Fixed
// offsets are converted with time.FixedZone.
func Location(off Offset) *time.Location {
	switch o := off.(type) {
	case zoneOffset:
		return o.loc
	case fixedOffset:
		if o == UTC {
			return time.UTC
		}
		return time.FixedZone(o.name, o.secs)
	case nil:
		return time.UTC
	}
	return time.FixedZone(off.Name(), off.SecondsAt(unixEpochTicks))
}

// OffsetDelta returns a.SecondsAt(utcTicks) - b.SecondsAt(utcTicks): the
// number of seconds a wall clock in a runs ahead of one in b at that moment.
func OffsetDelta(a, b Offset, utcTicks int64) int {
	return a.SecondsAt(utcTicks) - b.SecondsAt(utcTicks)
}

// utcOf resolves the wall clock reading wall in off to a UTC tick count.
//
// The offset at wall is used as a first guess; if the offset in effect at the
// resulting moment differs, which only happens near a transition, that one
// is used instead. For readings skipped or repeated by a transition, the
// result is one of the candidates, without a guarantee which.
func utcOf(wall int64, off Offset) int64 {
	secs := off.SecondsAt(wall)
	utc := wall - int64(secs)*TicksPerSecond
	if s := off.SecondsAt(utc); s != secs {
		utc = wall - int64(s)*TicksPerSecond
	}
	return utc
}

// ParseOffset parses a numeric UTC offset: "Z", "UTC", "±hh", "±hhmm" or
// "±hh:mm".
func ParseOffset(s string) (Offset, error) {
	perr := func(msg string) error {
		return &ParseError{Pattern: "±hh:mm", Value: strings.Clone(s), Message: msg}
	}
	if s == "Z" || s == "UTC" {
		return UTC, nil
	}
	if len(s) < 3 || (s[0] != '+' && s[0] != '-') {
		return nil, perr("missing sign")
	}
	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	rest := s[1:]
	hh, ok := atoiN(rest[:2], 2)
	if !ok {
		return nil, perr("invalid hours")
	}
	rest = rest[2:]
	rest = strings.TrimPrefix(rest, ":")
	var mm int
	if rest != "" {
		if mm, ok = atoiN(rest, 2); !ok {
			return nil, perr("invalid minutes")
		}
	}
	if hh > 23 {
		return nil, &ParseError{Pattern: "±hh:mm", Value: strings.Clone(s), Err: rangeErr("offset hours", int64(hh), 0, 23)}
	}
	if mm > 59 {
		return nil, &ParseError{Pattern: "±hh:mm", Value: strings.Clone(s), Err: rangeErr("offset minutes", int64(mm), 0, 59)}
	}
	return FixedOffset("", sign*(hh*3600+mm*60)), nil
}

// appendOffset appends secs as ±hh:mm, or ±hhmm without colon. Seconds are
// truncated.
func appendOffset(b []byte, secs int, colon bool) []byte {
	if secs < 0 {
		b = append(b, '-')
		secs = -secs
	} else {
		b = append(b, '+')
	}
	b = appendInt(b, secs/3600, 2)
	if colon {
		b = append(b, ':')
	}
	return appendInt(b, secs/60%60, 2)
}
