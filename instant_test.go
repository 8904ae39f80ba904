// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOf(t testing.TB, year, month, day, hour, minute, second int, off Offset) Instant {
	t.Helper()
	i, err := Of(year, month, day, hour, minute, second, off)
	require.NoError(t, err)
	return i
}

// mustInstant returns a function unwrapping the results of an Instant
// operation, failing t on error.
func mustInstant(t testing.TB) func(Instant, error) Instant {
	return func(i Instant, err error) Instant {
		t.Helper()
		require.NoError(t, err)
		return i
	}
}

func loadZone(t testing.TB, name string) Offset {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return ZoneOffset(loc)
}

var plus2 = FixedOffset("", 2*3600)

func TestInstantOf(t *testing.T) {
	i := mustOf(t, 2024, 1, 1, 13, 37, 42, UTC)
	assert.Equal(t, 738885*TicksPerDay+13*TicksPerHour+37*TicksPerMinute+42*TicksPerSecond, i.Ticks())
	assert.Equal(t, i.Ticks(), i.UTCTicks())
	assert.Equal(t, 2024, i.Year())
	assert.Equal(t, 1, i.Month())
	assert.Equal(t, 1, i.Day())
	assert.Equal(t, 13, i.Hour())
	assert.Equal(t, 37, i.Minute())
	assert.Equal(t, 42, i.Second())
	assert.Equal(t, 0, i.Millisecond())
	assert.Equal(t, 0, i.DayOfYear())
	assert.Equal(t, UTC, i.Offset())

	y, m, d := i.Date()
	assert.Equal(t, []int{2024, 1, 1}, []int{y, m, d})
	h, mi, s := i.Clock()
	assert.Equal(t, []int{13, 37, 42}, []int{h, mi, s})

	j := mustOf(t, 2024, 1, 1, 13, 37, 42, plus2)
	assert.Equal(t, i.Ticks(), j.Ticks())
	assert.Equal(t, i.Ticks()-2*TicksPerHour, j.UTCTicks())
}

func TestInstantDefaultOffset(t *testing.T) {
	i := mustOf(t, 2024, 1, 1, 0, 0, 0, nil)
	assert.Equal(t, Local, i.Offset())

	var zero Instant
	assert.Equal(t, UTC, zero.Offset())
	assert.Equal(t, "0001-01-01 00:00:00", zero.String())
	assert.Equal(t, 1, zero.DayOfWeek())
}

func TestInstantOutOfRange(t *testing.T) {
	_, err := Of(10000, 1, 1, 0, 0, 0, UTC)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = Of(0, 12, 31, 0, 0, 0, UTC)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = FromTicks(-1, UTC)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = FromTicks(MaxTicks+1, UTC)
	assert.ErrorIs(t, err, ErrOutOfRange)

	last := mustOf(t, 9999, 12, 31, 23, 59, 59, UTC)
	_, err = last.AddSeconds(1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = last.Add(mustSpan(t)(SpanOf(MaxSpanTicks)))
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = last.AddDays(1 << 40)
	assert.ErrorIs(t, err, ErrOutOfRange)

	first := mustOf(t, 1, 1, 1, 0, 0, 0, UTC)
	_, err = first.AddMinutes(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = first.WithOffset(FixedOffset("", -3600))
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = mustOf(t, 9999, 12, 1, 0, 0, 0, UTC).AddMonths(1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = first.AddYears(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = first.AddMonths(1 << 40)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestDayOfWeek(t *testing.T) {
	tcs := []struct {
		year, month, day, want int
	}{
		{1, 1, 1, 1},
		{2024, 1, 1, 1},
		{2024, 1, 6, 6},
		{2024, 1, 7, 7},
		{2024, 2, 29, 4},
		{2023, 7, 14, 5},
		{1970, 1, 1, 4},
		{9999, 12, 31, 5},
	}
	for _, tc := range tcs {
		i := mustOf(t, tc.year, tc.month, tc.day, 23, 59, 59, UTC)
		assert.Equal(t, tc.want, i.DayOfWeek(), "%04d-%02d-%02d", tc.year, tc.month, tc.day)
		want := time.Date(tc.year, time.Month(tc.month), tc.day, 0, 0, 0, 0, time.UTC).Weekday()
		if want == time.Sunday {
			want = 7
		}
		assert.Equal(t, int(want), i.DayOfWeek())
	}
}

func TestAddMonths(t *testing.T) {
	tcs := []struct {
		from   [3]int
		months int
		want   [3]int
	}{
		{[3]int{2023, 1, 31}, 1, [3]int{2023, 2, 28}},
		{[3]int{2024, 1, 31}, 1, [3]int{2024, 2, 29}},
		{[3]int{2024, 3, 31}, -1, [3]int{2024, 2, 29}},
		{[3]int{2024, 5, 31}, 1, [3]int{2024, 6, 30}},
		{[3]int{2024, 1, 15}, -1, [3]int{2023, 12, 15}},
		{[3]int{2024, 1, 15}, -13, [3]int{2022, 12, 15}},
		{[3]int{2024, 12, 15}, 1, [3]int{2025, 1, 15}},
		{[3]int{2024, 12, 15}, 0, [3]int{2024, 12, 15}},
		{[3]int{2024, 2, 29}, 12, [3]int{2025, 2, 28}},
		{[3]int{2024, 2, 29}, 48, [3]int{2028, 2, 29}},
		{[3]int{1, 1, 1}, 12*9999 - 1, [3]int{9999, 12, 1}},
	}
	for _, tc := range tcs {
		from := mustOf(t, tc.from[0], tc.from[1], tc.from[2], 8, 15, 0, plus2)
		got, err := from.AddMonths(tc.months)
		require.NoError(t, err, "%v.AddMonths(%d)", tc.from, tc.months)
		y, m, d := got.Date()
		assert.Equal(t, tc.want, [3]int{y, m, d}, "%v.AddMonths(%d)", tc.from, tc.months)
		h, mi, s := got.Clock()
		assert.Equal(t, [3]int{8, 15, 0}, [3]int{h, mi, s}, "time of day is kept")
		assert.Equal(t, plus2, got.Offset())
		// The receiver is never modified.
		assert.Equal(t, tc.from[2], from.Day())
	}
}

func TestAddYears(t *testing.T) {
	leap := mustOf(t, 2024, 2, 29, 0, 0, 0, UTC)
	got, err := leap.AddYears(1)
	require.NoError(t, err)
	assert.Equal(t, "2025-02-28", got.DateString())

	got, err = leap.AddYears(-4)
	require.NoError(t, err)
	assert.Equal(t, "2020-02-29", got.DateString())

	want, err := leap.AddMonths(-36)
	require.NoError(t, err)
	got, err = leap.AddYears(-3)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSpanArithmeticIsNotCalendarAware(t *testing.T) {
	jan31 := mustOf(t, 2023, 1, 31, 0, 0, 0, UTC)
	got, err := jan31.AddDays(30)
	require.NoError(t, err)
	assert.Equal(t, "2023-03-02", got.DateString())

	got, err = jan31.AddHours(-25)
	require.NoError(t, err)
	assert.Equal(t, "2023-01-29 23:00:00", got.String())

	assert.Equal(t, int64(-25), got.Sub(jan31).TotalHours())
}

func TestCompareAcrossOffsets(t *testing.T) {
	a := mustOf(t, 2024, 6, 1, 12, 0, 0, UTC)
	b := mustInstant(t)(a.WithOffset(plus2))

	assert.Equal(t, 14, b.Hour())
	assert.Equal(t, a.UTCTicks(), b.UTCTicks())
	assert.Equal(t, a.Ticks()+2*TicksPerHour, b.Ticks())
	assert.True(t, a.Equal(b))
	assert.Equal(t, 0, a.Compare(b))
	assert.Equal(t, Span{}, a.Sub(b))
	assert.NotEqual(t, a, b, "== also compares offsets")

	c := mustOf(t, 2024, 6, 1, 13, 0, 0, plus2)
	assert.True(t, c.Before(a))
	assert.True(t, a.After(c))
	assert.Equal(t, -1, c.Compare(a))
	assert.Equal(t, 1, a.Compare(c))
	assert.Equal(t, int64(60), a.Sub(c).TotalMinutes())
	assert.Equal(t, int64(-60), c.Sub(a).TotalMinutes())
}

func TestReinterpretOffset(t *testing.T) {
	a := mustOf(t, 2024, 6, 1, 12, 0, 0, UTC)
	r := mustInstant(t)(a.ReinterpretOffset(plus2))

	assert.Equal(t, a.Ticks(), r.Ticks(), "wall clock reading is kept")
	assert.Equal(t, "2024-06-01 12:00:00", r.String())
	assert.False(t, a.Equal(r))
	assert.Equal(t, int64(2), a.Sub(r).TotalHours())

	w := mustInstant(t)(a.WithOffset(plus2))
	assert.False(t, w.Equal(r), "WithOffset and ReinterpretOffset differ")
}

func TestWithOffsetRoundTrip(t *testing.T) {
	berlin := loadZone(t, "Europe/Berlin")
	newYork := loadZone(t, "America/New_York")
	kolkata := FixedOffset("IST", 5*3600+30*60)

	// Moments around the spring and autumn transitions of both zones.
	moments := []time.Time{
		time.Date(2024, 3, 10, 6, 59, 59, 0, time.UTC),
		time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 59, 59, 0, time.UTC),
		time.Date(2024, 3, 31, 1, 0, 0, 0, time.UTC),
		time.Date(2024, 10, 27, 0, 30, 0, 0, time.UTC),
		time.Date(2024, 10, 27, 1, 30, 0, 0, time.UTC),
		time.Date(2024, 11, 3, 5, 30, 0, 0, time.UTC),
		time.Date(2024, 11, 3, 6, 30, 0, 12345600, time.UTC),
	}
	for _, m := range moments {
		c := ClockFunc(func() time.Time { return m })
		for _, pair := range [][2]Offset{{berlin, newYork}, {newYork, berlin}, {berlin, kolkata}, {UTC, berlin}} {
			a, b := pair[0], pair[1]
			now, err := NowFrom(c, a)
			require.NoError(t, err)
			there := mustInstant(t)(now.WithOffset(b))
			back := mustInstant(t)(there.WithOffset(a))

			assert.Equal(t, now.Ticks(), back.Ticks(), "%v: %s -> %s -> %s", m, a.Name(), b.Name(), a.Name())
			assert.True(t, now.Equal(there))
			assert.Equal(t, Span{}, now.Sub(there))

			want := m.In(Location(b))
			assert.Equal(t, want.Hour(), there.Hour(), "%v in %s", m, b.Name())
			assert.Equal(t, want.Day(), there.Day(), "%v in %s", m, b.Name())
		}
	}
}

func TestDaylightSaving(t *testing.T) {
	berlin := loadZone(t, "Europe/Berlin")

	// Elapsed time crosses the transition.
	before := mustOf(t, 2024, 3, 30, 12, 0, 0, berlin)
	after, err := before.AddHours(24)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-31 13:00:00", after.String())
	assert.Equal(t, "+0200", after.Format("%z"))

	// Calendar arithmetic keeps the wall clock.
	next, err := before.AddMonths(1)
	require.NoError(t, err)
	assert.Equal(t, "2024-04-30 12:00:00", next.String())

	// A skipped reading moves past the transition, as with time.Date.
	gap := mustOf(t, 2024, 3, 31, 2, 30, 0, berlin)
	assert.Equal(t, "2024-03-31 03:30:00", gap.String())
	assert.Equal(t, time.Date(2024, 3, 31, 2, 30, 0, 0, Location(berlin)).Unix(), gap.Time().Unix())
}

func TestNowFrom(t *testing.T) {
	want := mustOf(t, 2024, 5, 17, 9, 30, 0, plus2)
	got, err := NowFrom(FixedClock(want), plus2)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	utc, err := NowFrom(FixedClock(want), UTC)
	require.NoError(t, err)
	assert.Equal(t, 7, utc.Hour())
	assert.True(t, utc.Equal(want))

	_, err = NowFrom(ClockFunc(func() time.Time { return time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC) }), UTC)
	assert.ErrorIs(t, err, ErrOutOfRange)

	// The system clock is somewhere between these.
	now := NowUTC()
	assert.True(t, now.Year() >= 2024 && now.Year() < 9999)
}

func TestTimeConversion(t *testing.T) {
	tm := time.Date(2023, 10, 25, 17, 4, 5, 123456700, time.FixedZone("X", -7*3600))
	i, err := FromTime(tm)
	require.NoError(t, err)
	assert.Equal(t, "2023-10-25 17:04:05.1234567", i.Format("%Y-%m-%d %H:%M:%S.%f"))
	assert.Equal(t, "-0700", i.Format("%z"))
	assert.True(t, tm.Equal(i.Time()))

	u, err := FromTime(tm.UTC())
	require.NoError(t, err)
	assert.Equal(t, UTC, u.Offset())
	assert.True(t, u.Equal(i))

	_, err = FromTime(time.Date(0, 12, 31, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrOutOfRange)

	first := mustOf(t, 1, 1, 1, 0, 0, 0, UTC)
	assert.True(t, time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC).Equal(first.Time()))
}

func TestStartOfDay(t *testing.T) {
	i := mustOf(t, 2024, 7, 4, 18, 30, 15, plus2)
	d := mustInstant(t)(i.StartOfDay())
	assert.Equal(t, "2024-07-04 00:00:00", d.String())
	assert.Equal(t, plus2, d.Offset())
	assert.Equal(t, int64(18), i.Sub(d).TotalHours())

	// Midnight of the first day east of UTC precedes 0001-01-01 UTC.
	_, err := mustOf(t, 1, 1, 1, 18, 0, 0, plus2).StartOfDay()
	assert.ErrorIs(t, err, ErrOutOfRange)
	first := mustOf(t, 1, 1, 1, 18, 0, 0, UTC)
	assert.Equal(t, int64(0), mustInstant(t)(first.StartOfDay()).UTCTicks())
}

func TestSubAtRangeEdges(t *testing.T) {
	east := FixedOffset("", 14*3600)
	west := FixedOffset("", -12*3600)

	// The wall clock readings are in range, the moments are not.
	_, err := Of(1, 1, 1, 0, 0, 0, east)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = Of(9999, 12, 31, 23, 59, 59, west)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = mustOf(t, 1, 1, 1, 0, 0, 0, UTC).ReinterpretOffset(east)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = FromTicks(MaxTicks, west)
	assert.ErrorIs(t, err, ErrOutOfRange)

	earliest := mustOf(t, 1, 1, 1, 14, 0, 0, east)
	latest := mustInstant(t)(FromTicks(MaxTicks-12*TicksPerHour, west))
	assert.Equal(t, MinTicks, earliest.UTCTicks())
	assert.Equal(t, MaxTicks, latest.UTCTicks())
	_, err = latest.Add(mustSpan(t)(SpanOf(1)))
	assert.ErrorIs(t, err, ErrOutOfRange)

	for _, s := range []Span{latest.Sub(earliest), earliest.Sub(latest)} {
		assert.LessOrEqual(t, s.Abs().Ticks(), MaxSpanTicks)
		got, err := s.Add(Span{})
		if assert.NoError(t, err) {
			assert.Equal(t, s, got)
		}
		back, err := mustInstant(t)(FromTicks(MinTicks, UTC)).Add(s.Abs())
		if assert.NoError(t, err) {
			assert.True(t, back.Equal(latest))
		}
	}
	assert.Equal(t, MaxSpanTicks, latest.Sub(earliest).Ticks())
}

func TestGoString(t *testing.T) {
	assert.Equal(t, "calendar.Of(2024, 1, 2, 3, 4, 5, calendar.UTC)", mustOf(t, 2024, 1, 2, 3, 4, 5, UTC).GoString())
	assert.Equal(t, `calendar.Of(2024, 1, 2, 3, 4, 5, calendar.FixedOffset("+02:00", 7200))`, mustOf(t, 2024, 1, 2, 3, 4, 5, plus2).GoString())
}
