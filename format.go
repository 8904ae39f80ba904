// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"errors"
	"strconv"
	"strings"

	"gonih.org/calendar/internal/cache"
)

// Patterns for [Instant.Format] and [Parse] are strings with percent
// directives, as for strftime. The recognized directives are
//
//	%Y  year, four digits
//	%y  year, two digits; parsed values NN >= 69 mean 19NN, others 20NN
//	%m  month, 01-12
//	%d  day of the month, 01-31
//	%e  day of the month, space padded
//	%j  day of the year, 001-366
//	%H  hour, 00-23
//	%I  hour, 01-12
//	%p  AM or PM
//	%M  minute, 00-59
//	%S  second, 00-59
//	%f  sub-second ticks, seven digits
//	%a  abbreviated weekday name, Mon-Sun
//	%A  full weekday name
//	%b  abbreviated month name, Jan-Dec
//	%B  full month name
//	%z  UTC offset, +hhmm (parsing also accepts Z and +hh:mm)
//	%Z  name of the Offset (ignored when parsing)
//	%%  a literal %
//
// Any other character, including an unknown directive, stands for itself.
// When parsing, numeric fields may be given with fewer digits than they are
// formatted with, except for %Y, and a space in the pattern matches any
// non-empty run of spaces.

var longDayNames = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

var shortDayNames = []string{
	"Mon",
	"Tue",
	"Wed",
	"Thu",
	"Fri",
	"Sat",
	"Sun",
}

var shortMonthNames = []string{
	"Jan",
	"Feb",
	"Mar",
	"Apr",
	"May",
	"Jun",
	"Jul",
	"Aug",
	"Sep",
	"Oct",
	"Nov",
	"Dec",
}

var longMonthNames = []string{
	"January",
	"February",
	"March",
	"April",
	"May",
	"June",
	"July",
	"August",
	"September",
	"October",
	"November",
	"December",
}

// inst is a single component of a pattern, either a literal string, or a
// formatting operator.
type inst struct {
	op  fmtOp
	lit string
}

// String implements fmt.Stringer, for debugging
func (i inst) String() string {
	if i.op == opLiteral {
		return i.lit
	}
	return i.op.String()
}

// program is a compiled pattern.
type program []inst

// Size implements cache.Sizer.
func (p program) Size() int64 { return int64(len(p)) + 1 }

// fmtOp is a formatting operator.
type fmtOp int

const (
	opLiteral fmtOp = iota

	opLongYear
	opYear
	opZeroMonth
	opZeroDay
	opUnderDay
	opZeroYearDay
	opHour
	opHour12
	opPM
	opMinute
	opSecond
	opFraction
	opWeekDay
	opLongWeekDay
	opMonth
	opLongMonth
	opOffset
	opOffsetName

	opInvalid
)

// directives maps operators to the character following the '%'.
var directives = [...]byte{
	opLongYear:    'Y',
	opYear:        'y',
	opZeroMonth:   'm',
	opZeroDay:     'd',
	opUnderDay:    'e',
	opZeroYearDay: 'j',
	opHour:        'H',
	opHour12:      'I',
	opPM:          'p',
	opMinute:      'M',
	opSecond:      'S',
	opFraction:    'f',
	opWeekDay:     'a',
	opLongWeekDay: 'A',
	opMonth:       'b',
	opLongMonth:   'B',
	opOffset:      'z',
	opOffsetName:  'Z',
}

// String implements fmt.Stringer. Except for opLiteral, it returns the
// directive of the operator.
func (op fmtOp) String() string {
	switch {
	case op == opLiteral:
		return "<literal>"
	case op > opLiteral && op < opInvalid:
		return "%" + string(directives[op])
	}
	panic("invalid fmtOp")
}

// directiveOp returns the operator for the directive character c, or
// opLiteral.
func directiveOp(c byte) fmtOp {
	for op := opLongYear; op < opInvalid; op++ {
		if directives[op] == c {
			return op
		}
	}
	return opLiteral
}

// memoize compiled patterns.
var memo cache.Cache[string, program]

// compilePattern compiles pattern into a set of instructions to parse or
// format according to it.
func compilePattern(pattern string) program {
	var (
		prog program
		lit  strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			prog = append(prog, inst{lit: lit.String()})
			lit.Reset()
		}
	}
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '%' || i+1 == len(pattern) {
			lit.WriteByte(c)
			continue
		}
		i++
		if pattern[i] == '%' {
			lit.WriteByte('%')
			continue
		}
		op := directiveOp(pattern[i])
		if op == opLiteral {
			lit.WriteByte('%')
			lit.WriteByte(pattern[i])
			continue
		}
		flush()
		prog = append(prog, inst{op: op})
	}
	flush()
	return prog
}

// Format returns a textual representation of i formatted according to
// pattern. See the package documentation for the directives.
func (i Instant) Format(pattern string) string {
	const bufSize = 64
	var b []byte
	max := len(pattern) + 10
	if max < bufSize {
		var buf [bufSize]byte
		b = buf[:0]
	} else {
		b = make([]byte, 0, max)
	}
	return string(i.AppendFormat(b, pattern))
}

// AppendFormat is like Format but appends the textual representation to b and
// returns the extended buffer.
func (i Instant) AppendFormat(b []byte, pattern string) []byte {
	f := i.Fields()
	prog := memo.Get(pattern, compilePattern)

	for _, in := range prog {
		switch in.op {
		case opLiteral:
			b = append(b, in.lit...)
		case opLongYear:
			b = appendInt(b, f.Year, 4)
		case opYear:
			b = appendInt(b, f.Year%100, 2)
		case opZeroMonth:
			b = appendInt(b, f.Month, 2)
		case opZeroDay:
			b = appendInt(b, f.Day, 2)
		case opUnderDay:
			if f.Day < 10 {
				b = append(b, ' ')
			}
			b = strconv.AppendInt(b, int64(f.Day), 10)
		case opZeroYearDay:
			b = appendInt(b, f.YearDay+1, 3)
		case opHour:
			b = appendInt(b, f.Hour, 2)
		case opHour12:
			h := f.Hour % 12
			if h == 0 {
				h = 12
			}
			b = appendInt(b, h, 2)
		case opPM:
			if f.Hour >= 12 {
				b = append(b, "PM"...)
			} else {
				b = append(b, "AM"...)
			}
		case opMinute:
			b = appendInt(b, f.Minute, 2)
		case opSecond:
			b = appendInt(b, f.Second, 2)
		case opFraction:
			b = appendInt(b, f.Tick, 7)
		case opWeekDay:
			b = append(b, shortDayNames[i.DayOfWeek()-1]...)
		case opLongWeekDay:
			b = append(b, longDayNames[i.DayOfWeek()-1]...)
		case opMonth:
			b = append(b, shortMonthNames[f.Month-1]...)
		case opLongMonth:
			b = append(b, longMonthNames[f.Month-1]...)
		case opOffset:
			b = appendOffset(b, i.Offset().SecondsAt(i.utc), false)
		case opOffsetName:
			b = append(b, i.Offset().Name()...)
		default:
			panic(errors.New("invalid inst " + in.String()))
		}
	}
	return b
}

// Parse parses value according to pattern and returns the Instant it
// represents. See the package documentation for the directives.
//
// Fields omitted from the pattern default to 0001-01-01 00:00:00. If the
// pattern contains %z, the parsed offset is used; otherwise the wall clock
// reading is interpreted in off, where a nil off means Local. The day of the
// week is checked for syntax but is otherwise ignored.
//
// Parse never returns a partial result. Any mismatch returns a *ParseError;
// if the text matched but described an invalid date, the *ParseError wraps an
// error matching ErrOutOfRange.
func Parse(pattern, value string, off Offset) (Instant, error) {
	p := newParser(value)
	var (
		// kept around for error reporting
		apattern, avalue = pattern, value

		year   = 1
		month  = 1
		day    = 1
		yday   = -1
		hour   int
		minute int
		second int
		tick   int
		pm     = -1 // -1: no %p, 0: AM, 1: PM
		hour12 bool
		zone   Offset
	)

	prog := memo.Get(pattern, compilePattern)

	// Execute the parsing instructions
	for _, in := range prog {
		p.setInst(in)
		switch in.op {
		case opLiteral:
			p.accept(in.lit)
		case opLongYear:
			year = p.atoi(4)
		case opYear:
			year = p.atoi(2)
			if year >= 69 { // Unix time starts Dec 31 1969 in some time zones
				year += 1900
			} else {
				year += 2000
			}
		case opZeroMonth:
			month = p.num(2)
		case opUnderDay:
			p.skipByte(' ')
			fallthrough
		case opZeroDay:
			day = p.num(2)
		case opZeroYearDay:
			yday = p.num(3)
		case opHour:
			hour = p.num(2)
		case opHour12:
			hour = p.num(2)
			hour12 = true
		case opPM:
			pm = p.lookup([]string{"AM", "PM"})
		case opMinute:
			minute = p.num(2)
		case opSecond:
			second = p.num(2)
		case opFraction:
			tick = p.fraction()
		case opWeekDay:
			// ignore weekday, except for parsing
			p.lookup(shortDayNames)
		case opLongWeekDay:
			// ignore weekday, except for parsing
			p.lookup(longDayNames)
		case opMonth:
			month = p.lookup(shortMonthNames) + 1
		case opLongMonth:
			month = p.lookup(longMonthNames) + 1
		case opOffset:
			zone = p.offset()
		case opOffsetName:
			p.word()
		default:
			panic(errors.New("invalid inst " + in.String()))
		}
		if p.hasErr {
			return Instant{}, p.err(apattern, avalue, nil)
		}
	}
	if len(p.value) > 0 {
		return Instant{}, p.errMsg(apattern, avalue, "extra text: "+strconv.Quote(p.value))
	}
	p.finish()

	if hour12 && (hour < 1 || hour > 12) {
		return Instant{}, p.err(apattern, avalue, rangeErr("hour", int64(hour), 1, 12))
	}
	// Without %p, a 12-hour reading is taken as is.
	switch {
	case pm == 1 && hour < 12:
		hour += 12
	case pm == 0 && hour == 12:
		hour = 0
	}

	if yday >= 0 {
		if yday < 1 || yday > DaysInYear(year) {
			return Instant{}, p.err(apattern, avalue, rangeErr("day of year", int64(yday), 1, int64(DaysInYear(year))))
		}
		t := monthTable(year)
		m := 1
		for t[m] < yday {
			m++
		}
		d := yday - t[m-1]
		// If month or day were parsed, they must match.
		if p.sawMonth && month != m {
			return Instant{}, p.errMsg(apattern, avalue, "day-of-year does not match month")
		}
		if p.sawDay && day != d {
			return Instant{}, p.errMsg(apattern, avalue, "day-of-year does not match day")
		}
		month, day = m, d
	}

	ticks, err := TicksOf(year, month, day, hour, minute, second)
	if err != nil {
		return Instant{}, p.err(apattern, avalue, err)
	}
	if zone == nil {
		zone = orLocal(off)
	}
	i, err := wallInstant(ticks+int64(tick), zone)
	if err != nil {
		return Instant{}, p.err(apattern, avalue, err)
	}
	return i, nil
}

// match reports whether s1 and s2 match ignoring case.
// It is assumed s1 and s2 are the same length.
func match(s1, s2 string) bool {
	for i := 0; i < len(s1); i++ {
		c1 := s1[i]
		c2 := s2[i]
		if c1 != c2 {
			// Switch to lower-case; 'a'-'A' is known to be a single bit.
			c1 |= 'a' - 'A'
			c2 |= 'a' - 'A'
			if c1 != c2 || c1 < 'a' || c1 > 'z' {
				return false
			}
		}
	}
	return true
}

func isDigit(s string, i int) bool {
	if len(s) <= i {
		return false
	}
	return '0' <= s[i] && s[i] <= '9'
}

type parser struct {
	inst     inst
	hasErr   bool
	value    string
	valEl    string
	sawMonth bool
	sawDay   bool
}

func newParser(value string) *parser {
	return &parser{
		value: value,
	}
}

// setInst sets the current instruction and input offset for error reporting.
func (p *parser) setInst(i inst) {
	p.inst = i
	p.valEl = p.value
	switch i.op {
	case opZeroMonth, opMonth, opLongMonth:
		p.sawMonth = true
	case opZeroDay, opUnderDay:
		p.sawDay = true
	}
}

// finish signals that parsing is finished and the parser is only being kept
// around for error reporting.
func (p *parser) finish() {
	p.inst = inst{op: opInvalid}
	p.valEl = ""
}

// parseFailed signals that the parse has failed at the current instruction.
func (p *parser) parseFailed() {
	p.hasErr = true
}

// err returns a *ParseError. If cause is nil, it reports that the current
// instruction did not match.
func (p *parser) err(pattern, value string, cause error) error {
	// Cloning here keeps the arguments of Parse from escaping in the happy
	// path, at the cost of an extra allocation in the sad path.
	v := strings.Clone(value)
	if cause != nil {
		return &ParseError{
			Pattern: pattern,
			Value:   v,
			Err:     cause,
		}
	}
	return &ParseError{
		Pattern:     pattern,
		Value:       v,
		PatternElem: strings.Clone(p.inst.String()),
		ValueElem:   strings.Clone(p.valEl),
	}
}

// errMsg returns a *ParseError describing a validation failure.
func (p *parser) errMsg(pattern, value, msg string) error {
	return &ParseError{
		Pattern: pattern,
		Value:   strings.Clone(value),
		Message: msg,
	}
}

// skipByte skips the given byte, if the input starts with it.
func (p *parser) skipByte(b byte) {
	if len(p.value) > 0 && p.value[0] == b {
		p.value = p.value[1:]
	}
}

// trimByte skips a run of the given byte.
func (p *parser) trimByte(b byte) {
	for len(p.value) > 0 && p.value[0] == b {
		p.value = p.value[1:]
	}
}

// accept a literal string, treating runs of space characters as equivalent.
func (p *parser) accept(lit string) {
	for len(lit) > 0 {
		if lit[0] == ' ' {
			if p.value == "" || p.value[0] != ' ' {
				p.parseFailed()
				return
			}
			p.trimByte(' ')
			lit = strings.TrimLeft(lit, " ")
			continue
		}
		if p.value == "" || p.value[0] != lit[0] {
			p.parseFailed()
			return
		}
		lit, p.value = lit[1:], p.value[1:]
	}
}

// atoi accepts the next n bytes of input as a non-negative integer.
func (p *parser) atoi(n int) int {
	if len(p.value) < n {
		p.parseFailed()
		return 0
	}
	v, ok := atoiN(p.value[:n], n)
	if !ok {
		p.parseFailed()
		return 0
	}
	p.value = p.value[n:]
	return v
}

// num parses between one and n digits as a decimal integer.
func (p *parser) num(n int) int {
	var v, i int
	for i = 0; i < n && isDigit(p.value, i); i++ {
		v = v*10 + int(p.value[i]-'0')
	}
	if i == 0 {
		p.parseFailed()
		return 0
	}
	p.value = p.value[i:]
	return v
}

// fraction parses one to seven digits as a fraction of a second, in ticks.
func (p *parser) fraction() int {
	const digits = 7
	var v, i int
	for i = 0; i < digits && isDigit(p.value, i); i++ {
		v = v*10 + int(p.value[i]-'0')
	}
	if i == 0 {
		p.parseFailed()
		return 0
	}
	p.value = p.value[i:]
	for ; i < digits; i++ {
		v *= 10
	}
	return v
}

// offset parses Z, ±hh:mm or ±hhmm.
func (p *parser) offset() Offset {
	n := 1
	if !strings.HasPrefix(p.value, "Z") {
		n = len("+hh")
		if len(p.value) > n && p.value[n] == ':' {
			n++
		}
		if isDigit(p.value, n) {
			n += len("mm")
		}
	}
	if n > len(p.value) {
		p.parseFailed()
		return nil
	}
	off, err := ParseOffset(p.value[:n])
	if err != nil {
		p.parseFailed()
		return nil
	}
	p.value = p.value[n:]
	return off
}

// word skips a non-empty run of bytes other than space.
func (p *parser) word() {
	i := strings.IndexByte(p.value, ' ')
	if i < 0 {
		i = len(p.value)
	}
	if i == 0 {
		p.parseFailed()
		return
	}
	p.value = p.value[i:]
}

// lookup a value from a table and accept a case-insensitive match.
func (p *parser) lookup(table []string) int {
	for i, v := range table {
		if len(p.value) >= len(v) && match(p.value[0:len(v)], v) {
			p.value = p.value[len(v):]
			return i
		}
	}
	p.parseFailed()
	return 0
}
