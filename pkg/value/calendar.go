package value

import (
	"fmt"
	"strconv"
	"strings"
)

// IsLeap reports whether y is a leap year: the Julian rule (every fourth
// year) before 1582, the Gregorian rule from 1582 on.
func IsLeap(y int) bool {
	if y < 1582 {
		return y%4 == 0
	}
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

var monthDays = [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the number of days in month m of year y, or 0 for an
// unknown month.
func DaysInMonth(y, m int) int {
	if m < 1 || m > 12 {
		return 0
	}
	if m == 2 && IsLeap(y) {
		return 29
	}
	return monthDays[m-1]
}

// component describes one numeric part of a date or time.
type component struct {
	name     string
	width    int
	min, max int
}

var (
	yearComponent   = component{name: "year", width: 4, min: 1, max: 9999}
	monthComponent  = component{name: "month", width: 2, min: 1, max: 12}
	dayComponent    = component{name: "day", width: 2, min: 1, max: 31}
	hourComponent   = component{name: "hour", width: 2, min: 0, max: 23}
	minuteComponent = component{name: "minute", width: 2, min: 0, max: 59}
	secondComponent = component{name: "second", width: 2, min: 0, max: 59}
)

// reading is one scanned component. A component is full once it was
// terminated by a separator or reached its width; only full components are
// range checked while typing.
type reading struct {
	n      int
	digits int
	full   bool
}

func (r reading) complete(c component) bool {
	return r.digits > 0 && r.n >= c.min && r.n <= c.max && (c.width != 4 || r.digits == 4)
}

// scanComponents splits s on sep and checks each part against comps.
// Strict mode wants every component present and full; interactive mode
// accepts any prefix that can still be completed.
func scanComponents(kind Kind, s string, sep rune, comps []component, mode Mode) ([]reading, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, string(sep))
	if len(parts) > len(comps) {
		return nil, &InvalidFormatError{Kind: kind, Input: s, Reason: fmt.Sprintf("more than %d components", len(comps))}
	}
	if mode == Strict && len(parts) < len(comps) {
		return nil, &InvalidFormatError{Kind: kind, Input: s, Reason: fmt.Sprintf("expected %d components", len(comps))}
	}

	readings := make([]reading, 0, len(parts))
	for i, part := range parts {
		c := comps[i]
		terminated := i < len(parts)-1
		if part == "" {
			if terminated || mode == Strict {
				return nil, &InvalidFormatError{Kind: kind, Input: s, Reason: "missing " + c.name}
			}
			readings = append(readings, reading{})
			continue
		}
		for _, r := range part {
			if !isDigit(r) {
				return nil, &InvalidFormatError{Kind: kind, Input: s, Reason: "unexpected character " + quote(string(r))}
			}
		}
		if len(part) > c.width {
			return nil, &InvalidFormatError{Kind: kind, Input: s, Reason: fmt.Sprintf("%s has more than %d digits", c.name, c.width)}
		}
		if c.width == 4 && len(part) < 4 && (terminated || mode == Strict) {
			return nil, &InvalidFormatError{Kind: kind, Input: s, Reason: c.name + " must have four digits"}
		}
		n, _ := strconv.Atoi(part)
		full := terminated || mode == Strict || len(part) == c.width
		if full && (n < c.min || n > c.max) {
			return nil, &RangeError{Kind: kind, Input: s, Reason: fmt.Sprintf("%s %d is outside %d..%d", c.name, n, c.min, c.max)}
		}
		readings = append(readings, reading{n: n, digits: len(part), full: full})
	}
	return readings, nil
}

// civil is a calendar date; zero components are unknown.
type civil struct {
	year, month, day int
}

// valid reports whether the date exists in the calendar.
func (c civil) valid() bool {
	return c.year >= yearComponent.min && c.year <= yearComponent.max &&
		c.month >= 1 && c.month <= 12 &&
		c.day >= 1 && c.day <= DaysInMonth(c.year, c.month)
}

// withYear moves the date to year y. February 29 rolls forward to March 1
// when y is not a leap year.
func (c civil) withYear(y int) civil {
	c.year = y
	if c.month == 2 && c.day == 29 && !IsLeap(y) {
		c.month, c.day = 3, 1
	}
	return c
}

func (c civil) sortKey() string {
	return fmt.Sprintf("%04d-%02d-%02d", c.year, c.month, c.day)
}

// dateFormat is the text layout of a date.
type dateFormat struct {
	order DateOrder
	sep   rune
}

func (f dateFormat) components() []component {
	switch f.order {
	case MDY:
		return []component{monthComponent, dayComponent, yearComponent}
	case YMD:
		return []component{yearComponent, monthComponent, dayComponent}
	default:
		return []component{dayComponent, monthComponent, yearComponent}
	}
}

func (f dateFormat) check(kind Kind) error {
	if !f.order.Valid() {
		return &ConfigurationError{Kind: kind, Setting: "order", Reason: "unknown order " + quote(string(f.order))}
	}
	return checkSeparator(kind, "dateSeparator", f.sep)
}

// parse reads a date and reports whether it is complete. The day is checked
// against the month once both are full; February allows 29 until the year is
// known.
func (f dateFormat) parse(kind Kind, s string, mode Mode) (civil, bool, error) {
	comps := f.components()
	readings, err := scanComponents(kind, s, f.sep, comps, mode)
	if err != nil || len(readings) == 0 {
		return civil{}, false, err
	}

	var (
		date                         civil
		year, month, day             reading
		haveYear, haveMonth, haveDay bool
	)
	for i, r := range readings {
		switch comps[i] {
		case yearComponent:
			date.year, year, haveYear = r.n, r, r.digits > 0
		case monthComponent:
			date.month, month, haveMonth = r.n, r, r.digits > 0
		case dayComponent:
			date.day, day, haveDay = r.n, r, r.digits > 0
		}
	}

	if haveDay && haveMonth && day.full && month.full {
		limit := DaysInMonth(2000, date.month)
		if haveYear && year.digits == 4 {
			limit = DaysInMonth(date.year, date.month)
		}
		if date.day > limit {
			return civil{}, false, &RangeError{Kind: kind, Input: s, Reason: fmt.Sprintf("day %d does not exist in month %d", date.day, date.month)}
		}
	}

	complete := len(readings) == 3 &&
		year.complete(yearComponent) && month.complete(monthComponent) && day.complete(dayComponent) &&
		date.valid()
	return date, complete, nil
}

func (f dateFormat) render(c civil) string {
	sep := string(f.sep)
	y, m, d := fmt.Sprintf("%04d", c.year), fmt.Sprintf("%02d", c.month), fmt.Sprintf("%02d", c.day)
	switch f.order {
	case MDY:
		return m + sep + d + sep + y
	case YMD:
		return y + sep + m + sep + d
	default:
		return d + sep + m + sep + y
	}
}

// clock is a time of day.
type clock struct {
	hour, minute, second int
}

func (c clock) valid() bool {
	return c.hour >= 0 && c.hour <= 23 && c.minute >= 0 && c.minute <= 59 && c.second >= 0 && c.second <= 59
}

func (c clock) sortKey() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.hour, c.minute, c.second)
}

// clockFormat is the text layout of a time of day. Without seconds the
// third component is optional: hour and minute make a complete time, and
// seconds that are given are still range checked.
type clockFormat struct {
	sep     rune
	seconds bool
}

func (f clockFormat) components(s string) []component {
	if !f.seconds && strings.Count(s, string(f.sep)) < 2 {
		return []component{hourComponent, minuteComponent}
	}
	return []component{hourComponent, minuteComponent, secondComponent}
}

func (f clockFormat) parse(kind Kind, s string, mode Mode) (clock, bool, error) {
	comps := f.components(s)
	readings, err := scanComponents(kind, s, f.sep, comps, mode)
	if err != nil || len(readings) == 0 {
		return clock{}, false, err
	}

	var c clock
	complete := len(readings) == len(comps)
	for i, r := range readings {
		switch comps[i] {
		case hourComponent:
			c.hour = r.n
		case minuteComponent:
			c.minute = r.n
		case secondComponent:
			c.second = r.n
		}
		complete = complete && r.complete(comps[i])
	}
	return c, complete, nil
}

func (f clockFormat) render(c clock) string {
	sep := string(f.sep)
	out := fmt.Sprintf("%02d%s%02d", c.hour, sep, c.minute)
	if f.seconds || c.second != 0 {
		out += fmt.Sprintf("%s%02d", sep, c.second)
	}
	return out
}
