package value

import (
	"strings"
	"time"
)

// DateTime is a date followed by a time of day. The date must be complete
// before the separator is typed. With TimeOptional an absent or empty time
// part means midnight.
type DateTime struct {
	state
	date         civil
	clock        clock
	complete     bool
	hasTime      bool
	dateFormat   dateFormat
	clockFormat  clockFormat
	sep          rune
	timeOptional bool
}

var _ Value = (*DateTime)(nil)

// NewDateTime constructs an empty DateTime laid out per the locale.
func NewDateTime(opts ...Option) (*DateTime, error) {
	o := buildOptions(opts)
	v := &DateTime{
		state:        newState(KindDateTime),
		dateFormat:   o.dateFormat(),
		clockFormat:  o.clockFormat(),
		sep:          o.locale.DateTimeSeparator,
		timeOptional: o.timeOptional,
	}
	if o.dateTimeSep != nil {
		v.sep = *o.dateTimeSep
	}
	if err := v.checkFormat(v.dateFormat, v.clockFormat, v.sep); err != nil {
		return nil, err
	}
	o.applyFlags(&v.state)
	return v, nil
}

// NewDateTimeFrom constructs a DateTime holding t.
func NewDateTimeFrom(t time.Time, opts ...Option) (*DateTime, error) {
	v, err := NewDateTime(opts...)
	if err != nil {
		return nil, err
	}
	if err := v.SetTime(t); err != nil {
		return nil, err
	}
	return v, nil
}

// ParseDateTime constructs a DateTime from text using the strict parser.
func ParseDateTime(s string, opts ...Option) (*DateTime, error) {
	v, err := NewDateTime(opts...)
	if err != nil {
		return nil, err
	}
	if err := v.SetValue(s); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *DateTime) checkFormat(df dateFormat, cf clockFormat, sep rune) error {
	if err := df.check(KindDateTime); err != nil {
		return err
	}
	if err := checkSeparator(KindDateTime, "timeSeparator", cf.sep); err != nil {
		return err
	}
	if sep == df.sep || sep == cf.sep {
		return &ConfigurationError{Kind: KindDateTime, Setting: "dateTimeSeparator", Reason: "must differ from the date and time separators"}
	}
	return checkSeparator(KindDateTime, "dateTimeSeparator", sep)
}

type dateTimeParse struct {
	date     civil
	clock    clock
	complete bool
	hasTime  bool
}

func (v *DateTime) parse(s string, mode Mode) (dateTimeParse, error) {
	datePart, timePart, hasSep := strings.Cut(s, string(v.sep))
	date, dateComplete, err := v.dateFormat.parse(KindDateTime, datePart, mode)
	if err != nil {
		return dateTimeParse{}, err
	}
	if hasSep && !dateComplete {
		return dateTimeParse{}, &InvalidFormatError{Kind: KindDateTime, Input: s, Reason: "date is incomplete"}
	}

	p := dateTimeParse{date: date}
	if timePart == "" {
		if mode == Strict && !v.timeOptional {
			return dateTimeParse{}, &InvalidFormatError{Kind: KindDateTime, Input: s, Reason: "time is required"}
		}
		p.complete = dateComplete && v.timeOptional
		return p, nil
	}

	c, clockComplete, err := v.clockFormat.parse(KindDateTime, timePart, mode)
	if err != nil {
		return dateTimeParse{}, err
	}
	p.clock = c
	p.hasTime = true
	p.complete = dateComplete && clockComplete
	return p, nil
}

func (v *DateTime) render(p dateTimeParse) string {
	out := v.dateFormat.render(p.date)
	if p.hasTime || !v.timeOptional {
		out += string(v.sep) + v.clockFormat.render(p.clock)
	}
	return out
}

func (v *DateTime) store(p dateTimeParse, text string) {
	extra := changed(PropComplete, v.complete, p.complete)
	v.date, v.clock = p.date, p.clock
	v.complete, v.hasTime = p.complete, p.hasTime
	v.commit(text, p.complete || text == "", text == "", extra...)
}

// SetValue parses a complete date and time and stores it in canonical form.
func (v *DateTime) SetValue(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		v.Clear()
		return nil
	}
	p, err := v.parse(s, Strict)
	if err != nil {
		return err
	}
	v.store(p, v.render(p))
	return nil
}

func (v *DateTime) admit(candidate string) bool {
	p, err := v.parse(candidate, Interactive)
	if err != nil {
		return false
	}
	v.store(p, candidate)
	return true
}

func (v *DateTime) TryInsert(offset int, s string) bool {
	candidate, ok := v.insertion(offset, s)
	return ok && v.admit(candidate)
}

func (v *DateTime) TryRemove(offset, length int) bool {
	candidate, ok := v.removal(offset, length)
	return ok && v.admit(candidate)
}

func (v *DateTime) TryReplace(offset, length int, s string) bool {
	candidate, ok := v.replacement(offset, length, s)
	return ok && v.admit(candidate)
}

func (v *DateTime) Clear() {
	v.store(dateTimeParse{}, "")
}

func (v *DateTime) IsClear() bool {
	return v.text == ""
}

func (v *DateTime) Complete() bool { return v.complete }

func (v *DateTime) Year() int   { return v.date.year }
func (v *DateTime) Month() int  { return v.date.month }
func (v *DateTime) Day() int    { return v.date.day }
func (v *DateTime) Hour() int   { return v.clock.hour }
func (v *DateTime) Minute() int { return v.clock.minute }
func (v *DateTime) Second() int { return v.clock.second }

// SetDate replaces the date and keeps the time of day.
func (v *DateTime) SetDate(year, month, day int) error {
	date := civil{year: year, month: month, day: day}
	if !date.valid() {
		return &RangeError{Kind: KindDateTime, Input: date.sortKey(), Reason: "not a calendar date"}
	}
	p := dateTimeParse{date: date, clock: v.clock, complete: true, hasTime: v.hasTime}
	v.store(p, v.render(p))
	return nil
}

// SetClock replaces the time of day of a complete value.
func (v *DateTime) SetClock(hour, minute, second int) error {
	if !v.complete {
		return errIncomplete(KindDateTime, v.text)
	}
	c := clock{hour: hour, minute: minute, second: second}
	if !c.valid() {
		return &RangeError{Kind: KindDateTime, Input: c.sortKey(), Reason: "not a time of day"}
	}
	p := dateTimeParse{date: v.date, clock: c, complete: true, hasTime: true}
	v.store(p, v.render(p))
	return nil
}

// SetYear changes the year of a complete value. February 29 becomes March 1
// in a common year.
func (v *DateTime) SetYear(year int) error {
	if !v.complete {
		return errIncomplete(KindDateTime, v.text)
	}
	if year < yearComponent.min || year > yearComponent.max {
		return &RangeError{Kind: KindDateTime, Input: v.text, Reason: "year outside 1..9999"}
	}
	next := v.date.withYear(year)
	return v.SetDate(next.year, next.month, next.day)
}

func (v *DateTime) SetMonth(month int) error {
	if !v.complete {
		return errIncomplete(KindDateTime, v.text)
	}
	return v.SetDate(v.date.year, month, v.date.day)
}

func (v *DateTime) SetDay(day int) error {
	if !v.complete {
		return errIncomplete(KindDateTime, v.text)
	}
	return v.SetDate(v.date.year, v.date.month, day)
}

// Time returns the value as a UTC time.
func (v *DateTime) Time() (time.Time, bool) {
	if !v.complete {
		return time.Time{}, false
	}
	return civilTime(v.date, v.clock)
}

// SetTime stores t truncated to the second.
func (v *DateTime) SetTime(t time.Time) error {
	y, mo, d := t.Date()
	date := civil{year: y, month: int(mo), day: d}
	if !date.valid() {
		return &RangeError{Kind: KindDateTime, Input: t.String(), Reason: "year outside 1..9999"}
	}
	c := clock{hour: t.Hour(), minute: t.Minute(), second: t.Second()}
	p := dateTimeParse{date: date, clock: c, complete: true, hasTime: true}
	v.store(p, v.render(p))
	return nil
}

func (v *DateTime) Order() DateOrder        { return v.dateFormat.order }
func (v *DateTime) DateSeparator() rune     { return v.dateFormat.sep }
func (v *DateTime) TimeSeparator() rune     { return v.clockFormat.sep }
func (v *DateTime) WithSeconds() bool       { return v.clockFormat.seconds }
func (v *DateTime) DateTimeSeparator() rune { return v.sep }
func (v *DateTime) TimeOptional() bool      { return v.timeOptional }

func (v *DateTime) SetOrder(order DateOrder) error {
	return v.reformat("order", dateFormat{order: order, sep: v.dateFormat.sep}, v.clockFormat, v.sep)
}

func (v *DateTime) SetDateSeparator(sep rune) error {
	return v.reformat("dateSeparator", dateFormat{order: v.dateFormat.order, sep: sep}, v.clockFormat, v.sep)
}

func (v *DateTime) SetTimeSeparator(sep rune) error {
	return v.reformat("timeSeparator", v.dateFormat, clockFormat{sep: sep, seconds: v.clockFormat.seconds}, v.sep)
}

func (v *DateTime) SetWithSeconds(seconds bool) error {
	return v.reformat("withSeconds", v.dateFormat, clockFormat{sep: v.clockFormat.sep, seconds: seconds}, v.sep)
}

func (v *DateTime) SetDateTimeSeparator(sep rune) error {
	return v.reformat("dateTimeSeparator", v.dateFormat, v.clockFormat, sep)
}

// SetTimeOptional toggles whether the time part may be left out. A value
// without a time becomes incomplete when the time turns mandatory.
func (v *DateTime) SetTimeOptional(optional bool) {
	if v.timeOptional == optional {
		return
	}
	v.timeOptional = optional
	v.configChanged("timeOptional")
	if v.text == "" {
		return
	}
	p, err := v.parse(v.text, Interactive)
	if err != nil {
		return
	}
	v.store(p, v.text)
}

func (v *DateTime) reformat(setting string, df dateFormat, cf clockFormat, sep rune) error {
	if err := v.checkFormat(df, cf, sep); err != nil {
		return err
	}
	if !v.complete && v.text != "" {
		return &ConfigurationError{Kind: KindDateTime, Setting: setting, Reason: "format can only change while the value is complete or empty"}
	}
	if df == v.dateFormat && cf == v.clockFormat && sep == v.sep {
		return nil
	}
	v.dateFormat, v.clockFormat, v.sep = df, cf, sep
	v.configChanged(setting)
	if v.complete {
		p := dateTimeParse{date: v.date, clock: v.clock, complete: true, hasTime: v.hasTime}
		v.store(p, v.render(p))
	}
	return nil
}

// SortKey renders YYYY-MM-DD HH:MM:SS.
func (v *DateTime) SortKey() string {
	return v.date.sortKey() + " " + v.clock.sortKey()
}

// SQLLiteral renders a quoted timestamp, or NULL when incomplete.
func (v *DateTime) SQLLiteral() string {
	if !v.complete {
		return "NULL"
	}
	return "'" + v.SortKey() + "'"
}

func (v *DateTime) Copy() Value {
	c := *v
	c.state = v.state.clone()
	return &c
}
