package value

import (
	"strings"
	"time"
)

// Date is a calendar date. While typing, the components of a partial date
// are tracked as they are entered; Complete reports whether all three form a
// real calendar date.
type Date struct {
	state
	date     civil
	complete bool
	format   dateFormat
}

var _ Value = (*Date)(nil)

// NewDate constructs an empty Date laid out per the locale.
func NewDate(opts ...Option) (*Date, error) {
	o := buildOptions(opts)
	v := &Date{state: newState(KindDate), format: o.dateFormat()}
	if err := v.format.check(KindDate); err != nil {
		return nil, err
	}
	o.applyFlags(&v.state)
	return v, nil
}

// NewDateFrom constructs a Date holding year, month and day.
func NewDateFrom(year, month, day int, opts ...Option) (*Date, error) {
	v, err := NewDate(opts...)
	if err != nil {
		return nil, err
	}
	if err := v.SetDate(year, month, day); err != nil {
		return nil, err
	}
	return v, nil
}

// ParseDate constructs a Date from text using the strict parser.
func ParseDate(s string, opts ...Option) (*Date, error) {
	v, err := NewDate(opts...)
	if err != nil {
		return nil, err
	}
	if err := v.SetValue(s); err != nil {
		return nil, err
	}
	return v, nil
}

func (o options) dateFormat() dateFormat {
	f := dateFormat{order: o.locale.DateOrder, sep: o.locale.DateSeparator}
	if o.order != nil {
		f.order = *o.order
	}
	if o.dateSep != nil {
		f.sep = *o.dateSep
	}
	return f
}

func (v *Date) store(date civil, complete bool, text string) {
	extra := changed(PropComplete, v.complete, complete)
	v.date = date
	v.complete = complete
	v.commit(text, complete || text == "", text == "", extra...)
}

// SetValue parses a complete date and stores it in canonical form with
// zero-padded components.
func (v *Date) SetValue(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		v.Clear()
		return nil
	}
	date, _, err := v.format.parse(KindDate, s, Strict)
	if err != nil {
		return err
	}
	v.store(date, true, v.format.render(date))
	return nil
}

func (v *Date) admit(candidate string) bool {
	date, complete, err := v.format.parse(KindDate, candidate, Interactive)
	if err != nil {
		return false
	}
	v.store(date, complete, candidate)
	return true
}

// TryInsert admits any prefix that can still become a real date. Components
// are range checked once terminated or at full width.
func (v *Date) TryInsert(offset int, s string) bool {
	candidate, ok := v.insertion(offset, s)
	return ok && v.admit(candidate)
}

func (v *Date) TryRemove(offset, length int) bool {
	candidate, ok := v.removal(offset, length)
	return ok && v.admit(candidate)
}

func (v *Date) TryReplace(offset, length int, s string) bool {
	candidate, ok := v.replacement(offset, length, s)
	return ok && v.admit(candidate)
}

func (v *Date) Clear() {
	v.store(civil{}, false, "")
}

func (v *Date) IsClear() bool {
	return v.text == ""
}

// Complete reports whether the text names a real calendar date.
func (v *Date) Complete() bool {
	return v.complete
}

func (v *Date) Year() int  { return v.date.year }
func (v *Date) Month() int { return v.date.month }
func (v *Date) Day() int   { return v.date.day }

// SetDate stores the given date, failing with a RangeError when it does not
// exist.
func (v *Date) SetDate(year, month, day int) error {
	date := civil{year: year, month: month, day: day}
	if !date.valid() {
		return &RangeError{Kind: KindDate, Input: date.sortKey(), Reason: "not a calendar date"}
	}
	v.store(date, true, v.format.render(date))
	return nil
}

// SetYear changes the year of a complete date. February 29 becomes March 1
// in a common year.
func (v *Date) SetYear(year int) error {
	if !v.complete {
		return errIncomplete(KindDate, v.text)
	}
	if year < yearComponent.min || year > yearComponent.max {
		return &RangeError{Kind: KindDate, Input: v.text, Reason: "year outside 1..9999"}
	}
	next := v.date.withYear(year)
	return v.SetDate(next.year, next.month, next.day)
}

func (v *Date) SetMonth(month int) error {
	if !v.complete {
		return errIncomplete(KindDate, v.text)
	}
	return v.SetDate(v.date.year, month, v.date.day)
}

func (v *Date) SetDay(day int) error {
	if !v.complete {
		return errIncomplete(KindDate, v.text)
	}
	return v.SetDate(v.date.year, v.date.month, day)
}

// Time returns the date at midnight UTC. It reports false for incomplete
// dates.
func (v *Date) Time() (time.Time, bool) {
	if !v.complete {
		return time.Time{}, false
	}
	return civilTime(v.date, clock{})
}

// SetTime stores the calendar date of t.
func (v *Date) SetTime(t time.Time) error {
	y, m, d := t.Date()
	return v.SetDate(y, int(m), d)
}

func (v *Date) Order() DateOrder { return v.format.order }
func (v *Date) Separator() rune  { return v.format.sep }

// SetOrder changes the component order and re-renders a complete date. It
// fails while a partial date is being typed.
func (v *Date) SetOrder(order DateOrder) error {
	return v.reformat("order", dateFormat{order: order, sep: v.format.sep})
}

func (v *Date) SetSeparator(sep rune) error {
	return v.reformat("dateSeparator", dateFormat{order: v.format.order, sep: sep})
}

func (v *Date) reformat(setting string, f dateFormat) error {
	if err := f.check(KindDate); err != nil {
		return err
	}
	if !v.complete && v.text != "" {
		return &ConfigurationError{Kind: KindDate, Setting: setting, Reason: "format can only change while the date is complete or empty"}
	}
	if f == v.format {
		return nil
	}
	v.format = f
	v.configChanged(setting)
	if v.complete {
		v.store(v.date, true, f.render(v.date))
	}
	return nil
}

// SortKey renders YYYY-MM-DD.
func (v *Date) SortKey() string {
	return v.date.sortKey()
}

// SQLLiteral renders a quoted ISO date, or NULL when incomplete.
func (v *Date) SQLLiteral() string {
	if !v.complete {
		return "NULL"
	}
	return "'" + v.date.sortKey() + "'"
}

func (v *Date) Copy() Value {
	c := *v
	c.state = v.state.clone()
	return &c
}

func errIncomplete(kind Kind, text string) error {
	return &InvalidFormatError{Kind: kind, Input: text, Reason: "date is incomplete"}
}

func civilTime(d civil, c clock) (time.Time, bool) {
	t := time.Date(d.year, time.Month(d.month), d.day, c.hour, c.minute, c.second, 0, time.UTC)
	if t.Day() != d.day || int(t.Month()) != d.month {
		return time.Time{}, false
	}
	return t, true
}
