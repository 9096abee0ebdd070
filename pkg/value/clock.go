package value

import (
	"fmt"
	"strings"
	"time"
)

// Clock is a time of day. With WithSeconds off the seconds are optional: a
// time without them is complete and reads zero seconds, and a nonzero second
// is still shown.
type Clock struct {
	state
	clock    clock
	complete bool
	format   clockFormat
}

var _ Value = (*Clock)(nil)

// NewClock constructs an empty Clock laid out per the locale.
func NewClock(opts ...Option) (*Clock, error) {
	o := buildOptions(opts)
	v := &Clock{state: newState(KindClock), format: o.clockFormat()}
	if err := checkSeparator(KindClock, "timeSeparator", v.format.sep); err != nil {
		return nil, err
	}
	o.applyFlags(&v.state)
	return v, nil
}

// NewClockFrom constructs a Clock holding hour, minute and second.
func NewClockFrom(hour, minute, second int, opts ...Option) (*Clock, error) {
	v, err := NewClock(opts...)
	if err != nil {
		return nil, err
	}
	if err := v.SetClock(hour, minute, second); err != nil {
		return nil, err
	}
	return v, nil
}

// ParseClock constructs a Clock from text using the strict parser.
func ParseClock(s string, opts ...Option) (*Clock, error) {
	v, err := NewClock(opts...)
	if err != nil {
		return nil, err
	}
	if err := v.SetValue(s); err != nil {
		return nil, err
	}
	return v, nil
}

func (o options) clockFormat() clockFormat {
	f := clockFormat{sep: o.locale.TimeSeparator, seconds: o.locale.TimeWithSeconds}
	if o.timeSep != nil {
		f.sep = *o.timeSep
	}
	if o.withSeconds != nil {
		f.seconds = *o.withSeconds
	}
	return f
}

func (v *Clock) store(c clock, complete bool, text string) {
	extra := changed(PropComplete, v.complete, complete)
	v.clock = c
	v.complete = complete
	v.commit(text, complete || text == "", text == "", extra...)
}

// SetValue parses a complete time and stores it zero-padded.
func (v *Clock) SetValue(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		v.Clear()
		return nil
	}
	c, _, err := v.format.parse(KindClock, s, Strict)
	if err != nil {
		return err
	}
	v.store(c, true, v.format.render(c))
	return nil
}

func (v *Clock) admit(candidate string) bool {
	c, complete, err := v.format.parse(KindClock, candidate, Interactive)
	if err != nil {
		return false
	}
	v.store(c, complete, candidate)
	return true
}

func (v *Clock) TryInsert(offset int, s string) bool {
	candidate, ok := v.insertion(offset, s)
	return ok && v.admit(candidate)
}

func (v *Clock) TryRemove(offset, length int) bool {
	candidate, ok := v.removal(offset, length)
	return ok && v.admit(candidate)
}

func (v *Clock) TryReplace(offset, length int, s string) bool {
	candidate, ok := v.replacement(offset, length, s)
	return ok && v.admit(candidate)
}

func (v *Clock) Clear() {
	v.store(clock{}, false, "")
}

func (v *Clock) IsClear() bool {
	return v.text == ""
}

func (v *Clock) Complete() bool { return v.complete }
func (v *Clock) Hour() int      { return v.clock.hour }
func (v *Clock) Minute() int    { return v.clock.minute }
func (v *Clock) Second() int    { return v.clock.second }

// SetClock stores the given time of day.
func (v *Clock) SetClock(hour, minute, second int) error {
	c := clock{hour: hour, minute: minute, second: second}
	if !c.valid() {
		return &RangeError{Kind: KindClock, Input: c.sortKey(), Reason: "not a time of day"}
	}
	v.store(c, true, v.format.render(c))
	return nil
}

// Duration returns the time since midnight.
func (v *Clock) Duration() time.Duration {
	c := v.clock
	return time.Duration(c.hour)*time.Hour + time.Duration(c.minute)*time.Minute + time.Duration(c.second)*time.Second
}

// SetDuration stores the time of day d after midnight.
func (v *Clock) SetDuration(d time.Duration) error {
	if d < 0 || d >= 24*time.Hour {
		return &RangeError{Kind: KindClock, Input: d.String(), Reason: "outside one day"}
	}
	d = d.Truncate(time.Second)
	return v.SetClock(int(d/time.Hour), int(d%time.Hour/time.Minute), int(d%time.Minute/time.Second))
}

func (v *Clock) Separator() rune   { return v.format.sep }
func (v *Clock) WithSeconds() bool { return v.format.seconds }

func (v *Clock) SetSeparator(sep rune) error {
	return v.reformat("timeSeparator", clockFormat{sep: sep, seconds: v.format.seconds})
}

// SetWithSeconds toggles whether the seconds are needed for a complete
// time. Zero seconds disappear from the text when they turn optional.
func (v *Clock) SetWithSeconds(seconds bool) error {
	return v.reformat("withSeconds", clockFormat{sep: v.format.sep, seconds: seconds})
}

func (v *Clock) reformat(setting string, f clockFormat) error {
	if err := checkSeparator(KindClock, "timeSeparator", f.sep); err != nil {
		return err
	}
	if !v.complete && v.text != "" {
		return &ConfigurationError{Kind: KindClock, Setting: setting, Reason: "format can only change while the time is complete or empty"}
	}
	if f == v.format {
		return nil
	}
	v.format = f
	v.configChanged(setting)
	if v.complete {
		v.store(v.clock, true, f.render(v.clock))
	}
	return nil
}

// SortKey renders HH:MM:SS.
func (v *Clock) SortKey() string {
	return v.clock.sortKey()
}

// SQLLiteral renders a quoted HH:MM:SS, or NULL when incomplete.
func (v *Clock) SQLLiteral() string {
	if !v.complete {
		return "NULL"
	}
	return fmt.Sprintf("'%s'", v.clock.sortKey())
}

func (v *Clock) Copy() Value {
	c := *v
	c.state = v.state.clone()
	return &c
}
