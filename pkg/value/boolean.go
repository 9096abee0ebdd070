package value

import (
	"strconv"
	"strings"
)

// Boolean is a true/false value. A clear Boolean is false, so a required
// Boolean is valid only when checked.
type Boolean struct {
	state
	checked bool
}

var _ Value = (*Boolean)(nil)

// NewBoolean constructs an unchecked Boolean.
func NewBoolean(opts ...Option) (*Boolean, error) {
	o := buildOptions(opts)
	v := &Boolean{state: newState(KindBoolean)}
	o.applyFlags(&v.state)
	return v, nil
}

// NewBooleanFrom constructs a Boolean holding b.
func NewBooleanFrom(b bool, opts ...Option) (*Boolean, error) {
	v, err := NewBoolean(opts...)
	if err != nil {
		return nil, err
	}
	v.SetChecked(b)
	return v, nil
}

// ParseBoolean constructs a Boolean from text using the strict parser.
func ParseBoolean(s string, opts ...Option) (*Boolean, error) {
	v, err := NewBoolean(opts...)
	if err != nil {
		return nil, err
	}
	if err := v.SetValue(s); err != nil {
		return nil, err
	}
	return v, nil
}

// parse returns the flag, the text to store and whether the text is a
// committed literal.
func (v *Boolean) parse(s string, mode Mode) (bool, string, bool, error) {
	if mode == Strict {
		s = strings.TrimSpace(s)
		if s == "" {
			return false, "", true, nil
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			return false, "", false, &InvalidFormatError{Kind: KindBoolean, Input: s, Reason: "not a boolean"}
		}
		return b, strconv.FormatBool(b), true, nil
	}

	switch s {
	case "":
		return false, "", true, nil
	case "true", "1":
		return true, s, true, nil
	case "false", "0":
		return false, s, true, nil
	}
	if strings.HasPrefix("true", s) || strings.HasPrefix("false", s) {
		return v.checked, s, false, nil
	}
	return false, "", false, &InvalidFormatError{Kind: KindBoolean, Input: s, Reason: "not a boolean"}
}

func (v *Boolean) store(b bool, text string, committed bool) {
	old := v.checked
	v.checked = b
	v.commit(text, committed, !b, changed(PropChecked, old, b)...)
}

// SetValue accepts the literals strconv.ParseBool knows. An empty string
// clears the value.
func (v *Boolean) SetValue(s string) error {
	b, text, committed, err := v.parse(s, Strict)
	if err != nil {
		return err
	}
	v.store(b, text, committed)
	return nil
}

func (v *Boolean) admit(candidate string) bool {
	b, text, committed, err := v.parse(candidate, Interactive)
	if err != nil {
		return false
	}
	v.store(b, text, committed)
	return true
}

// TryInsert admits prefixes of "true" and "false"; the flag changes once a
// literal is complete.
func (v *Boolean) TryInsert(offset int, s string) bool {
	candidate, ok := v.insertion(offset, s)
	return ok && v.admit(candidate)
}

func (v *Boolean) TryRemove(offset, length int) bool {
	candidate, ok := v.removal(offset, length)
	return ok && v.admit(candidate)
}

func (v *Boolean) TryReplace(offset, length int, s string) bool {
	candidate, ok := v.replacement(offset, length, s)
	return ok && v.admit(candidate)
}

func (v *Boolean) Clear() {
	v.store(false, "", true)
}

func (v *Boolean) IsClear() bool {
	return !v.checked
}

func (v *Boolean) Checked() bool {
	return v.checked
}

// SetChecked stores b with its canonical text.
func (v *Boolean) SetChecked(b bool) {
	v.store(b, strconv.FormatBool(b), true)
}

// Toggle flips the flag unless the value is read-only.
func (v *Boolean) Toggle() bool {
	if v.readOnly {
		return false
	}
	v.SetChecked(!v.checked)
	return true
}

func (v *Boolean) SortKey() string {
	if v.checked {
		return "1"
	}
	return "0"
}

func (v *Boolean) SQLLiteral() string {
	if v.checked {
		return "TRUE"
	}
	return "FALSE"
}

func (v *Boolean) Copy() Value {
	c := *v
	c.state = v.state.clone()
	return &c
}
