package value

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// integral is the shared implementation of Integer and Long.
type integral struct {
	state
	bits  int
	width int
	num   int64
	// number is false while the text is a lone minus sign.
	number bool
	min    int64
	max    int64
}

func newIntegral(kind Kind, bits int, o options) (integral, error) {
	lo, hi := int64(math.MinInt64), int64(math.MaxInt64)
	width := 20
	if bits == 32 {
		lo, hi = math.MinInt32, math.MaxInt32
		width = 10
	}
	v := integral{
		state:  newState(kind),
		bits:   bits,
		width:  width,
		number: true,
		min:    lo,
		max:    hi,
	}
	if o.min != nil && o.max != nil {
		if err := v.checkRange(*o.min, *o.max); err != nil {
			return integral{}, err
		}
		v.min, v.max = *o.min, *o.max
	}
	o.applyFlags(&v.state)
	return v, nil
}

func (v *integral) checkRange(min, max int64) error {
	if min > max {
		return &ConfigurationError{Kind: v.kind, Setting: "range", Reason: fmt.Sprintf("min %d is greater than max %d", min, max)}
	}
	if v.bits == 32 && (min < math.MinInt32 || max > math.MaxInt32) {
		return &ConfigurationError{Kind: v.kind, Setting: "range", Reason: "bounds exceed the 32-bit range"}
	}
	return nil
}

// IsClear reports whether the number is zero.
func (v *integral) IsClear() bool {
	return v.num == 0
}

func (v *integral) inRange(n int64) bool {
	return n >= v.min && n <= v.max
}

// parse returns the number, the text to store and whether the text denotes a
// number. Interactive mode admits a lone minus sign.
func (v *integral) parse(s string, mode Mode) (int64, string, bool, error) {
	if mode == Strict {
		s = strings.TrimSpace(s)
	}
	if s == "" {
		return 0, "", true, nil
	}

	if mode == Interactive {
		digits := strings.TrimPrefix(s, "-")
		if digits != s && v.min >= 0 {
			return 0, "", false, &RangeError{Kind: v.kind, Input: s, Reason: "negative values are not allowed"}
		}
		for _, r := range digits {
			if !isDigit(r) {
				return 0, "", false, &InvalidFormatError{Kind: v.kind, Input: s, Reason: "unexpected character " + quote(string(r))}
			}
		}
		if digits == "" {
			return 0, s, false, nil
		}
		if digits[0] == '0' && s != "0" {
			return 0, "", false, &InvalidFormatError{Kind: v.kind, Input: s, Reason: "redundant leading zero"}
		}
	}

	n, err := strconv.ParseInt(s, 10, v.bits)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, "", false, &RangeError{Kind: v.kind, Input: s, Reason: fmt.Sprintf("exceeds the %d-bit range", v.bits)}
		}
		return 0, "", false, &InvalidFormatError{Kind: v.kind, Input: s, Reason: "not an integer"}
	}
	if mode == Strict && !v.inRange(n) {
		return 0, "", false, &RangeError{Kind: v.kind, Input: s, Reason: fmt.Sprintf("must be between %d and %d", v.min, v.max)}
	}
	return n, strconv.FormatInt(n, 10), true, nil
}

func (v *integral) store(n int64, text string, number bool) {
	old := v.num
	v.num = n
	v.number = number
	v.commit(text, number && v.inRange(n), n == 0, changed(PropNumber, old, n)...)
}

// SetValue parses s strictly. An empty string clears the value.
func (v *integral) SetValue(s string) error {
	n, text, number, err := v.parse(s, Strict)
	if err != nil {
		return err
	}
	v.store(n, text, number)
	return nil
}

func (v *integral) setNumber(n int64) error {
	if !v.inRange(n) {
		text := strconv.FormatInt(n, 10)
		return &RangeError{Kind: v.kind, Input: text, Reason: fmt.Sprintf("must be between %d and %d", v.min, v.max)}
	}
	v.store(n, strconv.FormatInt(n, 10), true)
	return nil
}

func (v *integral) admit(candidate string) bool {
	n, text, number, err := v.parse(candidate, Interactive)
	if err != nil {
		return false
	}
	v.store(n, text, number)
	return true
}

func (v *integral) TryInsert(offset int, s string) bool {
	candidate, ok := v.insertion(offset, s)
	return ok && v.admit(candidate)
}

func (v *integral) TryRemove(offset, length int) bool {
	candidate, ok := v.removal(offset, length)
	return ok && v.admit(candidate)
}

// TryReplace swaps length runes at offset for s as one edit, so a selection
// can be overwritten without passing through an inadmissible text.
func (v *integral) TryReplace(offset, length int, s string) bool {
	candidate, ok := v.replacement(offset, length, s)
	return ok && v.admit(candidate)
}

// Clear resets the number to zero with empty text.
func (v *integral) Clear() {
	v.store(0, "", true)
}

func (v *integral) setRange(min, max int64) error {
	if err := v.checkRange(min, max); err != nil {
		return err
	}
	if v.min == min && v.max == max {
		return nil
	}
	v.min, v.max = min, max
	v.configChanged("range")
	v.revalidate(v.number && v.inRange(v.num))
	return nil
}

// SortKey renders the distance from the range minimum, left-padded with
// spaces to the width of the type. A number below the minimum, which only
// interactive typing can leave behind, takes the key of the minimum: keys
// start with a space or a digit, so nothing printable sorts before it.
func (v *integral) SortKey() string {
	offset := uint64(0)
	if v.num >= v.min {
		offset = uint64(v.num) - uint64(v.min)
	}
	return fmt.Sprintf("%*d", v.width, offset)
}

func (v *integral) SQLLiteral() string {
	return strconv.FormatInt(v.num, 10)
}

func (v *integral) clone() integral {
	c := *v
	c.state = v.state.clone()
	return c
}

// Integer is a 32-bit integer value with an inclusive range.
type Integer struct {
	integral
}

var _ Value = (*Integer)(nil)

// NewInteger constructs a clear Integer. The range defaults to the full
// 32-bit range.
func NewInteger(opts ...Option) (*Integer, error) {
	core, err := newIntegral(KindInteger, 32, buildOptions(opts))
	if err != nil {
		return nil, err
	}
	return &Integer{integral: core}, nil
}

// NewIntegerFrom constructs an Integer holding n.
func NewIntegerFrom(n int32, opts ...Option) (*Integer, error) {
	v, err := NewInteger(opts...)
	if err != nil {
		return nil, err
	}
	if err := v.SetInt(n); err != nil {
		return nil, err
	}
	return v, nil
}

// ParseInteger constructs an Integer from text using the strict parser.
func ParseInteger(s string, opts ...Option) (*Integer, error) {
	v, err := NewInteger(opts...)
	if err != nil {
		return nil, err
	}
	if err := v.SetValue(s); err != nil {
		return nil, err
	}
	return v, nil
}

// Int returns the current number.
func (v *Integer) Int() int32 { return int32(v.num) }

// SetInt stores n, failing with a RangeError outside the range.
func (v *Integer) SetInt(n int32) error { return v.setNumber(int64(n)) }

func (v *Integer) Min() int32 { return int32(v.min) }
func (v *Integer) Max() int32 { return int32(v.max) }

// SetRange replaces the bounds and revalidates the current number. It fails
// with a ConfigurationError when min > max.
func (v *Integer) SetRange(min, max int32) error {
	return v.setRange(int64(min), int64(max))
}

func (v *Integer) Copy() Value {
	return &Integer{integral: v.integral.clone()}
}

// Long is a 64-bit integer value with an inclusive range.
type Long struct {
	integral
}

var _ Value = (*Long)(nil)

// NewLong constructs a clear Long. The range defaults to the full 64-bit
// range.
func NewLong(opts ...Option) (*Long, error) {
	core, err := newIntegral(KindLong, 64, buildOptions(opts))
	if err != nil {
		return nil, err
	}
	return &Long{integral: core}, nil
}

// NewLongFrom constructs a Long holding n.
func NewLongFrom(n int64, opts ...Option) (*Long, error) {
	v, err := NewLong(opts...)
	if err != nil {
		return nil, err
	}
	if err := v.SetInt64(n); err != nil {
		return nil, err
	}
	return v, nil
}

// ParseLong constructs a Long from text using the strict parser.
func ParseLong(s string, opts ...Option) (*Long, error) {
	v, err := NewLong(opts...)
	if err != nil {
		return nil, err
	}
	if err := v.SetValue(s); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Long) Int64() int64 { return v.num }

// SetInt64 stores n, failing with a RangeError outside the range.
func (v *Long) SetInt64(n int64) error { return v.setNumber(n) }

func (v *Long) Min() int64 { return v.min }
func (v *Long) Max() int64 { return v.max }

// SetRange replaces the bounds and revalidates the current number.
func (v *Long) SetRange(min, max int64) error {
	return v.setRange(min, max)
}

func (v *Long) Copy() Value {
	return &Long{integral: v.integral.clone()}
}
