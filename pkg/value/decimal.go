package value

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-formvalue/pkg/notify"
	"github.com/shopspring/decimal"
)

// Decimal is an arbitrary-precision number with configurable separators and
// digit limits. The fractional digits are kept exactly as typed.
type Decimal struct {
	state
	num    decimal.Decimal
	scale  int
	number bool

	integerDigits  int
	fractionDigits int
	negative       bool
	decimalSep     rune
	groupSep       rune
	pattern        *regexp.Regexp
}

var _ Value = (*Decimal)(nil)

// NewDecimal constructs a zero Decimal. Digits are unbounded and negative
// values allowed unless options say otherwise; separators come from the
// locale.
func NewDecimal(opts ...Option) (*Decimal, error) {
	o := buildOptions(opts)
	v := &Decimal{
		state:          newState(KindDecimal),
		number:         true,
		integerDigits:  -1,
		fractionDigits: -1,
		negative:       true,
		decimalSep:     o.locale.DecimalSeparator,
		groupSep:       o.locale.GroupSeparator,
	}
	if o.integerDigits != nil {
		v.integerDigits = *o.integerDigits
	}
	if o.fractionDigits != nil {
		v.fractionDigits = *o.fractionDigits
	}
	if o.negative != nil {
		v.negative = *o.negative
	}
	if o.decimalSep != nil {
		v.decimalSep = *o.decimalSep
	}
	if o.groupSep != nil {
		v.groupSep = *o.groupSep
	}
	if err := checkSeparators(KindDecimal, v.decimalSep, v.groupSep); err != nil {
		return nil, err
	}
	v.pattern = groupingPattern(v.decimalSep, v.groupSep)
	o.applyFlags(&v.state)
	return v, nil
}

// NewDecimalFrom constructs a Decimal holding d.
func NewDecimalFrom(d decimal.Decimal, opts ...Option) (*Decimal, error) {
	v, err := NewDecimal(opts...)
	if err != nil {
		return nil, err
	}
	if err := v.SetDecimal(d); err != nil {
		return nil, err
	}
	return v, nil
}

// ParseDecimal constructs a Decimal from text using the strict parser.
func ParseDecimal(s string, opts ...Option) (*Decimal, error) {
	v, err := NewDecimal(opts...)
	if err != nil {
		return nil, err
	}
	if err := v.SetValue(s); err != nil {
		return nil, err
	}
	return v, nil
}

// groupingPattern matches numbers whose integer part is either ungrouped or
// grouped in consistent three-digit clusters.
func groupingPattern(decimalSep, groupSep rune) *regexp.Regexp {
	dec := regexp.QuoteMeta(string(decimalSep))
	if groupSep == 0 {
		return regexp.MustCompile(`^-?\d*(?:` + dec + `\d*)?$`)
	}
	grp := regexp.QuoteMeta(string(groupSep))
	return regexp.MustCompile(`^-?(?:\d{1,3}(?:` + grp + `\d{3})+|\d*)(?:` + dec + `\d*)?$`)
}

type decimalParse struct {
	num    decimal.Decimal
	scale  int
	text   string
	number bool
}

func (v *Decimal) parse(s string, mode Mode) (decimalParse, error) {
	if mode == Strict {
		s = strings.TrimSpace(s)
	}
	if s == "" {
		return decimalParse{num: decimal.Zero, number: true}, nil
	}

	negative := strings.HasPrefix(s, "-")
	if negative && !v.negative {
		return decimalParse{}, &RangeError{Kind: KindDecimal, Input: s, Reason: "negative values are not allowed"}
	}
	if mode == Strict && !v.pattern.MatchString(s) {
		return decimalParse{}, &InvalidFormatError{Kind: KindDecimal, Input: s, Reason: "malformed number"}
	}

	body := strings.TrimPrefix(s, "-")
	intPart, fracPart, hasSep := strings.Cut(body, string(v.decimalSep))

	var digits strings.Builder
	for _, r := range intPart {
		switch {
		case isDigit(r):
			digits.WriteRune(r)
		case v.groupSep != 0 && r == v.groupSep:
		default:
			return decimalParse{}, &InvalidFormatError{Kind: KindDecimal, Input: s, Reason: "unexpected character " + quote(string(r))}
		}
	}
	for _, r := range fracPart {
		if !isDigit(r) {
			return decimalParse{}, &InvalidFormatError{Kind: KindDecimal, Input: s, Reason: "unexpected character " + quote(string(r))}
		}
	}

	sign := ""
	if negative {
		sign = "-"
	}

	if digits.Len() == 0 && fracPart == "" {
		if mode == Strict {
			return decimalParse{}, &InvalidFormatError{Kind: KindDecimal, Input: s, Reason: "no digits"}
		}
		// "-", the bare separator or both: zero for now, not yet a number.
		text := sign
		if hasSep {
			text += string(v.decimalSep)
		}
		return decimalParse{num: decimal.Zero, text: text, number: false}, nil
	}

	intDigits := strings.TrimLeft(digits.String(), "0")
	if intDigits == "" {
		intDigits = "0"
	}
	literal := sign + intDigits
	if fracPart != "" {
		literal += "." + fracPart
	}
	num, err := decimal.NewFromString(literal)
	if err != nil {
		return decimalParse{}, &InvalidFormatError{Kind: KindDecimal, Input: s, Reason: err.Error()}
	}
	if err := v.checkPrecision(s, num, len(fracPart)); err != nil {
		return decimalParse{}, err
	}

	text := groupDigits(intDigits, v.groupSep)
	if fracPart != "" || (hasSep && mode == Interactive) {
		text += string(v.decimalSep) + fracPart
	}

	number := true
	if negative && num.IsZero() {
		if mode == Interactive {
			// "-0" and friends are still being typed.
			number = false
		} else {
			sign = ""
		}
	}
	return decimalParse{num: num, scale: len(fracPart), text: sign + text, number: number}, nil
}

func (v *Decimal) checkPrecision(input string, num decimal.Decimal, scale int) error {
	if v.integerDigits >= 0 {
		limit := decimal.New(1, int32(v.integerDigits)).Sub(decimal.New(1, 0))
		if num.Abs().Truncate(0).Cmp(limit) > 0 {
			return &RangeError{Kind: KindDecimal, Input: input, Reason: fmt.Sprintf("more than %d integer digits", v.integerDigits)}
		}
	}
	if v.fractionDigits >= 0 && scale > v.fractionDigits {
		return &RangeError{Kind: KindDecimal, Input: input, Reason: fmt.Sprintf("more than %d fractional digits", v.fractionDigits)}
	}
	return nil
}

func groupDigits(digits string, sep rune) string {
	if sep == 0 || len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteRune(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func (v *Decimal) store(p decimalParse) {
	var extra []notify.Change
	if !p.num.Equal(v.num) {
		extra = append(extra, notify.Change{Property: PropNumber, Old: v.num, New: p.num})
	}
	v.num = p.num
	v.scale = p.scale
	v.number = p.number
	v.commit(p.text, p.number, p.num.IsZero(), extra...)
}

// SetValue parses s strictly. Group separators must form three-digit
// clusters.
func (v *Decimal) SetValue(s string) error {
	p, err := v.parse(s, Strict)
	if err != nil {
		return err
	}
	v.store(p)
	return nil
}

func (v *Decimal) admit(candidate string) bool {
	p, err := v.parse(candidate, Interactive)
	if err != nil {
		return false
	}
	v.store(p)
	return true
}

// TryInsert admits the edit when the result can still become a number; the
// integer part is regrouped on every accepted edit.
func (v *Decimal) TryInsert(offset int, s string) bool {
	candidate, ok := v.insertion(offset, s)
	return ok && v.admit(candidate)
}

func (v *Decimal) TryRemove(offset, length int) bool {
	candidate, ok := v.removal(offset, length)
	return ok && v.admit(candidate)
}

func (v *Decimal) TryReplace(offset, length int, s string) bool {
	candidate, ok := v.replacement(offset, length, s)
	return ok && v.admit(candidate)
}

// Clear resets the number to zero with empty text.
func (v *Decimal) Clear() {
	v.store(decimalParse{num: decimal.Zero, number: true})
}

func (v *Decimal) IsClear() bool {
	return v.num.IsZero()
}

// Decimal returns the current number.
func (v *Decimal) Decimal() decimal.Decimal {
	return v.num
}

// Float64 returns the nearest float64 and whether it is exact.
func (v *Decimal) Float64() (float64, bool) {
	return v.num.Float64()
}

// SetDecimal stores d, keeping its scale.
func (v *Decimal) SetDecimal(d decimal.Decimal) error {
	return v.SetValue(v.render(d))
}

func (v *Decimal) render(d decimal.Decimal) string {
	scale := int32(0)
	if exp := d.Exponent(); exp < 0 {
		scale = -exp
	}
	plain := d.StringFixed(scale)
	sign := ""
	if strings.HasPrefix(plain, "-") {
		sign, plain = "-", plain[1:]
	}
	intPart, fracPart, _ := strings.Cut(plain, ".")
	out := sign + groupDigits(intPart, v.groupSep)
	if fracPart != "" {
		out += string(v.decimalSep) + fracPart
	}
	return out
}

func (v *Decimal) MaxIntegerDigits() int    { return v.integerDigits }
func (v *Decimal) MaxFractionalDigits() int { return v.fractionDigits }
func (v *Decimal) NegativeAllowed() bool    { return v.negative }
func (v *Decimal) DecimalSeparator() rune   { return v.decimalSep }
func (v *Decimal) GroupSeparator() rune     { return v.groupSep }

// SetMaxIntegerDigits changes the integer digit limit. Like every format
// setter it fails unless the value is zero.
func (v *Decimal) SetMaxIntegerDigits(n int) error {
	return v.reformat("maxIntegerDigits", func() error {
		v.integerDigits = n
		return nil
	})
}

func (v *Decimal) SetMaxFractionalDigits(n int) error {
	return v.reformat("maxFractionalDigits", func() error {
		v.fractionDigits = n
		return nil
	})
}

func (v *Decimal) SetNegativeAllowed(allowed bool) error {
	return v.reformat("negativeAllowed", func() error {
		v.negative = allowed
		return nil
	})
}

func (v *Decimal) SetDecimalSeparator(r rune) error {
	return v.reformat("decimalSeparator", func() error {
		if err := checkSeparators(KindDecimal, r, v.groupSep); err != nil {
			return err
		}
		v.decimalSep = r
		return nil
	})
}

// SetGroupSeparator changes the grouping character; zero disables grouping.
func (v *Decimal) SetGroupSeparator(r rune) error {
	return v.reformat("groupSeparator", func() error {
		if err := checkSeparators(KindDecimal, v.decimalSep, r); err != nil {
			return err
		}
		v.groupSep = r
		return nil
	})
}

// SetSeparators swaps both separators at once, which a pair of single
// setters cannot do when the new decimal separator is the old group one.
func (v *Decimal) SetSeparators(decimalSep, groupSep rune) error {
	return v.reformat("separators", func() error {
		if err := checkSeparators(KindDecimal, decimalSep, groupSep); err != nil {
			return err
		}
		v.decimalSep, v.groupSep = decimalSep, groupSep
		return nil
	})
}

// reformat applies a format change while the value is zero. The text is
// reset to "0" (or left empty) so it cannot carry stale separators.
func (v *Decimal) reformat(setting string, apply func() error) error {
	if !v.num.IsZero() {
		return &ConfigurationError{Kind: KindDecimal, Setting: setting, Reason: "format can only change while the value is zero"}
	}
	if err := apply(); err != nil {
		return err
	}
	v.pattern = groupingPattern(v.decimalSep, v.groupSep)
	v.configChanged(setting)
	text := ""
	if v.number && v.String() != "" {
		text = "0"
	}
	v.store(decimalParse{num: decimal.Zero, text: text, number: true})
	return nil
}

// Key widths used when the digit limits are unbounded.
const (
	sortIntegerWidth  = 28
	sortFractionWidth = 10
)

// SortKey renders a fixed-width form: the integer part padded with spaces,
// the fraction padded with zeros. When negatives are allowed the number is
// biased by 10^digits so the key stays non-negative. An unbounded fraction
// is never rounded; digits past sortFractionWidth extend the key, which
// keeps the order. An unbounded integer part wider than sortIntegerWidth
// digits overflows the key and is not ordered.
func (v *Decimal) SortKey() string {
	intWidth := v.integerDigits
	if intWidth < 0 {
		intWidth = sortIntegerWidth
	}
	n := v.num
	if v.negative {
		n = n.Add(decimal.New(1, int32(intWidth)))
		intWidth++
	}
	fracWidth := v.fractionDigits
	if fracWidth < 0 {
		fracWidth = sortFractionWidth
		if _, frac, ok := strings.Cut(n.String(), "."); ok && len(frac) > fracWidth {
			fracWidth = len(frac)
		}
	}
	plain := n.StringFixed(int32(fracWidth))
	intPart, fracPart, _ := strings.Cut(plain, ".")
	key := fmt.Sprintf("%*s", intWidth, intPart)
	if fracWidth > 0 {
		key += "." + fracPart
	}
	return key
}

// SQLLiteral renders the number with a period and no grouping.
func (v *Decimal) SQLLiteral() string {
	return v.num.StringFixed(int32(v.scale))
}

func (v *Decimal) Copy() Value {
	c := *v
	c.state = v.state.clone()
	return &c
}
