package value

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Casing is the case mapping applied to Text values.
type Casing string

const (
	CasingNone       Casing = ""
	CasingLower      Casing = "lower"
	CasingUpper      Casing = "upper"
	CasingCapitalize Casing = "capitalize"
)

// ParseCasing maps a configuration name to a Casing. "none" and "" both mean
// no mapping.
func ParseCasing(name string) (Casing, error) {
	switch c := Casing(strings.ToLower(strings.TrimSpace(name))); c {
	case CasingNone, CasingLower, CasingUpper, CasingCapitalize:
		return c, nil
	case "none":
		return CasingNone, nil
	default:
		return CasingNone, &ConfigurationError{Kind: KindText, Setting: "casing", Reason: "unknown casing " + quote(name)}
	}
}

// Text is a free-form string with an optional length bound, case mapping and
// character whitelist. The whitelist applies to the characters as typed; the
// length bound applies after case mapping.
type Text struct {
	state
	maxLength int
	casing    Casing
	allowed   string
	lang      language.Tag
}

var _ Value = (*Text)(nil)

// NewText constructs an empty Text. Length is unbounded unless WithMaxLength
// says otherwise.
func NewText(opts ...Option) (*Text, error) {
	o := buildOptions(opts)
	v := &Text{
		state:     newState(KindText),
		maxLength: -1,
		casing:    o.casing,
		allowed:   o.allowed,
		lang:      o.locale.Language,
	}
	if o.maxLength != nil {
		v.maxLength = *o.maxLength
	}
	if _, err := ParseCasing(string(v.casing)); err != nil {
		return nil, err
	}
	o.applyFlags(&v.state)
	return v, nil
}

// NewTextFrom constructs a Text holding s, truncated and case mapped.
func NewTextFrom(s string, opts ...Option) (*Text, error) {
	v, err := NewText(opts...)
	if err != nil {
		return nil, err
	}
	if err := v.SetValue(s); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Text) apply(s string) string {
	switch v.casing {
	case CasingLower:
		return cases.Lower(v.lang).String(s)
	case CasingUpper:
		return cases.Upper(v.lang).String(s)
	case CasingCapitalize:
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError {
			return s
		}
		return cases.Upper(v.lang).String(string(r)) + s[size:]
	}
	return s
}

// disallowed returns the first character of s outside the whitelist.
func (v *Text) disallowed(s string) (rune, bool) {
	if v.allowed == "" {
		return 0, false
	}
	for _, r := range s {
		if !strings.ContainsRune(v.allowed, r) {
			return r, true
		}
	}
	return 0, false
}

// storedDisallowed is disallowed for text that was already case mapped: a
// stored character passes when it, or a case variant of it, is whitelisted.
func (v *Text) storedDisallowed(s string) (rune, bool) {
	if v.allowed == "" {
		return 0, false
	}
	for _, r := range s {
		if strings.ContainsRune(v.allowed, r) {
			continue
		}
		ok := false
		if v.casing != CasingNone {
			for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
				if strings.ContainsRune(v.allowed, f) {
					ok = true
					break
				}
			}
		}
		if !ok {
			return r, true
		}
	}
	return 0, false
}

func (v *Text) truncate(s string) string {
	if v.maxLength < 0 || utf8.RuneCountInString(s) <= v.maxLength {
		return s
	}
	return string([]rune(s)[:v.maxLength])
}

func (v *Text) store(s string) {
	v.commit(s, true, s == "")
}

// SetValue truncates s to the maximum length after case mapping. A character
// of s outside the whitelist fails with an InvalidFormatError.
func (v *Text) SetValue(s string) error {
	if r, bad := v.disallowed(s); bad {
		return &InvalidFormatError{Kind: KindText, Input: s, Reason: "character " + quote(string(r)) + " is not allowed"}
	}
	v.store(v.truncate(v.apply(s)))
	return nil
}

// admit stores the case mapped candidate unless it overflows the length.
// The whitelist is checked by the callers against the inserted text only.
func (v *Text) admit(candidate string) bool {
	mapped := v.apply(candidate)
	if v.maxLength >= 0 && utf8.RuneCountInString(mapped) > v.maxLength {
		return false
	}
	v.store(mapped)
	return true
}

// TryInsert rejects edits that bring in a character outside the whitelist or
// overflow the length once case mapped. Accepted text is case mapped.
func (v *Text) TryInsert(offset int, s string) bool {
	if _, bad := v.disallowed(s); bad {
		return false
	}
	candidate, ok := v.insertion(offset, s)
	return ok && v.admit(candidate)
}

func (v *Text) TryRemove(offset, length int) bool {
	candidate, ok := v.removal(offset, length)
	return ok && v.admit(candidate)
}

func (v *Text) TryReplace(offset, length int, s string) bool {
	if _, bad := v.disallowed(s); bad {
		return false
	}
	candidate, ok := v.replacement(offset, length, s)
	return ok && v.admit(candidate)
}

func (v *Text) Clear() {
	v.store("")
}

func (v *Text) IsClear() bool {
	return v.text == ""
}

func (v *Text) MaxLength() int  { return v.maxLength }
func (v *Text) Casing() Casing  { return v.casing }
func (v *Text) Allowed() string { return v.allowed }

// SetMaxLength changes the bound and truncates the current text to fit.
func (v *Text) SetMaxLength(n int) {
	if n < 0 {
		n = -1
	}
	if v.maxLength == n {
		return
	}
	v.maxLength = n
	v.configChanged("maxLength")
	v.store(v.truncate(v.text))
}

// SetCasing changes the case mapping and reapplies it to the current text.
func (v *Text) SetCasing(c Casing) error {
	c, err := ParseCasing(string(c))
	if err != nil {
		return err
	}
	if v.casing == c {
		return nil
	}
	v.casing = c
	v.configChanged("casing")
	v.store(v.truncate(v.apply(v.text)))
	return nil
}

// SetAllowed replaces the whitelist. It fails with a ConfigurationError when
// the current text already holds a character outside the new set.
func (v *Text) SetAllowed(chars string) error {
	prev := v.allowed
	v.allowed = chars
	if r, bad := v.storedDisallowed(v.text); bad {
		v.allowed = prev
		return &ConfigurationError{Kind: KindText, Setting: "allowed", Reason: "current text holds " + quote(string(r))}
	}
	if prev != chars {
		v.configChanged("allowed")
	}
	return nil
}

// SortKey is the text itself.
func (v *Text) SortKey() string {
	return v.text
}

// SQLLiteral quotes the text, doubling embedded single quotes.
func (v *Text) SQLLiteral() string {
	return "'" + strings.ReplaceAll(v.text, "'", "''") + "'"
}

func (v *Text) Copy() Value {
	c := *v
	c.state = v.state.clone()
	return &c
}
