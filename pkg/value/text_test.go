package value_test

import (
	"errors"
	"testing"

	"golang.org/x/text/language"

	"github.com/goliatone/go-formvalue/pkg/testsupport"
	"github.com/goliatone/go-formvalue/pkg/value"
)

func TestText_LengthAndCasing(t *testing.T) {
	v, err := value.NewText(value.WithMaxLength(3), value.WithCasing(value.CasingUpper))
	if err != nil {
		t.Fatalf("new text: %v", err)
	}
	if rejected := testsupport.Type(v, "abcd"); rejected != "d" {
		t.Fatalf("rejected %q", rejected)
	}
	if v.String() != "ABC" {
		t.Fatalf("text %q", v.String())
	}

	if err := v.SetValue("hello"); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if v.String() != "HEL" {
		t.Fatalf("strict set should truncate, got %q", v.String())
	}

	v.SetMaxLength(2)
	if v.String() != "HE" {
		t.Fatalf("shrinking the bound should truncate, got %q", v.String())
	}
}

func TestText_Capitalize(t *testing.T) {
	v, err := value.NewText(value.WithCasing(value.CasingCapitalize))
	if err != nil {
		t.Fatalf("new text: %v", err)
	}
	testsupport.MustType(t, v, "hi there")
	if v.String() != "Hi there" {
		t.Fatalf("text %q", v.String())
	}
	if n := testsupport.Backspace(v, 20); n != 8 || !v.IsClear() {
		t.Fatalf("backspaced %d, text now %q", n, v.String())
	}
}

func TestText_LowerWithLanguage(t *testing.T) {
	locale := value.DefaultLocale()
	locale.Language = language.Turkish
	v, err := value.NewTextFrom("ISTANBUL", value.WithLocale(locale), value.WithCasing(value.CasingLower))
	if err != nil {
		t.Fatalf("new text: %v", err)
	}
	if v.String() != "ıstanbul" {
		t.Fatalf("text %q", v.String())
	}
}

func TestText_Allowed(t *testing.T) {
	v, err := value.NewText(value.WithAllowed("0123456789"))
	if err != nil {
		t.Fatalf("new text: %v", err)
	}
	if rejected := testsupport.Type(v, "1a2"); rejected != "a" {
		t.Fatalf("rejected %q", rejected)
	}
	if err := v.SetValue("12a"); !errors.Is(err, value.ErrInvalidFormat) {
		t.Fatalf("expected invalid format, got %v", err)
	}
	if v.String() != "12" {
		t.Fatalf("failed set changed text to %q", v.String())
	}
	if err := v.SetAllowed("abc"); !errors.Is(err, value.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if v.Allowed() != "0123456789" {
		t.Fatalf("failed setter changed whitelist to %q", v.Allowed())
	}
}

func TestText_AllowedChecksTypedCharacters(t *testing.T) {
	upperOnly, err := value.NewText(value.WithAllowed("ABC"), value.WithCasing(value.CasingUpper))
	if err != nil {
		t.Fatalf("new text: %v", err)
	}
	if upperOnly.TryInsert(0, "a") {
		t.Fatalf("lower-case a accepted by an upper-case whitelist, text %q", upperOnly.String())
	}
	if err := upperOnly.SetValue("ab"); !errors.Is(err, value.ErrInvalidFormat) {
		t.Fatalf("expected invalid format, got %v", err)
	}
	testsupport.MustType(t, upperOnly, "CAB")

	lowerOnly, err := value.NewText(value.WithAllowed("abc"), value.WithCasing(value.CasingUpper))
	if err != nil {
		t.Fatalf("new text: %v", err)
	}
	if !lowerOnly.TryInsert(0, "a") || lowerOnly.String() != "A" {
		t.Fatalf("typed a rejected, text %q", lowerOnly.String())
	}
	if lowerOnly.TryReplace(0, 1, "B") {
		t.Fatalf("upper-case B accepted by a lower-case whitelist")
	}
	if err := lowerOnly.SetValue("cab"); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if lowerOnly.String() != "CAB" {
		t.Fatalf("text %q", lowerOnly.String())
	}
	if err := lowerOnly.SetAllowed("abcd"); err != nil {
		t.Fatalf("widening the whitelist failed: %v", err)
	}
	if err := lowerOnly.SetAllowed("ab"); !errors.Is(err, value.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestText_SQLLiteral(t *testing.T) {
	v, err := value.NewTextFrom("O'Brien")
	if err != nil {
		t.Fatalf("new text: %v", err)
	}
	if got := v.SQLLiteral(); got != "'O''Brien'" {
		t.Fatalf("sql literal %q", got)
	}
}

func TestParseCasing(t *testing.T) {
	for name, want := range map[string]value.Casing{
		"":           value.CasingNone,
		"none":       value.CasingNone,
		"Upper":      value.CasingUpper,
		"capitalize": value.CasingCapitalize,
	} {
		got, err := value.ParseCasing(name)
		if err != nil || got != want {
			t.Fatalf("ParseCasing(%q) = %q, %v", name, got, err)
		}
	}
	if _, err := value.ParseCasing("title"); !errors.Is(err, value.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
