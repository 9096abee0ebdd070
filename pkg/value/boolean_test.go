package value_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formvalue/pkg/testsupport"
	"github.com/goliatone/go-formvalue/pkg/value"
)

func TestBoolean_TypingLiterals(t *testing.T) {
	v, err := value.NewBoolean()
	if err != nil {
		t.Fatalf("new boolean: %v", err)
	}

	testsupport.MustType(t, v, "tru")
	if v.Checked() || v.Valid() {
		t.Fatalf("prefix should be pending: checked %v valid %v", v.Checked(), v.Valid())
	}
	testsupport.MustType(t, v, "e")
	if !v.Checked() || !v.Valid() {
		t.Fatalf("literal should commit: checked %v valid %v", v.Checked(), v.Valid())
	}
	if rejected := testsupport.Type(v, "x"); rejected != "x" {
		t.Fatalf("expected trailing input to be rejected")
	}

	v.Clear()
	if rejected := testsupport.Type(v, "y"); rejected != "y" {
		t.Fatalf("expected non literal to be rejected")
	}
	testsupport.MustType(t, v, "0")
	if v.Checked() || !v.Valid() {
		t.Fatalf("0 should commit false")
	}
}

func TestBoolean_StrictAndRequired(t *testing.T) {
	v, err := value.NewBoolean(value.WithRequired(true))
	if err != nil {
		t.Fatalf("new boolean: %v", err)
	}
	if v.Valid() {
		t.Fatalf("required unchecked boolean should be invalid")
	}
	if err := v.SetValue("yes"); !errors.Is(err, value.ErrInvalidFormat) {
		t.Fatalf("expected invalid format, got %v", err)
	}
	if err := v.SetValue("T"); err != nil {
		t.Fatalf("set T: %v", err)
	}
	if !v.Valid() || v.String() != "true" || v.SQLLiteral() != "TRUE" || v.SortKey() != "1" {
		t.Fatalf("unexpected state %q valid %v", v.String(), v.Valid())
	}
}

func TestBoolean_ToggleNotifications(t *testing.T) {
	v, err := value.NewBooleanFrom(false)
	if err != nil {
		t.Fatalf("new boolean: %v", err)
	}
	log := testsupport.Watch(v, value.PropChecked)
	if !v.Toggle() || !v.Toggle() {
		t.Fatalf("toggle refused")
	}
	v.SetReadOnly(true)
	if v.Toggle() {
		t.Fatalf("read-only boolean toggled")
	}

	want := []any{true, false}
	got := make([]any, 0, len(log.Changes))
	for _, change := range log.Changes {
		got = append(got, change.New)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("checked changes mismatch (-want +got):\n%s", diff)
	}
}
