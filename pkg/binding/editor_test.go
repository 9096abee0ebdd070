package binding_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formvalue/pkg/binding"
	"github.com/goliatone/go-formvalue/pkg/value"
)

func typeInto(t *testing.T, e *binding.Editor, s string) {
	t.Helper()
	for _, r := range s {
		if !e.Insert(string(r)) {
			t.Fatalf("keystroke %q rejected at %+v", r, e.Buffer())
		}
	}
}

func TestEditor_DecimalRegroupingKeepsCursor(t *testing.T) {
	v, err := value.NewDecimal(value.WithSeparators(',', '.'))
	if err != nil {
		t.Fatalf("new decimal: %v", err)
	}
	e := binding.New(v)
	defer e.Close()

	typeInto(t, e, "1234")
	if diff := cmp.Diff(binding.Buffer{Content: "1.234", Dot: 5, Anchor: 5}, e.Buffer()); diff != "" {
		t.Fatalf("buffer mismatch (-want +got):\n%s", diff)
	}

	e.Home()
	typeInto(t, e, "9")
	if diff := cmp.Diff(binding.Buffer{Content: "91.234", Dot: 1, Anchor: 1}, e.Buffer()); diff != "" {
		t.Fatalf("buffer mismatch (-want +got):\n%s", diff)
	}

	if !e.Backspace() {
		t.Fatalf("backspace rejected")
	}
	if diff := cmp.Diff(binding.Buffer{Content: "1.234", Dot: 0, Anchor: 0}, e.Buffer()); diff != "" {
		t.Fatalf("buffer mismatch (-want +got):\n%s", diff)
	}
	if e.Backspace() {
		t.Fatalf("backspace at start should be rejected")
	}
}

func TestEditor_ReplaceSelection(t *testing.T) {
	v, err := value.ParseDate("12/03/2024")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	e := binding.New(v)
	defer e.Close()

	e.Select(3, 5)
	if !e.Insert("04") {
		t.Fatalf("replacing the month rejected")
	}
	if diff := cmp.Diff(binding.Buffer{Content: "12/04/2024", Dot: 5, Anchor: 5}, e.Buffer()); diff != "" {
		t.Fatalf("buffer mismatch (-want +got):\n%s", diff)
	}
	if v.Month() != 4 {
		t.Fatalf("month %d, want 4", v.Month())
	}
}

func TestEditor_RejectedEditLeavesBuffer(t *testing.T) {
	v, err := value.ParseDate("12/03/2024")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	e := binding.New(v)
	defer e.Close()

	e.Select(3, 5)
	before := e.Buffer()
	if e.Insert("13") {
		t.Fatalf("month 13 accepted")
	}
	if diff := cmp.Diff(before, e.Buffer()); diff != "" {
		t.Fatalf("buffer changed (-want +got):\n%s", diff)
	}

	n, err := value.NewInteger()
	if err != nil {
		t.Fatalf("new integer: %v", err)
	}
	ne := binding.New(n)
	defer ne.Close()
	typeInto(t, ne, "42")
	if ne.Paste("1a") {
		t.Fatalf("paste with a letter accepted")
	}
	if diff := cmp.Diff(binding.Buffer{Content: "42", Dot: 2, Anchor: 2}, ne.Buffer()); diff != "" {
		t.Fatalf("buffer mismatch (-want +got):\n%s", diff)
	}
}

func TestEditor_DeleteForward(t *testing.T) {
	v, err := value.NewText(value.WithCasing(value.CasingUpper))
	if err != nil {
		t.Fatalf("new text: %v", err)
	}
	e := binding.New(v)
	defer e.Close()

	typeInto(t, e, "abc")
	if v.String() != "ABC" {
		t.Fatalf("text %q", v.String())
	}
	if e.Delete() {
		t.Fatalf("delete at end should be rejected")
	}
	e.MoveTo(1)
	if !e.Delete() {
		t.Fatalf("delete rejected")
	}
	if diff := cmp.Diff(binding.Buffer{Content: "AC", Dot: 1, Anchor: 1}, e.Buffer()); diff != "" {
		t.Fatalf("buffer mismatch (-want +got):\n%s", diff)
	}

	e.SelectAll()
	if !e.Backspace() {
		t.Fatalf("clearing the selection rejected")
	}
	if !v.IsClear() || e.Buffer().Dot != 0 {
		t.Fatalf("buffer after clear %+v", e.Buffer())
	}
}

func TestEditor_ExternalChangeMovesCursor(t *testing.T) {
	v, err := value.NewDate()
	if err != nil {
		t.Fatalf("new date: %v", err)
	}
	e := binding.New(v)

	typeInto(t, e, "1/1")
	e.Home()
	if err := v.SetValue("01/01/2000"); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if diff := cmp.Diff(binding.Buffer{Content: "01/01/2000", Dot: 10, Anchor: 10}, e.Buffer()); diff != "" {
		t.Fatalf("buffer mismatch (-want +got):\n%s", diff)
	}

	e.Close()
	e.MoveTo(3)
	v.Clear()
	if e.Buffer().Dot != 3 {
		t.Fatalf("closed editor followed the value")
	}
}
