package value_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formvalue/pkg/notify"
	"github.com/goliatone/go-formvalue/pkg/testsupport"
	"github.com/goliatone/go-formvalue/pkg/value"
)

// samples holds one strictly valid input per kind for the default locale.
var samples = map[value.Kind]string{
	value.KindInteger:  "42",
	value.KindLong:     "-9000000000",
	value.KindDecimal:  "1,234.5",
	value.KindBoolean:  "true",
	value.KindText:     "hello",
	value.KindDate:     "24/12/2024",
	value.KindClock:    "18:30:00",
	value.KindDateTime: "24/12/2024 18:30:00",
}

func newFactory(t *testing.T) *value.Factory {
	t.Helper()
	f, err := value.NewFactory(value.DefaultLocale())
	if err != nil {
		t.Fatalf("new factory: %v", err)
	}
	return f
}

func TestValue_ClearIsIdempotent(t *testing.T) {
	f := newFactory(t)
	for _, kind := range value.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			v, err := f.New(kind)
			if err != nil {
				t.Fatalf("new %s: %v", kind, err)
			}
			if err := v.SetValue(samples[kind]); err != nil {
				t.Fatalf("set %q: %v", samples[kind], err)
			}
			if v.String() != samples[kind] {
				t.Fatalf("canonical text %q, want %q", v.String(), samples[kind])
			}

			v.Clear()
			if !v.IsClear() || v.String() != "" || !v.Valid() {
				t.Fatalf("after clear: text %q clear %v valid %v", v.String(), v.IsClear(), v.Valid())
			}
			log := testsupport.Watch(v, "")
			v.Clear()
			if len(log.Changes) != 0 {
				t.Fatalf("second clear published %v", log.Properties())
			}
		})
	}
}

func TestValue_RequiredClearIsInvalid(t *testing.T) {
	f := newFactory(t)
	for _, kind := range value.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			v, err := f.New(kind, value.WithRequired(true))
			if err != nil {
				t.Fatalf("new %s: %v", kind, err)
			}
			if v.Valid() {
				t.Fatalf("required empty %s is valid", kind)
			}
			if err := v.SetValue(samples[kind]); err != nil {
				t.Fatalf("set %q: %v", samples[kind], err)
			}
			if !v.Valid() {
				t.Fatalf("required %s holding %q is invalid", kind, v.String())
			}
			v.SetRequired(false)
			v.Clear()
			if !v.Valid() {
				t.Fatalf("optional cleared %s is invalid", kind)
			}
		})
	}
}

func TestValue_CopyIsIndependent(t *testing.T) {
	f := newFactory(t)
	for _, kind := range value.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			v, err := f.New(kind, value.WithKey(true))
			if err != nil {
				t.Fatalf("new %s: %v", kind, err)
			}
			if err := v.SetValue(samples[kind]); err != nil {
				t.Fatalf("set %q: %v", samples[kind], err)
			}
			log := testsupport.Watch(v, "")

			c := v.Copy()
			if c.String() != v.String() || !c.Key() || c.Kind() != kind || c.SortKey() != v.SortKey() {
				t.Fatalf("copy differs: %q key %v", c.String(), c.Key())
			}
			c.Clear()
			if v.String() != samples[kind] {
				t.Fatalf("clearing the copy changed the original to %q", v.String())
			}
			if len(log.Changes) != 0 {
				t.Fatalf("copy shares subscribers: %v", log.Properties())
			}
		})
	}
}

func TestValue_ReadOnlyBlocksEditsOnly(t *testing.T) {
	v, err := value.NewText(value.WithReadOnly(true))
	if err != nil {
		t.Fatalf("new text: %v", err)
	}
	if v.TryInsert(0, "x") || v.TryRemove(0, 0) {
		t.Fatalf("read-only value admitted an edit")
	}
	if err := v.SetValue("set"); err != nil {
		t.Fatalf("strict set on read-only value: %v", err)
	}
	v.SetReadOnly(false)
	if !v.TryRemove(0, 1) || v.String() != "et" {
		t.Fatalf("edit refused after clearing read-only, text %q", v.String())
	}
	if v.TryInsert(3, "x") || v.TryRemove(1, 5) {
		t.Fatalf("out of bounds edit admitted")
	}
	if v.TryRemove(1, math.MaxInt) || v.TryReplace(math.MaxInt, 1, "x") || v.TryReplace(2, math.MaxInt, "") {
		t.Fatalf("overflowing range admitted")
	}
	if v.String() != "et" {
		t.Fatalf("rejected edits changed text to %q", v.String())
	}
}

func TestValue_NotificationOrder(t *testing.T) {
	v, err := value.NewInteger(value.WithRequired(true))
	if err != nil {
		t.Fatalf("new integer: %v", err)
	}
	log := testsupport.Watch(v, "")
	if err := v.SetValue("5"); err != nil {
		t.Fatalf("set value: %v", err)
	}
	v.SetRequired(false)
	v.SetKey(true)
	v.SetReadOnly(true)

	want := []string{
		value.PropValue, value.PropNumber, value.PropValid,
		value.PropRequired,
		value.PropKey,
		value.PropReadOnly,
	}
	if diff := cmp.Diff(want, log.Properties()); diff != "" {
		t.Fatalf("notifications mismatch (-want +got):\n%s", diff)
	}

	log.Stop()
	v.Clear()
	if len(log.Changes) != len(want) {
		t.Fatalf("stopped log still receives changes")
	}
}

func TestValue_HandlerReentry(t *testing.T) {
	v, err := value.NewInteger()
	if err != nil {
		t.Fatalf("new integer: %v", err)
	}
	v.Subscribe(value.PropNumber, func(change notify.Change) {
		if change.New.(int64) > 10 {
			_ = v.SetValue("10")
		}
	})
	if err := v.SetValue("99"); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if v.Int() != 10 {
		t.Fatalf("handler clamp lost, got %d", v.Int())
	}
}

func TestErrors_Is(t *testing.T) {
	var (
		format = error(&value.InvalidFormatError{Kind: value.KindInteger, Input: "x", Reason: "not an integer"})
		rng    = error(&value.RangeError{Kind: value.KindInteger, Input: "11"})
		config = error(&value.ConfigurationError{Kind: value.KindInteger, Setting: "range", Reason: "min > max"})
	)
	if !errors.Is(format, value.ErrInvalidFormat) || errors.Is(format, value.ErrRange) {
		t.Fatalf("invalid format error matching is wrong")
	}
	if !errors.Is(rng, value.ErrRange) || errors.Is(rng, value.ErrConfiguration) {
		t.Fatalf("range error matching is wrong")
	}
	if !errors.Is(config, value.ErrConfiguration) {
		t.Fatalf("configuration error matching is wrong")
	}
	if got := format.Error(); got != `value: invalid integer "x": not an integer` {
		t.Fatalf("message %q", got)
	}
}
