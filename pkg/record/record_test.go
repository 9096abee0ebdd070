package record_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formvalue/pkg/record"
	"github.com/goliatone/go-formvalue/pkg/testsupport"
	"github.com/goliatone/go-formvalue/pkg/value"
)

func newPerson(t *testing.T, opts ...record.Option) *record.Record {
	t.Helper()

	id, err := value.NewInteger(value.WithKey(true), value.WithRequired(true), value.WithRange(1, 9999))
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	name, err := value.NewText(value.WithRequired(true), value.WithMaxLength(20))
	if err != nil {
		t.Fatalf("new name: %v", err)
	}
	born, err := value.NewDate()
	if err != nil {
		t.Fatalf("new born: %v", err)
	}

	r := record.New(opts...)
	for _, f := range []struct {
		name  string
		value value.Value
	}{
		{"id", id},
		{"name", name},
		{"born", born},
	} {
		if err := r.Add(f.name, f.value, record.WithLabel(strings.ToUpper(f.name))); err != nil {
			t.Fatalf("add %s: %v", f.name, err)
		}
	}
	return r
}

func TestRecord_CompletenessFollowsFields(t *testing.T) {
	r := newPerson(t)
	if r.DataComplete() {
		t.Fatalf("record with empty required fields is complete")
	}
	log := testsupport.Watch(r, record.PropDataComplete)

	id, _ := r.Field("id")
	name, _ := r.Field("name")
	born, _ := r.Field("born")

	if err := id.SetValue("7"); err != nil {
		t.Fatalf("set id: %v", err)
	}
	if r.DataComplete() {
		t.Fatalf("name still missing")
	}
	testsupport.MustType(t, name, "Ada")
	if !r.DataComplete() {
		t.Fatalf("expected complete record, invalid: %v", r.Invalid())
	}

	testsupport.MustType(t, born, "1/1")
	if r.DataComplete() {
		t.Fatalf("partial date should make the record incomplete")
	}
	if diff := cmp.Diff([]string{"born"}, r.Invalid()); diff != "" {
		t.Fatalf("invalid fields mismatch (-want +got):\n%s", diff)
	}
	born.Clear()

	want := []any{true, false, true}
	got := make([]any, 0, len(log.Changes))
	for _, change := range log.Changes {
		got = append(got, change.New)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("dataComplete changes mismatch (-want +got):\n%s", diff)
	}
}

func TestRecord_AddRemove(t *testing.T) {
	r := newPerson(t)
	extra, err := value.NewBoolean()
	if err != nil {
		t.Fatalf("new boolean: %v", err)
	}
	if err := r.Add("name", extra); !errors.Is(err, record.ErrDuplicateField) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if err := r.Add(" ", extra); !errors.Is(err, record.ErrEmptyName) {
		t.Fatalf("expected empty name error, got %v", err)
	}
	if err := r.Add("active", nil); !errors.Is(err, record.ErrNilValue) {
		t.Fatalf("expected nil value error, got %v", err)
	}

	if diff := cmp.Diff([]string{"id", "name", "born"}, r.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	f, ok := r.FieldAt(1)
	if !ok || f.Name != "name" || f.Label != "NAME" {
		t.Fatalf("unexpected field at 1: %+v", f)
	}
	if _, ok := r.FieldAt(3); ok {
		t.Fatalf("field at 3 should not exist")
	}

	name, _ := r.Field("name")
	if !r.Remove("name") || r.Len() != 2 {
		t.Fatalf("remove failed")
	}
	if r.Remove("name") {
		t.Fatalf("second remove should report false")
	}

	// A removed field no longer drives completeness.
	id, _ := r.Field("id")
	if err := id.SetValue("1"); err != nil {
		t.Fatalf("set id: %v", err)
	}
	if !r.DataComplete() {
		t.Fatalf("record without name should be complete")
	}
	name.Clear()
	if err := name.SetValue(""); err != nil {
		t.Fatalf("set name: %v", err)
	}
	if !r.DataComplete() {
		t.Fatalf("detached field changed completeness")
	}
}

func TestRecord_ClearKeyAndNonKey(t *testing.T) {
	r := newPerson(t)
	if err := r.SetValues(map[string]string{"id": "12", "name": "Grace", "born": "09/12/1906"}); err != nil {
		t.Fatalf("set values: %v", err)
	}
	if r.KeyString() != "        11" {
		t.Fatalf("key string %q", r.KeyString())
	}

	r.ClearNonKey()
	want := map[string]string{"id": "12", "name": "", "born": ""}
	if diff := cmp.Diff(want, r.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	r.ClearKey()
	if id, _ := r.Field("id"); id.String() != "" {
		t.Fatalf("key field not cleared")
	}

	if err := r.SetValues(map[string]string{"name": "Grace"}); err != nil {
		t.Fatalf("set values: %v", err)
	}
	r.Clear()
	for name, text := range r.Values() {
		if text != "" {
			t.Fatalf("field %s not cleared: %q", name, text)
		}
	}
}

func TestRecord_SetValuesAggregatesErrors(t *testing.T) {
	r := newPerson(t)
	err := r.SetValues(map[string]string{
		"id":    "0",
		"name":  "Linus",
		"born":  "31/02/1969",
		"email": "x@example.com",
	})
	if err == nil {
		t.Fatalf("expected errors")
	}
	errs := multierr.Errors(err)
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), err)
	}
	if !errors.Is(errs[0], value.ErrRange) || !errors.Is(errs[1], value.ErrRange) || !errors.Is(errs[2], record.ErrUnknownField) {
		t.Fatalf("unexpected errors: %v", err)
	}
	if name, _ := r.Field("name"); name.String() != "Linus" {
		t.Fatalf("valid field not applied")
	}
}

func TestRecord_CopyAndMarshal(t *testing.T) {
	r := newPerson(t, record.WithName("person"))
	if err := r.SetValues(map[string]string{"id": "3", "name": "Ken"}); err != nil {
		t.Fatalf("set values: %v", err)
	}

	c := r.Copy()
	name, _ := c.Field("name")
	name.Clear()
	if orig, _ := r.Field("name"); orig.String() != "Ken" {
		t.Fatalf("copy shares values")
	}
	if c.Name() != "person" || c.DataComplete() {
		t.Fatalf("copy state: name %q complete %v", c.Name(), c.DataComplete())
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal json: %v", err)
	}
	if string(data) != `{"id":"3","name":"Ken","born":""}` {
		t.Fatalf("json %s", data)
	}

	out, err := yaml.Marshal(r)
	if err != nil {
		t.Fatalf("marshal yaml: %v", err)
	}
	if string(out) != "id: \"3\"\nname: Ken\nborn: \"\"\n" {
		t.Fatalf("yaml %q", out)
	}
}

func TestRecord_LogsCompleteness(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	flag, err := value.NewBoolean(value.WithRequired(true))
	if err != nil {
		t.Fatalf("new boolean: %v", err)
	}
	r := record.New(record.WithName("consent"), record.WithLogger(logger))
	if err := r.Add("agree", flag); err != nil {
		t.Fatalf("add: %v", err)
	}
	flag.SetChecked(true)

	logs := buf.String()
	if strings.Count(logs, "record completeness changed") != 2 {
		t.Fatalf("expected two transitions, got:\n%s", logs)
	}
	if !strings.Contains(logs, "record=consent") || !strings.Contains(logs, "field=agree") {
		t.Fatalf("missing attributes:\n%s", logs)
	}
}
