package openapi_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formvalue/pkg/schema"
	"github.com/goliatone/go-formvalue/pkg/schema/openapi"
	"github.com/goliatone/go-formvalue/pkg/testsupport"
)

func ptr[T any](v T) *T { return &v }

func loadShop(t *testing.T, opts openapi.Options) *openapi.Converter {
	t.Helper()
	raw := testsupport.MustReadFile(t, "testdata/shop.yaml")
	c, err := openapi.Load(testsupport.Context(), raw, opts)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return c
}

func TestComponent_ConvertsScalarProperties(t *testing.T) {
	var logs bytes.Buffer
	c := loadShop(t, openapi.Options{Validate: true, Logger: slog.New(slog.NewTextHandler(&logs, nil))})

	if diff := cmp.Diff([]string{"Code", "Order"}, c.Components()); diff != "" {
		t.Fatalf("components mismatch (-want +got):\n%s", diff)
	}

	def, err := c.Component("Order")
	if err != nil {
		t.Fatalf("component: %v", err)
	}
	want := schema.Definition{
		Name:        "Order",
		Description: "Purchase order",
		Fields: []schema.FieldDef{
			{Name: "id", Kind: "long", Key: true, Required: true, Min: ptr(int64(1))},
			{Name: "placed", Kind: "date", Label: "Placed on", Required: true, Order: "ymd", DateSeparator: "-"},
			{Name: "paid", Kind: "boolean", Default: "false"},
			{Name: "pin", Kind: "text", Secret: true},
			{Name: "quantity", Kind: "integer", Min: ptr(int64(0)), Max: ptr(int64(99))},
			{Name: "status", Kind: "text", Choices: []string{"open", "shipped"}, MaxLength: ptr(10)},
			{Name: "total", Kind: "decimal", Negative: ptr(false), FractionDigits: ptr(2)},
		},
	}
	if diff := cmp.Diff(want, def); diff != "" {
		t.Fatalf("definition mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(logs.String(), "property=tags") {
		t.Fatalf("expected skipped property warning, got:\n%s", logs.String())
	}

	rec := testsupport.MustBuild(t, def)
	if err := rec.SetValues(map[string]string{"id": "10", "placed": "2024-02-29", "total": "19.99"}); err != nil {
		t.Fatalf("set values: %v", err)
	}
	if !rec.DataComplete() {
		t.Fatalf("expected complete order, invalid: %v", rec.Invalid())
	}
	if err := testsupport.MustField(t, rec, "total").SetValue("1.999"); err == nil {
		t.Fatalf("third fraction digit accepted")
	}
}

func TestOperation_UsesRequestBody(t *testing.T) {
	c := loadShop(t, openapi.Options{})
	def, err := c.Operation("createOrder")
	if err != nil {
		t.Fatalf("operation: %v", err)
	}
	if def.Name != "createOrder" || len(def.Fields) != 7 {
		t.Fatalf("unexpected definition %s with %d fields", def.Name, len(def.Fields))
	}

	if _, err := c.Operation("deleteOrder"); !errors.Is(err, openapi.ErrSchemaNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestComponent_Errors(t *testing.T) {
	c := loadShop(t, openapi.Options{})
	if _, err := c.Component("Missing"); !errors.Is(err, openapi.ErrSchemaNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := c.Component("Code"); !errors.Is(err, openapi.ErrNotObject) {
		t.Fatalf("expected not object, got %v", err)
	}
	if _, err := openapi.Load(testsupport.Context(), nil, openapi.Options{}); !errors.Is(err, openapi.ErrEmptyDocument) {
		t.Fatalf("expected empty document error, got %v", err)
	}
}
