package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestParseKeys(t *testing.T) {
	keys, err := parseKeys("a{bs}{{{paste:1,5}{home}é")
	if err != nil {
		t.Fatalf("parse keys: %v", err)
	}
	want := []keystroke{
		{text: "a"},
		{name: "bs"},
		{text: "{"},
		{name: "paste", text: "1,5"},
		{name: "home"},
		{text: "é"},
	}
	if diff := cmp.Diff(want, keys, cmp.AllowUnexported(keystroke{})); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"{bs", "{tab}"} {
		if _, err := parseKeys(bad); err == nil {
			t.Fatalf("parseKeys(%q) should fail", bad)
		}
	}
}

func TestTypeCommand_Decimal(t *testing.T) {
	out, _, err := execute(t, "", "type", "--kind", "decimal", "1234{home}{del}")
	if err != nil {
		t.Fatalf("type: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 7 {
		t.Fatalf("expected header and six steps, got:\n%s", out)
	}
	if diff := cmp.Diff([]string{`"4"`, "accepted", `"1,234"`, "5", "true"}, strings.Fields(lines[4])); diff != "" {
		t.Fatalf("grouping step mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"{del}", "accepted", `"234"`, "0", "true"}, strings.Fields(lines[6])); diff != "" {
		t.Fatalf("delete step mismatch (-want +got):\n%s", diff)
	}
}

func TestTypeCommand_RejectsInvalidMonth(t *testing.T) {
	out, _, err := execute(t, "", "type", "--kind", "date", "--required", "13/13")
	if err != nil {
		t.Fatalf("type: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	last := strings.Fields(lines[len(lines)-1])
	if diff := cmp.Diff([]string{`"3"`, "rejected", `"13/1"`, "4", "false"}, last); diff != "" {
		t.Fatalf("last step mismatch (-want +got):\n%s", diff)
	}
}

const contact = `
name: contact
fields:
  - name: name
    kind: text
    required: true
  - name: age
    kind: integer
    min: 0
    max: 150
  - name: vip
    kind: boolean
`

func TestCheckCommand(t *testing.T) {
	def := writeFile(t, "contact.yaml", contact)

	out, _, err := execute(t, "name: Ada\nage: \"36\"\n", "check", def, "-", "--set", "vip=1")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if out != `{"name":"Ada","age":"36","vip":"true"}`+"\n" {
		t.Fatalf("output %q", out)
	}

	_, logs, err := execute(t, "", "check", def, "--set", "age=200")
	if err == nil {
		t.Fatalf("expected failure")
	}
	if !strings.Contains(logs, "values rejected") {
		t.Fatalf("missing warning in logs:\n%s", logs)
	}

	_, _, err = execute(t, "", "check", def, "--format", "pretty")
	if !errors.Is(err, errIncomplete) {
		t.Fatalf("expected incomplete record, got %v", err)
	}
}

func TestOpenAPICommand(t *testing.T) {
	doc := filepath.Join("..", "..", "pkg", "schema", "openapi", "testdata", "shop.yaml")

	out, _, err := execute(t, "", "openapi", doc)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if out != "Code\nOrder\n" {
		t.Fatalf("components %q", out)
	}

	out, _, err = execute(t, "", "openapi", doc, "Order", "--widgets")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	for _, want := range []string{"name: Order", "kind: long", "widget: toggle", "widget: select"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}
