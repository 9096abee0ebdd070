package labels

import "testing"

func TestDefault(t *testing.T) {
	tests := map[string]string{
		"":            "",
		"name":        "Name",
		"birth_date":  "Birth date",
		"first-name":  "First name",
		"postCode2":   "Post code 2",
		"HTTPServer":  "HTTP server",
		"order.total": "Order total",
		"__id":        "Id",
		"straße":      "Straße",
	}
	for in, want := range tests {
		if got := Default(in); got != want {
			t.Fatalf("Default(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWithOverrides(t *testing.T) {
	label := WithOverrides(map[string]string{"dob": "Date of birth", "blank": ""}, nil)
	if got := label("dob"); got != "Date of birth" {
		t.Fatalf("override ignored: %q", got)
	}
	if got := label("blank"); got != "Blank" {
		t.Fatalf("empty override should fall back: %q", got)
	}
	if got := label("zip_code"); got != "Zip code" {
		t.Fatalf("fallback label %q", got)
	}
}
