package schema

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

func markupSanitizer() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		markupPolicy = bluemonday.StrictPolicy()
	})
	return markupPolicy
}

// Clean prepares raw input for the field's parser. Fields with StripMarkup
// lose every HTML tag; the text between tags is kept with entities decoded.
// Other fields get the input back unchanged.
func (f FieldDef) Clean(input string) string {
	if !f.StripMarkup || !strings.ContainsAny(input, "<&") {
		return input
	}
	return html.UnescapeString(markupSanitizer().Sanitize(input))
}

// CleanValues applies Clean to every value whose field is declared in d.
// Names d does not know are passed through for the record to reject.
func (d Definition) CleanValues(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for name, text := range values {
		if f, ok := d.Field(name); ok {
			text = f.Clean(text)
		}
		out[name] = text
	}
	return out
}
