// Package labels derives human labels from record field names.
package labels

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var separators = regexp.MustCompile(`[_\-.\s]+`)

// Func turns a field name into a label.
type Func func(name string) string

// Default splits name on underscores, dashes, dots and camelCase or
// letter/digit boundaries, then upper-cases the first letter of the label.
//
//	birth_date -> Birth date
//	postCode2  -> Post code 2
func Default(name string) string {
	var words []string
	for _, part := range separators.Split(name, -1) {
		words = append(words, splitCamel(part)...)
	}
	if len(words) == 0 {
		return ""
	}
	for i, w := range words {
		if !isAcronym(w) {
			words[i] = strings.ToLower(w)
		}
	}
	label := strings.Join(words, " ")
	r, size := utf8.DecodeRuneInString(label)
	return string(unicode.ToUpper(r)) + label[size:]
}

// WithOverrides returns a Func that answers from overrides first and falls
// back to next.
func WithOverrides(overrides map[string]string, next Func) Func {
	if next == nil {
		next = Default
	}
	return func(name string) string {
		if label, ok := overrides[name]; ok && label != "" {
			return label
		}
		return next(name)
	}
}

func splitCamel(s string) []string {
	var (
		words []string
		start int
	)
	runes := []rune(s)
	for i := 1; i < len(runes); i++ {
		if boundary(runes, i) {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	if start < len(runes) {
		words = append(words, string(runes[start:]))
	}
	return words
}

func boundary(runes []rune, i int) bool {
	prev, cur := runes[i-1], runes[i]
	switch {
	case unicode.IsLower(prev) && unicode.IsUpper(cur):
		return true
	case unicode.IsLetter(prev) && unicode.IsDigit(cur), unicode.IsDigit(prev) && unicode.IsLetter(cur):
		return true
	case unicode.IsUpper(prev) && unicode.IsUpper(cur) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
		// "HTTPServer": the S starts a new word.
		return true
	}
	return false
}

func isAcronym(w string) bool {
	if utf8.RuneCountInString(w) < 2 {
		return false
	}
	for _, r := range w {
		if !unicode.IsUpper(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
