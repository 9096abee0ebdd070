// Package value implements typed, validating form values with two edit paths:
// a strict setter that either commits a fully valid value or fails, and an
// interactive path that admits keystroke-sized edits as long as the text can
// still become valid.
//
// Every concrete type (Integer, Long, Decimal, Boolean, Text, Date, Clock,
// DateTime) satisfies Value. Values are confined to a single goroutine; all
// mutations, including change notification, complete before returning.
package value

import "github.com/goliatone/go-formvalue/pkg/notify"

// Kind identifies the concrete value type.
type Kind string

const (
	KindInteger  Kind = "integer"
	KindLong     Kind = "long"
	KindDecimal  Kind = "decimal"
	KindBoolean  Kind = "boolean"
	KindText     Kind = "text"
	KindDate     Kind = "date"
	KindClock    Kind = "time"
	KindDateTime Kind = "datetime"
)

// Kinds lists every supported kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindInteger, KindLong, KindDecimal, KindBoolean, KindText, KindDate, KindClock, KindDateTime}
}

// Mode selects how a parse routine treats incomplete input.
type Mode int

const (
	// Strict requires a complete, valid value and reports failures as errors.
	Strict Mode = iota
	// Interactive admits partial input that may still become valid.
	Interactive
)

func (m Mode) String() string {
	if m == Interactive {
		return "interactive"
	}
	return "strict"
}

// Property names published to subscribers.
const (
	PropValue    = "value"
	PropValid    = "valid"
	PropRequired = "required"
	PropReadOnly = "readOnly"
	PropKey      = "key"
	PropNumber   = "number"
	PropChecked  = "checked"
	PropComplete = "complete"
	PropConfig   = "config"
)

// Value is the contract shared by every typed value.
type Value interface {
	Kind() Kind

	// String returns the current text. An empty string means no value was
	// entered.
	String() string
	Valid() bool
	IsClear() bool

	Required() bool
	SetRequired(bool)
	Key() bool
	SetKey(bool)
	ReadOnly() bool
	SetReadOnly(bool)

	// SetValue parses s strictly. On failure it returns an
	// *InvalidFormatError or *RangeError and leaves the value untouched.
	SetValue(s string) error
	// TryInsert splices s into the text at the rune offset and reports
	// whether the edit was admitted. The stored text may be reformatted.
	TryInsert(offset int, s string) bool
	// TryRemove deletes length runes starting at offset and reports whether
	// the edit was admitted.
	TryRemove(offset, length int) bool
	// TryReplace replaces length runes at offset with s in a single edit.
	TryReplace(offset, length int, s string) bool
	Clear()

	// Copy returns an independent value with the same text, configuration
	// and flags but no subscribers.
	Copy() Value
	// SortKey returns a string whose lexicographic order follows the
	// natural order of the type.
	SortKey() string
	// SQLLiteral renders the value for inclusion in a SQL statement.
	SQLLiteral() string

	// Subscribe registers handler for property ("" for every property) and
	// returns a handle for Unsubscribe.
	Subscribe(property string, handler notify.Handler) int
	Unsubscribe(handle int)
}
