package value

import "golang.org/x/text/language"

// DateOrder selects the order of the date components in text form.
type DateOrder string

const (
	DMY DateOrder = "dmy"
	MDY DateOrder = "mdy"
	YMD DateOrder = "ymd"
)

// Valid reports whether o is a known ordering.
func (o DateOrder) Valid() bool {
	switch o {
	case DMY, MDY, YMD:
		return true
	default:
		return false
	}
}

// Locale carries the separators and formats new values start with. It is
// passed explicitly, usually through a Factory, and is read once at
// construction time.
type Locale struct {
	DecimalSeparator  rune
	GroupSeparator    rune
	DateOrder         DateOrder
	DateSeparator     rune
	TimeSeparator     rune
	DateTimeSeparator rune
	TimeWithSeconds   bool
	// Language drives case mapping for Text values.
	Language language.Tag
}

// DefaultLocale returns the built-in defaults: "." decimals, "," grouping,
// day-month-year dates separated by "/", "HH:MM:SS" times.
func DefaultLocale() Locale {
	return Locale{
		DecimalSeparator:  '.',
		GroupSeparator:    ',',
		DateOrder:         DMY,
		DateSeparator:     '/',
		TimeSeparator:     ':',
		DateTimeSeparator: ' ',
		TimeWithSeconds:   true,
		Language:          language.Und,
	}
}

// Validate checks the locale for separators that would make parsing
// ambiguous.
func (l Locale) Validate() error {
	if err := checkSeparators(KindDecimal, l.DecimalSeparator, l.GroupSeparator); err != nil {
		return err
	}
	if !l.DateOrder.Valid() {
		return &ConfigurationError{Kind: KindDate, Setting: "order", Reason: "unknown order " + quote(string(l.DateOrder))}
	}
	if err := checkSeparator(KindDate, "separator", l.DateSeparator); err != nil {
		return err
	}
	if err := checkSeparator(KindClock, "separator", l.TimeSeparator); err != nil {
		return err
	}
	if l.DateTimeSeparator == l.DateSeparator || l.DateTimeSeparator == l.TimeSeparator {
		return &ConfigurationError{Kind: KindDateTime, Setting: "dateTimeSeparator", Reason: "must differ from the date and time separators"}
	}
	return checkSeparator(KindDateTime, "dateTimeSeparator", l.DateTimeSeparator)
}

func checkSeparator(kind Kind, setting string, r rune) error {
	switch {
	case r == 0:
		return &ConfigurationError{Kind: kind, Setting: setting, Reason: "separator is required"}
	case isDigit(r), kind == KindDecimal && (r == '-' || r == '+'):
		return &ConfigurationError{Kind: kind, Setting: setting, Reason: "separator " + quote(string(r)) + " is ambiguous"}
	}
	return nil
}

func checkSeparators(kind Kind, decimalSep, groupSep rune) error {
	if err := checkSeparator(kind, "decimalSeparator", decimalSep); err != nil {
		return err
	}
	if groupSep == 0 {
		return nil
	}
	if err := checkSeparator(kind, "groupSeparator", groupSep); err != nil {
		return err
	}
	if groupSep == decimalSep {
		return &ConfigurationError{Kind: kind, Setting: "groupSeparator", Reason: "must differ from the decimal separator"}
	}
	return nil
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
