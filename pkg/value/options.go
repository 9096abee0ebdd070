package value

// Option configures a value at construction time. Options that do not apply
// to the constructed kind are ignored, so one option list can describe any
// field.
type Option func(*options)

type options struct {
	locale   Locale
	required bool
	key      bool
	readOnly bool

	min *int64
	max *int64

	integerDigits  *int
	fractionDigits *int
	negative       *bool
	decimalSep     *rune
	groupSep       *rune

	maxLength *int
	casing    Casing
	allowed   string

	order        *DateOrder
	dateSep      *rune
	timeSep      *rune
	dateTimeSep  *rune
	withSeconds  *bool
	timeOptional bool
}

func buildOptions(opts []Option) options {
	o := options{locale: DefaultLocale()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&o)
	}
	return o
}

func (o options) applyFlags(s *state) {
	s.required = o.required
	s.key = o.key
	s.readOnly = o.readOnly
	s.valid = s.derive()
}

// WithLocale sets the separators and formats the value starts with. Later
// specific options override locale fields.
func WithLocale(locale Locale) Option {
	return func(o *options) {
		o.locale = locale
	}
}

// WithRequired marks the value as required: a clear value is invalid.
func WithRequired(required bool) Option {
	return func(o *options) {
		o.required = required
	}
}

// WithKey marks the value as part of its record's identity.
func WithKey(key bool) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithReadOnly blocks interactive edits.
func WithReadOnly(readOnly bool) Option {
	return func(o *options) {
		o.readOnly = readOnly
	}
}

// WithRange bounds Integer and Long values (inclusive).
func WithRange(min, max int64) Option {
	return func(o *options) {
		o.min = &min
		o.max = &max
	}
}

// WithDigits limits the integer and fractional digits of a Decimal. Use -1
// for no limit.
func WithDigits(integer, fraction int) Option {
	return func(o *options) {
		o.integerDigits = &integer
		o.fractionDigits = &fraction
	}
}

// WithNegative allows or forbids negative Decimal values.
func WithNegative(allowed bool) Option {
	return func(o *options) {
		o.negative = &allowed
	}
}

// WithSeparators overrides the Decimal separators. A zero group separator
// disables grouping.
func WithSeparators(decimal, group rune) Option {
	return func(o *options) {
		o.decimalSep = &decimal
		o.groupSep = &group
	}
}

// WithMaxLength bounds Text values. Use -1 for no limit.
func WithMaxLength(n int) Option {
	return func(o *options) {
		o.maxLength = &n
	}
}

// WithCasing sets the case mapping applied to Text values.
func WithCasing(c Casing) Option {
	return func(o *options) {
		o.casing = c
	}
}

// WithAllowed restricts Text values to the given characters.
func WithAllowed(chars string) Option {
	return func(o *options) {
		o.allowed = chars
	}
}

// WithDateOrder sets the component order of Date and DateTime values.
func WithDateOrder(order DateOrder) Option {
	return func(o *options) {
		o.order = &order
	}
}

// WithDateSeparator sets the separator between date components.
func WithDateSeparator(r rune) Option {
	return func(o *options) {
		o.dateSep = &r
	}
}

// WithTimeSeparator sets the separator between time components.
func WithTimeSeparator(r rune) Option {
	return func(o *options) {
		o.timeSep = &r
	}
}

// WithDateTimeSeparator sets the separator between the date and time parts.
func WithDateTimeSeparator(r rune) Option {
	return func(o *options) {
		o.dateTimeSep = &r
	}
}

// WithSeconds makes the seconds component mandatory (true) or optional (false).
func WithSeconds(required bool) Option {
	return func(o *options) {
		o.withSeconds = &required
	}
}

// WithTimeOptional lets a DateTime without a time part count as complete at
// midnight.
func WithTimeOptional(optional bool) Option {
	return func(o *options) {
		o.timeOptional = optional
	}
}
