package value

// Factory constructs values that share one Locale. Options passed to the
// constructors are applied after the locale and override it.
type Factory struct {
	locale Locale
}

// NewFactory validates locale and returns a Factory using it.
func NewFactory(locale Locale) (*Factory, error) {
	if err := locale.Validate(); err != nil {
		return nil, err
	}
	return &Factory{locale: locale}, nil
}

// Locale returns the factory's locale.
func (f *Factory) Locale() Locale {
	return f.locale
}

func (f *Factory) with(opts []Option) []Option {
	return append([]Option{WithLocale(f.locale)}, opts...)
}

func (f *Factory) Integer(opts ...Option) (*Integer, error) { return NewInteger(f.with(opts)...) }
func (f *Factory) Long(opts ...Option) (*Long, error)       { return NewLong(f.with(opts)...) }
func (f *Factory) Decimal(opts ...Option) (*Decimal, error) { return NewDecimal(f.with(opts)...) }
func (f *Factory) Boolean(opts ...Option) (*Boolean, error) { return NewBoolean(f.with(opts)...) }
func (f *Factory) Text(opts ...Option) (*Text, error)       { return NewText(f.with(opts)...) }
func (f *Factory) Date(opts ...Option) (*Date, error)       { return NewDate(f.with(opts)...) }
func (f *Factory) Clock(opts ...Option) (*Clock, error)     { return NewClock(f.with(opts)...) }

func (f *Factory) DateTime(opts ...Option) (*DateTime, error) {
	return NewDateTime(f.with(opts)...)
}

// New constructs an empty value of the given kind.
func (f *Factory) New(kind Kind, opts ...Option) (Value, error) {
	switch kind {
	case KindInteger:
		return asValue(f.Integer(opts...))
	case KindLong:
		return asValue(f.Long(opts...))
	case KindDecimal:
		return asValue(f.Decimal(opts...))
	case KindBoolean:
		return asValue(f.Boolean(opts...))
	case KindText:
		return asValue(f.Text(opts...))
	case KindDate:
		return asValue(f.Date(opts...))
	case KindClock:
		return asValue(f.Clock(opts...))
	case KindDateTime:
		return asValue(f.DateTime(opts...))
	default:
		return nil, &ConfigurationError{Kind: kind, Setting: "kind", Reason: "unknown kind " + quote(string(kind))}
	}
}

// asValue keeps a failed constructor from yielding a non-nil Value holding a
// nil pointer.
func asValue[T Value](v T, err error) (Value, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ParseKind maps a kind name to a Kind.
func ParseKind(name string) (Kind, bool) {
	for _, k := range Kinds() {
		if string(k) == name {
			return k, true
		}
	}
	return "", false
}
