// Package config loads the locale values are created with. Settings come from
// an optional YAML file and FORMVALUE_* environment variables, with the
// environment taking precedence.
package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/goliatone/go-formvalue/pkg/value"
)

// EnvPrefix prefixes every environment override, e.g. FORMVALUE_DATE_ORDER.
const EnvPrefix = "FORMVALUE"

// Setting keys. Nested keys map to environment variables with "." replaced
// by "_".
const (
	KeyDecimalSeparator  = "decimal.separator"
	KeyGroupSeparator    = "decimal.group"
	KeyDateOrder         = "date.order"
	KeyDateSeparator     = "date.separator"
	KeyTimeSeparator     = "time.separator"
	KeyTimeSeconds       = "time.seconds"
	KeyDateTimeSeparator = "datetime.separator"
	KeyLanguage          = "language"
)

// NoGrouping disables digit grouping when used as the group separator.
const NoGrouping = "none"

// Load reads the locale from path, or from the environment and defaults
// alone when path is empty.
func Load(path string) (value.Locale, error) {
	return LoadWith(viper.New(), path)
}

// LoadWith reads the locale through v, letting callers bind flags or extra
// sources to the same instance first.
func LoadWith(v *viper.Viper, path string) (value.Locale, error) {
	def := value.DefaultLocale()
	v.SetDefault(KeyDecimalSeparator, string(def.DecimalSeparator))
	v.SetDefault(KeyGroupSeparator, string(def.GroupSeparator))
	v.SetDefault(KeyDateOrder, string(def.DateOrder))
	v.SetDefault(KeyDateSeparator, string(def.DateSeparator))
	v.SetDefault(KeyTimeSeparator, string(def.TimeSeparator))
	v.SetDefault(KeyTimeSeconds, def.TimeWithSeconds)
	v.SetDefault(KeyDateTimeSeparator, string(def.DateTimeSeparator))
	v.SetDefault(KeyLanguage, def.Language.String())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return value.Locale{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	return decode(v)
}

func decode(v *viper.Viper) (value.Locale, error) {
	var (
		locale value.Locale
		err    error
	)
	if locale.DecimalSeparator, err = separator(v, KeyDecimalSeparator); err != nil {
		return value.Locale{}, err
	}
	if strings.EqualFold(strings.TrimSpace(v.GetString(KeyGroupSeparator)), NoGrouping) {
		locale.GroupSeparator = 0
	} else if locale.GroupSeparator, err = separator(v, KeyGroupSeparator); err != nil {
		return value.Locale{}, err
	}
	if locale.DateSeparator, err = separator(v, KeyDateSeparator); err != nil {
		return value.Locale{}, err
	}
	if locale.TimeSeparator, err = separator(v, KeyTimeSeparator); err != nil {
		return value.Locale{}, err
	}
	if locale.DateTimeSeparator, err = separator(v, KeyDateTimeSeparator); err != nil {
		return value.Locale{}, err
	}
	locale.DateOrder = value.DateOrder(strings.ToLower(strings.TrimSpace(v.GetString(KeyDateOrder))))
	locale.TimeWithSeconds = v.GetBool(KeyTimeSeconds)

	tag := strings.TrimSpace(v.GetString(KeyLanguage))
	if locale.Language, err = language.Parse(tag); err != nil {
		return value.Locale{}, fmt.Errorf("%w: %q: %w", ErrLanguage, tag, err)
	}

	if err := locale.Validate(); err != nil {
		return value.Locale{}, fmt.Errorf("config: %w", err)
	}
	return locale, nil
}

// separator reads a one-character setting. Whitespace is significant, so a
// single space is a valid separator.
func separator(v *viper.Viper, key string) (rune, error) {
	s := v.GetString(key)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("%w: %s = %q", ErrSeparator, key, s)
	}
	return r, nil
}
