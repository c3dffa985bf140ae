package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings is the layered user configuration.
// Precedence, highest first: CLI flags, PYTHAGORE_* environment variables,
// the YAML config file, then Defaults.
type Settings struct {
	Language string           `mapstructure:"language" yaml:"language"`
	Variant  string           `mapstructure:"variant" yaml:"variant"`
	Traits   bool             `mapstructure:"traits" yaml:"traits"`
	Format   string           `mapstructure:"format" yaml:"format"`
	Server   ServerSettings   `mapstructure:"server" yaml:"server"`
	Calendar CalendarSettings `mapstructure:"calendar" yaml:"calendar"`
	Contacts ContactsSettings `mapstructure:"contacts" yaml:"contacts"`
}

type ServerSettings struct {
	Port     string        `mapstructure:"port" yaml:"port"`
	CacheTTL time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
}

type CalendarSettings struct {
	// Reminder is an ISO-8601 duration such as "-P1D". Empty disables alarms.
	Reminder string `mapstructure:"reminder" yaml:"reminder"`
}

// ContactsSettings holds the default address book location.
// The password is never stored here; it lives in the OS keyring.
type ContactsSettings struct {
	URL  string `mapstructure:"url" yaml:"url"`
	User string `mapstructure:"user" yaml:"user"`
	Path string `mapstructure:"path" yaml:"path"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Language: DefaultLanguage,
		Variant:  VariantFirstNames,
		Traits:   DefaultTraits,
		Format:   DefaultFormat,
		Server: ServerSettings{
			Port:     DefaultPort,
			CacheTTL: DefaultCacheTTL,
		},
	}
}

// SetDefaults registers Defaults on v so that every key is known to
// AutomaticEnv and Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault(KeyLanguage, d.Language)
	v.SetDefault(KeyVariant, d.Variant)
	v.SetDefault(KeyTraits, d.Traits)
	v.SetDefault(KeyFormat, d.Format)
	v.SetDefault(KeyServerPort, d.Server.Port)
	v.SetDefault(KeyServerCacheTTL, d.Server.CacheTTL)
	v.SetDefault(KeyCalendarReminder, d.Calendar.Reminder)
	v.SetDefault(KeyContactsURL, d.Contacts.URL)
	v.SetDefault(KeyContactsUser, d.Contacts.User)
	v.SetDefault(KeyContactsPath, d.Contacts.Path)
}

// BindEnv makes nested keys reachable as PYTHAGORE_SERVER_PORT and friends.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load decodes v into Settings and validates the result.
func Load(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", ErrConfigDecode, err)
	}
	s.Language = strings.ToLower(strings.TrimSpace(s.Language))
	s.Variant = strings.ToLower(strings.TrimSpace(s.Variant))
	s.Format = strings.ToLower(strings.TrimSpace(s.Format))

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate reports every invalid field at once.
func (s Settings) Validate() error {
	var errs []error

	if !slices.Contains(SupportedLanguages, s.Language) {
		errs = append(errs, fmt.Errorf("%s: %q", ErrLanguageUnknown, s.Language))
	}
	if !slices.Contains(SupportedVariants, s.Variant) {
		errs = append(errs, fmt.Errorf("%s: %q", ErrVariantUnknown, s.Variant))
	}
	if !slices.Contains(SupportedFormats, s.Format) {
		errs = append(errs, fmt.Errorf("%s: %q", ErrFormatUnknown, s.Format))
	}
	if err := ValidatePort(s.Server.Port); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ValidatePort checks that port is a decimal number in the TCP range.
func ValidatePort(port string) error {
	if port == "" {
		return errors.New(ErrPortRequired)
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrPortNumber, err)
	}
	if n < MinPort || n > MaxPort {
		return errors.New(ErrPortRange)
	}
	return nil
}
