// Package locale loads the embedded translation files and resolves
// user facing labels in the requested language.
package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/GillesH-web/Pythagore/internal/config"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

const (
	localeDir    = "locales/"
	localePrefix = "active."
	localeSuffix = ".json"
)

var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle
	detected   []string
	bundleErr  error
)

// Bundle returns the process-wide translation bundle and the language codes
// found in the embedded files. It is built once.
func Bundle() (*i18n.Bundle, []string, error) {
	bundleOnce.Do(func() {
		bundle, detected, bundleErr = loadBundle()
	})
	return bundle, detected, bundleErr
}

func loadBundle() (*i18n.Bundle, []string, error) {
	b := i18n.NewBundle(language.French)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir(strings.TrimSuffix(localeDir, "/"))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}

	var langs []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, localePrefix) || !strings.HasSuffix(name, localeSuffix) {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, localePrefix), localeSuffix)
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := b.LoadMessageFileFS(localeFS, localeDir+name); err != nil {
			return nil, nil, fmt.Errorf("%s %s: %w", config.ErrLocaleLoad, name, err)
		}
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
		langs = append(langs, langCode)
	}

	return b, langs, nil
}

// Translator resolves message keys for one language.
type Translator struct {
	Lang      string
	localizer *i18n.Localizer
}

// New returns a Translator for lang. An empty lang selects the default language.
func New(lang string) (*Translator, error) {
	b, langs, err := Bundle()
	if err != nil {
		return nil, err
	}

	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		lang = config.DefaultLanguage
	}
	if !slices.Contains(langs, lang) {
		return nil, fmt.Errorf("%s: %q", config.ErrLanguageUnknown, lang)
	}

	return &Translator{
		Lang:      lang,
		localizer: i18n.NewLocalizer(b, lang),
	}, nil
}

// Match picks the best supported language for an Accept-Language header.
// It falls back to the default language.
func Match(acceptLanguage string) string {
	_, langs, err := Bundle()
	if err != nil || len(langs) == 0 {
		return config.DefaultLanguage
	}

	// The default language goes first so that it wins ties and empty headers.
	ordered := []string{config.DefaultLanguage}
	for _, l := range langs {
		if l != config.DefaultLanguage {
			ordered = append(ordered, l)
		}
	}

	tags := make([]language.Tag, 0, len(ordered))
	for _, l := range ordered {
		tags = append(tags, language.Make(l))
	}

	_, idx := language.MatchStrings(language.NewMatcher(tags), acceptLanguage)
	return ordered[idx]
}

// Msg translates key. Unknown keys are returned unchanged.
func (t *Translator) Msg(key string) string {
	return t.Format(key, nil)
}

// Format translates key, executing its template with data.
func (t *Translator) Format(key string, data map[string]any) string {
	if t == nil || t.localizer == nil {
		return key
	}
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// Violations translates a field to message-key map into field to text.
func (t *Translator) Violations(v map[string]string) map[string]string {
	out := make(map[string]string, len(v))
	for field, key := range v {
		out[field] = t.Msg(key)
	}
	return out
}
