package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/active.*.toml
var embeddedLocales embed.FS

type Translations struct {
	bundle   *i18n.Bundle
	localize *i18n.Localizer
	lang     string
}

// NewTranslations loads the embedded message files and, when localesPath is
// not empty, any active.*.toml found there on top of them.
func NewTranslations(defaultLang, localesPath string) (*Translations, error) {
	if defaultLang == "" {
		return nil, errors.New("language cannot be empty")
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	embedded, err := fs.Glob(embeddedLocales, "locales/active.*.toml")
	if err != nil {
		return nil, fmt.Errorf("error reading embedded locales: %w", err)
	}
	for _, name := range embedded {
		data, err := embeddedLocales.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("error reading embedded locale %s: %w", name, err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, path.Base(name)); err != nil {
			return nil, fmt.Errorf("error parsing embedded locale %s: %w", name, err)
		}
	}

	if localesPath != "" {
		files, err := filepath.Glob(filepath.Join(localesPath, "active.*.toml"))
		if err != nil {
			return nil, fmt.Errorf("error reading locales: %w", err)
		}

		for _, file := range files {
			if _, err := bundle.LoadMessageFile(file); err != nil {
				return nil, fmt.Errorf("error loading locale file %s: %w", file, err)
			}
		}
	}

	return &Translations{
		bundle:   bundle,
		localize: i18n.NewLocalizer(bundle, defaultLang),
		lang:     defaultLang,
	}, nil
}

func (t *Translations) SetLanguage(lang string) error {
	for _, tag := range t.bundle.LanguageTags() {
		if tag.String() == lang {
			t.localize = i18n.NewLocalizer(t.bundle, lang)
			t.lang = lang
			return nil
		}
	}
	return fmt.Errorf("language '%s' not supported", lang)
}

// Language returns the language the localizer was built for.
func (t *Translations) Language() string {
	return t.lang
}

// SupportedLanguages lists the languages with at least one message file.
func (t *Translations) SupportedLanguages() []string {
	tags := t.bundle.LanguageTags()
	langs := make([]string, 0, len(tags))
	for _, tag := range tags {
		langs = append(langs, tag.String())
	}
	return langs
}

func (t *Translations) GetMessage(messageID string, count int, templateData interface{}) string {
	localized, err := t.localize.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		PluralCount:  count,
		TemplateData: templateData,
	})
	// A message missing from the active language still comes back in the
	// default language, along with a not-found error.
	if localized == "" && err != nil {
		return "Translation missing: " + messageID
	}
	return localized
}
