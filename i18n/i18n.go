// Package i18n loads the embedded message catalogs used for user-facing
// text.
package i18n

import (
	"embed"
	"fmt"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// DefaultLanguage is used when a requested language has no catalog.
const DefaultLanguage = "en"

// Languages lists the embedded catalogs.
var Languages = []string{"en", "ja"}

// Translator owns the message bundle. It is safe for concurrent use once
// built.
type Translator struct {
	bundle *goi18n.Bundle
}

// New loads every embedded catalog.
func New() (*Translator, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	for _, l := range Languages {
		filename := fmt.Sprintf("locales/%s.yaml", l)
		if _, err := bundle.LoadMessageFileFS(localeFS, filename); err != nil {
			return nil, fmt.Errorf("load %s: %w", filename, err)
		}
	}
	return &Translator{bundle: bundle}, nil
}

// Supported reports whether lang resolves to an embedded catalog.
func Supported(lang string) bool {
	tag, err := language.Parse(lang)
	if err != nil {
		return false
	}
	base, _ := tag.Base()
	for _, l := range Languages {
		if base.String() == l {
			return true
		}
	}
	return false
}

// Tag parses lang, falling back to DefaultLanguage.
func Tag(lang string) language.Tag {
	if tag, err := language.Parse(lang); err == nil && Supported(lang) {
		return tag
	}
	return language.English
}

// Localizer translates into one language.
type Localizer struct {
	lang string
	loc  *goi18n.Localizer
}

func (t *Translator) Localizer(lang string) *Localizer {
	if lang == "" {
		lang = DefaultLanguage
	}
	return &Localizer{lang: lang, loc: goi18n.NewLocalizer(t.bundle, lang, DefaultLanguage)}
}

func (l *Localizer) Lang() string { return l.lang }

// T returns the message for id. data fills template fields such as
// {{.Count}}. A missing message yields id itself.
func (l *Localizer) T(id string, data map[string]any) string {
	msg, err := l.loc.Localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}
	return msg
}
