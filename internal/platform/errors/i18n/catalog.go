// Package i18n provides internationalization support for error messages.
package i18n

import (
	"bytes"
	"strings"
	"sync"
	"text/template"

	"golang.org/x/text/language"
)

// Code is a machine-readable error code (duplicated from the errors package
// to avoid an import cycle).
type Code = string

// Catalog maps error codes to message templates for a specific locale.
type Catalog struct {
	locale   string
	messages map[Code]string
}

var (
	catalogsMu sync.RWMutex
	catalogs   = map[string]*Catalog{
		"en-US": enUSCatalog,
	}
	// matcher resolves requested locales against registered catalogs.
	matcher      language.Matcher
	matcherTags  []string
	matcherBuild sync.Once
)

// GetCatalog returns the catalog for the given locale.
// Falls back to en-US if the locale is not found.
func GetCatalog(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		return enUSCatalog
	}

	catalogsMu.RLock()
	if c, ok := catalogs[requested]; ok {
		catalogsMu.RUnlock()
		return c
	}
	catalogsMu.RUnlock()

	tag, err := language.Parse(requested)
	if err != nil {
		return enUSCatalog
	}

	buildMatcher()
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return enUSCatalog
	}

	catalogsMu.RLock()
	defer catalogsMu.RUnlock()
	if c, ok := catalogs[matcherTags[index]]; ok {
		return c
	}
	return enUSCatalog
}

// RegisterCatalog adds or replaces the catalog for a locale.
func RegisterCatalog(c *Catalog) {
	if c == nil || strings.TrimSpace(c.locale) == "" {
		return
	}
	catalogsMu.Lock()
	catalogs[c.locale] = c
	catalogsMu.Unlock()
}

// NewCatalog builds a catalog for the locale with the provided messages.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	return &Catalog{locale: locale, messages: messages}
}

// buildMatcher lazily constructs the locale matcher from registered catalogs.
func buildMatcher() {
	matcherBuild.Do(func() {
		catalogsMu.RLock()
		defer catalogsMu.RUnlock()
		tags := make([]language.Tag, 0, len(catalogs))
		matcherTags = make([]string, 0, len(catalogs))
		for locale := range catalogs {
			tag, err := language.Parse(locale)
			if err != nil {
				continue
			}
			tags = append(tags, tag)
			matcherTags = append(matcherTags, locale)
		}
		matcher = language.NewMatcher(tags)
	})
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message template with the given metadata.
// Falls back to the error code itself if no template is found.
// Templates are always executed even with nil/empty metadata so template
// variables without metadata render as empty.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	tmpl, ok := c.messages[code]
	if !ok {
		return code
	}

	if metadata == nil {
		metadata = map[string]string{}
	}

	t, err := template.New("msg").Parse(tmpl)
	if err != nil {
		return tmpl
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}
