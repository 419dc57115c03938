package l10n

import (
	"os"
	"path/filepath"
)

// Terminology catalogs, as installed by the iso-codes package. The first
// domain found for a language is used.
var terminologyDomains = map[string][]string{
	"country":  {"iso_3166-1", "iso_3166"},
	"currency": {"iso_4217"},
	"language": {"iso_639-3", "iso_639"},
}

// TranslateCountry returns the name of a country, like "Netherlands", in
// the language of the locale. Names without a translation are returned
// unchanged.
func (l *Locale) TranslateCountry(name string) string {
	return l.translateTerm("country", name)
}

// TranslateCurrency returns the name of a currency, like "Euro", in the
// language of the locale.
func (l *Locale) TranslateCurrency(name string) string {
	return l.translateTerm("currency", name)
}

// TranslateLanguage returns the name of a language, like "Dutch", in the
// language of the locale.
func (l *Locale) TranslateLanguage(name string) string {
	return l.translateTerm("language", name)
}

func (l *Locale) translateTerm(kind, name string) string {
	term := l.terminologyLocale(kind)
	if term == nil {
		return name
	}
	return term.Get(name)
}

// terminologyLocale finds the terminology catalog of a kind for the
// language of l. Absence is remembered too.
func (l *Locale) terminologyLocale(kind string) *Locale {
	language := l.Language()

	l.termMu.Lock()
	defer l.termMu.Unlock()
	if term, ok := l.terminology[kind]; ok {
		return term
	}
	if l.terminology == nil {
		l.terminology = make(map[string]*Locale)
	}
	term := l.findTerminology(kind, language)
	l.terminology[kind] = term
	return term
}

func (l *Locale) findTerminology(kind, language string) *Locale {
	if l.terminologyRoot == "" || !validLanguage(language) {
		return nil
	}
	candidates := []string{language}
	if primary := primarySubtag(language); primary != language {
		candidates = append(candidates, primary)
	}
	for _, candidate := range candidates {
		for _, domain := range terminologyDomains[kind] {
			path := filepath.Join(l.terminologyRoot, candidate, "LC_MESSAGES", domain+".mo")
			if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
				l.logger.Debugf("using %s for %s names in %q", path, kind, language)
				return NewLocale(language, path, WithLogger(l.logger), WithGuard(l.guard), WithTerminologyRoot(""))
			}
		}
	}
	return nil
}
