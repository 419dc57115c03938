package l10n

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

const languagePlaceholder = "{language}"

// Locales is a directory of compiled catalogs, one per language, named
// after a pattern such as "{language}.mo" or
// "{language}/LC_MESSAGES/app.mo". Use NewLocales to create one.
type Locales struct {
	root    string
	pattern string
	logger  Logger
	// localeOpts are handed to every Locale of the store
	localeOpts []Option

	// cache memoizes Get, misses included; nil when disabled
	cache *lru.Cache[string, *Locale]
	scans singleflight.Group

	mu         sync.Mutex
	generation uint64
	locales    []*Locale
	scanned    bool
}

// NewLocales returns the store of the catalogs found under root. Nothing is
// read until a locale is asked for.
func NewLocales(root string, opts ...Option) *Locales {
	o := newOptions(opts)
	s := &Locales{
		root:    root,
		pattern: o.pattern,
		logger:  o.logger,
		localeOpts: []Option{
			WithLogger(o.logger),
			WithGuard(o.guard),
			WithTerminologyRoot(o.terminologyRoot),
		},
	}
	if o.cacheSize > 0 {
		// only fails for non-positive sizes
		s.cache, _ = lru.New[string, *Locale](o.cacheSize)
	}
	return s
}

// Root returns the directory of the store.
func (s *Locales) Root() string {
	return s.root
}

// Pattern returns the catalog file name pattern of the store.
func (s *Locales) Pattern() string {
	return s.pattern
}

func (s *Locales) pathTo(language string) string {
	rel := strings.ReplaceAll(s.pattern, languagePlaceholder, language)
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

func exists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

// Get returns the locale of a language, or nil when the store has no
// catalog for it. When there is no catalog for a tag like "ru_RU", the one
// of its primary subtag "ru" is used; the locale still reports "ru_RU" as
// its language.
func (s *Locales) Get(language string) *Locale {
	if s.cache == nil {
		return s.resolve(language)
	}
	if loc, ok := s.cache.Get(language); ok {
		return loc
	}

	s.mu.Lock()
	generation := s.generation
	s.mu.Unlock()

	loc := s.resolve(language)

	s.mu.Lock()
	if generation == s.generation {
		s.cache.Add(language, loc)
	}
	s.mu.Unlock()
	return loc
}

func (s *Locales) resolve(language string) *Locale {
	if !validLanguage(language) {
		s.logger.Debugf("ignoring invalid language %q", language)
		return nil
	}
	if path := s.pathTo(language); exists(path) {
		return NewLocale(language, path, s.localeOpts...)
	}
	if primary := primarySubtag(language); primary != language && validLanguage(primary) {
		if path := s.pathTo(primary); exists(path) {
			s.logger.Debugf("using %s for %q", path, language)
			return NewLocale(language, path, s.localeOpts...)
		}
	}
	return nil
}

// Lookup is Get for callers that need an error when the language is not
// available.
func (s *Locales) Lookup(language string) (*Locale, error) {
	loc := s.Get(language)
	if loc == nil {
		return nil, &LanguageNotFoundError{Language: language}
	}
	return loc, nil
}

// Locales lists the locales of every catalog of the store, sorted by path.
// The language of each locale is the part of its file name that matched
// the {language} placeholder. The list is computed once and kept until
// ResetCache.
func (s *Locales) Locales() []*Locale {
	s.mu.Lock()
	if s.scanned {
		locales := s.locales
		s.mu.Unlock()
		return locales
	}
	generation := s.generation
	s.mu.Unlock()

	v, _, _ := s.scans.Do(strconv.FormatUint(generation, 10), func() (interface{}, error) {
		return s.scan(), nil
	})
	locales := v.([]*Locale)

	s.mu.Lock()
	if generation == s.generation && !s.scanned {
		s.locales = locales
		s.scanned = true
	}
	s.mu.Unlock()
	return locales
}

func (s *Locales) scan() []*Locale {
	glob, rex := patternMatchers(s.pattern)
	matches, err := fs.Glob(os.DirFS(s.root), glob)
	if err != nil {
		s.logger.Warnf("cannot scan %s: %v", s.root, err)
		return nil
	}
	sort.Strings(matches)
	locales := make([]*Locale, 0, len(matches))
	for _, match := range matches {
		language, ok := matchLanguage(rex, match)
		if !ok || (language != "" && !validLanguage(language)) {
			continue
		}
		path := filepath.Join(s.root, filepath.FromSlash(match))
		if !exists(path) {
			continue
		}
		locales = append(locales, NewLocale(language, path, s.localeOpts...))
	}
	s.logger.Debugf("found %d catalogs in %s", len(locales), s.root)
	return locales
}

// patternMatchers turns a catalog file name pattern into a glob finding
// the catalogs and a regexp capturing every placeholder of their name.
func patternMatchers(pattern string) (string, *regexp.Regexp) {
	pattern = path.Clean(filepath.ToSlash(pattern))
	var glob, rex strings.Builder
	rex.WriteByte('^')
	parts := strings.Split(pattern, languagePlaceholder)
	for i, part := range parts {
		if i > 0 {
			glob.WriteByte('*')
			rex.WriteString(`([^/]+)`)
		}
		glob.WriteString(escapeGlob(part))
		rex.WriteString(regexp.QuoteMeta(part))
	}
	if len(parts) == 1 {
		// a pattern without placeholder names a single catalog
		rex.WriteString(`()`)
	}
	rex.WriteByte('$')
	return glob.String(), regexp.MustCompile(rex.String())
}

// matchLanguage returns the language of a catalog name matched by rex.
// Names whose placeholders hold different values, like "ru/nl.mo" for
// "{language}/{language}.mo", are not catalogs of the store.
func matchLanguage(rex *regexp.Regexp, name string) (string, bool) {
	m := rex.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	for _, other := range m[2:] {
		if other != m[1] {
			return "", false
		}
	}
	return m[1], true
}

func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Languages returns the sorted languages of the locales of the store.
func (s *Locales) Languages() []string {
	seen := make(map[string]bool)
	var languages []string
	for _, loc := range s.Locales() {
		language := loc.Language()
		if language == "" || seen[language] {
			continue
		}
		seen[language] = true
		languages = append(languages, language)
	}
	sort.Strings(languages)
	return languages
}

// SystemLanguage returns the preferred language of the user.
func (s *Locales) SystemLanguage() string {
	return SystemLanguage()
}

// SystemLocale returns the locale of the preferred language of the user,
// nil when it is unknown or the store has no catalog for it.
func (s *Locales) SystemLocale() *Locale {
	language := s.SystemLanguage()
	if language == "" {
		return nil
	}
	return s.Get(language)
}

// Preload loads the catalogs of the given languages, if they're available.
// This is useful if you want to limit IO to a specific time in your app,
// for example startup.
func (s *Locales) Preload(languages ...string) {
	for _, language := range languages {
		if loc := s.Get(language); loc != nil {
			loc.Catalog()
		}
	}
}

// ResetCache forgets the locales, the languages and the memoized Get
// results, so that catalogs added or removed since show up.
func (s *Locales) ResetCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.locales = nil
	s.scanned = false
	if s.cache != nil {
		s.cache.Purge()
	}
	s.logger.Debugf("reset cache of %s", s.root)
}
