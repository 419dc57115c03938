package l10n

import (
	"strings"
	"sync"
)

// Locale gives access to the translations of one catalog and formats
// values the way its language does.
//
// A Locale is identified by its language, its catalog path, or both. It
// does no I/O until a translation or a header is asked for.
type Locale struct {
	language string
	path     string

	terminologyRoot string
	logger          Logger
	guard           *LocaleGuard

	mu      sync.Mutex
	loaded  bool
	catalog *Catalog
	err     error

	termMu      sync.Mutex
	terminology map[string]*Locale
}

// NewLocale returns a locale for the given language and catalog path.
// Either may be empty: a locale without a path translates nothing but can
// still format, and a locale without a language takes it from the catalog.
func NewLocale(language, path string, opts ...Option) *Locale {
	o := newOptions(opts)
	return &Locale{
		language:        language,
		path:            path,
		terminologyRoot: o.terminologyRoot,
		logger:          o.logger,
		guard:           o.guard,
	}
}

// Path returns the path of the catalog of the locale.
func (l *Locale) Path() string {
	return l.path
}

// Language returns the language the locale was created for, or else the
// Language header of its catalog.
func (l *Locale) Language() string {
	if l.language != "" {
		return l.language
	}
	catalog, _ := l.Catalog()
	return catalog.Language()
}

// Catalog loads the catalog of the locale on first use. The outcome, error
// included, is kept until ResetCache.
func (l *Locale) Catalog() (*Catalog, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded {
		return l.catalog, l.err
	}
	l.loaded = true
	if l.path == "" {
		l.catalog = NewCatalog(nil, nil)
		return l.catalog, nil
	}
	l.catalog, l.err = LoadCatalog(l.path)
	if l.err != nil {
		l.logger.Warnf("cannot load catalog for %q: %v", l.language, l.err)
	} else {
		l.logger.Debugf("loaded %d messages from %s", len(l.catalog.Messages), l.path)
	}
	return l.catalog, l.err
}

// Headers returns the metadata of the catalog, nil when it cannot be
// loaded.
func (l *Locale) Headers() Headers {
	catalog, err := l.Catalog()
	if err != nil {
		return nil
	}
	return catalog.Headers
}

// ResetCache forgets the loaded catalog and the terminology locales. The
// language and path of the locale are kept.
func (l *Locale) ResetCache() {
	l.mu.Lock()
	l.loaded = false
	l.catalog = nil
	l.err = nil
	l.mu.Unlock()

	l.termMu.Lock()
	l.terminology = nil
	l.termMu.Unlock()
}

type getOptions struct {
	context    string
	hasContext bool
	plural     string
	hasPlural  bool
	n          uint64
	hasCount   bool
	fallback   string
	vars       map[string]string
}

// GetOption refines a translation lookup.
type GetOption func(*getOptions)

// Context looks the message up in the given context.
func Context(context string) GetOption {
	return func(o *getOptions) {
		o.context = context
		o.hasContext = true
	}
}

// Count selects the plural form for n.
func Count(n uint64) GetOption {
	return func(o *getOptions) {
		o.n = n
		o.hasCount = true
	}
}

// Plural is the untranslated plural text, returned when the message is
// missing and the count is not one.
func Plural(plural string) GetOption {
	return func(o *getOptions) {
		o.plural = plural
		o.hasPlural = true
	}
}

// Default is returned instead of the message when no translation exists.
func Default(text string) GetOption {
	return func(o *getOptions) { o.fallback = text }
}

// Vars replaces each {name} in the result with vars[name].
func Vars(vars map[string]string) GetOption {
	return func(o *getOptions) { o.vars = vars }
}

// Get translates message. When no translation exists, the plural text is
// returned for counts other than one and the message itself otherwise.
// A catalog that cannot be loaded translates nothing.
func (l *Locale) Get(message string, opts ...GetOption) string {
	var o getOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o.substitute(l.lookup(message, &o))
}

func (l *Locale) lookup(message string, o *getOptions) string {
	key := message
	if o.hasContext {
		key = withContext(o.context, message)
	}
	catalog, _ := l.Catalog()

	id := Singular(key)
	if o.hasCount {
		id = PluralForm(key, catalog.PluralRule().Select(o.n))
	}
	if msgstr, ok := catalog.Lookup(id); ok {
		return msgstr
	}

	if o.hasCount && o.n != 1 && o.hasPlural {
		return o.plural
	}
	if o.fallback != "" {
		return o.fallback
	}
	return message
}

func (o *getOptions) substitute(s string) string {
	if len(o.vars) == 0 {
		return s
	}
	oldnew := make([]string, 0, 2*len(o.vars))
	for name, value := range o.vars {
		oldnew = append(oldnew, "{"+name+"}", value)
	}
	return strings.NewReplacer(oldnew...).Replace(s)
}

func (l *Locale) Gettext(msgid string) string {
	return l.Get(msgid)
}

func (l *Locale) NGettext(msgid, msgidPlural string, n uint64) string {
	return l.Get(msgid, Plural(msgidPlural), Count(n))
}

func (l *Locale) PGettext(msgctxt, msgid string) string {
	return l.Get(msgid, Context(msgctxt))
}

func (l *Locale) PNGettext(msgctxt, msgid, msgidPlural string, n uint64) string {
	return l.Get(msgid, Context(msgctxt), Plural(msgidPlural), Count(n))
}
