package l10n

type options struct {
	pattern         string
	cacheSize       int
	terminologyRoot string
	logger          Logger
	guard           *LocaleGuard
}

func newOptions(opts []Option) options {
	o := options{
		pattern:         DefaultPattern,
		cacheSize:       DefaultCacheSize,
		terminologyRoot: DefaultTerminologyRoot,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = NewNullLogger()
	}
	if o.guard == nil {
		o.guard = DefaultGuard()
	}
	return o
}

// Option configures a Locale or a Locales store. Options that only make
// sense for a store are ignored by NewLocale.
type Option func(*options)

// WithPattern sets the catalog file name pattern of a store. The pattern
// is relative to the store root, may contain '/' and must contain the
// {language} placeholder.
func WithPattern(pattern string) Option {
	return func(o *options) { o.pattern = pattern }
}

// WithCacheSize bounds the number of Get results a store memoizes. Zero
// disables the memo.
func WithCacheSize(size int) Option {
	return func(o *options) { o.cacheSize = size }
}

// WithTerminologyRoot sets where the country, currency and language name
// catalogs are looked up.
func WithTerminologyRoot(root string) Option {
	return func(o *options) { o.terminologyRoot = root }
}

func WithLogger(logger Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithGuard sets the guard formatting goes through. Every locale of a
// process has to share the same guard for formatting to be safe, so this is
// only useful to hand out DefaultGuard explicitly.
func WithGuard(guard *LocaleGuard) Option {
	return func(o *options) { o.guard = guard }
}
