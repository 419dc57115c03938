package l10n

import (
	"sync"

	"github.com/snapcore/go-l10n/internal/localedb"
)

// LocaleGuard serialises changes of the process-wide active locale. Every
// formatting method of a Locale runs inside Use.
type LocaleGuard struct {
	mu sync.Mutex
}

var defaultGuard = &LocaleGuard{}

// DefaultGuard returns the guard of the process.
func DefaultGuard() *LocaleGuard {
	return defaultGuard
}

// Use makes language the active locale, runs fn and restores the locale
// that was active before, whether fn returns an error or panics. No other
// caller of Use can change the active locale meanwhile. fn must not call
// Use itself.
func (g *LocaleGuard) Use(language string, fn func() error) (err error) {
	if language == "" {
		return &NoBackingLocaleError{}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	previous, err := localedb.Setlocale("")
	if err != nil {
		return err
	}
	if _, err := localedb.Setlocale(language); err != nil {
		return &NoBackingLocaleError{Language: language, Err: err}
	}
	defer func() {
		if _, restoreErr := localedb.Setlocale(previous); restoreErr != nil && err == nil {
			err = restoreErr
		}
	}()
	return fn()
}

// InstallLocaleDefinitions adds the locale definitions stored in dir to the
// ones the host supports. Definitions that fail to load are reported
// together; the others are installed anyway.
func InstallLocaleDefinitions(dir string) error {
	return localedb.Install(dir)
}

// SupportedLocales lists the locale definitions of the host.
func SupportedLocales() []string {
	return localedb.System().Names()
}
