package l10n

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	// DefaultPattern is the catalog file name pattern of a store.
	DefaultPattern = "{language}.mo"
	// DefaultTerminologyRoot is where hosts install the iso-codes
	// terminology catalogs.
	DefaultTerminologyRoot = "/usr/share/locale"
	// DefaultCacheSize bounds the number of Get results a store memoizes.
	DefaultCacheSize = 128
)

// Config describes a catalog store and the locale support it relies on.
type Config struct {
	Root              string `env:"L10N_ROOT"`
	Pattern           string `env:"L10N_PATTERN" envDefault:"{language}.mo"`
	TerminologyRoot   string `env:"L10N_TERMINOLOGY_ROOT" envDefault:"/usr/share/locale"`
	CacheSize         int    `env:"L10N_CACHE_SIZE" envDefault:"128"`
	LocaleDefinitions string `env:"L10N_LOCALE_DEFINITIONS"`
}

// ConfigFromEnv reads the configuration from the environment.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (cfg Config) validate() error {
	if cfg.Root == "" {
		return errors.New("catalog root is not set")
	}
	if cfg.CacheSize < 0 {
		return fmt.Errorf("%w: negative cache size %d", ErrInvalidArgument, cfg.CacheSize)
	}
	return nil
}

// Open builds the store described by cfg, installing its extra locale
// definitions first.
func Open(cfg Config, opts ...Option) (*Locales, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.LocaleDefinitions != "" {
		if err := InstallLocaleDefinitions(cfg.LocaleDefinitions); err != nil {
			return nil, err
		}
	}
	base := []Option{WithCacheSize(cfg.CacheSize)}
	if cfg.Pattern != "" {
		base = append(base, WithPattern(cfg.Pattern))
	}
	if cfg.TerminologyRoot != "" {
		base = append(base, WithTerminologyRoot(cfg.TerminologyRoot))
	}
	return NewLocales(cfg.Root, append(base, opts...)...), nil
}
