package l10n

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for out of range arguments, such as an
	// unknown Sunday offset.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnsupportedFormat is returned for catalog files of a format no
	// codec handles.
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
)

// MalformedCatalogError is returned when a compiled catalog cannot be
// parsed.
type MalformedCatalogError struct {
	Path   string
	Reason string
}

func (e *MalformedCatalogError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("malformed message catalog: %s", e.Reason)
	}
	return fmt.Sprintf("malformed message catalog %s: %s", e.Path, e.Reason)
}

// NoBackingLocaleError is returned by the formatting methods of a Locale
// whose language the host does not support.
type NoBackingLocaleError struct {
	Language string
	Err      error
}

func (e *NoBackingLocaleError) Error() string {
	if e.Language == "" {
		return "no backing locale: locale has no language"
	}
	if e.Err == nil {
		return fmt.Sprintf("no backing locale for %q", e.Language)
	}
	return fmt.Sprintf("no backing locale for %q: %v", e.Language, e.Err)
}

func (e *NoBackingLocaleError) Unwrap() error {
	return e.Err
}

// LanguageNotFoundError is returned by Locales.Lookup when no catalog
// exists for a language.
type LanguageNotFoundError struct {
	Language string
}

func (e *LanguageNotFoundError) Error() string {
	return fmt.Sprintf("no catalog for language %q", e.Language)
}

// FormatParseError is returned when a string does not follow the numeric
// conventions of a locale.
type FormatParseError struct {
	Input string
	Err   error
}

func (e *FormatParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %v", e.Input, e.Err)
}

func (e *FormatParseError) Unwrap() error {
	return e.Err
}
