package l10n

import (
	"fmt"
	"time"

	"github.com/snapcore/go-l10n/internal/localedb"
)

// DefaultPrecision is the number of fraction digits printf uses when it is
// given none.
const DefaultPrecision = 6

// CurrencyOptions controls FormatCurrency.
type CurrencyOptions struct {
	// OmitSymbol leaves the currency symbol out.
	OmitSymbol bool
	Grouping   bool
	// International uses the ISO 4217 code, like "EUR", as the symbol.
	International bool
}

// NumberOptions controls FormatNumber.
type NumberOptions struct {
	Grouping bool
	// Monetary uses the separators and grouping of amounts of money.
	Monetary bool
	// Precision is the number of digits after the decimal point. A
	// negative precision uses as many digits as needed to represent the
	// value exactly.
	Precision          int
	StripTrailingZeros bool
	// Exponential uses scientific notation.
	Exponential bool
}

func (l *Locale) use(fn func() error) error {
	return l.guard.Use(l.Language(), fn)
}

func (l *Locale) strftime(format localedb.Item, t time.Time) (string, error) {
	var out string
	err := l.use(func() error {
		out = localedb.Strftime(localedb.Langinfo(format), t)
		return nil
	})
	return out, err
}

// FormatDate formats the date part of t.
func (l *Locale) FormatDate(t time.Time) (string, error) {
	return l.strftime(localedb.DFmt, t)
}

// FormatTime formats the time of day of t.
func (l *Locale) FormatTime(t time.Time) (string, error) {
	return l.strftime(localedb.TFmt, t)
}

// FormatDateTime formats both the date and the time of t.
func (l *Locale) FormatDateTime(t time.Time) (string, error) {
	return l.strftime(localedb.DTFmt, t)
}

// FormatMonth returns the name of month n, 1 being January.
func (l *Locale) FormatMonth(n int, abbreviate bool) (string, error) {
	if n < 1 || n > 12 {
		return "", fmt.Errorf("%w: month %d", ErrInvalidArgument, n)
	}
	item := localedb.Mon(n)
	if abbreviate {
		item = localedb.Abmon(n)
	}
	return l.langinfo(item)
}

// FormatDOW returns the name of a day of the week. sundayOffset is the
// number standing for Sunday in the numbering n follows: 0 or 7 when
// Monday is 1, 1 when Monday is 2, and 6 when Monday is 0.
func (l *Locale) FormatDOW(n int, abbreviate bool, sundayOffset int) (string, error) {
	switch sundayOffset {
	case 0, 1, 6, 7:
	default:
		return "", fmt.Errorf("%w: sunday offset %d", ErrInvalidArgument, sundayOffset)
	}
	if n < 0 || n > 7 {
		return "", fmt.Errorf("%w: day of week %d", ErrInvalidArgument, n)
	}
	weekday := ((n-sundayOffset)%7 + 7) % 7
	item := localedb.Day(weekday)
	if abbreviate {
		item = localedb.Abday(weekday)
	}
	return l.langinfo(item)
}

func (l *Locale) langinfo(item localedb.Item) (string, error) {
	var out string
	err := l.use(func() error {
		out = localedb.Langinfo(item)
		return nil
	})
	return out, err
}

func (l *Locale) localeconv() (localedb.Lconv, error) {
	var conv localedb.Lconv
	err := l.use(func() error {
		conv = localedb.Localeconv()
		return nil
	})
	return conv, err
}

// CurrencySymbol returns the local currency symbol.
func (l *Locale) CurrencySymbol() (string, error) {
	conv, err := l.localeconv()
	return conv.CurrencySymbol, err
}

// DecimalSeparator returns the separator of the fractional part of numbers.
func (l *Locale) DecimalSeparator() (string, error) {
	conv, err := l.localeconv()
	return conv.DecimalPoint, err
}

// ThousandsSeparator returns the separator of digit groups in numbers.
func (l *Locale) ThousandsSeparator() (string, error) {
	conv, err := l.localeconv()
	return conv.ThousandsSep, err
}

// FormatCurrency formats value as an amount of the local currency.
func (l *Locale) FormatCurrency(value float64, opts CurrencyOptions) (string, error) {
	var out string
	err := l.use(func() (err error) {
		out, err = localedb.Currency(value, !opts.OmitSymbol, opts.Grouping, opts.International)
		return err
	})
	return out, err
}

// FormatNumber formats a floating point value.
func (l *Locale) FormatNumber(value float64, opts NumberOptions) (string, error) {
	f := localedb.NumberFormat{
		Verb:       'f',
		Precision:  opts.Precision,
		Grouping:   opts.Grouping,
		Monetary:   opts.Monetary,
		StripZeros: opts.StripTrailingZeros,
	}
	if opts.Exponential {
		f.Verb = 'e'
	}
	if f.Precision < 0 {
		f.Precision = -1
	}
	var out string
	err := l.use(func() error {
		out = localedb.FormatFloat(value, f)
		return nil
	})
	return out, err
}

// FormatInteger formats an integer, grouping its digits on request.
func (l *Locale) FormatInteger(value int64, grouping bool) (string, error) {
	var out string
	err := l.use(func() error {
		out = localedb.FormatInt(value, grouping, false)
		return nil
	})
	return out, err
}

// ParseNumber parses a number written the way the locale writes them,
// digit grouping included.
func (l *Locale) ParseNumber(s string) (float64, error) {
	var v float64
	err := l.use(func() (err error) {
		if v, err = localedb.Atof(s); err != nil {
			return &FormatParseError{Input: s, Err: err}
		}
		return nil
	})
	return v, err
}

// ParseInteger parses an integer written the way the locale writes them.
func (l *Locale) ParseInteger(s string) (int64, error) {
	var v int64
	err := l.use(func() (err error) {
		if v, err = localedb.Atoi(s); err != nil {
			return &FormatParseError{Input: s, Err: err}
		}
		return nil
	})
	return v, err
}
