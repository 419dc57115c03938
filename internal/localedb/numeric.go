package localedb

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrCurrencyUnavailable is returned by Currency for locales without
	// monetary conventions, such as C.
	ErrCurrencyUnavailable = errors.New("currency formatting not possible using the active locale")
	// ErrMismatch is returned when a string does not follow the numeric
	// conventions of the active locale.
	ErrMismatch = errors.New("number does not match the locale conventions")
)

// NumberFormat describes a printf style conversion of a single number.
type NumberFormat struct {
	// Verb is 'f', 'e' or 'g'.
	Verb      byte
	Precision int
	Grouping  bool
	Monetary  bool
	// StripZeros drops trailing zeros of the fraction, and the decimal
	// point when nothing is left after it.
	StripZeros bool
}

// FormatFloat formats value like printf with the given conversion, then
// applies the decimal point and, on request, the digit grouping of the
// active locale.
func FormatFloat(value float64, f NumberFormat) string {
	verb := f.Verb
	if verb == 0 {
		verb = 'f'
	}
	s := strconv.FormatFloat(value, verb, f.Precision, 64)
	if f.StripZeros {
		s = stripZeros(s)
	}
	return Current().lconv().localize(s, f.Grouping, f.Monetary)
}

// FormatInt formats an integer, grouping its digits on request.
func FormatInt(value int64, grouping, monetary bool) string {
	return Current().lconv().localize(strconv.FormatInt(value, 10), grouping, monetary)
}

// Currency formats value as an amount of the local currency the way the
// monetary conventions of the active locale say, optionally with the
// international currency symbol.
func Currency(value float64, symbol, grouping, international bool) (string, error) {
	conv := Localeconv()
	digits := conv.FracDigits
	if international {
		digits = conv.IntFracDigits
	}
	if digits == CharMax {
		return "", ErrCurrencyUnavailable
	}

	negative := value < 0
	s := conv.localize(strconv.FormatFloat(math.Abs(value), 'f', digits, 64), grouping, true)
	// '<' and '>' mark the boundaries of the quantity for the sign
	// positions 3 and 4
	s = "<" + s + ">"

	precedes, separated := conv.PCsPrecedes, conv.PSepBySpace
	signPosn, sign := conv.PSignPosn, conv.PositiveSign
	if negative {
		precedes, separated = conv.NCsPrecedes, conv.NSepBySpace
		signPosn, sign = conv.NSignPosn, conv.NegativeSign
	}

	if symbol {
		smb := conv.CurrencySymbol
		if international {
			smb = conv.IntCurrSymbol
		}
		space := ""
		if separated != 0 {
			space = " "
		}
		if precedes != 0 {
			s = smb + space + s
		} else {
			if international {
				smb = strings.TrimSuffix(smb, " ")
			}
			s = s + space + smb
		}
	}

	switch signPosn {
	case 0:
		s = "(" + s + ")"
	case 1:
		s = sign + s
	case 2:
		s = s + sign
	case 3:
		s = strings.Replace(s, "<", sign, 1)
	case 4:
		s = strings.Replace(s, ">", sign, 1)
	default:
		s = sign + s
	}
	return strings.NewReplacer("<", "", ">", "").Replace(s), nil
}

// Atof parses a number written with the conventions of the active locale.
func Atof(s string) (float64, error) {
	plain, err := Localeconv().delocalize(s)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(plain, 64)
}

// Atoi parses an integer written with the conventions of the active
// locale.
func Atoi(s string) (int64, error) {
	plain, err := Localeconv().delocalize(s)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(plain, 10, 64)
}

func stripZeros(s string) string {
	mantissa, exponent := s, ""
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa, exponent = s[:i], s[i:]
	}
	if strings.Contains(mantissa, ".") {
		mantissa = strings.TrimRight(mantissa, "0")
		mantissa = strings.TrimSuffix(mantissa, ".")
	}
	return mantissa + exponent
}

// localize turns a number formatted in the C locale into the conventions of
// conv.
func (conv Lconv) localize(s string, grouping, monetary bool) string {
	decimalPoint, thousandsSep, sizes := conv.DecimalPoint, conv.ThousandsSep, conv.Grouping
	if monetary {
		decimalPoint, thousandsSep, sizes = conv.MonDecimalPoint, conv.MonThousandsSep, conv.MonGrouping
	}
	integer, fraction, hasFraction := strings.Cut(s, ".")
	if grouping {
		integer = group(integer, thousandsSep, sizes)
	}
	if !hasFraction {
		return integer
	}
	return integer + decimalPoint + fraction
}

// delocalize rewrites s in the C locale conventions, rejecting separators
// the locale does not use and misplaced digit groups.
func (conv Lconv) delocalize(s string) (string, error) {
	integer, fraction := s, ""
	hasFraction := false
	if conv.DecimalPoint != "" {
		integer, fraction, hasFraction = strings.Cut(s, conv.DecimalPoint)
	}
	if conv.ThousandsSep != "" && strings.Contains(integer, conv.ThousandsSep) {
		if !validGroups(integer, conv.ThousandsSep, conv.Grouping) {
			return "", fmt.Errorf("%w: misplaced %q in %q", ErrMismatch, conv.ThousandsSep, s)
		}
		integer = strings.ReplaceAll(integer, conv.ThousandsSep, "")
	}
	if conv.DecimalPoint != "." && strings.Contains(integer+fraction, ".") {
		return "", fmt.Errorf("%w: unexpected '.' in %q", ErrMismatch, s)
	}
	if !hasFraction {
		return integer, nil
	}
	return integer + "." + fraction, nil
}

// groupSizes iterates over a grouping rule: a trailing or zero
// entry repeats the previous size, CharMax or a negative entry ends the
// grouping.
func groupSizes(grouping []int) func() (int, bool) {
	i, last := 0, 0
	return func() (int, bool) {
		if i >= len(grouping) || grouping[i] == 0 {
			return last, last > 0
		}
		size := grouping[i]
		if size < 0 || size >= CharMax {
			last = 0
			return 0, false
		}
		i++
		last = size
		return size, true
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// group inserts sep between the digit groups of the integer s, from the
// right. Anything left of the digits, like a sign, is kept in front.
func group(s, sep string, grouping []int) string {
	next := groupSizes(grouping)
	var groups []string
	left := ""
	for {
		size, ok := next()
		if !ok {
			break
		}
		if s == "" || !isDigit(s[len(s)-1]) {
			left, s = s, ""
			break
		}
		if size >= len(s) {
			groups = append(groups, s)
			s = ""
			continue
		}
		groups = append(groups, s[len(s)-size:])
		s = s[:len(s)-size]
	}
	if s != "" {
		groups = append(groups, s)
	}
	for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
		groups[i], groups[j] = groups[j], groups[i]
	}
	return left + strings.Join(groups, sep)
}

// validGroups checks that the separators of a grouped integer sit where
// group would have put them.
func validGroups(s, sep string, grouping []int) bool {
	s = strings.TrimLeft(s, "+-")
	parts := strings.Split(s, sep)
	next := groupSizes(grouping)
	for i := len(parts) - 1; i > 0; i-- {
		size, ok := next()
		if !ok || len(parts[i]) != size {
			return false
		}
	}
	size, ok := next()
	return parts[0] != "" && (!ok || len(parts[0]) <= size)
}
