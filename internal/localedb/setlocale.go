package localedb

import (
	"sync/atomic"
)

// active is the process-wide locale every primitive of this package reads,
// the equivalent of the C library global locale. Callers that swap it must
// serialise themselves.
var active atomic.Pointer[Definition]

func init() {
	def, err := system.Resolve("C")
	if err != nil {
		panic(err)
	}
	active.Store(def)
}

// Setlocale makes the named locale active and returns its canonical name.
// An empty name only queries the active locale.
func Setlocale(name string) (string, error) {
	if name == "" {
		return Current().Name, nil
	}
	def, err := system.Resolve(name)
	if err != nil {
		return "", err
	}
	active.Store(def)
	return def.Name, nil
}

// Current returns the active definition.
func Current() *Definition {
	return active.Load()
}

// Lconv holds the numeric and monetary conventions of a locale, as
// returned by localeconv(3).
type Lconv struct {
	DecimalPoint string
	ThousandsSep string
	Grouping     []int

	IntCurrSymbol   string
	CurrencySymbol  string
	MonDecimalPoint string
	MonThousandsSep string
	MonGrouping     []int
	PositiveSign    string
	NegativeSign    string
	IntFracDigits   int
	FracDigits      int
	PCsPrecedes     int
	PSepBySpace     int
	NCsPrecedes     int
	NSepBySpace     int
	PSignPosn       int
	NSignPosn       int
}

// Localeconv returns the conventions of the active locale.
func Localeconv() Lconv {
	return Current().lconv()
}

func (def *Definition) lconv() Lconv {
	m := def.Monetary
	return Lconv{
		DecimalPoint: def.Numeric.DecimalPoint,
		ThousandsSep: def.Numeric.ThousandsSep,
		Grouping:     def.Numeric.Grouping,

		IntCurrSymbol:   m.IntCurrSymbol,
		CurrencySymbol:  m.CurrencySymbol,
		MonDecimalPoint: m.MonDecimalPoint,
		MonThousandsSep: m.MonThousandsSep,
		MonGrouping:     m.MonGrouping,
		PositiveSign:    m.PositiveSign,
		NegativeSign:    m.NegativeSign,
		IntFracDigits:   *m.IntFracDigits,
		FracDigits:      *m.FracDigits,
		PCsPrecedes:     m.PCsPrecedes,
		PSepBySpace:     m.PSepBySpace,
		NCsPrecedes:     m.NCsPrecedes,
		NSepBySpace:     m.NSepBySpace,
		PSignPosn:       m.PSignPosn,
		NSignPosn:       m.NSignPosn,
	}
}

// Item names a piece of locale information, as nl_langinfo(3) does.
type Item int

const (
	DTFmt Item = iota
	DFmt
	TFmt
	TFmtAMPM
	AMStr
	PMStr

	day1   Item = 100
	abday1 Item = 200
	mon1   Item = 300
	abmon1 Item = 400
)

// Day is the item of the full name of weekday i, 0 being Sunday.
func Day(i int) Item { return day1 + Item(i) }

// Abday is the item of the abbreviated name of weekday i, 0 being Sunday.
func Abday(i int) Item { return abday1 + Item(i) }

// Mon is the item of the full name of month i, 1 being January.
func Mon(i int) Item { return mon1 + Item(i-1) }

// Abmon is the item of the abbreviated name of month i, 1 being January.
func Abmon(i int) Item { return abmon1 + Item(i-1) }

// Langinfo returns an item of the active locale, or "" for an unknown
// item.
func Langinfo(item Item) string {
	return Current().langinfo(item)
}

func (def *Definition) langinfo(item Item) string {
	t := def.Time
	switch item {
	case DTFmt:
		return t.DTFmt
	case DFmt:
		return t.DFmt
	case TFmt:
		return t.TFmt
	case TFmtAMPM:
		return t.TFmtAMPM
	case AMStr:
		return t.AMPM[0]
	case PMStr:
		return t.AMPM[1]
	}
	for _, names := range []struct {
		first Item
		items []string
	}{
		{day1, t.Day},
		{abday1, t.Abday},
		{mon1, t.Mon},
		{abmon1, t.Abmon},
	} {
		if i := int(item - names.first); i >= 0 && i < len(names.items) {
			return names.items[i]
		}
	}
	return ""
}
