package localedb

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// CharMax marks a numeric convention as unavailable, as CHAR_MAX does in
// struct lconv.
const CharMax = 127

// Definition is one locale of the database: the LC_TIME, LC_NUMERIC and
// LC_MONETARY categories of a glibc locale source.
type Definition struct {
	Name     string              `yaml:"name"`
	Time     TimeConventions     `yaml:"lc_time"`
	Numeric  NumericConventions  `yaml:"lc_numeric"`
	Monetary MonetaryConventions `yaml:"lc_monetary"`
}

// TimeConventions holds the LC_TIME names and formats.
type TimeConventions struct {
	Abday    []string `yaml:"abday"`
	Day      []string `yaml:"day"`
	Abmon    []string `yaml:"abmon"`
	Mon      []string `yaml:"mon"`
	AMPM     []string `yaml:"am_pm"`
	DTFmt    string   `yaml:"d_t_fmt"`
	DFmt     string   `yaml:"d_fmt"`
	TFmt     string   `yaml:"t_fmt"`
	TFmtAMPM string   `yaml:"t_fmt_ampm"`
}

// NumericConventions mirrors the numeric half of struct lconv.
type NumericConventions struct {
	DecimalPoint string `yaml:"decimal_point"`
	ThousandsSep string `yaml:"thousands_sep"`
	Grouping     []int  `yaml:"grouping"`
}

// MonetaryConventions mirrors the monetary half of struct lconv. Currency
// is the ISO 4217 code of the locale; when it is empty the currency of the
// locale territory is used to fill in missing symbols and digits.
type MonetaryConventions struct {
	Currency        string `yaml:"currency"`
	IntCurrSymbol   string `yaml:"int_curr_symbol"`
	CurrencySymbol  string `yaml:"currency_symbol"`
	MonDecimalPoint string `yaml:"mon_decimal_point"`
	MonThousandsSep string `yaml:"mon_thousands_sep"`
	MonGrouping     []int  `yaml:"mon_grouping"`
	PositiveSign    string `yaml:"positive_sign"`
	NegativeSign    string `yaml:"negative_sign"`
	IntFracDigits   *int   `yaml:"int_frac_digits"`
	FracDigits      *int   `yaml:"frac_digits"`
	PCsPrecedes     int    `yaml:"p_cs_precedes"`
	PSepBySpace     int    `yaml:"p_sep_by_space"`
	NCsPrecedes     int    `yaml:"n_cs_precedes"`
	NSepBySpace     int    `yaml:"n_sep_by_space"`
	PSignPosn       int    `yaml:"p_sign_posn"`
	NSignPosn       int    `yaml:"n_sign_posn"`
}

// ParseDefinition decodes a YAML locale source and completes it.
func ParseDefinition(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, err
	}
	if err := def.validate(); err != nil {
		return nil, err
	}
	def.complete()
	return &def, nil
}

func (def *Definition) validate() error {
	if def.Name == "" {
		return fmt.Errorf("locale definition has no name")
	}
	for _, field := range []struct {
		name  string
		items []string
		count int
	}{
		{"abday", def.Time.Abday, 7},
		{"day", def.Time.Day, 7},
		{"abmon", def.Time.Abmon, 12},
		{"mon", def.Time.Mon, 12},
		{"am_pm", def.Time.AMPM, 2},
	} {
		if len(field.items) != field.count {
			return fmt.Errorf("locale %s: %s needs %d entries, got %d", def.Name, field.name, field.count, len(field.items))
		}
	}
	if def.Time.DFmt == "" || def.Time.TFmt == "" || def.Time.DTFmt == "" {
		return fmt.Errorf("locale %s: missing date or time format", def.Name)
	}
	if def.Numeric.DecimalPoint == "" {
		return fmt.Errorf("locale %s: missing decimal point", def.Name)
	}
	return nil
}

// complete fills in the monetary conventions a definition left out, using
// the numeric conventions and the CLDR currency data of the territory.
func (def *Definition) complete() {
	m := &def.Monetary
	if m.MonDecimalPoint == "" {
		m.MonDecimalPoint = def.Numeric.DecimalPoint
	}
	if m.MonThousandsSep == "" {
		m.MonThousandsSep = def.Numeric.ThousandsSep
	}
	if m.MonGrouping == nil {
		m.MonGrouping = def.Numeric.Grouping
	}

	if unit, tag, ok := def.currency(); ok {
		if m.IntCurrSymbol == "" {
			m.IntCurrSymbol = unit.String() + " "
		}
		if m.CurrencySymbol == "" {
			m.CurrencySymbol = message.NewPrinter(tag).Sprint(currency.Symbol(unit))
		}
		scale, _ := currency.Standard.Rounding(unit)
		if m.FracDigits == nil {
			m.FracDigits = &scale
		}
		if m.IntFracDigits == nil {
			m.IntFracDigits = &scale
		}
	}

	unavailable := CharMax
	if m.FracDigits == nil {
		m.FracDigits = &unavailable
	}
	if m.IntFracDigits == nil {
		m.IntFracDigits = &unavailable
	}
}

// Tag returns the BCP 47 form of the definition name, without codeset or
// modifier.
func (def *Definition) Tag() (language.Tag, error) {
	base, _, _ := splitLocaleName(def.Name)
	return language.Parse(strings.ReplaceAll(base, "_", "-"))
}

func (def *Definition) currency() (currency.Unit, language.Tag, bool) {
	tag, err := def.Tag()
	if err != nil {
		tag = language.Und
	}
	if def.Monetary.Currency != "" {
		unit, err := currency.ParseISO(def.Monetary.Currency)
		return unit, tag, err == nil
	}
	if tag == language.Und {
		return currency.Unit{}, tag, false
	}
	region, confidence := tag.Region()
	if confidence != language.Exact {
		return currency.Unit{}, tag, false
	}
	unit, ok := currency.FromRegion(region)
	return unit, tag, ok
}
