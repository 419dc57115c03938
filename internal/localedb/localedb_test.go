package localedb

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	. "gopkg.in/check.v1"
)

func Test(t *testing.T) {
	TestingT(t)
}

type localedbSuite struct {
	previous string
}

var _ = Suite(&localedbSuite{})

func (s *localedbSuite) SetUpTest(c *C) {
	name, err := Setlocale("")
	c.Assert(err, IsNil)
	s.previous = name
}

func (s *localedbSuite) TearDownTest(c *C) {
	_, err := Setlocale(s.previous)
	c.Assert(err, IsNil)
}

func (s *localedbSuite) use(c *C, name string) {
	_, err := Setlocale(name)
	c.Assert(err, IsNil)
}

func (s *localedbSuite) TestParseLocaleAlias(c *C) {
	buf := bytes.NewBufferString(`
# Comment
      # also a comment
one-word-ignored
spanish         es_ES.ISO-8859-1
Swedish         sv_SE.ISO-8859-1
`)
	aliases, err := parseLocaleAlias(buf)
	c.Assert(err, IsNil)
	c.Check(aliases, DeepEquals, map[string]string{
		"spanish": "es_ES.ISO-8859-1",
		"swedish": "sv_SE.ISO-8859-1",
	})
}

func (s *localedbSuite) TestNormalizeCodeset(c *C) {
	c.Check(normalizeCodeset(".UTF-8"), Equals, ".utf8")
	c.Check(normalizeCodeset(".utf8"), Equals, ".utf8")

	c.Check(normalizeCodeset(".ISO-8859-1"), Equals, ".iso88591")
	c.Check(normalizeCodeset(".iso-8859-1"), Equals, ".iso88591")
	c.Check(normalizeCodeset(".iso88591"), Equals, ".iso88591")
	c.Check(normalizeCodeset(".8859-1"), Equals, ".iso88591")
	c.Check(normalizeCodeset(".88591"), Equals, ".iso88591")
}

func (s *localedbSuite) TestCanonicalName(c *C) {
	c.Check(canonicalName("ru-ru"), Equals, "ru_RU")
	c.Check(canonicalName("EN_us"), Equals, "en_US")
	c.Check(canonicalName("es_419"), Equals, "es_419")
	c.Check(canonicalName("sr_Latn_RS"), Equals, "sr_Latn_RS")
	c.Check(canonicalName("c"), Equals, "C")
	c.Check(canonicalName(""), Equals, "")
}

func (s *localedbSuite) TestResolve(c *C) {
	for _, test := range []struct {
		name, expected string
	}{
		{"ru", "ru_RU"},
		{"ru_RU", "ru_RU"},
		{"ru-RU", "ru_RU"},
		{"ru_RU.UTF-8", "ru_RU"},
		{"en", "en_US"},
		{"en_UK", "en_GB"},
		{"british", "en_GB"},
		{"hu", "hu_HU"},
		{"nl", "nl_NL"},
		{"C", "C"},
		{"C.UTF-8", "C"},
		{"POSIX", "C"},
		{"de_DE@euro", "de_DE"},
	} {
		def, err := System().Resolve(test.name)
		if !c.Check(err, IsNil, Commentf("locale %s", test.name)) {
			continue
		}
		c.Check(def.Name, Equals, test.expected, Commentf("locale %s", test.name))
	}

	for _, name := range []string{"", "xx", "xx_YY", "en_US.ISO-8859-1", "en_ZZ"} {
		_, err := System().Resolve(name)
		c.Check(errors.Is(err, ErrUnknownLocale), Equals, true, Commentf("locale %q", name))
	}
}

func (s *localedbSuite) TestDerivedMonetary(c *C) {
	de, err := System().Resolve("de_DE")
	c.Assert(err, IsNil)
	c.Check(de.Monetary.IntCurrSymbol, Equals, "EUR ")
	c.Check(de.Monetary.CurrencySymbol, Equals, "€")
	c.Check(*de.Monetary.FracDigits, Equals, 2)
	c.Check(de.Monetary.MonDecimalPoint, Equals, ",")
	c.Check(de.Monetary.MonThousandsSep, Equals, ".")

	ja, err := System().Resolve("ja_JP")
	c.Assert(err, IsNil)
	c.Check(ja.Monetary.IntCurrSymbol, Equals, "JPY ")
	c.Check(*ja.Monetary.FracDigits, Equals, 0)
	c.Check(*ja.Monetary.IntFracDigits, Equals, 0)

	posix, err := System().Resolve("C")
	c.Assert(err, IsNil)
	c.Check(posix.Monetary.CurrencySymbol, Equals, "")
	c.Check(*posix.Monetary.FracDigits, Equals, CharMax)
}

const validDefinition = `
name: eo_XX
lc_time:
  abday: [di, lu, ma, me, ĵa, ve, sa]
  day: [dimanĉo, lundo, mardo, merkredo, ĵaŭdo, vendredo, sabato]
  abmon: [jan, feb, mar, apr, maj, jun, jul, aŭg, sep, okt, nov, dec]
  mon: [januaro, februaro, marto, aprilo, majo, junio, julio, aŭgusto, septembro, oktobro, novembro, decembro]
  am_pm: [atm, ptm]
  d_t_fmt: "%A %d %B %Y %T"
  d_fmt: "%Y-%m-%d"
  t_fmt: "%T"
lc_numeric:
  decimal_point: ","
  thousands_sep: " "
  grouping: [3]
lc_monetary:
  currency: EUR
  currency_symbol: "€"
  negative_sign: "-"
  p_cs_precedes: 1
  n_cs_precedes: 1
  n_sign_posn: 1
`

func (s *localedbSuite) TestLoadDir(c *C) {
	dir := c.MkDir()
	c.Assert(os.WriteFile(filepath.Join(dir, "eo_XX.yaml"), []byte(validDefinition), 0644), IsNil)
	c.Assert(os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: [1, 2"), 0644), IsNil)
	c.Assert(os.WriteFile(filepath.Join(dir, "short.yaml"), []byte("name: xx_YY\nlc_time:\n  abday: [a]\n"), 0644), IsNil)
	c.Assert(os.WriteFile(filepath.Join(dir, "locale.alias"), []byte("esperanto eo_XX.UTF-8\n"), 0644), IsNil)
	c.Assert(os.WriteFile(filepath.Join(dir, "README"), []byte("ignored"), 0644), IsNil)

	db := NewDatabase()
	err := db.LoadDir(dir)
	c.Assert(err, NotNil)
	var merr *multierror.Error
	c.Assert(errors.As(err, &merr), Equals, true)
	c.Check(merr.Errors, HasLen, 2)

	c.Check(db.Names(), DeepEquals, []string{"eo_XX"})
	def, err := db.Resolve("Esperanto")
	c.Assert(err, IsNil)
	c.Check(def.Name, Equals, "eo_XX")
	c.Check(def.Monetary.IntCurrSymbol, Equals, "EUR ")
	c.Check(*def.Monetary.FracDigits, Equals, 2)

	_, err = db.Resolve("en_US")
	c.Check(errors.Is(err, ErrUnknownLocale), Equals, true)
}

func (s *localedbSuite) TestModifier(c *C) {
	latin := strings.Replace(validDefinition, "name: eo_XX", "name: sr_RS@latin", 1)
	def, err := ParseDefinition([]byte(latin))
	c.Assert(err, IsNil)
	c.Check(def.Monetary.IntCurrSymbol, Equals, "EUR ")

	db := NewDatabase()
	db.Add(def)
	c.Check(db.Names(), DeepEquals, []string{"sr_RS@latin"})

	for _, name := range []string{"sr_RS@latin", "sr-rs.UTF-8@latin"} {
		got, err := db.Resolve(name)
		if c.Check(err, IsNil, Commentf("locale %s", name)) {
			c.Check(got, Equals, def)
		}
	}
	for _, name := range []string{"sr_RS", "sr_RS@cyrillic"} {
		_, err := db.Resolve(name)
		c.Check(errors.Is(err, ErrUnknownLocale), Equals, true, Commentf("locale %s", name))
	}

	// without a definition of its own the modifier is ignored
	plain, err := ParseDefinition([]byte(strings.Replace(validDefinition, "name: eo_XX", "name: sr_RS", 1)))
	c.Assert(err, IsNil)
	db.Add(plain)
	got, err := db.Resolve("sr_RS@cyrillic")
	c.Assert(err, IsNil)
	c.Check(got, Equals, plain)
	got, err = db.Resolve("sr_RS@latin")
	c.Assert(err, IsNil)
	c.Check(got, Equals, def)
}

func (s *localedbSuite) TestSetlocale(c *C) {
	name, err := Setlocale("ru")
	c.Assert(err, IsNil)
	c.Check(name, Equals, "ru_RU")
	c.Check(Current().Name, Equals, "ru_RU")

	name, err = Setlocale("")
	c.Assert(err, IsNil)
	c.Check(name, Equals, "ru_RU")

	_, err = Setlocale("xx_YY")
	c.Check(errors.Is(err, ErrUnknownLocale), Equals, true)
	// a failed call leaves the active locale alone
	c.Check(Current().Name, Equals, "ru_RU")
}

func (s *localedbSuite) TestLanginfo(c *C) {
	s.use(c, "ru_RU")
	c.Check(Langinfo(Mon(11)), Equals, "ноября")
	c.Check(Langinfo(Abmon(1)), Equals, "янв")
	c.Check(Langinfo(Day(1)), Equals, "Понедельник")
	c.Check(Langinfo(Abday(1)), Equals, "Пн")
	c.Check(Langinfo(DFmt), Equals, "%d.%m.%Y")
	c.Check(Langinfo(Item(999)), Equals, "")

	s.use(c, "en_US")
	c.Check(Langinfo(AMStr), Equals, "AM")
	c.Check(Langinfo(PMStr), Equals, "PM")
	c.Check(Langinfo(Day(0)), Equals, "Sunday")
	c.Check(Langinfo(Mon(12)), Equals, "December")
}

func (s *localedbSuite) TestStrftime(c *C) {
	t := time.Date(2021, time.December, 31, 23, 34, 56, 0, time.UTC)
	for _, test := range []struct {
		locale, format, expected string
	}{
		{"C", "%c", "Fri Dec 31 23:34:56 2021"},
		{"C", "%D %F %R", "12/31/21 2021-12-31 23:34"},
		{"C", "%j %u %w %C %y", "365 5 5 20 21"},
		{"C", "%I %l %p %P", "11 11 PM pm"},
		{"C", "%e|%k", "31|23"},
		{"C", "100%% %q", "100% %q"},
		{"C", "%z %Z %s", "+0000 UTC 1640993696"},
		{"C", "trailing %", "trailing %"},
		{"en_US", "%x", "12/31/2021"},
		{"en_US", "%X", "11:34:56 PM"},
		{"en_US", "%c", "Fri 31 Dec 2021 11:34:56 PM UTC"},
		{"ru_RU", "%x %X", "31.12.2021 23:34:56"},
		{"ru_RU", "%A, %d %B", "Пятница, 31 декабря"},
		{"ru_RU", "%r", "11:34:56 "},
		{"hu_HU", "%x", "2021-12-31"},
		{"nl_NL", "%x", "31-12-21"},
		{"en_GB", "%x %X", "31/12/21 23:34:56"},
		{"ja_JP", "%x", "2021年12月31日"},
	} {
		s.use(c, test.locale)
		c.Check(Strftime(test.format, t), Equals, test.expected, Commentf("%s %q", test.locale, test.format))
	}

	morning := time.Date(2021, time.January, 2, 0, 5, 0, 0, time.UTC)
	s.use(c, "C")
	c.Check(Strftime("%I:%M %p %e", morning), Equals, "12:05 AM  2")
}

func (s *localedbSuite) TestGroup(c *C) {
	for _, test := range []struct {
		in       string
		grouping []int
		expected string
	}{
		{"1234567", []int{3}, "1,234,567"},
		{"-16723", []int{3}, "-16,723"},
		{"-723", []int{3}, "-723"},
		{"123", []int{3}, "123"},
		{"", []int{3}, ""},
		{"1234567", nil, "1234567"},
		{"1234567", []int{3, 2}, "12,34,567"},
		{"1234567", []int{3, 0}, "1,234,567"},
		{"1234567", []int{3, CharMax}, "1234,567"},
		{"1234567", []int{3, -1}, "1234,567"},
	} {
		c.Check(group(test.in, ",", test.grouping), Equals, test.expected, Commentf("%q %v", test.in, test.grouping))
	}
}

func (s *localedbSuite) TestFormatNumbers(c *C) {
	s.use(c, "ru_RU")
	c.Check(FormatInt(-16723, true, false), Equals, "-16\u202f723")
	c.Check(FormatInt(-16723, false, false), Equals, "-16723")
	c.Check(FormatFloat(-16723.34, NumberFormat{Precision: 2, Grouping: true}), Equals, "-16\u202f723,34")

	s.use(c, "en_US")
	c.Check(FormatFloat(1234.5, NumberFormat{Precision: 3}), Equals, "1234.500")
	c.Check(FormatFloat(1234.5, NumberFormat{Precision: 3, StripZeros: true, Grouping: true}), Equals, "1,234.5")
	c.Check(FormatFloat(1234, NumberFormat{Precision: 2, StripZeros: true}), Equals, "1234")
	c.Check(FormatFloat(12345, NumberFormat{Verb: 'e', Precision: 4}), Equals, "1.2345e+04")
	c.Check(FormatFloat(12000, NumberFormat{Verb: 'e', Precision: 4, StripZeros: true}), Equals, "1.2e+04")

	s.use(c, "hu_HU")
	c.Check(FormatFloat(12345.5, NumberFormat{Verb: 'e', Precision: 2}), Equals, "1,23e+04")
	c.Check(FormatFloat(1234567.891, NumberFormat{Precision: 2, Grouping: true, Monetary: true}), Equals, "1.234.567,89")
}

func (s *localedbSuite) TestCurrency(c *C) {
	for _, test := range []struct {
		locale   string
		expected string
	}{
		{"ru_RU", "-16,00 ₽"},
		{"en_US", "-$16.00"},
		{"en_GB", "-£16.00"},
		{"hu_HU", "-16,00 Ft"},
		{"nl_NL", "€ 16,00-"},
		{"fa_IR", "-16 ریال"},
		{"de_DE", "-16,00 €"},
	} {
		s.use(c, test.locale)
		out, err := Currency(-16, true, false, false)
		c.Check(err, IsNil)
		c.Check(out, Equals, test.expected, Commentf("locale %s", test.locale))
	}

	s.use(c, "en_US")
	out, err := Currency(1234.5, true, true, false)
	c.Assert(err, IsNil)
	c.Check(out, Equals, "$1,234.50")
	out, err = Currency(1234.5, true, false, true)
	c.Assert(err, IsNil)
	c.Check(out, Equals, "USD 1234.50")
	out, err = Currency(1234.5, false, false, false)
	c.Assert(err, IsNil)
	c.Check(out, Equals, "1234.50")

	s.use(c, "ru_RU")
	out, err = Currency(-5, true, false, true)
	c.Assert(err, IsNil)
	c.Check(out, Equals, "-5,00 RUB")

	s.use(c, "C")
	_, err = Currency(1, true, false, false)
	c.Check(err, Equals, ErrCurrencyUnavailable)
}

func (s *localedbSuite) TestAtof(c *C) {
	for _, test := range []struct {
		locale, in string
		expected   float64
	}{
		{"ru_RU", "-16\u202f723,34", -16723.34},
		{"ru_RU", "0,5", 0.5},
		{"en_US", "-16,723.34", -16723.34},
		{"en_US", "1,234,567", 1234567},
		{"hu_HU", "-16.723,34", -16723.34},
		{"C", "12.5", 12.5},
	} {
		s.use(c, test.locale)
		v, err := Atof(test.in)
		c.Check(err, IsNil, Commentf("%s %q", test.locale, test.in))
		c.Check(v, Equals, test.expected, Commentf("%s %q", test.locale, test.in))
	}

	for _, test := range []struct {
		locale, in string
	}{
		{"ru_RU", "16.5"},
		{"en_US", "1,2,3"},
		{"en_US", "16,5"},
		{"en_US", ",123"},
		{"hu_HU", "1.23,4"},
	} {
		s.use(c, test.locale)
		_, err := Atof(test.in)
		c.Check(errors.Is(err, ErrMismatch), Equals, true, Commentf("%s %q", test.locale, test.in))
	}

	s.use(c, "en_US")
	_, err := Atof("twelve")
	c.Check(err, NotNil)
}

func (s *localedbSuite) TestAtoi(c *C) {
	s.use(c, "ru_RU")
	v, err := Atoi("-16\u202f723")
	c.Assert(err, IsNil)
	c.Check(v, Equals, int64(-16723))

	_, err = Atoi("16,5")
	c.Check(err, NotNil)

	s.use(c, "nl_NL")
	v, err = Atoi("-16.723")
	c.Assert(err, IsNil)
	c.Check(v, Equals, int64(-16723))
}
