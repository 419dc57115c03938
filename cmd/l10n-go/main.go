package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/snapcore/go-l10n"
	"github.com/snapcore/go-l10n/pluralforms"
)

var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

var timeNow = time.Now

type options struct {
	Root string `short:"r" long:"root" value-name:"DIRECTORY" description:"directory of the compiled catalogs (default: $L10N_ROOT)"`

	Pattern string `short:"p" long:"pattern" value-name:"PATTERN" description:"catalog file name pattern, with a {language} placeholder (default: $L10N_PATTERN or {language}.mo)"`

	TerminologyRoot string `long:"terminology-root" value-name:"DIRECTORY" description:"directory of the country, currency and language name catalogs"`

	LocaleDefinitions string `long:"locale-definitions" value-name:"DIRECTORY" description:"install the locale definitions found in DIRECTORY"`

	EnvFile string `long:"env-file" default:".env" value-name:"FILE" description:"read environment variables from FILE, if it exists"`

	Verbose bool `short:"v" long:"verbose" description:"log what is going on"`
}

type app struct {
	opts   options
	logger l10n.Logger
}

// config reads the environment, then lets the command line override it.
func (a *app) config() (l10n.Config, error) {
	if err := godotenv.Load(a.opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return l10n.Config{}, fmt.Errorf("cannot read %s: %w", a.opts.EnvFile, err)
	}
	cfg, err := l10n.ConfigFromEnv()
	if err != nil {
		return l10n.Config{}, err
	}
	if a.opts.Root != "" {
		cfg.Root = a.opts.Root
	}
	if a.opts.Pattern != "" {
		cfg.Pattern = a.opts.Pattern
	}
	if a.opts.TerminologyRoot != "" {
		cfg.TerminologyRoot = a.opts.TerminologyRoot
	}
	if a.opts.LocaleDefinitions != "" {
		cfg.LocaleDefinitions = a.opts.LocaleDefinitions
	}
	a.logger = l10n.NewLogger()
	a.logger.SetOutput(Stderr)
	if a.opts.Verbose {
		a.logger.SetLevel(log.DebugLevel)
	} else {
		a.logger.SetLevel(log.WarnLevel)
	}
	return cfg, nil
}

func (a *app) store() (*l10n.Locales, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	return l10n.Open(cfg, l10n.WithLogger(a.logger))
}

// locale returns the catalog backed locale of a language when a store is
// configured, a bare one otherwise.
func (a *app) locale(language string) (*l10n.Locale, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	if cfg.Root == "" {
		if cfg.LocaleDefinitions != "" {
			if err := l10n.InstallLocaleDefinitions(cfg.LocaleDefinitions); err != nil {
				return nil, err
			}
		}
		return l10n.NewLocale(language, "", l10n.WithLogger(a.logger), l10n.WithTerminologyRoot(cfg.TerminologyRoot)), nil
	}
	locales, err := l10n.Open(cfg, l10n.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	if loc := locales.Get(language); loc != nil {
		return loc, nil
	}
	return l10n.NewLocale(language, "", l10n.WithLogger(a.logger), l10n.WithTerminologyRoot(cfg.TerminologyRoot)), nil
}

type cmdLanguages struct {
	app *app
}

func (c *cmdLanguages) Execute(args []string) error {
	locales, err := c.app.store()
	if err != nil {
		return err
	}
	for _, loc := range locales.Locales() {
		fmt.Fprintf(Stdout, "%s\t%s\n", loc.Language(), loc.Path())
	}
	return nil
}

type cmdGet struct {
	app *app

	Context string `short:"c" long:"context" description:"message context"`
	Plural  string `long:"plural" description:"untranslated plural text"`
	Count   int64  `short:"n" long:"count" default:"-1" description:"select the plural form for N"`

	Positional struct {
		Language string `positional-arg-name:"LANGUAGE"`
		Message  string `positional-arg-name:"MSGID"`
	} `positional-args:"yes" required:"yes"`
}

func (c *cmdGet) Execute(args []string) error {
	locales, err := c.app.store()
	if err != nil {
		return err
	}
	loc, err := locales.Lookup(c.Positional.Language)
	if err != nil {
		return err
	}
	var opts []l10n.GetOption
	if c.Context != "" {
		opts = append(opts, l10n.Context(c.Context))
	}
	if c.Plural != "" {
		opts = append(opts, l10n.Plural(c.Plural))
	}
	if c.Count >= 0 {
		opts = append(opts, l10n.Count(uint64(c.Count)))
	}
	fmt.Fprintln(Stdout, loc.Get(c.Positional.Message, opts...))
	return nil
}

type cmdFormat struct {
	app *app

	Grouping      bool `short:"g" long:"grouping" description:"group digits"`
	Precision     int  `long:"precision" default:"6" description:"digits after the decimal point"`
	Strip         bool `long:"strip" description:"strip trailing zeros"`
	International bool `long:"international" description:"use the international currency symbol"`
	Abbreviate    bool `long:"abbreviate" description:"abbreviate month and day names"`

	Positional struct {
		Language string `positional-arg-name:"LANGUAGE" required:"yes"`
		Kind     string `positional-arg-name:"KIND" required:"yes" description:"date, time, datetime, month, dow, number, integer, currency, country, language-name or currency-name"`
		Value    string `positional-arg-name:"VALUE"`
	} `positional-args:"yes"`
}

func (c *cmdFormat) parseTime() (time.Time, error) {
	if c.Positional.Value == "" {
		return timeNow(), nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, c.Positional.Value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q", c.Positional.Value)
}

func (c *cmdFormat) Execute(args []string) error {
	loc, err := c.app.locale(c.Positional.Language)
	if err != nil {
		return err
	}
	out, err := c.format(loc)
	if err != nil {
		return err
	}
	fmt.Fprintln(Stdout, out)
	return nil
}

func (c *cmdFormat) format(loc *l10n.Locale) (string, error) {
	value := c.Positional.Value
	switch c.Positional.Kind {
	case "date", "time", "datetime":
		t, err := c.parseTime()
		if err != nil {
			return "", err
		}
		switch c.Positional.Kind {
		case "date":
			return loc.FormatDate(t)
		case "time":
			return loc.FormatTime(t)
		}
		return loc.FormatDateTime(t)
	case "month", "dow":
		n, err := strconv.Atoi(value)
		if err != nil {
			return "", fmt.Errorf("cannot parse %s %q: %w", c.Positional.Kind, value, err)
		}
		if c.Positional.Kind == "month" {
			return loc.FormatMonth(n, c.Abbreviate)
		}
		return loc.FormatDOW(n, c.Abbreviate, 0)
	case "number", "currency":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return "", fmt.Errorf("cannot parse number %q: %w", value, err)
		}
		if c.Positional.Kind == "currency" {
			return loc.FormatCurrency(v, l10n.CurrencyOptions{Grouping: c.Grouping, International: c.International})
		}
		return loc.FormatNumber(v, l10n.NumberOptions{Grouping: c.Grouping, Precision: c.Precision, StripTrailingZeros: c.Strip})
	case "integer":
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return "", fmt.Errorf("cannot parse integer %q: %w", value, err)
		}
		return loc.FormatInteger(v, c.Grouping)
	case "country":
		return loc.TranslateCountry(value), nil
	case "currency-name":
		return loc.TranslateCurrency(value), nil
	case "language-name":
		return loc.TranslateLanguage(value), nil
	}
	return "", fmt.Errorf("unknown kind %q", c.Positional.Kind)
}

type cmdPluralForms struct {
	Positional struct {
		Language string `positional-arg-name:"LANGUAGE"`
	} `positional-args:"yes" required:"yes"`
}

func (c *cmdPluralForms) Execute(args []string) error {
	fmt.Fprintln(Stdout, pluralforms.ForLanguage(c.Positional.Language))
	return nil
}

type cmdSystem struct {
	app *app
}

func (c *cmdSystem) Execute(args []string) error {
	language := l10n.SystemLanguage()
	if language == "" {
		return errors.New("no system language set")
	}
	fmt.Fprintln(Stdout, language)
	cfg, err := c.app.config()
	if err != nil || cfg.Root == "" {
		return err
	}
	locales, err := l10n.Open(cfg, l10n.WithLogger(c.app.logger))
	if err != nil {
		return err
	}
	if loc := locales.SystemLocale(); loc != nil {
		fmt.Fprintln(Stdout, loc.Path())
	}
	return nil
}

func newParser() *flags.Parser {
	a := &app{}
	parser := flags.NewParser(&a.opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.ShortDescription = "Look up translations and format values for a language"

	for _, cmd := range []struct {
		name, short, long string
		data              interface{}
	}{
		{"languages", "List the catalogs of the store", "List the language and path of every catalog found under the root.", &cmdLanguages{app: a}},
		{"get", "Translate a message", "Print the translation of MSGID for LANGUAGE, or MSGID itself when there is none.", &cmdGet{app: a}},
		{"format", "Format a value the way a language does", "Format VALUE as KIND for LANGUAGE using the locale definitions of the host.", &cmdFormat{app: a}},
		{"plural-forms", "Print the plural rule of a language", "Print the Plural-Forms header for LANGUAGE.", &cmdPluralForms{}},
		{"system", "Print the language of the user", "Print the language of the user and, with a root, the path of its catalog.", &cmdSystem{app: a}},
	} {
		if _, err := parser.AddCommand(cmd.name, cmd.short, cmd.long, cmd.data); err != nil {
			panic(err)
		}
	}
	return parser
}

func run(args []string) error {
	_, err := newParser().ParseArgs(args)
	return err
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(Stdout, flagsErr.Message)
			os.Exit(0)
		}
		fmt.Fprintf(Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
