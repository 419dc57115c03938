// Package pluralforms holds the plural rules of the languages known to the
// catalog runtime and renders them in the Plural-Forms header syntax.
package pluralforms

import (
	"fmt"
	"strconv"
	"strings"
)

// Rule selects one of Forms grammatical forms for a count.
type Rule struct {
	Forms int
	Expr  Expression
}

// Select returns the index of the form to use for n. The result is always in
// [0, Forms).
func (r Rule) Select(n uint64) int {
	i := r.Expr.Eval(n)
	if i < 0 {
		return 0
	}
	if i >= r.Forms {
		return r.Forms - 1
	}
	return i
}

// String renders the rule as the value of a Plural-Forms header.
func (r Rule) String() string {
	expr := r.Expr.String()
	if r.Expr.precedence() != precAtom {
		expr = "(" + expr + ")"
	}
	return fmt.Sprintf("nplurals=%d; plural=%s;", r.Forms, expr)
}

var (
	// Germanic is the rule of English, German and most other languages,
	// and the default for languages missing from the table.
	Germanic = Rule{2, ne(n, 1)}
	Singular = Rule{1, num(0)}
	French   = Rule{2, gt(n, 1)}
	Russian  = Rule{3,
		cond(and(eq(mod(n, 10), 1), ne(mod(n, 100), 11)), 0,
			cond(and(between(mod(n, 10), 2, 4), or(lt(mod(n, 100), 10), gte(mod(n, 100), 20))), 1,
				num(2)))}
	Czech = Rule{3,
		cond(eq(n, 1), 0,
			cond(between(n, 2, 4), 1,
				num(2)))}
	Polish = Rule{3,
		cond(eq(n, 1), 0,
			cond(and(between(mod(n, 10), 2, 4), or(lt(mod(n, 100), 10), gte(mod(n, 100), 20))), 1,
				num(2)))}
)

// Source: the localization guide of the Translate House project. Languages
// using the germanic rule are left out since it is the default anyway.
var table = map[string]Rule{
	"ach": French,
	"ak":  French,
	"am":  French,
	"ar": {6,
		cond(eq(n, 0), 0,
			cond(eq(n, 1), 1,
				cond(eq(n, 2), 2,
					cond(between(mod(n, 100), 3, 10), 3,
						cond(gte(mod(n, 100), 11), 4,
							num(5))))))},
	"arn": French,
	"ay":  Singular,
	"be":  Russian,
	"bo":  Singular,
	"br":  French,
	"bs":  Russian,
	"cgg": Singular,
	"cs":  Czech,
	"csb": Polish,
	"cy": {4,
		cond(eq(n, 1), 0,
			cond(eq(n, 2), 1,
				cond(and(ne(n, 8), ne(n, 11)), 2,
					num(3))))},
	"dz":  Singular,
	"fa":  French,
	"fil": French,
	"fr":  French,
	"ga": {5,
		cond(eq(n, 1), 0,
			cond(eq(n, 2), 1,
				cond(and(gt(n, 2), lt(n, 7)), 2,
					cond(and(gt(n, 6), lt(n, 11)), 3,
						num(4)))))},
	"gd": {4,
		cond(or(eq(n, 1), eq(n, 11)), 0,
			cond(or(eq(n, 2), eq(n, 12)), 1,
				cond(and(gt(n, 2), lt(n, 20)), 2,
					num(3))))},
	"gun": French,
	"hr":  Russian,
	"id":  Singular,
	"is":  {2, or(ne(mod(n, 10), 1), eq(mod(n, 100), 11))},
	"ja":  Singular,
	"jbo": Singular,
	"jv":  {2, ne(n, 0)},
	"ka":  Singular,
	"km":  Singular,
	"ko":  Singular,
	"kw": {4,
		cond(eq(n, 1), 0,
			cond(eq(n, 2), 1,
				cond(eq(n, 3), 2,
					num(3))))},
	"ln": French,
	"lo": Singular,
	"lt": {3,
		cond(and(eq(mod(n, 10), 1), ne(mod(n, 100), 11)), 0,
			cond(and(gte(mod(n, 10), 2), or(lt(mod(n, 100), 10), gte(mod(n, 100), 20))), 1,
				num(2)))},
	"lv": {3,
		cond(and(eq(mod(n, 10), 1), ne(mod(n, 100), 11)), 0,
			cond(ne(n, 0), 1,
				num(2)))},
	"me":  Russian,
	"mfe": French,
	"mg":  French,
	"mi":  French,
	"mk": {2,
		cond(or(eq(n, 1), eq(mod(n, 10), 1)), 0,
			num(1))},
	"mnk": {3,
		cond(eq(n, 0), 0,
			cond(eq(n, 1), 1,
				num(2)))},
	"ms": Singular,
	"mt": {4,
		cond(eq(n, 1), 0,
			cond(or(eq(n, 0), and(gt(mod(n, 100), 1), lt(mod(n, 100), 11))), 1,
				cond(and(gt(mod(n, 100), 10), lt(mod(n, 100), 20)), 2,
					num(3))))},
	"my":    Singular,
	"oc":    French,
	"pl":    Polish,
	"pt_BR": French,
	"ro": {3,
		cond(eq(n, 1), 0,
			cond(or(eq(n, 0), and(gt(mod(n, 100), 0), lt(mod(n, 100), 20))), 1,
				num(2)))},
	"ru":  Russian,
	"sah": Singular,
	"sk":  Czech,
	"sl": {4,
		cond(eq(mod(n, 100), 1), 0,
			cond(eq(mod(n, 100), 2), 1,
				cond(or(eq(mod(n, 100), 3), eq(mod(n, 100), 4)), 2,
					num(3))))},
	"sr":  Russian,
	"su":  Singular,
	"tg":  French,
	"th":  Singular,
	"ti":  French,
	"tr":  French,
	"tt":  Singular,
	"ug":  Singular,
	"uk":  Russian,
	"uz":  French,
	"vi":  Singular,
	"wa":  French,
	"wo":  Singular,
	"zh":  French,
}

// Lookup finds the rule of a language tag. The tag is tried as given, then
// with "-" separators turned into "_", then reduced to its primary subtag.
func Lookup(language string) (Rule, bool) {
	if rule, ok := table[language]; ok {
		return rule, true
	}
	language = strings.ReplaceAll(language, "-", "_")
	if rule, ok := table[language]; ok {
		return rule, true
	}
	if i := strings.IndexByte(language, '_'); i >= 0 {
		rule, ok := table[language[:i]]
		return rule, ok
	}
	return Rule{}, false
}

// ForLanguage is like Lookup but falls back to the Germanic rule.
func ForLanguage(language string) Rule {
	if rule, ok := Lookup(language); ok {
		return rule
	}
	return Germanic
}

// Languages lists the tags with an explicit entry in the table.
func Languages() []string {
	languages := make([]string, 0, len(table))
	for language := range table {
		languages = append(languages, language)
	}
	return languages
}

// ParseHeader splits the value of a Plural-Forms header into its form count
// and its expression source.
func ParseHeader(value string) (forms int, expr string, err error) {
	forms = -1
	for _, item := range strings.Split(value, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		kv := strings.SplitN(item, "=", 2)
		if len(kv) != 2 {
			return 0, "", fmt.Errorf("invalid plural forms item %q", item)
		}
		switch strings.TrimSpace(kv[0]) {
		case "nplurals":
			forms, err = strconv.Atoi(strings.TrimSpace(kv[1]))
			if err != nil || forms < 1 {
				return 0, "", fmt.Errorf("invalid number of plural forms %q", kv[1])
			}
		case "plural":
			expr = strings.TrimSpace(kv[1])
		}
	}
	if forms < 0 {
		return 0, "", fmt.Errorf("missing nplurals in %q", value)
	}
	if expr == "" {
		return 0, "", fmt.Errorf("missing plural expression in %q", value)
	}
	return forms, expr, nil
}

// FromHeader returns the rule a catalog declaring the given Plural-Forms
// header should use. The selector always comes from the table entry of the
// catalog language; when the header announces a different number of forms,
// the header wins and selections are clamped to it.
func FromHeader(value, language string) Rule {
	rule := ForLanguage(language)
	forms, _, err := ParseHeader(value)
	if err != nil || forms == rule.Forms {
		return rule
	}
	return Rule{Forms: forms, Expr: rule.Expr}
}
