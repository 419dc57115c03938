package l10n

import (
	"github.com/snapcore/go-l10n/pluralforms"
)

// ContextSeparator joins a message context and the message text into a
// single lookup key.
const ContextSeparator = "\x04"

// MsgID identifies a translation within a catalog: the message text,
// possibly context-qualified, and for plural messages the form index.
type MsgID struct {
	Text   string
	Plural bool
	Form   int
}

// Singular returns the id of a message without plural forms.
func Singular(text string) MsgID {
	return MsgID{Text: text}
}

// PluralForm returns the id of plural form n of a message.
func PluralForm(text string, form int) MsgID {
	return MsgID{Text: text, Plural: true, Form: form}
}

func withContext(context, text string) string {
	return context + ContextSeparator + text
}

// Header is one entry of the metadata of a catalog.
type Header struct {
	Name  string
	Value string
}

// Headers are the catalog metadata, in the order the catalog lists them.
type Headers []Header

// Get returns the value of the named header. Names are case-sensitive.
func (h Headers) Get(name string) (string, bool) {
	for _, header := range h {
		if header.Name == name {
			return header.Value, true
		}
	}
	return "", false
}

func (h Headers) set(name, value string) Headers {
	for i := range h {
		if h[i].Name == name {
			h[i].Value = value
			return h
		}
	}
	return append(h, Header{Name: name, Value: value})
}

// Catalog of translations for a given language. A Catalog is never
// modified once it has been decoded.
type Catalog struct {
	Headers  Headers
	Messages map[MsgID]string

	rule pluralforms.Rule
}

// NewCatalog builds a catalog from its headers and messages, deriving the
// plural rule from the Plural-Forms and Language headers.
func NewCatalog(headers Headers, messages map[MsgID]string) *Catalog {
	if messages == nil {
		messages = make(map[MsgID]string)
	}
	rule := pluralforms.Germanic
	if value, ok := headers.Get("Plural-Forms"); ok {
		language, _ := headers.Get("Language")
		rule = pluralforms.FromHeader(value, language)
	}
	return &Catalog{
		Headers:  headers,
		Messages: messages,
		rule:     rule,
	}
}

// PluralRule returns the rule selecting the plural form of a count.
// Catalogs without a Plural-Forms header, as well as the nil catalog, use
// the Germanic rule.
func (c *Catalog) PluralRule() pluralforms.Rule {
	if c == nil || c.rule.Expr == nil {
		return pluralforms.Germanic
	}
	return c.rule
}

// Language returns the Language header of the catalog.
func (c *Catalog) Language() string {
	if c == nil {
		return ""
	}
	language, _ := c.Headers.Get("Language")
	return language
}

// Lookup returns the translation stored for id.
func (c *Catalog) Lookup(id MsgID) (string, bool) {
	if c == nil {
		return "", false
	}
	msgstr, ok := c.Messages[id]
	return msgstr, ok
}
