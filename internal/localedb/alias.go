package localedb

import (
	"bufio"
	"io"
	"strings"
	"unicode"
)

// parseLocaleAlias reads a locale.alias file: one "alias name" pair per
// line, '#' starting a comment. Lines with a single word are ignored.
func parseLocaleAlias(r io.Reader) (map[string]string, error) {
	aliases := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		aliases[strings.ToLower(fields[0])] = fields[1]
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return aliases, nil
}

// normalizeCodeset lowercases a ".codeset" suffix and drops everything but
// letters and digits. A purely numeric codeset is an ISO one.
func normalizeCodeset(codeset string) string {
	var b strings.Builder
	digitsOnly := true
	for _, r := range strings.TrimPrefix(codeset, ".") {
		switch {
		case unicode.IsLetter(r):
			digitsOnly = false
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	normalized := b.String()
	if digitsOnly && normalized != "" {
		normalized = "iso" + normalized
	}
	return "." + normalized
}

// splitLocaleName splits "ll_CC.codeset@modifier" into its parts. The
// codeset keeps its leading dot and the modifier its leading '@'.
func splitLocaleName(name string) (base, codeset, modifier string) {
	base = name
	if i := strings.IndexByte(base, '@'); i >= 0 {
		base, modifier = base[:i], base[i:]
	}
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base, codeset = base[:i], base[i:]
	}
	return base, codeset, modifier
}

// definitionKey is the name a definition is stored under: its canonical
// base name followed by its modifier, if any.
func definitionKey(name string) string {
	base, _, modifier := splitLocaleName(name)
	return canonicalName(base) + modifier
}

// canonicalName spells a locale base name the way definitions are keyed:
// lower case language, upper case territory, '_' as separator.
func canonicalName(base string) string {
	switch strings.ToUpper(base) {
	case "C", "POSIX":
		return strings.ToUpper(base)
	}
	parts := strings.FieldsFunc(base, func(r rune) bool { return r == '_' || r == '-' })
	if len(parts) == 0 {
		return ""
	}
	parts[0] = strings.ToLower(parts[0])
	for i := 1; i < len(parts); i++ {
		if len(parts[i]) == 2 || len(parts[i]) == 3 {
			parts[i] = strings.ToUpper(parts[i])
		}
	}
	return strings.Join(parts, "_")
}
