package l10n

import (
	"os"
	"strings"
)

var osGetenv = os.Getenv

// systemLanguageVariables are consulted in order for the language of the
// user.
var systemLanguageVariables = []string{"LANGUAGE", "LC_ALL", "LC_CTYPE", "LANG"}

// SystemLanguage returns the preferred language of the user, like "nl_NL",
// from the environment. Only the first entry of a list is considered and
// the codeset is dropped. It returns "" when no language is set.
func SystemLanguage() string {
	for _, name := range systemLanguageVariables {
		value := osGetenv(name)
		value, _, _ = strings.Cut(value, ":")
		value, _, _ = strings.Cut(value, ".")
		if value != "" {
			return value
		}
	}
	return ""
}

// primarySubtag returns the language part of a tag such as "ru_RU" or
// "pt-BR".
func primarySubtag(language string) string {
	if i := strings.IndexAny(language, "_-"); i >= 0 {
		return language[:i]
	}
	return language
}

// validLanguage rejects tags that would point outside the directory a
// catalog path is built in.
func validLanguage(language string) bool {
	if language == "" || language == "." || strings.Contains(language, "..") {
		return false
	}
	return !strings.ContainsAny(language, `/\`) && !strings.ContainsRune(language, os.PathSeparator)
}
