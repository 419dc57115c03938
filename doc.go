// Package l10n reads compiled gettext catalogs and formats dates, numbers
// and amounts of money the way a language expects, in pure Go.
//
// A Locales store finds the catalog of a language in a directory, falling
// back to the primary subtag of the language:
//
//	locales := l10n.NewLocales("locales")
//	loc := locales.Get("ru_RU")
//	msg := loc.Get("{n} file", l10n.Plural("{n} files"), l10n.Count(5),
//		l10n.Vars(map[string]string{"n": "5"}))
//
// Formatting switches the process-wide active locale, which is shared by
// all goroutines. Locale methods do so under a LocaleGuard, so concurrent
// callers formatting for different languages never see each other's
// locale.
package l10n
