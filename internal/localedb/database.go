// Package localedb models the locale support of the host: a database of
// locale definitions, the process-wide active locale and the C library
// style primitives that format and parse according to it.
package localedb

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/text/language"
)

// ErrUnknownLocale is returned for locale names the database cannot
// resolve.
var ErrUnknownLocale = errors.New("unsupported locale setting")

const aliasFile = "locale.alias"

//go:embed locales
var embedded embed.FS

// Database maps locale names to definitions.
type Database struct {
	mu          sync.RWMutex
	definitions map[string]*Definition
	aliases     map[string]string
}

// NewDatabase returns an empty database.
func NewDatabase() *Database {
	return &Database{
		definitions: make(map[string]*Definition),
		aliases:     make(map[string]string),
	}
}

// Add registers a definition, replacing any previous one with the same
// name.
func (db *Database) Add(def *Definition) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.definitions[definitionKey(def.Name)] = def
}

// AddAliases merges alias entries into the database.
func (db *Database) AddAliases(aliases map[string]string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for alias, name := range aliases {
		db.aliases[strings.ToLower(alias)] = name
	}
}

// LoadFS reads every *.yaml definition and the locale.alias file found at
// the top of dir in fsys. All failing files are reported, the others are
// still added.
func (db *Database) LoadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}
	var result *multierror.Error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := path.Join(dir, entry.Name())
		switch {
		case entry.Name() == aliasFile:
			f, err := fsys.Open(name)
			if err != nil {
				result = multierror.Append(result, err)
				continue
			}
			aliases, err := parseLocaleAlias(f)
			f.Close()
			if err != nil {
				result = multierror.Append(result, fmt.Errorf("%s: %w", name, err))
				continue
			}
			db.AddAliases(aliases)
		case strings.HasSuffix(entry.Name(), ".yaml"):
			data, err := fs.ReadFile(fsys, name)
			if err != nil {
				result = multierror.Append(result, err)
				continue
			}
			def, err := ParseDefinition(data)
			if err != nil {
				result = multierror.Append(result, fmt.Errorf("%s: %w", name, err))
				continue
			}
			db.Add(def)
		}
	}
	return result.ErrorOrNil()
}

// LoadDir is LoadFS over a directory of the host file system.
func (db *Database) LoadDir(dir string) error {
	return db.LoadFS(os.DirFS(filepath.Clean(dir)), ".")
}

// Names lists the definitions of the database, sorted.
func (db *Database) Names() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	names := make([]string, 0, len(db.definitions))
	for name := range db.definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve finds the definition for a locale name such as "ru", "ru_RU",
// "ru-RU" or "ru_RU.UTF-8". Aliases are applied first; a bare language
// resolves to its most likely territory. A name with a modifier, like
// "sr_RS@latin", prefers the definition carrying that modifier and falls
// back to the one without.
func (db *Database) Resolve(name string) (*Definition, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	base, codeset, modifier := splitLocaleName(name)
	if codeset != "" {
		switch normalizeCodeset(codeset) {
		case ".utf8", ".ascii":
		default:
			return nil, fmt.Errorf("%w: %q (codeset)", ErrUnknownLocale, name)
		}
	}
	if target, ok := db.aliases[strings.ToLower(base)]; ok {
		var targetModifier string
		base, _, targetModifier = splitLocaleName(target)
		if targetModifier != "" {
			modifier = targetModifier
		}
	}
	key := canonicalName(base)
	if modifier != "" {
		if def, ok := db.definitions[key+modifier]; ok {
			return def, nil
		}
	}
	if def, ok := db.definitions[key]; ok {
		return def, nil
	}
	if key != "" && !strings.Contains(key, "_") {
		if tag, err := language.Parse(key); err == nil {
			if region, confidence := tag.Region(); confidence != language.No {
				if def, ok := db.definitions[key+"_"+region.String()]; ok {
					return def, nil
				}
			}
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, name)
}

func mustLoadEmbedded() *Database {
	db := NewDatabase()
	if err := db.LoadFS(embedded, "locales"); err != nil {
		panic(fmt.Sprintf("cannot load embedded locale definitions: %v", err))
	}
	return db
}

var system = mustLoadEmbedded()

// System returns the database the active locale is resolved from.
func System() *Database {
	return system
}

// Install adds the definitions found in dir to the system database, the
// way localedef adds locales to a host.
func Install(dir string) error {
	return system.LoadDir(dir)
}
