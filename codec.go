package l10n

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format is a compiled catalog format.
type Format int

const (
	// FormatMO is the GNU gettext binary format.
	FormatMO Format = iota
)

func (f Format) String() string {
	switch f {
	case FormatMO:
		return "mo"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Codec decodes catalogs of one format.
type Codec interface {
	// Decode parses a catalog held in memory.
	Decode(data []byte) (*Catalog, error)
	// Read parses the catalog stored in f.
	Read(f *os.File) (*Catalog, error)
}

type moCodec struct{}

func (moCodec) Decode(data []byte) (*Catalog, error) { return ParseMO(data) }
func (moCodec) Read(f *os.File) (*Catalog, error)     { return ReadMO(f) }

// Codec returns the codec of the format.
func (f Format) Codec() (Codec, error) {
	switch f {
	case FormatMO:
		return moCodec{}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
}

// FormatForPath returns the format of a catalog file from its extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mo", ".gmo":
		return FormatMO, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// LoadCatalog reads the catalog file at path with the codec of its format.
func LoadCatalog(path string) (*Catalog, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	codec, err := format.Codec()
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return codec.Read(f)
}
