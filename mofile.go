package l10n

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

const le_magic = 0x950412de
const be_magic = 0xde120495

type header struct {
	Magic          uint32
	Version        uint32
	NumStrings     uint32
	OrigTabOffset  uint32
	TransTabOffset uint32
	HashTabSize    uint32
	HashTabOffset  uint32
}

func (header header) get_major_version() uint32 {
	return header.Version >> 16
}

func (header header) get_minor_version() uint32 {
	return header.Version & 0xffff
}

// moreader walks the string tables of a mo file.
type moreader struct {
	data  []byte
	order binary.ByteOrder

	numStrings int
	origTab    []byte
	transTab   []byte
}

func (r *moreader) str(table []byte, idx int) []byte {
	strLen := r.order.Uint32(table[8*idx:])
	strOffset := r.order.Uint32(table[8*idx+4:])
	return r.data[strOffset : strOffset+strLen]
}

func (r *moreader) msgID(idx int) []byte {
	return r.str(r.origTab, idx)
}

func (r *moreader) msgStr(idx int) []byte {
	return r.str(r.transTab, idx)
}

func validateStringTable(data []byte, table []byte, numStrings int, order binary.ByteOrder) error {
	for i := 0; i < numStrings; i++ {
		strLen := order.Uint32(table[8*i:])
		strOffset := order.Uint32(table[8*i+4:])
		if uint64(strLen)+uint64(strOffset) > uint64(len(data)) {
			return fmt.Errorf("string %d data (len=%x, offset=%x) is out of bounds", i, strLen, strOffset)
		}
	}
	return nil
}

func validateHashTable(table []byte, hashSize int, numStrings int, order binary.ByteOrder) error {
	for i := 0; i < hashSize; i++ {
		strIndex := order.Uint32(table[4*i:])
		// hash entries are either zero or a string index
		// incremented by one
		if uint64(strIndex) >= uint64(numStrings)+1 {
			return fmt.Errorf("hash table is corrupt")
		}
	}
	return nil
}

func table(data []byte, offset, entries, entrySize uint32) ([]byte, bool) {
	end := uint64(offset) + uint64(entries)*uint64(entrySize)
	if end > uint64(len(data)) {
		return nil, false
	}
	return data[offset:end], true
}

// ParseMO decodes a GNU mo catalog held in memory.
func ParseMO(data []byte) (*Catalog, error) {
	return parseMO("", data)
}

// ReadMO decodes the GNU mo catalog stored in f. The file is memory mapped
// while it is parsed; the returned catalog does not refer to it.
func ReadMO(f *os.File) (*Catalog, error) {
	m, err := openMapping(f)
	if err != nil {
		return nil, err
	}
	defer m.Close()
	return parseMO(f.Name(), m.data)
}

func parseMO(path string, data []byte) (*Catalog, error) {
	malformed := func(format string, args ...interface{}) error {
		return &MalformedCatalogError{Path: path, Reason: fmt.Sprintf(format, args...)}
	}

	var header header
	headerSize := binary.Size(&header)
	if len(data) < headerSize {
		return nil, malformed("message catalogue is too short")
	}

	var order binary.ByteOrder = binary.LittleEndian
	magic := order.Uint32(data)
	switch magic {
	case le_magic:
		// nothing
	case be_magic:
		order = binary.BigEndian
	default:
		return nil, malformed("wrong magic: %#x", magic)
	}
	if err := binary.Read(bytes.NewReader(data[:headerSize]), order, &header); err != nil {
		return nil, malformed("%v", err)
	}
	if header.get_major_version() != 0 && header.get_major_version() != 1 {
		return nil, malformed("unsupported version: %d.%d", header.get_major_version(), header.get_minor_version())
	}
	if uint64(header.NumStrings) > uint64(len(data)) {
		return nil, malformed("too many strings in catalog")
	}
	numStrings := int(header.NumStrings)

	origTab, ok := table(data, header.OrigTabOffset, header.NumStrings, 8)
	if !ok {
		return nil, malformed("original strings table out of bounds")
	}
	if err := validateStringTable(data, origTab, numStrings, order); err != nil {
		return nil, malformed("%v", err)
	}
	transTab, ok := table(data, header.TransTabOffset, header.NumStrings, 8)
	if !ok {
		return nil, malformed("translated strings table out of bounds")
	}
	if err := validateStringTable(data, transTab, numStrings, order); err != nil {
		return nil, malformed("%v", err)
	}

	// The hash table only speeds up lookups in C; it is checked for
	// consistency and otherwise ignored.
	if header.HashTabSize > 2 {
		hashTab, ok := table(data, header.HashTabOffset, header.HashTabSize, 4)
		if !ok {
			return nil, malformed("hash table out of bounds")
		}
		if err := validateHashTable(hashTab, int(header.HashTabSize), numStrings, order); err != nil {
			return nil, malformed("%v", err)
		}
	}

	r := &moreader{
		data:  data,
		order: order,

		numStrings: numStrings,
		origTab:    origTab,
		transTab:   transTab,
	}

	var headers Headers
	var decoder *encoding.Decoder
	first := 0
	// Read catalog header if available
	if numStrings > 0 && len(r.msgID(0)) == 0 {
		first = 1
		info := r.msgStr(0)
		headers = readInfo(string(info))
		var err error
		if decoder, err = charsetDecoder(headers); err != nil {
			return nil, malformed("%v", err)
		}
		if decoder != nil {
			decoded, err := decoder.Bytes(info)
			if err != nil {
				return nil, malformed("cannot decode headers: %v", err)
			}
			headers = readInfo(string(decoded))
		}
	}

	decode := func(s string) (string, error) {
		if decoder == nil {
			return s, nil
		}
		return decoder.String(s)
	}

	messages := make(map[MsgID]string, numStrings)
	for i := first; i < numStrings; i++ {
		msgid, err := decode(string(r.msgID(i)))
		if err != nil {
			return nil, malformed("cannot decode string %d: %v", i, err)
		}
		msgstr, err := decode(string(r.msgStr(i)))
		if err != nil {
			return nil, malformed("cannot decode translation %d: %v", i, err)
		}
		if text, _, isPlural := strings.Cut(msgid, "\x00"); isPlural {
			for form, variant := range strings.Split(msgstr, "\x00") {
				messages[PluralForm(text, form)] = variant
			}
			continue
		}
		messages[Singular(msgid)] = msgstr
	}
	return NewCatalog(headers, messages), nil
}

// readInfo parses the metadata entry: one "Key: Value" pair per line, lines
// without a colon continuing the previous value.
func readInfo(info string) Headers {
	var headers Headers
	lastk := ""
	for _, line := range strings.Split(info, "\n") {
		item := strings.TrimSpace(line)
		if len(item) == 0 {
			continue
		}
		if k, v, ok := strings.Cut(item, ":"); ok {
			k = strings.TrimSpace(k)
			headers = headers.set(k, strings.TrimSpace(v))
			lastk = k
		} else if len(lastk) != 0 {
			v, _ := headers.Get(lastk)
			headers = headers.set(lastk, v+"\n"+item)
		}
	}
	return headers
}

// charsetDecoder returns the decoder for the charset declared in the
// Content-Type header, or nil when the catalog is UTF-8 already.
func charsetDecoder(headers Headers) (*encoding.Decoder, error) {
	contentType, ok := headers.Get("Content-Type")
	if !ok {
		return nil, nil
	}
	_, charset, ok := strings.Cut(contentType, "charset=")
	if !ok {
		return nil, nil
	}
	charset, _, _ = strings.Cut(charset, ";")
	charset = strings.ToLower(strings.TrimSpace(charset))
	switch charset {
	case "", "utf-8", "utf8", "ascii", "us-ascii", "charset":
		return nil, nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q", charset)
	}
	return enc.NewDecoder(), nil
}
