package l10n

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"
)

func assert_equal(t *testing.T, expected string, got string) {
	t.Helper()
	if expected != got {
		t.Logf("%s != %s", expected, got)
		t.Fail()
	}
}

func assertDeepEqual(t *testing.T, expected, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(expected, got) {
		t.Logf("%v != %v", expected, got)
		t.Fail()
	}
}

// makeMO compiles entries, keyed by original string, into a mo file. The
// header entry uses the empty key; plural entries join their forms with
// NUL.
func makeMO(order binary.ByteOrder, entries map[string]string) []byte {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	n := uint32(len(keys))
	origTab := uint32(28)
	transTab := origTab + 8*n
	strings := transTab + 8*n

	var tables, data bytes.Buffer
	put := func(b *bytes.Buffer, v uint32) {
		var tmp [4]byte
		order.PutUint32(tmp[:], v)
		b.Write(tmp[:])
	}
	var orig, trans bytes.Buffer
	offset := strings
	for _, k := range keys {
		put(&orig, uint32(len(k)))
		put(&orig, offset)
		data.WriteString(k)
		data.WriteByte(0)
		offset += uint32(len(k)) + 1
	}
	for _, k := range keys {
		v := entries[k]
		put(&trans, uint32(len(v)))
		put(&trans, offset)
		data.WriteString(v)
		data.WriteByte(0)
		offset += uint32(len(v)) + 1
	}
	tables.Write(orig.Bytes())
	tables.Write(trans.Bytes())

	var out bytes.Buffer
	for _, v := range []uint32{le_magic, 0, n, origTab, transTab, 0, strings} {
		put(&out, v)
	}
	out.Write(tables.Bytes())
	out.Write(data.Bytes())
	return out.Bytes()
}

// writeMO stores a little-endian catalog at dir/name and returns its path.
func writeMO(t *testing.T, dir, name string, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, makeMO(binary.LittleEndian, entries), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const russianHeader = "Project-Id-Version: test\n" +
	"Language: ru\n" +
	"Content-Type: text/plain; charset=UTF-8\n" +
	"Plural-Forms: nplurals=3; plural=(n%10==1 && n%100!=11 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2);\n"

func russianEntries() map[string]string {
	return map[string]string{
		"":                      russianHeader,
		"hello":                 "привет",
		"file\x00files":         "файл\x00файла\x00файлов",
		"verb\x04open":          "открыть",
		"verb\x04open\x00opens": "открывает\x00открывают\x00открывают",
	}
}

func makeMOLittleEndian() []byte {
	return makeMO(binary.LittleEndian, russianEntries())
}
