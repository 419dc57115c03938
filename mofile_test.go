package l10n

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseMO(t *testing.T) {
	catalog, err := ParseMO(makeMO(binary.LittleEndian, russianEntries()))
	if err != nil {
		t.Fatal(err)
	}

	assertDeepEqual(t, Headers{
		{"Project-Id-Version", "test"},
		{"Language", "ru"},
		{"Content-Type", "text/plain; charset=UTF-8"},
		{"Plural-Forms", "nplurals=3; plural=(n%10==1 && n%100!=11 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2);"},
	}, catalog.Headers)
	assertDeepEqual(t, map[MsgID]string{
		Singular("hello"):             "привет",
		PluralForm("file", 0):         "файл",
		PluralForm("file", 1):         "файла",
		PluralForm("file", 2):         "файлов",
		Singular("verb\x04open"):      "открыть",
		PluralForm("verb\x04open", 0): "открывает",
		PluralForm("verb\x04open", 1): "открывают",
		PluralForm("verb\x04open", 2): "открывают",
	}, catalog.Messages)

	assert_equal(t, "ru", catalog.Language())
	if catalog.PluralRule().Forms != 3 {
		t.Errorf("expected 3 plural forms, got %d", catalog.PluralRule().Forms)
	}
	if _, ok := catalog.Headers.Get("language"); ok {
		t.Error("header names must be case-sensitive")
	}
}

func TestParseMOBigEndian(t *testing.T) {
	le, err := ParseMO(makeMO(binary.LittleEndian, russianEntries()))
	if err != nil {
		t.Fatal(err)
	}
	be, err := ParseMO(makeMO(binary.BigEndian, russianEntries()))
	if err != nil {
		t.Fatal(err)
	}
	assertDeepEqual(t, le.Headers, be.Headers)
	assertDeepEqual(t, le.Messages, be.Messages)
}

func TestParseMOWithoutHeaders(t *testing.T) {
	catalog, err := ParseMO(makeMO(binary.LittleEndian, map[string]string{
		"one":         "uno",
		"cat\x00cats": "gato\x00gatos",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if len(catalog.Headers) != 0 {
		t.Errorf("unexpected headers %v", catalog.Headers)
	}
	assert_equal(t, "", catalog.Language())
	assert_equal(t, "nplurals=2; plural=(n != 1);", catalog.PluralRule().String())
	assert_equal(t, "gatos", catalog.Messages[PluralForm("cat", 1)])

	empty, err := ParseMO(makeMO(binary.LittleEndian, nil))
	if err != nil {
		t.Fatal(err)
	}
	if len(empty.Messages) != 0 {
		t.Errorf("unexpected messages %v", empty.Messages)
	}
}

func TestParseMOHeaderContinuation(t *testing.T) {
	catalog, err := ParseMO(makeMO(binary.LittleEndian, map[string]string{
		"": "Language: nl\nX-Comment: first line\nsecond line\n\nLast-Translator: someone\nLanguage: nl_NL\n",
	}))
	if err != nil {
		t.Fatal(err)
	}
	assertDeepEqual(t, Headers{
		{"Language", "nl_NL"},
		{"X-Comment", "first line\nsecond line"},
		{"Last-Translator", "someone"},
	}, catalog.Headers)
}

func TestParseMOPluralHeaderMismatch(t *testing.T) {
	// the table says Polish has three forms, the catalog only two
	catalog, err := ParseMO(makeMO(binary.LittleEndian, map[string]string{
		"": "Language: pl\nPlural-Forms: nplurals=2; plural=(n != 1);\n",
	}))
	if err != nil {
		t.Fatal(err)
	}
	rule := catalog.PluralRule()
	if rule.Forms != 2 {
		t.Fatalf("expected the header form count, got %d", rule.Forms)
	}
	for _, n := range []uint64{0, 1, 2, 5, 22, 100} {
		if form := rule.Select(n); form < 0 || form >= 2 {
			t.Errorf("form %d of %d out of range", form, n)
		}
	}
}

func TestParseMOCharset(t *testing.T) {
	catalog, err := ParseMO(makeMO(binary.LittleEndian, map[string]string{
		"":       "Content-Type: text/plain; charset=ISO-8859-1\nLast-Translator: Jos\xe9\n",
		"coffee": "caf\xe9",
	}))
	if err != nil {
		t.Fatal(err)
	}
	assert_equal(t, "café", catalog.Messages[Singular("coffee")])
	value, _ := catalog.Headers.Get("Last-Translator")
	assert_equal(t, "José", value)

	_, err = ParseMO(makeMO(binary.LittleEndian, map[string]string{
		"": "Content-Type: text/plain; charset=no-such-charset\n",
	}))
	var merr *MalformedCatalogError
	if !errors.As(err, &merr) {
		t.Fatalf("expected a malformed catalog error, got %v", err)
	}
}

func TestParseMOMalformed(t *testing.T) {
	valid := makeMO(binary.LittleEndian, russianEntries())
	corrupt := func(offset int, value uint32) []byte {
		data := append([]byte(nil), valid...)
		binary.LittleEndian.PutUint32(data[offset:], value)
		return data
	}
	withHash := func(size, offset uint32, entries ...uint32) []byte {
		data := append([]byte(nil), valid...)
		binary.LittleEndian.PutUint32(data[20:], size)
		binary.LittleEndian.PutUint32(data[24:], offset)
		for _, e := range entries {
			var tmp [4]byte
			binary.LittleEndian.PutUint32(tmp[:], e)
			data = append(data, tmp[:]...)
		}
		return data
	}

	for _, test := range []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short", valid[:20]},
		{"magic", corrupt(0, 0x12345678)},
		{"revision", corrupt(4, 2<<16)},
		{"count", corrupt(8, 1<<30)},
		{"original table", corrupt(12, uint32(len(valid)))},
		{"translation table", corrupt(16, uint32(len(valid)-8))},
		{"string length", corrupt(28, 1<<31)},
		{"string offset", corrupt(36, uint32(len(valid)))},
		{"hash table bounds", withHash(100, uint32(len(valid)))},
		{"hash table entry", withHash(3, uint32(len(valid)), 0, 99, 1)},
	} {
		_, err := ParseMO(test.data)
		var merr *MalformedCatalogError
		if !errors.As(err, &merr) {
			t.Errorf("%s: expected a malformed catalog error, got %v", test.name, err)
		}
	}

	// a consistent hash table is accepted and ignored
	if _, err := ParseMO(withHash(3, uint32(len(valid)), 0, 2, 1)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	// minor revisions are fine
	if _, err := ParseMO(corrupt(4, 1<<16|1)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestReadMO(t *testing.T) {
	path := writeMO(t, t.TempDir(), "ru.mo", russianEntries())
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	catalog, err := ReadMO(f)
	if err != nil {
		t.Fatal(err)
	}
	assert_equal(t, "привет", catalog.Messages[Singular("hello")])

	_, err = ParseMO([]byte("garbage that is long enough to hold a header"))
	var merr *MalformedCatalogError
	if !errors.As(err, &merr) {
		t.Fatalf("expected a malformed catalog error, got %v", err)
	}
}

func TestReadMOReportsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.mo")
	if err := os.WriteFile(path, []byte("not a catalog, but long enough"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadCatalog(path)
	var merr *MalformedCatalogError
	if !errors.As(err, &merr) {
		t.Fatalf("expected a malformed catalog error, got %v", err)
	}
	assert_equal(t, path, merr.Path)
}

func TestFormatForPath(t *testing.T) {
	for _, path := range []string{"ru.mo", "locales/ru.gmo", "RU.MO"} {
		format, err := FormatForPath(path)
		if err != nil {
			t.Errorf("%s: %v", path, err)
			continue
		}
		assert_equal(t, "mo", format.String())
	}
	for _, path := range []string{"ru.po", "ru", "ru.json"} {
		if _, err := FormatForPath(path); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("%s: expected unsupported format, got %v", path, err)
		}
	}
	if _, err := Format(42).Codec(); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected unsupported format, got %v", err)
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ru.po"), []byte(`msgid ""`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCatalog(filepath.Join(dir, "ru.po")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected unsupported format, got %v", err)
	}
	if _, err := LoadCatalog(filepath.Join(dir, "missing.mo")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected a missing file, got %v", err)
	}
}

func TestCodecDecode(t *testing.T) {
	codec, err := FormatMO.Codec()
	if err != nil {
		t.Fatal(err)
	}
	catalog, err := codec.Decode(makeMO(binary.BigEndian, russianEntries()))
	if err != nil {
		t.Fatal(err)
	}
	assert_equal(t, "открыть", catalog.Messages[Singular("verb\x04open")])
}
