package l10n

import (
	"io"
	"os"
	"runtime"
)

type fileMapping struct {
	data []byte

	isMapped bool
}

func (m *fileMapping) Close() error {
	runtime.SetFinalizer(m, nil)
	if !m.isMapped {
		return nil
	}
	m.isMapped = false
	err := m.closeMapping()
	m.data = nil
	return err
}

func openMapping(f *os.File) (*fileMapping, error) {
	m := new(fileMapping)

	err := m.tryMap(f)
	if err == nil {
		runtime.SetFinalizer(m, (*fileMapping).Close)
		return m, nil
	}
	// On mapping failure, fall back to reading the file into
	// memory directly.
	if _, err = f.Seek(0, io.SeekStart); err != nil {
		// pipes cannot seek, but nothing has been read from them yet
		if fi, statErr := f.Stat(); statErr != nil || fi.Mode().IsRegular() {
			return nil, err
		}
	}
	m.data, err = io.ReadAll(f)
	return m, err
}
