package l10n

import (
	"bytes"
	"io"

	log "github.com/sirupsen/logrus"
)

// Logger is the interface the package logs through, so callers can plug
// their own.
type Logger interface {
	Debug(...interface{})
	Info(...interface{})
	Warn(...interface{})
	Error(...interface{})
	Debugf(string, ...interface{})
	Infof(string, ...interface{})
	Warnf(string, ...interface{})
	Errorf(string, ...interface{})
	SetLevel(level log.Level)
	GetLevel() log.Level
	SetOutput(writer io.Writer)
}

func NewLogger() Logger {
	return log.New()
}

// NewNullLogger returns a logger that discards everything. Locales and
// stores log through it unless told otherwise.
func NewNullLogger() Logger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}

// NewBufferLogger returns a debug level logger that writes to b, used
// mainly for testing.
func NewBufferLogger(b *bytes.Buffer) Logger {
	logger := log.New()
	logger.SetOutput(b)
	logger.SetLevel(log.DebugLevel)
	return logger
}
