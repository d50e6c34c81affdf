package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/op/go-logging"
)

const format = `%{time:2006-01-02T15:04:05.000Z07:00} %{level:.3s} %{module} %{shortfunc} %{message}`

// NewLogger returns a named logger. Output goes wherever Setup pointed the
// shared backend; before Setup, go-logging's default stderr backend is used.
func NewLogger(name string) *logging.Logger {
	return logging.MustGetLogger(name)
}

// Setup routes every logger to w at the given level (DEBUG, INFO, WARNING,
// ERROR). The TUI owns the terminal, so w is normally a file.
func Setup(w io.Writer, level string) error {
	lvl, err := logging.LogLevel(level)
	if err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	backend := logging.NewLogBackend(w, "", 0)
	formatted := logging.NewBackendFormatter(backend, logging.MustStringFormatter(format))
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(lvl, "")
	logging.SetBackend(leveled)
	return nil
}

// SetupFile opens (appending) path and calls Setup with it.
// The returned file must be closed by the caller.
func SetupFile(path, level string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	if err := Setup(f, level); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// Discard silences all loggers; used by tests.
func Discard() {
	_ = Setup(io.Discard, "ERROR")
}
