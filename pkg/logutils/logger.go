package logutils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// New returns a new logger. With a file it writes JSON to that file; without
// one it writes to stderr, using the console writer when stderr is a terminal.
//
// The level parameter can be one of: debug, info, warn, error, fatal.
func New(level string, file string) (zerolog.Logger, func(), error) {
	closer := func() {}

	if file == "" {
		l, err := NewWriter(level, os.Stderr, term.IsTerminal(int(os.Stderr.Fd())))
		return l, closer, err
	}

	logsDir := filepath.Dir(file)
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return zerolog.Logger{}, closer, fmt.Errorf("create logs dir: %w", err)
	}

	osFile, err := os.Create(file)
	if err != nil {
		return zerolog.Logger{}, closer, err
	}
	closer = func() { _ = osFile.Close() }

	l, err := NewWriter(level, osFile, false)
	if err != nil {
		closer()
		return zerolog.Logger{}, func() {}, err
	}
	return l, closer, nil
}

// NewWriter returns a logger writing to w, as JSON or human readable console
// output.
func NewWriter(level string, w io.Writer, console bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, err
	}

	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	return zerolog.New(w).
		With().
		Timestamp().
		Logger().
		Level(lvl), nil
}
