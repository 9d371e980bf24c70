// Package logger installs the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type Config struct {
	Debug bool
	JSON  bool

	// File receives a copy of every record when set
	File string

	// Output defaults to stderr
	Output io.Writer
}

var (
	mu      sync.RWMutex
	logFile *os.File
	logPath string
)

// Setup builds the handler described by cfg and makes it the slog default.
// The returned cleanup closes the log file and restores a stderr logger.
func Setup(cfg Config) (func() error, error) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	var f *os.File

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o750); err != nil {
			return nil, err
		}

		var err error

		f, err = os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, err
		}

		out = io.MultiWriter(out, f)
	}

	level := slog.LevelInfo
	addSource := false

	if cfg.Debug {
		level = slog.LevelDebug
		addSource = true
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				t := a.Value.Time().UTC()
				a.Value = slog.StringValue(t.Format(time.RFC3339))
			}

			return a
		},
	}

	var h slog.Handler
	if cfg.JSON {
		h = slog.NewJSONHandler(out, opts)
	} else {
		h = slog.NewTextHandler(out, opts)
	}

	mu.Lock()
	logFile = f
	logPath = cfg.File
	mu.Unlock()

	slog.SetDefault(slog.New(h))
	slog.Debug("logger initialized", "file", cfg.File, "json", cfg.JSON)

	cleanup := func() error {
		mu.Lock()
		defer mu.Unlock()

		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

		var cerr error
		if logFile != nil {
			cerr = logFile.Close()
		}

		logFile = nil
		logPath = ""

		return cerr
	}

	return cleanup, nil
}

// Path returns the active log file, "" when logging only to the console.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()

	return logPath
}
