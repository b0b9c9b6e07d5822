// Package logging configures the process-wide slog logger.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/pthm-cable/stride/config"
)

// ErrUnknownFormat is returned for a logging.format other than json or text.
var ErrUnknownFormat = errors.New("unknown log format")

// ParseLevel maps a config level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}

// NewHandler builds a handler writing to w.
func NewHandler(w io.Writer, cfg config.LoggingConfig) (slog.Handler, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch cfg.Format {
	case "", "json":
		return slog.NewJSONHandler(w, opts), nil
	case "text":
		return slog.NewTextHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("logging.format=%q: %w", cfg.Format, ErrUnknownFormat)
	}
}

// Setup installs the default logger. With logging.file set, output goes to
// a size-rotated file; otherwise to stdout. The returned closer releases
// the file.
func Setup(cfg config.LoggingConfig) (io.Closer, error) {
	var w io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}

	if cfg.File != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB, // MB
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays, // days
		}
		w, closer = lj, lj
	}

	h, err := NewHandler(w, cfg)
	if err != nil {
		closer.Close()
		return nil, err
	}
	slog.SetDefault(slog.New(h))
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
