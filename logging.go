package linktest

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig controls where and how verbosely the diagnostic logs.
type LogConfig struct {
	// Level is a zerolog level name ("trace", "debug", "info", ...).
	// Empty means info.
	Level string

	// File, when set, adds a rotated JSON log sink next to the console.
	File string
}

// NewLogger builds the process logger: human-readable console output on
// stderr, plus an optional rotated JSON file.
func NewLogger(cfg LogConfig) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	if cfg.File != "" {
		out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10, // MB
			MaxBackups: 3,
		})
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
