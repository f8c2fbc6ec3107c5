// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level string
	File  string // empty disables file output
}

// Setup installs the global logger. Console output always goes to stderr;
// when File is set, JSON lines are also written to a rotating file.
func Setup(opts Options) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return zerolog.Nop(), fmt.Errorf("create log directory: %w", err)
		}
		rotating := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28,
		}
		out = zerolog.MultiLevelWriter(out, rotating)
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	log.Logger = logger
	zerolog.SetGlobalLevel(level)
	return logger, nil
}
