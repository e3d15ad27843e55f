package bootstrap

import (
	"io"
	"os"
	"path/filepath"

	"github.com/onebus/fleet-console/config"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const serviceName = "fleetctl"

// Version is stamped at build time with -ldflags.
var Version = "dev" //nolint:gochecknoglobals // set via ldflags

// InitLogger builds the process logger. Logs go to stderr so command output on
// stdout stays machine-readable; LOG_FILE adds a size-rotated copy.
func InitLogger(cfg config.LogConfig) zerolog.Logger {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg config.LogConfig, stderr io.Writer) zerolog.Logger {
	var out io.Writer = stderr
	if cfg.Format == config.LogFormatConsole {
		out = zerolog.ConsoleWriter{Out: stderr, TimeFormat: "15:04:05"}
	}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err == nil {
			out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
				Filename:   cfg.File,
				MaxSize:    cfg.MaxSizeMB,
				MaxBackups: cfg.MaxBackups,
				Compress:   true,
			})
		}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()
}
