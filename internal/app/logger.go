package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskswift/internal/config"
)

var globalLogger zerolog.Logger

// InitDefaultLogger sets up a JSON logger on stderr for use until the
// config is read. Stdout is left to command output.
func InitDefaultLogger() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.TimestampFieldName = "timestamp"

	globalLogger = zerolog.New(os.Stderr).
		With().
		Timestamp().
		Caller().
		Int("pid", os.Getpid()).
		Logger()
}

// applicationOutput returns the level and writer used in env. LOG_LEVEL,
// when set, wins over the env's level.
func applicationOutput(cfg config.Config, out io.Writer) (zerolog.Level, io.Writer, error) {
	var level zerolog.Level
	w := out
	switch cfg.Env {
	case config.EnvDev:
		level = zerolog.DebugLevel
	case config.EnvProd:
		level = zerolog.InfoLevel
	case config.EnvLocal:
		level = zerolog.TraceLevel
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.DateTime}
	default:
		return zerolog.NoLevel, nil, fmt.Errorf("unknown env: %s", cfg.Env)
	}

	if cfg.Log.Level != "" {
		parsed, err := zerolog.ParseLevel(cfg.Log.Level)
		if err != nil {
			return zerolog.NoLevel, nil, fmt.Errorf("invalid log level: %w", err)
		}
		level = parsed
	}
	return level, w, nil
}

func MustInitApplicationLogger() {
	cfg := config.Global()

	level, w, err := applicationOutput(*cfg, os.Stderr)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("env", cfg.Env).
			Str("level", cfg.Log.Level).
			Msg("failed to configure logger")
		panic(err)
	}

	zerolog.SetGlobalLevel(level)
	globalLogger = globalLogger.Output(w)
	globalLogger.Debug().
		Str("env", cfg.Env).
		Stringer("level", level).
		Msg("initialized application logger")
}

// SetQuiet raises the log level so that only errors reach the output.
func SetQuiet() {
	zerolog.SetGlobalLevel(zerolog.ErrorLevel)
}
