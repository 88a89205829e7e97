package app

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/adanyl0v/taskswift/internal/config"
)

// MustReadConfig reads the configuration from path, or from the
// environment when path is empty.
func MustReadConfig(path string) {
	var reader config.Reader = config.NewEnvReader()
	if path != "" {
		reader = config.NewFileReader(path)
	}

	cfg, err := reader.Read()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("path", path).
			Msg("failed to read config")
		panic(err)
	}
	globalLogger.Debug().
		Str("env", cfg.Env).
		Str("storage_backend", cfg.Storage.Backend).
		Msg("read config")

	config.SetGlobal(cfg)
}
