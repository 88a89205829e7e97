package config

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

var (
	ErrUnknownBackend        = errors.New("unknown storage backend")
	ErrPostgresNotConfigured = errors.New("postgres backend requires host, username and database")
)

type Reader interface {
	Read() (*Config, error)
}

type EnvReader struct{}

func NewEnvReader() EnvReader {
	return EnvReader{}
}

func (EnvReader) Read() (*Config, error) {
	cfg := new(Config)
	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, Validate(cfg)
}

// FileReader reads a YAML, JSON, TOML or .env file. Environment variables
// override values from the file.
type FileReader struct {
	path string
}

func NewFileReader(path string) FileReader {
	return FileReader{path: path}
}

func (r FileReader) Read() (*Config, error) {
	cfg := new(Config)
	err := cleanenv.ReadConfig(r.path, cfg)
	if err != nil {
		return nil, err
	}

	return cfg, Validate(cfg)
}

func Validate(cfg *Config) error {
	switch cfg.Storage.Backend {
	case BackendFile, BackendSQLite:
	case BackendPostgres:
		pg := cfg.Postgres
		if pg.Host == "" || pg.Username == "" || pg.Database == "" {
			return ErrPostgresNotConfigured
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Storage.Backend)
	}
	return nil
}
