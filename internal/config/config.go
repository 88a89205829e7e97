package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-required:"true"`
	Log      LogConfig      `yaml:"log"`
	Storage  StorageConfig  `yaml:"storage"`
	Query    QueryConfig    `yaml:"query"`
	HTTP     HTTPConfig     `yaml:"http"`
	Postgres PostgresConfig `yaml:"postgres"`
	JWT      JWTConfig      `yaml:"jwt"`
}

// LogConfig overrides the level implied by Env when Level is set.
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

type StorageConfig struct {
	Backend    string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"file"`
	Dir        string `yaml:"dir" env:"STORAGE_DIR" env-default:".taskswift"`
	SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH" env-default:".taskswift/taskswift.db"`
}

type QueryConfig struct {
	CollationLanguage string `yaml:"collation_language" env:"COLLATION_LANGUAGE" env-default:"en"`
}

type HTTPConfig struct {
	Host            string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type PostgresConfig struct {
	Host           string        `yaml:"host" env:"POSTGRES_HOST"`
	Port           int           `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	Username       string        `yaml:"username" env:"POSTGRES_USERNAME"`
	Password       string        `yaml:"password" env:"POSTGRES_PASSWORD"`
	Database       string        `yaml:"database" env:"POSTGRES_DATABASE"`
	SSLMode        string        `yaml:"ssl_mode" env:"POSTGRES_SSL_MODE" env-default:"disable"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"POSTGRES_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout    time.Duration `yaml:"ping_timeout" env:"POSTGRES_PING_TIMEOUT" env-default:"10s"`
}

// JWTConfig enables bearer-token checks on the task API when SigningKey
// is set. Tokens are issued by the hosting application.
type JWTConfig struct {
	SigningKey string `yaml:"signing_key" env:"JWT_SIGNING_KEY"`
	Issuer     string `yaml:"issuer" env:"JWT_ISSUER"`
}
