// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/erazemk/artikli/internal/db"
)

// Config is the full runtime configuration.
type Config struct {
	Addr     string   `env:"ADDR" envDefault:":8000"`
	LogFile  string   `env:"LOG_FILE"`
	Database Database `envPrefix:"DB_"`
}

// Database holds connection parameters. Path is used by the sqlite driver;
// the remaining fields by postgres.
type Database struct {
	Driver   string `env:"DRIVER" envDefault:"postgres"`
	User     string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD" envDefault:"postgres"`
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	Name     string `env:"NAME" envDefault:"fastapi_db"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
	Path     string `env:"PATH" envDefault:"artikli.sqlite3"`
}

// DSN assembles the driver connection string.
func (d Database) DSN() string {
	if dialect, err := db.DialectFor(d.Driver); err == nil && dialect == db.SQLite {
		return d.Path
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

// Load reads envFile (if it exists) into the process environment without
// overriding variables that are already set, then parses the environment.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
