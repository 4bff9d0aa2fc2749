// Package config loads runtime settings for the search service and the batch
// query tool. Defaults match the container deployment; an optional YAML file
// and then environment variables override them.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/imdb_search_go/internal/store"
)

// Config holds all runtime configuration.
type Config struct {
	Server   ServerConfig        `yaml:"server"`
	Database DatabaseConfig      `yaml:"database"`
	Catalog  store.CatalogParams `yaml:"catalog"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
	// QueryTimeout bounds each /search request; zero means no deadline.
	QueryTimeout time.Duration `yaml:"query_timeout"`
}

// DatabaseConfig holds MySQL connection and pool settings.
type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	PasswordFile    string        `yaml:"password_file"`
	Name            string        `yaml:"name"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// ConnParams converts the database section for store.Open.
func (d DatabaseConfig) ConnParams() store.ConnParams {
	return store.ConnParams{
		Host:         d.Host,
		User:         d.User,
		Password:     d.Password,
		PasswordFile: d.PasswordFile,
		Database:     d.Name,
	}
}

// PoolOptions converts the pool settings for store.Open.
func (d DatabaseConfig) PoolOptions() store.PoolOptions {
	return store.PoolOptions{
		MaxOpenConns:    d.MaxOpenConns,
		MaxIdleConns:    d.MaxIdleConns,
		ConnMaxLifetime: d.ConnMaxLifetime,
	}
}

type configError struct {
	msg string
}

func (e *configError) Error() string {
	return e.msg
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Database: DatabaseConfig{
			Host:            "mysql_db",
			User:            "root",
			PasswordFile:    "/run/secrets/db-password",
			Name:            "imdb_database",
			MaxOpenConns:    25,
			MaxIdleConns:    25,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Catalog: store.DefaultCatalogParams(),
	}
}

// Load builds the configuration from defaults, the YAML file at path (skipped
// when path is empty or the file does not exist) and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(content, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Addr, "HTTP_ADDR")
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Name, "DB_NAME")

	// A direct password disables the default secret file unless one is also given.
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
		c.Database.PasswordFile = ""
	}
	setString(&c.Database.PasswordFile, "DB_PASSWORD_FILE")

	if v := os.Getenv("QUERY_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return &configError{fmt.Sprintf("QUERY_TIMEOUT: %v", err)}
		}
		c.Server.QueryTimeout = d
	}
	if v := os.Getenv("DB_MAX_OPEN_CONNS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &configError{fmt.Sprintf("DB_MAX_OPEN_CONNS: %v", err)}
		}
		c.Database.MaxOpenConns = n
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks required settings.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return &configError{"server.addr (HTTP_ADDR) is required"}
	}
	if c.Server.QueryTimeout < 0 {
		return &configError{"server.query_timeout must not be negative"}
	}
	if c.Database.Host == "" {
		return &configError{"database.host (DB_HOST) is required"}
	}
	if c.Database.User == "" {
		return &configError{"database.user (DB_USER) is required"}
	}
	if c.Database.Name == "" {
		return &configError{"database.name (DB_NAME) is required"}
	}
	if c.Database.MaxOpenConns < 0 || c.Database.MaxIdleConns < 0 {
		return &configError{"database pool sizes must not be negative"}
	}
	if c.Catalog.BornFrom > c.Catalog.BornTo {
		return &configError{"catalog.born_from must not be after catalog.born_to"}
	}
	return nil
}
