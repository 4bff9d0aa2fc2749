package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// ConnParams describes how to reach the IMDb database.
type ConnParams struct {
	Host         string
	User         string
	Password     string
	PasswordFile string // mounted secret; wins over Password when set
	Database     string
}

// PoolOptions configures the database/sql pool that replaces a single shared
// connection. Zero values keep the database/sql defaults.
type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ResolvePassword returns the password, reading PasswordFile when set.
// Exactly one trailing newline is stripped from the file contents.
func (p ConnParams) ResolvePassword() (string, error) {
	if p.PasswordFile == "" {
		return p.Password, nil
	}
	content, err := os.ReadFile(p.PasswordFile)
	if err != nil {
		return "", fmt.Errorf("read credential file: %w", err)
	}
	return strings.TrimSuffix(string(content), "\n"), nil
}

// MySQLConfig builds the driver configuration for these parameters.
func (p ConnParams) MySQLConfig() (*mysql.Config, error) {
	password, err := p.ResolvePassword()
	if err != nil {
		return nil, err
	}
	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = p.Host
	cfg.User = p.User
	cfg.Passwd = password
	cfg.DBName = p.Database
	return cfg, nil
}

// Open creates the connection pool and verifies the store is reachable.
// No retry is attempted; the caller owns the returned handle.
func Open(ctx context.Context, p ConnParams, opts PoolOptions) (*sql.DB, error) {
	cfg, err := p.MySQLConfig()
	if err != nil {
		return nil, err
	}
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("mysql connector: %w", err)
	}

	db := sql.OpenDB(connector)
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s at %s: %w: %w", p.Database, p.Host, ErrStoreUnavailable, err)
	}
	return db, nil
}
