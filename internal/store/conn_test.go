package store

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSecret(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db-password")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestConnParams_ResolvePassword(t *testing.T) {
	t.Parallel()

	t.Run("strips one trailing newline", func(t *testing.T) {
		t.Parallel()
		p := ConnParams{PasswordFile: writeSecret(t, "secret\n")}
		got, err := p.ResolvePassword()
		require.NoError(t, err)
		assert.Equal(t, "secret", got)
	})

	t.Run("only one newline is stripped", func(t *testing.T) {
		t.Parallel()
		p := ConnParams{PasswordFile: writeSecret(t, "secret\n\n")}
		got, err := p.ResolvePassword()
		require.NoError(t, err)
		assert.Equal(t, "secret\n", got)
	})

	t.Run("file without newline is used as is", func(t *testing.T) {
		t.Parallel()
		p := ConnParams{PasswordFile: writeSecret(t, "secret")}
		got, err := p.ResolvePassword()
		require.NoError(t, err)
		assert.Equal(t, "secret", got)
	})

	t.Run("file wins over direct password", func(t *testing.T) {
		t.Parallel()
		p := ConnParams{Password: "direct", PasswordFile: writeSecret(t, "from-file\n")}
		got, err := p.ResolvePassword()
		require.NoError(t, err)
		assert.Equal(t, "from-file", got)
	})

	t.Run("direct password without file", func(t *testing.T) {
		t.Parallel()
		got, err := ConnParams{Password: "direct"}.ResolvePassword()
		require.NoError(t, err)
		assert.Equal(t, "direct", got)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		p := ConnParams{PasswordFile: filepath.Join(t.TempDir(), "absent")}
		_, err := p.ResolvePassword()
		require.Error(t, err)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})
}

func TestConnParams_MySQLConfig(t *testing.T) {
	t.Parallel()

	p := ConnParams{
		Host:         "mysql_db",
		User:         "root",
		PasswordFile: writeSecret(t, "secret\n"),
		Database:     "imdb_database",
	}
	cfg, err := p.MySQLConfig()
	require.NoError(t, err)
	assert.Equal(t, "tcp", cfg.Net)
	assert.Equal(t, "mysql_db", cfg.Addr)
	assert.Equal(t, "root", cfg.User)
	assert.Equal(t, "secret", cfg.Passwd)
	assert.Equal(t, "imdb_database", cfg.DBName)
}

func TestOpen_MissingCredentialFile(t *testing.T) {
	t.Parallel()

	p := ConnParams{Host: "127.0.0.1:1", User: "root", PasswordFile: filepath.Join(t.TempDir(), "absent"), Database: "imdb_database"}
	db, err := Open(context.Background(), p, PoolOptions{})
	assert.Nil(t, db)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestOpen_UnreachableStore(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Port 1 on loopback refuses connections immediately.
	p := ConnParams{Host: "127.0.0.1:1", User: "root", Password: "secret", Database: "imdb_database"}
	db, err := Open(ctx, p, PoolOptions{MaxOpenConns: 1})
	assert.Nil(t, db)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
