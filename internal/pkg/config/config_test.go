package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  read_timeout: 5s
session:
  secret: from-file
database:
  driver: mysql
  host: db
  username: root
  password: pw
  database: taskboard
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr())
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "from-file", cfg.Session.Secret)
	assert.Equal(t, 30*24*time.Hour, cfg.Session.TTL())
	assert.Equal(t, "root:pw@tcp(db:3306)/taskboard?charset=utf8mb4&parseTime=True&loc=Local", cfg.Database.GetDSN())
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TASKBOARD_SESSION_SECRET", "from-env")
	path := writeConfig(t, "session:\n  secret: from-file\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Session.Secret)
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{"missing secret", "server:\n  port: 8080\n", "session.secret is required"},
		{"bad max age", "session:\n  secret: s\n  max_age: 0\n", "session.max_age must be positive"},
		{"bad driver", "session:\n  secret: s\ndatabase:\n  driver: postgres\n", `unsupported database driver "postgres"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			assert.EqualError(t, err, tc.wantErr)
		})
	}
}

func TestReadSkipsValidation(t *testing.T) {
	cfg, err := Read(writeConfig(t, "database:\n  path: ./seed.db\n"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Session.Secret)
	assert.Equal(t, "./seed.db", cfg.Database.Path)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestReadMissingExplicitFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
