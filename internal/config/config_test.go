package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("SERVER_ADDRESS", "")
	t.Setenv("DB_CONNECTION_LIMIT", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:8080", cfg.ServerAddress)
	require.Equal(t, 5, cfg.DBConnectionLimit)
	require.Equal(t, "estate.db", cfg.DSN())
}

func TestLoadPostgresRequiresConn(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("POSTGRES_CONN", "")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "POSTGRES_CONN")

	t.Setenv("POSTGRES_CONN", "postgres://u:p@localhost/estate")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "postgres://u:p@localhost/estate", cfg.DSN())
}

func TestLoadUnsupportedDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	_, err := Load()
	require.Error(t, err)
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("ESTATE_TEST_INT", "12")
	require.Equal(t, 12, getEnvInt("ESTATE_TEST_INT", 1))

	t.Setenv("ESTATE_TEST_INT", "abc")
	require.Equal(t, 1, getEnvInt("ESTATE_TEST_INT", 1))
}

func TestLoadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	data := `
property_types:
  - name: House
    sequence: 1
  - name: Apartment
    sequence: 2
property_tags:
  - name: cozy
    color: 3
users:
  - login: admin
    name: Mitchell Admin
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	seed, err := LoadSeed(path)
	require.NoError(t, err)

	types := seed.Types()
	require.Len(t, types, 2)
	require.Equal(t, "Apartment", types[1].Name)
	require.Equal(t, 2, types[1].Sequence)

	tags := seed.Tags()
	require.Len(t, tags, 1)
	require.Equal(t, 3, tags[0].Color)

	users := seed.UserList()
	require.Len(t, users, 1)
	require.Equal(t, "admin", users[0].Login)
}

func TestLoadSeedErrors(t *testing.T) {
	_, err := LoadSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("property_types: [\n"), 0o644))
	_, err = LoadSeed(path)
	require.Error(t, err)
}
