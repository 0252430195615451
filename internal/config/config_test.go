package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LAUNCHPAD_CONFIG", "")

	c, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, c.Storage.Backend)
	assert.Equal(t, "ETH", c.Network.Ticker)
	assert.Equal(t, "32", c.Network.PricePerValidator)
	assert.Equal(t, "default", c.Session.ID)
	assert.Equal(t, "launchpad", c.Storage.RedisPrefix)
	assert.Contains(t, c.Storage.Path, filepath.Join(".local", "share", "launchpad"))
}

func TestLoad_FileAndEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "launchpad.toml")
	body := `
[network]
name = "holesky"
ticker = "HolETH"
price_per_validator = "32"

[storage]
backend = "memory"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("LAUNCHPAD_SESSION_ID", "alice")

	c, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "holesky", c.Network.Name)
	assert.Equal(t, "HolETH", c.Network.Ticker)
	assert.Equal(t, BackendMemory, c.Storage.Backend)
	assert.Equal(t, "alice", c.Session.ID)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	c := Config{
		Storage: Storage{Backend: "etcd"},
		Session: Session{ID: "x"},
		Network: Network{PricePerValidator: "32"},
	}
	require.ErrorContains(t, c.Validate(), "unknown storage backend")

	c.Storage = Storage{Backend: BackendSQLite}
	require.ErrorContains(t, c.Validate(), "storage.path")

	c.Storage.Backend = BackendMemory
	c.Session.ID = " "
	require.ErrorContains(t, c.Validate(), "session.id")
}
