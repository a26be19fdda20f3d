package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/taskboard/internal/config"
)

func TestOpenStore_SQLite(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "tasks.db"),
	}}

	store, err := OpenStore(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, config.DriverSQLite, store.Driver)
	assert.NoError(t, store.Tasks.Ping(context.Background()))
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, err := OpenStore(context.Background(), &config.Config{Store: config.StoreConfig{Driver: "mysql"}}, nil)
	assert.ErrorContains(t, err, "mysql")
}
