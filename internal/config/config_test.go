package config

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.HTTP.Addr)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "salon.db", cfg.Store.SQLitePath)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, 0, cfg.Inventory.LowStockThreshold)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SALON_HTTP_ADDR", ":9000")
	t.Setenv("SALON_KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("SALON_INVENTORY_LOW_STOCK_THRESHOLD", "2")
	t.Setenv("SALON_PROFILE_CITY", "Niteroi")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 2, cfg.Inventory.LowStockThreshold)
	assert.Equal(t, "Niteroi", cfg.Profile.City)
}

func TestLoad_File(t *testing.T) {
	dir := chdirTemp(t)
	file := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
store:
  sqlite_path: /tmp/agenda.db
profile:
  name: Ana
  age: 30
`), 0o600))

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/agenda.db", cfg.Store.SQLitePath)
	assert.Equal(t, "Ana", cfg.Profile.Name)
	assert.Equal(t, 30, cfg.Profile.Age)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := chdirTemp(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_PostgresNeedsDSN(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SALON_STORE_DRIVER", "postgres")

	_, err := Load("")
	assert.ErrorContains(t, err, "postgres_dsn")
}

func TestLoad_UnknownDriver(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SALON_STORE_DRIVER", "mongo")

	_, err := Load("")
	assert.ErrorContains(t, err, "unknown store driver")
}
