package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults apply without a config file", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "Tienda Fácil", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, int64(5), cfg.Inventory.LowStockThreshold)
		assert.False(t, cfg.Advisor.Enabled)
		assert.False(t, cfg.Snapshot.Enabled)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("environment variables override defaults", func(t *testing.T) {
		t.Setenv("TIENDA_APP_PORT", "9090")
		t.Setenv("TIENDA_APP_ENV", "production")
		t.Setenv("TIENDA_LOG_LEVEL", "debug")
		t.Setenv("TIENDA_INVENTORY_LOW_STOCK_THRESHOLD", "3")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.App.Port)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, int64(3), cfg.Inventory.LowStockThreshold)
		assert.True(t, cfg.IsProduction())
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:       AppConfig{Name: "Tienda", Port: "8080"},
			Inventory: InventoryConfig{LowStockThreshold: 5},
			Advisor:   AdvisorConfig{Enabled: false},
			Snapshot:  SnapshotConfig{Enabled: false},
		}
	}

	t.Run("valid config passes", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("empty port is rejected", func(t *testing.T) {
		cfg := valid()
		cfg.App.Port = ""
		require.Error(t, cfg.Validate())
	})

	t.Run("non-positive low stock threshold is rejected", func(t *testing.T) {
		cfg := valid()
		cfg.Inventory.LowStockThreshold = 0
		require.Error(t, cfg.Validate())
	})

	t.Run("enabled advisor requires a model", func(t *testing.T) {
		cfg := valid()
		cfg.Advisor.Enabled = true
		cfg.Advisor.Model = ""
		require.Error(t, cfg.Validate())
	})

	t.Run("enabled snapshots require a path", func(t *testing.T) {
		cfg := valid()
		cfg.Snapshot.Enabled = true
		cfg.Snapshot.Path = ""
		require.Error(t, cfg.Validate())
	})
}
