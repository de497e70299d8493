package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Log       LogConfig
	Inventory InventoryConfig
	Advisor   AdvisorConfig
	Snapshot  SnapshotConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name      string // store name shown in logs and the advisor context
	OwnerName string
	Env       string
	Port      string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// InventoryConfig holds inventory alert settings
type InventoryConfig struct {
	LowStockThreshold int64
}

// AdvisorConfig holds settings for the AI advisor collaborator
type AdvisorConfig struct {
	Enabled bool
	Model   string
	Timeout time.Duration
}

// SnapshotConfig holds settings for the optional snapshot persistence
// collaborator. When disabled, store state lives only for the session.
type SnapshotConfig struct {
	Enabled bool
	Path    string
}

// Load reads configuration from config.toml and TIENDA_-prefixed
// environment variables, falling back to defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("TIENDA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Name:      v.GetString("app.name"),
			OwnerName: v.GetString("app.owner_name"),
			Env:       v.GetString("app.env"),
			Port:      v.GetString("app.port"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:  v.GetDuration("http.read_timeout"),
			WriteTimeout: v.GetDuration("http.write_timeout"),
			IdleTimeout:  v.GetDuration("http.idle_timeout"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Inventory: InventoryConfig{
			LowStockThreshold: v.GetInt64("inventory.low_stock_threshold"),
		},
		Advisor: AdvisorConfig{
			Enabled: v.GetBool("advisor.enabled"),
			Model:   v.GetString("advisor.model"),
			Timeout: v.GetDuration("advisor.timeout"),
		},
		Snapshot: SnapshotConfig{
			Enabled: v.GetBool("snapshot.enabled"),
			Path:    v.GetString("snapshot.path"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "Tienda Fácil")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")

	v.SetDefault("http.read_timeout", "15s")
	v.SetDefault("http.write_timeout", "15s")
	v.SetDefault("http.idle_timeout", "60s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("inventory.low_stock_threshold", 5)

	v.SetDefault("advisor.enabled", false)
	v.SetDefault("advisor.model", "gemini-2.5-flash")
	v.SetDefault("advisor.timeout", "20s")

	v.SetDefault("snapshot.enabled", false)
	v.SetDefault("snapshot.path", "tienda.db")
}

// Validate checks configuration consistency
func (c *Config) Validate() error {
	if c.App.Port == "" {
		return fmt.Errorf("app.port cannot be empty")
	}
	if c.Inventory.LowStockThreshold <= 0 {
		return fmt.Errorf("inventory.low_stock_threshold must be positive, got %d", c.Inventory.LowStockThreshold)
	}
	if c.Advisor.Enabled && c.Advisor.Model == "" {
		return fmt.Errorf("advisor.model cannot be empty when the advisor is enabled")
	}
	if c.Snapshot.Enabled && c.Snapshot.Path == "" {
		return fmt.Errorf("snapshot.path cannot be empty when snapshots are enabled")
	}
	return nil
}

// IsProduction returns true when the application runs in production
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
