package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults matching Default()
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 16)
	v.SetDefault("database.max_idle_conns", 4)
	v.SetDefault("database.conn_max_idle_time", "5m")
	v.SetDefault("database.conn_max_lifetime", "30m")

	// Bind environment variables with MK_ prefix
	v.SetEnvPrefix("MK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		DatabaseURL:     v.GetString("database.url"),
		MaxOpenConns:    v.GetInt("database.max_open_conns"),
		MaxIdleConns:    v.GetInt("database.max_idle_conns"),
		ConnMaxIdleTime: v.GetDuration("database.conn_max_idle_time"),
		ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks URL scheme and positive pool limits. An empty URL is
// allowed at load time; commands that need a database check it themselves
// so --db-url can still override.
func validate(cfg *Config) error {
	if cfg.DatabaseURL != "" {
		u, err := url.Parse(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("invalid database url: %w", err)
		}
		if u.Scheme != "sqlite" && u.Scheme != "postgres" {
			return fmt.Errorf("unsupported database scheme: %s (expected sqlite or postgres)", u.Scheme)
		}
	}
	if cfg.MaxOpenConns <= 0 {
		return fmt.Errorf("max_open_conns must be positive, got %d", cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns <= 0 {
		return fmt.Errorf("max_idle_conns must be positive, got %d", cfg.MaxIdleConns)
	}
	if cfg.ConnMaxIdleTime <= 0 {
		return fmt.Errorf("conn_max_idle_time must be positive, got %v", cfg.ConnMaxIdleTime)
	}
	if cfg.ConnMaxLifetime <= 0 {
		return fmt.Errorf("conn_max_lifetime must be positive, got %v", cfg.ConnMaxLifetime)
	}
	return nil
}
