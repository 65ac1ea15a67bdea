// Package config provides configuration management for the mapkeeper CLI.
package config

import "time"

// Config holds connection settings for the document store.
type Config struct {
	DatabaseURL     string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

// Default returns configuration with default values. The pool defaults
// match internal/core/db: 16 open connections per instance against
// PostgreSQL's stock max_connections, 4 idle to balance resource usage
// against reconnection latency.
func Default() *Config {
	return &Config{
		DatabaseURL:     "",
		MaxOpenConns:    16,
		MaxIdleConns:    4,
		ConnMaxIdleTime: 5 * time.Minute,
		ConnMaxLifetime: 30 * time.Minute,
	}
}
