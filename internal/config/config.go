// Package config loads all runtime settings from environment variables.
// There are deliberately no command-line flags: deployment environments
// provide configuration through the process environment (optionally seeded
// from a .env file at startup).
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds every value that can be tweaked at startup.
type Config struct {
	Port int      // TCP port the HTTP server listens on
	Env  string   // Runtime environment: development, staging, or production
	DB   Database // PostgreSQL connection and pool settings
}

// Database holds the PostgreSQL connection parameters and pool knobs.
// Pool sizing and idle eviction are operational settings, not behavioral
// requirements, so they all carry sensible defaults.
type Database struct {
	Host            string
	Port            int
	Username        string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
}

// DSN builds a lib/pq key/value connection string. The key/value form is
// used instead of a postgres:// URL so passwords never need URL escaping.
func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.Username, d.Password, d.Name,
	)
}

// Load reads the configuration from the environment, applies defaults for
// anything unset, and validates the result.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", 3000)
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USERNAME", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "books")
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", "30s")

	cfg := Config{
		Port: v.GetInt("PORT"),
		Env:  v.GetString("ENV"),
		DB: Database{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			Username:        v.GetString("DB_USERNAME"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxIdleTime: v.GetDuration("DB_CONN_MAX_IDLE_TIME"),
		},
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate rejects configurations the server cannot start with.
func validate(cfg Config) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Port)
	}
	if cfg.DB.Host == "" {
		return fmt.Errorf("database host must be provided")
	}
	if cfg.DB.Name == "" {
		return fmt.Errorf("database name must be provided")
	}
	if cfg.DB.MaxOpenConns < 1 {
		return fmt.Errorf("invalid max open connections: %d", cfg.DB.MaxOpenConns)
	}
	return nil
}
