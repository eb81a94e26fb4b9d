package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ENV", "staging")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USERNAME", "catalog")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("DB_NAME", "catalog")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "45s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "staging", cfg.Env)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 5433, cfg.DB.Port)
	assert.Equal(t, "catalog", cfg.DB.Username)
	assert.Equal(t, 45*time.Second, cfg.DB.ConnMaxIdleTime)
}

func TestLoadAppliesDefaults(t *testing.T) {
	// Pin the values a host environment might plausibly set, leave the rest
	// to the defaults.
	t.Setenv("PORT", "3000")
	t.Setenv("ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 20, cfg.DB.MaxOpenConns)
	assert.Equal(t, 10, cfg.DB.MaxIdleConns)
	assert.Equal(t, 30*time.Second, cfg.DB.ConnMaxIdleTime)
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	t.Setenv("PORT", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	db := Database{
		Host:     "localhost",
		Port:     5432,
		Username: "postgres",
		Password: "p@ss:w/rd", // key/value DSNs need no URL escaping
		Name:     "books",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=p@ss:w/rd dbname=books sslmode=disable",
		db.DSN(),
	)
}
