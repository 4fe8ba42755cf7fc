package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_SSLMODE", "")
	t.Setenv("COMMUNES_FILE", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "data/communes_geo_35.json", cfg.CommunesFile)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_SECRET", "prod-secret")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "prod-secret", cfg.JWTSecret)
}

func TestDSN(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "password")
	t.Setenv("DB_NAME", "medjobs")
	t.Setenv("DB_PORT", "5432")

	cfg := Load()
	assert.Equal(t,
		"host=localhost user=postgres password=password dbname=medjobs port=5432 sslmode=disable",
		cfg.DSN())
}
