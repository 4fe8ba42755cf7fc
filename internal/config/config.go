// Package config reads the runtime configuration from the environment.
// main loads .env through godotenv first, so a local file works the same
// way real environment variables do.
package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret string

	// CommunesFile points at the bundled commune reference data.
	CommunesFile string
}

func Load() *Config {
	return &Config{
		Port:         getenv("PORT", "8080"),
		DBHost:       getenv("DB_HOST", "localhost"),
		DBPort:       getenv("DB_PORT", "5432"),
		DBUser:       getenv("DB_USER", "postgres"),
		DBPassword:   getenv("DB_PASSWORD", "password"),
		DBName:       getenv("DB_NAME", "medjobs"),
		DBSSLMode:    getenv("DB_SSLMODE", "disable"),
		JWTSecret:    getenv("JWT_SECRET", "dev-secret-change-me"),
		CommunesFile: getenv("COMMUNES_FILE", "data/communes_geo_35.json"),
	}
}

// DSN builds the postgres connection string for gorm.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
