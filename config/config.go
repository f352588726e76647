// Package config defines the application configuration structures.
//
// Separated from cmd so other packages (db, ssh, api) can depend on
// config without importing Cobra. Database settings come from the
// environment (with optional .env file); AI settings live in
// ~/.queryforge/config.json.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all database connection settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	SSH SSHConfig
}

// SSHConfig holds SSH tunnel settings.
type SSHConfig struct {
	Enabled       bool
	Host          string
	Port          int
	User          string
	KeyPath       string
	KeyPassphrase string
}

// LoadDB reads database settings from the environment. A .env file in
// the working directory is loaded first if present; real environment
// variables take precedence over it.
func LoadDB() Config {
	_ = godotenv.Load()

	cfg := Config{
		Host:     envOr("PGHOST", "localhost"),
		Port:     envInt("PGPORT", 5432),
		User:     envOr("PGUSER", "postgres"),
		Password: os.Getenv("PGPASSWORD"),
		Database: envOr("PGDATABASE", "postgres"),
		SSLMode:  envOr("PGSSLMODE", "disable"),
	}

	cfg.SSH = SSHConfig{
		Enabled:       os.Getenv("SSH_TUNNEL_HOST") != "",
		Host:          os.Getenv("SSH_TUNNEL_HOST"),
		Port:          envInt("SSH_TUNNEL_PORT", 22),
		User:          os.Getenv("SSH_TUNNEL_USER"),
		KeyPath:       os.Getenv("SSH_TUNNEL_KEY"),
		KeyPassphrase: os.Getenv("SSH_TUNNEL_KEY_PASSPHRASE"),
	}

	return cfg
}

// DSN builds a pgx-compatible connection string. When the SSH tunnel is
// active, the caller overrides Host/Port with the local tunnel endpoint.
func (c Config) DSN() string {
	return "host=" + c.Host +
		" port=" + strconv.Itoa(c.Port) +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Database +
		" sslmode=" + c.SSLMode
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
