package cmd

import "time"

// Config carries the application settings loaded from the environment.
type Config struct {
	HTTPPort         string
	StorageBackend   string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBSslMode        string
	StaleOrderMaxAge time.Duration
}

const (
	// StorageBackendPostgres persists orders in PostgreSQL. The default.
	StorageBackendPostgres = "postgres"

	// StorageBackendMemory keeps orders in process memory. Intended for
	// local development and demos; the raw SQL read side is unavailable,
	// so only the command endpoints are served.
	StorageBackendMemory = "memory"
)
