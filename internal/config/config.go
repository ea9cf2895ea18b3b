package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	NewRelic  NewRelicConfig
	Datastore DatastoreConfig
	LogLevel  string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL configuration. An empty Host means no
// remote backend is configured and the service runs on sample data.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Configured reports whether a remote database is configured at all.
func (c DatabaseConfig) Configured() bool {
	return c.Host != ""
}

// RedisConfig holds Redis configuration. An empty Addr disables Redis;
// sessions and account locks fall back to in-process equivalents.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Configured reports whether Redis is configured at all.
func (c RedisConfig) Configured() bool {
	return c.Addr != ""
}

// AuthConfig holds token and admin login configuration.
type AuthConfig struct {
	JWTSecret         string
	TokenExpiry       time.Duration
	AdminUsername     string
	AdminEmail        string
	AdminName         string
	AdminPasswordHash string
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// DatastoreConfig holds backend mode configuration.
type DatastoreConfig struct {
	// ForceSampleData skips the remote probe entirely and runs on the
	// built-in sample dataset.
	ForceSampleData bool

	// ResilientWrites makes remote write failures report success
	// without durability instead of surfacing an error.
	ResilientWrites bool

	// ProbeTimeout bounds the startup connectivity probe.
	ProbeTimeout time.Duration

	// LocalDir is where sample-mode collections are persisted as JSON.
	LocalDir string
}

// Load loads configuration from the environment, reading a .env file
// first when one exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "fleetops"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret:         getEnv("JWT_SECRET", "change-me-in-production"),
			TokenExpiry:       getDurationEnv("JWT_EXPIRY", 24*time.Hour),
			AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
			AdminEmail:        getEnv("ADMIN_EMAIL", "admin@fleetops.local"),
			AdminName:         getEnv("ADMIN_NAME", "Fleet Administrator"),
			AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		NewRelic: NewRelicConfig{
			AppName:    getEnv("NEW_RELIC_APP_NAME", "fleetops"),
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			Enabled:    getBoolEnv("NEW_RELIC_ENABLED", false),
		},
		Datastore: DatastoreConfig{
			ForceSampleData: getBoolEnv("FORCE_SAMPLE_DATA", false),
			ResilientWrites: getBoolEnv("RESILIENT_WRITES", false),
			ProbeTimeout:    getDurationEnv("DB_PROBE_TIMEOUT", 10*time.Second),
			LocalDir:        getEnv("LOCAL_STORE_DIR", "./data"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
