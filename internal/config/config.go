package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Storage backend identifiers accepted by STORAGE_BACKEND.
const (
	BackendFS    = "fs"
	BackendMinIO = "minio"
)

// DatabaseConfig holds PostgreSQL database connection settings.
// The database is optional: when Host is empty the activity journal is disabled.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int `validate:"gte=0"`
	MaxIdleConns       int `validate:"gte=0"`
	ConnMaxLifetimeSec int `validate:"gte=0"`
}

// Enabled reports whether a database has been configured.
func (c DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// StorageConfig selects where documents live.
type StorageConfig struct {
	Backend string `validate:"oneof=fs minio"`
	DataDir string `validate:"required_if=Backend fs"`
}

// AuthConfig holds the credential file location and session lifetime.
type AuthConfig struct {
	UsersFile        string `validate:"required"`
	SessionExpirySec int    `validate:"gt=0"`
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string `validate:"required,numeric"`
	Timezone string `validate:"required"`
	Storage  StorageConfig
	Auth     AuthConfig
	Database DatabaseConfig
	MinIO    MinIOConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:4567"),
		Port:     getEnv("PORT", "4567"),
		Timezone: getEnv("APP_TIMEZONE", "UTC"),
		Storage: StorageConfig{
			Backend: getEnv("STORAGE_BACKEND", BackendFS),
			DataDir: getEnv("DATA_DIR", "data"),
		},
		Auth: AuthConfig{
			UsersFile:        getEnv("USERS_FILE", "users.yml"),
			SessionExpirySec: getEnvInt("SESSION_EXPIRY_SEC", 86400),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			Prefix:    getEnv("MINIO_PREFIX", "documents/"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}
}

// Validate checks the loaded values and the timezone name.
func (c *AppConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid config: timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Location returns the configured timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SessionExpiry returns the session lifetime as a duration.
func (c AuthConfig) SessionExpiry() time.Duration {
	return time.Duration(c.SessionExpirySec) * time.Second
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
