package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	StoreMemory    = "memory"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Selection SelectionConfig
}

// DatabaseConfig locates the HRMS entity tables.
type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	SSLMode    string
	MaxConns   int32
	SQLitePath string
}

type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	CORSOrigins []string
}

// SelectionConfig controls where list-view selections live between reloads.
type SelectionConfig struct {
	Store         string
	TTL           time.Duration
	PurgeInterval time.Duration
	SQLitePath    string
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Driver:     strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		Host:       getEnv("DB_HOST", "localhost"),
		Port:       dbPort,
		User:       getEnv("DB_USER", "postgres"),
		Password:   getEnv("DB_PASSWORD", ""),
		Name:       getEnv("DB_NAME", "horilla"),
		SSLMode:    getEnv("DB_SSL_MODE", "disable"),
		MaxConns:   int32(maxConns),
		SQLitePath: getEnv("DB_SQLITE_PATH", "horilla.db"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:8000"}),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	ttl, err := time.ParseDuration(getEnv("SELECTION_TTL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SELECTION_TTL: %w", err)
	}
	purge, err := time.ParseDuration(getEnv("SELECTION_PURGE_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SELECTION_PURGE_INTERVAL: %w", err)
	}

	config.Selection = SelectionConfig{
		Store:         strings.ToLower(getEnv("SELECTION_STORE", StoreMemory)),
		TTL:           ttl,
		PurgeInterval: purge,
		SQLitePath:    getEnv("SELECTION_SQLITE_PATH", "selection.db"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("DB_SQLITE_PATH is required")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be %s or %s", DriverPostgres, DriverSQLite)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}

	switch c.Selection.Store {
	case StoreMemory:
	case DriverPostgres:
		if c.Database.Driver != DriverPostgres {
			return fmt.Errorf("SELECTION_STORE=postgres requires DB_DRIVER=postgres")
		}
	case DriverSQLite:
		if c.Selection.SQLitePath == "" {
			return fmt.Errorf("SELECTION_SQLITE_PATH is required")
		}
	default:
		return fmt.Errorf("SELECTION_STORE must be memory, postgres or sqlite")
	}
	if c.Selection.TTL <= 0 {
		return fmt.Errorf("SELECTION_TTL must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
