package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Persistence drivers accepted by PERSISTENCE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	JWTSecret string

	// CORSAllowedHosts are origin hosts (host[:port]) allowed cross-origin access.
	CORSAllowedHosts []string

	Catalog     CatalogConfig
	Persistence PersistenceConfig
	DB          DatabaseConfig
	Redis       RedisConfig
	Worker      WorkerConfig
}

// CatalogConfig points at the remote product catalog API.
type CatalogConfig struct {
	BaseURL string
	// Timeout of zero leaves the transport default in place.
	Timeout time.Duration
}

// PersistenceConfig selects the key-value backend used for favorites.
type PersistenceConfig struct {
	Driver   string
	FilePath string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// WorkerConfig contains interval configuration for background workers.
type WorkerConfig struct {
	ReapInterval     time.Duration
	WorkspaceIdleTTL time.Duration
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables. If envFile exists it is
// loaded first; a missing file is ignored so that deployments relying solely on
// real environment variables keep working.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")
	cfg.CORSAllowedHosts = splitList(getEnv("CORS_ALLOWED_HOSTS", "localhost:3000,127.0.0.1:3000"))

	// Catalog
	cfg.Catalog = CatalogConfig{
		BaseURL: strings.TrimSuffix(getEnv("CATALOG_BASE_URL", "https://dummyjson.com"), "/"),
	}

	// Persistence
	cfg.Persistence = PersistenceConfig{
		Driver:   strings.ToLower(getEnv("PERSISTENCE_DRIVER", DriverMemory)),
		FilePath: getEnv("PERSISTENCE_FILE", "data/storefront.json"),
	}

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	var err error
	if cfg.Catalog.Timeout, err = parseDurationEnv("CATALOG_TIMEOUT", "0s"); err != nil {
		return nil, fmt.Errorf("invalid CATALOG_TIMEOUT: %w", err)
	}
	if cfg.Worker.ReapInterval, err = parseDurationEnv("WORKSPACE_REAP_INTERVAL", "5m"); err != nil {
		return nil, fmt.Errorf("invalid WORKSPACE_REAP_INTERVAL: %w", err)
	}
	if cfg.Worker.WorkspaceIdleTTL, err = parseDurationEnv("WORKSPACE_IDLE_TTL", "2h"); err != nil {
		return nil, fmt.Errorf("invalid WORKSPACE_IDLE_TTL: %w", err)
	}

	switch cfg.Persistence.Driver {
	case DriverMemory, DriverRedis:
	case DriverFile:
		if cfg.Persistence.FilePath == "" {
			return nil, errors.New("PERSISTENCE_FILE must be set for the file driver")
		}
	case DriverPostgres:
		if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
			return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
		}
	default:
		return nil, fmt.Errorf("unknown PERSISTENCE_DRIVER %q", cfg.Persistence.Driver)
	}

	// The client cookie must survive restarts in production.
	if cfg.JWTSecret == "" && cfg.IsProduction() {
		return nil, errors.New("JWT_SECRET must be set in production")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// splitList splits a comma separated value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
