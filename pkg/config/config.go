package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const devJWTSecret = "nexfolio-dev-secret-change-me-in-production!"

type Config struct {
	Env          string
	Server       ServerConfig
	Database     DatabaseConfig
	JWT          JWTConfig
	Upload       UploadConfig
	Subscription SubscriptionConfig
	SeedDemo     bool
}

type ServerConfig struct {
	Port        string
	CORSOrigins string
	BodyLimitMB int
}

type DatabaseConfig struct {
	Driver             string // postgres | sqlite
	URL                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	BusyTimeoutMS      int
	AutoMigrate        bool
	LogLevel           string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
	CookieName  string
}

type UploadConfig struct {
	Backend   string // local | s3
	Dir       string
	URLPrefix string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string
}

type SubscriptionConfig struct {
	ExpiryCron string
	PeriodDays int
}

func Load() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		log.Printf("Warning: %v", err)
	}

	cfg := &Config{
		Env: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port:        getEnv("PORT", "3000"),
			CORSOrigins: getEnv("CORS_ORIGINS", "*"),
			BodyLimitMB: getEnvInt("BODY_LIMIT_MB", 16),
		},
		Database: DatabaseConfig{
			Driver:             strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
			URL:                getEnv("DATABASE_URL", "file:nexfolio.db"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeMin: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 30),
			BusyTimeoutMS:      getEnvInt("DB_BUSY_TIMEOUT_MS", 10000),
			AutoMigrate:        getEnvBool("DB_AUTO_MIGRATE", true),
			LogLevel:           getEnv("DB_LOG_LEVEL", "error"),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", ""),
			ExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 168),
			CookieName:  getEnv("SESSION_COOKIE", "nexfolio_session"),
		},
		Upload: UploadConfig{
			Backend:     strings.ToLower(getEnv("UPLOAD_BACKEND", "local")),
			Dir:         getEnv("UPLOAD_DIR", "./uploads"),
			URLPrefix:   getEnv("UPLOAD_URL_PREFIX", "/uploads"),
			S3Bucket:    getEnv("S3_BUCKET", ""),
			S3Region:    getEnv("S3_REGION", "auto"),
			S3Endpoint:  getEnv("S3_ENDPOINT", ""),
			S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
			S3SecretKey: getEnv("S3_SECRET_KEY", ""),
			S3PublicURL: getEnv("S3_PUBLIC_URL", ""),
		},
		Subscription: SubscriptionConfig{
			ExpiryCron: getEnv("SUBSCRIPTION_EXPIRY_CRON", ""),
			PeriodDays: getEnvInt("SUBSCRIPTION_PERIOD_DAYS", 30),
		},
		SeedDemo: getEnvBool("SEED_DEMO", false),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDotEnv copies path into the environment without overriding variables
// that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("could not load %s: %w", path, err)
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "test"
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("invalid DB_DRIVER %q: want postgres or sqlite", c.Database.Driver)
	}
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}

	if c.JWT.Secret == "" {
		if !c.IsDevelopment() {
			return fmt.Errorf("JWT_SECRET is required when APP_ENV=%s", c.Env)
		}
		c.JWT.Secret = devJWTSecret
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}

	switch c.Upload.Backend {
	case "local":
	case "s3":
		if c.Upload.S3Bucket == "" || c.Upload.S3PublicURL == "" {
			return fmt.Errorf("S3_BUCKET and S3_PUBLIC_URL are required for UPLOAD_BACKEND=s3")
		}
	default:
		return fmt.Errorf("invalid UPLOAD_BACKEND %q: want local or s3", c.Upload.Backend)
	}

	if c.Subscription.PeriodDays <= 0 {
		c.Subscription.PeriodDays = 30
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return defaultValue
	}
}
