// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverMongo    = "mongo"
	StoreDriverPostgres = "postgres"

	defaultClipDropURL = "https://clipdrop-api.co/text-to-image/v1"
)

type Config struct {
	Env      string
	Server   ServerConfig
	Store    StoreConfig
	ClipDrop ClipDropConfig
	Auth     AuthConfig
	Seed     SeedConfig
}

type ServerConfig struct {
	Port          string
	Host          string
	AllowedOrigin string
}

type StoreConfig struct {
	Driver        string
	MongoURI      string
	MongoDatabase string
	PostgresDSN   string
}

// ClipDropConfig is handed to the text-to-image client at construction.
type ClipDropConfig struct {
	APIKey  string
	APIURL  string
	Timeout time.Duration
}

type AuthConfig struct {
	JWTSecret string
}

// SeedConfig describes a user created at startup when Email is set.
type SeedConfig struct {
	Name    string
	Email   string
	Credits int
}

func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	_ = godotenv.Load()

	config := &Config{
		Env: os.Getenv("ENV"),
		Server: ServerConfig{
			Port:          getEnvOrDefault("PORT", "8080"),
			Host:          getEnvOrDefault("HOST", "0.0.0.0"),
			AllowedOrigin: getEnvOrDefault("CORS_ORIGIN", "*"),
		},
		Store: StoreConfig{
			Driver:        getEnvOrDefault("STORE_DRIVER", StoreDriverMongo),
			MongoURI:      os.Getenv("MONGODB_URI"),
			MongoDatabase: getEnvOrDefault("MONGODB_DATABASE", "imagify"),
			PostgresDSN:   os.Getenv("DATABASE_URL"),
		},
		ClipDrop: ClipDropConfig{
			APIKey:  os.Getenv("CLIPDROP_API"),
			APIURL:  getEnvOrDefault("CLIPDROP_API_URL", defaultClipDropURL),
			Timeout: time.Duration(getEnvAsInt("CLIPDROP_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
		},
		Seed: SeedConfig{
			Name:    getEnvOrDefault("SEED_USER_NAME", "Demo User"),
			Email:   os.Getenv("SEED_USER_EMAIL"),
			Credits: getEnvAsInt("SEED_USER_CREDITS", 5),
		},
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case StoreDriverMongo:
		if c.Store.MongoURI == "" {
			return fmt.Errorf("MONGODB_URI is required")
		}
	case StoreDriverPostgres:
		if c.Store.PostgresDSN == "" {
			return fmt.Errorf("DATABASE_URL is required")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.Store.Driver)
	}
	if c.ClipDrop.Timeout <= 0 {
		return fmt.Errorf("CLIPDROP_TIMEOUT_SECONDS must be positive")
	}
	if c.Seed.Credits < 0 {
		return fmt.Errorf("SEED_USER_CREDITS must not be negative")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
