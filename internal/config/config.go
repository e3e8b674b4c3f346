package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Auth     AuthConfig
	API      APIConfig
	Query    QueryConfig
	Cache    CacheConfig
}

type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type AuthConfig struct {
	JWTSecret    string
	TokenTTL     time.Duration
	SecureCookie bool
}

// APIConfig points the product pages at the JSON API they read through.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type QueryConfig struct {
	Amount int64
}

type CacheConfig struct {
	TTL time.Duration
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "dashboard")
	v.SetDefault("DB_PASSWORD", "secret")
	v.SetDefault("DB_NAME", "dashboard")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("AUTH_JWT_SECRET", "")
	v.SetDefault("AUTH_TOKEN_TTL", "24h")
	v.SetDefault("AUTH_SECURE_COOKIE", false)
	v.SetDefault("API_BASE_URL", "http://localhost:8080/api")
	v.SetDefault("API_TIMEOUT", "10s")
	v.SetDefault("QUERY_AMOUNT", 666)
	v.SetDefault("CACHE_TTL", "0s")

	shutdownTimeout, err := time.ParseDuration(v.GetString("SERVER_SHUTDOWN_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("parsing SERVER_SHUTDOWN_TIMEOUT: %w", err)
	}

	connMaxLifetime, err := time.ParseDuration(v.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, fmt.Errorf("parsing DB_CONN_MAX_LIFETIME: %w", err)
	}

	tokenTTL, err := time.ParseDuration(v.GetString("AUTH_TOKEN_TTL"))
	if err != nil {
		return nil, fmt.Errorf("parsing AUTH_TOKEN_TTL: %w", err)
	}

	apiTimeout, err := time.ParseDuration(v.GetString("API_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("parsing API_TIMEOUT: %w", err)
	}

	cacheTTL, err := time.ParseDuration(v.GetString("CACHE_TTL"))
	if err != nil {
		return nil, fmt.Errorf("parsing CACHE_TTL: %w", err)
	}

	secret := v.GetString("AUTH_JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("AUTH_JWT_SECRET must be set")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetInt("SERVER_PORT"),
			ShutdownTimeout: shutdownTimeout,
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Auth: AuthConfig{
			JWTSecret:    secret,
			TokenTTL:     tokenTTL,
			SecureCookie: v.GetBool("AUTH_SECURE_COOKIE"),
		},
		API: APIConfig{
			BaseURL: v.GetString("API_BASE_URL"),
			Timeout: apiTimeout,
		},
		Query: QueryConfig{
			Amount: v.GetInt64("QUERY_AMOUNT"),
		},
		Cache: CacheConfig{
			TTL: cacheTTL,
		},
	}

	return cfg, nil
}
