package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	AppSecret   string
	FrontendURL string
	MailHost    string
	MailPort    int
	MailUser    string
	MailPass    string
	MailFrom    string
}

var (
	// ErrMissingAppSecret is returned when APP_SECRET is not set.
	ErrMissingAppSecret = errors.New("APP_SECRET is required")
	// ErrMissingFrontendURL is returned when FRONTEND_URL is not set.
	ErrMissingFrontendURL = errors.New("FRONTEND_URL is required")
)

// Load builds Config from environment with sensible defaults.
// The signing secret and frontend URL have no defaults: starting
// without them is a configuration error, not something to limp past.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		MySQLDSN:    getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/storefront?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:     getEnvInt("REDIS_DB", 0),
		RedisPass:   os.Getenv("REDIS_PASSWORD"),
		AppSecret:   os.Getenv("APP_SECRET"),
		FrontendURL: os.Getenv("FRONTEND_URL"),
		MailHost:    getEnv("MAIL_HOST", "localhost"),
		MailPort:    getEnvInt("MAIL_PORT", 587),
		MailUser:    os.Getenv("MAIL_USER"),
		MailPass:    os.Getenv("MAIL_PASS"),
		MailFrom:    getEnv("MAIL_FROM", "no-reply@storefront.local"),
	}
	if cfg.AppSecret == "" {
		return nil, ErrMissingAppSecret
	}
	if cfg.FrontendURL == "" {
		return nil, ErrMissingFrontendURL
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
