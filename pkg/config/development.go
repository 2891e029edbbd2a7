package config

import (
	"os"
	"strconv"
)

func loadDevelopmentConfig(cfg *Config) {
	loadEnvOverrides(cfg)

	if cfg.ServerHost == "" {
		cfg.ServerHost = "127.0.0.1"
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "development-secret"
	}
}

func loadEnvOverrides(cfg *Config) {
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.DatabaseHost = v
	}
	if port, err := strconv.Atoi(os.Getenv("DB_PORT")); err == nil {
		cfg.DatabasePort = port
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.DatabaseName = v
	}
	if v := os.Getenv("BOOKS_COLLECTION"); v != "" {
		cfg.BooksCollection = v
	}
	if v := os.Getenv("USERS_COLLECTION"); v != "" {
		cfg.UsersCollection = v
	}
	if count, err := strconv.Atoi(os.Getenv("DB_CONNECT_RETRY_COUNT")); err == nil {
		cfg.DatabaseConnectRetryCount = count
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.ServerHost = v
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.ServerPort = port
	}
}
