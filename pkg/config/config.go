package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
)

type Config struct {
	DatabaseHost              string
	DatabasePort              int
	DatabaseName              string
	DatabaseConnectRetryCount int
	DatabaseConnectRetryDelay time.Duration
	BooksCollection           string
	UsersCollection           string
	Hostname                  string
	JWTSecret                 string
	ServerHost                string
	ServerPort                int
}

const environmentENV = "ENVIRONMENT"

func New() (*Config, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cfg := &Config{
		DatabaseHost:              "localhost",
		DatabasePort:              27017,
		DatabaseName:              "libooktrac",
		DatabaseConnectRetryCount: 5,
		DatabaseConnectRetryDelay: 2 * time.Second,
		BooksCollection:           "books",
		UsersCollection:           "users",
		Hostname:                  hostname,
		ServerPort:                3690,
	}

	switch os.Getenv(environmentENV) {
	case "development", "":
		loadDevelopmentConfig(cfg)
	case "test":
		loadTestConfig(cfg)
	case "production":
		loadProductionConfig(cfg)
	}

	if cfg.JWTSecret == "" && os.Getenv(environmentENV) == "production" {
		return nil, errors.New("missing required config: JWT_SECRET")
	}

	return cfg, nil
}

// DatabaseURI renders the connection string handed to the mongo driver.
func (cfg *Config) DatabaseURI() string {
	return fmt.Sprintf("mongodb://%s:%d", cfg.DatabaseHost, cfg.DatabasePort)
}

// Collections lists every collection the bootstrapper must ensure exists.
func (cfg *Config) Collections() []string {
	return []string{cfg.BooksCollection, cfg.UsersCollection}
}
