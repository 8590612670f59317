// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// CommentsBuiltIn is the only comment backend this server implements.
// Any other value of COMMENTS_TYPE disables comment submission entirely
// (the host is expected to embed a third-party widget instead).
const CommentsBuiltIn = "built_in"

// Comments groups the comment-pipeline feature flags. Which optional
// fields a submitted comment captures is decided here, not by the payload.
type Comments struct {
	Type string // comment backend; only "built_in" is handled by this server

	SaveIPAddress bool // capture the submitter's IP on the stored comment

	// AskForAuthorWebsite gates BOTH author_website and author_email
	// capture. The coupling is deliberate and mirrors the long-standing
	// behavior of the configuration this was ported from.
	AskForAuthorWebsite bool

	SaveUserID  bool // attach the user id of authenticated submitters (default true)
	AutoApprove bool // mark new comments approved immediately (default true)
}

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache + sessions)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Blog behavior
	Comments      Comments
	SearchEnabled bool
	PerPage       int // page size for public listings
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "smartblog"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "smartblog"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		Comments: Comments{
			Type:                envOrDefault("COMMENTS_TYPE", CommentsBuiltIn),
			SaveIPAddress:       boolEnv("COMMENTS_SAVE_IP_ADDRESS", false),
			AskForAuthorWebsite: boolEnv("COMMENTS_ASK_FOR_AUTHOR_WEBSITE", false),
			SaveUserID:          boolEnv("COMMENTS_SAVE_USER_ID", true),
			AutoApprove:         boolEnv("COMMENTS_AUTO_APPROVE", true),
		},
		SearchEnabled: boolEnv("SEARCH_ENABLED", true),
		PerPage:       intEnv("PER_PAGE", 10),
	}

	if cfg.PerPage < 1 {
		return nil, fmt.Errorf("PER_PAGE must be a positive integer")
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// boolEnv parses a boolean environment variable, returning a fallback if
// unset, empty, or unparseable.
func boolEnv(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// intEnv parses an integer environment variable, returning a fallback if
// unset, empty, or unparseable.
func intEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
