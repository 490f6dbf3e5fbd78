// Package config loads and validates application configuration from
// environment variables.
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment values.
const (
	EnvDevelopment = "dev"
	EnvProduction  = "prod"
)

// Config holds all application configuration.
type Config struct {
	Port              string
	Address           string
	Env               string
	LogLevel          string
	LogDir            string
	LogRetentionWeeks int
	MaxRequestBody    int64 // Maximum request body size in bytes

	RxNavBaseURL    string
	OpenFDABaseURL  string
	UpstreamTimeout time.Duration
	ResolverWorkers int
	ResolverCache   int

	OpenAIAPIKey string
	ChatModel    string
	EmbModel     string
}

// Load loads and validates configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnvWithDefault("PORT", "5050"),
		Address:           getEnvWithDefault("ADDRESS", "127.0.0.1"),
		Env:               getEnvWithDefault("ENV", EnvDevelopment),
		LogLevel:          getEnvWithDefault("LOG_LEVEL", "info"),
		LogDir:            getEnvWithDefault("LOG_DIR", "logs"),
		LogRetentionWeeks: getIntEnvWithDefault("LOG_RETENTION_WEEKS", 4),
		MaxRequestBody:    getInt64EnvWithDefault("MAX_REQUEST_BODY", 65536), // 64KB, requests are tiny
		RxNavBaseURL:      getEnvWithDefault("RXNAV_BASE_URL", "https://rxnav.nlm.nih.gov/REST"),
		OpenFDABaseURL:    getEnvWithDefault("OPENFDA_BASE_URL", "https://api.fda.gov/drug/label.json"),
		UpstreamTimeout:   time.Duration(getIntEnvWithDefault("UPSTREAM_TIMEOUT_SECONDS", 10)) * time.Second,
		ResolverWorkers:   getIntEnvWithDefault("RESOLVER_WORKERS", 4),
		ResolverCache:     getIntEnvWithDefault("RESOLVER_CACHE_SIZE", 512),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		ChatModel:         getEnvWithDefault("AI_MODEL_CHAT", "gpt-4o-mini"),
		EmbModel:          getEnvWithDefault("AI_MODEL_EMB", "text-embedding-3-small"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// validateConfig validates all configuration values.
func validateConfig(cfg *Config) error {
	if err := validatePort(cfg.Port); err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}
	if err := validateAddress(cfg.Address); err != nil {
		return fmt.Errorf("invalid ADDRESS: %w", err)
	}
	if cfg.Env != EnvDevelopment && cfg.Env != EnvProduction {
		return fmt.Errorf("invalid ENV: must be %q or %q, got %q", EnvDevelopment, EnvProduction, cfg.Env)
	}
	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if cfg.LogRetentionWeeks < 1 || cfg.LogRetentionWeeks > 52 {
		return fmt.Errorf("invalid LOG_RETENTION_WEEKS: must be between 1 and 52, got %d", cfg.LogRetentionWeeks)
	}
	if cfg.MaxRequestBody < 1024 {
		return fmt.Errorf("invalid MAX_REQUEST_BODY: must be at least 1024 bytes, got %d", cfg.MaxRequestBody)
	}
	if err := validateBaseURL(cfg.RxNavBaseURL, "RXNAV_BASE_URL"); err != nil {
		return err
	}
	if err := validateBaseURL(cfg.OpenFDABaseURL, "OPENFDA_BASE_URL"); err != nil {
		return err
	}
	if cfg.UpstreamTimeout < time.Second || cfg.UpstreamTimeout > 5*time.Minute {
		return fmt.Errorf("invalid UPSTREAM_TIMEOUT_SECONDS: must be between 1 and 300, got %s", cfg.UpstreamTimeout)
	}
	if cfg.ResolverWorkers < 1 || cfg.ResolverWorkers > 32 {
		return fmt.Errorf("invalid RESOLVER_WORKERS: must be between 1 and 32, got %d", cfg.ResolverWorkers)
	}
	if cfg.ResolverCache < 16 {
		return fmt.Errorf("invalid RESOLVER_CACHE_SIZE: must be at least 16, got %d", cfg.ResolverCache)
	}
	return nil
}

// validatePort validates the PORT environment variable.
func validatePort(port string) error {
	if port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	portNum, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("PORT must be a valid number: %w", err)
	}

	if portNum < 1024 || portNum > 65535 {
		return fmt.Errorf("PORT must be between 1024 and 65535")
	}

	return nil
}

// validateAddress validates the ADDRESS environment variable.
func validateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("ADDRESS cannot be empty")
	}

	if address == "localhost" {
		return nil
	}

	if ip := net.ParseIP(address); ip == nil {
		return fmt.Errorf("ADDRESS must be a valid IP address or 'localhost', got: %s", address)
	}

	return nil
}

// validateLogLevel validates the LOG_LEVEL environment variable.
func validateLogLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error; got %q", level)
}

// validateBaseURL checks that an upstream base URL is an absolute http(s) URL.
func validateBaseURL(raw, name string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid %s: must be an absolute http(s) URL, got %q", name, raw)
	}
	return nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnvWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getInt64EnvWithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
