package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultCommerceBaseURL is the commerce platform REST API root.
const DefaultCommerceBaseURL = "https://rest.gohighlevel.com/v1"

// Config holds all configuration for the application.
// Values come from the environment, optionally seeded from .env and config.yaml.
type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	Commerce  CommerceConfig
	CORS      CORSConfig
	Telemetry TelemetryConfig
	LogLevel  string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type AuthConfig struct {
	InternalToken string // shared secret expected in x-internal-token
}

type CommerceConfig struct {
	APIKey  string
	BaseURL string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type TelemetryConfig struct {
	ServiceName  string
	OTLPEndpoint string
}

// Load reads configuration from .env, config.yaml and the environment, in
// increasing order of precedence. Missing files are not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/final-order-relay")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()

	v.SetDefault("PORT", "4000")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("READ_TIMEOUT", 15)
	v.SetDefault("WRITE_TIMEOUT", 75)
	v.SetDefault("SHUTDOWN_TIMEOUT", 30)
	v.SetDefault("GHL_API_BASE_URL", DefaultCommerceBaseURL)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("OTEL_SERVICE_NAME", "final-order-relay")
	v.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("PORT"),
			Host:            v.GetString("HOST"),
			ReadTimeout:     v.GetInt("READ_TIMEOUT"),
			WriteTimeout:    v.GetInt("WRITE_TIMEOUT"),
			ShutdownTimeout: v.GetInt("SHUTDOWN_TIMEOUT"),
		},
		Auth: AuthConfig{
			InternalToken: v.GetString("INTERNAL_TOKEN"),
		},
		Commerce: CommerceConfig{
			APIKey:  v.GetString("GHL_API_KEY"),
			BaseURL: strings.TrimRight(v.GetString("GHL_API_BASE_URL"), "/"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Telemetry: TelemetryConfig{
			ServiceName:  v.GetString("OTEL_SERVICE_NAME"),
			OTLPEndpoint: v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
// The token and API key are checked per request, not here.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Commerce.BaseURL == "" {
		return fmt.Errorf("GHL_API_BASE_URL must not be empty")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Warnings lists settings that are allowed to be empty at startup but will
// make every order request fail.
func (c *Config) Warnings() []string {
	var out []string
	if c.Auth.InternalToken == "" {
		out = append(out, "INTERNAL_TOKEN is not set; all order requests will be rejected")
	}
	if c.Commerce.APIKey == "" {
		out = append(out, "GHL_API_KEY is not set; order submission will fail")
	}
	return out
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
