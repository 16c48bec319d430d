/*
Package configs loads and validates the application's configuration.

All settings come from environment variables; development mode supplies safe
defaults, while production refuses to start without its required secrets.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// AppConfig contains all configuration parameters required to run the server.
type AppConfig struct {
	// General server settings
	Environment string
	Port        int

	// Security settings
	AllowedOrigins []string
	JWTSecret      string

	// Session persistence. When DatabaseDSN is set, session state lives in
	// Postgres; otherwise it is kept in the JSON file at SessionFile.
	DatabaseDSN string
	SessionFile string

	// Commerce API settings
	CommerceAPIURL         string
	CommercePublishableKey string

	// Avatar storage settings. Avatar uploads are disabled when the bucket
	// is not configured.
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// AvatarsConfigured reports whether the avatar storage settings are complete.
func (c *AppConfig) AvatarsConfigured() bool {
	return c.S3BucketName != "" && c.S3Endpoint != "" &&
		c.S3AccessKeyID != "" && c.S3SecretAccessKey != ""
}

// LoadConfig reads and parses the configuration from environment variables.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	// --- General server settings ---
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
	}
	cfg.Port = port

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	// --- Security settings ---
	originsStr := os.Getenv("ALLOWED_ORIGINS")
	if originsStr != "" {
		origins := strings.Split(originsStr, ",")
		for _, origin := range origins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{}
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if cfg.Environment == "development" {
		if jwtSecret == "" {
			jwtSecret = "your_default_insecure_secret_key_change_me"
		}
	} else {
		if jwtSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET environment variable is required in %s environment for security", cfg.Environment)
		}
	}
	cfg.JWTSecret = jwtSecret

	// --- Session persistence ---
	cfg.DatabaseDSN = os.Getenv("DATABASE_URL")

	cfg.SessionFile = os.Getenv("SESSION_FILE")
	if cfg.SessionFile == "" {
		cfg.SessionFile = "storefront-sessions.json"
	}

	// --- Commerce API settings ---
	cfg.CommerceAPIURL = os.Getenv("COMMERCE_API_URL")
	if cfg.CommerceAPIURL == "" {
		if cfg.Environment == "development" {
			cfg.CommerceAPIURL = "http://localhost:9000"
		} else {
			return nil, fmt.Errorf("COMMERCE_API_URL environment variable is required in %s environment", cfg.Environment)
		}
	}
	cfg.CommercePublishableKey = os.Getenv("COMMERCE_PUBLISHABLE_KEY")

	// --- Avatar storage settings (optional) ---
	cfg.S3BucketName = os.Getenv("S3_BUCKET_NAME")
	cfg.S3Endpoint = os.Getenv("S3_ENDPOINT")
	cfg.S3AccessKeyID = os.Getenv("S3_ACCESS_KEY_ID")
	cfg.S3SecretAccessKey = os.Getenv("S3_SECRET_ACCESS_KEY")

	return cfg, nil
}
