package config

import (
	"fmt"
	"os"
)

const defaultPort = "3001"

// Config holds the environment-backed settings for the API node.
type Config struct {
	DatabaseURL string
	Port        string
	// JWTPublicKey is the PEM-encoded RSA public key bearer tokens are
	// verified against.
	JWTPublicKey []byte
	// OTLPEndpoint enables trace export when non-empty.
	OTLPEndpoint string
}

// Load reads configuration from the environment. DATABASE_URL and the JWT
// public key are required; everything else has a default.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		Port:         os.Getenv("PORT"),
		OTLPEndpoint: os.Getenv("OTEL_COLLECTOR_ENDPOINT"),
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL not set in environment")
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}

	key, err := loadPublicKey()
	if err != nil {
		return nil, err
	}
	cfg.JWTPublicKey = key

	return cfg, nil
}

// loadPublicKey reads the key from JWT_PUBLIC_KEY directly, or from the
// file named by JWT_PUBLIC_KEY_FILE.
func loadPublicKey() ([]byte, error) {
	if pem := os.Getenv("JWT_PUBLIC_KEY"); pem != "" {
		return []byte(pem), nil
	}
	if path := os.Getenv("JWT_PUBLIC_KEY_FILE"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read JWT_PUBLIC_KEY_FILE: %w", err)
		}
		return b, nil
	}
	return nil, fmt.Errorf("JWT_PUBLIC_KEY or JWT_PUBLIC_KEY_FILE not set in environment")
}
