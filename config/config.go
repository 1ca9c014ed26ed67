package config

import (
	"fmt"
	"os"
)

// Config holds all environment-driven settings. It is built once in main and
// passed down explicitly; nothing else reads the process environment.
type Config struct {
	Host      string
	Port      string
	MongoURI  string
	APIPrefix string

	AccessTokenSecret  string
	RefreshTokenSecret string

	PostmarkAPIToken string
	EmailSender      string

	UploadsDir string
}

// Load reads configuration from environment variables. The token secrets are
// required; everything else has a workable default.
func Load() (*Config, error) {
	cfg := &Config{
		Host:               os.Getenv("HOST"),
		Port:               getEnv("PORT", "3000"),
		MongoURI:           getEnv("MONGODB_URI", "mongodb://localhost:27017/shooper"),
		APIPrefix:          getEnv("API_PREFIX", "/api/v1"),
		AccessTokenSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		PostmarkAPIToken:   os.Getenv("POSTMARK_API_TOKEN"),
		EmailSender:        os.Getenv("EMAIL_SENDER"),
		UploadsDir:         getEnv("UPLOADS_DIR", "public/uploads"),
	}

	if cfg.AccessTokenSecret == "" {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET is not set")
	}
	if cfg.RefreshTokenSecret == "" {
		return nil, fmt.Errorf("REFRESH_TOKEN_SECRET is not set")
	}
	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
