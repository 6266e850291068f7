// Package config provides environment-based configuration for the service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// AppConfig holds the service configuration loaded from environment variables.
type AppConfig struct {
	Port         int
	DatabaseURL  string
	GeminiAPIKey string   // empty disables AI follow-up drafting
	ResendAPIKey string   // empty disables transactional email
	MailFrom     string   // sender address for transactional email
	ProxyMirrors []string // CORS-proxy mirrors for page enrichment
	UseBrowser   bool     // headless-browser fallback for JS-rendered pages
}

// NewAppConfig creates the service configuration from environment variables.
// DATABASE_URL is required; everything else has a default or degrades a
// feature when unset.
func NewAppConfig() (*AppConfig, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %v", err)
	}

	config := &AppConfig{
		Port:         port,
		DatabaseURL:  databaseURL,
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		MailFrom:     os.Getenv("MAIL_FROM"),
		ProxyMirrors: parseMirrors(os.Getenv("PROXY_MIRRORS")),
		UseBrowser:   os.Getenv("USE_BROWSER") == "true",
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *AppConfig) normalize() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.ResendAPIKey != "" && c.MailFrom == "" {
		return fmt.Errorf("MAIL_FROM is required when RESEND_API_KEY is set")
	}
	return nil
}

// parseMirrors splits a comma-separated mirror list, dropping empty entries.
// An empty input yields nil; callers fall back to the built-in mirrors.
func parseMirrors(raw string) []string {
	if raw == "" {
		return nil
	}
	var mirrors []string
	for _, m := range strings.Split(raw, ",") {
		if m = strings.TrimSpace(m); m != "" {
			mirrors = append(mirrors, m)
		}
	}
	return mirrors
}
