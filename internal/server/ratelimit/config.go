package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig throttles one path+method pair. A path ending in "/" acts
// as a prefix (see MatchEndpoint); Burst defaults to Limit when zero.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// LoadConfig builds the limiter configuration from RATE_LIMIT_* environment
// variables, with the per-endpoint table from DefaultEndpointConfigs.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: envDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-endpoint limits. URL extraction
// hits external proxies and possibly a headless browser, and imports write
// in bulk, so both sit far below the write-endpoint tier; the credential
// endpoints are clamped against brute force.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/extract/url", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/import/xlsx", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},

		{Path: "/auth/login", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/auth/register", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},

		{Path: "/candidatures", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/candidatures/", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/candidatures/", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/candidatures/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/extract/text", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},

		// Reads fall through to the default limit; /health is exempt in
		// MatchEndpoint.
	}
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			return v
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if v, err := time.ParseDuration(raw); err == nil {
			return v
		}
	}
	return fallback
}

// parseIPList splits a comma-separated address list into a lookup set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
