package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Acquisition backend choices.
const (
	BackendPlaywright = "playwright"
	BackendStatic     = "static"
	BackendDemo       = "demo"
)

// Config holds application configuration derived from environment variables.
type Config struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	ServiceName  string
	CORSOrigins  []string

	// Acquisition layer
	Backend    string
	Headless   bool
	NavTimeout time.Duration
	RetryLimit int
	MaxAds     int

	// AdvertiserLookupLimit bounds how many fragments per batch get a
	// per-advertiser active-ads lookup.
	AdvertiserLookupLimit int
	AdvertiserAdsCap      int
	AdvertiserCacheTTL    time.Duration

	// RedisAddr enables the advertiser-estimate cache when non-empty.
	RedisAddr string

	// URL classification pattern overrides; empty means built-in defaults.
	MarketplacePatterns  []string
	DropshippingPatterns []string

	// Tracing configuration
	TracingEnabled    bool
	TempoEndpoint     string
	TracingSampleRate float64
}

// Load parses environment variables and returns a Config populated with
// defaults when variables are absent.
func Load() Config {
	cfg := Config{}

	cfg.Port = getenv("PORT", "8080")
	cfg.ReadTimeout = envDuration("READ_TIMEOUT", 10*time.Second)
	cfg.WriteTimeout = envDuration("WRITE_TIMEOUT", 120*time.Second)
	cfg.ServiceName = getenv("SERVICE_NAME", "adscout")
	cfg.CORSOrigins = envList("CORS_ORIGINS", []string{"https://localhost:3000"})

	cfg.Backend = getenv("ACQUIRER_BACKEND", BackendPlaywright)
	cfg.Headless = envBool("HEADLESS", true)
	cfg.NavTimeout = envDuration("NAV_TIMEOUT", 30*time.Second)
	cfg.RetryLimit = envInt("RETRY_LIMIT", 2)
	cfg.MaxAds = envInt("MAX_ADS_PER_SEARCH", 50)
	cfg.AdvertiserLookupLimit = envInt("ADVERTISER_LOOKUP_LIMIT", 10)
	cfg.AdvertiserAdsCap = envInt("ADVERTISER_ADS_CAP", 500)
	cfg.AdvertiserCacheTTL = envDuration("ADVERTISER_CACHE_TTL", 6*time.Hour)

	cfg.RedisAddr = getenv("REDIS_ADDR", "")

	cfg.MarketplacePatterns = envList("MARKETPLACE_PATTERNS", nil)
	cfg.DropshippingPatterns = envList("DROPSHIPPING_PATTERNS", nil)

	cfg.TracingEnabled = envBool("TRACING_ENABLED", false)
	cfg.TempoEndpoint = getenv("TEMPO_ENDPOINT", "tempo:4317")
	cfg.TracingSampleRate = envFloat("TRACING_SAMPLE_RATE", 1.0)

	return cfg
}

// getenv returns the value of the environment variable if set, otherwise def.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envDuration parses an environment variable into a time.Duration.
// The value can be a duration string (e.g. "5s") or a number of seconds.
// If the variable is unset or invalid, def is returned.
func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}

// envBool parses a boolean environment variable. Accepted values are those
// supported by strconv.ParseBool. When unset or invalid, def is returned.
func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return def
}

// envInt parses an integer environment variable. When unset or invalid, def is returned.
func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return def
}

// envFloat parses a float64 environment variable. When unset or invalid, def is returned.
func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return def
}

// envList parses a comma-separated environment variable, trimming whitespace
// around each entry. When unset or empty, def is returned.
func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
