package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is a rate limit rule for one route.
type EndpointConfig struct {
	Path   string        // Route pattern; "{name}" matches one segment, a trailing "/" matches any suffix
	Method string        // HTTP method
	Limit  int           // Maximum requests per window; zero or less means unlimited
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig builds the limiter configuration from RATE_LIMIT_* environment
// variables. exportPerHour sets the export tier unless
// RATE_LIMIT_EXPORT_PER_HOUR overrides it.
func LoadConfig(exportPerHour int) *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	exportPerHour = getEnvInt("RATE_LIMIT_EXPORT_PER_HOUR", exportPerHour)

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(getEnvString("RATE_LIMIT_WHITELIST", "")),
		Blacklist:       parseIPList(getEnvString("RATE_LIMIT_BLACKLIST", "")),
		EndpointConfigs: DefaultEndpointConfigs(exportPerHour),
	}
}

// DefaultEndpointConfigs returns the built-in rules. Exports launch a
// browser, so they get the strictest budget.
func DefaultEndpointConfigs(exportPerHour int) []EndpointConfig {
	if exportPerHour <= 0 {
		exportPerHour = 30
	}
	burst := max(1, exportPerHour/10)
	return []EndpointConfig{
		// Browser-backed
		{Path: "/sessions/{id}/export", Method: "POST", Limit: exportPerHour, Window: time.Hour, Burst: burst},

		// Session creation
		{Path: "/sessions", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},

		// Edits
		{Path: "/sessions/", Method: "POST", Limit: 600, Window: time.Minute, Burst: 60},
		{Path: "/sessions/", Method: "PUT", Limit: 600, Window: time.Minute, Burst: 60},
		{Path: "/sessions/", Method: "DELETE", Limit: 600, Window: time.Minute, Burst: 60},

		// Event streams stay open; don't count reconnects against reads
		{Path: "/sessions/{id}/events", Method: "GET", Limit: 0},
	}
}

func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
