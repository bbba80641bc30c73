package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the limit applied to one route pattern.
type EndpointConfig struct {
	Path   string        // Route pattern; "{name}" matches one segment, a trailing "/" matches any suffix
	Method string        // HTTP method
	Limit  int           // Requests per window
	Window time.Duration // Refill window
	Burst  int           // Bucket capacity, Limit when 0
}

// LoadConfig reads the limiter configuration from RATE_LIMIT_* environment variables.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	generateLimit := getEnvInt("RATE_LIMIT_GENERATE_PER_HOUR", 20)
	regenerateLimit := getEnvInt("RATE_LIMIT_REGENERATE_PER_HOUR", 60)

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: EndpointConfigs(generateLimit, regenerateLimit),
	}
}

// EndpointConfigs returns the per-route limits. Webhook-backed routes get the strictest ones.
func EndpointConfigs(generatePerHour, regeneratePerHour int) []EndpointConfig {
	return []EndpointConfig{
		// Generation: one webhook call per request
		{Path: "/api/sessions", Method: "POST", Limit: generatePerHour, Window: time.Hour, Burst: 3},
		{Path: "/api/sessions/stream", Method: "POST", Limit: generatePerHour, Window: time.Hour, Burst: 3},
		{Path: "/form", Method: "POST", Limit: generatePerHour, Window: time.Hour, Burst: 3},

		// Regeneration
		{Path: "/api/sessions/{id}/sections/{key}/regenerate", Method: "POST", Limit: regeneratePerHour, Window: time.Hour, Burst: 5},
		{Path: "/preview/{id}/sections/{key}/regenerate", Method: "POST", Limit: regeneratePerHour, Window: time.Hour, Burst: 5},

		// Local writes
		{Path: "/api/sessions/{id}/sections/{key}/toggle", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/preview/{id}/sections/{key}/toggle", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/api/sessions/", Method: "DELETE", Limit: 60, Window: time.Minute, Burst: 10},

		// Reads use the default limit; /health is unlimited (see MatchEndpoint)
	}
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
