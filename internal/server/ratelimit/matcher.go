package ratelimit

import "strings"

// unlimited is returned for the health check
var unlimited = EndpointConfig{Path: "/health", Method: "GET"}

// MatchEndpoint returns the configuration for a request, or nil to use the default limit.
// Exact patterns win over prefix patterns; the first match in each group wins.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		cfg := unlimited
		return &cfg
	}

	for i := range configs {
		cfg := &configs[i]
		if cfg.Method == method && !strings.HasSuffix(cfg.Path, "/") && matchSegments(cfg.Path, path) {
			return cfg
		}
	}

	for i := range configs {
		cfg := &configs[i]
		if cfg.Method == method && strings.HasSuffix(cfg.Path, "/") && strings.HasPrefix(path, cfg.Path) {
			return cfg
		}
	}

	return nil
}

// matchSegments compares a pattern with a path segment by segment; "{...}" matches any one segment.
func matchSegments(pattern, path string) bool {
	want := strings.Split(strings.Trim(pattern, "/"), "/")
	got := strings.Split(strings.Trim(path, "/"), "/")
	if len(want) != len(got) {
		return false
	}
	for i, seg := range want {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			if got[i] == "" {
				return false
			}
			continue
		}
		if seg != got[i] {
			return false
		}
	}
	return true
}
