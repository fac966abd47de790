package ratelimit

import (
	"strings"
)

// MatchEndpoint returns the rule for a request, or nil to use the default
// limit. Exact and pattern rules win over prefix rules; among prefix rules
// the first listed wins. GET /health is always unlimited.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{Path: "/health", Method: "GET", Limit: 0}
	}

	for i := range configs {
		rule := &configs[i]
		if rule.Method == method && matchPattern(rule.Path, path) {
			return rule
		}
	}

	for i := range configs {
		rule := &configs[i]
		if rule.Method == method && strings.HasSuffix(rule.Path, "/") && strings.HasPrefix(path, rule.Path) {
			return rule
		}
	}

	return nil
}

// matchPattern compares path segments; "{name}" matches any one segment.
func matchPattern(pattern, path string) bool {
	if pattern == path {
		return true
	}
	if strings.HasSuffix(pattern, "/") {
		return false
	}
	want := strings.Split(strings.Trim(pattern, "/"), "/")
	got := strings.Split(strings.Trim(path, "/"), "/")
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if strings.HasPrefix(want[i], "{") && strings.HasSuffix(want[i], "}") {
			if got[i] == "" {
				return false
			}
			continue
		}
		if want[i] != got[i] {
			return false
		}
	}
	return true
}
