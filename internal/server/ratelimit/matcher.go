package ratelimit

import "strings"

// MatchEndpoint resolves the config for a request path and method. Exact
// path matches win; entries whose path ends in "/" act as prefixes so that
// "/candidatures/" covers "/candidatures/{id}". The health check is never
// throttled. Returns nil when no entry applies.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	for i := range configs {
		ec := &configs[i]
		if ec.Method == method && strings.HasSuffix(ec.Path, "/") && strings.HasPrefix(path, ec.Path) {
			return ec
		}
	}

	return nil
}
