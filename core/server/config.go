package server

import "strings"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// Features is a comma separated list of features to mount. Empty mounts all.
	Features string `mapstructure:"features" default:""`
}

// FeatureEnabled reports whether the named feature should be mounted.
func (c Config) FeatureEnabled(name string) bool {
	if strings.TrimSpace(c.Features) == "" {
		return true
	}
	for _, f := range strings.Split(c.Features, ",") {
		if strings.EqualFold(strings.TrimSpace(f), name) {
			return true
		}
	}
	return false
}

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
