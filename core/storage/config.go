package storage

import (
	"strings"
	"time"
)

// Config holds the object store settings. One bucket carries the cumulative
// sheets, the registry exports and the exported match records, each under its
// own prefix.
type Config struct {
	Endpoint  string `mapstructure:"endpoint" default:"localhost:9000"`
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	UseSSL    bool   `mapstructure:"use_ssl" default:"false"`
	Bucket    string `mapstructure:"bucket" default:"debate-results"`
	Region    string `mapstructure:"region" default:""`
	// ExportPrefix is where extract and link upload their CSV output.
	ExportPrefix string `mapstructure:"export_prefix" default:"exports/"`
	// TimeoutSeconds bounds dialing, TLS handshakes and response headers.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Host returns the endpoint without a URL scheme.
func (c Config) Host() string {
	host := strings.TrimPrefix(c.Endpoint, "http://")
	host = strings.TrimPrefix(host, "https://")
	return strings.TrimSuffix(host, "/")
}

// Timeout returns the network timeout, 30s when unset.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ExportKey returns the object name for an exported file.
func (c Config) ExportKey(name string) string {
	return c.ExportPrefix + name
}
