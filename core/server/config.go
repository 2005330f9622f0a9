package server

import "strings"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// Prefix is the versioned route prefix every feature is mounted under.
	Prefix string `mapstructure:"prefix" default:"/api/v1"`
	// BodyLimitMB caps request bodies (ingest batches can be large).
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"16"`
}

// RoutePrefix returns the prefix normalised to a leading slash and no trailing slash.
func (c Config) RoutePrefix() string {
	p := strings.Trim(strings.TrimSpace(c.Prefix), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

// BodyLimit returns the request body limit in bytes.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 4 * 1024 * 1024
	}
	return c.BodyLimitMB * 1024 * 1024
}
