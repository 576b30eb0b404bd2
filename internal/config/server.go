package config

import (
	"net"
	"strings"
)

// ServerConfig holds settings for the HTTP server.
type ServerConfig struct {
	ListenAddr string

	// AllowOrigins is a comma-separated CORS origin list
	AllowOrigins string
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		ListenAddr:   ":3000",
		AllowOrigins: "*",
	}
}

// Validate checks the listen address.
func (s *ServerConfig) Validate() error {
	if _, _, err := net.SplitHostPort(s.ListenAddr); err != nil {
		return invalid("listen address %q: %v", s.ListenAddr, err)
	}
	if strings.TrimSpace(s.AllowOrigins) == "" {
		return invalid("allowed origins must not be empty")
	}
	return nil
}
