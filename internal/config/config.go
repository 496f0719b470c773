// Package config provides configuration loading and validation for the gigmatch service.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// ServerConfig holds the settings the HTTP server needs, read from the
// environment. DatabaseURL is required; everything else has a default.
type ServerConfig struct {
	Port         int
	DatabaseURL  string
	SynonymsFile string // optional JSON override for the skill synonym table
}

// NewServerConfig builds a ServerConfig from the PORT, DATABASE_URL, and
// SYNONYMS_FILE environment variables.
func NewServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{
		Port:         8080,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		SynonymsFile: os.Getenv("SYNONYMS_FILE"),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize validates the configuration.
func (c *ServerConfig) normalize() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.SynonymsFile != "" {
		if _, err := os.Stat(c.SynonymsFile); os.IsNotExist(err) {
			return fmt.Errorf("synonym table file not found: %s", c.SynonymsFile)
		}
	}
	return nil
}
