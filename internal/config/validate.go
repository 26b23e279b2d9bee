package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTrackers(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTrackers() error {
	parsed, err := url.Parse(c.TrackersURL)
	if err != nil {
		return fmt.Errorf("BTL_TRACKERS_URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("BTL_TRACKERS_URL must be an http(s) URL, got %q", c.TrackersURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("BTL_TRACKERS_URL is missing a host: %q", c.TrackersURL)
	}
	if c.HTTPTimeout <= 0 {
		return errors.New("BTL_HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("BTL_LOG_FORMAT: unsupported value %q (want console or json)", c.LogFormat)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("BTL_LOG_LEVEL: unsupported value %q", c.LogLevel)
	}
	return nil
}
