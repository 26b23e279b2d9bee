package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTrackers()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	c.CacheDir = strings.TrimSpace(c.CacheDir)
	if c.CacheDir, err = expandPath(c.CacheDir); err != nil {
		return fmt.Errorf("BTL_CACHE: %w", err)
	}
	c.AppData = strings.TrimSpace(c.AppData)
	c.Home = strings.TrimSpace(c.Home)
	return nil
}

func (c *Config) normalizeTrackers() {
	c.TrackersURL = strings.TrimSpace(c.TrackersURL)
	if c.TrackersURL == "" {
		c.TrackersURL = DefaultTrackersURL
	}
}

func (c *Config) normalizeLogging() {
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if c.LogFormat == "" {
		c.LogFormat = defaultLogFormat
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
}
