package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config encapsulates all configuration values for btl.
//
// Sections by concern:
//   - Cache location: BTL_CACHE override plus the APPDATA/HOME roots
//   - Tracker source: remote list URL and HTTP timeout
//   - Logging: level and format
type Config struct {
	CacheDir string `envconfig:"BTL_CACHE"`
	AppData  string `envconfig:"APPDATA"`
	Home     string `envconfig:"HOME"`

	TrackersURL string        `envconfig:"BTL_TRACKERS_URL" default:"https://raw.githubusercontent.com/ngosang/trackerslist/master/trackers_best_ip.txt"`
	HTTPTimeout time.Duration `envconfig:"BTL_HTTP_TIMEOUT" default:"60s"`

	LogLevel  string `envconfig:"BTL_LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"BTL_LOG_FORMAT" default:"console"`

	Platform Platform `ignored:"true"`
}

// Load reads the environment, normalizes and validates the result. The
// platform is injected so tests can exercise Windows resolution rules on
// any host.
func Load(platform Platform) (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	cfg.Platform = platform

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DownloaderBinary returns the aria2 executable name for the platform.
func (c *Config) DownloaderBinary() string {
	return c.Platform.Executable(downloaderBaseName)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
