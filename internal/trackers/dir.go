package trackers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"btl/internal/config"
)

const (
	windowsCacheDirName = "btl-cache"
	homeCacheDirName    = ".btl-cache"
	dirPerm             = 0o755
)

// ResolveCacheDirectory picks the cache directory and creates it if absent.
//
// Resolution order: BTL_CACHE; on Windows APPDATA\btl-cache; otherwise
// $HOME/.btl-cache. Filesystem errors are returned unchanged in meaning.
func ResolveCacheDirectory(cfg *config.Config) (string, error) {
	if cfg == nil {
		return "", errors.New("config required")
	}

	var dir string
	switch {
	case cfg.CacheDir != "":
		dir = cfg.CacheDir
	case cfg.Platform.Windows:
		if cfg.AppData == "" {
			return "", errors.New("resolve cache directory: APPDATA is not set (set BTL_CACHE to override)")
		}
		dir = filepath.Join(cfg.AppData, windowsCacheDirName)
	default:
		home := cfg.Home
		if home == "" {
			resolved, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("resolve cache directory: %w (set BTL_CACHE to override)", err)
			}
			home = resolved
		}
		dir = filepath.Join(home, homeCacheDirName)
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", fmt.Errorf("create cache directory %q: %w", dir, err)
	}
	return dir, nil
}
