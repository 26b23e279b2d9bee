package trackers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"

	"btl/internal/config"
	"btl/internal/logging"
)

const (
	// DefaultSeparator joins tracker URLs inside the cache file and on the
	// aria2c command line.
	DefaultSeparator = ","

	defaultTimeout = 60 * time.Second
	lockFileName   = "btl.lock"
	filePerm       = 0o644
)

// HTTPDoer describes the HTTP client used to fetch the remote list.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures the cache.
type Option func(*Cache)

// WithHTTPClient injects the HTTP client (primarily for tests).
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Cache) {
		if client != nil {
			c.client = client
		}
	}
}

// WithURL overrides the remote tracker list location.
func WithURL(url string) Option {
	return func(c *Cache) {
		if url = strings.TrimSpace(url); url != "" {
			c.url = url
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Cache reads and refreshes the per-day tracker list files in one directory.
type Cache struct {
	dir    string
	url    string
	client HTTPDoer
	logger *slog.Logger
	lock   *flock.Flock
}

// New constructs a cache rooted at dir. The directory must already exist;
// see ResolveCacheDirectory.
func New(dir string, opts ...Option) *Cache {
	c := &Cache{
		dir:    dir,
		url:    config.DefaultTrackersURL,
		client: &http.Client{Timeout: defaultTimeout},
		logger: logging.NewNop(),
		lock:   flock.New(filepath.Join(dir, lockFileName)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.NewComponentLogger(c.logger, "trackers")
	return c
}

// Path returns the cache file path for day.
func (c *Cache) Path(day Stamp) string {
	return filepath.Join(c.dir, day.FileName())
}

// GetTrackerList returns the cached list for day, downloading it first when
// the file is absent or forceUpdate is set.
func (c *Cache) GetTrackerList(ctx context.Context, day Stamp, forceUpdate bool) (string, error) {
	path := c.Path(day)

	present, err := fileExists(path)
	if err != nil {
		return "", err
	}

	if !present || forceUpdate {
		c.logger.Info("update tracker list",
			logging.String("path", path),
			logging.Bool("forced", forceUpdate),
		)
		if err := c.refresh(ctx, day, forceUpdate); err != nil {
			return "", err
		}
	} else {
		c.logger.Debug("using cached tracker list", logging.String("path", path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read tracker cache: %w", err)
	}
	return string(data), nil
}

// DownloadTrackerList fetches the remote list, joins the non-empty lines with
// separator, persists the result as the day's cache file and returns it.
func (c *Cache) DownloadTrackerList(ctx context.Context, day Stamp, separator string) (string, error) {
	if err := c.lock.Lock(); err != nil {
		return "", fmt.Errorf("lock tracker cache: %w", err)
	}
	defer c.lock.Unlock() //nolint:errcheck

	return c.download(ctx, day, separator)
}

// refresh holds the lock across the existence re-check and the download so a
// second btl process waiting on the lock reuses the first one's file.
func (c *Cache) refresh(ctx context.Context, day Stamp, force bool) error {
	if err := c.lock.Lock(); err != nil {
		return fmt.Errorf("lock tracker cache: %w", err)
	}
	defer c.lock.Unlock() //nolint:errcheck

	if !force {
		present, err := fileExists(c.Path(day))
		if err != nil {
			return err
		}
		if present {
			c.logger.Debug("tracker list written by another process", logging.String("path", c.Path(day)))
			return nil
		}
	}

	_, err := c.download(ctx, day, DefaultSeparator)
	return err
}

func (c *Cache) download(ctx context.Context, day Stamp, separator string) (string, error) {
	body, err := c.fetch(ctx)
	if err != nil {
		return "", err
	}

	trackers := SplitList(body)
	if len(trackers) == 0 {
		return "", &NetworkError{Operation: "fetch_trackers", URL: c.url, Message: "response contained no trackers"}
	}
	list := strings.Join(trackers, separator)

	path := c.Path(day)
	if err := writeAtomic(path, []byte(list)); err != nil {
		return "", err
	}

	c.logger.Info("tracker list cached",
		logging.String("path", path),
		logging.Int("trackers", len(trackers)),
		logging.String("downloaded", humanize.Bytes(uint64(len(body)))),
	)
	return list, nil
}

func (c *Cache) fetch(ctx context.Context) (string, error) {
	c.logger.Debug("downloading tracker list", logging.String("url", c.url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("build tracker request: %w", err)
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &NetworkError{Operation: "fetch_trackers", URL: c.url, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &NetworkError{
			Operation:  "fetch_trackers",
			URL:        c.url,
			StatusCode: resp.StatusCode,
			Message:    "unexpected status " + resp.Status,
		}
	}

	// The list is only usable once every chunk has arrived.
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{Operation: "fetch_trackers", URL: c.url, Message: "read body", Err: err}
	}
	return string(data), nil
}

// SplitList splits a newline-delimited body into trimmed, non-empty lines,
// preserving their order.
func SplitList(body string) []string {
	lines := strings.Split(body, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

func writeAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, filePerm); err != nil {
		return fmt.Errorf("write tracker cache temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace tracker cache file: %w", err)
	}
	return nil
}

func fileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat tracker cache: %w", err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("tracker cache path %q is a directory", path)
	}
	return true, nil
}
