package aria2

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"btl/internal/logging"
)

// TrackerFlag is the aria2c option that receives the comma-separated list.
const TrackerFlag = "--bt-tracker"

// ErrNoTrackers is returned by Launch when the tracker list is empty.
var ErrNoTrackers = errors.New("aria2: tracker list is empty")

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, stdin io.Reader, onLine func(string)) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithStdin replaces the child's standard input. The default is os.Stdin.
func WithStdin(r io.Reader) Option {
	return func(c *Client) {
		c.stdin = r
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client wraps aria2c invocations.
type Client struct {
	binary string
	exec   Executor
	stdin  io.Reader
	logger *slog.Logger
}

// New constructs an aria2 client for the given executable.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("aria2 binary required")
	}
	client := &Client{
		binary: binary,
		exec:   commandExecutor{},
		stdin:  os.Stdin,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "aria2")
	return client, nil
}

// Args returns the argument vector: the tracker option first, then every
// pass-through argument in order.
func Args(trackers string, passthrough []string) []string {
	args := make([]string, 0, len(passthrough)+1)
	args = append(args, TrackerFlag+"="+trackers)
	return append(args, passthrough...)
}

// CommandLine renders binary and args as a single shell-like line for display.
func CommandLine(binary string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, quote(binary))
	for _, arg := range args {
		parts = append(parts, quote(arg))
	}
	return strings.Join(parts, " ")
}

// Launch echoes the command line to out, starts aria2c and relays each line
// of its stdout and stderr to out until it exits.
func (c *Client) Launch(ctx context.Context, trackers string, passthrough []string, out io.Writer) error {
	if strings.TrimSpace(trackers) == "" {
		return ErrNoTrackers
	}
	if out == nil {
		out = io.Discard
	}

	args := Args(trackers, passthrough)
	if _, err := fmt.Fprintln(out, CommandLine(c.binary, args)); err != nil {
		return fmt.Errorf("echo command: %w", err)
	}
	c.logger.Debug("starting aria2c",
		logging.String("binary", c.binary),
		logging.Int("trackers", strings.Count(trackers, ",")+1),
		logging.Strings("passthrough", passthrough),
	)

	var mu sync.Mutex
	relay := func(line string) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(out, line) //nolint:errcheck
	}

	if err := c.exec.Run(ctx, c.binary, args, c.stdin, relay); err != nil {
		return fmt.Errorf("aria2c: %w", err)
	}
	c.logger.Debug("aria2c exited")
	return nil
}

func quote(s string) string {
	if s == "" {
		return `""`
	}
	if !strings.ContainsAny(s, " \t\n\"'\\$`") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
