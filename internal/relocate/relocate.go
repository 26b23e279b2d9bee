package relocate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"

	"btl/internal/fileutil"
	"btl/internal/logging"
)

// DefaultExtensions are the suffixes relocated when WithExtensions is not set.
var DefaultExtensions = []string{".mp4", ".mkv"}

// MoveFunc moves one file. It must fail with an error matching fs.ErrExist
// rather than replace an existing dst.
type MoveFunc func(src, dst string) error

// Result describes one relocated file.
type Result struct {
	Source      string
	Destination string
	Size        int64
}

// Option configures a Relocator.
type Option func(*Relocator)

// WithExtensions replaces the extension filter. Matching is case-insensitive
// and a missing leading dot is added.
func WithExtensions(exts ...string) Option {
	return func(r *Relocator) {
		normalized := make([]string, 0, len(exts))
		for _, ext := range exts {
			ext = strings.TrimSpace(ext)
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			normalized = append(normalized, ext)
		}
		if len(normalized) > 0 {
			r.extensions = normalized
		}
	}
}

// WithExclude skips every entry, file or directory, whose name matches re.
func WithExclude(re *regexp.Regexp) Option {
	return func(r *Relocator) {
		r.exclude = re
	}
}

// WithMoveFunc overrides the file move (primarily for tests).
func WithMoveFunc(fn MoveFunc) Option {
	return func(r *Relocator) {
		if fn != nil {
			r.move = fn
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Relocator) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Relocator moves matching files from source trees into one directory.
type Relocator struct {
	dest       string
	extensions []string
	exclude    *regexp.Regexp
	move       MoveFunc
	logger     *slog.Logger
}

// New constructs a relocator targeting destDir. The directory is not created.
func New(destDir string, opts ...Option) (*Relocator, error) {
	destDir = strings.TrimSpace(destDir)
	if destDir == "" {
		return nil, errors.New("relocate: destination directory required")
	}
	r := &Relocator{
		dest:       destDir,
		extensions: DefaultExtensions,
		move:       fileutil.MoveFile,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.NewComponentLogger(r.logger, "relocate")
	return r, nil
}

// Move walks sourceDir depth-first and relocates every matching file.
//
// A listing failure or cancellation stops the walk and is returned alongside
// the results gathered so far. Per-file failures do not stop the walk; they
// are joined into the returned error.
func (r *Relocator) Move(ctx context.Context, sourceDir string) ([]Result, error) {
	w := &walk{Relocator: r}
	if err := w.dir(ctx, sourceDir); err != nil {
		return w.results, errors.Join(append([]error{err}, w.errs...)...)
	}
	return w.results, errors.Join(w.errs...)
}

// MoveAll runs Move for every source directory concurrently and waits for all
// of them. A *ListError from any walk cancels the others.
func (r *Relocator) MoveAll(ctx context.Context, sourceDirs []string) ([]Result, error) {
	g, gctx := errgroup.WithContext(ctx)

	var (
		mu       sync.Mutex
		results  []Result
		fileErrs []error
	)
	for _, dir := range sourceDirs {
		g.Go(func() error {
			res, err := r.Move(gctx, dir)

			mu.Lock()
			defer mu.Unlock()
			results = append(results, res...)
			if err == nil {
				return nil
			}
			var listErr *ListError
			if errors.As(err, &listErr) || errors.Is(err, context.Canceled) {
				return err
			}
			fileErrs = append(fileErrs, err)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, errors.Join(fileErrs...)
}

func (r *Relocator) matches(name string) bool {
	// Caser values carry state; one per call keeps walks independent.
	folded := cases.Fold().String(name)
	for _, ext := range r.extensions {
		if strings.HasSuffix(folded, cases.Fold().String(ext)) {
			return true
		}
	}
	return false
}

func (r *Relocator) excluded(name string) bool {
	return r.exclude != nil && r.exclude.MatchString(name)
}

type walk struct {
	*Relocator
	results []Result
	errs    []error
}

func (w *walk) dir(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &ListError{Dir: dir, Err: err}
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := entry.Name()
		path := filepath.Join(dir, name)
		if w.excluded(name) {
			w.logger.Debug("skipping excluded entry", logging.String("path", path))
			continue
		}

		// Symlinks are not followed; a link named like a video is moved as is.
		if entry.IsDir() {
			if err := w.dir(ctx, path); err != nil {
				return err
			}
			continue
		}

		if !w.matches(name) {
			continue
		}
		w.file(path, name, entry)
	}
	return nil
}

func (w *walk) file(path, name string, entry fs.DirEntry) {
	target := TransformName(name)
	if target == "" {
		w.errs = append(w.errs, &MoveError{Source: path, Err: errors.New("empty destination name")})
		return
	}
	dst := filepath.Join(w.dest, target)

	// Fast path only; MoveFunc is the authoritative no-replace check.
	if _, err := os.Lstat(dst); err == nil {
		w.collision(path, dst)
		return
	} else if !errors.Is(err, fs.ErrNotExist) {
		w.errs = append(w.errs, &MoveError{Source: path, Destination: dst, Err: err})
		return
	}

	var size int64
	if info, err := entry.Info(); err == nil {
		size = info.Size()
	}

	w.logger.Info(fmt.Sprintf("move %s to %s", path, dst),
		logging.String("source", path),
		logging.String("destination", dst),
	)
	if err := w.move(path, dst); err != nil {
		if errors.Is(err, fs.ErrExist) {
			w.collision(path, dst)
			return
		}
		w.logger.Error("move failed",
			logging.String("source", path),
			logging.String("destination", dst),
			logging.Error(err),
		)
		w.errs = append(w.errs, &MoveError{Source: path, Destination: dst, Err: err})
		return
	}
	w.results = append(w.results, Result{Source: path, Destination: dst, Size: size})
}

func (w *walk) collision(src, dst string) {
	logging.WarnWithContext(w.logger, "destination exists, leaving file in place", "relocate_collision",
		logging.String("source", src),
		logging.String("destination", dst),
		logging.String(logging.FieldErrorHint, "rename or remove the existing file and rerun"),
	)
	w.errs = append(w.errs, &CollisionError{Source: src, Destination: dst})
}
