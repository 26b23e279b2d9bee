package relocate_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"sync"
	"testing"
	"time"

	"btl/internal/fileutil"
	"btl/internal/relocate"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func exists(t *testing.T, path string) bool {
	t.Helper()
	_, err := os.Stat(path)
	if err == nil {
		return true
	}
	if !os.IsNotExist(err) {
		t.Fatalf("stat %s: %v", path, err)
	}
	return false
}

func newRelocator(t *testing.T, dest string, opts ...relocate.Option) *relocate.Relocator {
	t.Helper()
	r, err := relocate.New(dest, opts...)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return r
}

func TestNewRequiresDestination(t *testing.T) {
	if _, err := relocate.New("  "); err == nil {
		t.Fatal("expected error for empty destination")
	}
}

func TestMoveRelocatesMatchingFilesOnly(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	writeFile(t, filepath.Join(src, "movie.mkv"), "video")
	writeFile(t, filepath.Join(src, "readme.txt"), "notes")

	results, err := newRelocator(t, dest).Move(context.Background(), src)
	if err != nil {
		t.Fatalf("Move returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}
	if results[0].Destination != filepath.Join(dest, "movie.mk") {
		t.Fatalf("unexpected destination: %s", results[0].Destination)
	}
	if results[0].Size != int64(len("video")) {
		t.Fatalf("unexpected size: %d", results[0].Size)
	}
	if !exists(t, filepath.Join(dest, "movie.mk")) {
		t.Fatal("expected movie.mk in destination")
	}
	if exists(t, filepath.Join(src, "movie.mkv")) {
		t.Fatal("expected movie.mkv removed from source")
	}
	if !exists(t, filepath.Join(src, "readme.txt")) {
		t.Fatal("expected readme.txt untouched")
	}
	if exists(t, filepath.Join(dest, "readme.tx")) || exists(t, filepath.Join(dest, "readme.txt")) {
		t.Fatal("non-matching file must not be moved")
	}
}

func TestMoveStripsGroupTag(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	writeFile(t, filepath.Join(src, "[GroupX]Show.S01E01.mkv"), "ep")

	if _, err := newRelocator(t, dest).Move(context.Background(), src); err != nil {
		t.Fatalf("Move returned error: %v", err)
	}
	if !exists(t, filepath.Join(dest, "Show.S01E01.mk")) {
		t.Fatal("expected Show.S01E01.mk in destination")
	}
}

func TestMoveExtensionMatchIsCaseInsensitive(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	writeFile(t, filepath.Join(src, "CLIP.MP4"), "x")
	writeFile(t, filepath.Join(src, "clip.mp4.part"), "x")

	results, err := newRelocator(t, dest).Move(context.Background(), src)
	if err != nil {
		t.Fatalf("Move returned error: %v", err)
	}
	if len(results) != 1 || !exists(t, filepath.Join(dest, "CLIP.MP")) {
		t.Fatalf("expected only CLIP.MP4 moved, got %+v", results)
	}
}

func TestMoveExcludeSkipsMatchingNames(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	writeFile(t, filepath.Join(src, "movie.sample.mkv"), "s")
	writeFile(t, filepath.Join(src, "sample", "inner.mkv"), "i")
	writeFile(t, filepath.Join(src, "movie.mkv"), "m")

	r := newRelocator(t, dest, relocate.WithExclude(regexp.MustCompile("sample")))
	results, err := r.Move(context.Background(), src)
	if err != nil {
		t.Fatalf("Move returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected one result, got %+v", results)
	}
	if !exists(t, filepath.Join(src, "movie.sample.mkv")) {
		t.Fatal("excluded file must stay in source")
	}
	if !exists(t, filepath.Join(src, "sample", "inner.mkv")) {
		t.Fatal("excluded directory must not be entered")
	}
	if exists(t, filepath.Join(dest, "movie.sample.mk")) {
		t.Fatal("excluded file must not reach destination")
	}
}

func TestMoveFlattensNestedDirectories(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	writeFile(t, filepath.Join(src, "a", "b", "deep.mkv"), "d")
	writeFile(t, filepath.Join(src, "a", "mid.mp4"), "m")
	writeFile(t, filepath.Join(src, "top.mkv"), "t")

	results, err := newRelocator(t, dest).Move(context.Background(), src)
	if err != nil {
		t.Fatalf("Move returned error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected three results, got %d", len(results))
	}
	for _, name := range []string{"deep.mk", "mid.mp", "top.mk"} {
		if !exists(t, filepath.Join(dest, name)) {
			t.Fatalf("expected %s directly under destination", name)
		}
	}
	if !exists(t, filepath.Join(src, "a", "b")) {
		t.Fatal("source directories must be left in place")
	}
}

func TestMoveCollisionLeavesBothFiles(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	writeFile(t, filepath.Join(src, "movie.mkv"), "new")
	writeFile(t, filepath.Join(src, "other.mkv"), "other")
	writeFile(t, filepath.Join(dest, "movie.mk"), "old")

	results, err := newRelocator(t, dest).Move(context.Background(), src)
	if err == nil {
		t.Fatal("expected collision error")
	}
	var collision *relocate.CollisionError
	if !errors.As(err, &collision) {
		t.Fatalf("expected CollisionError, got %T: %v", err, err)
	}
	if collision.Destination != filepath.Join(dest, "movie.mk") {
		t.Fatalf("unexpected collision destination: %s", collision.Destination)
	}
	if len(results) != 1 || !exists(t, filepath.Join(dest, "other.mk")) {
		t.Fatalf("sibling should still move, got %+v", results)
	}
	got, readErr := os.ReadFile(filepath.Join(dest, "movie.mk"))
	if readErr != nil || string(got) != "old" {
		t.Fatalf("existing destination modified: %q %v", got, readErr)
	}
	if !exists(t, filepath.Join(src, "movie.mkv")) {
		t.Fatal("colliding source must stay in place")
	}
}

func TestMoveMissingSourceReturnsListError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	_, err := newRelocator(t, t.TempDir()).Move(context.Background(), missing)
	var listErr *relocate.ListError
	if !errors.As(err, &listErr) {
		t.Fatalf("expected ListError, got %T: %v", err, err)
	}
	if listErr.Dir != missing {
		t.Fatalf("unexpected dir: %s", listErr.Dir)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped ErrNotExist, got %v", err)
	}
}

func TestMoveFailureDoesNotStopSiblings(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	writeFile(t, filepath.Join(src, "bad.mkv"), "b")
	writeFile(t, filepath.Join(src, "good.mkv"), "g")

	boom := errors.New("device busy")
	move := func(from, to string) error {
		if filepath.Base(from) == "bad.mkv" {
			return boom
		}
		return os.Rename(from, to)
	}

	results, err := newRelocator(t, dest, relocate.WithMoveFunc(move)).Move(context.Background(), src)
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined move error, got %v", err)
	}
	var moveErr *relocate.MoveError
	if !errors.As(err, &moveErr) || filepath.Base(moveErr.Source) != "bad.mkv" {
		t.Fatalf("expected MoveError for bad.mkv, got %v", err)
	}
	if len(results) != 1 || !exists(t, filepath.Join(dest, "good.mk")) {
		t.Fatalf("expected good.mkv moved, got %+v", results)
	}
}

func TestMoveHonoursCancellation(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "movie.mkv"), "m")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRelocator(t, t.TempDir()).Move(ctx, src)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !exists(t, filepath.Join(src, "movie.mkv")) {
		t.Fatal("nothing should move after cancellation")
	}
}

func TestWithExtensions(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	writeFile(t, filepath.Join(src, "show.AVI"), "a")
	writeFile(t, filepath.Join(src, "show.mkv"), "m")

	results, err := newRelocator(t, dest, relocate.WithExtensions("avi", " ")).Move(context.Background(), src)
	if err != nil {
		t.Fatalf("Move returned error: %v", err)
	}
	if len(results) != 1 || !exists(t, filepath.Join(dest, "show.AV")) {
		t.Fatalf("expected only show.AVI moved, got %+v", results)
	}
}

func TestMoveAllWaitsForEverySource(t *testing.T) {
	dest := t.TempDir()
	var sources []string
	for _, name := range []string{"one", "two", "three"} {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, name+".mkv"), name)
		writeFile(t, filepath.Join(dir, "nested", name+"-extra.mp4"), name)
		sources = append(sources, dir)
	}

	var mu sync.Mutex
	var moved []string
	move := func(from, to string) error {
		mu.Lock()
		moved = append(moved, filepath.Base(to))
		mu.Unlock()
		return os.Rename(from, to)
	}

	results, err := newRelocator(t, dest, relocate.WithMoveFunc(move)).MoveAll(context.Background(), sources)
	if err != nil {
		t.Fatalf("MoveAll returned error: %v", err)
	}
	if len(results) != 6 {
		t.Fatalf("expected six results, got %d", len(results))
	}
	sort.Strings(moved)
	want := []string{"one-extra.mp", "one.mk", "three-extra.mp", "three.mk", "two-extra.mp", "two.mk"}
	for i, name := range want {
		if moved[i] != name {
			t.Fatalf("moved[%d] = %s, want %s", i, moved[i], name)
		}
		if !exists(t, filepath.Join(dest, name)) {
			t.Fatalf("expected %s in destination", name)
		}
	}
}

func TestMoveAllReturnsListError(t *testing.T) {
	dest := t.TempDir()
	good := t.TempDir()
	writeFile(t, filepath.Join(good, "movie.mkv"), "m")
	missing := filepath.Join(t.TempDir(), "gone")

	_, err := newRelocator(t, dest).MoveAll(context.Background(), []string{good, missing})
	var listErr *relocate.ListError
	if !errors.As(err, &listErr) {
		t.Fatalf("expected ListError, got %T: %v", err, err)
	}
	if listErr.Dir != missing {
		t.Fatalf("unexpected dir: %s", listErr.Dir)
	}
}

func TestMoveAllJoinsPerFileErrors(t *testing.T) {
	dest := t.TempDir()
	a := t.TempDir()
	b := t.TempDir()
	writeFile(t, filepath.Join(a, "same.mkv"), "a")
	writeFile(t, filepath.Join(dest, "same.mk"), "existing")
	writeFile(t, filepath.Join(b, "fine.mkv"), "b")

	results, err := newRelocator(t, dest).MoveAll(context.Background(), []string{a, b})
	var collision *relocate.CollisionError
	if !errors.As(err, &collision) {
		t.Fatalf("expected CollisionError, got %v", err)
	}
	var listErr *relocate.ListError
	if errors.As(err, &listErr) {
		t.Fatal("collision must not be reported as a listing failure")
	}
	if len(results) != 1 || results[0].Destination != filepath.Join(dest, "fine.mk") {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestMoveDoesNotFollowDirectorySymlinks(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "elsewhere.mkv"), "e")
	if err := os.Symlink(outside, filepath.Join(src, "linked")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	results, err := newRelocator(t, dest).Move(context.Background(), src)
	if err != nil {
		t.Fatalf("Move returned error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected nothing moved, got %+v", results)
	}
	if !exists(t, filepath.Join(outside, "elsewhere.mkv")) {
		t.Fatal("file behind symlinked directory must stay in place")
	}
}

func TestMoveAllConcurrentCollisionKeepsBothFiles(t *testing.T) {
	dest := t.TempDir()
	a := t.TempDir()
	b := t.TempDir()
	writeFile(t, filepath.Join(a, "[A]Show.mkv"), "from-a")
	writeFile(t, filepath.Join(b, "[B]Show.mkv"), "from-b")

	// Both walks pass the existence check before either move lands.
	slowMove := func(from, to string) error {
		time.Sleep(50 * time.Millisecond)
		return fileutil.MoveFile(from, to)
	}

	results, err := newRelocator(t, dest, relocate.WithMoveFunc(slowMove)).MoveAll(context.Background(), []string{a, b})
	var collision *relocate.CollisionError
	if !errors.As(err, &collision) {
		t.Fatalf("expected CollisionError, got %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected exactly one move, got %+v", results)
	}

	got, readErr := os.ReadFile(filepath.Join(dest, "Show.mk"))
	if readErr != nil {
		t.Fatalf("read destination: %v", readErr)
	}
	loser := filepath.Join(b, "[B]Show.mkv")
	if string(got) == "from-b" {
		loser = filepath.Join(a, "[A]Show.mkv")
	}
	if results[0].Source == loser {
		t.Fatalf("reported the wrong file as moved: %+v", results[0])
	}
	if !exists(t, loser) {
		t.Fatalf("colliding file %s must stay in its source tree", loser)
	}
	if collision.Source != loser {
		t.Fatalf("collision should name %s, got %s", loser, collision.Source)
	}
}

func TestMoveMapsExistingDestinationToCollision(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	writeFile(t, filepath.Join(src, "movie.mkv"), "m")

	refuse := func(from, to string) error {
		return &os.LinkError{Op: "link", Old: from, New: to, Err: os.ErrExist}
	}
	_, err := newRelocator(t, dest, relocate.WithMoveFunc(refuse)).Move(context.Background(), src)
	var collision *relocate.CollisionError
	if !errors.As(err, &collision) {
		t.Fatalf("expected CollisionError, got %v", err)
	}
	var moveErr *relocate.MoveError
	if errors.As(err, &moveErr) {
		t.Fatal("an existing destination must not be reported as a move failure")
	}
}
