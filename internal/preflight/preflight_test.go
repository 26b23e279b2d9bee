package preflight

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckDirectoryAccess_ReadOnly(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	dir := filepath.Join(t.TempDir(), "ro")
	if err := os.Mkdir(dir, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	result := CheckDirectoryAccess("test", dir)
	if result.Passed {
		t.Fatal("expected failure for read-only dir")
	}
	if !strings.Contains(result.Detail, "insufficient permissions") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestRunMoveCreatesDestination(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "library", "incoming")
	results := RunMove(dest)
	if err := Err(results); err != nil {
		t.Fatalf("expected destination to pass, got %v", err)
	}
	if info, err := os.Stat(dest); err != nil || !info.IsDir() {
		t.Fatalf("expected destination created: %v", err)
	}
}

func TestRunMoveFailsUnderFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Err(RunMove(filepath.Join(blocker, "dest"))); err == nil {
		t.Fatal("expected error when destination parent is a file")
	}
}

func TestRunLaunchChecksCacheDirectory(t *testing.T) {
	if err := Err(RunLaunch(t.TempDir())); err != nil {
		t.Fatalf("expected cache dir to pass, got %v", err)
	}
	missing := filepath.Join(t.TempDir(), "absent")
	err := Err(RunLaunch(missing))
	if err == nil || !strings.Contains(err.Error(), "Tracker cache") {
		t.Fatalf("expected tracker cache failure, got %v", err)
	}
}

func TestErrNilWhenAllPass(t *testing.T) {
	if err := Err([]Result{{Name: "a", Passed: true}}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
