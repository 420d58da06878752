package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// AssertSymlinkTo checks that path is a symlink whose resolved target is target
func AssertSymlinkTo(t *testing.T, path, target string) {
	t.Helper()

	info, err := os.Lstat(path)
	if err != nil {
		t.Errorf("Expected symlink at %s: %v", path, err)
		return
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Errorf("Expected %s to be a symlink, mode is %v", path, info.Mode())
		return
	}

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Errorf("Symlink %s does not resolve: %v", path, err)
		return
	}
	want, err := filepath.EvalSymlinks(target)
	if err != nil {
		want = filepath.Clean(target)
	}
	if resolved != want {
		t.Errorf("Symlink %s resolves to %s, expected %s", path, resolved, want)
	}
}

// AssertNotExists checks that nothing, not even a dangling link, is at path
func AssertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("Expected nothing at %s", path)
	}
}

// AssertFileContent checks that path is a regular file holding content
func AssertFileContent(t *testing.T, path, content string) {
	t.Helper()

	info, err := os.Lstat(path)
	if err != nil {
		t.Errorf("Expected file at %s: %v", path, err)
		return
	}
	if !info.Mode().IsRegular() {
		t.Errorf("Expected %s to be a regular file, mode is %v", path, info.Mode())
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("Failed to read %s: %v", path, err)
		return
	}
	if string(data) != content {
		t.Errorf("File %s content mismatch.\nExpected: %q\nActual: %q", path, content, string(data))
	}
}

// ListDir returns the names in dir, or nil when it does not exist
func ListDir(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
