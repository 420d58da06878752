// pkg/testutil/environment.go
// DEPENDENCIES: pkg/filesystem, pkg/paths
// PURPOSE: Orchestrate isolated repository/home environments for tests

package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/dotlink/pkg/filesystem"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// TestEnvironment provides a complete test environment with all dependencies
type TestEnvironment struct {
	// Core paths
	Root         string
	DotfilesRoot string
	HomeDir      string

	// Core dependencies
	FS    types.FS
	Paths paths.Paths

	t *testing.T
}

// NewTestEnvironment creates a repository and home directory in a temp dir.
// Both are resolved through symlinks so comparisons against EvalSymlinks
// output hold on systems where the temp dir is itself a link.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	tempDir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to resolve temp dir: %v", err)
	}

	env := &TestEnvironment{
		t:            t,
		Root:         tempDir,
		DotfilesRoot: filepath.Join(tempDir, "dotfiles"),
		HomeDir:      filepath.Join(tempDir, "home"),
		FS:           filesystem.NewOS(),
	}

	for _, dir := range []string{env.DotfilesRoot, env.HomeDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	t.Setenv("DOTFILES_ROOT", env.DotfilesRoot)
	t.Setenv("HOME", env.HomeDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tempDir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tempDir, "state"))

	p, err := paths.New(paths.Options{RepoRoot: env.DotfilesRoot, Home: env.HomeDir})
	if err != nil {
		t.Fatalf("Failed to create paths: %v", err)
	}
	env.Paths = p

	return env
}

// BackupDir returns the directory backups land in for this environment
func (env *TestEnvironment) BackupDir() string {
	return env.Paths.BackupDir()
}

// RepoPath joins rel onto the repository root
func (env *TestEnvironment) RepoPath(rel string) string {
	return filepath.Join(env.DotfilesRoot, rel)
}

// HomePath joins rel onto the home directory
func (env *TestEnvironment) HomePath(rel string) string {
	return filepath.Join(env.HomeDir, rel)
}

// WithRepo creates tree under the repository root
func (env *TestEnvironment) WithRepo(tree FileTree) {
	env.t.Helper()
	createFileTree(env.t, env.DotfilesRoot, tree)
}

// WithHome creates tree under the home directory
func (env *TestEnvironment) WithHome(tree FileTree) {
	env.t.Helper()
	createFileTree(env.t, env.HomeDir, tree)
}

// WriteManifest writes dotfiles.yaml at the repository root and returns its
// path. Each entry is written verbatim, so incomplete entries can be tested.
func (env *TestEnvironment) WriteManifest(entries ...types.DotfileEntry) string {
	env.t.Helper()

	var b strings.Builder
	b.WriteString("dotfiles:\n")
	for _, e := range entries {
		b.WriteString("  - source: " + quote(e.Source) + "\n")
		b.WriteString("    destination: " + quote(e.Destination) + "\n")
		b.WriteString("    description: " + quote(e.Description) + "\n")
	}

	path := env.RepoPath("dotfiles.yaml")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		env.t.Fatalf("Failed to write manifest: %v", err)
	}
	return path
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// FileTree represents a directory structure for testing. Values are a
// string (file content), a FileTree (directory) or a Symlink.
type FileTree map[string]interface{}

// Symlink is a FileTree value creating a link to Target
type Symlink struct {
	Target string
}

func createFileTree(t *testing.T, basePath string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", fullPath, err)
		}

		switch v := content.(type) {
		case string:
			if err := os.WriteFile(fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			if err := os.MkdirAll(fullPath, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", fullPath, err)
			}
			createFileTree(t, fullPath, v)
		case Symlink:
			if err := os.Symlink(v.Target, fullPath); err != nil {
				t.Fatalf("Failed to create symlink %s: %v", fullPath, err)
			}
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}
