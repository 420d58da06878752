package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/go-git/go-git/v5"
)

// Environment variable names
const (
	// EnvDotfilesRoot is the primary environment variable for the repository location
	EnvDotfilesRoot = "DOTFILES_ROOT"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// ManifestCandidates are tried in order when no manifest is configured
var ManifestCandidates = []string{
	"dotfiles.yaml",
	"dotfiles.yml",
	"dotfiles.toml",
	"dotfiles.xml",
}

// Options carries configured values; empty fields are discovered
type Options struct {
	RepoRoot  string
	Home      string
	Manifest  string
	BackupDir string
}

// Paths provides centralized path management for dotlink
type Paths interface {
	types.Pather
	UsedFallback() bool
	ManifestPath() (string, error)
}

type paths struct {
	repoRoot  string
	homeDir   string
	manifest  string
	backupDir string

	// usedFallback indicates if we fell back to cwd (for warning display)
	usedFallback bool
}

// New resolves every root. The repository root comes from, in order: the
// configured value, DOTFILES_ROOT, the enclosing git work tree, the current
// directory (flagged by UsedFallback).
func New(opts Options) (Paths, error) {
	p := &paths{}

	home, err := resolveHome(opts.Home)
	if err != nil {
		return nil, err
	}
	p.homeDir = home

	if opts.RepoRoot != "" {
		p.repoRoot = p.expandHome(opts.RepoRoot)
	} else {
		root, usedFallback, err := findRepoRoot()
		if err != nil {
			return nil, err
		}
		p.repoRoot = p.expandHome(root)
		p.usedFallback = usedFallback
	}

	absRoot, err := filepath.Abs(p.repoRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for repository root")
	}
	p.repoRoot = absRoot

	if opts.Manifest != "" {
		p.manifest = p.underRoot(p.repoRoot, p.expandHome(opts.Manifest))
	}

	backupDir := opts.BackupDir
	if backupDir == "" {
		backupDir = ".dotfiles_backup"
	}
	p.backupDir = p.underRoot(p.homeDir, p.expandHome(backupDir))

	return p, nil
}

func resolveHome(configured string) (string, error) {
	home := configured
	if home == "" {
		home = os.Getenv(EnvHome)
	}
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrConfigInvalid, "cannot determine home directory")
		}
		home = h
	}
	abs, err := filepath.Abs(home)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for home directory")
	}
	return abs, nil
}

// findRepoRoot returns the resolved root and whether cwd was used as fallback
func findRepoRoot() (string, bool, error) {
	if root := os.Getenv(EnvDotfilesRoot); root != "" {
		return root, false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}

	if gitRoot, err := findGitRoot(cwd); err == nil && gitRoot != "" {
		return gitRoot, false, nil
	}

	return cwd, true, nil
}

// findGitRoot returns the top of the git work tree containing dir
func findGitRoot(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return "", err
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return "", err
	}
	return worktree.Filesystem.Root(), nil
}

func (p *paths) expandHome(path string) string {
	if path == "~" {
		return p.homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(p.homeDir, path[2:])
	}
	return path
}

func (p *paths) underRoot(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}

func (p *paths) RepoRoot() string {
	return p.repoRoot
}

func (p *paths) HomeDir() string {
	return p.homeDir
}

func (p *paths) BackupDir() string {
	return p.backupDir
}

func (p *paths) UsedFallback() bool {
	return p.usedFallback
}

func (p *paths) SourcePath(entry types.DotfileEntry) string {
	return p.underRoot(p.repoRoot, entry.Source)
}

// DestinationPath keeps the trailing name intact: destinations are never
// resolved through symlinks, since the link itself is what gets classified.
func (p *paths) DestinationPath(entry types.DotfileEntry) string {
	return p.underRoot(p.homeDir, p.expandHome(entry.Destination))
}

// ManifestPath returns the configured manifest or the first existing
// candidate in the repository root
func (p *paths) ManifestPath() (string, error) {
	if p.manifest != "" {
		return p.manifest, nil
	}
	for _, name := range ManifestCandidates {
		candidate := filepath.Join(p.repoRoot, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", errors.Newf(errors.ErrConfigLoad, "no manifest found in %s (looked for %s)",
		p.repoRoot, strings.Join(ManifestCandidates, ", ")).
		WithDetail("repo_root", p.repoRoot)
}
