package types

import (
	"io/fs"
	"time"
)

// FS is the filesystem interface required for dotlink operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Chmod(name string, mode fs.FileMode) error
	Chtimes(name string, atime, mtime time.Time) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
	EvalSymlinks(path string) (string, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error

	// Lstat must not follow a final symlink; link classification depends on it
	Lstat(name string) (fs.FileInfo, error)
}

// Pather provides the roots dotlink operates between
type Pather interface {
	// RepoRoot returns the dotfiles repository root
	RepoRoot() string

	// HomeDir returns the home directory destinations are relative to
	HomeDir() string

	// BackupDir returns the directory backups are written to
	BackupDir() string

	// SourcePath returns the absolute source path for an entry
	SourcePath(entry DotfileEntry) string

	// DestinationPath returns the absolute destination path for an entry
	DestinationPath(entry DotfileEntry) string
}
