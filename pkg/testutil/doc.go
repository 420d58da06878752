// Package testutil provides utilities for testing dotlink components.
//
// Key components:
//   - TestEnvironment: a repository and home directory under t.TempDir with
//     HOME, DOTFILES_ROOT and the XDG variables pointed at it
//   - FileTree: declarative file and symlink setup
//   - FaultyFS: a types.FS wrapper that fails selected operations
//
// Link classification depends on real symlink semantics, so every
// environment uses the real filesystem.
package testutil
