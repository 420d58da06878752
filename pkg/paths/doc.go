// Package paths provides centralized path handling for dotlink.
//
// It resolves the two fixed roots every operation works between, the
// dotfiles repository and the home directory, and maps manifest entries
// onto absolute paths under them.
//
// # Repository root
//
// Resolved in priority order:
//
//   - the configured value (paths.repo_root, --repo)
//   - DOTFILES_ROOT
//   - the enclosing git work tree, discovered with go-git
//   - the current working directory; UsedFallback reports this case so the
//     CLI can warn about it
//
// # Destinations and backups
//
// Manifest destinations and the backup directory are relative to the home
// directory ($HOME unless paths.home is set). A leading ~/ is accepted and
// absolute values are used as-is.
package paths
