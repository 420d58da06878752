// Package backup copies an existing destination aside before the linker
// replaces it.
//
// Backups are named <basename>.backup.<timestamp> inside the backup
// directory. Directory trees are copied recursively: symlinks are recreated
// as links and never followed, and file modes and modification times are
// kept. A name already taken within the same second gets a numeric suffix.
package backup
