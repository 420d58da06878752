// Package linker replaces destinations with symlinks to their sources.
//
// Linker.Link runs the transaction for one entry: classify, ask before
// replacing anything, back up, remove, create parents, link. Batch runs
// that transaction over a selection of manifest entries in order, sharing
// the "overwrite all" answer across the run.
//
// Filesystem failures are recorded per entry in types.Outcome and never
// stop a batch. Only an interruption at a prompt does.
package linker
