// Package types defines the core types and interfaces used throughout dotlink.
// This includes the manifest entry, the link status classification, the
// overwrite confirmation choice and the filesystem interface every component
// performs its I/O through.
package types
