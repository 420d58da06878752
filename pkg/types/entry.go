package types

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DotfileEntry is one manifest record. Entries are created once when the
// manifest is loaded and never mutated afterwards.
type DotfileEntry struct {
	// Source is relative to the repository root
	Source string `yaml:"source" toml:"source"`
	// Destination is relative to the home directory
	Destination string `yaml:"destination" toml:"destination"`
	Description string `yaml:"description" toml:"description"`
}

// Valid reports whether all three required fields are present
func (e DotfileEntry) Valid() bool {
	return e.Source != "" && e.Destination != "" && e.Description != ""
}

// MissingFields lists the names of empty required fields
func (e DotfileEntry) MissingFields() []string {
	var missing []string
	if e.Source == "" {
		missing = append(missing, "source")
	}
	if e.Destination == "" {
		missing = append(missing, "destination")
	}
	if e.Description == "" {
		missing = append(missing, "description")
	}
	return missing
}

// DisplayDestination returns the destination as shown to users: relative
// destinations are prefixed with ~/
func (e DotfileEntry) DisplayDestination() string {
	if filepath.IsAbs(e.Destination) || e.Destination == "~" || strings.HasPrefix(e.Destination, "~/") {
		return e.Destination
	}
	return "~/" + e.Destination
}

func (e DotfileEntry) String() string {
	return fmt.Sprintf("%s -> %s", e.Source, e.DisplayDestination())
}

// EntryStatus is a point-in-time classification of one entry, used for listing
type EntryStatus struct {
	// Index is the 1-based position in the manifest
	Index           int
	Entry           DotfileEntry
	Status          LinkStatus
	SourcePath      string
	DestinationPath string
}
