package types

// LinkStatus classifies an entry's destination relative to its source.
// It is always computed from the filesystem on demand and never stored.
type LinkStatus int

const (
	// StatusMissingInRepo: the source does not exist
	StatusMissingInRepo LinkStatus = iota
	// StatusNotLinked: the source exists and the destination does not
	StatusNotLinked
	// StatusAlreadyLinked: the destination is a symlink resolving to the source
	StatusAlreadyLinked
	// StatusLinksElsewhere: the destination is a symlink resolving somewhere else
	StatusLinksElsewhere
	// StatusBrokenLink: the destination is a symlink whose target cannot be resolved
	StatusBrokenLink
	// StatusFileExists: the destination is a regular file or directory
	StatusFileExists
)

// String returns the stable identifier for the status
func (s LinkStatus) String() string {
	switch s {
	case StatusMissingInRepo:
		return "missing_in_repo"
	case StatusNotLinked:
		return "not_linked"
	case StatusAlreadyLinked:
		return "already_linked"
	case StatusLinksElsewhere:
		return "links_elsewhere"
	case StatusBrokenLink:
		return "broken_link"
	case StatusFileExists:
		return "file_exists"
	default:
		return "unknown"
	}
}

// Label returns the human readable status shown in listings
func (s LinkStatus) Label() string {
	switch s {
	case StatusMissingInRepo:
		return "Missing in repo"
	case StatusNotLinked:
		return "Not linked"
	case StatusAlreadyLinked:
		return "Linked"
	case StatusLinksElsewhere:
		return "Links elsewhere"
	case StatusBrokenLink:
		return "Broken link"
	case StatusFileExists:
		return "File exists"
	default:
		return "Unknown"
	}
}

// DestinationExists reports whether something occupies the destination path
// that would have to be backed up and replaced before linking.
func (s LinkStatus) DestinationExists() bool {
	switch s {
	case StatusLinksElsewhere, StatusBrokenLink, StatusFileExists:
		return true
	}
	return false
}
