package status

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// Classifier computes link status from the filesystem. It holds no state of
// its own, so every call reflects the disk at that moment.
type Classifier struct {
	fs    types.FS
	paths types.Pather
}

// NewClassifier creates a classifier over the given filesystem and roots
func NewClassifier(fs types.FS, paths types.Pather) *Classifier {
	return &Classifier{fs: fs, paths: paths}
}

// Classify returns the status of one entry. First match wins:
// source absent, destination absent, destination is a symlink, anything else.
func (c *Classifier) Classify(entry types.DotfileEntry) types.LinkStatus {
	return c.classifyPaths(c.paths.SourcePath(entry), c.paths.DestinationPath(entry))
}

// ClassifyAll classifies every entry in manifest order
func (c *Classifier) ClassifyAll(entries []types.DotfileEntry) []types.EntryStatus {
	result := make([]types.EntryStatus, 0, len(entries))
	for i, entry := range entries {
		source := c.paths.SourcePath(entry)
		dest := c.paths.DestinationPath(entry)
		result = append(result, types.EntryStatus{
			Index:           i + 1,
			Entry:           entry,
			Status:          c.classifyPaths(source, dest),
			SourcePath:      source,
			DestinationPath: dest,
		})
	}
	return result
}

func (c *Classifier) classifyPaths(source, dest string) types.LinkStatus {
	logger := logging.GetLogger("status")

	if _, err := c.fs.Stat(source); err != nil {
		return types.StatusMissingInRepo
	}

	// Lstat so a dangling link still counts as present
	info, err := c.fs.Lstat(dest)
	if err != nil {
		return types.StatusNotLinked
	}

	if info.Mode()&os.ModeSymlink == 0 {
		return types.StatusFileExists
	}

	target, err := c.fs.EvalSymlinks(dest)
	if err != nil {
		logger.Debug().Str("destination", dest).Err(err).Msg("Destination link does not resolve")
		return types.StatusBrokenLink
	}

	resolvedSource, err := c.fs.EvalSymlinks(source)
	if err != nil {
		resolvedSource = filepath.Clean(source)
	}

	if target == resolvedSource {
		return types.StatusAlreadyLinked
	}

	logger.Trace().
		Str("destination", dest).
		Str("target", target).
		Str("source", resolvedSource).
		Msg("Destination links elsewhere")
	return types.StatusLinksElsewhere
}
