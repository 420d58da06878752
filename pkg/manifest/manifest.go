package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// CollectionKey is the top-level collection every manifest format must carry
const CollectionKey = "dotfiles"

// Manifest is the ordered, read-only list of entries loaded for a session
type Manifest struct {
	// Path is the file the manifest was read from
	Path    string
	Entries []types.DotfileEntry
	// Warnings describe entries that were skipped or look suspicious
	Warnings []string
}

// Len returns the number of usable entries
func (m *Manifest) Len() int {
	return len(m.Entries)
}

// Entry returns the entry for a 1-based index
func (m *Manifest) Entry(index int) (types.DotfileEntry, bool) {
	if index < 1 || index > len(m.Entries) {
		return types.DotfileEntry{}, false
	}
	return m.Entries[index-1], true
}

// rawDocument is what a decoder produces before validation. Present tracks
// whether the collection existed at all, as opposed to being empty.
type rawDocument struct {
	Present bool
	Entries []types.DotfileEntry
}

// Load reads and validates the manifest at path. Entries missing a required
// field are skipped with a warning; the load fails when nothing usable
// remains.
func Load(path string) (*Manifest, error) {
	logger := logging.GetLogger("manifest")

	dec, err := decoderFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "manifest %s not found", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read manifest %s", path).
			WithDetail("path", path)
	}

	doc, err := dec.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "cannot parse manifest %s", path).
			WithDetail("path", path).
			WithDetail("format", dec.Name())
	}
	if !doc.Present {
		return nil, errors.Newf(errors.ErrConfigInvalid, "manifest %s has no top-level %q collection", path, CollectionKey).
			WithDetail("path", path)
	}

	m := &Manifest{Path: path}
	destinations := make(map[string]int)
	for i, entry := range doc.Entries {
		position := i + 1
		entry = normalize(entry)
		if !entry.Valid() {
			warning := fmt.Sprintf("skipping manifest entry %d: missing %s", position, strings.Join(entry.MissingFields(), ", "))
			logger.Warn().Int("position", position).Strs("missing", entry.MissingFields()).Msg("Skipping invalid manifest entry")
			m.Warnings = append(m.Warnings, warning)
			continue
		}

		// Duplicate destinations are kept; the later entry wins when both are linked
		if first, seen := destinations[entry.Destination]; seen {
			warning := fmt.Sprintf("entries %d and %d both link %s; the later one wins", first, len(m.Entries)+1, entry.DisplayDestination())
			logger.Warn().Str("destination", entry.Destination).Msg("Duplicate manifest destination")
			m.Warnings = append(m.Warnings, warning)
		} else {
			destinations[entry.Destination] = len(m.Entries) + 1
		}

		// Such destinations are still linked as written
		if reach := homeReach(entry.Destination); reach != "" {
			warning := fmt.Sprintf("entry %d links %s %s", len(m.Entries)+1, entry.DisplayDestination(), reach)
			logger.Warn().Str("destination", entry.Destination).Msg("Manifest destination leaves the home directory")
			m.Warnings = append(m.Warnings, warning)
		}

		m.Entries = append(m.Entries, entry)
	}

	if len(m.Entries) == 0 {
		return nil, errors.Newf(errors.ErrConfigInvalid, "manifest %s has no valid entries", path).
			WithDetail("path", path).
			WithDetail("skipped", len(doc.Entries))
	}

	logger.Debug().
		Str("path", path).
		Str("format", dec.Name()).
		Int("entries", len(m.Entries)).
		Int("skipped", len(doc.Entries)-len(m.Entries)).
		Msg("Manifest loaded")

	return m, nil
}

// homeReach describes a destination that does not name a path strictly
// inside the home directory, or returns "" when it does
func homeReach(dest string) string {
	rel := dest
	switch {
	case dest == "~":
		rel = "."
	case strings.HasPrefix(dest, "~/"):
		rel = dest[2:]
	case filepath.IsAbs(dest):
		return "outside the home directory"
	}

	rel = filepath.Clean(rel)
	switch {
	case rel == ".":
		return "onto the home directory itself"
	case rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)):
		return "outside the home directory"
	}
	return ""
}

func normalize(e types.DotfileEntry) types.DotfileEntry {
	return types.DotfileEntry{
		Source:      strings.TrimSpace(e.Source),
		Destination: strings.TrimSpace(e.Destination),
		Description: strings.TrimSpace(e.Description),
	}
}

func decoderFor(path string) (decoder, error) {
	ext := strings.ToLower(filepath.Ext(path))
	dec, ok := decoders[ext]
	if !ok {
		return nil, errors.Newf(errors.ErrDependencyMissing, "no manifest parser available for %q files", ext).
			WithDetail("path", path).
			WithDetail("supported", SupportedExtensions())
	}
	return dec, nil
}
