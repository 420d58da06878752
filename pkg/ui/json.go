package ui

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/types"
)

type statusJSON struct {
	Index           int    `json:"index"`
	Source          string `json:"source"`
	Destination     string `json:"destination"`
	Description     string `json:"description"`
	Status          string `json:"status"`
	SourcePath      string `json:"source_path"`
	DestinationPath string `json:"destination_path"`
}

// WriteStatusJSON writes a status listing as an indented JSON array
func WriteStatusJSON(w io.Writer, items []types.EntryStatus) error {
	out := make([]statusJSON, 0, len(items))
	for _, item := range items {
		out = append(out, statusJSON{
			Index:           item.Index,
			Source:          item.Entry.Source,
			Destination:     item.Entry.Destination,
			Description:     item.Entry.Description,
			Status:          item.Status.String(),
			SourcePath:      item.SourcePath,
			DestinationPath: item.DestinationPath,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode status as JSON")
	}
	return nil
}
