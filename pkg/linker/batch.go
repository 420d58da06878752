package linker

import (
	"context"
	"fmt"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/manifest"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// Batch runs link transactions over manifest entries
type Batch struct {
	linker   *Linker
	manifest *manifest.Manifest
}

// NewBatch creates a batch over the given manifest
func NewBatch(l *Linker, m *manifest.Manifest) *Batch {
	return &Batch{linker: l, manifest: m}
}

// RunAll links every entry in manifest order
func (b *Batch) RunAll(ctx context.Context, force bool) (types.Summary, error) {
	indices := make([]int, b.manifest.Len())
	for i := range indices {
		indices[i] = i + 1
	}
	return b.Run(ctx, indices, force)
}

// Run links the entries at the given 1-based indices in the order given.
// Repeated indices are processed again. An interruption stops the run and
// returns the partial summary together with the interruption error.
func (b *Batch) Run(ctx context.Context, indices []int, force bool) (types.Summary, error) {
	logger := logging.GetLogger("linker.batch")
	done := logging.LogOperationStart(logger, "batch")
	defer done()

	var summary types.Summary
	confirmAll := false

	for _, index := range indices {
		if err := ctx.Err(); err != nil {
			return summary, errors.Wrap(err, errors.ErrInterrupted, "interrupted")
		}

		entry, ok := b.manifest.Entry(index)
		if !ok {
			outcome := types.Outcome{
				Index:  index,
				Result: types.ResultFailed,
				Err: errors.Newf(errors.ErrOutOfRange, "index %d is outside 1-%d", index, b.manifest.Len()).
					WithDetail("index", index),
			}
			b.linker.reporter.Error(fmt.Sprintf("[%d] no such entry", index))
			summary.Attempted++
			summary.Outcomes = append(summary.Outcomes, outcome)
			continue
		}

		outcome, all, err := b.linker.Link(ctx, index, entry, force, confirmAll)
		if err != nil {
			logger.Info().Int("index", index).Msg("Batch interrupted")
			return summary, err
		}
		confirmAll = all

		summary.Attempted++
		summary.Outcomes = append(summary.Outcomes, outcome)
		if outcome.Result.Succeeded() {
			summary.Linked++
		}
		if outcome.Backup != "" {
			summary.BackupDir = b.linker.backup.Dir()
		}
	}

	logger.Info().
		Int("attempted", summary.Attempted).
		Int("linked", summary.Linked).
		Int("failed", len(summary.Failed())).
		Msg("Batch finished")
	return summary, nil
}
