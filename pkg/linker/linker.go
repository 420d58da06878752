package linker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotlink/pkg/backup"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/status"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/rs/zerolog"
)

// Reporter receives per-entry status lines and answers overwrite prompts
type Reporter interface {
	Info(msg string)
	Success(msg string)
	Warn(msg string)
	Error(msg string)
	ConfirmOverwrite(ctx context.Context, item types.EntryStatus) (types.Choice, error)
}

// Options contains the dependencies of a Linker
type Options struct {
	FS       types.FS
	Paths    types.Pather
	Backup   *backup.Service
	Reporter Reporter
}

// Linker performs link transactions for single entries
type Linker struct {
	logger     zerolog.Logger
	fs         types.FS
	paths      types.Pather
	classifier *status.Classifier
	backup     *backup.Service
	reporter   Reporter
}

// New creates a linker. A nil Backup gets a service writing to the
// configured backup directory with default naming.
func New(opts Options) *Linker {
	svc := opts.Backup
	if svc == nil {
		svc = backup.NewService(opts.FS, opts.Paths.BackupDir())
	}
	return &Linker{
		logger:     logging.GetLogger("linker"),
		fs:         opts.FS,
		paths:      opts.Paths,
		classifier: status.NewClassifier(opts.FS, opts.Paths),
		backup:     svc,
		reporter:   opts.Reporter,
	}
}

// Classifier returns the classifier the linker uses
func (l *Linker) Classifier() *status.Classifier {
	return l.classifier
}

// Link runs the transaction for the entry at the 1-based index. It returns
// the outcome and the updated confirmAll flag. The error is non-nil only
// when the user interrupted a prompt; the entry is then left untouched.
func (l *Linker) Link(ctx context.Context, index int, entry types.DotfileEntry, force, confirmAll bool) (types.Outcome, bool, error) {
	source := l.paths.SourcePath(entry)
	dest := l.paths.DestinationPath(entry)
	linkStatus := l.classifier.Classify(entry)

	outcome := types.Outcome{
		Index:  index,
		Entry:  entry,
		Status: linkStatus,
	}
	logger := l.logger.With().
		Int("index", index).
		Str("source", source).
		Str("destination", dest).
		Str("status", linkStatus.String()).
		Logger()

	switch linkStatus {
	case types.StatusMissingInRepo:
		outcome.Err = errors.Newf(errors.ErrFileNotFound, "source %s does not exist", source).
			WithDetail("source", source)
		l.reporter.Error(fmt.Sprintf("[%d] %s: source missing in repository (%s)", index, entry, source))
		logger.Warn().Msg("Source missing")
		return l.fail(outcome), confirmAll, nil

	case types.StatusAlreadyLinked:
		outcome.Result = types.ResultAlreadyLinked
		l.reporter.Info(fmt.Sprintf("[%d] %s: already linked", index, entry))
		logger.Debug().Msg("Already linked")
		return outcome, confirmAll, nil
	}

	if linkStatus.DestinationExists() {
		if !force && !confirmAll {
			choice, err := l.reporter.ConfirmOverwrite(ctx, types.EntryStatus{
				Index:           index,
				Entry:           entry,
				Status:          linkStatus,
				SourcePath:      source,
				DestinationPath: dest,
			})
			if err != nil {
				outcome.Result = types.ResultSkipped
				if !errors.IsInterrupted(err) {
					err = errors.Wrap(err, errors.ErrInterrupted, "overwrite prompt failed")
				}
				return outcome, confirmAll, err
			}
			logger.Debug().Str("choice", choice.String()).Msg("Overwrite answered")

			switch choice {
			case types.ChoiceNo:
				outcome.Result = types.ResultSkipped
				l.reporter.Warn(fmt.Sprintf("[%d] %s: skipped", index, entry))
				return outcome, confirmAll, nil
			case types.ChoiceAll:
				confirmAll = true
			}
		}

		if err := l.replace(&outcome, dest, linkStatus); err != nil {
			outcome.Err = err
			l.reporter.Error(fmt.Sprintf("[%d] %s: %s", index, entry, errors.Message(err)))
			logger.Error().Err(err).Msg("Could not clear destination")
			return l.fail(outcome), confirmAll, nil
		}
	}

	parent := filepath.Dir(dest)
	if err := l.fs.MkdirAll(parent, 0755); err != nil {
		outcome.Err = errors.Wrapf(err, errors.ErrDirCreate, "cannot create parent directory %s", parent).
			WithDetail("path", parent)
		l.reporter.Error(fmt.Sprintf("[%d] %s: cannot create %s: %v", index, entry, parent, err))
		logger.Error().Err(err).Msg("Parent directory creation failed")
		return l.fail(outcome), confirmAll, nil
	}

	if err := l.fs.Symlink(source, dest); err != nil {
		outcome.Err = errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot link %s to %s", dest, source).
			WithDetail("source", source).
			WithDetail("destination", dest)
		l.reporter.Error(fmt.Sprintf("[%d] %s: link failed: %v", index, entry, err))
		logger.Error().Err(err).Msg("Symlink creation failed")
		return l.fail(outcome), confirmAll, nil
	}

	outcome.Result = types.ResultLinked
	l.reporter.Success(fmt.Sprintf("[%d] %s: linked", index, entry))
	logger.Info().Msg("Linked")
	return outcome, confirmAll, nil
}

// replace backs up and removes whatever occupies dest. Nothing is removed
// unless the backup succeeded.
func (l *Linker) replace(outcome *types.Outcome, dest string, linkStatus types.LinkStatus) error {
	location, made, err := l.backup.Backup(dest)
	if err != nil {
		return err
	}
	if made {
		outcome.Backup = location
		l.reporter.Info(fmt.Sprintf("[%d] backed up %s to %s", outcome.Index, dest, location))
	}

	// Links are unlinked, never followed into their target
	remove := l.fs.Remove
	if linkStatus == types.StatusFileExists {
		if info, err := l.fs.Lstat(dest); err == nil && info.Mode()&os.ModeSymlink == 0 && info.IsDir() {
			remove = l.fs.RemoveAll
		}
	}
	if err := remove(dest); err != nil {
		return errors.Wrapf(err, errors.ErrRemove, "cannot remove existing %s", dest).
			WithDetail("path", dest).
			WithDetail("backup", location)
	}
	return nil
}

func (l *Linker) fail(outcome types.Outcome) types.Outcome {
	outcome.Result = types.ResultFailed
	return outcome
}
