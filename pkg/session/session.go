package session

import (
	"context"
	"fmt"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/linker"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/manifest"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/arthur-debert/dotlink/pkg/ui"
	"github.com/rs/zerolog"
)

// State is a step of the interactive loop
type State int

const (
	StateListing State = iota
	StatePrompting
	StateConfirming
	StateDone
)

func (s State) String() string {
	switch s {
	case StateListing:
		return "listing"
	case StatePrompting:
		return "prompting"
	case StateConfirming:
		return "confirming"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

const (
	// SelectionPrompt is shown when asking which entries to link
	SelectionPrompt = "Select entries to link: "
	// ContinuePrompt is asked after every batch
	ContinuePrompt = "Continue managing dotfiles?"
	// InterruptedMessage is shown when a prompt is interrupted before
	// anything was linked
	InterruptedMessage = "Interrupted. Exiting without changes."
	// InterruptedKeptMessage is shown when a prompt is interrupted after
	// some entries were linked
	InterruptedKeptMessage = "Interrupted. Entries linked so far were kept."
	// GoodbyeMessage is shown when the user quits or stops
	GoodbyeMessage = "Done."
)

// Options contains the dependencies of a Session
type Options struct {
	Manifest  *manifest.Manifest
	Linker    *linker.Linker
	Presenter ui.Presenter
	RepoRoot  string
	// Force replaces existing destinations without asking
	Force bool
}

// Session is one interactive run over a loaded manifest
type Session struct {
	logger    zerolog.Logger
	manifest  *manifest.Manifest
	linker    *linker.Linker
	batch     *linker.Batch
	presenter ui.Presenter
	repoRoot  string
	force     bool

	state   State
	pending []int
	all     bool
	// changed is set once any batch has linked an entry
	changed bool
}

// New creates a session in StateListing
func New(opts Options) *Session {
	return &Session{
		logger:    logging.GetLogger("session"),
		manifest:  opts.Manifest,
		linker:    opts.Linker,
		batch:     linker.NewBatch(opts.Linker, opts.Manifest),
		presenter: opts.Presenter,
		repoRoot:  opts.RepoRoot,
		force:     opts.Force,
		state:     StateListing,
	}
}

// State returns the current state
func (s *Session) State() State {
	return s.state
}

// Run drives the loop until the user quits, declines to continue or
// interrupts a prompt. All three end with a nil error.
func (s *Session) Run(ctx context.Context) error {
	s.presenter.Banner(s.repoRoot, s.manifest.Path)
	for _, warning := range s.manifest.Warnings {
		s.presenter.Warn(warning)
	}

	for s.state != StateDone {
		s.logger.Trace().Str("state", s.state.String()).Msg("Session step")

		var err error
		switch s.state {
		case StateListing:
			s.list()
		case StatePrompting:
			err = s.prompt(ctx)
		case StateConfirming:
			err = s.confirm(ctx)
		}

		if err != nil {
			if errors.IsInterrupted(err) {
				s.logger.Info().Msg("Session interrupted")
				s.presenter.Warn(InterruptedNotice(s.changed))
				s.state = StateDone
				return nil
			}
			return err
		}
	}
	return nil
}

// InterruptedNotice returns the message for an interruption, depending on
// whether anything had been linked before it
func InterruptedNotice(changed bool) string {
	if changed {
		return InterruptedKeptMessage
	}
	return InterruptedMessage
}

func (s *Session) list() {
	s.presenter.ShowStatus(s.linker.Classifier().ClassifyAll(s.manifest.Entries))
	s.state = StatePrompting
}

func (s *Session) prompt(ctx context.Context) error {
	token, err := s.presenter.Ask(ctx, SelectionPrompt)
	if err != nil {
		return err
	}

	sel, err := ParseSelection(token, s.manifest.Len())
	if err != nil {
		s.presenter.Error(errors.Message(err))
		s.state = StateListing
		return nil
	}

	switch sel.Kind {
	case SelectQuit:
		s.presenter.Info(GoodbyeMessage)
		s.state = StateDone
	case SelectEmpty:
		s.presenter.Warn("No selection entered.")
		s.state = StateListing
	default:
		s.pending = sel.Indices
		s.all = sel.Kind == SelectAll
		s.state = StateConfirming
	}
	return nil
}

func (s *Session) confirm(ctx context.Context) error {
	question := fmt.Sprintf("Link %d selected entries?", len(s.pending))
	if s.all {
		question = fmt.Sprintf("Link all %d entries?", len(s.pending))
	}

	ok, err := s.presenter.Confirm(ctx, question, false)
	if err != nil {
		return err
	}
	if !ok {
		s.state = StateListing
		return nil
	}

	summary, err := s.batch.Run(ctx, s.pending, s.force)
	if summary.Count(types.ResultLinked) > 0 {
		s.changed = true
	}
	if err != nil {
		if errors.IsInterrupted(err) && len(summary.Outcomes) > 0 {
			s.presenter.ShowSummary(summary)
		}
		return err
	}
	s.presenter.ShowSummary(summary)

	again, err := s.presenter.Confirm(ctx, ContinuePrompt, true)
	if err != nil {
		return err
	}
	if !again {
		s.presenter.Info(GoodbyeMessage)
		s.state = StateDone
		return nil
	}
	s.state = StateListing
	return nil
}
