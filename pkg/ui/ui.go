// Package ui presents status listings, per-entry messages and prompts.
//
// Two presenters implement the same Presenter interface: RichPresenter
// (lipgloss styles, pterm tables, a glamour-rendered banner) and
// PlainPresenter (unstyled text). Control flow never depends on which one
// is in use. Messages may carry [tag]...[/tag] markup from pkg/style; the
// rich presenter renders it and the plain presenter strips it.
package ui

import (
	"context"
	"io"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// SelectionHelp explains the selection prompt
const SelectionHelp = "Enter entry numbers separated by spaces, `all` to link everything, or `q` to quit."

// Presenter is everything the session and linker show or ask
type Presenter interface {
	Banner(repoRoot, manifestPath string)
	ShowStatus(items []types.EntryStatus)
	ShowSummary(summary types.Summary)

	Info(msg string)
	Success(msg string)
	Warn(msg string)
	Error(msg string)

	// Ask returns one trimmed line of input
	Ask(ctx context.Context, prompt string) (string, error)
	// Confirm asks a yes/no question; an empty answer returns def
	Confirm(ctx context.Context, prompt string, def bool) (bool, error)
	// ConfirmOverwrite asks before an existing destination is replaced
	ConfirmOverwrite(ctx context.Context, item types.EntryStatus) (types.Choice, error)
}

// NewPresenter creates the presenter for format, resolving FormatAuto
// against out. JSON is not interactive and is rejected here.
func NewPresenter(format Format, in io.Reader, out io.Writer) (Presenter, error) {
	switch Resolve(format, out) {
	case FormatTerminal:
		return NewRichPresenter(in, out), nil
	case FormatText:
		return NewPlainPresenter(in, out), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "format %s is only supported by the status command", format).
			WithDetail("format", format.String())
	}
}
