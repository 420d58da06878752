package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/style"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// PlainPresenter writes unstyled text
type PlainPresenter struct {
	out    io.Writer
	prompt *prompter
}

// NewPlainPresenter creates a presenter reading answers from in
func NewPlainPresenter(in io.Reader, out io.Writer) *PlainPresenter {
	return &PlainPresenter{
		out: out,
		prompt: &prompter{
			reader:   NewLineReader(in),
			out:      out,
			decorate: style.Strip,
		},
	}
}

func (p *PlainPresenter) Banner(repoRoot, manifestPath string) {
	p.printf("dotlink\n")
	p.printf("Repository: %s\n", repoRoot)
	p.printf("Manifest:   %s\n", manifestPath)
	p.printf("%s\n\n", strings.ReplaceAll(SelectionHelp, "`", ""))
}

func (p *PlainPresenter) ShowStatus(items []types.EntryStatus) {
	if len(items) == 0 {
		p.printf("No entries.\n")
		return
	}
	width := statusWidth(items)
	for _, item := range items {
		p.printf("%3d. %-*s  %s  (%s)\n", item.Index, width, item.Status.Label(), item.Entry, item.Entry.Description)
	}
	p.printf("\n")
}

func (p *PlainPresenter) ShowSummary(summary types.Summary) {
	for _, line := range summaryLines(summary) {
		p.printf("%s\n", style.Strip(line))
	}
}

func (p *PlainPresenter) Info(msg string)    { p.printf("%s\n", style.Strip(msg)) }
func (p *PlainPresenter) Success(msg string) { p.printf("ok: %s\n", style.Strip(msg)) }
func (p *PlainPresenter) Warn(msg string)    { p.printf("warning: %s\n", style.Strip(msg)) }
func (p *PlainPresenter) Error(msg string)   { p.printf("error: %s\n", style.Strip(msg)) }

func (p *PlainPresenter) Ask(ctx context.Context, prompt string) (string, error) {
	return p.prompt.ask(ctx, prompt)
}

func (p *PlainPresenter) Confirm(ctx context.Context, prompt string, def bool) (bool, error) {
	return p.prompt.confirm(ctx, prompt, def)
}

func (p *PlainPresenter) ConfirmOverwrite(ctx context.Context, item types.EntryStatus) (types.Choice, error) {
	return p.prompt.choose(ctx, overwritePrompt(item))
}

func (p *PlainPresenter) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func statusWidth(items []types.EntryStatus) int {
	width := 0
	for _, item := range items {
		if n := len(item.Status.Label()); n > width {
			width = n
		}
	}
	return width
}

// summaryLines is the markup shared by both presenters
func summaryLines(summary types.Summary) []string {
	lines := []string{
		fmt.Sprintf("[bold]Linked %d of %d entries.[/bold]", summary.Linked, summary.Attempted),
	}
	if skipped := summary.Count(types.ResultSkipped); skipped > 0 {
		lines = append(lines, fmt.Sprintf("[warning]Skipped %d.[/warning]", skipped))
	}
	for _, o := range summary.Failed() {
		reason := "failed"
		if o.Err != nil {
			reason = errors.Message(o.Err)
		}
		lines = append(lines, fmt.Sprintf("[error]Failed [%d]:[/error] %s", o.Index, reason))
	}
	if summary.BackupDir != "" {
		lines = append(lines, fmt.Sprintf("Backups saved in [path]%s[/path]", summary.BackupDir))
	}
	return lines
}
