package testutil

import (
	"context"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// Message is one line reported to a ScriptedPresenter
type Message struct {
	Level string
	Text  string
}

// ScriptedPresenter records everything shown and answers prompts from
// queues. An exhausted queue behaves like closed input and returns an
// interruption error.
type ScriptedPresenter struct {
	Answers  []string
	Confirms []bool
	Choices  []types.Choice

	Messages         []Message
	Prompts          []string
	OverwritePrompts []types.EntryStatus
	Listings         [][]types.EntryStatus
	Summaries        []types.Summary
	Banners          int
}

func (p *ScriptedPresenter) Banner(repoRoot, manifestPath string) { p.Banners++ }

func (p *ScriptedPresenter) ShowStatus(items []types.EntryStatus) {
	p.Listings = append(p.Listings, items)
}

func (p *ScriptedPresenter) ShowSummary(summary types.Summary) {
	p.Summaries = append(p.Summaries, summary)
}

func (p *ScriptedPresenter) Info(msg string)    { p.record("info", msg) }
func (p *ScriptedPresenter) Success(msg string) { p.record("success", msg) }
func (p *ScriptedPresenter) Warn(msg string)    { p.record("warn", msg) }
func (p *ScriptedPresenter) Error(msg string)   { p.record("error", msg) }

func (p *ScriptedPresenter) record(level, msg string) {
	p.Messages = append(p.Messages, Message{Level: level, Text: msg})
}

func (p *ScriptedPresenter) Ask(ctx context.Context, prompt string) (string, error) {
	p.Prompts = append(p.Prompts, prompt)
	if err := ctx.Err(); err != nil || len(p.Answers) == 0 {
		return "", closedInput()
	}
	answer := p.Answers[0]
	p.Answers = p.Answers[1:]
	return answer, nil
}

func (p *ScriptedPresenter) Confirm(ctx context.Context, prompt string, def bool) (bool, error) {
	p.Prompts = append(p.Prompts, prompt)
	if err := ctx.Err(); err != nil || len(p.Confirms) == 0 {
		return false, closedInput()
	}
	answer := p.Confirms[0]
	p.Confirms = p.Confirms[1:]
	return answer, nil
}

func (p *ScriptedPresenter) ConfirmOverwrite(ctx context.Context, item types.EntryStatus) (types.Choice, error) {
	p.OverwritePrompts = append(p.OverwritePrompts, item)
	if err := ctx.Err(); err != nil || len(p.Choices) == 0 {
		return types.ChoiceNo, closedInput()
	}
	choice := p.Choices[0]
	p.Choices = p.Choices[1:]
	return choice, nil
}

// Lines returns the text of every message at level, or all when level is empty
func (p *ScriptedPresenter) Lines(level string) []string {
	var lines []string
	for _, m := range p.Messages {
		if level == "" || m.Level == level {
			lines = append(lines, m.Text)
		}
	}
	return lines
}

// Output joins every message into one string for substring checks
func (p *ScriptedPresenter) Output() string {
	return strings.Join(p.Lines(""), "\n")
}

func closedInput() error {
	return errors.New(errors.ErrInterrupted, "input closed")
}
