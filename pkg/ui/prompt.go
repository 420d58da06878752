package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// LineReader reads lines from an input stream without blocking callers past
// their context. One goroutine pumps lines into a channel; a read that is
// abandoned leaves the line for the next caller.
type LineReader struct {
	in    io.Reader
	lines chan string
	once  sync.Once
}

// NewLineReader wraps in. Reading starts on the first ReadLine call.
func NewLineReader(in io.Reader) *LineReader {
	return &LineReader{in: in, lines: make(chan string)}
}

func (r *LineReader) pump() {
	scanner := bufio.NewScanner(r.in)
	for scanner.Scan() {
		r.lines <- strings.TrimRight(scanner.Text(), "\r")
	}
	close(r.lines)
}

// ReadLine returns the next line. End of input and a done context both
// return an ErrInterrupted error.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	r.once.Do(func() { go r.pump() })

	select {
	case <-ctx.Done():
		return "", errors.Wrap(ctx.Err(), errors.ErrInterrupted, "interrupted")
	case line, ok := <-r.lines:
		if !ok {
			return "", errors.New(errors.ErrInterrupted, "end of input")
		}
		return line, nil
	}
}

// ParseYesNo interprets a confirmation answer. ok is false for anything
// that is not y, yes, n or no in any case.
func ParseYesNo(answer string) (yes bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	}
	return false, false
}

// ParseChoice interprets an overwrite answer: yes, no or all
func ParseChoice(answer string) (types.Choice, bool) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return types.ChoiceYes, true
	case "n", "no":
		return types.ChoiceNo, true
	case "a", "all":
		return types.ChoiceAll, true
	}
	return types.ChoiceNo, false
}

// prompter writes prompts and reads answers. Both presenters share it and
// differ only in how prompt text is decorated.
type prompter struct {
	reader   *LineReader
	out      io.Writer
	decorate func(string) string
}

func (p *prompter) ask(ctx context.Context, prompt string) (string, error) {
	if _, err := fmt.Fprint(p.out, p.decorate(prompt)); err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to write prompt")
	}
	line, err := p.reader.ReadLine(ctx)
	if err != nil {
		// Keep the terminal tidy after ^C or ^D
		_, _ = fmt.Fprintln(p.out)
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *prompter) confirm(ctx context.Context, prompt string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	for {
		answer, err := p.ask(ctx, fmt.Sprintf("%s %s ", prompt, hint))
		if err != nil {
			return false, err
		}
		if answer == "" {
			return def, nil
		}
		if yes, ok := ParseYesNo(answer); ok {
			return yes, nil
		}
		_, _ = fmt.Fprintln(p.out, p.decorate("[warning]Please answer y or n.[/warning]"))
	}
}

func (p *prompter) choose(ctx context.Context, prompt string) (types.Choice, error) {
	for {
		answer, err := p.ask(ctx, prompt+" [y/N/a] ")
		if err != nil {
			return types.ChoiceNo, err
		}
		if answer == "" {
			return types.ChoiceNo, nil
		}
		if choice, ok := ParseChoice(answer); ok {
			return choice, nil
		}
		_, _ = fmt.Fprintln(p.out, p.decorate("[warning]Please answer y (yes), n (no) or a (all).[/warning]"))
	}
}

// overwritePrompt is the markup question asked before replacing a destination
func overwritePrompt(item types.EntryStatus) string {
	return fmt.Sprintf("[prompt]%s[/prompt] exists ([bold]%s[/bold]). Back it up and link to [path]%s[/path]?",
		item.Entry.DisplayDestination(), strings.ToLower(item.Status.Label()), item.SourcePath)
}
