package ui

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/style"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

// RichPresenter renders styled terminal output
type RichPresenter struct {
	out    io.Writer
	prompt *prompter
}

// NewRichPresenter creates a presenter reading answers from in
func NewRichPresenter(in io.Reader, out io.Writer) *RichPresenter {
	return &RichPresenter{
		out: out,
		prompt: &prompter{
			reader:   NewLineReader(in),
			out:      out,
			decorate: style.Render,
		},
	}
}

func (p *RichPresenter) Banner(repoRoot, manifestPath string) {
	md := fmt.Sprintf("# dotlink\n\n- Repository: `%s`\n- Manifest: `%s`\n\n%s\n", repoRoot, manifestPath, SelectionHelp)
	rendered, err := RenderMarkdown(md, TerminalWidth(p.out, defaultWidth))
	if err != nil {
		logger := logging.GetLogger("ui")
		logger.Debug().Err(err).Msg("Banner rendering failed, using plain text")
		rendered = style.TitleStyle.Render("dotlink") + "\n" + md
	}
	_, _ = fmt.Fprintln(p.out, rendered)
}

func (p *RichPresenter) ShowStatus(items []types.EntryStatus) {
	if len(items) == 0 {
		_, _ = fmt.Fprintln(p.out, style.MutedStyle.Render("No entries."))
		return
	}

	data := pterm.TableData{{"#", "Status", "Source", "Destination", "Description"}}
	for _, item := range items {
		data = append(data, []string{
			strconv.Itoa(item.Index),
			style.StatusIndicator(item.Status) + " " + style.RenderStatus(item.Status),
			item.Entry.Source,
			lipgloss.NewStyle().Foreground(style.StatusColor(item.Status)).Render(item.Entry.DisplayDestination()),
			item.Entry.Description,
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		// Fall back to the plain listing rather than showing nothing
		NewPlainPresenter(strings.NewReader(""), p.out).ShowStatus(items)
		return
	}
	_, _ = fmt.Fprintln(p.out, table)
	_, _ = fmt.Fprintln(p.out)
}

func (p *RichPresenter) ShowSummary(summary types.Summary) {
	lines := make([]string, 0, len(summary.Outcomes)+4)
	for _, o := range summary.Outcomes {
		label := style.ResultStyle(o.Result).Render(fmt.Sprintf("[%d] %s", o.Index, strings.ReplaceAll(o.Result.String(), "_", " ")))
		if o.Entry.Destination != "" {
			label += " " + style.PathStyle.Render(o.Entry.DisplayDestination())
		}
		lines = append(lines, label)
	}
	for _, line := range summaryLines(summary) {
		lines = append(lines, style.Render(line))
	}
	_, _ = fmt.Fprintln(p.out, style.BoxStyle.Render(strings.Join(lines, "\n")))
}

func (p *RichPresenter) Info(msg string) {
	p.line(style.InfoIndicator, style.Render(msg))
}

func (p *RichPresenter) Success(msg string) {
	p.line(style.SuccessIndicator, style.Render(msg))
}

func (p *RichPresenter) Warn(msg string) {
	p.line(style.WarningIndicator, style.WarningStyle.Render(style.Strip(msg)))
}

func (p *RichPresenter) Error(msg string) {
	p.line(style.ErrorIndicator, style.ErrorStyle.Render(style.Strip(msg)))
}

func (p *RichPresenter) Ask(ctx context.Context, prompt string) (string, error) {
	return p.prompt.ask(ctx, "[prompt]"+prompt+"[/prompt]")
}

func (p *RichPresenter) Confirm(ctx context.Context, prompt string, def bool) (bool, error) {
	return p.prompt.confirm(ctx, "[prompt]"+prompt+"[/prompt]", def)
}

func (p *RichPresenter) ConfirmOverwrite(ctx context.Context, item types.EntryStatus) (types.Choice, error) {
	return p.prompt.choose(ctx, overwritePrompt(item))
}

func (p *RichPresenter) line(indicator, text string) {
	_, _ = fmt.Fprintf(p.out, "%s %s\n", indicator, text)
}
