package style

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

// MarkupParser handles parsing and rendering of [tag]...[/tag] markup
type MarkupParser struct {
	styles   map[string]lipgloss.Style
	patterns map[string]*regexp.Regexp
}

// NewMarkupParser creates a new markup parser with default styles
func NewMarkupParser() *MarkupParser {
	p := &MarkupParser{
		styles:   make(map[string]lipgloss.Style),
		patterns: make(map[string]*regexp.Regexp),
	}
	for tag, s := range map[string]lipgloss.Style{
		"title":    TitleStyle,
		"subtitle": SubtitleStyle,
		"success":  SuccessStyle,
		"error":    ErrorStyle,
		"warning":  WarningStyle,
		"info":     InfoStyle,
		"code":     CodeStyle,
		"path":     PathStyle,
		"muted":    MutedStyle,
		"prompt":   PromptStyle,
		"bold":     lipgloss.NewStyle().Bold(true),
		"italic":   lipgloss.NewStyle().Italic(true),
	} {
		p.AddStyle(tag, s)
	}
	return p
}

// AddStyle allows adding custom styles
func (p *MarkupParser) AddStyle(tag string, style lipgloss.Style) {
	p.styles[tag] = style
	p.patterns[tag] = regexp.MustCompile(`\[` + regexp.QuoteMeta(tag) + `\](.*?)\[/` + regexp.QuoteMeta(tag) + `\]`)
}

// Render processes markup text and returns styled output
func (p *MarkupParser) Render(text string) string {
	return p.apply(text, func(tag, content string) string {
		return p.styles[tag].Render(content)
	})
}

// Strip removes known tags and keeps their content, for plain output
func (p *MarkupParser) Strip(text string) string {
	return p.apply(text, func(_, content string) string {
		return content
	})
}

func (p *MarkupParser) apply(text string, replace func(tag, content string) string) string {
	result := text
	// Repeat until stable so nested tags are handled
	for {
		before := result
		for tag, pattern := range p.patterns {
			result = pattern.ReplaceAllStringFunc(result, func(match string) string {
				submatch := pattern.FindStringSubmatch(match)
				if len(submatch) != 2 {
					return match
				}
				return replace(tag, submatch[1])
			})
		}
		if result == before {
			return result
		}
	}
}

// Global parser instance
var defaultParser = NewMarkupParser()

// Render is a convenience function using the default parser
func Render(text string) string {
	return defaultParser.Render(text)
}

// Strip is a convenience function using the default parser
func Strip(text string) string {
	return defaultParser.Strip(text)
}
