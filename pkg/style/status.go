package style

import (
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

// StatusStyle returns the pterm style used for a status cell in tables
func StatusStyle(status types.LinkStatus) *pterm.Style {
	switch status {
	case types.StatusAlreadyLinked:
		return pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	case types.StatusNotLinked:
		return pterm.NewStyle(pterm.FgCyan)
	case types.StatusLinksElsewhere, types.StatusFileExists:
		return pterm.NewStyle(pterm.FgYellow)
	case types.StatusBrokenLink:
		return pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	case types.StatusMissingInRepo:
		return pterm.NewStyle(pterm.FgRed)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// StatusColor returns the lipgloss color associated with a status
func StatusColor(status types.LinkStatus) lipgloss.TerminalColor {
	switch status {
	case types.StatusAlreadyLinked:
		return LinkedColor
	case types.StatusNotLinked:
		return PendingColor
	case types.StatusLinksElsewhere, types.StatusBrokenLink, types.StatusFileExists:
		return ConflictColor
	case types.StatusMissingInRepo:
		return MissingColor
	default:
		return MutedColor
	}
}

// StatusIndicator returns a one-character styled marker for a status
func StatusIndicator(status types.LinkStatus) string {
	switch status {
	case types.StatusAlreadyLinked:
		return SuccessIndicator
	case types.StatusNotLinked:
		return PendingIndicator
	case types.StatusMissingInRepo:
		return ErrorIndicator
	default:
		return WarningIndicator
	}
}

// RenderStatus renders the status label in its color
func RenderStatus(status types.LinkStatus) string {
	return StatusStyle(status).Sprint(status.Label())
}

// ResultStyle returns the lipgloss style for a transaction result
func ResultStyle(result types.Result) lipgloss.Style {
	switch result {
	case types.ResultLinked, types.ResultAlreadyLinked:
		return SuccessStyle
	case types.ResultSkipped:
		return WarningStyle
	default:
		return ErrorStyle
	}
}
