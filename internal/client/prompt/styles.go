package prompt

import (
	"github.com/charmbracelet/lipgloss"
	clientBulk "github.com/horilla-hris/hris-bulk-go/internal/client/bulk"
	bulkDomain "github.com/horilla-hris/hris-bulk-go/internal/domain/bulk"
)

// Styles themes the dialog and the toasts.
type Styles struct {
	Info     lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Question lipgloss.Style
	Success  lipgloss.Style
	Badge    lipgloss.Style
	Help     lipgloss.Style
	Box      lipgloss.Style
}

func NewStyles() Styles {
	return Styles{
		Info:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),  // blue
		Warning:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")), // yellow
		Error:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")), // red
		Question: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),  // purple
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),             // green
		Badge:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Help:     lipgloss.NewStyle().Faint(true),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			BorderForeground(lipgloss.Color("241")),
	}
}

// ForSeverity picks the dialog style of a confirmation.
func (s Styles) ForSeverity(severity bulkDomain.Severity) lipgloss.Style {
	switch severity {
	case bulkDomain.SeverityInfo:
		return s.Info
	case bulkDomain.SeverityError:
		return s.Error
	case bulkDomain.SeverityQuestion:
		return s.Question
	default:
		return s.Warning
	}
}

// ForLevel picks the toast style of a notice.
func (s Styles) ForLevel(level clientBulk.Level) lipgloss.Style {
	switch level {
	case clientBulk.LevelSuccess:
		return s.Success
	case clientBulk.LevelError:
		return s.Error
	default:
		return s.Warning
	}
}
