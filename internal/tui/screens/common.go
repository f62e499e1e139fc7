package screens

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/emilianohg/homesolution/internal/scheduler"
)

// NavigateMsg is sent when navigation to another screen is requested
type NavigateMsg struct {
	Screen    string
	ProjectID *int
}

func Navigate(screen string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Screen: screen}
	}
}

func NavigateWithProject(screen string, projectID int) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Screen: screen, ProjectID: &projectID}
	}
}

// RefreshMsg is sent when data should be refreshed
type RefreshMsg struct{}

func Refresh() tea.Cmd {
	return func() tea.Msg {
		return RefreshMsg{}
	}
}

// opResultMsg carries the outcome of a registry operation back to the
// screen that started it.
type opResultMsg struct {
	message string
	err     error
}

// describeErr prefixes registry errors with a short label for their kind.
func describeErr(err error) string {
	switch {
	case errors.Is(err, scheduler.ErrResourceExhausted):
		return "No free employees: " + err.Error()
	case errors.Is(err, scheduler.ErrNotFound):
		return "Not found: " + err.Error()
	case errors.Is(err, scheduler.ErrInvalidState):
		return "Not allowed: " + err.Error()
	case errors.Is(err, scheduler.ErrInvalidArgument):
		return "Invalid input: " + err.Error()
	}
	return fmt.Sprintf("Error: %v", err)
}

func cursorLine(selected bool, text string) string {
	if selected {
		return SelectedStyle.Render("> " + text)
	}
	return NormalStyle.Render("  " + text)
}

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginBottom(1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	NormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)
