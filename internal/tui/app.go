package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/emilianohg/homesolution/internal/config"
	"github.com/emilianohg/homesolution/internal/journal"
	"github.com/emilianohg/homesolution/internal/tui/screens"
)

type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenProject
	ScreenEmployees
)

type App struct {
	session       *journal.Session
	cfg           *config.Config
	currentScreen Screen
	width         int
	height        int

	dashboard *screens.Dashboard
	project   *screens.ProjectDetail
	employees *screens.Employees
}

func NewApp(session *journal.Session, cfg *config.Config) *App {
	return &App{
		session:       session,
		cfg:           cfg,
		currentScreen: ScreenDashboard,
	}
}

func (a *App) Init() tea.Cmd {
	a.dashboard = screens.NewDashboard(a.session)
	a.project = screens.NewProjectDetail(a.session, a.cfg.LeastDelay())
	a.employees = screens.NewEmployees(a.session)

	return a.dashboard.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if a.currentScreen == ScreenDashboard {
				return a, tea.Quit
			}
			// other screens use 'q' to go back
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.dashboard.SetSize(msg.Width, msg.Height)
		a.project.SetSize(msg.Width, msg.Height)
		a.employees.SetSize(msg.Width, msg.Height)

	case screens.NavigateMsg:
		return a.handleNavigation(msg)
	}

	var cmd tea.Cmd
	switch a.currentScreen {
	case ScreenDashboard:
		cmd = a.dashboard.Update(msg)
	case ScreenProject:
		cmd = a.project.Update(msg)
	case ScreenEmployees:
		cmd = a.employees.Update(msg)
	}

	return a, cmd
}

func (a *App) handleNavigation(msg screens.NavigateMsg) (tea.Model, tea.Cmd) {
	switch msg.Screen {
	case "dashboard":
		a.currentScreen = ScreenDashboard
		return a, a.dashboard.Init()
	case "project":
		a.currentScreen = ScreenProject
		a.project.SetProject(msg.ProjectID)
		return a, a.project.Init()
	case "employees":
		a.currentScreen = ScreenEmployees
		return a, a.employees.Init()
	}
	return a, nil
}

func (a *App) View() string {
	var content string

	switch a.currentScreen {
	case ScreenDashboard:
		content = a.dashboard.View()
	case ScreenProject:
		content = a.project.View()
	case ScreenEmployees:
		content = a.employees.View()
	}

	return lipgloss.NewStyle().
		Width(a.width).
		Height(a.height).
		Render(content)
}

func Run(session *journal.Session, cfg *config.Config) error {
	app := NewApp(session, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
