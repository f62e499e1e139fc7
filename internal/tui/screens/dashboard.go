package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emilianohg/homesolution/internal/journal"
	"github.com/emilianohg/homesolution/internal/models"
)

type projectRow struct {
	id       int
	address  string
	client   string
	done     int
	total    int
	finished bool
}

type Dashboard struct {
	session *journal.Session
	width   int
	height  int

	rows          []projectRow
	employees     int
	freeEmployees int
	cursor        int
	loading       bool
}

func NewDashboard(session *journal.Session) *Dashboard {
	return &Dashboard{
		session: session,
		loading: true,
	}
}

func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

type dashboardDataMsg struct {
	rows          []projectRow
	employees     int
	freeEmployees int
}

func (d *Dashboard) Init() tea.Cmd {
	d.loading = true
	return d.loadData
}

func (d *Dashboard) loadData() tea.Msg {
	reg := d.session.Registry()

	var rows []projectRow
	for _, p := range reg.Projects() {
		row := projectRow{id: p.ID, address: p.Address, client: p.Client, finished: p.Finished()}
		for _, t := range p.Tasks() {
			row.total++
			if t.Finished() {
				row.done++
			}
		}
		rows = append(rows, row)
	}
	return dashboardDataMsg{
		rows:          rows,
		employees:     len(reg.Employees()),
		freeEmployees: len(reg.UnassignedEmployees()),
	}
}

func (d *Dashboard) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.loading = false
		d.rows = msg.rows
		d.employees = msg.employees
		d.freeEmployees = msg.freeEmployees
		if d.cursor >= len(d.rows) {
			d.cursor = max(0, len(d.rows)-1)
		}
		return nil

	case RefreshMsg:
		return d.Init()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if d.cursor > 0 {
				d.cursor--
			}
		case "down", "j":
			if d.cursor < len(d.rows)-1 {
				d.cursor++
			}
		case "enter":
			if len(d.rows) > 0 {
				return NavigateWithProject("project", d.rows[d.cursor].id)
			}
		case "e":
			return Navigate("employees")
		}
	}

	return nil
}

func (d *Dashboard) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("HOMESOLUTION"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Renovation project scheduler"))
	b.WriteString("\n\n")

	if d.loading {
		b.WriteString("Loading...\n")
		return b.String()
	}

	pending := 0
	for _, r := range d.rows {
		if !r.finished {
			pending++
		}
	}
	storage := SuccessStyle.Render("journaled")
	if !d.session.Persistent() {
		storage = WarningStyle.Render("in memory only")
	}
	stats := fmt.Sprintf(
		"Today: %s\nProjects: %d pending, %d finished\nEmployees: %s free of %d\nStorage: %s",
		models.FormatDate(d.session.Registry().Today()),
		pending, len(d.rows)-pending,
		d.formatFree(), d.employees,
		storage,
	)
	b.WriteString(BoxStyle.Render(stats))
	b.WriteString("\n\n")

	if len(d.rows) > 0 {
		b.WriteString(SubtitleStyle.Render("Projects"))
		b.WriteString("\n")
		for i, r := range d.rows {
			status := WarningStyle.Render("pending")
			if r.finished {
				status = SuccessStyle.Render("finished")
			}
			line := fmt.Sprintf("#%d %s (%s) - %d/%d tasks done", r.id, r.address, r.client, r.done, r.total)
			b.WriteString(cursorLine(i == d.cursor, line))
			b.WriteString(" ")
			b.WriteString(status)
			b.WriteString("\n")
		}
	} else {
		b.WriteString(DimStyle.Render("No projects yet. Use 'homesolution project add' to create one."))
	}

	b.WriteString("\n")

	help := "[enter] Open project  [e] Employees  [q] Quit"
	b.WriteString(HelpStyle.Render(help))

	return b.String()
}

func (d *Dashboard) formatFree() string {
	if d.freeEmployees == 0 {
		return WarningStyle.Render("0")
	}
	return SuccessStyle.Render(fmt.Sprintf("%d", d.freeEmployees))
}
