package screens

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/emilianohg/homesolution/internal/journal"
	"github.com/emilianohg/homesolution/internal/models"
)

type projectMode int

const (
	projectModeList projectMode = iota
	projectModeDelay
	projectModeFinish
	projectModeAddTask
)

// ProjectDetail lists one project's tasks and runs task operations on the
// selected one.
type ProjectDetail struct {
	session    *journal.Session
	leastDelay bool
	width      int
	height     int

	projectID int
	project   *models.Project
	cost      float64
	names     map[int]string
	cursor    int
	mode      projectMode
	input     textinput.Model
	loading   bool
	err       error
	message   string
}

func NewProjectDetail(session *journal.Session, leastDelay bool) *ProjectDetail {
	ti := textinput.New()
	ti.CharLimit = 100
	ti.Width = 40

	return &ProjectDetail{
		session:    session,
		leastDelay: leastDelay,
		input:      ti,
	}
}

func (p *ProjectDetail) SetSize(width, height int) {
	p.width = width
	p.height = height
}

func (p *ProjectDetail) SetProject(id *int) {
	if id != nil && *id != p.projectID {
		p.projectID = *id
		p.cursor = 0
	}
}

type projectDataMsg struct {
	project *models.Project
	cost    float64
	names   map[int]string
	err     error
}

func (p *ProjectDetail) Init() tea.Cmd {
	p.loading = true
	p.mode = projectModeList
	p.message = ""
	return p.loadData
}

func (p *ProjectDetail) loadData() tea.Msg {
	reg := p.session.Registry()
	proj, ok := reg.Project(p.projectID)
	if !ok {
		return projectDataMsg{err: fmt.Errorf("project %d does not exist", p.projectID)}
	}
	cost, err := reg.ProjectCost(p.projectID)
	if err != nil {
		return projectDataMsg{err: err}
	}
	names := make(map[int]string)
	for _, e := range reg.Employees() {
		names[e.ID] = e.Name
	}
	return projectDataMsg{project: proj, cost: cost, names: names}
}

// run applies op and reports the outcome as an opResultMsg.
func (p *ProjectDetail) run(op journal.Op, success func(id int) string) tea.Cmd {
	return func() tea.Msg {
		id, err := p.session.Do(op)
		if err != nil {
			return opResultMsg{err: err}
		}
		return opResultMsg{message: success(id)}
	}
}

func (p *ProjectDetail) selected() *models.Task {
	if p.project == nil {
		return nil
	}
	tasks := p.project.Tasks()
	if p.cursor >= len(tasks) {
		return nil
	}
	return tasks[p.cursor]
}

func (p *ProjectDetail) Update(msg tea.Msg) tea.Cmd {
	if p.mode != projectModeList {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "enter":
				return p.handleInputKey()
			case "esc":
				p.mode = projectModeList
				p.input.Blur()
				return nil
			}
		}
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return cmd
	}

	switch msg := msg.(type) {
	case projectDataMsg:
		p.loading = false
		if msg.err != nil {
			p.err = msg.err
			return nil
		}
		p.project = msg.project
		p.cost = msg.cost
		p.names = msg.names
		if n := len(p.project.Tasks()); p.cursor >= n {
			p.cursor = max(0, n-1)
		}
		return nil

	case opResultMsg:
		p.err = msg.err
		p.message = msg.message
		return p.loadData

	case RefreshMsg:
		return p.Init()

	case tea.KeyMsg:
		return p.handleListKey(msg)
	}

	return nil
}

func (p *ProjectDetail) handleListKey(msg tea.KeyMsg) tea.Cmd {
	p.message = ""
	t := p.selected()

	switch msg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.project != nil && p.cursor < len(p.project.Tasks())-1 {
			p.cursor++
		}
	case "a", "l":
		if t == nil {
			return nil
		}
		leastDelay := p.leastDelay || msg.String() == "l"
		title := t.Title
		return p.run(journal.Assign(leastDelay, p.projectID, title), func(id int) string {
			return fmt.Sprintf("Assigned %q to %s", title, p.employeeName(id))
		})
	case "r":
		if t == nil {
			return nil
		}
		title := t.Title
		return p.run(journal.ReassignLeastDelay(p.projectID, title), func(id int) string {
			return fmt.Sprintf("Reassigned %q to %s", title, p.employeeName(id))
		})
	case "f":
		if t == nil {
			return nil
		}
		title := t.Title
		return p.run(journal.FinishTask(p.projectID, title), func(int) string {
			return fmt.Sprintf("Finished %q", title)
		})
	case "d":
		if t != nil {
			p.startInput(projectModeDelay, "Days of delay", "")
		}
	case "x":
		p.startInput(projectModeFinish, "End date (YYYY-MM-DD)", models.FormatDate(p.session.Registry().Today()))
	case "t":
		p.startInput(projectModeAddTask, "title; days; description", "")
	case "q", "esc":
		return Navigate("dashboard")
	}
	return nil
}

func (p *ProjectDetail) startInput(mode projectMode, placeholder, value string) {
	p.mode = mode
	p.input.Placeholder = placeholder
	p.input.SetValue(value)
	p.input.Focus()
}

func (p *ProjectDetail) handleInputKey() tea.Cmd {
	value := strings.TrimSpace(p.input.Value())
	mode := p.mode
	p.mode = projectModeList
	p.input.Blur()
	if value == "" {
		return nil
	}

	switch mode {
	case projectModeDelay:
		t := p.selected()
		if t == nil {
			return nil
		}
		days, err := strconv.ParseFloat(value, 64)
		if err != nil {
			p.err = fmt.Errorf("delay %q is not a number", value)
			return nil
		}
		title := t.Title
		return p.run(journal.RegisterDelay(p.projectID, title, days), func(int) string {
			return fmt.Sprintf("Delayed %q by %d day(s)", title, models.WholeDays(days))
		})

	case projectModeFinish:
		return p.run(journal.FinishProject(p.projectID, value), func(int) string {
			return fmt.Sprintf("Project %d finished on %s", p.projectID, value)
		})

	case projectModeAddTask:
		parts := strings.SplitN(value, ";", 3)
		if len(parts) < 2 {
			p.err = fmt.Errorf("expected title; days; description")
			return nil
		}
		title := strings.TrimSpace(parts[0])
		days, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			p.err = fmt.Errorf("days %q is not a number", parts[1])
			return nil
		}
		desc := ""
		if len(parts) == 3 {
			desc = strings.TrimSpace(parts[2])
		}
		return p.run(journal.AddTask(p.projectID, title, desc, days), func(int) string {
			return fmt.Sprintf("Added task %q", title)
		})
	}
	return nil
}

func (p *ProjectDetail) employeeName(id int) string {
	if name, ok := p.names[id]; ok {
		return fmt.Sprintf("%s (%d)", name, id)
	}
	return strconv.Itoa(id)
}

func (p *ProjectDetail) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("PROJECT %d", p.projectID)))
	b.WriteString("\n\n")

	if p.loading {
		b.WriteString("Loading...\n")
		return b.String()
	}

	if p.err != nil {
		b.WriteString(ErrorStyle.Render(describeErr(p.err)))
		b.WriteString("\n\n")
		p.err = nil
	}

	if p.message != "" {
		b.WriteString(SuccessStyle.Render(p.message))
		b.WriteString("\n\n")
	}

	if p.project == nil {
		b.WriteString(HelpStyle.Render("[q] Back"))
		return b.String()
	}

	if p.mode != projectModeList {
		b.WriteString(p.input.Placeholder + ":\n")
		b.WriteString(p.input.View())
		b.WriteString("\n\n")
		b.WriteString(HelpStyle.Render("[enter] Save  [esc] Cancel"))
		return b.String()
	}

	proj := p.project
	status := WarningStyle.Render("pending")
	if proj.Finished() {
		status = SuccessStyle.Render("finished " + models.FormatDatePtr(proj.ActualDate))
	}
	header := fmt.Sprintf("%s\nClients: %s\nStart: %s  Planned: %s  Status: %s\nCost: %.2f",
		proj.Address, proj.Client,
		models.FormatDate(proj.StartDate), models.FormatDate(proj.PlannedDate), status,
		p.cost)
	b.WriteString(BoxStyle.Render(header))
	b.WriteString("\n\n")

	tasks := proj.Tasks()
	if len(tasks) == 0 {
		b.WriteString(DimStyle.Render("No tasks."))
		b.WriteString("\n\n")
	} else {
		for i, t := range tasks {
			resp := DimStyle.Render("unassigned")
			if t.Responsible != nil {
				resp = p.employeeName(*t.Responsible)
			}
			state := fmt.Sprintf("planned %s", models.FormatDate(t.PlannedDate))
			if t.Finished() {
				state = SuccessStyle.Render("done " + models.FormatDatePtr(t.ActualDate))
			}
			line := fmt.Sprintf("%s [%g days] - %s - ", t.Title, t.Days, resp)
			b.WriteString(cursorLine(i == p.cursor, line))
			b.WriteString(state)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	policy := "fifo"
	if p.leastDelay {
		policy = "least delay"
	}
	help := fmt.Sprintf("[a] Assign (%s)  [l] Assign least delay  [r] Reassign  [d] Delay  [f] Finish task\n[t] Add task  [x] Finish project  [q] Back", policy)
	b.WriteString(HelpStyle.Render(help))

	return b.String()
}
