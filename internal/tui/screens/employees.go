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

type employeesMode int

const (
	employeesModeList employeesMode = iota
	employeesModeAddContracted
	employeesModeAddSalaried
)

// Employees lists staff in least-delay order, the order the least-delay
// policy picks from.
type Employees struct {
	session *journal.Session
	width   int
	height  int

	employees []models.Employee
	cursor    int
	mode      employeesMode
	input     textinput.Model
	loading   bool
	err       error
	message   string
}

func NewEmployees(session *journal.Session) *Employees {
	ti := textinput.New()
	ti.CharLimit = 100
	ti.Width = 50

	return &Employees{
		session: session,
		input:   ti,
	}
}

func (e *Employees) SetSize(width, height int) {
	e.width = width
	e.height = height
}

type employeesDataMsg struct {
	employees []models.Employee
}

func (e *Employees) Init() tea.Cmd {
	e.loading = true
	e.mode = employeesModeList
	e.message = ""
	return e.loadData
}

func (e *Employees) loadData() tea.Msg {
	reg := e.session.Registry()
	var out []models.Employee
	for _, ref := range reg.DelayOrdering() {
		if emp, ok := reg.Employee(ref.ID); ok {
			out = append(out, emp)
		}
	}
	return employeesDataMsg{employees: out}
}

func (e *Employees) Update(msg tea.Msg) tea.Cmd {
	if e.mode != employeesModeList {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "enter":
				return e.handleInputKey()
			case "esc":
				e.mode = employeesModeList
				e.input.Blur()
				return nil
			}
		}
		var cmd tea.Cmd
		e.input, cmd = e.input.Update(msg)
		return cmd
	}

	switch msg := msg.(type) {
	case employeesDataMsg:
		e.loading = false
		e.employees = msg.employees
		if e.cursor >= len(e.employees) {
			e.cursor = max(0, len(e.employees)-1)
		}
		return nil

	case opResultMsg:
		e.err = msg.err
		e.message = msg.message
		return e.loadData

	case RefreshMsg:
		return e.Init()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if e.cursor > 0 {
				e.cursor--
			}
		case "down", "j":
			if e.cursor < len(e.employees)-1 {
				e.cursor++
			}
		case "c":
			e.startInput(employeesModeAddContracted, "name; hourly rate")
		case "s":
			e.startInput(employeesModeAddSalaried, "name; daily rate; category")
		case "q", "esc":
			return Navigate("dashboard")
		}
	}
	return nil
}

func (e *Employees) startInput(mode employeesMode, placeholder string) {
	e.mode = mode
	e.message = ""
	e.input.Placeholder = placeholder
	e.input.SetValue("")
	e.input.Focus()
}

func (e *Employees) handleInputKey() tea.Cmd {
	value := strings.TrimSpace(e.input.Value())
	mode := e.mode
	e.mode = employeesModeList
	e.input.Blur()
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ";")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	want := 2
	if mode == employeesModeAddSalaried {
		want = 3
	}
	if len(parts) != want {
		e.err = fmt.Errorf("expected %s", e.input.Placeholder)
		return nil
	}
	rate, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		e.err = fmt.Errorf("rate %q is not a number", parts[1])
		return nil
	}

	op := journal.RegisterContracted(parts[0], rate)
	if mode == employeesModeAddSalaried {
		op = journal.RegisterSalaried(parts[0], rate, parts[2])
	}
	name := parts[0]
	return func() tea.Msg {
		id, err := e.session.Do(op)
		if err != nil {
			return opResultMsg{err: err}
		}
		return opResultMsg{message: fmt.Sprintf("Registered %s with id %d", name, id)}
	}
}

func (e *Employees) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("EMPLOYEES"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Fewest delays first"))
	b.WriteString("\n\n")

	if e.loading {
		b.WriteString("Loading...\n")
		return b.String()
	}

	if e.err != nil {
		b.WriteString(ErrorStyle.Render(describeErr(e.err)))
		b.WriteString("\n\n")
		e.err = nil
	}

	if e.message != "" {
		b.WriteString(SuccessStyle.Render(e.message))
		b.WriteString("\n\n")
	}

	if e.mode != employeesModeList {
		b.WriteString("New employee (" + e.input.Placeholder + "):\n")
		b.WriteString(e.input.View())
		b.WriteString("\n\n")
		b.WriteString(HelpStyle.Render("[enter] Save  [esc] Cancel"))
		return b.String()
	}

	if len(e.employees) == 0 {
		b.WriteString(DimStyle.Render("No employees yet."))
		b.WriteString("\n\n")
	} else {
		for i, emp := range e.employees {
			rate := fmt.Sprintf("%.2f/hour", emp.Rate)
			if emp.Kind == models.KindSalaried {
				rate = fmt.Sprintf("%.2f/day %s", emp.Rate, emp.Category)
			}
			state := SuccessStyle.Render("free")
			if emp.Assigned {
				state = WarningStyle.Render("assigned")
			}
			line := fmt.Sprintf("%d %s - %s - %s - %d delays - ", emp.ID, emp.Name, emp.Kind, rate, emp.Delays)
			b.WriteString(cursorLine(i == e.cursor, line))
			b.WriteString(state)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render("[c] Add contracted  [s] Add salaried  [q] Back"))
	return b.String()
}
