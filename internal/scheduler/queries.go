package scheduler

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/emilianohg/homesolution/internal/models"
)

// ProjectRef pairs a project id with its address.
type ProjectRef struct {
	ID      int
	Address string
}

// EmployeeRef pairs an employee id with its name.
type EmployeeRef struct {
	ID   int
	Name string
}

func (r *Registry) projectsWhere(keep func(*models.Project) bool) []ProjectRef {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []ProjectRef
	for _, id := range slices.Sorted(maps.Keys(r.projects)) {
		p := r.projects[id]
		if keep(p) {
			out = append(out, ProjectRef{ID: p.ID, Address: p.Address})
		}
	}
	return out
}

func (r *Registry) FinishedProjects() []ProjectRef {
	return r.projectsWhere(func(p *models.Project) bool { return p.Finished() })
}

func (r *Registry) PendingProjects() []ProjectRef {
	return r.projectsWhere(func(p *models.Project) bool { return !p.Finished() })
}

// ActiveProjects are pending projects that have at least one task.
func (r *Registry) ActiveProjects() []ProjectRef {
	return r.projectsWhere(func(p *models.Project) bool { return !p.Finished() && p.HasTasks() })
}

func (r *Registry) sortedEmployees() []*models.Employee {
	out := make([]*models.Employee, 0, len(r.employees))
	for _, id := range slices.Sorted(maps.Keys(r.employees)) {
		out = append(out, r.employees[id])
	}
	return out
}

// UnassignedEmployees returns the ids of free employees, ascending.
func (r *Registry) UnassignedEmployees() []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ids []int
	for _, e := range r.sortedEmployees() {
		if !e.Assigned {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// Employees returns the roster in registration order.
func (r *Registry) Employees() []EmployeeRef {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]EmployeeRef, 0, len(r.employees))
	for _, e := range r.sortedEmployees() {
		out = append(out, EmployeeRef{ID: e.ID, Name: e.Name})
	}
	return out
}

// EmployeeDetails returns copies of every employee in registration order.
func (r *Registry) EmployeeDetails() []models.Employee {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Employee, 0, len(r.employees))
	for _, e := range r.sortedEmployees() {
		out = append(out, *e)
	}
	return out
}

// Employee returns a copy of the employee with id.
func (r *Registry) Employee(id int) (models.Employee, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.employees[id]
	if !ok {
		return models.Employee{}, false
	}
	return *e, true
}

// Project returns a deep copy of the project with id.
func (r *Registry) Project(id int) (*models.Project, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[id]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// Projects returns deep copies of every project, by id.
func (r *Registry) Projects() []*models.Project {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*models.Project, 0, len(r.projects))
	for _, id := range slices.Sorted(maps.Keys(r.projects)) {
		out = append(out, r.projects[id].Clone())
	}
	return out
}

// IsFinished reports false for unknown projects.
func (r *Registry) IsFinished(projectID int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[projectID]
	return ok && p.Finished()
}

// DelayCount is 0 for unknown employees.
func (r *Registry) DelayCount(employeeID int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.employees[employeeID]; ok {
		return e.Delays
	}
	return 0
}

// HasDelays is false for unknown employees.
func (r *Registry) HasDelays(employeeID int) bool {
	return r.DelayCount(employeeID) > 0
}

func (r *Registry) refs(ids []int) []EmployeeRef {
	out := make([]EmployeeRef, 0, len(ids))
	for _, id := range ids {
		name := "unknown"
		if e, ok := r.employees[id]; ok {
			name = e.Name
		}
		out = append(out, EmployeeRef{ID: id, Name: name})
	}
	return out
}

// EmployeesOnProject lists who currently holds a task in the project.
func (r *Registry) EmployeesOnProject(projectID int) ([]EmployeeRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.project(projectID)
	if err != nil {
		return nil, err
	}
	return r.refs(p.Current()), nil
}

// ProjectHistory lists everyone ever assigned to the project, in order.
func (r *Registry) ProjectHistory(projectID int) ([]EmployeeRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.project(projectID)
	if err != nil {
		return nil, err
	}
	return r.refs(p.History()), nil
}

// DelayOrdering lists every employee by (delay count, id).
func (r *Registry) DelayOrdering() []EmployeeRef {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refs(r.byDelay.ids())
}

// FreeQueue returns the raw FIFO queue, stale entries included.
func (r *Registry) FreeQueue() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.free.snapshot()
}

func (r *Registry) titles(projectID int, keep func(*models.Task) bool) ([]string, error) {
	p, err := r.project(projectID)
	if err != nil {
		return nil, err
	}
	out := []string{}
	for _, t := range p.Tasks() {
		if keep(t) {
			out = append(out, t.Title)
		}
	}
	return out, nil
}

// ProjectTasks lists every task title in insertion order.
func (r *Registry) ProjectTasks(projectID int) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.titles(projectID, func(*models.Task) bool { return true })
}

// UnfinishedTasks lists the titles of tasks without an actual date.
func (r *Registry) UnfinishedTasks(projectID int) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.titles(projectID, func(t *models.Task) bool { return !t.Finished() })
}

// UnassignedTasks lists tasks with no responsible. Finished projects are
// rejected.
func (r *Registry) UnassignedTasks(projectID int) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.openProject(projectID); err != nil {
		return nil, err
	}
	return r.titles(projectID, func(t *models.Task) bool { return !t.Assigned() })
}

// TaskResponsible returns the responsible id, if any.
func (r *Registry) TaskResponsible(projectID int, title string) (int, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.project(projectID)
	if err != nil {
		return 0, false, err
	}
	t, err := r.task(p, title)
	if err != nil {
		return 0, false, err
	}
	if t.Responsible == nil {
		return 0, false, nil
	}
	return *t.Responsible, true, nil
}

func (r *Registry) ProjectAddress(projectID int) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.project(projectID)
	if err != nil {
		return "", err
	}
	return p.Address, nil
}

// ProjectSummary renders the project header and one line per task.
func (r *Registry) ProjectSummary(projectID int) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.project(projectID)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Project %d - %s\n", p.ID, p.Client)
	fmt.Fprintf(&b, "Address: %s\n", p.Address)
	fmt.Fprintf(&b, "Start: %s - Planned: %s - Actual: %s\n",
		models.FormatDate(p.StartDate), models.FormatDate(p.PlannedDate), models.FormatDatePtr(p.ActualDate))
	b.WriteString("Tasks:\n")
	for _, t := range p.Tasks() {
		resp := "none"
		if t.Responsible != nil {
			resp = fmt.Sprint(*t.Responsible)
		}
		fmt.Fprintf(&b, " - %s [resp: %s] [days: %g] [planned: %s] [finished: %s]\n",
			t.Title, resp, t.Days, models.FormatDate(t.PlannedDate), models.FormatDatePtr(t.ActualDate))
	}
	return b.String(), nil
}

// DebugState dumps a project's tasks followed by every employee's counters.
func (r *Registry) DebugState(projectID int) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[projectID]
	if !ok {
		return fmt.Sprintf("project %d does not exist", projectID)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Project %d - address: %s\n", p.ID, p.Address)
	for _, t := range p.Tasks() {
		resp := "none"
		if t.Responsible != nil {
			resp = fmt.Sprint(*t.Responsible)
		}
		fmt.Fprintf(&b, "Task: %s resp: %s finished: %s planned: %s\n",
			t.Title, resp, models.FormatDatePtr(t.ActualDate), models.FormatDate(t.PlannedDate))
	}
	b.WriteString("Employees (id - name - delays - assigned):\n")
	for _, e := range r.sortedEmployees() {
		fmt.Fprintf(&b, "%d - %s - %d - %t\n", e.ID, e.Name, e.Delays, e.Assigned)
	}
	return b.String()
}
