package models

import (
	"slices"
	"time"
)

// ClientSeparator joins multiple client names into Project.Client.
const ClientSeparator = " | "

type Project struct {
	ID          int
	Client      string
	Address     string
	StartDate   time.Time
	PlannedDate time.Time  // zero means no plan
	ActualDate  *time.Time // set once the project is finished

	tasks   map[string]*Task
	order   []string
	current map[int]struct{}
	history []int
}

func NewProject(id int, client, address string, start, planned time.Time) *Project {
	return &Project{
		ID:          id,
		Client:      client,
		Address:     address,
		StartDate:   start,
		PlannedDate: planned,
		tasks:       make(map[string]*Task),
		current:     make(map[int]struct{}),
	}
}

func (p *Project) Finished() bool { return p.ActualDate != nil }

func (p *Project) HasPlan() bool { return !p.PlannedDate.IsZero() }

func (p *Project) Finish(date time.Time) {
	p.ActualDate = &date
}

// AddTask stores t under its title. A task with the same title is replaced
// in place, keeping its original position.
func (p *Project) AddTask(t *Task) {
	if _, ok := p.tasks[t.Title]; !ok {
		p.order = append(p.order, t.Title)
	}
	p.tasks[t.Title] = t
}

// Task returns the task with the given title, or nil.
func (p *Project) Task(title string) *Task {
	return p.tasks[title]
}

// Tasks returns the tasks in insertion order.
func (p *Project) Tasks() []*Task {
	out := make([]*Task, 0, len(p.order))
	for _, title := range p.order {
		out = append(out, p.tasks[title])
	}
	return out
}

func (p *Project) HasTasks() bool { return len(p.order) > 0 }

// AllTasksFinished reports whether every task has an actual date. A project
// without tasks reports false.
func (p *Project) AllTasksFinished() bool {
	if len(p.order) == 0 {
		return false
	}
	for _, t := range p.tasks {
		if !t.Finished() {
			return false
		}
	}
	return true
}

// AddCurrent marks an employee as working on the project. The history gets a
// new entry only when the id was not already current.
func (p *Project) AddCurrent(id int) {
	if _, ok := p.current[id]; ok {
		return
	}
	p.current[id] = struct{}{}
	p.history = append(p.history, id)
}

func (p *Project) RemoveCurrent(id int) {
	delete(p.current, id)
}

// Current returns the ids of employees working on the project, ascending.
func (p *Project) Current() []int {
	ids := make([]int, 0, len(p.current))
	for id := range p.current {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// History returns every id ever added, in assignment order.
func (p *Project) History() []int {
	return slices.Clone(p.history)
}

// Clone returns a deep copy, tasks included.
func (p *Project) Clone() *Project {
	c := NewProject(p.ID, p.Client, p.Address, p.StartDate, p.PlannedDate)
	if p.ActualDate != nil {
		d := *p.ActualDate
		c.ActualDate = &d
	}
	for _, title := range p.order {
		c.AddTask(p.tasks[title].Clone())
	}
	for id := range p.current {
		c.current[id] = struct{}{}
	}
	c.history = slices.Clone(p.history)
	return c
}
