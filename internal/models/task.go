package models

import "time"

type Task struct {
	ID          int
	Title       string
	Description string
	Days        float64

	// Responsible is nil until the task is assigned. Reassignment overwrites it.
	Responsible *int

	PlannedDate time.Time
	ActualDate  *time.Time // set once the task is finished
}

func NewTask(id int, title, description string, days float64, planned time.Time) *Task {
	return &Task{
		ID:          id,
		Title:       title,
		Description: description,
		Days:        days,
		PlannedDate: planned,
	}
}

func (t *Task) Finished() bool { return t.ActualDate != nil }

func (t *Task) Assigned() bool { return t.Responsible != nil }

func (t *Task) SetResponsible(id int) {
	t.Responsible = &id
}

func (t *Task) Finish(date time.Time) {
	t.ActualDate = &date
}

// AddDelay pushes the actual date of a finished task, or the planned date of
// an open one.
func (t *Task) AddDelay(days int) {
	if t.ActualDate != nil {
		d := AddDays(*t.ActualDate, days)
		t.ActualDate = &d
		return
	}
	t.PlannedDate = AddDays(t.PlannedDate, days)
}

// Clone returns a deep copy.
func (t *Task) Clone() *Task {
	c := *t
	if t.Responsible != nil {
		id := *t.Responsible
		c.Responsible = &id
	}
	if t.ActualDate != nil {
		d := *t.ActualDate
		c.ActualDate = &d
	}
	return &c
}
