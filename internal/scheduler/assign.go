package scheduler

import (
	"time"

	"github.com/emilianohg/homesolution/internal/models"
)

// unassignedTask resolves an open project and a task that has no
// responsible employee yet.
func (r *Registry) unassignedTask(projectID int, title string) (*models.Project, *models.Task, error) {
	p, err := r.openProject(projectID)
	if err != nil {
		return nil, nil, err
	}
	t, err := r.task(p, title)
	if err != nil {
		return nil, nil, err
	}
	if t.Assigned() {
		return nil, nil, invalidState("task %q already assigned to %d", title, *t.Responsible)
	}
	return p, t, nil
}

// AssignFIFO gives the task to the employee that has waited longest in the
// free queue and returns its id. Stale queue entries are dropped on the way.
func (r *Registry) AssignFIFO(projectID int, title string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, t, err := r.unassignedTask(projectID, title)
	if err != nil {
		return 0, err
	}

	var chosen *models.Employee
	for chosen == nil {
		id, ok := r.free.pop()
		if !ok {
			return 0, ErrResourceExhausted
		}
		if e, ok := r.employees[id]; ok && !e.Assigned {
			chosen = e
		}
	}

	t.SetResponsible(chosen.ID)
	r.markAssigned(p, chosen)
	return chosen.ID, nil
}

// AssignLeastDelay gives the task to the free employee with the fewest
// delays, lowest id first on ties, and returns its id.
func (r *Registry) AssignLeastDelay(projectID int, title string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, t, err := r.unassignedTask(projectID, title)
	if err != nil {
		return 0, err
	}
	chosen := r.leastDelayed()
	if chosen == nil {
		return 0, ErrResourceExhausted
	}

	r.markAssigned(p, chosen)
	t.SetResponsible(chosen.ID)
	return chosen.ID, nil
}

// leastDelayed walks the delay index and returns the first free employee,
// or nil.
func (r *Registry) leastDelayed() *models.Employee {
	for _, k := range r.byDelay.keys {
		if e := r.employees[k.id]; e != nil && !e.Assigned {
			return e
		}
	}
	return nil
}

// RegisterDelay records days of delay on an assigned task. The amount is
// rounded up to whole days, added to the task's date (actual if finished,
// planned otherwise) and to the responsible employee's delay count. A zero,
// negative or non-finite amount is rejected rather than ignored.
func (r *Registry) RegisterDelay(projectID int, title string, days float64) error {
	if !validDays(days) {
		return invalidArg("delay must be a finite positive number of days, got %v", days)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.openProject(projectID)
	if err != nil {
		return err
	}
	t, err := r.task(p, title)
	if err != nil {
		return err
	}
	if !t.Assigned() {
		return invalidState("task %q has no responsible employee", title)
	}

	whole := models.WholeDays(days)
	t.AddDelay(whole)
	if e, ok := r.employees[*t.Responsible]; ok {
		r.update(e, func(e *models.Employee) { e.AddDelays(whole) })
	}
	return nil
}

// FinishTask dates the task with today's date and frees its employee. When
// it was the last open task the project is completed with today's date too,
// unless today still precedes the project's planned date. In that case the
// project stays open and FinishTask still returns nil; it does not report
// the refused completion as an error.
func (r *Registry) FinishTask(projectID int, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.openProject(projectID)
	if err != nil {
		return err
	}
	t, err := r.task(p, title)
	if err != nil {
		return err
	}
	if t.Finished() {
		return invalidState("task %q already finished", title)
	}

	today := r.today()
	t.Finish(today)
	if t.Responsible != nil {
		r.release(p, *t.Responsible)
	}

	if p.AllTasksFinished() && !(p.HasPlan() && today.Before(p.PlannedDate)) {
		r.finishProject(p, today)
	}
	return nil
}

// FinishProject completes the project on end and frees everyone still
// working on it. end may not precede the planned date.
func (r *Registry) FinishProject(projectID int, end string) error {
	endDate, err := models.ParseDate(end)
	if err != nil {
		return badDate("end date", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.openProject(projectID)
	if err != nil {
		return err
	}
	if p.HasPlan() && endDate.Before(p.PlannedDate) {
		return invalidArg("end date %s precedes planned date %s", end, models.FormatDate(p.PlannedDate))
	}
	r.finishProject(p, endDate)
	return nil
}

func (r *Registry) finishProject(p *models.Project, end time.Time) {
	p.Finish(end)
	for _, id := range p.Current() {
		r.release(p, id)
	}
}

// Reassign hands an assigned, unfinished task over to employeeID, freeing
// the previous responsible.
func (r *Registry) Reassign(projectID, employeeID int, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reassign(projectID, employeeID, title)
}

// ReassignLeastDelay hands the task over to the free employee with the
// fewest delays and returns its id.
func (r *Registry) ReassignLeastDelay(projectID int, title string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, _, err := r.assignedTask(projectID, title); err != nil {
		return 0, err
	}
	chosen := r.leastDelayed()
	if chosen == nil {
		return 0, ErrResourceExhausted
	}
	if err := r.reassign(projectID, chosen.ID, title); err != nil {
		return 0, err
	}
	return chosen.ID, nil
}

func (r *Registry) assignedTask(projectID int, title string) (*models.Project, *models.Task, error) {
	p, err := r.openProject(projectID)
	if err != nil {
		return nil, nil, err
	}
	t, err := r.task(p, title)
	if err != nil {
		return nil, nil, err
	}
	if !t.Assigned() {
		return nil, nil, invalidState("task %q has no responsible employee", title)
	}
	if t.Finished() {
		return nil, nil, invalidState("task %q already finished", title)
	}
	return p, t, nil
}

func (r *Registry) reassign(projectID, employeeID int, title string) error {
	p, t, err := r.assignedTask(projectID, title)
	if err != nil {
		return err
	}
	next, ok := r.employees[employeeID]
	if !ok {
		return notFound("employee %d", employeeID)
	}
	if next.Assigned {
		return invalidState("employee %d is already assigned", employeeID)
	}

	r.release(p, *t.Responsible)
	t.SetResponsible(next.ID)
	r.markAssigned(p, next)
	return nil
}
