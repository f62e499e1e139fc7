// Package scheduler is the in-memory registry of employees and projects.
//
// It owns the assignment policies (FIFO over a free queue, least-delay over
// an index sorted by delay count and id), delay propagation into tasks and
// employees, and project cost computation. Every mutation updates both
// auxiliary indexes before returning.
//
// A Registry is safe for concurrent use; each call holds one lock for its
// whole duration because the indexes span several entities.
package scheduler

import (
	"math"
	"strings"
	"sync"
	"time"

	"github.com/emilianohg/homesolution/internal/models"
)

// FirstEmployeeID is the id given to the first registered employee.
const FirstEmployeeID = 100

type Registry struct {
	mu sync.Mutex

	employees map[int]*models.Employee
	projects  map[int]*models.Project
	free      freeQueue
	byDelay   delayIndex

	nextEmployeeID int
	nextProjectID  int
	nextTaskID     int

	now func() time.Time
}

type Option func(*Registry)

// WithClock replaces the wall clock used to date finished tasks.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

func New(opts ...Option) *Registry {
	r := &Registry{
		employees:      make(map[int]*models.Employee),
		projects:       make(map[int]*models.Project),
		nextEmployeeID: FirstEmployeeID,
		nextProjectID:  1,
		nextTaskID:     1,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetClock swaps the clock after construction. Journal replay uses it to
// run each operation on the date it originally ran.
func (r *Registry) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

// Today returns the registry clock's current calendar date.
func (r *Registry) Today() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.today()
}

func (r *Registry) today() time.Time {
	return models.DateOf(r.now())
}

// ---------------------------------------------------------------------------
// Employees
// ---------------------------------------------------------------------------

// RegisterContracted adds an hourly-paid employee and returns its id.
func (r *Registry) RegisterContracted(name string, hourlyRate float64) (int, error) {
	if strings.TrimSpace(name) == "" {
		return 0, invalidArg("employee name is empty")
	}
	if !validRate(hourlyRate) {
		return 0, invalidArg("rate must be finite and not negative, got %v", hourlyRate)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	e := models.NewContracted(r.nextEmployeeID, name, hourlyRate)
	r.addEmployee(e)
	return e.ID, nil
}

// RegisterSalaried adds a daily-paid employee and returns its id. category
// must be one of models.Categories, in any case.
func (r *Registry) RegisterSalaried(name string, dailyRate float64, category string) (int, error) {
	cat, ok := models.NormalizeCategory(category)
	if !ok {
		return 0, invalidArg("unknown category %q", category)
	}
	if strings.TrimSpace(name) == "" {
		return 0, invalidArg("employee name is empty")
	}
	if !validRate(dailyRate) {
		return 0, invalidArg("rate must be finite and not negative, got %v", dailyRate)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	e := models.NewSalaried(r.nextEmployeeID, name, dailyRate, cat)
	r.addEmployee(e)
	return e.ID, nil
}

func (r *Registry) addEmployee(e *models.Employee) {
	r.nextEmployeeID++
	r.employees[e.ID] = e
	r.free.push(e.ID)
	r.byDelay.insert(keyOf(e))
}

func keyOf(e *models.Employee) delayKey {
	return delayKey{delays: e.Delays, id: e.ID}
}

// update applies mutate to e and re-files it in the delay index.
func (r *Registry) update(e *models.Employee, mutate func(*models.Employee)) {
	r.byDelay.remove(keyOf(e))
	mutate(e)
	r.byDelay.insert(keyOf(e))
}

// markAssigned takes e out of the free pool and puts it on p.
func (r *Registry) markAssigned(p *models.Project, e *models.Employee) {
	r.update(e, func(e *models.Employee) { e.Assigned = true })
	r.free.remove(e.ID)
	p.AddCurrent(e.ID)
}

// release returns the employee with id to the free pool and takes it off p.
// Unknown ids are only removed from p.
func (r *Registry) release(p *models.Project, id int) {
	if e, ok := r.employees[id]; ok {
		r.update(e, func(e *models.Employee) { e.Assigned = false })
		r.free.push(id)
	}
	p.RemoveCurrent(id)
}

// ---------------------------------------------------------------------------
// Projects
// ---------------------------------------------------------------------------

// RegisterProject creates a project with one task per (title, description,
// duration) triple and returns its id. Validation covers every triple
// before anything is stored, so a failure leaves the registry untouched.
func (r *Registry) RegisterProject(titles, descriptions []string, durations []float64,
	address string, clients []string, start, end string) (int, error) {
	if titles == nil || descriptions == nil || durations == nil {
		return 0, invalidArg("task arrays are required")
	}
	if len(titles) != len(descriptions) || len(titles) != len(durations) {
		return 0, invalidArg("task arrays differ in length: %d titles, %d descriptions, %d durations",
			len(titles), len(descriptions), len(durations))
	}
	if strings.TrimSpace(address) == "" {
		return 0, invalidArg("address is empty")
	}
	if len(clients) == 0 {
		return 0, invalidArg("at least one client is required")
	}
	startDate, err := models.ParseDate(start)
	if err != nil {
		return 0, badDate("start date", err)
	}
	endDate, err := models.ParseDate(end)
	if err != nil {
		return 0, badDate("end date", err)
	}
	if endDate.Before(startDate) {
		return 0, invalidArg("end date %s precedes start date %s", end, start)
	}
	for i := range titles {
		if err := validateTask(titles[i], durations[i]); err != nil {
			return 0, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	p := models.NewProject(r.nextProjectID, strings.Join(clients, models.ClientSeparator), address, startDate, endDate)
	r.nextProjectID++
	for i := range titles {
		planned := models.AddDays(startDate, models.WholeDays(durations[i]))
		p.AddTask(models.NewTask(r.nextTaskID, titles[i], descriptions[i], durations[i], planned))
		r.nextTaskID++
	}
	r.projects[p.ID] = p
	return p.ID, nil
}

func validateTask(title string, days float64) error {
	if strings.TrimSpace(title) == "" {
		return invalidArg("task title is empty")
	}
	if !validDays(days) {
		return invalidArg("task %q needs a finite positive duration, got %v", title, days)
	}
	return nil
}

// validRate accepts finite rates of zero or more.
func validRate(rate float64) bool {
	return rate >= 0 && !math.IsInf(rate, 1)
}

// validDays accepts finite positive day counts. NaN fails the comparison.
func validDays(days float64) bool {
	return days > 0 && !math.IsInf(days, 1)
}

// AddTask appends a task to an open project. Its planned date counts from
// the project's planned date.
func (r *Registry) AddTask(projectID int, title, description string, days float64) error {
	if err := validateTask(title, days); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	p, err := r.openProject(projectID)
	if err != nil {
		return err
	}
	if p.Task(title) != nil {
		return invalidState("project %d already has task %q", projectID, title)
	}
	planned := models.AddDays(p.PlannedDate, models.WholeDays(days))
	p.AddTask(models.NewTask(r.nextTaskID, title, description, days, planned))
	r.nextTaskID++
	return nil
}

func (r *Registry) project(id int) (*models.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, notFound("project %d", id)
	}
	return p, nil
}

// openProject is project plus the check that it is not finished.
func (r *Registry) openProject(id int) (*models.Project, error) {
	p, err := r.project(id)
	if err != nil {
		return nil, err
	}
	if p.Finished() {
		return nil, invalidState("project %d is finished", id)
	}
	return p, nil
}

func (r *Registry) task(p *models.Project, title string) (*models.Task, error) {
	t := p.Task(title)
	if t == nil {
		return nil, notFound("task %q in project %d", title, p.ID)
	}
	return t, nil
}
