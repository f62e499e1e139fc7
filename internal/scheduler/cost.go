package scheduler

import "github.com/emilianohg/homesolution/internal/models"

// Schedule variance multipliers applied to a project's labor total.
const (
	InProgressFactor = 1.35
	LateFactor       = 1.25
	EarlyFactor      = 0.75
	OnTimeFactor     = 1.0
)

// ProjectCost sums the pay of every assigned task and applies the schedule
// variance multiplier.
func (r *Registry) ProjectCost(projectID int) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.project(projectID)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, t := range p.Tasks() {
		if t.Responsible == nil {
			continue
		}
		e, ok := r.employees[*t.Responsible]
		if !ok {
			continue
		}
		sum += e.TaskCost(t.Days)
	}
	return sum * scheduleFactor(p), nil
}

// scheduleFactor compares the project's actual date with its plan.
func scheduleFactor(p *models.Project) float64 {
	if !p.HasPlan() {
		return OnTimeFactor
	}
	if !p.Finished() {
		return InProgressFactor
	}
	switch actual := *p.ActualDate; {
	case actual.After(p.PlannedDate):
		return LateFactor
	case actual.Before(p.PlannedDate):
		return EarlyFactor
	default:
		return OnTimeFactor
	}
}
