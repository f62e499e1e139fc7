package models

import "strings"

// HoursPerDay converts a task duration into billable hours for contracted staff.
const HoursPerDay = 8.0

// SalariedBonus is the multiplier applied to salaried pay while the employee
// keeps the delay-free flag.
const SalariedBonus = 1.02

type EmployeeKind string

const (
	KindContracted EmployeeKind = "contracted"
	KindSalaried   EmployeeKind = "salaried"
)

// Categories accepted for salaried employees, matched case-insensitively.
var Categories = []string{"EXPERTO", "INICIAL", "OTRA_CATEGORIA_PERMITIDA"}

// NormalizeCategory returns the canonical spelling of category and whether
// it is one of Categories.
func NormalizeCategory(category string) (string, bool) {
	upper := strings.ToUpper(strings.TrimSpace(category))
	for _, c := range Categories {
		if c == upper {
			return c, true
		}
	}
	return "", false
}

// Employee is either contracted (Rate is per hour) or salaried (Rate is per
// day). Kind selects the pay formula.
type Employee struct {
	ID       int
	Name     string
	Kind     EmployeeKind
	Rate     float64
	Category string // salaried only
	// DelayFree grants the salaried bonus. Nothing clears it today.
	DelayFree bool

	Delays   int
	Assigned bool
}

func NewContracted(id int, name string, hourlyRate float64) *Employee {
	return &Employee{ID: id, Name: name, Kind: KindContracted, Rate: hourlyRate}
}

func NewSalaried(id int, name string, dailyRate float64, category string) *Employee {
	return &Employee{
		ID:        id,
		Name:      name,
		Kind:      KindSalaried,
		Rate:      dailyRate,
		Category:  category,
		DelayFree: true,
	}
}

// Pay computes the amount owed for units of work: hours for contracted
// employees, days for salaried ones.
func (e *Employee) Pay(units float64) float64 {
	switch e.Kind {
	case KindSalaried:
		base := e.Rate * units
		if e.DelayFree {
			base *= SalariedBonus
		}
		return base
	default:
		return e.Rate * units
	}
}

// WorkUnits converts a task duration in days into the units Pay expects.
func (e *Employee) WorkUnits(days float64) float64 {
	if e.Kind == KindContracted {
		return days * HoursPerDay
	}
	return days
}

// TaskCost is the pay owed for a task of the given duration.
func (e *Employee) TaskCost(days float64) float64 {
	return e.Pay(e.WorkUnits(days))
}

// AddDelays accumulates whole delay days. Non-positive values are ignored.
func (e *Employee) AddDelays(days int) {
	if days > 0 {
		e.Delays += days
	}
}

func (e *Employee) HasDelays() bool { return e.Delays > 0 }

func (e *Employee) String() string {
	var b strings.Builder
	switch e.Kind {
	case KindSalaried:
		b.WriteString("Salaried")
	default:
		b.WriteString("Contracted")
	}
	b.WriteString(" - ")
	b.WriteString(itoa(e.ID))
	b.WriteString(" - ")
	b.WriteString(e.Name)
	b.WriteString(" - delays: ")
	b.WriteString(itoa(e.Delays))
	if e.Assigned {
		b.WriteString(" - assigned")
	} else {
		b.WriteString(" - free")
	}
	if e.Kind == KindSalaried {
		b.WriteString(" - cat: ")
		b.WriteString(e.Category)
	}
	return b.String()
}
