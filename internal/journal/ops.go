// Package journal records registry operations so a registry can be rebuilt
// after a restart. The registry itself keeps no state on disk: every
// successful mutating call is stored as a JSON payload and replayed in
// order into a fresh registry.
package journal

import (
	"encoding/json"
	"fmt"

	"github.com/emilianohg/homesolution/internal/scheduler"
)

type Kind string

const (
	KindRegisterContracted Kind = "register_contracted"
	KindRegisterSalaried   Kind = "register_salaried"
	KindRegisterProject    Kind = "register_project"
	KindAddTask            Kind = "add_task"
	KindAssignFIFO         Kind = "assign_fifo"
	KindAssignLeastDelay   Kind = "assign_least_delay"
	KindRegisterDelay      Kind = "register_delay"
	KindFinishTask         Kind = "finish_task"
	KindFinishProject      Kind = "finish_project"
	KindReassign           Kind = "reassign"
	KindReassignLeastDelay Kind = "reassign_least_delay"
)

type ContractedPayload struct {
	Name string  `json:"name"`
	Rate float64 `json:"rate"`
}

type SalariedPayload struct {
	Name     string  `json:"name"`
	Rate     float64 `json:"rate"`
	Category string  `json:"category"`
}

type ProjectPayload struct {
	Titles       []string  `json:"titles"`
	Descriptions []string  `json:"descriptions"`
	Durations    []float64 `json:"durations"`
	Address      string    `json:"address"`
	Clients      []string  `json:"clients"`
	Start        string    `json:"start"`
	End          string    `json:"end"`
}

type TaskPayload struct {
	Project     int     `json:"project"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Days        float64 `json:"days"`
}

// TaskRef addresses a task; used by assignment, completion and
// least-delay reassignment.
type TaskRef struct {
	Project int    `json:"project"`
	Title   string `json:"title"`
}

type DelayPayload struct {
	Project int     `json:"project"`
	Title   string  `json:"title"`
	Days    float64 `json:"days"`
}

type FinishProjectPayload struct {
	Project int    `json:"project"`
	End     string `json:"end"`
}

type ReassignPayload struct {
	Project  int    `json:"project"`
	Employee int    `json:"employee"`
	Title    string `json:"title"`
}

// Op is one mutating registry call waiting to be applied.
type Op struct {
	Kind    Kind
	Payload any
}

func RegisterContracted(name string, rate float64) Op {
	return Op{KindRegisterContracted, ContractedPayload{Name: name, Rate: rate}}
}

func RegisterSalaried(name string, rate float64, category string) Op {
	return Op{KindRegisterSalaried, SalariedPayload{Name: name, Rate: rate, Category: category}}
}

func RegisterProject(p ProjectPayload) Op {
	return Op{KindRegisterProject, p}
}

func AddTask(project int, title, description string, days float64) Op {
	return Op{KindAddTask, TaskPayload{Project: project, Title: title, Description: description, Days: days}}
}

func AssignFIFO(project int, title string) Op {
	return Op{KindAssignFIFO, TaskRef{Project: project, Title: title}}
}

func AssignLeastDelay(project int, title string) Op {
	return Op{KindAssignLeastDelay, TaskRef{Project: project, Title: title}}
}

// Assign picks the assignment op for the chosen policy.
func Assign(leastDelay bool, project int, title string) Op {
	if leastDelay {
		return AssignLeastDelay(project, title)
	}
	return AssignFIFO(project, title)
}

func RegisterDelay(project int, title string, days float64) Op {
	return Op{KindRegisterDelay, DelayPayload{Project: project, Title: title, Days: days}}
}

func FinishTask(project int, title string) Op {
	return Op{KindFinishTask, TaskRef{Project: project, Title: title}}
}

func FinishProject(project int, end string) Op {
	return Op{KindFinishProject, FinishProjectPayload{Project: project, End: end}}
}

func Reassign(project, employee int, title string) Op {
	return Op{KindReassign, ReassignPayload{Project: project, Employee: employee, Title: title}}
}

func ReassignLeastDelay(project int, title string) Op {
	return Op{KindReassignLeastDelay, TaskRef{Project: project, Title: title}}
}

// Encode marshals the payload for storage.
func (op Op) Encode() ([]byte, error) {
	data, err := json.Marshal(op.Payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", op.Kind, err)
	}
	return data, nil
}

// Apply decodes payload according to kind and runs it against reg. The
// returned id is the employee or project the operation created or picked,
// 0 when there is none.
func Apply(reg *scheduler.Registry, kind Kind, payload []byte) (int, error) {
	switch kind {
	case KindRegisterContracted:
		var p ContractedPayload
		if err := decode(kind, payload, &p); err != nil {
			return 0, err
		}
		return reg.RegisterContracted(p.Name, p.Rate)

	case KindRegisterSalaried:
		var p SalariedPayload
		if err := decode(kind, payload, &p); err != nil {
			return 0, err
		}
		return reg.RegisterSalaried(p.Name, p.Rate, p.Category)

	case KindRegisterProject:
		var p ProjectPayload
		if err := decode(kind, payload, &p); err != nil {
			return 0, err
		}
		return reg.RegisterProject(p.Titles, p.Descriptions, p.Durations, p.Address, p.Clients, p.Start, p.End)

	case KindAddTask:
		var p TaskPayload
		if err := decode(kind, payload, &p); err != nil {
			return 0, err
		}
		return 0, reg.AddTask(p.Project, p.Title, p.Description, p.Days)

	case KindAssignFIFO:
		var p TaskRef
		if err := decode(kind, payload, &p); err != nil {
			return 0, err
		}
		return reg.AssignFIFO(p.Project, p.Title)

	case KindAssignLeastDelay:
		var p TaskRef
		if err := decode(kind, payload, &p); err != nil {
			return 0, err
		}
		return reg.AssignLeastDelay(p.Project, p.Title)

	case KindRegisterDelay:
		var p DelayPayload
		if err := decode(kind, payload, &p); err != nil {
			return 0, err
		}
		return 0, reg.RegisterDelay(p.Project, p.Title, p.Days)

	case KindFinishTask:
		var p TaskRef
		if err := decode(kind, payload, &p); err != nil {
			return 0, err
		}
		return 0, reg.FinishTask(p.Project, p.Title)

	case KindFinishProject:
		var p FinishProjectPayload
		if err := decode(kind, payload, &p); err != nil {
			return 0, err
		}
		return 0, reg.FinishProject(p.Project, p.End)

	case KindReassign:
		var p ReassignPayload
		if err := decode(kind, payload, &p); err != nil {
			return 0, err
		}
		return p.Employee, reg.Reassign(p.Project, p.Employee, p.Title)

	case KindReassignLeastDelay:
		var p TaskRef
		if err := decode(kind, payload, &p); err != nil {
			return 0, err
		}
		return reg.ReassignLeastDelay(p.Project, p.Title)
	}
	return 0, fmt.Errorf("unknown journal kind %q", kind)
}

func decode(kind Kind, payload []byte, v any) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("decode %s payload: %w", kind, err)
	}
	return nil
}
