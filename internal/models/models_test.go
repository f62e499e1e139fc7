package models

import (
	"math"
	"slices"
	"testing"
	"time"
)

func TestEmployeePay(t *testing.T) {
	tests := []struct {
		name string
		e    *Employee
		days float64
		want float64
	}{
		{"contracted bills 8h per day", NewContracted(100, "Ana", 1000), 1, 8000},
		{"contracted fractional day", NewContracted(100, "Ana", 10), 1.5, 120},
		{"salaried with bonus", NewSalaried(101, "Beto", 1000, "EXPERTO"), 2, 2040},
		{"salaried without bonus", &Employee{Kind: KindSalaried, Rate: 1000}, 2, 2000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.TaskCost(tt.days); math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("TaskCost(%v) = %v, want %v", tt.days, got, tt.want)
			}
		})
	}
}

func TestEmployeeAddDelays(t *testing.T) {
	e := NewContracted(100, "Ana", 1)
	e.AddDelays(3)
	e.AddDelays(0)
	e.AddDelays(-2)
	if e.Delays != 3 || !e.HasDelays() {
		t.Fatalf("delays = %d, want 3", e.Delays)
	}
}

func TestNormalizeCategory(t *testing.T) {
	for _, in := range []string{"experto", "Inicial", " OTRA_CATEGORIA_PERMITIDA "} {
		if _, ok := NormalizeCategory(in); !ok {
			t.Errorf("NormalizeCategory(%q) rejected", in)
		}
	}
	if got, _ := NormalizeCategory("experto"); got != "EXPERTO" {
		t.Errorf("canonical = %q", got)
	}
	if _, ok := NormalizeCategory("junior"); ok {
		t.Error("junior accepted")
	}
}

func TestTaskAddDelay(t *testing.T) {
	planned, _ := ParseDate("2025-01-03")
	task := NewTask(1, "T1", "", 2, planned)
	task.AddDelay(3)
	if got := FormatDate(task.PlannedDate); got != "2025-01-06" {
		t.Fatalf("planned = %s", got)
	}
	done, _ := ParseDate("2025-01-04")
	task.Finish(done)
	task.AddDelay(2)
	if got := FormatDatePtr(task.ActualDate); got != "2025-01-06" {
		t.Fatalf("actual = %s", got)
	}
	if got := FormatDate(task.PlannedDate); got != "2025-01-06" {
		t.Fatalf("planned changed after finish: %s", got)
	}
}

func TestProjectHistory(t *testing.T) {
	p := NewProject(1, "C", "A", DateOf(mustDate(t, "2025-01-01")), DateOf(mustDate(t, "2025-01-10")))
	p.AddCurrent(100)
	p.AddCurrent(100)
	p.AddCurrent(101)
	p.RemoveCurrent(100)
	p.AddCurrent(100)

	if got := p.History(); !slices.Equal(got, []int{100, 101, 100}) {
		t.Fatalf("history = %v", got)
	}
	if got := p.Current(); !slices.Equal(got, []int{100, 101}) {
		t.Fatalf("current = %v", got)
	}
}

func TestProjectTasksKeepOrder(t *testing.T) {
	p := NewProject(1, "C", "A", mustDate(t, "2025-01-01"), mustDate(t, "2025-01-10"))
	if p.AllTasksFinished() {
		t.Fatal("empty project reports all tasks finished")
	}
	for i, title := range []string{"b", "a", "c"} {
		p.AddTask(NewTask(i+1, title, "", 1, p.StartDate))
	}
	p.AddTask(NewTask(9, "a", "replaced", 1, p.StartDate))

	var titles []string
	for _, task := range p.Tasks() {
		titles = append(titles, task.Title)
	}
	if !slices.Equal(titles, []string{"b", "a", "c"}) {
		t.Fatalf("titles = %v", titles)
	}
	if p.Task("a").ID != 9 {
		t.Fatalf("replacement not stored")
	}

	clone := p.Clone()
	clone.Task("b").Finish(p.StartDate)
	if p.Task("b").Finished() {
		t.Fatal("clone shares tasks with the original")
	}
}

func TestWholeDays(t *testing.T) {
	for in, want := range map[float64]int{1: 1, 1.01: 2, 2.5: 3, 0.2: 1} {
		if got := WholeDays(in); got != want {
			t.Errorf("WholeDays(%v) = %d, want %d", in, got, want)
		}
	}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}
