package journal

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/emilianohg/homesolution/internal/db"
	"github.com/emilianohg/homesolution/internal/models"
	"github.com/emilianohg/homesolution/internal/repository"
	"github.com/emilianohg/homesolution/internal/scheduler"
)

// memStore keeps entries in a slice.
type memStore struct {
	entries []models.JournalEntry
	fail    error
}

func (m *memStore) Append(kind string, payload []byte, today string) (*models.JournalEntry, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	e := models.JournalEntry{
		Seq:     int64(len(m.entries) + 1),
		Kind:    kind,
		Payload: append([]byte(nil), payload...),
		Today:   today,
	}
	m.entries = append(m.entries, e)
	return &e, nil
}

func (m *memStore) All() ([]models.JournalEntry, error) {
	return append([]models.JournalEntry(nil), m.entries...), nil
}

// clock is a settable test clock.
type clock struct{ t time.Time }

func newClock(t *testing.T, date string) *clock {
	t.Helper()
	d, err := models.ParseDate(date)
	if err != nil {
		t.Fatal(err)
	}
	return &clock{t: d.Add(9 * time.Hour)}
}

func (c *clock) now() time.Time { return c.t }

func (c *clock) set(t *testing.T, date string) {
	t.Helper()
	d, err := models.ParseDate(date)
	if err != nil {
		t.Fatal(err)
	}
	c.t = d.Add(9 * time.Hour)
}

func mustDo(t *testing.T, s *Session, op Op) int {
	t.Helper()
	id, err := s.Do(op)
	if err != nil {
		t.Fatalf("Do(%s): %v", op.Kind, err)
	}
	return id
}

// runScenario registers two employees and a two-task project, then works
// it to completion across two days.
func runScenario(t *testing.T, s *Session, c *clock) int {
	t.Helper()
	ana := mustDo(t, s, RegisterContracted("Ana", 100))
	beto := mustDo(t, s, RegisterSalaried("Beto", 800, "experto"))
	pid := mustDo(t, s, RegisterProject(ProjectPayload{
		Titles:       []string{"T1", "T2"},
		Descriptions: []string{"pintar", "limpiar"},
		Durations:    []float64{2, 1},
		Address:      "Calle 1",
		Clients:      []string{"Cliente"},
		Start:        "2025-01-01",
		End:          "2025-01-05",
	}))

	if got := mustDo(t, s, AssignFIFO(pid, "T1")); got != ana {
		t.Fatalf("AssignFIFO = %d, want %d", got, ana)
	}
	mustDo(t, s, RegisterDelay(pid, "T1", 1.5))

	c.set(t, "2025-01-12")
	mustDo(t, s, FinishTask(pid, "T1"))
	if got := mustDo(t, s, AssignLeastDelay(pid, "T2")); got != beto {
		t.Fatalf("AssignLeastDelay = %d, want %d", got, beto)
	}
	mustDo(t, s, FinishTask(pid, "T2"))
	return pid
}

func TestDoJournalsSuccessfulOps(t *testing.T) {
	store := &memStore{}
	c := newClock(t, "2025-01-10")
	s, err := Open(store, c.now)
	if err != nil {
		t.Fatal(err)
	}
	pid := runScenario(t, s, c)

	if len(store.entries) != 8 {
		t.Fatalf("journaled %d entries, want 8", len(store.entries))
	}
	if store.entries[0].Today != "2025-01-10" || store.entries[7].Today != "2025-01-12" {
		t.Fatalf("dates = %s .. %s", store.entries[0].Today, store.entries[7].Today)
	}

	if _, err := s.Do(AssignFIFO(pid, "T1")); !errors.Is(err, scheduler.ErrInvalidState) {
		t.Fatalf("assign on finished project: %v", err)
	}
	if len(store.entries) != 8 {
		t.Fatalf("failed op was journaled")
	}
}

func TestOpenReplaysOnRecordedDates(t *testing.T) {
	store := &memStore{}
	c := newClock(t, "2025-01-10")
	s, err := Open(store, c.now)
	if err != nil {
		t.Fatal(err)
	}
	pid := runScenario(t, s, c)
	wantCost, err := s.Registry().ProjectCost(pid)
	if err != nil {
		t.Fatal(err)
	}

	later := newClock(t, "2030-06-01")
	reopened, err := Open(store, later.now)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	reg := reopened.Registry()

	p, ok := reg.Project(pid)
	if !ok || p.ActualDate == nil {
		t.Fatalf("project %d not finished after replay", pid)
	}
	if got := models.FormatDate(*p.ActualDate); got != "2025-01-12" {
		t.Fatalf("actual date = %s, want 2025-01-12", got)
	}
	if n := reg.DelayCount(scheduler.FirstEmployeeID); n != 2 {
		t.Fatalf("DelayCount = %d, want 2", n)
	}
	gotCost, err := reg.ProjectCost(pid)
	if err != nil {
		t.Fatal(err)
	}
	if gotCost != wantCost {
		t.Fatalf("cost after replay = %v, want %v", gotCost, wantCost)
	}
	if got := models.FormatDate(reg.Today()); got != "2030-06-01" {
		t.Fatalf("clock after replay = %s, want live clock", got)
	}
}

func TestReplayStopsAtFirstFailure(t *testing.T) {
	store := &memStore{}
	c := newClock(t, "2025-01-10")
	s, err := Open(store, c.now)
	if err != nil {
		t.Fatal(err)
	}
	mustDo(t, s, RegisterContracted("Ana", 100))

	store.entries = append(store.entries,
		models.JournalEntry{Seq: 2, Kind: string(KindFinishTask), Payload: []byte(`{"project":9,"title":"X"}`), Today: "2025-01-10"},
		models.JournalEntry{Seq: 3, Kind: string(KindRegisterContracted), Payload: []byte(`{"name":"Beto","rate":1}`), Today: "2025-01-10"},
	)

	reg := scheduler.New()
	err = Replay(reg, store.entries)
	if !errors.Is(err, scheduler.ErrNotFound) {
		t.Fatalf("Replay error = %v, want not found", err)
	}
	if !strings.Contains(err.Error(), "entry 2") {
		t.Fatalf("error %q does not name the entry", err)
	}
	if n := len(reg.Employees()); n != 1 {
		t.Fatalf("%d employees after failed replay, want 1", n)
	}

	if _, err := Open(store, c.now); err == nil {
		t.Fatal("Open with a broken journal succeeded")
	}
}

func TestApplyRejectsBadInput(t *testing.T) {
	reg := scheduler.New()
	if _, err := Apply(reg, Kind("teleport"), []byte(`{}`)); err == nil {
		t.Fatal("unknown kind accepted")
	}
	if _, err := Apply(reg, KindRegisterContracted, []byte(`{"name":`)); err == nil {
		t.Fatal("truncated payload accepted")
	}
	entries := []models.JournalEntry{{Seq: 1, Kind: string(KindRegisterContracted), Payload: []byte(`{}`), Today: "ayer"}}
	if err := Replay(reg, entries); err == nil {
		t.Fatal("bad date accepted")
	}
}

func TestDoReportsStoreFailure(t *testing.T) {
	store := &memStore{}
	s, err := Open(store, nil)
	if err != nil {
		t.Fatal(err)
	}
	store.fail = errors.New("disk full")

	id, err := s.Do(RegisterContracted("Ana", 100))
	if err == nil || !strings.Contains(err.Error(), "not journaled") {
		t.Fatalf("Do error = %v", err)
	}
	if id != scheduler.FirstEmployeeID {
		t.Fatalf("id = %d, want %d", id, scheduler.FirstEmployeeID)
	}
}

func TestInMemorySession(t *testing.T) {
	s, err := Open(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Persistent() {
		t.Fatal("nil store reported as persistent")
	}
	if id := mustDo(t, s, RegisterContracted("Ana", 100)); id != scheduler.FirstEmployeeID {
		t.Fatalf("id = %d, want %d", id, scheduler.FirstEmployeeID)
	}
	if n := len(s.Registry().Employees()); n != 1 {
		t.Fatalf("%d employees, want 1", n)
	}
}

func TestSessionOverSQLite(t *testing.T) {
	database, err := db.OpenAndMigrate(filepath.Join(t.TempDir(), "journal.sqlite"))
	if err != nil {
		t.Fatalf("OpenAndMigrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	repo := repository.NewJournalRepo(database)

	c := newClock(t, "2025-01-10")
	s, err := Open(repo, c.now)
	if err != nil {
		t.Fatal(err)
	}
	pid := runScenario(t, s, c)

	reopened, err := Open(repo, c.now)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if !reopened.Registry().IsFinished(pid) {
		t.Fatalf("project %d not finished after reopening", pid)
	}
	if n, err := repo.Count(); err != nil || n != 8 {
		t.Fatalf("Count = %d, %v; want 8", n, err)
	}
}
