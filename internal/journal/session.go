package journal

import (
	"fmt"
	"sync"
	"time"

	"github.com/emilianohg/homesolution/internal/models"
	"github.com/emilianohg/homesolution/internal/scheduler"
)

// Store persists journal entries in order.
type Store interface {
	Append(kind string, payload []byte, today string) (*models.JournalEntry, error)
	All() ([]models.JournalEntry, error)
}

// Session pairs a registry with the store that records its history. A nil
// store runs the registry purely in memory.
type Session struct {
	mu       sync.Mutex
	registry *scheduler.Registry
	store    Store
	now      func() time.Time
}

// Open builds a fresh registry and replays every stored entry into it. now
// defaults to time.Now.
func Open(store Store, now func() time.Time) (*Session, error) {
	if now == nil {
		now = time.Now
	}
	s := &Session{
		registry: scheduler.New(scheduler.WithClock(now)),
		store:    store,
		now:      now,
	}
	if store == nil {
		return s, nil
	}

	entries, err := store.All()
	if err != nil {
		return nil, fmt.Errorf("load journal: %w", err)
	}
	if err := Replay(s.registry, entries); err != nil {
		return nil, err
	}
	s.registry.SetClock(now)
	return s, nil
}

// Registry exposes the session's registry for read-only queries. Mutations
// must go through Do so they are journaled.
func (s *Session) Registry() *scheduler.Registry {
	return s.registry
}

// Persistent reports whether operations are written to a store.
func (s *Session) Persistent() bool {
	return s.store != nil
}

// Do applies op and, when it succeeds, appends it to the journal together
// with the date it ran on. A failed operation is not recorded.
func (s *Session) Do(op Op) (int, error) {
	payload, err := op.Encode()
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	today := models.DateOf(s.now())
	s.registry.SetClock(fixed(today))
	id, err := Apply(s.registry, op.Kind, payload)
	s.registry.SetClock(s.now)
	if err != nil {
		return 0, err
	}

	if s.store != nil {
		if _, err := s.store.Append(string(op.Kind), payload, models.FormatDate(today)); err != nil {
			return id, fmt.Errorf("%s applied but not journaled: %w", op.Kind, err)
		}
	}
	return id, nil
}

// Replay applies entries to reg in order, each with the clock pinned to the
// date it was recorded on. It stops at the first entry that fails.
func Replay(reg *scheduler.Registry, entries []models.JournalEntry) error {
	for _, e := range entries {
		today, err := models.ParseDate(e.Today)
		if err != nil {
			return fmt.Errorf("replay entry %d: bad date %q: %w", e.Seq, e.Today, err)
		}
		reg.SetClock(fixed(today))
		if _, err := Apply(reg, Kind(e.Kind), e.Payload); err != nil {
			return fmt.Errorf("replay entry %d (%s): %w", e.Seq, e.Kind, err)
		}
	}
	return nil
}

func fixed(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
