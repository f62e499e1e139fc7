package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/emilianohg/homesolution/internal/models"
)

type JournalRepo struct {
	db *sql.DB
}

func NewJournalRepo(db *sql.DB) *JournalRepo {
	return &JournalRepo{db: db}
}

// Append stores an entry and returns it with Seq, UUID and CreatedAt filled
// in.
func (r *JournalRepo) Append(kind string, payload []byte, today string) (*models.JournalEntry, error) {
	e := &models.JournalEntry{
		UUID:      uuid.NewString(),
		Kind:      kind,
		Payload:   payload,
		Today:     today,
		CreatedAt: time.Now().UTC(),
	}

	err := writeBackoff.do(func() error {
		result, err := r.db.Exec(`
			INSERT INTO journal_entries (uuid, kind, payload, today, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, e.UUID, e.Kind, string(e.Payload), e.Today, e.CreatedAt)
		if err != nil {
			return err
		}
		e.Seq, err = result.LastInsertId()
		return err
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// All returns every entry in Seq order.
func (r *JournalRepo) All() ([]models.JournalEntry, error) {
	rows, err := r.db.Query(`
		SELECT seq, uuid, kind, payload, today, created_at
		FROM journal_entries
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.JournalEntry
	for rows.Next() {
		var e models.JournalEntry
		var payload string
		if err := rows.Scan(&e.Seq, &e.UUID, &e.Kind, &payload, &e.Today, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Payload = []byte(payload)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *JournalRepo) Count() (int, error) {
	var n int
	err := r.db.QueryRow("SELECT COUNT(*) FROM journal_entries").Scan(&n)
	return n, err
}

// Clear deletes every entry.
func (r *JournalRepo) Clear() error {
	return writeBackoff.do(func() error {
		_, err := r.db.Exec("DELETE FROM journal_entries")
		return err
	})
}
