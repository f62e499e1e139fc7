package models

import "time"

// JournalEntry is one successful mutating operation, stored so a registry
// can be rebuilt by replaying entries in Seq order.
type JournalEntry struct {
	Seq       int64
	UUID      string
	Kind      string
	Payload   []byte // JSON
	Today     string // calendar date the operation ran on
	CreatedAt time.Time
}
