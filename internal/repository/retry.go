package repository

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/mattn/go-sqlite3"
)

// busy reports whether SQLite refused the statement because another
// connection holds the lock past the driver's busy timeout.
func busy(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == sqlite3.ErrBusy || se.Code == sqlite3.ErrLocked
}

// backoff retries a write a bounded number of times, doubling the wait
// between attempts up to ceiling.
type backoff struct {
	attempts int
	initial  time.Duration
	ceiling  time.Duration
}

// writeBackoff sits on top of the connection's _busy_timeout for the rare
// lock that outlasts it, e.g. the TUI and a CLI call writing at once.
var writeBackoff = backoff{attempts: 4, initial: 50 * time.Millisecond, ceiling: 500 * time.Millisecond}

// wait returns the pause before retry n (0-based): half the doubled delay
// plus a random share of the other half.
func (b backoff) wait(n int) time.Duration {
	d := b.initial << n
	if d <= 0 || d > b.ceiling {
		d = b.ceiling
	}
	half := d / 2
	if half <= 0 {
		return d
	}
	return half + rand.N(half)
}

// do runs fn until it succeeds, fails with anything but a busy error, or
// the attempts run out. The last error is returned.
func (b backoff) do(fn func() error) error {
	var err error
	for n := 0; n < b.attempts; n++ {
		if n > 0 {
			time.Sleep(b.wait(n - 1))
		}
		if err = fn(); err == nil || !busy(err) {
			return err
		}
	}
	return err
}
