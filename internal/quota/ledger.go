// Package quota meters API calls against a self-imposed daily budget so a
// runaway refresh loop cannot burn through the provider's rate limits.
package quota

import (
	"time"

	"toggldash/internal/store"
)

// CallLimit is the number of API calls allowed per local day.
const CallLimit = 30

// Ledger tracks the daily call budget and persists every consumption
// immediately, so a crash never forgets spent calls.
type Ledger struct {
	dir   string
	state store.QuotaState
	now   func() time.Time
}

// NewLedger loads the persisted quota for dir, rolled over to today. A nil
// clock uses time.Now.
func NewLedger(dir string, clock func() time.Time) *Ledger {
	if clock == nil {
		clock = time.Now
	}
	l := &Ledger{dir: dir, now: clock}
	l.state = store.ReadQuota(dir, l.now())
	return l
}

// Remaining returns how many calls are left today.
func (l *Ledger) Remaining() int {
	l.rollover()
	remaining := CallLimit - l.state.UsedCalls
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Allow reports whether at least one call is available.
func (l *Ledger) Allow() bool {
	return l.Remaining() > 0
}

// Consume spends one call and persists the new count. Saturates at the
// limit; callers check Allow first, but a race with midnight rollover must
// not push the counter past the budget.
func (l *Ledger) Consume() {
	l.rollover()
	if l.state.UsedCalls < CallLimit {
		l.state.UsedCalls++
	}
	store.WriteQuota(l.dir, l.state)
}

// Used returns today's spent call count.
func (l *Ledger) Used() int {
	l.rollover()
	return l.state.UsedCalls
}

func (l *Ledger) rollover() {
	l.state = l.state.Normalize(l.now())
}
