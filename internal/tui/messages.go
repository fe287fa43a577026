package tui

import "toggldash/internal/sync"

// refreshDoneMsg signals a finished refresh cycle.
type refreshDoneMsg struct {
	outcome *sync.Outcome
	err     error
}

// refetchDoneMsg signals a finished targeted re-fetch.
type refetchDoneMsg struct {
	report sync.RefetchReport
	err    error
}

// copiedMsg signals a finished clipboard export.
type copiedMsg struct {
	err error
}

// flashClearMsg clears the transient status line.
type flashClearMsg struct{}
