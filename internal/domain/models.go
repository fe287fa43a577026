package domain

import "time"

// Workspace is the scoping container for every other Toggl resource.
type Workspace struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Project as returned by the Toggl API. ClientName is denormalized and often
// absent; client names are resolved lazily for projects that lack it.
type Project struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	ClientID   *int64  `json:"client_id,omitempty"`
	ClientName *string `json:"client_name,omitempty"`
}

// Client is only fetched for projects whose denormalized client name is missing.
type Client struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TimeEntry is immutable once fetched. A nil Stop means the entry is still
// running; such entries are filtered out before grouping and rollups.
type TimeEntry struct {
	ID          int64      `json:"id"`
	Description string     `json:"description"`
	Duration    int64      `json:"duration"`
	Start       time.Time  `json:"start"`
	Stop        *time.Time `json:"stop,omitempty"`
	ProjectID   *int64     `json:"project_id,omitempty"`
}

// Stopped reports whether the entry has a stop timestamp.
func (e TimeEntry) Stopped() bool {
	return e.Stop != nil
}

// LocalDate returns the entry's start date in local time, truncated to
// midnight. Rollups bucket entries by this date.
func (e TimeEntry) LocalDate() time.Time {
	return Midnight(e.Start.Local())
}

// Midnight truncates t to the start of its calendar day, keeping the location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StoppedEntries filters entries down to those with a stop timestamp.
func StoppedEntries(entries []TimeEntry) []TimeEntry {
	kept := make([]TimeEntry, 0, len(entries))
	for _, e := range entries {
		if e.Stopped() {
			kept = append(kept, e)
		}
	}
	return kept
}
