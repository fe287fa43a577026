package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"toggldash/internal/domain"
)

const quotaVersion = 1

// QuotaState tracks how many API calls were spent on a given local day.
type QuotaState struct {
	Version   int    `json:"version"`
	Date      string `json:"date"` // local day, yyyy-mm-dd
	UsedCalls int    `json:"used_calls"`
}

// ReadQuota loads the quota file, normalized to today. A missing, corrupt or
// stale file yields a fresh state with zero used calls.
func ReadQuota(dir string, now time.Time) QuotaState {
	state := freshQuota(now)
	raw, err := os.ReadFile(filepath.Join(dir, quotaFileName))
	if err != nil {
		return state
	}
	var loaded QuotaState
	if err := json.Unmarshal(raw, &loaded); err != nil {
		return state
	}
	return loaded.Normalize(now)
}

// WriteQuota persists the quota state.
func WriteQuota(dir string, state QuotaState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return writeJSONFile(filepath.Join(dir, quotaFileName), data)
}

// Normalize resets the counter when the stored day is not now's local day or
// the schema version does not match.
func (s QuotaState) Normalize(now time.Time) QuotaState {
	today := domain.Midnight(now.Local()).Format(domain.DayFormat)
	if s.Version != quotaVersion || s.Date != today {
		return freshQuota(now)
	}
	if s.UsedCalls < 0 {
		s.UsedCalls = 0
	}
	return s
}

func freshQuota(now time.Time) QuotaState {
	return QuotaState{
		Version: quotaVersion,
		Date:    domain.Midnight(now.Local()).Format(domain.DayFormat),
	}
}
