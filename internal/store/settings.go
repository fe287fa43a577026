package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"toggldash/internal/rollup"
	"toggldash/internal/rounding"
)

// Settings are the user-tunable options persisted between runs.
type Settings struct {
	TargetHours     float64          `json:"target_hours"`
	Rounding        *rounding.Config `json:"rounding,omitempty"`
	Rollups         RollupSettings   `json:"rollups"`
	NonWorkingDays  []string         `json:"non_working_days,omitempty"` // yyyy-mm-dd, sorted
	WorkspaceID     int64            `json:"workspace_id,omitempty"`
	IncludeWeekends bool             `json:"include_weekends"`
}

// RollupSettings configures the aggregation views.
type RollupSettings struct {
	WeekStart rollup.WeekStart `json:"week_start"`
}

// DefaultSettings returns the out-of-the-box configuration: an eight hour
// daily target, weekends counted, weeks starting Monday, no rounding.
func DefaultSettings() Settings {
	return Settings{
		TargetHours:     8,
		IncludeWeekends: true,
		Rollups:         RollupSettings{WeekStart: rollup.WeekStartMonday},
	}
}

// ReadSettings loads settings from dir, falling back to defaults when the
// file is missing or unreadable. Loaded values are normalized so downstream
// code never sees an invalid rounding mode or unsorted day list.
func ReadSettings(dir string) Settings {
	settings := DefaultSettings()
	raw, err := os.ReadFile(filepath.Join(dir, settingsFileName))
	if err != nil {
		return settings
	}
	if err := json.Unmarshal(raw, &settings); err != nil {
		return DefaultSettings()
	}
	return settings.normalize()
}

// WriteSettings persists settings to dir.
func WriteSettings(dir string, settings Settings) error {
	data, err := json.MarshalIndent(settings.normalize(), "", "  ")
	if err != nil {
		return err
	}
	return writeJSONFile(filepath.Join(dir, settingsFileName), data)
}

// NonWorkingSet returns the non-working days as a lookup set.
func (s Settings) NonWorkingSet() map[string]bool {
	set := make(map[string]bool, len(s.NonWorkingDays))
	for _, day := range s.NonWorkingDays {
		set[day] = true
	}
	return set
}

// TargetConfig derives the rollup target configuration from the settings.
func (s Settings) TargetConfig() rollup.TargetConfig {
	return rollup.TargetConfig{
		HoursPerDay:     s.TargetHours,
		IncludeWeekends: s.IncludeWeekends,
		NonWorkingDays:  s.NonWorkingSet(),
	}
}

func (s Settings) normalize() Settings {
	if s.TargetHours <= 0 {
		s.TargetHours = DefaultSettings().TargetHours
	}
	if s.Rounding != nil {
		if !rounding.ValidModes[string(s.Rounding.Mode)] {
			s.Rounding.Mode = rounding.ModeClosest
		}
		if s.Rounding.IncrementMinutes <= 0 {
			s.Rounding = nil
		}
	}
	if s.Rollups.WeekStart != rollup.WeekStartSunday {
		s.Rollups.WeekStart = rollup.WeekStartMonday
	}
	if len(s.NonWorkingDays) > 0 {
		days := make([]string, 0, len(s.NonWorkingDays))
		seen := make(map[string]bool)
		for _, day := range s.NonWorkingDays {
			if day == "" || seen[day] {
				continue
			}
			seen[day] = true
			days = append(days, day)
		}
		sort.Strings(days)
		s.NonWorkingDays = days
	}
	return s
}
