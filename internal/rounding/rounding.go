// Package rounding quantizes raw durations to a configured increment.
package rounding

// Mode selects how a duration is pushed onto the increment grid.
type Mode string

const (
	ModeClosest Mode = "closest"
	ModeUp      Mode = "up"
	ModeDown    Mode = "down"
)

// ValidModes is the canonical set of accepted mode strings.
var ValidModes = map[string]bool{
	string(ModeClosest): true,
	string(ModeUp):      true,
	string(ModeDown):    true,
}

// Config holds the rounding increment and mode. A nil *Config at the
// application level means rounding is disabled entirely.
type Config struct {
	IncrementMinutes int  `json:"increment_minutes"`
	Mode             Mode `json:"mode"`
}

// DefaultConfig returns the rounding applied when a user first enables it.
func DefaultConfig() Config {
	return Config{IncrementMinutes: 15, Mode: ModeClosest}
}

// Round quantizes seconds to the configured increment. A zero or negative
// increment returns the input unchanged. The sign of the input is preserved;
// rounding operates on the absolute value. ModeClosest resolves exact
// half-increment ties upward.
//
// Round is idempotent: an already-aligned value is returned unchanged in
// every mode.
func Round(seconds int64, cfg Config) int64 {
	if cfg.IncrementMinutes <= 0 {
		return seconds
	}
	step := int64(cfg.IncrementMinutes) * 60

	sign := int64(1)
	abs := seconds
	if seconds < 0 {
		sign = -1
		abs = -seconds
	}

	lower := (abs / step) * step
	upper := lower
	if abs%step != 0 {
		upper = lower + step
	}

	var rounded int64
	switch cfg.Mode {
	case ModeDown:
		rounded = lower
	case ModeUp:
		rounded = upper
	default: // ModeClosest
		if upper-abs <= abs-lower {
			rounded = upper
		} else {
			rounded = lower
		}
	}

	return rounded * sign
}

// Apply rounds seconds when cfg is non-nil, otherwise returns them raw.
func Apply(seconds int64, cfg *Config) int64 {
	if cfg == nil {
		return seconds
	}
	return Round(seconds, *cfg)
}
