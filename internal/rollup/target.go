package rollup

import (
	"time"

	"toggldash/internal/domain"
)

// deltaDeadZone absorbs float noise so near-zero deltas render as exactly
// ±0.00 instead of flickering between signs.
const deltaDeadZone = 0.005

// TargetConfig describes how many hours count as a full day, and which days
// carry no target at all.
type TargetConfig struct {
	HoursPerDay     float64
	IncludeWeekends bool
	NonWorkingDays  map[string]bool // keyed by domain.DayFormat
}

// DayTarget returns the target hours for one calendar day: zero for flagged
// non-working days, zero for weekends when they are excluded, otherwise the
// configured daily target.
func (c TargetConfig) DayTarget(day time.Time) float64 {
	if c.NonWorkingDays[day.Format(domain.DayFormat)] {
		return 0
	}
	if !c.IncludeWeekends {
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			return 0
		}
	}
	return c.HoursPerDay
}

// PeriodTarget sums the per-day targets across a period. The returned day
// count includes only days with a non-zero target.
func (c TargetConfig) PeriodTarget(period PeriodRollup) (hours float64, targetDays int) {
	for _, day := range domain.DateSpan(period.Start, period.End) {
		target := c.DayTarget(day)
		if target > 0 {
			targetDays++
		}
		hours += target
	}
	return hours, targetDays
}

// Delta returns worked-minus-target hours for a period, dead-zoned.
func (c TargetConfig) Delta(period PeriodRollup) float64 {
	target, _ := c.PeriodTarget(period)
	return NormalizeDelta(period.Hours() - target)
}

// OvertimeWorked returns the overtime accumulated in a period so far: hours
// worked beyond target, counted only through min(period end, activeEnd) so
// days not yet reached neither credit nor penalize, and floored at zero.
func (c TargetConfig) OvertimeWorked(period PeriodRollup, daily []DailyTotal, activeEnd time.Time) float64 {
	cutoff := domain.Midnight(activeEnd)
	if period.End.Before(cutoff) {
		cutoff = period.End
	}
	if cutoff.Before(period.Start) {
		return 0
	}

	var workedSeconds int64
	var target float64
	for _, day := range daily {
		if day.Date.Before(period.Start) || day.Date.After(cutoff) {
			continue
		}
		workedSeconds += day.Seconds
		target += c.DayTarget(day.Date)
	}

	overtime := NormalizeDelta(float64(workedSeconds)/3600 - target)
	if overtime <= 0 {
		return 0
	}
	return overtime
}

// NormalizeDelta clamps values inside the dead-zone to exactly zero.
func NormalizeDelta(value float64) float64 {
	if value < deltaDeadZone && value > -deltaDeadZone {
		return 0
	}
	return value
}
