// Package rollup expands time entries into zero-filled daily totals and
// buckets them into weekly, monthly and yearly periods.
package rollup

import (
	"fmt"
	"time"

	"toggldash/internal/domain"
	"toggldash/internal/rounding"
)

// WeekStart selects which day anchors a week.
type WeekStart string

const (
	WeekStartMonday WeekStart = "monday"
	WeekStartSunday WeekStart = "sunday"
)

// DailyTotal is the seconds worked on one calendar date. Dates with no
// activity are present with Seconds == 0.
type DailyTotal struct {
	Date    time.Time
	Seconds int64
}

// Hours returns the day total in decimal hours.
func (d DailyTotal) Hours() float64 { return float64(d.Seconds) / 3600 }

// PeriodRollup is one week, month or year intersecting the built span.
// Days counts calendar days present, not working days.
type PeriodRollup struct {
	Label   string
	Start   time.Time
	End     time.Time
	Days    int
	Seconds int64
}

// Hours returns the period total in decimal hours.
func (p PeriodRollup) Hours() float64 { return float64(p.Seconds) / 3600 }

// Contains reports whether day falls inside the period.
func (p PeriodRollup) Contains(day time.Time) bool {
	day = domain.Midnight(day)
	return !day.Before(p.Start) && !day.After(p.End)
}

// Set bundles every granularity for one built span.
type Set struct {
	Daily   []DailyTotal
	Weekly  []PeriodRollup
	Monthly []PeriodRollup
	Yearly  []PeriodRollup
}

// Build sums each entry's rounded duration into its local start date, emits
// one DailyTotal per date in [start, end] (zeros included), and folds the
// daily sequence into weekly, monthly and yearly periods.
func Build(
	entries []domain.TimeEntry,
	start, end time.Time,
	cfg *rounding.Config,
	weekStart WeekStart,
) Set {
	start = domain.Midnight(start)
	end = domain.Midnight(end)

	totals := make(map[string]int64)
	for _, entry := range entries {
		date := entry.LocalDate()
		if date.Before(start) || date.After(end) {
			continue
		}
		totals[date.Format(domain.DayFormat)] += rounding.Apply(entry.Duration, cfg)
	}

	daily := make([]DailyTotal, 0, len(totals))
	for _, day := range domain.DateSpan(start, end) {
		daily = append(daily, DailyTotal{
			Date:    day,
			Seconds: totals[day.Format(domain.DayFormat)],
		})
	}

	return Set{
		Daily:   daily,
		Weekly:  foldPeriods(daily, weeklySpec(weekStart)),
		Monthly: foldPeriods(daily, monthlySpec()),
		Yearly:  foldPeriods(daily, yearlySpec()),
	}
}

// periodSpec drives one granularity of the fold: key groups consecutive days,
// label renders the finished period.
type periodSpec struct {
	key   func(day time.Time) string
	label func(start, end time.Time) string
}

func foldPeriods(daily []DailyTotal, spec periodSpec) []PeriodRollup {
	var periods []PeriodRollup
	currentKey := ""

	for _, day := range daily {
		key := spec.key(day.Date)
		if key != currentKey {
			periods = append(periods, PeriodRollup{Start: day.Date, End: day.Date})
			currentKey = key
		}

		period := &periods[len(periods)-1]
		period.End = day.Date
		period.Days++
		period.Seconds += day.Seconds
	}

	for i := range periods {
		periods[i].Label = spec.label(periods[i].Start, periods[i].End)
	}
	return periods
}

func weeklySpec(weekStart WeekStart) periodSpec {
	return periodSpec{
		key: func(day time.Time) string {
			return StartOfWeek(day, weekStart).Format(domain.DayFormat)
		},
		label: func(start, end time.Time) string {
			year, week := StartOfWeek(start, weekStart).ISOWeek()
			return fmt.Sprintf("W%02d %d (%s → %s)",
				week, year, start.Format(domain.DayFormat), end.Format(domain.DayFormat))
		},
	}
}

func monthlySpec() periodSpec {
	return periodSpec{
		key:   func(day time.Time) string { return day.Format("2006-01") },
		label: func(start, _ time.Time) string { return start.Format("Jan 2006") },
	}
}

func yearlySpec() periodSpec {
	return periodSpec{
		key:   func(day time.Time) string { return day.Format("2006") },
		label: func(start, _ time.Time) string { return start.Format("2006") },
	}
}

// StartOfWeek returns the anchor day of the week containing day.
func StartOfWeek(day time.Time, weekStart WeekStart) time.Time {
	day = domain.Midnight(day)
	var offset int
	switch weekStart {
	case WeekStartSunday:
		offset = int(day.Weekday())
	default: // Monday
		offset = (int(day.Weekday()) + 6) % 7
	}
	return day.AddDate(0, 0, -offset)
}
