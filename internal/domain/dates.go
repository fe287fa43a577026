package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DayFormat is the calendar-date layout used across settings, cache keys and
// labels.
const DayFormat = "2006-01-02"

// DateRange is an inclusive local-time span, from 00:00:00 on the start day
// to 23:59:59 on the end day.
type DateRange struct {
	Start time.Time
	End   time.Time
	Label string
}

// Today returns the range covering the current local day.
func Today() DateRange {
	day := Midnight(time.Now().Local())
	return DateRange{
		Start: day,
		End:   endOfDay(day),
		Label: fmt.Sprintf("Today (%s)", day.Format(DayFormat)),
	}
}

// Yesterday returns the range covering the previous local day.
func Yesterday() DateRange {
	day := Midnight(time.Now().Local()).AddDate(0, 0, -1)
	return DateRange{
		Start: day,
		End:   endOfDay(day),
		Label: fmt.Sprintf("Yesterday (%s)", day.Format(DayFormat)),
	}
}

// RangeFromBounds builds a range from two calendar days, inclusive.
func RangeFromBounds(start, end time.Time) DateRange {
	start = Midnight(start)
	end = Midnight(end)
	label := start.Format(DayFormat)
	if !start.Equal(end) {
		label = fmt.Sprintf("%s → %s", start.Format(DayFormat), end.Format(DayFormat))
	}
	return DateRange{Start: start, End: endOfDay(end), Label: label}
}

// RFC3339 returns the wire representation of the range bounds.
func (r DateRange) RFC3339() (string, string) {
	return r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339)
}

// StartDate returns the first calendar day of the range.
func (r DateRange) StartDate() time.Time { return Midnight(r.Start) }

// EndDate returns the last calendar day of the range.
func (r DateRange) EndDate() time.Time { return Midnight(r.End) }

// Shift moves the range forward or backward by its own span length.
func (r DateRange) Shift(direction int) DateRange {
	if direction == 0 {
		return r
	}
	if direction > 0 {
		direction = 1
	} else {
		direction = -1
	}
	span := DaysBetween(r.StartDate(), r.EndDate())
	offset := span * direction
	return RangeFromBounds(r.StartDate().AddDate(0, 0, offset), r.EndDate().AddDate(0, 0, offset))
}

// ParseDate parses a "YYYY-MM-DD" string as a local calendar day.
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DayFormat, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// DaysBetween counts inclusive calendar days from start to end; zero when end
// precedes start.
func DaysBetween(start, end time.Time) int {
	start = Midnight(start)
	end = Midnight(end)
	if end.Before(start) {
		return 0
	}
	days := 1
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}

// DateSpan enumerates every calendar day from start to end inclusive.
func DateSpan(start, end time.Time) []time.Time {
	start = Midnight(start)
	end = Midnight(end)
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthEnd returns the last day of t's month.
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, -1)
}

// YearStart returns January 1st of t's year.
func YearStart(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

// YearEnd returns December 31st of t's year.
func YearEnd(t time.Time) time.Time {
	return time.Date(t.Year(), time.December, 31, 0, 0, 0, 0, t.Location())
}

// FormatDaySpans renders a set of days as comma-separated contiguous spans,
// e.g. "2026-02-01→2026-02-03, 2026-02-05". Used by re-fetch reports.
func FormatDaySpans(days []time.Time) string {
	if len(days) == 0 {
		return "none"
	}

	sorted := make([]time.Time, len(days))
	for i, d := range days {
		sorted[i] = Midnight(d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	var spans []string
	rangeStart := sorted[0]
	rangeEnd := sorted[0]
	for _, day := range sorted[1:] {
		if day.Equal(rangeEnd) {
			continue
		}
		if day.Equal(rangeEnd.AddDate(0, 0, 1)) {
			rangeEnd = day
			continue
		}
		spans = append(spans, formatDateSpan(rangeStart, rangeEnd))
		rangeStart = day
		rangeEnd = day
	}
	spans = append(spans, formatDateSpan(rangeStart, rangeEnd))
	return strings.Join(spans, ", ")
}

func formatDateSpan(start, end time.Time) string {
	if start.Equal(end) {
		return start.Format(DayFormat)
	}
	return start.Format(DayFormat) + "→" + end.Format(DayFormat)
}

func endOfDay(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, day.Location())
}
