package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"toggldash/internal/domain"
	"toggldash/internal/toggl"
)

// RefetchReport says which days of a targeted re-fetch landed in cache and
// which were skipped, plus the error that cut the run short, if any.
type RefetchReport struct {
	Fetched []time.Time
	Skipped []time.Time
	Stopped error // nil when every day was fetched
}

// Summary renders the report as a one-line status, e.g.
// "re-fetched 2026-02-01→2026-02-03, skipped 2026-02-04 (budget spent)".
func (r RefetchReport) Summary() string {
	if len(r.Skipped) == 0 {
		return fmt.Sprintf("re-fetched %s", domain.FormatDaySpans(r.Fetched))
	}
	why := "budget spent"
	if r.Stopped != nil {
		why = r.Stopped.Error()
	}
	return fmt.Sprintf("re-fetched %s, skipped %s (%s)",
		domain.FormatDaySpans(r.Fetched), domain.FormatDaySpans(r.Skipped), why)
}

// Refetch re-pulls a span from the API one day at a time, spending one budget
// unit per day and writing each day through to cache. It stops early on quota
// exhaustion or any remote failure, reporting the days it did and did not
// cover; Unauthorized aborts entirely and demands a fresh login.
func (e *Engine) Refetch(ctx context.Context, workspaceID int64, span domain.DateRange) (RefetchReport, error) {
	var report RefetchReport
	days := domain.DateSpan(span.StartDate(), span.EndDate())

	for i, day := range days {
		if !e.ledger.Allow() {
			report.Skipped = append(report.Skipped, days[i:]...)
			break
		}
		e.ledger.Consume()

		dayRange := domain.RangeFromBounds(day, day)
		start, end := dayRange.RFC3339()
		entries, err := e.api.TimeEntries(ctx, start, end)
		if err != nil {
			if errors.Is(err, toggl.ErrUnauthorized) {
				e.handleUnauthorized()
				return RefetchReport{}, ErrLoginRequired
			}
			report.Skipped = append(report.Skipped, days[i:]...)
			report.Stopped = err
			break
		}

		e.cache.PutTimeEntries(workspaceID, dayRange, entries)
		report.Fetched = append(report.Fetched, day)
	}
	return report, nil
}
