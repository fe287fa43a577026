package sync

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toggldash/internal/domain"
	"toggldash/internal/store"
	"toggldash/internal/toggl"
)

func TestRefetch_FetchesEveryDay(t *testing.T) {
	api := &fakeAPI{
		entriesFn: func(start, end string) ([]domain.TimeEntry, error) {
			startDay, err := time.Parse(time.RFC3339, start)
			require.NoError(t, err)
			return []domain.TimeEntry{stoppedEntry(startDay.Unix(), startDay.Add(9*time.Hour), 3600, nil)}, nil
		},
	}
	f := newFixture(t, api)

	span := domain.RangeFromBounds(day(2026, 2, 2), day(2026, 2, 4))
	report, err := f.engine.Refetch(context.Background(), 1, span)
	require.NoError(t, err)

	assert.Len(t, report.Fetched, 3)
	assert.Empty(t, report.Skipped)
	assert.Nil(t, report.Stopped)
	assert.Equal(t, 3, f.ledger.Used(), "one budget unit per day")

	merged, ok := f.cache.TimeEntriesInRange(1, day(2026, 2, 2), day(2026, 2, 4))
	require.True(t, ok)
	assert.Len(t, merged.Data, 3)

	assert.Equal(t, "re-fetched 2026-02-02→2026-02-04", report.Summary())
}

func TestRefetch_StopsEarlyOnRemoteError(t *testing.T) {
	var served int
	api := &fakeAPI{
		entriesFn: func(start, end string) ([]domain.TimeEntry, error) {
			served++
			if served == 3 {
				return nil, toggl.ErrRateLimited
			}
			return []domain.TimeEntry{}, nil
		},
	}
	f := newFixture(t, api)

	span := domain.RangeFromBounds(day(2026, 2, 1), day(2026, 2, 5))
	report, err := f.engine.Refetch(context.Background(), 1, span)
	require.NoError(t, err)

	assert.Len(t, report.Fetched, 2)
	assert.Len(t, report.Skipped, 3, "failed day and the rest are skipped")
	assert.ErrorIs(t, report.Stopped, toggl.ErrRateLimited)

	summary := report.Summary()
	assert.Contains(t, summary, "2026-02-01→2026-02-02")
	assert.Contains(t, summary, "2026-02-03→2026-02-05")
}

func TestRefetch_StopsOnQuotaExhaustion(t *testing.T) {
	api := &fakeAPI{entriesFn: func(string, string) ([]domain.TimeEntry, error) {
		return []domain.TimeEntry{}, nil
	}}
	f := newFixture(t, api)
	for f.ledger.Remaining() > 2 {
		f.ledger.Consume()
	}

	span := domain.RangeFromBounds(day(2026, 2, 1), day(2026, 2, 5))
	report, err := f.engine.Refetch(context.Background(), 1, span)
	require.NoError(t, err)

	assert.Len(t, report.Fetched, 2)
	assert.Len(t, report.Skipped, 3)
	assert.Nil(t, report.Stopped)
	assert.True(t, strings.Contains(report.Summary(), "budget spent"))
}

func TestRefetch_UnauthorizedAborts(t *testing.T) {
	api := &fakeAPI{entriesFn: func(string, string) ([]domain.TimeEntry, error) {
		return nil, toggl.ErrUnauthorized
	}}
	f := newFixture(t, api)
	require.NoError(t, store.WriteToken(f.dir, "secret"))
	f.cache.PutWorkspaces([]domain.Workspace{{ID: 1, Name: "Personal"}})

	span := domain.RangeFromBounds(day(2026, 2, 1), day(2026, 2, 2))
	_, err := f.engine.Refetch(context.Background(), 1, span)
	assert.ErrorIs(t, err, ErrLoginRequired)

	_, ok := f.cache.Workspaces()
	assert.False(t, ok)
}
