package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toggldash/internal/domain"
	"toggldash/internal/grouping"
	"toggldash/internal/rollup"
	"toggldash/internal/store"
	"toggldash/internal/sync"
)

type fakeRefresher struct {
	outcome    *sync.Outcome
	err        error
	requests   []sync.Request
	cachedDays int
}

func (f *fakeRefresher) Refresh(_ context.Context, req sync.Request) (*sync.Outcome, error) {
	f.requests = append(f.requests, req)
	return f.outcome, f.err
}

func (f *fakeRefresher) Refetch(context.Context, int64, domain.DateRange) (sync.RefetchReport, error) {
	return sync.RefetchReport{}, nil
}

func (f *fakeRefresher) Remaining() int { return 30 }

func (f *fakeRefresher) CachedDays(int64, domain.DateRange) int { return f.cachedDays }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func testOutcome() *sync.Outcome {
	return &sync.Outcome{
		Workspaces:  []domain.Workspace{{ID: 1, Name: "Personal"}},
		Workspace:   domain.Workspace{ID: 1, Name: "Personal"},
		Grouped:     []grouping.GroupedProject{{Name: "Site", Seconds: 5400, Entries: []grouping.GroupedEntry{{Description: "build", Seconds: 5400}}}},
		Rollups:     rollup.Build(nil, day(2026, 2, 2), day(2026, 2, 2), nil, rollup.WeekStartMonday),
		LastRefresh: time.Date(2026, 2, 2, 12, 0, 0, 0, time.Local),
	}
}

func newTestModel(t *testing.T, engine *fakeRefresher) Model {
	t.Helper()
	t.Setenv("TOGGL_API_TOKEN", "")
	dir := t.TempDir()
	require.NoError(t, store.WriteToken(dir, "secret"))
	return New(dir, func(string) Refresher { return engine })
}

func TestNew_WithoutTokenEntersLogin(t *testing.T) {
	t.Setenv("TOGGL_API_TOKEN", "")
	m := New(t.TempDir(), func(string) Refresher { return &fakeRefresher{} })
	assert.Equal(t, modeLogin, m.mode)
	assert.NotNil(t, m.loginForm)
}

func TestNew_WithTokenStartsLoading(t *testing.T) {
	m := newTestModel(t, &fakeRefresher{outcome: testOutcome()})
	assert.Equal(t, modeLoading, m.mode)
}

func TestUpdate_RefreshDoneShowsDashboard(t *testing.T) {
	m := newTestModel(t, &fakeRefresher{})

	updated, _ := m.Update(refreshDoneMsg{outcome: testOutcome()})
	model := updated.(Model)

	assert.Equal(t, modeDashboard, model.mode)
	view := model.View()
	assert.Contains(t, view, "Site")
	assert.Contains(t, view, "1.50h")
	assert.Contains(t, view, "Personal")
}

func TestUpdate_LoginRequiredEntersLogin(t *testing.T) {
	m := newTestModel(t, &fakeRefresher{})

	updated, _ := m.Update(refreshDoneMsg{err: sync.ErrLoginRequired})
	assert.Equal(t, modeLogin, updated.(Model).mode)
}

func TestUpdate_WorkspaceChoiceEntersPicker(t *testing.T) {
	m := newTestModel(t, &fakeRefresher{})
	choiceErr := &sync.WorkspaceChoiceError{
		Workspaces: []domain.Workspace{{ID: 1, Name: "Personal"}, {ID: 2, Name: "Work"}},
	}

	updated, _ := m.Update(refreshDoneMsg{err: choiceErr})
	model := updated.(Model)

	assert.Equal(t, modeWorkspaceSelect, model.mode)
	assert.Contains(t, model.View(), "Work")

	// Select the second workspace.
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	updated, cmd := updated.(Model).Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)

	assert.Equal(t, int64(2), model.workspaceID)
	assert.Equal(t, modeLoading, model.mode)
	assert.NotNil(t, cmd)
}

func TestUpdate_RefreshKeyForcesAPI(t *testing.T) {
	engine := &fakeRefresher{outcome: testOutcome()}
	m := newTestModel(t, engine)
	m.mode = modeDashboard
	m.outcome = testOutcome()

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Equal(t, modeLoading, updated.(Model).mode)
	require.NotNil(t, cmd)

	drainCmd(cmd)
	require.NotEmpty(t, engine.requests)
	assert.Equal(t, sync.IntentForceAPI, engine.requests[len(engine.requests)-1].Intent)
}

func TestUpdate_NavigationUsesCacheFirst(t *testing.T) {
	engine := &fakeRefresher{outcome: testOutcome()}
	m := newTestModel(t, engine)
	m.mode = modeDashboard
	m.outcome = testOutcome()

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	model := updated.(Model)
	assert.Equal(t, modeLoading, model.mode)
	assert.Contains(t, model.active.Label, "Yesterday")

	drainCmd(cmd)
	require.NotEmpty(t, engine.requests)
	assert.Equal(t, sync.IntentCacheOnly, engine.requests[0].Intent)
}

func TestUpdate_RangeShift(t *testing.T) {
	engine := &fakeRefresher{outcome: testOutcome()}
	m := newTestModel(t, engine)
	m.mode = modeDashboard
	m.outcome = testOutcome()
	m.active = domain.RangeFromBounds(day(2026, 2, 2), day(2026, 2, 4))

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("[")})
	model := updated.(Model)
	assert.Equal(t, day(2026, 1, 30), model.active.StartDate())

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("]")})
	assert.Equal(t, day(2026, 2, 2), updated.(Model).active.StartDate())
}

func TestUpdate_RollupToggle(t *testing.T) {
	m := newTestModel(t, &fakeRefresher{})
	m.mode = modeDashboard
	m.outcome = testOutcome()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
	model := updated.(Model)
	assert.Equal(t, modeRollups, model.mode)
	assert.Contains(t, model.View(), "Weekly rollups")

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
	assert.Equal(t, modeDashboard, updated.(Model).mode)
}

func TestUpdate_RefetchRequiresConfirmation(t *testing.T) {
	engine := &fakeRefresher{outcome: testOutcome()}
	m := newTestModel(t, engine)
	m.mode = modeDashboard
	m.outcome = testOutcome()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("R")})
	model := updated.(Model)
	assert.Equal(t, modeRefetchConfirm, model.mode)
	assert.Contains(t, model.View(), "Re-fetch from Toggl")

	// Declining goes back without touching the engine.
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeDashboard, updated.(Model).mode)
	assert.Empty(t, engine.requests)

	// Confirming starts the re-fetch.
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	assert.Equal(t, modeLoading, updated.(Model).mode)
}

func TestViewRefetchConfirm_ShowsCachedDayCount(t *testing.T) {
	engine := &fakeRefresher{outcome: testOutcome(), cachedDays: 2}
	m := newTestModel(t, engine)
	m.mode = modeRefetchConfirm
	m.outcome = testOutcome()
	m.active = domain.RangeFromBounds(day(2026, 2, 2), day(2026, 2, 4))

	view := m.View()
	assert.Contains(t, view, "Cached already: 2 of 3 day(s)")

	engine.cachedDays = 0
	assert.NotContains(t, m.View(), "Cached already")
}

func TestUpdate_ErrorViewShowsMessage(t *testing.T) {
	m := newTestModel(t, &fakeRefresher{})

	updated, _ := m.Update(refreshDoneMsg{err: &sync.NoDataError{Resource: "time entries", QuotaExhausted: true}})
	model := updated.(Model)

	assert.Equal(t, modeError, model.mode)
	assert.Contains(t, model.View(), "budget is spent")
}

func TestWeekRange(t *testing.T) {
	wednesday := day(2026, 2, 4)
	r := weekRange(wednesday.Add(10*time.Hour), rollup.WeekStartMonday)
	assert.Equal(t, day(2026, 2, 2), r.StartDate())
	assert.Equal(t, day(2026, 2, 8), r.EndDate())

	r = weekRange(wednesday.Add(10*time.Hour), rollup.WeekStartSunday)
	assert.Equal(t, day(2026, 2, 1), r.StartDate())
	assert.Equal(t, day(2026, 2, 7), r.EndDate())
}

// drainCmd executes a command tree far enough to trigger its side effects.
func drainCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, sub := range batch {
			drainCmd(sub)
		}
	}
}
