// Package tui is the terminal dashboard: one bubbletea model whose mode
// field selects between the grouped view, the rollup view, and the various
// interactive pickers and forms.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"toggldash/internal/domain"
	"toggldash/internal/rollup"
	"toggldash/internal/store"
	"toggldash/internal/sync"
)

// Refresher is the engine surface the UI drives.
type Refresher interface {
	Refresh(ctx context.Context, req sync.Request) (*sync.Outcome, error)
	Refetch(ctx context.Context, workspaceID int64, span domain.DateRange) (sync.RefetchReport, error)
	Remaining() int
	CachedDays(workspaceID int64, span domain.DateRange) int
}

type mode int

const (
	modeLoading mode = iota
	modeDashboard
	modeRollups
	modeLogin
	modeWorkspaceSelect
	modeDateInput
	modeRefetchConfirm
	modeSettings
	modeError
)

type rollupGranularity int

const (
	rollupWeekly rollupGranularity = iota
	rollupMonthly
	rollupYearly
)

// Model is the root TUI state.
type Model struct {
	dir      string
	connect  func(token string) Refresher
	engine   Refresher
	settings store.Settings
	keys     keyMap
	spin     spinner.Model

	mode           mode
	granularity    rollupGranularity
	pendingRollups bool
	active         domain.DateRange
	outcome        *sync.Outcome
	workspaceID    int64
	flash          string
	err            error

	// workspace picker
	choices []domain.Workspace
	cursor  int

	// huh-driven modes
	loginForm     *huh.Form
	loginToken    string
	dateForm      *huh.Form
	dateFrom      string
	dateTo        string
	settingsForm  *huh.Form
	settingsDraft settingsDraft

	width  int
	height int
}

// New builds the root model. connect turns a token into a ready engine; it is
// invoked at startup when a token exists and again after each login.
func New(dir string, connect func(token string) Refresher) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		dir:      dir,
		connect:  connect,
		settings: store.ReadSettings(dir),
		keys:     newKeyMap(),
		spin:     sp,
		active:   domain.Today(),
	}
	m.workspaceID = m.settings.WorkspaceID

	if token, ok := store.ReadToken(dir); ok {
		m.engine = connect(token)
		m.mode = modeLoading
	} else {
		m.enterLogin()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.mode == modeLogin {
		return m.loginForm.Init()
	}
	return tea.Batch(m.spin.Tick, m.refreshCmd(sync.IntentCacheOnly, true))
}

// refreshCmd runs one refresh off the UI goroutine. When fallthrough is set,
// a "nothing cached, press refresh" miss retries live instead of surfacing.
func (m Model) refreshCmd(intent sync.Intent, allowFallthrough bool) tea.Cmd {
	engine := m.engine
	req := sync.Request{
		Intent:      intent,
		Range:       m.active,
		WorkspaceID: m.workspaceID,
		Rounding:    m.settings.Rounding,
		WeekStart:   m.settings.Rollups.WeekStart,
	}
	return func() tea.Msg {
		outcome, err := engine.Refresh(context.Background(), req)
		var noData *sync.NoDataError
		if allowFallthrough && errors.As(err, &noData) && !noData.QuotaExhausted {
			req.Intent = sync.IntentForceAPI
			outcome, err = engine.Refresh(context.Background(), req)
		}
		return refreshDoneMsg{outcome: outcome, err: err}
	}
}

func (m Model) refetchCmd() tea.Cmd {
	engine := m.engine
	workspaceID := m.workspaceID
	span := m.active
	return func() tea.Msg {
		report, err := engine.Refetch(context.Background(), workspaceID, span)
		return refetchDoneMsg{report: report, err: err}
	}
}

func flashClearCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg { return flashClearMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.mode != modeLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case refreshDoneMsg:
		return m.handleRefreshDone(msg)

	case refetchDoneMsg:
		if msg.err != nil {
			return m.handleRefreshError(msg.err)
		}
		m.flash = msg.report.Summary()
		m.mode = modeLoading
		return m, tea.Batch(m.spin.Tick, m.refreshCmd(sync.IntentCacheOnly, false), flashClearCmd())

	case copiedMsg:
		if msg.err != nil {
			m.flash = msg.err.Error()
		} else {
			m.flash = "copied to clipboard"
		}
		return m, flashClearCmd()

	case flashClearMsg:
		m.flash = ""
		return m, nil
	}

	switch m.mode {
	case modeLogin:
		return m.updateLogin(msg)
	case modeSettings:
		return m.updateSettings(msg)
	case modeDateInput:
		return m.updateDateInput(msg)
	case modeWorkspaceSelect:
		return m.updateWorkspaceSelect(msg)
	case modeRefetchConfirm:
		return m.updateRefetchConfirm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(keyMsg)
	}
	return m, nil
}

func (m Model) handleRefreshDone(msg refreshDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.handleRefreshError(msg.err)
	}
	m.outcome = msg.outcome
	m.workspaceID = msg.outcome.Workspace.ID
	if m.settings.WorkspaceID != m.workspaceID {
		m.settings.WorkspaceID = m.workspaceID
		store.WriteSettings(m.dir, m.settings)
	}
	m.err = nil
	if m.pendingRollups {
		m.pendingRollups = false
		m.mode = modeRollups
	} else if m.mode != modeRollups {
		m.mode = modeDashboard
	}
	return m, nil
}

func (m Model) handleRefreshError(err error) (tea.Model, tea.Cmd) {
	var choice *sync.WorkspaceChoiceError
	switch {
	case errors.Is(err, sync.ErrLoginRequired):
		m.enterLogin()
		return m, m.loginForm.Init()
	case errors.As(err, &choice):
		m.mode = modeWorkspaceSelect
		m.choices = choice.Workspaces
		m.cursor = 0
		return m, nil
	default:
		m.mode = modeError
		m.err = err
		return m, nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Refresh):
		m.mode = modeLoading
		return m, tea.Batch(m.spin.Tick, m.refreshCmd(sync.IntentForceAPI, false))

	case key.Matches(msg, k.Today):
		return m.loadRange(domain.Today())

	case key.Matches(msg, k.Yesterday):
		return m.loadRange(domain.Yesterday())

	case key.Matches(msg, k.PrevRange):
		return m.loadRange(m.active.Shift(-1))

	case key.Matches(msg, k.NextRange):
		return m.loadRange(m.active.Shift(1))

	case key.Matches(msg, k.Week):
		now := time.Now()
		return m.loadRollupRange(weekRange(now, m.settings.Rollups.WeekStart), rollupWeekly)

	case key.Matches(msg, k.Month):
		now := time.Now()
		return m.loadRollupRange(domain.RangeFromBounds(domain.MonthStart(now), domain.MonthEnd(now)), rollupMonthly)

	case key.Matches(msg, k.Year):
		now := time.Now()
		return m.loadRollupRange(domain.RangeFromBounds(domain.YearStart(now), domain.YearEnd(now)), rollupYearly)

	case key.Matches(msg, k.Rollups):
		if m.mode == modeRollups {
			m.mode = modeDashboard
		} else if m.outcome != nil {
			m.mode = modeRollups
		}
		return m, nil

	case key.Matches(msg, k.CustomDate):
		m.enterDateInput()
		return m, m.dateForm.Init()

	case key.Matches(msg, k.Refetch):
		if m.engine != nil {
			m.mode = modeRefetchConfirm
		}
		return m, nil

	case key.Matches(msg, k.Copy):
		return m, m.copyCmd()

	case key.Matches(msg, k.Settings):
		m.enterSettings()
		return m, m.settingsForm.Init()

	case key.Matches(msg, k.Workspace):
		if m.outcome != nil && len(m.outcome.Workspaces) > 1 {
			m.mode = modeWorkspaceSelect
			m.choices = m.outcome.Workspaces
			m.cursor = 0
		}
		return m, nil

	case key.Matches(msg, k.Back):
		if m.mode == modeRollups || m.mode == modeError {
			if m.outcome != nil {
				m.mode = modeDashboard
			}
		}
		return m, nil
	}
	return m, nil
}

// loadRange switches the active span and reloads it, cache first.
func (m Model) loadRange(r domain.DateRange) (tea.Model, tea.Cmd) {
	if m.engine == nil {
		return m, nil
	}
	m.active = r
	m.mode = modeLoading
	return m, tea.Batch(m.spin.Tick, m.refreshCmd(sync.IntentCacheOnly, true))
}

func (m Model) loadRollupRange(r domain.DateRange, g rollupGranularity) (tea.Model, tea.Cmd) {
	if m.engine == nil {
		return m, nil
	}
	m.active = r
	m.granularity = g
	m.pendingRollups = true
	m.mode = modeLoading
	return m, tea.Batch(m.spin.Tick, m.refreshCmd(sync.IntentCacheOnly, true))
}

func (m Model) copyCmd() tea.Cmd {
	if m.outcome == nil {
		return nil
	}
	var text string
	if m.mode == modeRollups {
		text = FormatRollups(m.active.Label, m.currentPeriods(), m.settings.TargetConfig())
	} else {
		text = FormatGrouped(m.active.Label, m.outcome.Grouped)
	}
	return func() tea.Msg { return copiedMsg{err: copyToClipboard(text)} }
}

// currentPeriods picks the period slice for the displayed granularity.
func (m Model) currentPeriods() []rollup.PeriodRollup {
	if m.outcome == nil {
		return nil
	}
	switch m.granularity {
	case rollupMonthly:
		return m.outcome.Rollups.Monthly
	case rollupYearly:
		return m.outcome.Rollups.Yearly
	default:
		return m.outcome.Rollups.Weekly
	}
}

// weekRange returns the week containing t under the configured week start.
func weekRange(t time.Time, weekStart rollup.WeekStart) domain.DateRange {
	start := rollup.StartOfWeek(domain.Midnight(t.Local()), weekStart)
	return domain.RangeFromBounds(start, start.AddDate(0, 0, 6))
}
