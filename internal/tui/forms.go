package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"toggldash/internal/domain"
	"toggldash/internal/rollup"
	"toggldash/internal/rounding"
	"toggldash/internal/store"
	"toggldash/internal/sync"
)

// ── login ────────────────────────────────────────────────────────────────────

func (m *Model) enterLogin() {
	m.mode = modeLogin
	m.loginToken = ""
	m.loginForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Toggl API token").
				Description("Found under Profile → API Token on track.toggl.com").
				EchoMode(huh.EchoModePassword).
				Value(&m.loginToken).
				Validate(validateRequired("token")),
		),
	).WithShowHelp(false)
}

func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.loginForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.loginForm = f
	}
	switch m.loginForm.State {
	case huh.StateCompleted:
		token := strings.TrimSpace(m.loginToken)
		store.WriteToken(m.dir, token)
		m.engine = m.connect(token)
		m.mode = modeLoading
		return m, tea.Batch(m.spin.Tick, m.refreshCmd(sync.IntentForceAPI, false))
	case huh.StateAborted:
		return m, tea.Quit
	}
	return m, cmd
}

// ── custom date range ────────────────────────────────────────────────────────

func (m *Model) enterDateInput() {
	m.mode = modeDateInput
	m.dateFrom = m.active.StartDate().Format(domain.DayFormat)
	m.dateTo = m.active.EndDate().Format(domain.DayFormat)
	m.dateForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("From (YYYY-MM-DD)").
				Value(&m.dateFrom).
				Validate(validateDate),
			huh.NewInput().
				Title("To (YYYY-MM-DD)").
				Value(&m.dateTo).
				Validate(validateDate),
		),
	).WithShowHelp(false)
}

func (m Model) updateDateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.dateForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.dateForm = f
	}
	switch m.dateForm.State {
	case huh.StateCompleted:
		from, err := domain.ParseDate(m.dateFrom)
		if err != nil {
			return m.backToDashboard()
		}
		to, err := domain.ParseDate(m.dateTo)
		if err != nil || to.Before(from) {
			return m.backToDashboard()
		}
		return m.loadRange(domain.RangeFromBounds(from, to))
	case huh.StateAborted:
		return m.backToDashboard()
	}
	return m, cmd
}

// ── settings ─────────────────────────────────────────────────────────────────

// settingsDraft holds the form's string-typed working copy of the settings.
type settingsDraft struct {
	targetHours     string
	increment       string
	roundingMode    string
	weekStart       string
	includeWeekends bool
	nonWorking      string
}

func (m *Model) enterSettings() {
	s := m.settings
	draft := settingsDraft{
		targetHours:     strconv.FormatFloat(s.TargetHours, 'f', -1, 64),
		roundingMode:    string(rounding.ModeClosest),
		weekStart:       string(s.Rollups.WeekStart),
		includeWeekends: s.IncludeWeekends,
		nonWorking:      strings.Join(s.NonWorkingDays, ", "),
	}
	if s.Rounding != nil {
		draft.increment = strconv.Itoa(s.Rounding.IncrementMinutes)
		draft.roundingMode = string(s.Rounding.Mode)
	} else {
		draft.increment = "0"
	}
	m.settingsDraft = draft

	m.mode = modeSettings
	m.settingsForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Target hours per day").
				Value(&m.settingsDraft.targetHours).
				Validate(validatePositiveFloat),
			huh.NewConfirm().
				Title("Count weekends toward targets?").
				Value(&m.settingsDraft.includeWeekends),
			huh.NewSelect[string]().
				Title("Week starts on").
				Options(
					huh.NewOption("Monday", string(rollup.WeekStartMonday)),
					huh.NewOption("Sunday", string(rollup.WeekStartSunday)),
				).
				Value(&m.settingsDraft.weekStart),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Rounding increment (minutes, 0 disables)").
				Value(&m.settingsDraft.increment).
				Validate(validateNonNegativeInt),
			huh.NewSelect[string]().
				Title("Rounding mode").
				Options(
					huh.NewOption("Closest (ties up)", string(rounding.ModeClosest)),
					huh.NewOption("Always up", string(rounding.ModeUp)),
					huh.NewOption("Always down", string(rounding.ModeDown)),
				).
				Value(&m.settingsDraft.roundingMode),
			huh.NewInput().
				Title("Non-working days (YYYY-MM-DD, comma separated)").
				Value(&m.settingsDraft.nonWorking).
				Validate(validateDateList),
		),
	).WithShowHelp(false)
}

func (m Model) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.settingsForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.settingsForm = f
	}
	switch m.settingsForm.State {
	case huh.StateCompleted:
		m.applySettingsDraft()
		m.mode = modeLoading
		return m, tea.Batch(m.spin.Tick, m.refreshCmd(sync.IntentCacheOnly, true))
	case huh.StateAborted:
		return m.backToDashboard()
	}
	return m, cmd
}

func (m *Model) applySettingsDraft() {
	draft := m.settingsDraft
	if hours, err := strconv.ParseFloat(strings.TrimSpace(draft.targetHours), 64); err == nil && hours > 0 {
		m.settings.TargetHours = hours
	}
	m.settings.IncludeWeekends = draft.includeWeekends
	m.settings.Rollups.WeekStart = rollup.WeekStart(draft.weekStart)

	increment, err := strconv.Atoi(strings.TrimSpace(draft.increment))
	if err != nil || increment <= 0 {
		m.settings.Rounding = nil
	} else {
		m.settings.Rounding = &rounding.Config{
			IncrementMinutes: increment,
			Mode:             rounding.Mode(draft.roundingMode),
		}
	}

	m.settings.NonWorkingDays = parseDateList(draft.nonWorking)
	store.WriteSettings(m.dir, m.settings)
}

func (m Model) backToDashboard() (tea.Model, tea.Cmd) {
	if m.outcome != nil {
		m.mode = modeDashboard
	} else if m.engine != nil {
		m.mode = modeLoading
		return m, tea.Batch(m.spin.Tick, m.refreshCmd(sync.IntentCacheOnly, true))
	}
	return m, nil
}

// ── validators ───────────────────────────────────────────────────────────────

func validateRequired(field string) func(string) error {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateDate(value string) error {
	_, err := domain.ParseDate(value)
	return err
}

func validateDateList(value string) error {
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, err := domain.ParseDate(part); err != nil {
			return err
		}
	}
	return nil
}

func validatePositiveFloat(value string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || f <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

func validateNonNegativeInt(value string) error {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return fmt.Errorf("enter a whole number")
	}
	return nil
}

func parseDateList(value string) []string {
	var days []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, err := domain.ParseDate(part); err == nil {
			days = append(days, part)
		}
	}
	return days
}
