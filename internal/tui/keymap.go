package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap is the dashboard key set. The rollup and picker modes reuse the
// relevant subset.
type keyMap struct {
	Refresh    key.Binding
	Today      key.Binding
	Yesterday  key.Binding
	PrevRange  key.Binding
	NextRange  key.Binding
	Rollups    key.Binding
	Week       key.Binding
	Month      key.Binding
	Year       key.Binding
	CustomDate key.Binding
	Refetch    key.Binding
	Copy       key.Binding
	Settings   key.Binding
	Workspace  key.Binding
	Back       key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Today:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Yesterday:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yesterday")),
		PrevRange:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "earlier")),
		NextRange:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "later")),
		Rollups:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "rollups")),
		Week:       key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "this week")),
		Month:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "this month")),
		Year:       key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "this year")),
		CustomDate: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "pick dates")),
		Refetch:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "re-fetch span")),
		Copy:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		Settings:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
		Workspace:  key.NewBinding(key.WithKeys("W"), key.WithHelp("W", "workspace")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) dashboardHelp() []key.Binding {
	return []key.Binding{
		k.Refresh, k.Today, k.Yesterday, k.PrevRange, k.NextRange,
		k.Rollups, k.CustomDate, k.Refetch, k.Copy, k.Settings, k.Quit,
	}
}

func (k keyMap) rollupHelp() []key.Binding {
	return []key.Binding{k.Week, k.Month, k.Year, k.Copy, k.Back, k.Quit}
}
