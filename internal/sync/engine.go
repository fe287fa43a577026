package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"toggldash/internal/domain"
	"toggldash/internal/grouping"
	"toggldash/internal/quota"
	"toggldash/internal/rollup"
	"toggldash/internal/rounding"
	"toggldash/internal/store"
	"toggldash/internal/toggl"
)

// Intent states whether a refresh may spend API calls.
type Intent string

const (
	// IntentCacheOnly serves everything from cache; silent startups and
	// view navigation use this.
	IntentCacheOnly Intent = "cache-only"
	// IntentForceAPI prefers live data, budget permitting; the explicit
	// refresh key uses this.
	IntentForceAPI Intent = "force-api"
)

// Request describes one refresh cycle.
type Request struct {
	Intent      Intent
	Range       domain.DateRange
	WorkspaceID int64 // zero means not chosen yet
	Rounding    *rounding.Config
	WeekStart   rollup.WeekStart
}

// Outcome is everything a view needs after a successful refresh.
type Outcome struct {
	Workspaces  []domain.Workspace
	Workspace   domain.Workspace
	Projects    []domain.Project
	ClientNames map[int64]string
	Entries     []domain.TimeEntry
	Grouped     []grouping.GroupedProject
	Rollups     rollup.Set
	LastRefresh time.Time
	FromCache   bool   // true when any resource fell back to cache
	Status      string // human-readable note when FromCache is true
}

// Engine is the refresh orchestrator. It is not safe for concurrent use;
// the UI runs one refresh at a time.
type Engine struct {
	dir    string
	cache  *store.Cache
	ledger *quota.Ledger
	api    DataSource
	now    func() time.Time
}

// NewEngine wires an orchestrator over its collaborators. A nil clock uses
// time.Now.
func NewEngine(dir string, cache *store.Cache, ledger *quota.Ledger, api DataSource, clock func() time.Time) *Engine {
	if clock == nil {
		clock = time.Now
	}
	return &Engine{dir: dir, cache: cache, ledger: ledger, api: api, now: clock}
}

// Remaining exposes today's unspent call budget.
func (e *Engine) Remaining() int { return e.ledger.Remaining() }

// CachedDays counts the days of a span already covered by cached ranges, so
// a re-fetch prompt can say how much of the span is new before budget is
// spent.
func (e *Engine) CachedDays(workspaceID int64, span domain.DateRange) int {
	return len(e.cache.CoveredDays(workspaceID, span.StartDate(), span.EndDate()))
}

// Refresh runs one full cycle: workspaces, workspace selection, projects,
// client names, time entries, orphaned-project backfill, then grouping and
// rollups. It returns ErrLoginRequired when the credential is rejected,
// a *WorkspaceChoiceError when a selection is needed, and a *NoDataError
// when neither API nor cache can supply a resource.
func (e *Engine) Refresh(ctx context.Context, req Request) (*Outcome, error) {
	cy := &cycle{allowAPI: req.Intent == IntentForceAPI}

	workspaces, _, err := resolve(e, ctx, cy, "workspaces",
		e.cache.Workspaces,
		e.api.Workspaces,
		e.cache.PutWorkspaces,
	)
	if err != nil {
		return nil, err
	}
	if len(workspaces) == 0 {
		return nil, ErrNoWorkspaces
	}

	workspace, err := selectWorkspace(workspaces, req.WorkspaceID)
	if err != nil {
		return nil, err
	}

	projects, _, err := resolve(e, ctx, cy, "projects",
		func() (store.Cached[[]domain.Project], bool) { return e.cache.Projects(workspace.ID) },
		func(ctx context.Context) ([]domain.Project, error) { return e.api.Projects(ctx, workspace.ID) },
		func(data []domain.Project) { e.cache.PutProjects(workspace.ID, data) },
	)
	if err != nil {
		return nil, err
	}

	clientNames, err := e.resolveClientNames(ctx, cy, workspace.ID, projects)
	if err != nil {
		return nil, err
	}

	start, end := req.Range.RFC3339()
	entries, entriesProv, err := resolve(e, ctx, cy, "time entries",
		func() (store.Cached[[]domain.TimeEntry], bool) {
			return e.cache.TimeEntriesInRange(workspace.ID, req.Range.StartDate(), req.Range.EndDate())
		},
		func(ctx context.Context) ([]domain.TimeEntry, error) { return e.api.TimeEntries(ctx, start, end) },
		func(data []domain.TimeEntry) { e.cache.PutTimeEntries(workspace.ID, req.Range, data) },
	)
	if err != nil {
		return nil, err
	}

	if cy.allowAPI {
		projects, clientNames, err = e.backfillOrphans(ctx, cy, workspace.ID, projects, clientNames, entries)
		if err != nil {
			return nil, err
		}
	}

	stopped := domain.StoppedEntries(entries)
	outcome := &Outcome{
		Workspaces:  workspaces,
		Workspace:   workspace,
		Projects:    projects,
		ClientNames: clientNames,
		Entries:     entries,
		Grouped:     grouping.Group(stopped, projects, clientNames, req.Rounding),
		Rollups:     rollup.Build(stopped, req.Range.StartDate(), req.Range.EndDate(), req.Rounding, req.WeekStart),
	}
	outcome.LastRefresh = lastRefresh(e.now(), cy, entriesProv)
	outcome.FromCache = len(cy.fallbacks) > 0
	outcome.Status = statusLine(cy.fallbacks)
	return outcome, nil
}

// selectWorkspace picks the requested workspace, auto-selects a lone one, and
// suspends to a choice otherwise.
func selectWorkspace(workspaces []domain.Workspace, requested int64) (domain.Workspace, error) {
	if requested != 0 {
		for _, w := range workspaces {
			if w.ID == requested {
				return w, nil
			}
		}
	}
	if len(workspaces) == 1 {
		return workspaces[0], nil
	}
	return domain.Workspace{}, &WorkspaceChoiceError{Workspaces: workspaces}
}

// resolveClientNames builds the client id to name map. Names denormalized on
// the projects win; the client list is only consulted for ids that still lack
// one, and its failure never blocks the refresh.
func (e *Engine) resolveClientNames(ctx context.Context, cy *cycle, workspaceID int64, projects []domain.Project) (map[int64]string, error) {
	names := make(map[int64]string)
	needLookup := false
	for _, p := range projects {
		if p.ClientID == nil {
			continue
		}
		if p.ClientName != nil {
			names[*p.ClientID] = *p.ClientName
		} else if _, ok := names[*p.ClientID]; !ok {
			needLookup = true
		}
	}
	if !needLookup {
		return names, nil
	}

	clients, _, err := resolve(e, ctx, cy, "clients",
		func() (store.Cached[[]domain.Client], bool) { return e.cache.Clients(workspaceID) },
		func(ctx context.Context) ([]domain.Client, error) { return e.api.Clients(ctx, workspaceID) },
		func(data []domain.Client) { e.cache.PutClients(workspaceID, data) },
	)
	if err != nil {
		if errors.Is(err, ErrLoginRequired) {
			return nil, err
		}
		return names, nil
	}
	for _, c := range clients {
		if _, ok := names[c.ID]; !ok {
			names[c.ID] = c.Name
		}
	}
	return names, nil
}

// backfillOrphans repairs project ids that entries reference but the project
// list lacks (archived projects, mostly). It refetches the list once, then
// fetches stragglers individually, ignoring per-id failures.
func (e *Engine) backfillOrphans(ctx context.Context, cy *cycle, workspaceID int64, projects []domain.Project, clientNames map[int64]string, entries []domain.TimeEntry) ([]domain.Project, map[int64]string, error) {
	known := make(map[int64]bool, len(projects))
	for _, p := range projects {
		known[p.ID] = true
	}
	missing := make(map[int64]bool)
	for _, entry := range entries {
		if entry.ProjectID != nil && !known[*entry.ProjectID] {
			missing[*entry.ProjectID] = true
		}
	}
	if len(missing) == 0 {
		return projects, clientNames, nil
	}

	changed := false
	if e.ledger.Allow() {
		e.ledger.Consume()
		if fresh, err := e.api.Projects(ctx, workspaceID); err == nil {
			projects = fresh
			changed = true
			known = make(map[int64]bool, len(projects))
			for _, p := range projects {
				known[p.ID] = true
			}
			for id := range missing {
				if known[id] {
					delete(missing, id)
				}
			}
		} else if errors.Is(err, toggl.ErrUnauthorized) {
			e.handleUnauthorized()
			return nil, nil, ErrLoginRequired
		}
	}

	for id := range missing {
		if !e.ledger.Allow() {
			break
		}
		e.ledger.Consume()
		project, err := e.api.Project(ctx, workspaceID, id)
		if err != nil {
			if errors.Is(err, toggl.ErrUnauthorized) {
				e.handleUnauthorized()
				return nil, nil, ErrLoginRequired
			}
			continue
		}
		projects = append(projects, project)
		changed = true
	}

	if changed {
		e.cache.PutProjects(workspaceID, projects)
		fresh, err := e.resolveClientNames(ctx, cy, workspaceID, projects)
		if err != nil {
			return nil, nil, err
		}
		clientNames = fresh
	}
	return projects, clientNames, nil
}

// handleUnauthorized is the only path that discards cached data: a rejected
// token means everything fetched under it is suspect.
func (e *Engine) handleUnauthorized() {
	e.cache.Reset()
	store.ClearToken(e.dir)
}

// lastRefresh is now only when the whole cycle ran live; otherwise the most
// relevant cache timestamp, preferring the time entries' own.
func lastRefresh(now time.Time, cy *cycle, entriesProv Provenance) time.Time {
	if len(cy.fallbacks) == 0 {
		return now
	}
	if entriesProv.FromCache && !entriesProv.FetchedAt.IsZero() {
		return entriesProv.FetchedAt
	}
	var latest time.Time
	for _, p := range cy.fallbacks {
		if p.FetchedAt.After(latest) {
			latest = p.FetchedAt
		}
	}
	return latest
}

// statusLine summarizes why cached data is on screen, worst reason first.
func statusLine(fallbacks []Provenance) string {
	if len(fallbacks) == 0 {
		return ""
	}
	var haveQuota, haveAPIError bool
	for _, p := range fallbacks {
		switch p.Reason {
		case ReasonQuota:
			haveQuota = true
		case ReasonAPIError:
			haveAPIError = true
		}
	}
	switch {
	case haveAPIError:
		return "showing cached data: Toggl could not be reached"
	case haveQuota:
		return fmt.Sprintf("showing cached data: daily call budget (%d) spent", quota.CallLimit)
	default:
		return "showing cached data"
	}
}
