// Package sync orchestrates refresh cycles: it decides, per resource,
// whether to hit the Toggl API or serve from cache, enforces the daily call
// budget, and assembles the grouped totals and rollups a view needs.
package sync

import (
	"context"

	"toggldash/internal/domain"
)

// DataSource is the remote API surface the orchestrator consumes.
// *toggl.Client satisfies it; tests substitute scripted fakes.
type DataSource interface {
	Workspaces(ctx context.Context) ([]domain.Workspace, error)
	Projects(ctx context.Context, workspaceID int64) ([]domain.Project, error)
	Project(ctx context.Context, workspaceID, projectID int64) (domain.Project, error)
	Clients(ctx context.Context, workspaceID int64) ([]domain.Client, error)
	TimeEntries(ctx context.Context, start, end string) ([]domain.TimeEntry, error)
}
