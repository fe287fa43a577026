package sync

import (
	"errors"
	"fmt"

	"toggldash/internal/domain"
)

// ErrLoginRequired signals that the stored credential was rejected (or never
// existed); the caller must collect a new token before retrying.
var ErrLoginRequired = errors.New("login required")

// ErrNoWorkspaces signals a valid token with zero visible workspaces.
var ErrNoWorkspaces = errors.New("no workspaces available for this account")

// WorkspaceChoiceError suspends a refresh when more than one workspace exists
// and none has been chosen yet. The caller presents the list and retries with
// a selection.
type WorkspaceChoiceError struct {
	Workspaces []domain.Workspace
}

func (e *WorkspaceChoiceError) Error() string {
	return fmt.Sprintf("workspace selection required (%d available)", len(e.Workspaces))
}

// NoDataError reports that a resource was neither fetched nor cached. The
// message distinguishes an empty budget from a cycle that never intended to
// call the API.
type NoDataError struct {
	Resource       string
	QuotaExhausted bool
}

func (e *NoDataError) Error() string {
	if e.QuotaExhausted {
		return fmt.Sprintf("no cached %s and the daily call budget is spent", e.Resource)
	}
	return fmt.Sprintf("no cached %s, press refresh to fetch", e.Resource)
}
