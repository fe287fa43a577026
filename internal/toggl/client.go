// Package toggl is a minimal client for the Toggl Track API v9, covering the
// read operations the dashboard needs.
package toggl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"toggldash/internal/domain"
)

const defaultBaseURL = "https://api.track.toggl.com/api/v9"

// Config holds the parameters for a Client.
type Config struct {
	Token   string
	BaseURL string        // empty uses the production API
	Timeout time.Duration // zero uses a 30s default
}

// Client talks to the Toggl API using basic auth ("token:api_token").
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a Client from cfg, applying defaults for unset fields.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// Workspaces fetches all workspaces visible to the token.
func (c *Client) Workspaces(ctx context.Context) ([]domain.Workspace, error) {
	var out []domain.Workspace
	if err := c.get(ctx, "/workspaces", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Projects fetches every project in a workspace.
func (c *Client) Projects(ctx context.Context, workspaceID int64) ([]domain.Project, error) {
	var out []domain.Project
	path := fmt.Sprintf("/workspaces/%d/projects", workspaceID)
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Project fetches a single project by id, used to backfill projects that are
// referenced by entries but missing from the list endpoint (e.g. archived).
func (c *Client) Project(ctx context.Context, workspaceID, projectID int64) (domain.Project, error) {
	var out domain.Project
	path := fmt.Sprintf("/workspaces/%d/projects/%d", workspaceID, projectID)
	if err := c.get(ctx, path, nil, &out); err != nil {
		return domain.Project{}, err
	}
	return out, nil
}

// Clients fetches every client in a workspace.
func (c *Client) Clients(ctx context.Context, workspaceID int64) ([]domain.Client, error) {
	var out []domain.Client
	path := fmt.Sprintf("/workspaces/%d/clients", workspaceID)
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TimeEntries fetches the token owner's time entries between two RFC 3339
// timestamps, inclusive.
func (c *Client) TimeEntries(ctx context.Context, start, end string) ([]domain.TimeEntry, error) {
	var out []domain.TimeEntry
	query := url.Values{"start_date": {start}, "end_date": {end}}
	if err := c.get(ctx, "/me/time_entries", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.cfg.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: creating request: %v", ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.Token, "api_token")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp.StatusCode); err != nil {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, resp.Body)
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrNetwork, err)
	}
	return nil
}

func classifyStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusPaymentRequired:
		return ErrPaymentRequired
	case status == http.StatusTooManyRequests:
		return ErrRateLimited
	case status >= 500:
		return fmt.Errorf("%w: status %d", ErrServer, status)
	case status < 200 || status >= 300:
		return fmt.Errorf("%w: unexpected status %d", ErrNetwork, status)
	}
	return nil
}
