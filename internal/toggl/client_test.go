package toggl

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toggldash/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{Token: "secret-token", BaseURL: srv.URL})
}

func TestClient_Workspaces_SendsBasicAuth(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/workspaces", r.URL.Path)

		auth := r.Header.Get("Authorization")
		require.True(t, strings.HasPrefix(auth, "Basic "))
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(auth, "Basic "))
		require.NoError(t, err)
		assert.Equal(t, "secret-token:api_token", string(decoded))

		json.NewEncoder(w).Encode([]domain.Workspace{{ID: 1, Name: "Personal"}})
	})

	workspaces, err := client.Workspaces(context.Background())
	require.NoError(t, err)
	require.Len(t, workspaces, 1)
	assert.Equal(t, "Personal", workspaces[0].Name)
}

func TestClient_TimeEntries_QueryParams(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/time_entries", r.URL.Path)
		assert.Equal(t, "2026-02-01T00:00:00+01:00", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2026-02-02T23:59:59+01:00", r.URL.Query().Get("end_date"))
		json.NewEncoder(w).Encode([]domain.TimeEntry{})
	})

	_, err := client.TimeEntries(context.Background(), "2026-02-01T00:00:00+01:00", "2026-02-02T23:59:59+01:00")
	require.NoError(t, err)
}

func TestClient_Projects_DecodesClientFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/workspaces/7/projects", r.URL.Path)
		w.Write([]byte(`[{"id":1,"name":"Site","client_id":42},{"id":2,"name":"App","client_id":42,"client_name":"Acme"}]`))
	})

	projects, err := client.Projects(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	require.NotNil(t, projects[0].ClientID)
	assert.Equal(t, int64(42), *projects[0].ClientID)
	assert.Nil(t, projects[0].ClientName)
	require.NotNil(t, projects[1].ClientName)
	assert.Equal(t, "Acme", *projects[1].ClientName)
}

func TestClient_Project_Path(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/workspaces/7/projects/31", r.URL.Path)
		json.NewEncoder(w).Encode(domain.Project{ID: 31, Name: "Archived"})
	})

	project, err := client.Project(context.Background(), 7, 31)
	require.NoError(t, err)
	assert.Equal(t, "Archived", project.Name)
}

func TestClient_StatusClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ErrUnauthorized},
		{"payment required", http.StatusPaymentRequired, ErrPaymentRequired},
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
		{"server error", http.StatusInternalServerError, ErrServer},
		{"bad gateway", http.StatusBadGateway, ErrServer},
		{"unexpected redirect", http.StatusNotFound, ErrNetwork},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			})
			_, err := client.Workspaces(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestClient_MalformedBodyIsNetworkError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	})
	_, err := client.Workspaces(context.Background())
	assert.True(t, errors.Is(err, ErrNetwork))
}

func TestClient_ConnectionRefusedIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse immediately

	client := NewClient(Config{Token: "x", BaseURL: srv.URL})
	_, err := client.Workspaces(context.Background())
	assert.True(t, errors.Is(err, ErrNetwork))
}
