package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"toggldash/internal/domain"
)

// cacheVersion is the cache file schema version. A file carrying any other
// version is treated as absent, not repaired.
const cacheVersion = 1

// Cached wraps a value with the timestamp it was fetched from the API.
type Cached[T any] struct {
	Data      T      `json:"data"`
	FetchedAt string `json:"fetched_at"`
}

// FetchedTime parses the fetch timestamp; ok is false when it does not parse.
func (c Cached[T]) FetchedTime() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, c.FetchedAt)
	if err != nil {
		return time.Time{}, false
	}
	return t.Local(), true
}

// cacheFile is the on-disk layout. Time entries are keyed by
// "workspaceID|startRFC3339|endRFC3339"; that encoding exists only at this
// boundary and is parsed into entryKey immediately after reading.
type cacheFile struct {
	Version     int                                   `json:"version"`
	TokenHash   string                                `json:"token_hash"`
	Workspaces  *Cached[[]domain.Workspace]           `json:"workspaces,omitempty"`
	Projects    map[int64]Cached[[]domain.Project]    `json:"projects"`
	Clients     map[int64]Cached[[]domain.Client]     `json:"clients"`
	TimeEntries map[string]Cached[[]domain.TimeEntry] `json:"time_entries"`
}

func newCacheFile(tokenHash string) *cacheFile {
	return &cacheFile{
		Version:     cacheVersion,
		TokenHash:   tokenHash,
		Projects:    make(map[int64]Cached[[]domain.Project]),
		Clients:     make(map[int64]Cached[[]domain.Client]),
		TimeEntries: make(map[string]Cached[[]domain.TimeEntry]),
	}
}

// entryKey is the structured form of a time-entry cache key.
type entryKey struct {
	workspaceID int64
	start       time.Time // calendar day
	end         time.Time // calendar day
}

func encodeEntryKey(workspaceID int64, start, end string) string {
	return fmt.Sprintf("%d|%s|%s", workspaceID, start, end)
}

func parseEntryKey(key string) (entryKey, bool) {
	parts := strings.SplitN(key, "|", 3)
	if len(parts) != 3 {
		return entryKey{}, false
	}
	workspaceID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return entryKey{}, false
	}
	start, err := time.Parse(time.RFC3339, parts[1])
	if err != nil {
		return entryKey{}, false
	}
	end, err := time.Parse(time.RFC3339, parts[2])
	if err != nil {
		return entryKey{}, false
	}
	return entryKey{
		workspaceID: workspaceID,
		start:       domain.Midnight(start.Local()),
		end:         domain.Midnight(end.Local()),
	}, true
}

// Cache is the persisted resource cache for one credential. All writes
// replace the stored value for their key wholesale and persist immediately;
// a failed disk write never loses the in-memory state.
type Cache struct {
	path      string
	tokenHash string
	file      *cacheFile
	now       func() time.Time
}

// OpenCache loads the cache file from dir if its schema version and token
// hash match; otherwise it starts empty.
func OpenCache(dir, tokenHash string) *Cache {
	c := &Cache{
		path:      filepath.Join(dir, cacheFileName),
		tokenHash: tokenHash,
		now:       time.Now,
	}

	raw, err := os.ReadFile(c.path)
	if err != nil {
		return c
	}
	var file cacheFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return c
	}
	if file.Version != cacheVersion || file.TokenHash != tokenHash {
		return c
	}
	if file.Projects == nil {
		file.Projects = make(map[int64]Cached[[]domain.Project])
	}
	if file.Clients == nil {
		file.Clients = make(map[int64]Cached[[]domain.Client])
	}
	if file.TimeEntries == nil {
		file.TimeEntries = make(map[string]Cached[[]domain.TimeEntry])
	}
	c.file = &file
	return c
}

// Reset discards all cached data and deletes the cache file. Used when the
// credential is rejected: stale data under a revoked token is not trusted.
func (c *Cache) Reset() {
	c.file = nil
	os.Remove(c.path)
}

// Workspaces returns the cached workspace list, if any.
func (c *Cache) Workspaces() (Cached[[]domain.Workspace], bool) {
	if c.file == nil || c.file.Workspaces == nil {
		return Cached[[]domain.Workspace]{}, false
	}
	return *c.file.Workspaces, true
}

// Projects returns the cached project list for a workspace, if any.
func (c *Cache) Projects(workspaceID int64) (Cached[[]domain.Project], bool) {
	if c.file == nil {
		return Cached[[]domain.Project]{}, false
	}
	cached, ok := c.file.Projects[workspaceID]
	return cached, ok
}

// Clients returns the cached client list for a workspace, if any.
func (c *Cache) Clients(workspaceID int64) (Cached[[]domain.Client], bool) {
	if c.file == nil {
		return Cached[[]domain.Client]{}, false
	}
	cached, ok := c.file.Clients[workspaceID]
	return cached, ok
}

// TimeEntries returns the exact cached range, if stored verbatim.
func (c *Cache) TimeEntries(workspaceID int64, r domain.DateRange) (Cached[[]domain.TimeEntry], bool) {
	if c.file == nil {
		return Cached[[]domain.TimeEntry]{}, false
	}
	start, end := r.RFC3339()
	cached, ok := c.file.TimeEntries[encodeEntryKey(workspaceID, start, end)]
	return cached, ok
}

// PutWorkspaces replaces the cached workspace list.
func (c *Cache) PutWorkspaces(workspaces []domain.Workspace) {
	file := c.ensureFile()
	file.Workspaces = &Cached[[]domain.Workspace]{Data: workspaces, FetchedAt: c.nowRFC3339()}
	c.persist()
}

// PutProjects replaces the cached project list for a workspace.
func (c *Cache) PutProjects(workspaceID int64, projects []domain.Project) {
	file := c.ensureFile()
	file.Projects[workspaceID] = Cached[[]domain.Project]{Data: projects, FetchedAt: c.nowRFC3339()}
	c.persist()
}

// PutClients replaces the cached client list for a workspace.
func (c *Cache) PutClients(workspaceID int64, clients []domain.Client) {
	file := c.ensureFile()
	file.Clients[workspaceID] = Cached[[]domain.Client]{Data: clients, FetchedAt: c.nowRFC3339()}
	c.persist()
}

// PutTimeEntries replaces the cached entries for an exact range key. No
// partial merge happens on write; merging is a read-side concern.
func (c *Cache) PutTimeEntries(workspaceID int64, r domain.DateRange, entries []domain.TimeEntry) {
	file := c.ensureFile()
	start, end := r.RFC3339()
	file.TimeEntries[encodeEntryKey(workspaceID, start, end)] = Cached[[]domain.TimeEntry]{
		Data:      entries,
		FetchedAt: c.nowRFC3339(),
	}
	c.persist()
}

// TimeEntriesInRange assembles entries for [start, end] (calendar days) from
// every cached range that intersects it. Entries outside the requested days
// are filtered out and duplicates fetched under overlapping ranges are
// collapsed by id. The synthesized FetchedAt is the most recent parseable
// timestamp among the contributing ranges; when none parses, the raw stored
// string of the first contributor; when nothing contributes, the current time.
func (c *Cache) TimeEntriesInRange(workspaceID int64, start, end time.Time) (Cached[[]domain.TimeEntry], bool) {
	if c.file == nil {
		return Cached[[]domain.TimeEntry]{}, false
	}
	start = domain.Midnight(start)
	end = domain.Midnight(end)

	var (
		merged     []domain.TimeEntry
		seen       = make(map[int64]bool)
		hit        bool
		latest     time.Time
		latestSet  bool
		rawStamp   string
		rawStamped bool
	)
	for rawKey, cached := range c.file.TimeEntries {
		key, ok := parseEntryKey(rawKey)
		if !ok || key.workspaceID != workspaceID {
			continue
		}
		if key.end.Before(start) || key.start.After(end) {
			continue
		}
		hit = true
		if t, ok := cached.FetchedTime(); ok {
			if !latestSet || t.After(latest) {
				latest = t
				latestSet = true
			}
		} else if !rawStamped {
			rawStamp = cached.FetchedAt
			rawStamped = true
		}
		for _, entry := range cached.Data {
			day := entry.LocalDate()
			if day.Before(start) || day.After(end) {
				continue
			}
			if seen[entry.ID] {
				continue
			}
			seen[entry.ID] = true
			merged = append(merged, entry)
		}
	}
	if !hit {
		return Cached[[]domain.TimeEntry]{}, false
	}

	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].Start.Equal(merged[j].Start) {
			return merged[i].Start.Before(merged[j].Start)
		}
		return merged[i].ID < merged[j].ID
	})

	fetchedAt := c.now().Format(time.RFC3339)
	if latestSet {
		fetchedAt = latest.Format(time.RFC3339)
	} else if rawStamped {
		fetchedAt = rawStamp
	}
	return Cached[[]domain.TimeEntry]{Data: merged, FetchedAt: fetchedAt}, true
}

// CoveredDays reports which calendar days in [start, end] fall inside at
// least one cached range for the workspace. Days are keyed by their
// yyyy-mm-dd form.
func (c *Cache) CoveredDays(workspaceID int64, start, end time.Time) map[string]bool {
	covered := make(map[string]bool)
	if c.file == nil {
		return covered
	}
	start = domain.Midnight(start)
	end = domain.Midnight(end)
	for rawKey := range c.file.TimeEntries {
		key, ok := parseEntryKey(rawKey)
		if !ok || key.workspaceID != workspaceID {
			continue
		}
		from := key.start
		if from.Before(start) {
			from = start
		}
		to := key.end
		if to.After(end) {
			to = end
		}
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			covered[d.Format(domain.DayFormat)] = true
		}
	}
	return covered
}

func (c *Cache) ensureFile() *cacheFile {
	if c.file == nil {
		c.file = newCacheFile(c.tokenHash)
	}
	return c.file
}

func (c *Cache) nowRFC3339() string {
	return c.now().Format(time.RFC3339)
}

// persist writes the cache file best-effort. The in-memory state is already
// updated; a transient disk failure only costs re-fetching later.
func (c *Cache) persist() {
	if c.file == nil {
		return
	}
	data, err := json.MarshalIndent(c.file, "", "  ")
	if err != nil {
		return
	}
	writeJSONFile(c.path, data)
}
