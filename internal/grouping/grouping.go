// Package grouping folds raw time entries into per-project line totals.
package grouping

import (
	"sort"

	"toggldash/internal/domain"
	"toggldash/internal/rounding"
)

const (
	noProjectName = "No Project"
	noDescription = "No description"
)

// GroupedEntry is one displayed line: a description and its rounded total.
type GroupedEntry struct {
	Description string
	Seconds     int64
}

// Hours returns the line total in decimal hours.
func (e GroupedEntry) Hours() float64 { return float64(e.Seconds) / 3600 }

// GroupedProject aggregates the lines of one project. Seconds is always the
// sum of the (already rounded) line totals, so the displayed project total
// matches the sum of its displayed lines.
type GroupedProject struct {
	Name    string
	Client  string
	Seconds int64
	Entries []GroupedEntry
}

// Hours returns the project total in decimal hours.
func (p GroupedProject) Hours() float64 { return float64(p.Seconds) / 3600 }

// TotalSeconds sums all project totals.
func TotalSeconds(groups []GroupedProject) int64 {
	var total int64
	for _, g := range groups {
		total += g.Seconds
	}
	return total
}

// Group buckets entries by (project, description), sums raw seconds per
// bucket, then rounds each bucket total once. Rounding is applied at the
// finest displayed granularity; project totals are sums of rounded lines.
//
// Projects sort by client name ascending (projects without a client last),
// then total descending, then project name ascending. Lines sort by total
// descending, then description ascending.
func Group(
	entries []domain.TimeEntry,
	projects []domain.Project,
	clientNames map[int64]string,
	cfg *rounding.Config,
) []GroupedProject {
	type projectInfo struct {
		name   string
		client string
	}

	infos := make(map[int64]projectInfo, len(projects))
	for _, p := range projects {
		info := projectInfo{name: p.Name}
		if p.ClientID != nil {
			if p.ClientName != nil {
				info.client = *p.ClientName
			} else if name, ok := clientNames[*p.ClientID]; ok {
				info.client = name
			}
		}
		infos[p.ID] = info
	}

	// Raw sums keyed by project then description; key 0 with hasProject=false
	// is the synthetic "No Project" bucket.
	type bucketKey struct {
		projectID  int64
		hasProject bool
	}
	sums := make(map[bucketKey]map[string]int64)
	for _, entry := range entries {
		key := bucketKey{}
		if entry.ProjectID != nil {
			key = bucketKey{projectID: *entry.ProjectID, hasProject: true}
		}
		description := entry.Description
		if description == "" {
			description = noDescription
		}
		if sums[key] == nil {
			sums[key] = make(map[string]int64)
		}
		sums[key][description] += entry.Duration
	}

	groups := make([]GroupedProject, 0, len(sums))
	for key, lines := range sums {
		group := GroupedProject{Name: noProjectName}
		if key.hasProject {
			if info, ok := infos[key.projectID]; ok {
				group.Name = info.name
				group.Client = info.client
			} else {
				group.Name = "Unknown Project"
			}
		}

		for description, raw := range lines {
			group.Entries = append(group.Entries, GroupedEntry{
				Description: description,
				Seconds:     rounding.Apply(raw, cfg),
			})
		}
		sort.Slice(group.Entries, func(i, j int) bool {
			if group.Entries[i].Seconds != group.Entries[j].Seconds {
				return group.Entries[i].Seconds > group.Entries[j].Seconds
			}
			return group.Entries[i].Description < group.Entries[j].Description
		})

		for _, line := range group.Entries {
			group.Seconds += line.Seconds
		}
		groups = append(groups, group)
	}

	sort.Slice(groups, func(i, j int) bool {
		left, right := groups[i], groups[j]
		if (left.Client == "") != (right.Client == "") {
			return left.Client != ""
		}
		if left.Client != right.Client {
			return left.Client < right.Client
		}
		if left.Seconds != right.Seconds {
			return left.Seconds > right.Seconds
		}
		return left.Name < right.Name
	})

	return groups
}
