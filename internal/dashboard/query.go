package dashboard

import (
	"slices"
	"strings"

	"github.com/nhle/project-dashboard/internal/model"
)

const (
	// SearchLimit caps Search results.
	SearchLimit = 10

	// UnknownProject labels activity whose project no longer exists.
	UnknownProject = "Unknown Project"
)

// ProjectFilter narrows the project list. Empty fields match everything.
type ProjectFilter struct {
	// Query is matched case-insensitively against the name, the
	// description and task names.
	Query  string
	Status model.ProjectStatus
	Tag    string
}

func (f ProjectFilter) match(p model.Project) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Tag != "" && !p.HasTag(f.Tag) {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return containsFold(p.Name, q) ||
		containsFold(p.Description, q) ||
		slices.ContainsFunc(p.Tasks, func(t model.Task) bool { return containsFold(t.Name, q) })
}

// Filter returns the projects matching f in insertion order.
func (s *Store) Filter(f ProjectFilter) []model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Project{}
	for _, p := range s.projects {
		if f.match(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Search returns up to SearchLimit projects whose name, description, task
// names or tags contain query. A blank query returns nothing.
func (s *Store) Search(query string) []model.Project {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Project
	for _, p := range s.projects {
		if len(out) == SearchLimit {
			break
		}
		if containsFold(p.Name, q) ||
			containsFold(p.Description, q) ||
			slices.ContainsFunc(p.Tasks, func(t model.Task) bool { return containsFold(t.Name, q) }) ||
			slices.ContainsFunc(p.Tags, func(tag string) bool { return containsFold(tag, q) }) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Tags returns every tag in use, sorted and without duplicates.
func (s *Store) Tags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tags []string
	for _, p := range s.projects {
		tags = append(tags, p.Tags...)
	}
	slices.Sort(tags)
	return slices.Compact(tags)
}

// Activity pairs a notification with the name of its project.
type Activity struct {
	model.Notification
	ProjectName string
}

// RecentActivity returns the first n notifications with their project
// names resolved. Dangling references resolve to UnknownProject.
func (s *Store) RecentActivity(n int) []Activity {
	s.mu.Lock()
	defer s.mu.Unlock()

	n = min(max(n, 0), len(s.notifications))
	names := make(map[string]string, len(s.projects))
	for _, p := range s.projects {
		names[p.ID] = p.Name
	}

	out := make([]Activity, 0, n)
	for _, nt := range s.notifications[:n] {
		name, ok := names[nt.ProjectID]
		if !ok {
			name = UnknownProject
		}
		out = append(out, Activity{Notification: nt, ProjectName: name})
	}
	return out
}

// containsFold reports whether s contains the lower-case needle q.
func containsFold(s, q string) bool {
	return strings.Contains(strings.ToLower(s), q)
}
