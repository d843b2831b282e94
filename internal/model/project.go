package model

import "time"

// ProjectStatus is the lifecycle stage of a project.
type ProjectStatus string

const (
	StatusPlanned    ProjectStatus = "planned"
	StatusInProgress ProjectStatus = "in-progress"
	StatusOnHold     ProjectStatus = "on-hold"
	StatusCompleted  ProjectStatus = "completed"
)

// ProjectStatuses lists every valid status in display order.
var ProjectStatuses = []ProjectStatus{
	StatusPlanned,
	StatusInProgress,
	StatusOnHold,
	StatusCompleted,
}

// Valid reports whether s is one of the known statuses.
func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusOnHold, StatusCompleted:
		return true
	}
	return false
}

// Label returns the human-readable form of the status.
func (s ProjectStatus) Label() string {
	switch s {
	case StatusPlanned:
		return "Planned"
	case StatusInProgress:
		return "In Progress"
	case StatusOnHold:
		return "On Hold"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// Project is a unit of work owned by a single user.
type Project struct {
	ID          string        `json:"id"`
	UserID      string        `json:"userId"`
	Name        string        `json:"name"`
	Status      ProjectStatus `json:"status"`
	Description string        `json:"description"`
	Tags        []string      `json:"tags"`
	Tasks       []Task        `json:"tasks"`
	Progress    int           `json:"progress"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	Owner       string        `json:"owner"`
}

// NormalizeProgress forces progress to 100 for completed projects and 0 for
// planned ones. Any other status keeps its value, clamped into [0, 100].
func (p *Project) NormalizeProgress() {
	switch p.Status {
	case StatusCompleted:
		p.Progress = 100
	case StatusPlanned:
		p.Progress = 0
	default:
		p.Progress = min(max(p.Progress, 0), 100)
	}
}

// CompletedTasks returns the number of finished tasks.
func (p Project) CompletedTasks() int {
	n := 0
	for _, t := range p.Tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// HasTag reports whether the project carries tag (exact match).
func (p Project) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers cannot alias the slices.
func (p Project) Clone() Project {
	out := p
	if p.Tags != nil {
		out.Tags = append([]string(nil), p.Tags...)
	}
	if p.Tasks != nil {
		out.Tasks = append([]Task(nil), p.Tasks...)
	}
	return out
}
