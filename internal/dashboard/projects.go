package dashboard

import (
	"context"
	"fmt"

	"github.com/nhle/project-dashboard/internal/model"
)

// ProjectInput holds the caller-supplied fields of a new project.
type ProjectInput struct {
	Name        string
	Status      model.ProjectStatus
	Description string
	Tags        []string
	Tasks       []model.Task
	Progress    int

	// Owner defaults to the signed-in user's name.
	Owner string
}

// ProjectPatch is a partial project update; nil fields are left as they
// are.
type ProjectPatch struct {
	Name        *string
	Status      *model.ProjectStatus
	Description *string
	Tags        *[]string
	Tasks       *[]model.Task
	Progress    *int
	Owner       *string
}

// AddProject appends a new project, bumps the analytics counters it
// affects and emits a "created" notification. An empty status means
// planned.
//
// Besides TotalProjects and TotalTasks, the counter for the new project's
// status (completed, on-hold or in-progress) is incremented too, so the
// analytics after an add equal a full recompute. Bumping only the two
// totals would leave the status counts stale until the next status change.
func (s *Store) AddProject(ctx context.Context, in ProjectInput) (model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return model.Project{}, ErrNoUser
	}
	if in.Status == "" {
		in.Status = model.StatusPlanned
	}
	if !in.Status.Valid() {
		return model.Project{}, fmt.Errorf("%w: %q", ErrInvalidStatus, in.Status)
	}
	if in.Owner == "" {
		in.Owner = s.user.Name
	}

	now := s.clock()
	p := model.Project{
		ID:          s.seq.Scoped(s.user.ID, "project"),
		UserID:      s.user.ID,
		Name:        in.Name,
		Status:      in.Status,
		Description: in.Description,
		Tags:        append([]string{}, in.Tags...),
		Tasks:       append([]model.Task{}, in.Tasks...),
		Progress:    in.Progress,
		CreatedAt:   now,
		UpdatedAt:   now,
		Owner:       in.Owner,
	}
	p.NormalizeProgress()

	s.projects = append(s.projects, p)
	s.saveProjects(ctx)

	s.analytics.TotalProjects++
	s.analytics.TotalTasks += len(p.Tasks)
	switch p.Status {
	case model.StatusCompleted:
		s.analytics.CompletedProjects++
	case model.StatusOnHold:
		s.analytics.OnHoldProjects++
	case model.StatusInProgress:
		s.analytics.InProgressProjects++
	}
	s.saveAnalytics(ctx)

	s.addNotification(ctx, NotificationInput{
		Type:      model.NotificationCreated,
		Title:     "Project Created",
		Message:   p.Name + " has been created",
		ProjectID: p.ID,
	})

	s.log.Info().Str("project_id", p.ID).Msg("project created")
	return p.Clone(), nil
}

// UpdateProject applies patch to the project with the given id. A status
// change recomputes analytics from the whole collection and emits a
// notification named after the project as it was before the update.
func (s *Store) UpdateProject(ctx context.Context, id string, patch ProjectPatch) (model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return model.Project{}, ErrNoUser
	}
	i := s.indexOf(id)
	if i < 0 {
		return model.Project{}, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return model.Project{}, fmt.Errorf("%w: %q", ErrInvalidStatus, *patch.Status)
	}

	before := s.projects[i]
	p := before.Clone()
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Tags != nil {
		p.Tags = append([]string{}, (*patch.Tags)...)
	}
	if patch.Tasks != nil {
		p.Tasks = append([]model.Task{}, (*patch.Tasks)...)
	}
	if patch.Progress != nil {
		p.Progress = *patch.Progress
	}
	if patch.Owner != nil {
		p.Owner = *patch.Owner
	}
	p.UpdatedAt = s.clock()
	p.NormalizeProgress()

	s.projects[i] = p
	s.saveProjects(ctx)

	if patch.Status != nil {
		s.recomputeAnalytics(ctx)
		s.addNotification(ctx, NotificationInput{
			Type:      model.NotificationTypeFor(p.Status),
			Title:     "Project Updated",
			Message:   fmt.Sprintf("%s status changed to %s", before.Name, p.Status),
			ProjectID: p.ID,
		})
	}

	return p.Clone(), nil
}

// DeleteProject removes the project with the given id and recomputes
// analytics. Notifications referring to it are kept.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return ErrNoUser
	}
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}

	s.projects = append(s.projects[:i:i], s.projects[i+1:]...)
	s.saveProjects(ctx)
	s.recomputeAnalytics(ctx)

	s.log.Info().Str("project_id", id).Msg("project deleted")
	return nil
}

// Projects returns a copy of the collection in insertion order.
func (s *Store) Projects() []model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneProjects(s.projects)
}

// Project returns the project with the given id.
func (s *Store) Project(id string) (model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return model.Project{}, ErrNoUser
	}
	i := s.indexOf(id)
	if i < 0 {
		return model.Project{}, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	return s.projects[i].Clone(), nil
}

func cloneProjects(in []model.Project) []model.Project {
	out := make([]model.Project, 0, len(in))
	for _, p := range in {
		out = append(out, p.Clone())
	}
	return out
}
