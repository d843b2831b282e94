package dashboard

import (
	"context"

	"github.com/nhle/project-dashboard/internal/model"
)

// AnalyticsPatch overrides individual analytics fields. Nil fields are
// left as they are.
type AnalyticsPatch struct {
	TotalProjects      *int
	CompletedProjects  *int
	OnHoldProjects     *int
	InProgressProjects *int
	Earnings           *int
	TotalTasks         *int
}

// UpdateAnalytics applies patch verbatim. The figures are not checked
// against the project collection; the next status change or deletion
// recomputes the counts.
func (s *Store) UpdateAnalytics(ctx context.Context, patch AnalyticsPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return ErrNoUser
	}

	a := &s.analytics
	set := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	set(&a.TotalProjects, patch.TotalProjects)
	set(&a.CompletedProjects, patch.CompletedProjects)
	set(&a.OnHoldProjects, patch.OnHoldProjects)
	set(&a.InProgressProjects, patch.InProgressProjects)
	set(&a.Earnings, patch.Earnings)
	set(&a.TotalTasks, patch.TotalTasks)

	s.saveAnalytics(ctx)
	return nil
}

// Analytics returns the current figures.
func (s *Store) Analytics() (model.Analytics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return model.Analytics{}, ErrNoUser
	}
	return s.analytics, nil
}

// recomputeAnalytics derives every count from the collection, keeping the
// stored earnings.
func (s *Store) recomputeAnalytics(ctx context.Context) {
	s.analytics = model.DeriveAnalytics(s.user.ID, s.projects, s.analytics.Earnings)
	s.saveAnalytics(ctx)
}
