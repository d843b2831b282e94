package dashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/project-dashboard/internal/dashboard"
	"github.com/nhle/project-dashboard/internal/logger"
	"github.com/nhle/project-dashboard/internal/model"
	"github.com/nhle/project-dashboard/internal/seed"
	"github.com/nhle/project-dashboard/internal/store"
)

var (
	now  = time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)
	huma = model.User{ID: "2", Name: "Huma", Email: "huma@gmail.com"}
)

func newKV() (*store.KV, *store.MemoryBackend) {
	backend := store.NewMemoryBackend()
	return store.NewKV(backend, "techcorp_", logger.Nop()), backend
}

func newStore(kv *store.KV) *dashboard.Store {
	return dashboard.New(kv, logger.Nop(), dashboard.Options{
		Generator: seed.NewSeeded(1, now),
		Now:       func() time.Time { return now },
	})
}

// openWith persists the given collections for huma and opens a store on
// them. Nil collections are left for the generator.
func openWith(t *testing.T, projects []model.Project, analytics *model.Analytics, notifications []model.Notification) (*dashboard.Store, *store.KV) {
	t.Helper()
	ctx := context.Background()
	kv, _ := newKV()

	if projects != nil {
		kv.Set(ctx, store.UserKey(store.KeyProjects, huma.ID), projects)
	}
	if analytics != nil {
		kv.Set(ctx, store.UserKey(store.KeyAnalytics, huma.ID), analytics)
	}
	if notifications != nil {
		kv.Set(ctx, store.UserKey(store.KeyNotifications, huma.ID), notifications)
	}

	s := newStore(kv)
	s.Open(ctx, huma)
	return s, kv
}

func project(id, name string, status model.ProjectStatus, tasks int) model.Project {
	p := model.Project{
		ID:          id,
		UserID:      huma.ID,
		Name:        name,
		Status:      status,
		Description: name + " description",
		Tags:        []string{"Go"},
		Tasks:       []model.Task{},
		Progress:    50,
		CreatedAt:   now.Add(-48 * time.Hour),
		UpdatedAt:   now.Add(-24 * time.Hour),
		Owner:       huma.Name,
	}
	for i := range tasks {
		p.Tasks = append(p.Tasks, model.Task{ID: id + "-t" + string(rune('a'+i)), Name: "task", CreatedAt: now})
	}
	p.NormalizeProgress()
	return p
}

func fiveProjects() []model.Project {
	return []model.Project{
		project("p1", "Alpha", model.StatusPlanned, 1),
		project("p2", "Beta", model.StatusInProgress, 2),
		project("p3", "Gamma", model.StatusOnHold, 0),
		project("p4", "Delta", model.StatusCompleted, 3),
		project("p5", "Epsilon", model.StatusInProgress, 1),
	}
}

func assertConsistent(t *testing.T, s *dashboard.Store) {
	t.Helper()
	a, err := s.Analytics()
	require.NoError(t, err)
	want := model.DeriveAnalytics(huma.ID, s.Projects(), a.Earnings)
	assert.Equal(t, want, a)
}

func TestOpenSeedsAndPersists(t *testing.T) {
	ctx := context.Background()
	kv, backend := newKV()
	s := newStore(kv)

	s.Open(ctx, huma)

	assert.Equal(t, "2", s.UserID())
	assert.Len(t, s.Projects(), seed.ProjectCount)
	assert.Len(t, s.Notifications(), seed.NotificationCount)
	assertConsistent(t, s)
	assert.ElementsMatch(t, []string{
		"techcorp_projects_2",
		"techcorp_analytics_2",
		"techcorp_notifications_2",
	}, backend.Keys())
}

func TestReopenRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv, _ := newKV()

	first := newStore(kv)
	first.Open(ctx, huma)
	_, err := first.AddProject(ctx, dashboard.ProjectInput{Name: "Extra", Status: model.StatusInProgress, Progress: 40})
	require.NoError(t, err)

	// A second store with a different seed must load, not regenerate.
	second := dashboard.New(kv, logger.Nop(), dashboard.Options{Generator: seed.NewSeeded(99, now)})
	second.Open(ctx, huma)

	assert.Equal(t, first.Projects(), second.Projects())
	a1, _ := first.Analytics()
	a2, _ := second.Analytics()
	assert.Equal(t, a1, a2)
	assert.Equal(t, first.Notifications(), second.Notifications())
}

func TestOpenKeepsStoredEmptyCollections(t *testing.T) {
	s, _ := openWith(t, []model.Project{}, nil, nil)

	assert.Empty(t, s.Projects())
	assert.Empty(t, s.Notifications())
	a, err := s.Analytics()
	require.NoError(t, err)
	assert.Equal(t, 0, a.TotalProjects)
}

func TestClosedStore(t *testing.T) {
	ctx := context.Background()
	s, _ := openWith(t, fiveProjects(), nil, nil)
	s.Close()

	assert.Empty(t, s.UserID())
	assert.Empty(t, s.Projects())
	assert.Empty(t, s.Notifications())
	assert.Zero(t, s.UnreadCount())

	_, err := s.AddProject(ctx, dashboard.ProjectInput{Name: "X"})
	assert.ErrorIs(t, err, dashboard.ErrNoUser)
	_, err = s.UpdateProject(ctx, "p1", dashboard.ProjectPatch{})
	assert.ErrorIs(t, err, dashboard.ErrNoUser)
	assert.ErrorIs(t, s.DeleteProject(ctx, "p1"), dashboard.ErrNoUser)
	assert.ErrorIs(t, s.UpdateAnalytics(ctx, dashboard.AnalyticsPatch{}), dashboard.ErrNoUser)
	_, err = s.AddNotification(ctx, dashboard.NotificationInput{})
	assert.ErrorIs(t, err, dashboard.ErrNoUser)
	assert.ErrorIs(t, s.MarkNotificationAsRead(ctx, "n"), dashboard.ErrNoUser)
	assert.ErrorIs(t, s.MarkAllNotificationsAsRead(ctx), dashboard.ErrNoUser)
	_, err = s.Analytics()
	assert.ErrorIs(t, err, dashboard.ErrNoUser)
	_, err = s.Project("p1")
	assert.ErrorIs(t, err, dashboard.ErrNoUser)
}
