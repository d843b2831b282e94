// Package dashboard holds the signed-in user's projects, analytics and
// notifications. The Store is empty until Open is called for a user and
// writes every changed collection back to the key-value store in full.
package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/nhle/project-dashboard/internal/ids"
	"github.com/nhle/project-dashboard/internal/logger"
	"github.com/nhle/project-dashboard/internal/model"
	"github.com/nhle/project-dashboard/internal/seed"
	"github.com/nhle/project-dashboard/internal/store"
)

// MaxNotifications is the number of notifications kept per user.
const MaxNotifications = 20

// Options configure a Store. Zero values select production defaults.
type Options struct {
	Generator *seed.Generator
	Sequence  *ids.Sequence
	Now       func() time.Time
}

// Store is the per-user project data store.
type Store struct {
	mu  sync.Mutex
	kv  *store.KV
	gen *seed.Generator
	seq *ids.Sequence
	now func() time.Time
	log *logger.Logger

	user          *model.User
	projects      []model.Project
	analytics     model.Analytics
	notifications []model.Notification
}

// New returns a closed Store.
func New(kv *store.KV, log *logger.Logger, opts Options) *Store {
	if log == nil {
		log = logger.Nop()
	}
	s := &Store{
		kv:  kv,
		gen: opts.Generator,
		seq: opts.Sequence,
		now: opts.Now,
		log: log.Component("dashboard"),
	}
	if s.gen == nil {
		s.gen = seed.New()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.seq == nil {
		s.seq = ids.NewSequence(s.now)
	}
	return s
}

// Open loads user's collections. Any collection that has never been stored
// is generated and persisted.
func (s *Store) Open(ctx context.Context, user model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := user.Redacted()
	s.user = &u

	var projects []model.Project
	if !s.kv.Get(ctx, s.key(store.KeyProjects), &projects) {
		projects = s.gen.Projects(u.ID, u.Name)
		s.kv.Set(ctx, s.key(store.KeyProjects), projects)
		s.log.Info().Str("user_id", u.ID).Int("count", len(projects)).Msg("seeded projects")
	}
	if projects == nil {
		projects = []model.Project{}
	}
	s.projects = projects

	var analytics model.Analytics
	if !s.kv.Get(ctx, s.key(store.KeyAnalytics), &analytics) {
		analytics = s.gen.Analytics(u.ID, s.projects)
		s.kv.Set(ctx, s.key(store.KeyAnalytics), analytics)
	}
	s.analytics = analytics

	var notifications []model.Notification
	if !s.kv.Get(ctx, s.key(store.KeyNotifications), &notifications) {
		notifications = s.gen.Notifications(u.ID, s.projects)
		s.kv.Set(ctx, s.key(store.KeyNotifications), notifications)
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}
	s.notifications = notifications

	s.log.Debug().Str("user_id", u.ID).Msg("data store opened")
}

// Close forgets the loaded user. Persisted data is left alone.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.projects = nil
	s.analytics = model.Analytics{}
	s.notifications = nil
}

// UserID returns the id of the open user, or "".
func (s *Store) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return ""
	}
	return s.user.ID
}

func (s *Store) key(base string) string {
	return store.UserKey(base, s.user.ID)
}

func (s *Store) clock() time.Time {
	return s.now().UTC()
}

func (s *Store) saveProjects(ctx context.Context) {
	s.kv.Set(ctx, s.key(store.KeyProjects), s.projects)
}

func (s *Store) saveAnalytics(ctx context.Context) {
	s.kv.Set(ctx, s.key(store.KeyAnalytics), s.analytics)
}

func (s *Store) saveNotifications(ctx context.Context) {
	s.kv.Set(ctx, s.key(store.KeyNotifications), s.notifications)
}

func (s *Store) indexOf(id string) int {
	for i, p := range s.projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}
