// Package app wires storage, the user directory, the session manager and
// the project data store together. Session transitions drive the data
// store: signing in opens it for the user, signing out closes it.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nhle/project-dashboard/internal/credential"
	"github.com/nhle/project-dashboard/internal/dashboard"
	"github.com/nhle/project-dashboard/internal/directory"
	"github.com/nhle/project-dashboard/internal/ids"
	"github.com/nhle/project-dashboard/internal/logger"
	"github.com/nhle/project-dashboard/internal/model"
	"github.com/nhle/project-dashboard/internal/prefs"
	"github.com/nhle/project-dashboard/internal/session"
	"github.com/nhle/project-dashboard/internal/store"
)

// App is the composition root.
type App struct {
	cfg     *model.AppConfig
	log     *logger.Logger
	closers []io.Closer

	KV        *store.KV
	Directory directory.Repository
	Session   *session.Manager
	Data      *dashboard.Store
	Prefs     *prefs.Prefs
}

// Deps lets callers supply pre-built collaborators. Nil fields are built
// from the configuration.
type Deps struct {
	Backend   store.Backend
	Directory directory.Repository
	Sequence  *ids.Sequence
	Dashboard dashboard.Options
}

// New opens the configured storage backend and user directory.
func New(ctx context.Context, cfg *model.AppConfig, log *logger.Logger) (*App, error) {
	return NewWithDeps(ctx, cfg, log, Deps{})
}

// NewWithDeps is New with injectable collaborators.
func NewWithDeps(ctx context.Context, cfg *model.AppConfig, log *logger.Logger, deps Deps) (*App, error) {
	if log == nil {
		log = logger.Nop()
	}
	a := &App{cfg: cfg, log: log.Component("app")}

	backend := deps.Backend
	if backend == nil {
		var err error
		backend, err = a.openBackend(ctx)
		if err != nil {
			a.Close()
			return nil, err
		}
	}

	dir := deps.Directory
	if dir == nil {
		var err error
		dir, err = a.openDirectory(ctx, backend)
		if err != nil {
			a.Close()
			return nil, err
		}
	}

	seq := deps.Sequence
	if seq == nil {
		seq = ids.NewSequence(nil)
	}
	if deps.Dashboard.Sequence == nil {
		deps.Dashboard.Sequence = seq
	}

	a.KV = store.NewKV(backend, cfg.Storage.Namespace, log)
	a.Directory = dir
	a.Prefs = prefs.New(a.KV)
	a.Session = session.New(a.KV, dir, log, session.Options{
		KeepPreferencesOnLogout: cfg.Session.KeepPreferencesOnLogout,
		BcryptCost:              cfg.Auth.BcryptCost,
		Sequence:                seq,
	})
	a.Data = dashboard.New(a.KV, log, deps.Dashboard)

	a.log.Debug().Str("backend", cfg.Storage.Backend).Msg("application initialized")
	return a, nil
}

func (a *App) openBackend(ctx context.Context) (store.Backend, error) {
	s := a.cfg.Storage

	switch s.Backend {
	case model.BackendSQLite:
		if err := ensureDir(s.Path); err != nil {
			return nil, err
		}
		db, err := store.NewSQLiteStore(s.Path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store %s: %w", s.Path, err)
		}
		a.closers = append(a.closers, db)
		return db, nil

	case model.BackendRedis:
		rdb := store.NewRedisBackend(s.Redis.Addr, s.Redis.Password, s.Redis.DB)
		a.closers = append(a.closers, rdb)
		if err := rdb.Ping(ctx); err != nil {
			return nil, fmt.Errorf("connecting to redis at %s: %w", s.Redis.Addr, err)
		}
		return rdb, nil

	case model.BackendKeyring:
		ring, err := credential.Open(credential.Config{
			ServiceName: s.Keyring.Service,
			FileDir:     s.Keyring.FileDir,
		})
		if err != nil {
			return nil, fmt.Errorf("opening keyring: %w", err)
		}
		return ring, nil

	case model.BackendMemory:
		return store.NewMemoryBackend(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", s.Backend)
}

// openDirectory returns the user directory. Users live in SQLite for every
// persistent backend; the memory backend keeps them in memory too.
func (a *App) openDirectory(ctx context.Context, backend store.Backend) (directory.Repository, error) {
	cost := a.cfg.Auth.BcryptCost

	if a.cfg.Storage.Backend == model.BackendMemory {
		return directory.NewMemoryWithDefaults(cost)
	}

	db, ok := backend.(*store.SQLiteStore)
	if !ok {
		if err := ensureDir(a.cfg.Storage.Path); err != nil {
			return nil, err
		}
		var err error
		db, err = store.NewSQLiteStore(a.cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("opening user directory %s: %w", a.cfg.Storage.Path, err)
		}
		a.closers = append(a.closers, db)
	}

	repo := directory.NewSQLite(db.DB())
	if err := repo.EnsureDefaults(ctx, cost); err != nil {
		return nil, fmt.Errorf("seeding user directory: %w", err)
	}
	return repo, nil
}

// Restore resumes a persisted session and opens the data store for it.
func (a *App) Restore(ctx context.Context) bool {
	if !a.Session.Restore(ctx) {
		return false
	}
	a.openData(ctx)
	return true
}

// Login signs in and opens the data store for the user.
func (a *App) Login(ctx context.Context, email, password string) bool {
	if !a.Session.Login(ctx, email, password) {
		return false
	}
	a.openData(ctx)
	return true
}

// Signup registers, signs in and opens the data store for the new user.
func (a *App) Signup(ctx context.Context, in session.SignupInput) bool {
	if !a.Session.Signup(ctx, in) {
		return false
	}
	a.openData(ctx)
	return true
}

// Logout signs out and empties the data store.
func (a *App) Logout(ctx context.Context) {
	a.Session.Logout(ctx)
	a.Data.Close()
}

// UpdateProfile updates the signed-in user's profile.
func (a *App) UpdateProfile(ctx context.Context, patch session.ProfilePatch) {
	a.Session.UpdateProfile(ctx, patch)
}

// Close releases storage handles.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) openData(ctx context.Context) {
	user, ok := a.Session.User()
	if !ok {
		return
	}
	a.Data.Open(ctx, user)
}

func ensureDir(path string) error {
	if path == "" || path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory %s: %w", dir, err)
	}
	return nil
}
