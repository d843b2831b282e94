// Package session tracks who is signed in. A Manager is either anonymous
// or authenticated as exactly one user; the signed-in user and a token are
// persisted so a later process can restore the session.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/nhle/project-dashboard/internal/directory"
	"github.com/nhle/project-dashboard/internal/ids"
	"github.com/nhle/project-dashboard/internal/logger"
	"github.com/nhle/project-dashboard/internal/model"
	"github.com/nhle/project-dashboard/internal/store"
)

const tokenPrefix = "mock-token-"

// Options tune a Manager.
type Options struct {
	// KeepPreferencesOnLogout makes Logout remove only the session keys.
	KeepPreferencesOnLogout bool

	// BcryptCost is used when hashing signup passwords. Zero selects
	// bcrypt.DefaultCost.
	BcryptCost int

	// Sequence issues user ids. Nil uses the wall clock.
	Sequence *ids.Sequence
}

// SignupInput carries the fields collected by the signup form.
type SignupInput struct {
	Name          string
	Email         string
	Password      string
	ContactNumber string
	Address       string
}

// ProfilePatch is a partial profile update; nil fields are left as they
// are and a non-nil empty string clears the field.
type ProfilePatch struct {
	Name           *string
	ContactNumber  *string
	Address        *string
	Bio            *string
	ProfilePicture *string

	// SocialLinks is applied per key. An empty value removes the link.
	SocialLinks map[string]string
}

func (p ProfilePatch) apply(u *model.User) {
	set := func(dst, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&u.Name, p.Name)
	set(&u.ContactNumber, p.ContactNumber)
	set(&u.Address, p.Address)
	set(&u.Bio, p.Bio)
	set(&u.ProfilePicture, p.ProfilePicture)

	for key, link := range p.SocialLinks {
		if link == "" {
			delete(u.SocialLinks, key)
			continue
		}
		if u.SocialLinks == nil {
			u.SocialLinks = make(map[string]string)
		}
		u.SocialLinks[key] = link
	}
	if len(u.SocialLinks) == 0 {
		u.SocialLinks = nil
	}
}

// Manager is the session state machine.
type Manager struct {
	mu   sync.Mutex
	kv   *store.KV
	dir  directory.Repository
	seq  *ids.Sequence
	log  *logger.Logger
	opts Options

	user *model.User
}

// New returns an anonymous Manager.
func New(kv *store.KV, dir directory.Repository, log *logger.Logger, opts Options) *Manager {
	if log == nil {
		log = logger.Nop()
	}
	seq := opts.Sequence
	if seq == nil {
		seq = ids.NewSequence(nil)
	}
	return &Manager{
		kv:   kv,
		dir:  dir,
		seq:  seq,
		log:  log.Component("session"),
		opts: opts,
	}
}

// Restore resumes a persisted session. Both the user record and the token
// must be present; the token itself is not checked.
func (m *Manager) Restore(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	var (
		user  model.User
		token string
	)
	if !m.kv.Get(ctx, store.KeyUserData, &user) || !m.kv.Get(ctx, store.KeyAuthToken, &token) {
		return false
	}
	if user.ID == "" || token == "" {
		return false
	}

	user = user.Redacted()
	m.user = &user
	m.log.Debug().Str("user_id", user.ID).Msg("session restored")
	return true
}

// Login authenticates against the directory. An unknown email and a wrong
// password both yield false and leave the session unchanged.
func (m *Manager) Login(ctx context.Context, email, password string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, err := m.dir.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, directory.ErrNotFound) {
			m.log.Warn().Err(err).Msg("directory lookup failed")
		}
		return false
	}
	if !rec.CheckPassword(password) {
		return false
	}

	m.authenticate(ctx, rec.User)
	m.log.Info().Str("user_id", rec.User.ID).Msg("logged in")
	return true
}

// Signup registers a new account and signs it in. It returns false when
// the email is already registered, in which case nothing changes.
func (m *Manager) Signup(ctx context.Context, in SignupInput) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, err := m.dir.FindByEmail(ctx, in.Email)
	if err == nil {
		return false
	}
	if !errors.Is(err, directory.ErrNotFound) {
		m.log.Warn().Err(err).Msg("directory lookup failed")
		return false
	}

	user := model.User{
		ID:            m.seq.NextString(),
		Name:          in.Name,
		Email:         in.Email,
		ContactNumber: in.ContactNumber,
		Address:       in.Address,
	}
	rec, err := directory.NewRecord(user, in.Password, m.opts.BcryptCost)
	if err != nil {
		m.log.Error().Err(err).Msg("hashing password failed")
		return false
	}
	if err := m.dir.Insert(ctx, rec); err != nil {
		if !errors.Is(err, directory.ErrEmailExists) {
			m.log.Warn().Err(err).Msg("directory insert failed")
		}
		return false
	}

	m.authenticate(ctx, rec.User)
	m.log.Info().Str("user_id", user.ID).Msg("signed up")
	return true
}

// Logout returns to the anonymous state and clears persisted application
// state.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user != nil {
		m.log.Info().Str("user_id", m.user.ID).Msg("logged out")
	}
	m.user = nil

	if m.opts.KeepPreferencesOnLogout {
		for _, key := range store.SessionKeys {
			m.kv.Remove(ctx, key)
		}
		return
	}
	m.kv.Clear(ctx)
}

// UpdateProfile applies patch to the signed-in user. The id, email and
// password never change through a profile update. Anonymous sessions are
// left untouched.
func (m *Manager) UpdateProfile(ctx context.Context, patch ProfilePatch) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user == nil {
		return
	}

	updated := m.user.Redacted()
	patch.apply(&updated)

	m.user = &updated
	m.kv.Set(ctx, store.KeyUserData, updated)

	if err := m.dir.UpdateByID(ctx, updated.ID, updated); err != nil {
		m.log.Warn().Err(err).Str("user_id", updated.ID).Msg("mirroring profile to directory failed")
	}
}

// User returns a copy of the signed-in user.
func (m *Manager) User() (model.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user == nil {
		return model.User{}, false
	}
	return m.user.Redacted(), true
}

// Authenticated reports whether a user is signed in.
func (m *Manager) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil
}

// Token returns the auth token of the signed-in user, or "".
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user == nil {
		return ""
	}
	return tokenPrefix + m.user.ID
}

// authenticate must be called with mu held.
func (m *Manager) authenticate(ctx context.Context, user model.User) {
	user = user.Redacted()
	m.user = &user
	m.kv.Set(ctx, store.KeyUserData, user)
	m.kv.Set(ctx, store.KeyAuthToken, tokenPrefix+user.ID)
}
