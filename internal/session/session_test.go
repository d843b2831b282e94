package session_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/nhle/project-dashboard/internal/directory"
	"github.com/nhle/project-dashboard/internal/ids"
	"github.com/nhle/project-dashboard/internal/logger"
	"github.com/nhle/project-dashboard/internal/mock"
	"github.com/nhle/project-dashboard/internal/model"
	"github.com/nhle/project-dashboard/internal/session"
	"github.com/nhle/project-dashboard/internal/store"
	"github.com/nhle/project-dashboard/internal/validate"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	kv      *store.KV
	backend *store.MemoryBackend
	dir     *directory.Memory
	mgr     *session.Manager
}

func newFixture(t *testing.T, opts session.Options) fixture {
	t.Helper()

	dir, err := directory.NewMemoryWithDefaults(bcrypt.MinCost)
	require.NoError(t, err)

	backend := store.NewMemoryBackend()
	kv := store.NewKV(backend, "techcorp_", logger.Nop())

	opts.BcryptCost = bcrypt.MinCost
	if opts.Sequence == nil {
		opts.Sequence = ids.NewSequence(func() time.Time { return fixedNow })
	}

	return fixture{
		kv:      kv,
		backend: backend,
		dir:     dir,
		mgr:     session.New(kv, dir, logger.Nop(), opts),
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t, session.Options{})
	ctx := context.Background()

	require.True(t, f.mgr.Login(ctx, "thehmfpk@gmail.com", "password123"))
	assert.True(t, f.mgr.Authenticated())
	assert.Equal(t, "mock-token-1", f.mgr.Token())

	user, ok := f.mgr.User()
	require.True(t, ok)
	assert.Equal(t, "1", user.ID)
	assert.Equal(t, "Hafiz Muhammad Faizan", user.Name)
	assert.Empty(t, user.Password)

	var stored model.User
	require.True(t, f.kv.Get(ctx, store.KeyUserData, &stored))
	assert.Equal(t, user, stored)

	var token string
	require.True(t, f.kv.Get(ctx, store.KeyAuthToken, &token))
	assert.Equal(t, "mock-token-1", token)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong password", email: "thehmfpk@gmail.com", password: "wrong"},
		{name: "unknown email", email: "ghost@gmail.com", password: "password123"},
		{name: "empty", email: "", password: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, session.Options{})
			ctx := context.Background()

			assert.False(t, f.mgr.Login(ctx, tt.email, tt.password))
			assert.False(t, f.mgr.Authenticated())
			assert.Empty(t, f.mgr.Token())
			assert.Empty(t, f.backend.Keys())
		})
	}
}

func TestSignup(t *testing.T) {
	f := newFixture(t, session.Options{})
	ctx := context.Background()

	ok := f.mgr.Signup(ctx, session.SignupInput{
		Name:          "Jane Doe",
		Email:         "jane@gmail.com",
		Password:      "secret1",
		ContactNumber: "+923001234567",
		Address:       "Karachi",
	})
	require.True(t, ok)

	user, ok := f.mgr.User()
	require.True(t, ok)
	wantID := "1709294400000"
	assert.Equal(t, wantID, user.ID)
	assert.Equal(t, "mock-token-"+wantID, f.mgr.Token())
	assert.Equal(t, 4, f.dir.Len())

	// The new account can log in again after logging out.
	f.mgr.Logout(ctx)
	assert.True(t, f.mgr.Login(ctx, "jane@gmail.com", "secret1"))
}

func TestSignupWithLongPassword(t *testing.T) {
	f := newFixture(t, session.Options{})
	ctx := context.Background()

	password := strings.Repeat("p4ss", 20)
	require.NoError(t, validate.Password(password))

	require.True(t, f.mgr.Signup(ctx, session.SignupInput{
		Name:          "Long Password",
		Email:         "long@gmail.com",
		Password:      password,
		ContactNumber: "+923001234567",
	}))
	assert.Equal(t, 4, f.dir.Len())

	f.mgr.Logout(ctx)
	assert.False(t, f.mgr.Login(ctx, "long@gmail.com", password[:72]))
	assert.True(t, f.mgr.Login(ctx, "long@gmail.com", password))
}

func TestSignupDuplicateEmail(t *testing.T) {
	f := newFixture(t, session.Options{})
	ctx := context.Background()

	ok := f.mgr.Signup(ctx, session.SignupInput{
		Name:     "Someone",
		Email:    "huma@gmail.com",
		Password: "secret1",
	})
	assert.False(t, ok)
	assert.False(t, f.mgr.Authenticated())
	assert.Equal(t, 3, f.dir.Len())
	assert.Empty(t, f.backend.Keys())
}

func TestSignupIDsAreUnique(t *testing.T) {
	f := newFixture(t, session.Options{})
	ctx := context.Background()

	require.True(t, f.mgr.Signup(ctx, session.SignupInput{Name: "A", Email: "a@gmail.com", Password: "secret1"}))
	first, _ := f.mgr.User()
	require.True(t, f.mgr.Signup(ctx, session.SignupInput{Name: "B", Email: "b@gmail.com", Password: "secret1"}))
	second, _ := f.mgr.User()

	assert.NotEqual(t, first.ID, second.ID)
}

func TestLogoutClearsApplicationKeys(t *testing.T) {
	f := newFixture(t, session.Options{})
	ctx := context.Background()

	require.True(t, f.mgr.Login(ctx, "huma@gmail.com", "password123"))
	f.kv.Set(ctx, store.KeyDarkMode, true)
	f.kv.Set(ctx, store.UserKey(store.KeyProjects, "2"), []model.Project{})

	f.mgr.Logout(ctx)

	assert.False(t, f.mgr.Authenticated())
	assert.Empty(t, f.mgr.Token())
	_, ok := f.mgr.User()
	assert.False(t, ok)
	assert.ElementsMatch(t, []string{"techcorp_projects_2"}, f.backend.Keys())
}

func TestLogoutKeepsPreferences(t *testing.T) {
	f := newFixture(t, session.Options{KeepPreferencesOnLogout: true})
	ctx := context.Background()

	require.True(t, f.mgr.Login(ctx, "huma@gmail.com", "password123"))
	f.kv.Set(ctx, store.KeyDarkMode, true)

	f.mgr.Logout(ctx)

	assert.ElementsMatch(t, []string{"techcorp_dark_mode"}, f.backend.Keys())
}

func TestRestore(t *testing.T) {
	f := newFixture(t, session.Options{})
	ctx := context.Background()

	require.True(t, f.mgr.Login(ctx, "sofia@gmail.com", "password123"))

	restored := session.New(f.kv, f.dir, logger.Nop(), session.Options{})
	require.True(t, restored.Restore(ctx))
	user, ok := restored.User()
	require.True(t, ok)
	assert.Equal(t, "3", user.ID)
	assert.Equal(t, "mock-token-3", restored.Token())
}

func TestRestoreNeedsBothKeys(t *testing.T) {
	f := newFixture(t, session.Options{})
	ctx := context.Background()

	f.kv.Set(ctx, store.KeyUserData, model.User{ID: "3", Name: "Sofia"})
	assert.False(t, f.mgr.Restore(ctx))
	assert.False(t, f.mgr.Authenticated())

	f.kv.Set(ctx, store.KeyAuthToken, "anything")
	assert.True(t, f.mgr.Restore(ctx))
}

func ptr[T any](v T) *T { return &v }

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t, session.Options{})
	ctx := context.Background()

	require.True(t, f.mgr.Login(ctx, "thehmfpk@gmail.com", "password123"))

	f.mgr.UpdateProfile(ctx, session.ProfilePatch{
		Bio: ptr("Gopher"),
		SocialLinks: map[string]string{
			model.SocialWebsite: "https://faizan.dev",
		},
	})

	user, ok := f.mgr.User()
	require.True(t, ok)
	assert.Equal(t, "1", user.ID)
	assert.Equal(t, "thehmfpk@gmail.com", user.Email)
	assert.Equal(t, "Hafiz Muhammad Faizan", user.Name)
	assert.Equal(t, "Gopher", user.Bio)
	assert.Empty(t, user.Password)
	assert.Equal(t, "https://github.com/faizanpk", user.SocialLinks[model.SocialGitHub])
	assert.Equal(t, "https://faizan.dev", user.SocialLinks[model.SocialWebsite])

	var stored model.User
	require.True(t, f.kv.Get(ctx, store.KeyUserData, &stored))
	assert.Equal(t, user, stored)

	rec, err := f.dir.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Gopher", rec.User.Bio)
	assert.True(t, rec.CheckPassword("password123"))
}

func TestUpdateProfileClearsFields(t *testing.T) {
	f := newFixture(t, session.Options{})
	ctx := context.Background()

	require.True(t, f.mgr.Login(ctx, "thehmfpk@gmail.com", "password123"))
	before, _ := f.mgr.User()
	require.NotEmpty(t, before.Bio)
	require.NotEmpty(t, before.SocialLinks[model.SocialTwitter])

	f.mgr.UpdateProfile(ctx, session.ProfilePatch{
		Bio:         ptr(""),
		SocialLinks: map[string]string{model.SocialTwitter: ""},
	})

	user, ok := f.mgr.User()
	require.True(t, ok)
	assert.Empty(t, user.Bio)
	assert.NotContains(t, user.SocialLinks, model.SocialTwitter)
	assert.Equal(t, before.SocialLinks[model.SocialGitHub], user.SocialLinks[model.SocialGitHub])
	assert.Equal(t, before.Name, user.Name)

	rec, err := f.dir.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, rec.User.Bio)
	assert.NotContains(t, rec.User.SocialLinks, model.SocialTwitter)

	// Removing the last link leaves no map behind.
	links := map[string]string{}
	for key := range user.SocialLinks {
		links[key] = ""
	}
	f.mgr.UpdateProfile(ctx, session.ProfilePatch{SocialLinks: links})
	user, _ = f.mgr.User()
	assert.Nil(t, user.SocialLinks)
}

func TestUpdateProfileAnonymousIsNoop(t *testing.T) {
	f := newFixture(t, session.Options{})
	ctx := context.Background()

	f.mgr.UpdateProfile(ctx, session.ProfilePatch{Name: ptr("Nobody")})

	assert.False(t, f.mgr.Authenticated())
	assert.Empty(t, f.backend.Keys())
}

func TestDirectoryErrorsFailClosed(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	kv := store.NewKV(store.NewMemoryBackend(), "", logger.Nop())
	mgr := session.New(kv, repo, logger.Nop(), session.Options{BcryptCost: bcrypt.MinCost})
	ctx := context.Background()

	boom := errors.New("database is locked")
	repo.EXPECT().FindByEmail(gomock.Any(), "a@gmail.com").Return(directory.Record{}, boom).Times(2)

	assert.False(t, mgr.Login(ctx, "a@gmail.com", "secret1"))
	assert.False(t, mgr.Signup(ctx, session.SignupInput{Email: "a@gmail.com", Password: "secret1"}))
	assert.False(t, mgr.Authenticated())
}

func TestSignupInsertRaceReturnsFalse(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	kv := store.NewKV(store.NewMemoryBackend(), "", logger.Nop())
	mgr := session.New(kv, repo, logger.Nop(), session.Options{BcryptCost: bcrypt.MinCost})
	ctx := context.Background()

	repo.EXPECT().FindByEmail(gomock.Any(), "a@gmail.com").Return(directory.Record{}, directory.ErrNotFound)
	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(directory.ErrEmailExists)

	assert.False(t, mgr.Signup(ctx, session.SignupInput{Email: "a@gmail.com", Password: "secret1"}))
	assert.False(t, mgr.Authenticated())
}

func TestUpdateProfileMirrorFailureKeepsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	kv := store.NewKV(store.NewMemoryBackend(), "", logger.Nop())
	mgr := session.New(kv, repo, logger.Nop(), session.Options{BcryptCost: bcrypt.MinCost})
	ctx := context.Background()

	rec, err := directory.NewRecord(model.User{ID: "7", Name: "Ann", Email: "ann@gmail.com"}, "secret1", bcrypt.MinCost)
	require.NoError(t, err)

	repo.EXPECT().FindByEmail(gomock.Any(), "ann@gmail.com").Return(rec, nil)
	repo.EXPECT().UpdateByID(gomock.Any(), "7", gomock.Any()).Return(directory.ErrNotFound)

	require.True(t, mgr.Login(ctx, "ann@gmail.com", "secret1"))
	mgr.UpdateProfile(ctx, session.ProfilePatch{Address: ptr("Lahore")})

	user, ok := mgr.User()
	require.True(t, ok)
	assert.Equal(t, "Lahore", user.Address)
}
