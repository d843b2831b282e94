package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nhle/project-dashboard/internal/logger"
	"github.com/nhle/project-dashboard/internal/mock"
	"github.com/nhle/project-dashboard/internal/store"
)

type record struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Tags  []string `json:"tags"`
}

func newMemoryKV(t *testing.T, namespace string) (*store.KV, *store.MemoryBackend) {
	t.Helper()
	backend := store.NewMemoryBackend()
	return store.NewKV(backend, namespace, logger.Nop()), backend
}

func TestKV_SetGetRoundTrip(t *testing.T) {
	kv, _ := newMemoryKV(t, "")
	ctx := context.Background()

	in := record{Name: "alpha", Count: 3, Tags: []string{"Go", "SQL"}}
	kv.Set(ctx, "thing", in)

	var out record
	require.True(t, kv.Get(ctx, "thing", &out))
	assert.Equal(t, in, out)
}

func TestKV_GetMissingReturnsFalse(t *testing.T) {
	kv, _ := newMemoryKV(t, "")

	var out record
	assert.False(t, kv.Get(context.Background(), "absent", &out))
	assert.Equal(t, record{}, out)
}

func TestKV_NamespacePrefixesKeys(t *testing.T) {
	kv, backend := newMemoryKV(t, "techcorp_")
	ctx := context.Background()

	kv.Set(ctx, store.KeyDarkMode, true)

	assert.ElementsMatch(t, []string{"techcorp_dark_mode"}, backend.Keys())
}

func TestKV_StoredNullIsAbsent(t *testing.T) {
	kv, backend := newMemoryKV(t, "")
	ctx := context.Background()
	require.NoError(t, backend.Write(ctx, "k", []byte("null")))

	var out *record
	assert.False(t, kv.Get(ctx, "k", &out))
}

func TestKV_CorruptValueIsAbsent(t *testing.T) {
	kv, backend := newMemoryKV(t, "")
	ctx := context.Background()
	require.NoError(t, backend.Write(ctx, "k", []byte("{not json")))

	var out record
	assert.False(t, kv.Get(ctx, "k", &out))
}

func TestKV_UnencodableValueIsDropped(t *testing.T) {
	kv, backend := newMemoryKV(t, "")

	kv.Set(context.Background(), "k", make(chan int))

	assert.Empty(t, backend.Keys())
}

func TestKV_Remove(t *testing.T) {
	kv, _ := newMemoryKV(t, "")
	ctx := context.Background()
	kv.Set(ctx, "k", 1)

	kv.Remove(ctx, "k")
	kv.Remove(ctx, "never-set")

	var n int
	assert.False(t, kv.Get(ctx, "k", &n))
}

func TestKV_ClearRemovesOnlyApplicationKeys(t *testing.T) {
	kv, backend := newMemoryKV(t, "techcorp_")
	ctx := context.Background()

	kv.Set(ctx, store.KeyAuthToken, "mock-token-1")
	kv.Set(ctx, store.KeyUserData, record{Name: "u"})
	kv.Set(ctx, store.KeyDarkMode, true)
	kv.Set(ctx, store.UserKey(store.KeyProjects, "1"), []record{{Name: "p"}})

	kv.Clear(ctx)

	assert.ElementsMatch(t, []string{"techcorp_projects_1"}, backend.Keys())
}

func TestUserKey(t *testing.T) {
	assert.Equal(t, "notifications_42", store.UserKey(store.KeyNotifications, "42"))
}

func TestKV_SwallowsBackendFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mock.NewMockBackend(ctrl)
	kv := store.NewKV(backend, "ns_", logger.Nop())
	ctx := context.Background()
	boom := errors.New("quota exceeded")

	backend.EXPECT().Read(gomock.Any(), "ns_user_data").Return(nil, boom)
	backend.EXPECT().Write(gomock.Any(), "ns_user_data", []byte(`{"name":"x","count":0,"tags":null}`)).Return(boom)
	backend.EXPECT().Delete(gomock.Any(), "ns_user_data").Return(boom)
	for _, key := range store.ApplicationKeys {
		backend.EXPECT().Delete(gomock.Any(), "ns_"+key).Return(boom)
	}

	var out record
	assert.False(t, kv.Get(ctx, store.KeyUserData, &out))
	assert.NotPanics(t, func() {
		kv.Set(ctx, store.KeyUserData, record{Name: "x"})
		kv.Remove(ctx, store.KeyUserData)
		kv.Clear(ctx)
	})
}
