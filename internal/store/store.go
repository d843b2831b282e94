package store

//go:generate mockgen -source=store.go -destination=../mock/backend_mock.go -package=mock Backend

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/nhle/project-dashboard/internal/logger"
)

// Backend is raw byte storage addressed by string keys. Implementations
// report a missing key with ErrNotFound.
type Backend interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// KV is the JSON key-value facade used by the rest of the application.
// Storage never fails loudly: a failed read looks like a missing key and a
// failed write or delete is dropped. Failures are logged so they are not
// lost entirely.
type KV struct {
	backend   Backend
	namespace string
	log       *logger.Logger
}

// NewKV wraps backend. Every key is prefixed with namespace before it
// reaches the backend.
func NewKV(backend Backend, namespace string, log *logger.Logger) *KV {
	if log == nil {
		log = logger.Nop()
	}
	return &KV{
		backend:   backend,
		namespace: namespace,
		log:       log.Component("kv"),
	}
}

func (kv *KV) fullKey(key string) string {
	return kv.namespace + key
}

// Get decodes the value stored under key into dst and reports whether a
// value was found. A stored JSON null counts as absent.
func (kv *KV) Get(ctx context.Context, key string, dst any) bool {
	k := kv.fullKey(key)

	raw, err := kv.backend.Read(ctx, k)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			kv.log.Warn().Err(err).Str("key", k).Msg("storage read failed")
		}
		return false
	}
	if len(raw) == 0 || string(raw) == "null" {
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		kv.log.Warn().Err(err).Str("key", k).Msg("decoding stored value failed")
		return false
	}
	return true
}

// Set encodes value as JSON and stores it under key.
func (kv *KV) Set(ctx context.Context, key string, value any) {
	k := kv.fullKey(key)

	raw, err := json.Marshal(value)
	if err != nil {
		kv.log.Warn().Err(err).Str("key", k).Msg("encoding value failed")
		return
	}
	if err := kv.backend.Write(ctx, k, raw); err != nil {
		kv.log.Warn().Err(err).Str("key", k).Msg("storage write failed")
	}
}

// Remove deletes key. Removing a missing key is not an error.
func (kv *KV) Remove(ctx context.Context, key string) {
	k := kv.fullKey(key)

	if err := kv.backend.Delete(ctx, k); err != nil && !errors.Is(err, ErrNotFound) {
		kv.log.Warn().Err(err).Str("key", k).Msg("storage delete failed")
	}
}

// Clear removes the fixed set of application keys. Per-user keys carry a
// user id suffix and are therefore left alone.
func (kv *KV) Clear(ctx context.Context) {
	for _, key := range ApplicationKeys {
		kv.Remove(ctx, key)
	}
}
