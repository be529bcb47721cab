package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopadmin/internal/cache"
)

type memoryKV struct {
	data map[string][]byte
	ttl  map[string]time.Duration
	err  error
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: map[string][]byte{}, ttl: map[string]time.Duration{}}
}

func (m *memoryKV) Exists(_ context.Context, key string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.data[key]
	return ok, nil
}

func (m *memoryKV) SetStrict(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.data[key] = value
	m.ttl[key] = ttl
	return nil
}

func TestTokenStore_RevokeAndCheck(t *testing.T) {
	kv := newMemoryKV()
	store := NewTokenStore(kv)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "jti-1", 30*time.Minute))

	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = store.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Equal(t, 30*time.Minute, kv.ttl[revokedTokenKeyPrefix+"jti-1"])
}

func TestTokenStore_SkipsExpiredAndEmpty(t *testing.T) {
	kv := newMemoryKV()
	store := NewTokenStore(kv)

	require.NoError(t, store.Revoke(context.Background(), "jti-1", 0))
	require.NoError(t, store.Revoke(context.Background(), "", time.Minute))
	assert.Empty(t, kv.data)
}

func TestTokenStore_BackendFailuresAreReported(t *testing.T) {
	kv := newMemoryKV()
	kv.err = errors.New("connection refused")
	store := NewTokenStore(kv)

	assert.Error(t, store.Revoke(context.Background(), "jti-1", time.Minute))
	_, err := store.IsRevoked(context.Background(), "jti-1")
	assert.Error(t, err)
}

func TestTokenStore_UnreachableRedis(t *testing.T) {
	client := cache.New("127.0.0.1:1", "", 0)
	defer client.Close()
	store := NewTokenStore(client)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.Error(t, store.Revoke(ctx, "jti-1", time.Minute))
	_, err := store.IsRevoked(ctx, "jti-1")
	assert.Error(t, err)
}
