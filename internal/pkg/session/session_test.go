package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/pkg/jwt"
)

const testSecret = "test-secret"

func newSignerAt(at time.Time) *jwt.Signer {
	return jwt.NewSigner(testSecret, time.Hour).WithClock(func() time.Time { return at })
}

func setupRegistry(t *testing.T) (*RedisRegistry, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	registry, err := NewRedisRegistry(context.Background(), "redis://"+s.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = registry.Close() })
	return registry, s
}

func TestManagerWithoutRegistry(t *testing.T) {
	ctx := context.Background()
	m := NewManager(testSecret, time.Hour, nil)

	token, err := m.Issue(ctx, "user-1")
	require.NoError(t, err)

	userID, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	// 无吊销表时登出不影响 token 本身
	require.NoError(t, m.Revoke(ctx, token))
	_, err = m.Resolve(ctx, token)
	assert.NoError(t, err)
}

func TestManagerRejectsForeignToken(t *testing.T) {
	ctx := context.Background()
	issuer := NewManager("other-secret", time.Hour, nil)
	token, err := issuer.Issue(ctx, "user-1")
	require.NoError(t, err)

	m := NewManager(testSecret, time.Hour, nil)
	_, err = m.Resolve(ctx, token)
	assert.Error(t, err)

	_, err = m.Resolve(ctx, "user-1")
	assert.Error(t, err, "a raw user id is not a valid session")
}

func TestManagerRejectsExpiredToken(t *testing.T) {
	ctx := context.Background()
	m := NewManager(testSecret, time.Hour, nil)
	m.signer = newSignerAt(time.Now().Add(-2 * time.Hour))

	token, err := m.Issue(ctx, "user-1")
	require.NoError(t, err)

	m.signer = newSignerAt(time.Now())
	_, err = m.Resolve(ctx, token)
	assert.Error(t, err)
}

func TestManagerRevokeWithRegistry(t *testing.T) {
	ctx := context.Background()
	registry, s := setupRegistry(t)
	m := NewManager(testSecret, time.Hour, registry)

	token, err := m.Issue(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, s.Keys(), 1)

	userID, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	require.NoError(t, m.Revoke(ctx, token))
	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrRevoked)
	assert.Empty(t, s.Keys())
}

func TestRedisRegistryExpiry(t *testing.T) {
	ctx := context.Background()
	registry, s := setupRegistry(t)

	require.NoError(t, registry.Save(ctx, "sid", "user-1", time.Minute))
	ok, err := registry.Exists(ctx, "sid")
	require.NoError(t, err)
	assert.True(t, ok)

	s.FastForward(2 * time.Minute)

	ok, err = registry.Exists(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewRedisRegistryBadURL(t *testing.T) {
	_, err := NewRedisRegistry(context.Background(), "://nope")
	assert.Error(t, err)
}

func TestManagerRegistryDown(t *testing.T) {
	ctx := context.Background()
	registry, s := setupRegistry(t)
	m := NewManager(testSecret, time.Hour, registry)

	token, err := m.Issue(ctx, "user-1")
	require.NoError(t, err)

	s.Close()
	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrRegistryUnavailable)
	assert.NotErrorIs(t, err, ErrRevoked)
}
