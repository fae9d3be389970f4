package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
)

func TestNewLock_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := NewLock(ctx, Config{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}

func TestLock_Key(t *testing.T) {
	l := &Lock{prefix: DefaultKeyPrefix}
	assert.Equal(t, "bonglore:enrich:m1", l.key("m1"))
}

// newIntegrationLock connects to BONGLORE_TEST_REDIS_ADDR.
func newIntegrationLock(t *testing.T, ttl time.Duration) *Lock {
	t.Helper()
	addr := os.Getenv("BONGLORE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("BONGLORE_TEST_REDIS_ADDR not set")
	}
	l, err := NewLock(context.Background(), Config{
		Addr:      addr,
		TTL:       ttl,
		KeyPrefix: "bonglore:test:" + uuid.NewString() + ":",
	})
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestLock_Integration_Exclusive(t *testing.T) {
	l := newIntegrationLock(t, time.Minute)
	ctx := context.Background()

	release, err := l.Acquire(ctx, "m1")
	require.NoError(t, err)

	_, err = l.Acquire(ctx, "m1")
	assert.ErrorIs(t, err, domain.ErrEnrichmentInProgress)

	other, err := l.Acquire(ctx, "m2")
	require.NoError(t, err)
	other()

	release()
	again, err := l.Acquire(ctx, "m1")
	require.NoError(t, err)
	again()
}

func TestLock_Integration_ExpiredHolderDoesNotReleaseNewOwner(t *testing.T) {
	l := newIntegrationLock(t, 100*time.Millisecond)
	ctx := context.Background()

	stale, err := l.Acquire(ctx, "m1")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		release, err := l.Acquire(ctx, "m1")
		if err != nil {
			return false
		}
		defer release()
		stale()
		_, err = l.Acquire(ctx, "m1")
		return assert.ErrorIs(t, err, domain.ErrEnrichmentInProgress)
	}, 2*time.Second, 20*time.Millisecond)
}
