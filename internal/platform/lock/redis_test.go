package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"medicamp_api/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_WithoutRedisReturnsNopLocker(t *testing.T) {
	locker, closeFn, err := Connect(context.Background(), &config.Config{})
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, NopLocker{}, locker)

	release, err := locker.Acquire(context.Background(), CampKey("abc"))
	require.NoError(t, err)
	release()

	// Nop locks never contend.
	release, err = locker.Acquire(context.Background(), CampKey("abc"))
	require.NoError(t, err)
	release()
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "camp:65f0", CampKey("65f0"))
	assert.Equal(t, "participant:65f0", ParticipantKey("65f0"))
}

// memoryLocker returns a RedisLocker backed by a map instead of a server.
func memoryLocker(wait time.Duration) (*RedisLocker, *memStore) {
	store := &memStore{keys: map[string]string{}}
	l := &RedisLocker{
		ttl:  time.Minute,
		wait: wait,
		setNX: func(_ context.Context, key, token string, _ time.Duration) (bool, error) {
			store.mu.Lock()
			defer store.mu.Unlock()
			store.attempts++
			if _, held := store.keys[key]; held {
				return false, nil
			}
			store.keys[key] = token
			return true, nil
		},
		unlock: func(_ context.Context, key, token string) (int64, error) {
			store.mu.Lock()
			defer store.mu.Unlock()
			if store.keys[key] != token {
				return 0, nil
			}
			delete(store.keys, key)
			return 1, nil
		},
	}
	return l, store
}

type memStore struct {
	mu       sync.Mutex
	keys     map[string]string
	attempts int
}

func TestRedisLocker_WaitsForRelease(t *testing.T) {
	l, store := memoryLocker(2 * time.Second)
	ctx := context.Background()

	releaseA, err := l.Acquire(ctx, CampKey("c1"))
	require.NoError(t, err)

	go func() {
		time.Sleep(60 * time.Millisecond)
		releaseA()
	}()

	releaseB, err := l.Acquire(ctx, CampKey("c1"))
	require.NoError(t, err)
	releaseB()

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Greater(t, store.attempts, 2)
	assert.Empty(t, store.keys)
}

func TestRedisLocker_GivesUpAfterWait(t *testing.T) {
	l, _ := memoryLocker(50 * time.Millisecond)
	ctx := context.Background()

	release, err := l.Acquire(ctx, CampKey("c1"))
	require.NoError(t, err)
	defer release()

	_, err = l.Acquire(ctx, CampKey("c1"))
	assert.ErrorIs(t, err, ErrNotAcquired)
}

func TestRedisLocker_StopsOnCancelledContext(t *testing.T) {
	l, _ := memoryLocker(time.Minute)

	release, err := l.Acquire(context.Background(), ParticipantKey("p1"))
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx, ParticipantKey("p1"))
	assert.ErrorIs(t, err, ErrNotAcquired)
}

func TestRedisLocker_KeysAreIndependent(t *testing.T) {
	l, _ := memoryLocker(10 * time.Millisecond)
	ctx := context.Background()

	r1, err := l.Acquire(ctx, CampKey("a"))
	require.NoError(t, err)
	defer r1()
	r2, err := l.Acquire(ctx, CampKey("b"))
	require.NoError(t, err)
	defer r2()
}
