package lock

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"medicamp_api/internal/platform/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotAcquired is returned when the key stays held for the whole wait.
var ErrNotAcquired = errors.New("lock held by another request")

const keyPrefix = "medicamp:lock:"

// Locker serializes work on a single key. The returned release func must be
// called once the guarded work is done.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// releaseScript deletes the key only when it still holds our token.
var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

const (
	minRetry = 20 * time.Millisecond
	maxRetry = 250 * time.Millisecond
)

// RedisLocker waits for a held key instead of failing fast. Acquire retries
// SETNX with a doubling backoff until wait elapses or ctx is done.
type RedisLocker struct {
	ttl  time.Duration
	wait time.Duration

	setNX  func(ctx context.Context, key, token string, ttl time.Duration) (bool, error)
	unlock func(ctx context.Context, key, token string) (int64, error)
}

func NewRedisLocker(rdb *redis.Client, ttl, wait time.Duration) *RedisLocker {
	return &RedisLocker{
		ttl:  ttl,
		wait: wait,
		setNX: func(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
			return rdb.SetNX(ctx, key, token, ttl).Result()
		},
		unlock: func(ctx context.Context, key, token string) (int64, error) {
			return releaseScript.Run(ctx, rdb, []string{key}, token).Int64()
		},
	}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	fullKey := keyPrefix + key
	token := uuid.NewString()

	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	backoff := minRetry
	for {
		ok, err := l.setNX(waitCtx, fullKey, token, l.ttl)
		if err != nil {
			if waitCtx.Err() != nil {
				return nil, fmt.Errorf("lock: %s: %w", fullKey, ErrNotAcquired)
			}
			return nil, fmt.Errorf("lock: setnx %s: %w", fullKey, err)
		}
		if ok {
			break
		}

		timer := time.NewTimer(backoff)
		select {
		case <-waitCtx.Done():
			timer.Stop()
			return nil, fmt.Errorf("lock: %s: %w", fullKey, ErrNotAcquired)
		case <-timer.C:
		}
		if backoff *= 2; backoff > maxRetry {
			backoff = maxRetry
		}
	}

	return func() {
		// The request context may already be cancelled by the time we release.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		deleted, err := l.unlock(releaseCtx, fullKey, token)
		if err != nil {
			log.Printf("ERROR: Failed to release lock %s: %v", fullKey, err)
		} else if deleted == 0 {
			log.Printf("WARN: Lock %s expired before release", fullKey)
		}
	}, nil
}

// NopLocker grants every request immediately.
type NopLocker struct{}

func (NopLocker) Acquire(context.Context, string) (func(), error) {
	return func() {}, nil
}

// Connect returns a Redis-backed locker when REDIS_ADDR is set and a NopLocker
// otherwise. The close func is always safe to call.
func Connect(ctx context.Context, cfg *config.Config) (Locker, func(), error) {
	if !cfg.LockEnabled() {
		log.Println("INFO: REDIS_ADDR not set, write lock disabled")
		return NopLocker{}, func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("lock: could not connect to Redis: %w", err)
	}
	log.Println("Successfully connected to Redis!")

	closeFn := func() {
		if err := rdb.Close(); err != nil {
			log.Printf("ERROR: Redis close: %v", err)
			return
		}
		log.Println("Redis connection closed.")
	}
	return NewRedisLocker(rdb, cfg.LockTTL, cfg.LockWait), closeFn, nil
}

func CampKey(campID string) string { return "camp:" + campID }

func ParticipantKey(participantID string) string { return "participant:" + participantID }
