package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultTTL bounds how long a crashed holder can keep a lock.
	DefaultTTL = time.Minute
	// DefaultRetryInterval is the polling interval while waiting.
	DefaultRetryInterval = 100 * time.Millisecond
)

// releaseScript deletes the lock only if this process still owns it.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker implements lock.SessionLocker across processes using
// SET NX with a TTL.
type RedisLocker struct {
	client        *redis.Client
	ttl           time.Duration
	retryInterval time.Duration
}

// New creates a new RedisLocker.
func New(client *redis.Client) *RedisLocker {
	return &RedisLocker{
		client:        client,
		ttl:           DefaultTTL,
		retryInterval: DefaultRetryInterval,
	}
}

// Lock acquires the session lock, polling until it is free or ctx is done.
func (l *RedisLocker) Lock(ctx context.Context, sessionID string) (func(), error) {
	key := fmt.Sprintf("lock:session:%s", sessionID)
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}
		if ok {
			release := func() {
				releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err()
			}
			return release, nil
		}

		select {
		case <-time.After(l.retryInterval):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
