package lock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker serializes callers across instances with SET NX PX.
type RedisLocker struct {
	rdb     *redis.Client
	ttl     time.Duration
	retry   time.Duration
	prefix  string
	onError func(err error)
}

func NewRedisLocker(rdb *redis.Client, ttl time.Duration, onError func(err error)) *RedisLocker {
	if onError == nil {
		onError = func(error) {}
	}
	return &RedisLocker{
		rdb:     rdb,
		ttl:     ttl,
		retry:   25 * time.Millisecond,
		prefix:  "ranking:session-lock:",
		onError: onError,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := l.prefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		ok, err := l.rdb.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, ErrLockTimeout
		}
	}

	release := func() {
		// release must work even when the request context is already done
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.rdb, []string{redisKey}, token).Err(); err != nil {
			l.onError(err)
		}
	}
	return release, nil
}
