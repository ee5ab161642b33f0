package lock

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLocker_SerializesSameKey(t *testing.T) {
	locker := NewMemoryLocker(time.Minute)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maxSeen int
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := locker.Lock(context.Background(), "session-a")
			if !assert.NoError(t, err) {
				return
			}
			defer release()

			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}

func TestMemoryLocker_DifferentKeysIndependent(t *testing.T) {
	locker := NewMemoryLocker(time.Minute)

	releaseA, err := locker.Lock(context.Background(), "a")
	require.NoError(t, err)
	defer releaseA()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	releaseB, err := locker.Lock(ctx, "b")
	require.NoError(t, err)
	releaseB()
}

func TestMemoryLocker_Timeout(t *testing.T) {
	locker := NewMemoryLocker(time.Minute)

	release, err := locker.Lock(context.Background(), "a")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "a")
	assert.ErrorIs(t, err, ErrLockTimeout)
}

func TestMemoryLocker_HeldKeyOutlivesIdle(t *testing.T) {
	locker := NewMemoryLocker(50 * time.Millisecond)

	release, err := locker.Lock(context.Background(), "s")
	require.NoError(t, err)

	time.Sleep(80 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "s")
	assert.ErrorIs(t, err, ErrLockTimeout)

	release()
	release() // second call is a no-op

	// idle again: the key may expire and be recreated
	time.Sleep(120 * time.Millisecond)
	release2, err := locker.Lock(context.Background(), "s")
	require.NoError(t, err)

	ctx2, cancel2 := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel2()
	_, err = locker.Lock(ctx2, "s")
	assert.ErrorIs(t, err, ErrLockTimeout)
	release2()
}

func TestRedisLocker(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("Skipping integration test: REDIS_URL not set")
	}
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	rdb := redis.NewClient(opt)
	defer rdb.Close()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Skipping integration test: redis unreachable: %v", err)
	}

	locker := NewRedisLocker(rdb, 5*time.Second, nil)
	key := "test-" + time.Now().Format(time.RFC3339Nano)

	release, err := locker.Lock(context.Background(), key)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, key)
	assert.ErrorIs(t, err, ErrLockTimeout)

	release()

	release2, err := locker.Lock(context.Background(), key)
	require.NoError(t, err)
	release2()
}
