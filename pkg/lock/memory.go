package lock

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryLocker keeps one semaphore per key in a go-cache. A key expires only
// after it has been idle (no holder, no waiter) for the configured duration.
// It only serializes callers inside one process.
type MemoryLocker struct {
	mu    sync.Mutex
	cache *cache.Cache
}

type memoryEntry struct {
	sem  chan struct{}
	refs int // holders plus waiters, guarded by MemoryLocker.mu
}

func NewMemoryLocker(idle time.Duration) *MemoryLocker {
	return &MemoryLocker{
		cache: cache.New(idle, 2*idle),
	}
}

func (l *MemoryLocker) Lock(ctx context.Context, key string) (func(), error) {
	e := l.acquire(key)

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		l.releaseRef(key, e)
		return nil, ErrLockTimeout
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			l.releaseRef(key, e)
		})
	}, nil
}

// acquire returns the entry for key and pins it in the cache until the
// matching releaseRef.
func (l *MemoryLocker) acquire(key string) *memoryEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	var e *memoryEntry
	if x, found := l.cache.Get(key); found {
		e = x.(*memoryEntry)
	} else {
		e = &memoryEntry{sem: make(chan struct{}, 1)}
	}
	e.refs++
	l.cache.Set(key, e, cache.NoExpiration)
	return e
}

func (l *MemoryLocker) releaseRef(key string, e *memoryEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		l.cache.Set(key, e, cache.DefaultExpiration)
	}
}
