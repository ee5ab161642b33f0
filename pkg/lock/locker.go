// Package lock serializes work on a single ranking session.
//
// Answers for one session must be applied one at a time; callers hold the
// lock for the whole read-modify-write of the session record.
package lock

import (
	"context"
	"errors"
)

// ErrLockTimeout is returned when the lock could not be taken before ctx ended.
var ErrLockTimeout = errors.New("timed out waiting for session lock")

// SessionLocker hands out an exclusive lock per key. The returned release
// func must be called exactly once.
type SessionLocker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}
