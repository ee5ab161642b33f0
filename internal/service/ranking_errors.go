package service

import "errors"

var (
	// ErrNoItems: the user has no rated games, no session is created.
	ErrNoItems = errors.New("user has no rated games to rank")
	// ErrSessionNotFound: unknown id or a session owned by someone else.
	ErrSessionNotFound = errors.New("ranking session not found")
	// ErrInvalidPhase: the answer targets a round the session is not in.
	// Clients should refetch the session instead of retrying.
	ErrInvalidPhase = errors.New("ranking session is not in the requested phase")
	// ErrNoCandidatePool: a fine-round call on a session without a pool.
	// Indicates a broken record, never a client mistake.
	ErrNoCandidatePool = errors.New("ranking session has no candidate pool")
	// ErrInvalidItem: the game is not part of the round being answered.
	ErrInvalidItem = errors.New("game is not part of this ranking round")
	ErrInvalidTier = errors.New("unknown tier value")
)
