package entity

import (
	"fmt"
	"time"

	"boardgame-ranking-be/pkg/ranking"

	"github.com/google/uuid"
)

type RankingState string

const (
	RankingStateCoarse  RankingState = "coarse_round"
	RankingStateFine    RankingState = "fine_round"
	RankingStateFinal   RankingState = "final"
	RankingStateDeadEnd RankingState = "dead_end"
)

func ParseRankingState(s string) (RankingState, error) {
	switch st := RankingState(s); st {
	case RankingStateCoarse, RankingStateFine, RankingStateFinal, RankingStateDeadEnd:
		return st, nil
	}
	return "", fmt.Errorf("unknown ranking state %q", s)
}

// RankingSession is one user's pass through the two-round funnel.
//
// CandidatePool is nil until the coarse round closes with at least one
// candidate; FinalOrder is nil until the fine round closes.
type RankingSession struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	State         RankingState
	TopN          int
	ItemSequence  []uuid.UUID
	CoarseAnswers map[uuid.UUID]ranking.CoarseTier
	FineAnswers   map[uuid.UUID]ranking.FineTier
	CandidatePool []uuid.UUID
	FinalOrder    []uuid.UUID
	CoarseCursor  int
	FineCursor    int
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	CompletedAt   *time.Time
}

func (s *RankingSession) Answered() int {
	switch s.State {
	case RankingStateCoarse, RankingStateDeadEnd:
		return len(s.CoarseAnswers)
	}
	return len(s.FineAnswers)
}

func (s *RankingSession) Total() int {
	switch s.State {
	case RankingStateCoarse, RankingStateDeadEnd:
		return len(s.ItemSequence)
	}
	return len(s.CandidatePool)
}

// Validate checks the record invariants. It is run before every write.
func (s *RankingSession) Validate() error {
	inSequence := toSet(s.ItemSequence)
	for id := range s.CoarseAnswers {
		if _, ok := inSequence[id]; !ok {
			return fmt.Errorf("coarse answer for %s outside item sequence", id)
		}
	}

	hasPool := s.State == RankingStateFine || s.State == RankingStateFinal
	if hasPool != (s.CandidatePool != nil) {
		return fmt.Errorf("candidate pool presence does not match state %s", s.State)
	}
	inPool := toSet(s.CandidatePool)
	for id := range s.FineAnswers {
		if _, ok := inPool[id]; !ok {
			return fmt.Errorf("fine answer for %s outside candidate pool", id)
		}
	}

	if (s.State == RankingStateFinal) != (s.FinalOrder != nil) {
		return fmt.Errorf("final order presence does not match state %s", s.State)
	}
	if len(s.FinalOrder) > s.TopN {
		return fmt.Errorf("final order has %d entries, top n is %d", len(s.FinalOrder), s.TopN)
	}
	seen := make(map[uuid.UUID]struct{}, len(s.FinalOrder))
	for _, id := range s.FinalOrder {
		if _, ok := inPool[id]; !ok {
			return fmt.Errorf("final order entry %s outside candidate pool", id)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("final order entry %s duplicated", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func toSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
