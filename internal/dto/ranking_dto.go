package dto

import (
	"time"

	"github.com/google/uuid"
)

const (
	PhaseCoarseRound = "coarse_round"
	PhaseFineRound   = "fine_round"
	PhaseFinal       = "final"
	PhaseDeadEnd     = "dead_end"

	ReasonNoCandidates = "no_candidates"
)

type StartRankingRequest struct {
	TopN *int `json:"top_n" validate:"omitempty,min=1,max=500"`
}

type AnswerCoarseRequest struct {
	SessionId uuid.UUID
	ItemId    uuid.UUID `json:"item_id" validate:"required"`
	Tier      string    `json:"tier" validate:"required,oneof=bad good excellent"`
}

type AnswerFineRequest struct {
	SessionId uuid.UUID
	ItemId    uuid.UUID `json:"item_id" validate:"required"`
	Tier      string    `json:"tier" validate:"required,oneof=cool super_cool excellent"`
}

// ReorderGroupsRequest carries the user's own ordering inside each fine tier.
// Keys are fine tier labels.
type ReorderGroupsRequest struct {
	SessionId uuid.UUID
	Groups    map[string][]uuid.UUID `json:"groups" validate:"required,min=1"`
}

// ApplySwapsRequest carries 1-based position pairs.
type ApplySwapsRequest struct {
	SessionId uuid.UUID
	Swaps     [][2]int `json:"swaps" validate:"required,min=1"`
}

// RankingStepResponse is what the client renders after every call: either
// the next game to classify, the final list, or a dead end.
type RankingStepResponse struct {
	SessionId uuid.UUID         `json:"session_id"`
	Phase     string            `json:"phase"`
	NextItem  *GameItem         `json:"next_item,omitempty"`
	Top       []*RankedGameItem `json:"top,omitempty"`
	Reason    string            `json:"reason,omitempty"`
	Message   string            `json:"message,omitempty"`
	Answered  int               `json:"answered"`
	Total     int               `json:"total"`
}

type RankingSessionResponse struct {
	RankingStepResponse
	TopN        int        `json:"top_n"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

type TopListResponse struct {
	SessionId *uuid.UUID        `json:"session_id"`
	Top       []*RankedGameItem `json:"top"`
}

// RankingFinalizedMessage is published in-process whenever a session's final
// order is set or edited.
type RankingFinalizedMessage struct {
	SessionId  uuid.UUID   `json:"session_id"`
	UserId     uuid.UUID   `json:"user_id"`
	FinalOrder []uuid.UUID `json:"final_order"`
}
