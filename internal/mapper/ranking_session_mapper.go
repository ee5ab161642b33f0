package mapper

import (
	"fmt"
	"time"

	"boardgame-ranking-be/internal/entity"
	"boardgame-ranking-be/internal/model"
	"boardgame-ranking-be/pkg/ranking"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RankingSessionMapper struct{}

func NewRankingSessionMapper() *RankingSessionMapper {
	return &RankingSessionMapper{}
}

// ToEntity fails when a stored state or tier value is not one of the known
// labels, so a corrupted row never reaches the service as a valid session.
func (m *RankingSessionMapper) ToEntity(s *model.RankingSession) (*entity.RankingSession, error) {
	if s == nil {
		return nil, nil
	}

	state, err := entity.ParseRankingState(s.State)
	if err != nil {
		return nil, err
	}

	coarse := make(map[uuid.UUID]ranking.CoarseTier)
	for key, value := range s.CoarseAnswers.Data() {
		id, err := uuid.Parse(key)
		if err != nil {
			return nil, fmt.Errorf("coarse answer key %q: %w", key, err)
		}
		tier, err := ranking.ParseCoarseTier(value)
		if err != nil {
			return nil, err
		}
		coarse[id] = tier
	}

	fine := make(map[uuid.UUID]ranking.FineTier)
	for key, value := range s.FineAnswers.Data() {
		id, err := uuid.Parse(key)
		if err != nil {
			return nil, fmt.Errorf("fine answer key %q: %w", key, err)
		}
		tier, err := ranking.ParseFineTier(value)
		if err != nil {
			return nil, err
		}
		fine[id] = tier
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.RankingSession{
		Id:            s.Id,
		UserId:        s.UserId,
		State:         state,
		TopN:          s.TopN,
		ItemSequence:  []uuid.UUID(s.ItemSequence),
		CoarseAnswers: coarse,
		FineAnswers:   fine,
		CandidatePool: []uuid.UUID(s.CandidatePool),
		FinalOrder:    []uuid.UUID(s.FinalOrder),
		CoarseCursor:  s.CoarseCursor,
		FineCursor:    s.FineCursor,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     updatedAt,
		CompletedAt:   s.CompletedAt,
	}, nil
}

func (m *RankingSessionMapper) ToModel(s *entity.RankingSession) *model.RankingSession {
	if s == nil {
		return nil
	}

	coarse := make(map[string]string, len(s.CoarseAnswers))
	for id, tier := range s.CoarseAnswers {
		coarse[id.String()] = string(tier)
	}
	fine := make(map[string]string, len(s.FineAnswers))
	for id, tier := range s.FineAnswers {
		fine[id.String()] = string(tier)
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.RankingSession{
		Id:            s.Id,
		UserId:        s.UserId,
		State:         string(s.State),
		TopN:          s.TopN,
		ItemSequence:  datatypes.JSONSlice[uuid.UUID](s.ItemSequence),
		CoarseAnswers: datatypes.NewJSONType(coarse),
		FineAnswers:   datatypes.NewJSONType(fine),
		CandidatePool: datatypes.JSONSlice[uuid.UUID](s.CandidatePool),
		FinalOrder:    datatypes.JSONSlice[uuid.UUID](s.FinalOrder),
		CoarseCursor:  s.CoarseCursor,
		FineCursor:    s.FineCursor,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     updatedAt,
		CompletedAt:   s.CompletedAt,
	}
}

func (m *RankingSessionMapper) TopEntryToModel(e *entity.RankingTopEntry) *model.RankingTopEntry {
	if e == nil {
		return nil
	}
	return &model.RankingTopEntry{
		Id:        e.Id,
		UserId:    e.UserId,
		SessionId: e.SessionId,
		GameId:    e.GameId,
		Rank:      e.Rank,
		CreatedAt: e.CreatedAt,
	}
}

func (m *RankingSessionMapper) TopEntriesToEntities(entries []*model.RankingTopEntry) []*entity.RankingTopEntry {
	entities := make([]*entity.RankingTopEntry, len(entries))
	for i, e := range entries {
		entities[i] = &entity.RankingTopEntry{
			Id:        e.Id,
			UserId:    e.UserId,
			SessionId: e.SessionId,
			GameId:    e.GameId,
			Rank:      e.Rank,
			CreatedAt: e.CreatedAt,
		}
	}
	return entities
}
