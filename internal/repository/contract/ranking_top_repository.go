package contract

import (
	"context"

	"boardgame-ranking-be/internal/entity"
	"boardgame-ranking-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RankingTopRepository interface {
	// ReplaceForUser drops the user's previous top list and stores entries.
	ReplaceForUser(ctx context.Context, userId uuid.UUID, entries []*entity.RankingTopEntry) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RankingTopEntry, error)
}
