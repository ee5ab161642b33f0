package contract

import (
	"context"

	"boardgame-ranking-be/internal/entity"
	"boardgame-ranking-be/internal/repository/specification"
)

type RankingSessionRepository interface {
	Create(ctx context.Context, session *entity.RankingSession) error
	Update(ctx context.Context, session *entity.RankingSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RankingSession, error)
}
