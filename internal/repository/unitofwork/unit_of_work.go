package unitofwork

import (
	"context"

	"boardgame-ranking-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	GameRepository() contract.GameRepository
	RankingSessionRepository() contract.RankingSessionRepository
	RankingTopRepository() contract.RankingTopRepository
}
