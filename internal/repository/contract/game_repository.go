package contract

import (
	"context"

	"boardgame-ranking-be/internal/entity"
	"boardgame-ranking-be/internal/repository/specification"

	"github.com/google/uuid"
)

type GameRepository interface {
	Create(ctx context.Context, game *entity.Game) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Game, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Game, error)
	// FindRatedByUser returns the games the user has a rating for, ordered
	// by the user's rating rank and then by game id. specs must qualify
	// columns with the games table.
	FindRatedByUser(ctx context.Context, userId uuid.UUID, specs ...specification.Specification) ([]*entity.Game, error)
	DeleteAll(ctx context.Context) error

	CreateRating(ctx context.Context, rating *entity.Rating) error
	DeleteAllRatings(ctx context.Context) error
}
