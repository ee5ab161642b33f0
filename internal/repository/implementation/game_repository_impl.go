package implementation

import (
	"context"
	"errors"

	"boardgame-ranking-be/internal/entity"
	"boardgame-ranking-be/internal/mapper"
	"boardgame-ranking-be/internal/model"
	"boardgame-ranking-be/internal/repository/contract"
	"boardgame-ranking-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GameRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GameMapper
}

func NewGameRepository(db *gorm.DB) contract.GameRepository {
	return &GameRepositoryImpl{
		db:     db,
		mapper: mapper.NewGameMapper(),
	}
}

func (r *GameRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GameRepositoryImpl) Create(ctx context.Context, game *entity.Game) error {
	m := r.mapper.ToModel(game)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*game = *r.mapper.ToEntity(m)
	return nil
}

func (r *GameRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Game, error) {
	var m model.Game
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *GameRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Game, error) {
	var models []*model.Game
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *GameRepositoryImpl) FindRatedByUser(ctx context.Context, userId uuid.UUID, specs ...specification.Specification) ([]*entity.Game, error) {
	var models []*model.Game
	query := r.db.WithContext(ctx).
		Model(&model.Game{}).
		Joins("JOIN ratings ON ratings.game_id = games.id").
		Where("ratings.user_id = ?", userId)
	err := r.applySpecifications(query, specs...).
		Order("ratings.rank ASC").
		Order("games.id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *GameRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Game{}).Error
}

func (r *GameRepositoryImpl) CreateRating(ctx context.Context, rating *entity.Rating) error {
	m := r.mapper.RatingToModel(rating)
	if err := r.db.WithContext(ctx).Omit("Game").Create(m).Error; err != nil {
		return err
	}
	*rating = *r.mapper.RatingToEntity(m)
	return nil
}

func (r *GameRepositoryImpl) DeleteAllRatings(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Rating{}).Error
}
