package implementation

import (
	"context"

	"boardgame-ranking-be/internal/entity"
	"boardgame-ranking-be/internal/mapper"
	"boardgame-ranking-be/internal/model"
	"boardgame-ranking-be/internal/repository/contract"
	"boardgame-ranking-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RankingTopRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RankingSessionMapper
}

func NewRankingTopRepository(db *gorm.DB) contract.RankingTopRepository {
	return &RankingTopRepositoryImpl{
		db:     db,
		mapper: mapper.NewRankingSessionMapper(),
	}
}

func (r *RankingTopRepositoryImpl) ReplaceForUser(ctx context.Context, userId uuid.UUID, entries []*entity.RankingTopEntry) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("user_id = ?", userId).Delete(&model.RankingTopEntry{}).Error; err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	models := make([]*model.RankingTopEntry, len(entries))
	for i, e := range entries {
		models[i] = r.mapper.TopEntryToModel(e)
	}
	return db.Create(&models).Error
}

func (r *RankingTopRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RankingTopEntry, error) {
	var models []*model.RankingTopEntry
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.TopEntriesToEntities(models), nil
}
