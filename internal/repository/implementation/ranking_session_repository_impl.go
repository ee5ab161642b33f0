package implementation

import (
	"context"
	"errors"

	"boardgame-ranking-be/internal/entity"
	"boardgame-ranking-be/internal/mapper"
	"boardgame-ranking-be/internal/model"
	"boardgame-ranking-be/internal/repository/contract"
	"boardgame-ranking-be/internal/repository/specification"

	"gorm.io/gorm"
)

type RankingSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RankingSessionMapper
}

func NewRankingSessionRepository(db *gorm.DB) contract.RankingSessionRepository {
	return &RankingSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewRankingSessionMapper(),
	}
}

func (r *RankingSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *RankingSessionRepositoryImpl) Create(ctx context.Context, session *entity.RankingSession) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	created, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*session = *created
	return nil
}

// Update writes the whole record, zero values included.
func (r *RankingSessionRepositoryImpl) Update(ctx context.Context, session *entity.RankingSession) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	updated, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*session = *updated
	return nil
}

func (r *RankingSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RankingSession, error) {
	var m model.RankingSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}
