package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RankingSession stores id lists and answer maps as JSON columns. Answer
// maps are keyed by game id string with raw tier values; the mapper parses
// them back into typed tiers.
type RankingSession struct {
	Id            uuid.UUID                             `gorm:"type:uuid;primaryKey"`
	UserId        uuid.UUID                             `gorm:"type:uuid;not null;index"`
	State         string                                `gorm:"type:varchar(20);not null;index"`
	TopN          int                                   `gorm:"not null"`
	ItemSequence  datatypes.JSONSlice[uuid.UUID]        `gorm:"not null"`
	CoarseAnswers datatypes.JSONType[map[string]string] `gorm:"not null"`
	FineAnswers   datatypes.JSONType[map[string]string] `gorm:"not null"`
	CandidatePool datatypes.JSONSlice[uuid.UUID]
	FinalOrder    datatypes.JSONSlice[uuid.UUID]
	CoarseCursor  int       `gorm:"not null;default:0"`
	FineCursor    int       `gorm:"not null;default:0"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
	CompletedAt   *time.Time
}

func (RankingSession) TableName() string {
	return "ranking_sessions"
}

func (s *RankingSession) BeforeCreate(tx *gorm.DB) error {
	if s.Id == uuid.Nil {
		s.Id = uuid.New()
	}
	return nil
}

type RankingTopEntry struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index:idx_ranking_top_user_rank,priority:1"`
	SessionId uuid.UUID `gorm:"type:uuid;not null;index"`
	GameId    uuid.UUID `gorm:"type:uuid;not null"`
	Rank      int       `gorm:"not null;index:idx_ranking_top_user_rank,priority:2"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (RankingTopEntry) TableName() string {
	return "ranking_top_entries"
}

func (e *RankingTopEntry) BeforeCreate(tx *gorm.DB) error {
	if e.Id == uuid.Nil {
		e.Id = uuid.New()
	}
	return nil
}
