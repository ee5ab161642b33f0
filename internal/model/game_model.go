package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Game struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"type:varchar(255);not null;index"`
	BggRank       *int
	NizaGamesRank *int
	Genre         *string `gorm:"type:varchar(50)"`
	UsersRated    *int
	YearPublished *int
	Average       *float64
	BayesAverage  *float64
	AverageWeight *float64
	MinPlayers    *int
	MaxPlayers    *int
	PlayingTime   *int
	MinAge        *int
	Image         *string   `gorm:"type:text"`
	Thumbnail     *string   `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Game) TableName() string {
	return "games"
}

func (g *Game) BeforeCreate(tx *gorm.DB) error {
	if g.Id == uuid.Nil {
		g.Id = uuid.New()
	}
	return nil
}

type Rating struct {
	Id     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_game,priority:1"`
	GameId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_game,priority:2;index"`
	Game   Game      `gorm:"foreignKey:GameId;constraint:OnDelete:CASCADE;"`
	Rank   int       `gorm:"not null"`
}

func (Rating) TableName() string {
	return "ratings"
}

func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	if r.Id == uuid.Nil {
		r.Id = uuid.New()
	}
	return nil
}
