package mapper

import (
	"time"

	"boardgame-ranking-be/internal/entity"
	"boardgame-ranking-be/internal/model"
)

type GameMapper struct{}

func NewGameMapper() *GameMapper {
	return &GameMapper{}
}

func (m *GameMapper) ToEntity(g *model.Game) *entity.Game {
	if g == nil {
		return nil
	}

	var genre *entity.GameGenre
	if g.Genre != nil {
		v := entity.GameGenre(*g.Genre)
		genre = &v
	}

	var updatedAt *time.Time
	if !g.UpdatedAt.IsZero() {
		t := g.UpdatedAt
		updatedAt = &t
	}

	return &entity.Game{
		Id:            g.Id,
		Name:          g.Name,
		BggRank:       g.BggRank,
		NizaGamesRank: g.NizaGamesRank,
		Genre:         genre,
		UsersRated:    g.UsersRated,
		YearPublished: g.YearPublished,
		Average:       g.Average,
		BayesAverage:  g.BayesAverage,
		AverageWeight: g.AverageWeight,
		MinPlayers:    g.MinPlayers,
		MaxPlayers:    g.MaxPlayers,
		PlayingTime:   g.PlayingTime,
		MinAge:        g.MinAge,
		Image:         g.Image,
		Thumbnail:     g.Thumbnail,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *GameMapper) ToModel(g *entity.Game) *model.Game {
	if g == nil {
		return nil
	}

	var genre *string
	if g.Genre != nil {
		v := string(*g.Genre)
		genre = &v
	}

	var updatedAt time.Time
	if g.UpdatedAt != nil {
		updatedAt = *g.UpdatedAt
	}

	return &model.Game{
		Id:            g.Id,
		Name:          g.Name,
		BggRank:       g.BggRank,
		NizaGamesRank: g.NizaGamesRank,
		Genre:         genre,
		UsersRated:    g.UsersRated,
		YearPublished: g.YearPublished,
		Average:       g.Average,
		BayesAverage:  g.BayesAverage,
		AverageWeight: g.AverageWeight,
		MinPlayers:    g.MinPlayers,
		MaxPlayers:    g.MaxPlayers,
		PlayingTime:   g.PlayingTime,
		MinAge:        g.MinAge,
		Image:         g.Image,
		Thumbnail:     g.Thumbnail,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *GameMapper) ToEntities(games []*model.Game) []*entity.Game {
	entities := make([]*entity.Game, len(games))
	for i, g := range games {
		entities[i] = m.ToEntity(g)
	}
	return entities
}

func (m *GameMapper) RatingToModel(r *entity.Rating) *model.Rating {
	if r == nil {
		return nil
	}
	return &model.Rating{
		Id:     r.Id,
		UserId: r.UserId,
		GameId: r.GameId,
		Rank:   r.Rank,
	}
}

func (m *GameMapper) RatingToEntity(r *model.Rating) *entity.Rating {
	if r == nil {
		return nil
	}
	return &entity.Rating{
		Id:     r.Id,
		UserId: r.UserId,
		GameId: r.GameId,
		Rank:   r.Rank,
	}
}
