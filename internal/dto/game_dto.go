package dto

import "github.com/google/uuid"

type GameItem struct {
	Id            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	BggRank       *int      `json:"bgg_rank,omitempty"`
	NizaGamesRank *int      `json:"niza_games_rank,omitempty"`
	Genre         *string   `json:"genre,omitempty"`
	UsersRated    *int      `json:"usersrated,omitempty"`
	YearPublished *int      `json:"yearpublished,omitempty"`
	Average       *float64  `json:"average,omitempty"`
	BayesAverage  *float64  `json:"bayesaverage,omitempty"`
	AverageWeight *float64  `json:"averageweight,omitempty"`
	MinPlayers    *int      `json:"minplayers,omitempty"`
	MaxPlayers    *int      `json:"maxplayers,omitempty"`
	PlayingTime   *int      `json:"playingtime,omitempty"`
	MinAge        *int      `json:"minage,omitempty"`
	Image         *string   `json:"image,omitempty"`
	Thumbnail     *string   `json:"thumbnail,omitempty"`
}

type RankedGameItem struct {
	GameItem
	Rank int `json:"rank"`
}

type GetRatedGamesRequest struct {
	Genre string `query:"genre" validate:"omitempty,max=50"`
	Name  string `query:"name" validate:"omitempty,max=100"`
}

type GetRatedGamesResponse struct {
	Games []*GameItem `json:"games"`
	Total int         `json:"total"`
}

// ImportGameRow is one parsed line of a catalog import file. Ratings maps a
// user id to that user's rank for the game.
type ImportGameRow struct {
	Name          string
	BggRank       *int
	NizaGamesRank *int
	Genre         *string
	Ratings       map[uuid.UUID]int
}

type ImportCatalogResponse struct {
	Games   int `json:"games"`
	Ratings int `json:"ratings"`
}
