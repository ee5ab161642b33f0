package entity

import (
	"time"

	"github.com/google/uuid"
)

type GameGenre string

const (
	GenreStrategy   GameGenre = "strategy"
	GenreFamily     GameGenre = "family"
	GenreParty      GameGenre = "party"
	GenreCoop       GameGenre = "coop"
	GenreAmeritrash GameGenre = "ameri"
	GenreEuro       GameGenre = "euro"
	GenreAbstract   GameGenre = "abstract"
)

// Game is a catalog entry. The ranking engine never modifies it.
type Game struct {
	Id            uuid.UUID
	Name          string
	BggRank       *int
	NizaGamesRank *int
	Genre         *GameGenre
	UsersRated    *int
	YearPublished *int
	Average       *float64
	BayesAverage  *float64
	AverageWeight *float64
	MinPlayers    *int
	MaxPlayers    *int
	PlayingTime   *int
	MinAge        *int
	Image         *string
	Thumbnail     *string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

type Rating struct {
	Id     uuid.UUID
	UserId uuid.UUID
	GameId uuid.UUID
	Rank   int
}
