package entity

import (
	"time"

	"github.com/google/uuid"
)

// RankingTopEntry is one line of a user's latest completed top list.
type RankingTopEntry struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	SessionId uuid.UUID
	GameId    uuid.UUID
	Rank      int
	CreatedAt time.Time
}
