package implementation

import (
	"context"
	"testing"

	"boardgame-ranking-be/internal/entity"
	"boardgame-ranking-be/internal/model"
	"boardgame-ranking-be/internal/repository/specification"
	"boardgame-ranking-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSqliteDB(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func names(games []*entity.Game) []string {
	out := make([]string, len(games))
	for i, g := range games {
		out[i] = g.Name
	}
	return out
}

func TestGameRepository_FindRatedByUser(t *testing.T) {
	ctx := context.Background()
	repo := NewGameRepository(newTestDB(t))
	userId := uuid.New()
	euro := entity.GenreEuro

	rate := func(name string, rank int, genre *entity.GameGenre) {
		game := &entity.Game{Name: name, Genre: genre}
		require.NoError(t, repo.Create(ctx, game))
		require.NoError(t, repo.CreateRating(ctx, &entity.Rating{UserId: userId, GameId: game.Id, Rank: rank}))
	}
	rate("Brass", 2, &euro)
	rate("100%_Orange", 1, nil)
	rate("Ark Nova", 3, &euro)
	require.NoError(t, repo.Create(ctx, &entity.Game{Name: "Unrated"}))

	all, err := repo.FindRatedByUser(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, []string{"100%_Orange", "Brass", "Ark Nova"}, names(all))

	byGenre, err := repo.FindRatedByUser(ctx, userId, specification.ByGenre{Genre: "EURO"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Brass", "Ark Nova"}, names(byGenre))

	// % and _ match literally
	literal, err := repo.FindRatedByUser(ctx, userId, specification.NameContains{Query: "%_o"})
	require.NoError(t, err)
	assert.Equal(t, []string{"100%_Orange"}, names(literal))

	none, err := repo.FindRatedByUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)
}
