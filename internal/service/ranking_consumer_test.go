package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"boardgame-ranking-be/internal/dto"
	"boardgame-ranking-be/internal/pkg/logger"
	"boardgame-ranking-be/internal/repository/specification"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankingConsumer_StoresLatestTopList(t *testing.T) {
	factory := newTestFactory(t)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { pubSub.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	consumer := NewRankingConsumer(pubSub, "RANKING_FINALIZED", factory, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService("RANKING_FINALIZED", pubSub)
	userId := uuid.New()
	first := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	second := []uuid.UUID{first[2], first[0]}

	countEntries := func() int {
		uow := factory.NewUnitOfWork(context.Background())
		entries, err := uow.RankingTopRepository().FindAll(context.Background(), specification.UserOwnedBy{UserID: userId})
		if err != nil {
			return -1
		}
		return len(entries)
	}

	publish := func(order []uuid.UUID) {
		payload, err := json.Marshal(dto.RankingFinalizedMessage{SessionId: uuid.New(), UserId: userId, FinalOrder: order})
		require.NoError(t, err)
		require.NoError(t, publisher.Publish(context.Background(), payload))
	}

	publish(first)
	require.Eventually(t, func() bool { return countEntries() == 3 }, 2*time.Second, 10*time.Millisecond)

	publish(second)
	require.Eventually(t, func() bool { return countEntries() == 2 }, 2*time.Second, 10*time.Millisecond)

	uow := factory.NewUnitOfWork(context.Background())
	entries, err := uow.RankingTopRepository().FindAll(context.Background(),
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "rank"},
	)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first[2], entries[0].GameId)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, first[0], entries[1].GameId)
	assert.Equal(t, 2, entries[1].Rank)
}

func TestRankingConsumer_MalformedPayloadIsDropped(t *testing.T) {
	factory := newTestFactory(t)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { pubSub.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	consumer := NewRankingConsumer(pubSub, "RANKING_FINALIZED", factory, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService("RANKING_FINALIZED", pubSub)
	require.NoError(t, publisher.Publish(context.Background(), []byte("{not json")))

	// the next valid message still gets through
	userId := uuid.New()
	payload, err := json.Marshal(dto.RankingFinalizedMessage{SessionId: uuid.New(), UserId: userId, FinalOrder: []uuid.UUID{uuid.New()}})
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(context.Background(), payload))

	require.Eventually(t, func() bool {
		uow := factory.NewUnitOfWork(context.Background())
		entries, err := uow.RankingTopRepository().FindAll(context.Background(), specification.UserOwnedBy{UserID: userId})
		return err == nil && len(entries) == 1
	}, 2*time.Second, 10*time.Millisecond)
}
