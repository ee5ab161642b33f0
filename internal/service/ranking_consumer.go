package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"boardgame-ranking-be/internal/dto"
	"boardgame-ranking-be/internal/entity"
	"boardgame-ranking-be/internal/pkg/logger"
	"boardgame-ranking-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

const consumerModule = "RANKING_CONSUMER"

type IRankingConsumer interface {
	Consume(ctx context.Context) error
}

// Subscriber is the part of *gochannel.GoChannel the consumer needs.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
}

type rankingConsumer struct {
	subscriber Subscriber
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

// NewRankingConsumer keeps each user's latest top list in ranking_top_entries,
// fed by RankingFinalizedMessage payloads.
func NewRankingConsumer(
	subscriber Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
) IRankingConsumer {
	return &rankingConsumer{
		subscriber: subscriber,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     logger,
	}
}

func (c *rankingConsumer) Consume(ctx context.Context) error {
	messages, err := c.subscriber.Subscribe(ctx, c.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			c.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (c *rankingConsumer) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.RankingFinalizedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.logger.Error(consumerModule, "Failed to unmarshal finalized ranking", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // malformed, retrying will not help
		return
	}

	if err := c.storeTopList(ctx, &payload); err != nil {
		c.logger.Error(consumerModule, "Failed to store top list", map[string]interface{}{
			"session_id": payload.SessionId,
			"user_id":    payload.UserId,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	c.logger.Info(consumerModule, "Top list stored", map[string]interface{}{
		"session_id": payload.SessionId,
		"user_id":    payload.UserId,
		"size":       len(payload.FinalOrder),
	})
	msg.Ack()
}

func (c *rankingConsumer) storeTopList(ctx context.Context, payload *dto.RankingFinalizedMessage) error {
	now := time.Now()
	entries := make([]*entity.RankingTopEntry, len(payload.FinalOrder))
	for i, gameId := range payload.FinalOrder {
		entries[i] = &entity.RankingTopEntry{
			Id:        uuid.New(),
			UserId:    payload.UserId,
			SessionId: payload.SessionId,
			GameId:    gameId,
			Rank:      i + 1,
			CreatedAt: now,
		}
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.RankingTopRepository().ReplaceForUser(ctx, payload.UserId, entries); err != nil {
		return fmt.Errorf("replace top list: %w", err)
	}
	return uow.Commit()
}
