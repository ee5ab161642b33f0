package events

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewRankingEvent(t *testing.T) {
	sessionId := uuid.New()
	userId := uuid.New()

	evt := NewRankingEvent(RankingCompleted, sessionId, userId, map[string]interface{}{"top_size": 3})

	assert.Equal(t, RankingCompleted, evt.EventType())
	assert.Equal(t, sessionId, evt.Payload()["session_id"])
	assert.Equal(t, userId, evt.Payload()["user_id"])
	assert.Equal(t, sessionId.String(), evt.Payload()["entity_id"])
	assert.Equal(t, 3, evt.Payload()["top_size"])
	assert.False(t, evt.Timestamp().IsZero())
}
