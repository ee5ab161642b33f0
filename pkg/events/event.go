package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	RankingSessionStarted = "RANKING_SESSION_STARTED"
	RankingCompleted      = "RANKING_COMPLETED"
	RankingDeadEnd        = "RANKING_DEAD_END"
	RankingReordered      = "RANKING_REORDERED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "RANKING_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewRankingEvent builds an event about one ranking session. Extra keys are
// merged into the payload.
func NewRankingEvent(eventType string, sessionId, userId uuid.UUID, extra map[string]interface{}) BaseEvent {
	data := map[string]interface{}{
		"session_id":  sessionId,
		"user_id":     userId,
		"entity_type": "ranking_session",
		"entity_id":   sessionId.String(),
	}
	for k, v := range extra {
		data[k] = v
	}
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
