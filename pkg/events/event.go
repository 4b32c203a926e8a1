package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "SESSION_PUBLISHED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent carries the common shape; concrete constructors below build
// valid instances.
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

// NewSessionPublished is emitted when a training session goes live; the
// corpus indexer consumes it to embed the session content for retrieval.
func NewSessionPublished(sessionId uuid.UUID, category string) Event {
	return BaseEvent{
		Type: "SESSION_PUBLISHED",
		Data: map[string]interface{}{
			"session_id": sessionId.String(),
			"category":   category,
		},
		OccurredAt: time.Now().UTC(),
	}
}

// NewOutlineSelected is emitted when a caller accepts one generated
// candidate for a session.
func NewOutlineSelected(sessionId uuid.UUID, personaKey string) Event {
	return BaseEvent{
		Type: "OUTLINE_SELECTED",
		Data: map[string]interface{}{
			"session_id": sessionId.String(),
			"persona":    personaKey,
		},
		OccurredAt: time.Now().UTC(),
	}
}
