package dto

import (
	"time"

	"github.com/google/uuid"

	"training-builder-be/pkg/outline"
)

type SessionMetadataPayload struct {
	Category         string   `json:"category" validate:"required"`
	DesiredOutcome   string   `json:"desired_outcome" validate:"required"`
	Audience         string   `json:"audience"`
	Tone             string   `json:"tone"`
	Topics           []string `json:"topics"`
	TargetDuration   int      `json:"target_duration" validate:"required,gt=0"`
	ParticipantCount int      `json:"participant_count" validate:"gte=0"`
}

type CreateSessionRequest struct {
	Title       string                 `json:"title" validate:"required"`
	Description string                 `json:"description"`
	Metadata    SessionMetadataPayload `json:"metadata" validate:"required"`
}

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type SessionListItem struct {
	Id          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

type ShowSessionResponse struct {
	Id          uuid.UUID              `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Status      string                 `json:"status"`
	Metadata    SessionMetadataPayload `json:"metadata"`
	Outline     *outline.Document      `json:"outline,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   *time.Time             `json:"updated_at"`
	PublishedAt *time.Time             `json:"published_at,omitempty"`
}

type UpdateSessionRequest struct {
	Id          uuid.UUID
	Title       string                  `json:"title" validate:"required"`
	Description string                  `json:"description"`
	Metadata    *SessionMetadataPayload `json:"metadata"`
}

type UpdateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type PublishSessionResponse struct {
	Id          uuid.UUID `json:"id"`
	Status      string    `json:"status"`
	PublishedAt time.Time `json:"published_at"`
}

// PublishEmbedSessionMessage is the in-process queue payload asking the
// consumer to embed a published session into the retrieval corpus.
type PublishEmbedSessionMessage struct {
	SessionId uuid.UUID `json:"session_id"`
}
