package dto

import (
	"time"

	"github.com/google/uuid"

	"training-builder-be/pkg/outline"
)

type TemplateListItem struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type ShowTemplateResponse struct {
	Id          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Category    string            `json:"category"`
	Description string            `json:"description"`
	Outline     *outline.Document `json:"outline"`
	CreatedAt   time.Time         `json:"created_at"`
}

// InstantiateTemplateRequest creates a new draft session seeded with the
// template's outline.
type InstantiateTemplateRequest struct {
	TemplateId uuid.UUID
	Title      string                 `json:"title" validate:"required"`
	Metadata   SessionMetadataPayload `json:"metadata" validate:"required"`
}

type InstantiateTemplateResponse struct {
	SessionId uuid.UUID `json:"session_id"`
}
