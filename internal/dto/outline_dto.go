package dto

import (
	"time"

	"github.com/google/uuid"

	"training-builder-be/pkg/generation"
	"training-builder-be/pkg/outline"
)

type GenerateOutlineRequest struct {
	QuickTweak bool `json:"quick_tweak"`
}

type GenerateOutlineResponse struct {
	SessionId   uuid.UUID              `json:"session_id"`
	Candidates  []generation.Candidate `json:"candidates"`
	GeneratedAt time.Time              `json:"generated_at"`
}

type SelectOutlineRequest struct {
	SessionId uuid.UUID
	Outline   *outline.Document `json:"outline" validate:"required"`
	Persona   string            `json:"persona"`
}

type SelectOutlineResponse struct {
	Id uuid.UUID `json:"id"`
}

type AddSectionRequest struct {
	SessionId uuid.UUID
	Type      string `json:"type" validate:"required"`
	Position  *int   `json:"position"`
}

type UpdateSectionRequest struct {
	SessionId uuid.UUID
	SectionId uuid.UUID
	Fields    map[string]any `json:"fields" validate:"required"`
}

type ReorderSectionsRequest struct {
	SessionId  uuid.UUID
	SectionIds []uuid.UUID `json:"section_ids" validate:"required,min=1"`
}

type OutlineResponse struct {
	SessionId uuid.UUID         `json:"session_id"`
	Outline   *outline.Document `json:"outline"`
}

type ValidateOutlineResponse struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

type ConvertLegacyRequest struct {
	SessionId uuid.UUID
	Record    outline.LegacyRecord `json:"record" validate:"required"`
}

type SectionTypeResponse struct {
	Type            string   `json:"type"`
	Label           string   `json:"label"`
	Icon            string   `json:"icon"`
	DefaultDuration int      `json:"default_duration"`
	DefaultTitle    string   `json:"default_title"`
	RequiredFields  []string `json:"required_fields,omitempty"`
	AvailableFields []string `json:"available_fields,omitempty"`
	IsProtected     bool     `json:"is_protected"`
	IsCollapsible   bool     `json:"is_collapsible"`
}
