package mapper

import (
	"encoding/json"
	"time"

	"training-builder-be/internal/entity"
	"training-builder-be/internal/model"
	"training-builder-be/pkg/outline"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.TrainingSession) *entity.TrainingSession {
	if s == nil {
		return nil
	}

	var deletedAt *time.Time
	if s.DeletedAt.Valid {
		t := s.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	var metadata entity.SessionMetadata
	if len(s.Metadata) > 0 {
		// A corrupt column leaves the zero value; the service layer treats
		// that as an unset brief.
		_ = json.Unmarshal(s.Metadata, &metadata)
	}

	var doc *outline.Document
	if len(s.Outline) > 0 {
		var parsed outline.Document
		if err := json.Unmarshal(s.Outline, &parsed); err == nil {
			doc = &parsed
		}
	}

	return &entity.TrainingSession{
		Id:          s.Id,
		UserId:      s.UserId,
		Title:       s.Title,
		Description: s.Description,
		Status:      s.Status,
		Metadata:    metadata,
		Outline:     doc,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   updatedAt,
		PublishedAt: s.PublishedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   s.DeletedAt.Valid,
	}
}

func (m *SessionMapper) ToModel(s *entity.TrainingSession) *model.TrainingSession {
	if s == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if s.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
	} else if s.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	metadataJson, _ := json.Marshal(s.Metadata)

	var outlineJson datatypes.JSON
	if s.Outline != nil {
		raw, _ := json.Marshal(s.Outline)
		outlineJson = raw
	}

	return &model.TrainingSession{
		Id:          s.Id,
		UserId:      s.UserId,
		Title:       s.Title,
		Description: s.Description,
		Status:      s.Status,
		Metadata:    metadataJson,
		Outline:     outlineJson,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   updatedAt,
		PublishedAt: s.PublishedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *SessionMapper) ToEntities(sessions []*model.TrainingSession) []*entity.TrainingSession {
	entities := make([]*entity.TrainingSession, len(sessions))
	for i, s := range sessions {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
