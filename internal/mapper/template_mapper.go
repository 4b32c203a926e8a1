package mapper

import (
	"encoding/json"
	"time"

	"training-builder-be/internal/entity"
	"training-builder-be/internal/model"
	"training-builder-be/pkg/outline"

	"gorm.io/datatypes"
)

type TemplateMapper struct{}

func NewTemplateMapper() *TemplateMapper {
	return &TemplateMapper{}
}

func (m *TemplateMapper) ToEntity(t *model.Template) *entity.Template {
	if t == nil {
		return nil
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		ts := t.UpdatedAt
		updatedAt = &ts
	}

	var doc *outline.Document
	if len(t.Outline) > 0 {
		var parsed outline.Document
		if err := json.Unmarshal(t.Outline, &parsed); err == nil {
			doc = &parsed
		}
	}

	return &entity.Template{
		Id:          t.Id,
		Name:        t.Name,
		Category:    t.Category,
		Description: t.Description,
		Outline:     doc,
		IsActive:    t.IsActive,
		SortOrder:   t.SortOrder,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *TemplateMapper) ToModel(t *entity.Template) *model.Template {
	if t == nil {
		return nil
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	var outlineJson datatypes.JSON
	if t.Outline != nil {
		raw, _ := json.Marshal(t.Outline)
		outlineJson = raw
	}

	return &model.Template{
		Id:          t.Id,
		Name:        t.Name,
		Category:    t.Category,
		Description: t.Description,
		Outline:     outlineJson,
		IsActive:    t.IsActive,
		SortOrder:   t.SortOrder,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *TemplateMapper) ToEntities(templates []*model.Template) []*entity.Template {
	entities := make([]*entity.Template, len(templates))
	for i, t := range templates {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
