package mapper

import (
	"time"

	"training-builder-be/internal/entity"
	"training-builder-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type CorpusMapper struct{}

func NewCorpusMapper() *CorpusMapper {
	return &CorpusMapper{}
}

func (m *CorpusMapper) ToEntity(d *model.CorpusDocument) *entity.CorpusDocument {
	if d == nil {
		return nil
	}

	var deletedAt *time.Time
	if d.DeletedAt.Valid {
		t := d.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.CorpusDocument{
		Id:             d.Id,
		SessionId:      d.SessionId,
		Title:          d.Title,
		Category:       d.Category,
		Document:       d.Document,
		EmbeddingValue: d.EmbeddingValue.Slice(),
		BaseScore:      d.BaseScore,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      d.DeletedAt.Valid,
	}
}

func (m *CorpusMapper) ToModel(d *entity.CorpusDocument) *model.CorpusDocument {
	if d == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if d.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *d.DeletedAt, Valid: true}
	} else if d.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	return &model.CorpusDocument{
		Id:             d.Id,
		SessionId:      d.SessionId,
		Title:          d.Title,
		Category:       d.Category,
		Document:       d.Document,
		EmbeddingValue: pgvector.NewVector(d.EmbeddingValue),
		BaseScore:      d.BaseScore,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *CorpusMapper) ToEntities(docs []*model.CorpusDocument) []*entity.CorpusDocument {
	entities := make([]*entity.CorpusDocument, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
