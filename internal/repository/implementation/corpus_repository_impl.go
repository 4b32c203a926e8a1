package implementation

import (
	"context"
	"errors"

	"training-builder-be/internal/entity"
	"training-builder-be/internal/mapper"
	"training-builder-be/internal/model"
	"training-builder-be/internal/repository/contract"
	"training-builder-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type CorpusRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CorpusMapper
}

func NewCorpusRepository(db *gorm.DB) contract.CorpusRepository {
	return &CorpusRepositoryImpl{
		db:     db,
		mapper: mapper.NewCorpusMapper(),
	}
}

func (r *CorpusRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CorpusRepositoryImpl) Create(ctx context.Context, doc *entity.CorpusDocument) error {
	m := r.mapper.ToModel(doc)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*doc = *r.mapper.ToEntity(m)
	return nil
}

func (r *CorpusRepositoryImpl) CreateBulk(ctx context.Context, docs []*entity.CorpusDocument) error {
	models := make([]*model.CorpusDocument, len(docs))
	for i, d := range docs {
		models[i] = r.mapper.ToModel(d)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	for i, m := range models {
		*docs[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *CorpusRepositoryImpl) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionId).Delete(&model.CorpusDocument{}).Error
}

func (r *CorpusRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CorpusDocument, error) {
	var m model.CorpusDocument
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CorpusRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CorpusDocument, error) {
	var models []*model.CorpusDocument
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *CorpusRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.CorpusDocument{}).Count(&count).Error
	return count, err
}

// SearchSimilarWithScore ranks corpus documents by cosine similarity. The
// <=> operator is pgvector's cosine distance, so similarity = 1 - distance.
func (r *CorpusRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*contract.ScoredCorpusDocument, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.CorpusDocument
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("corpus_documents").
		Select("corpus_documents.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("corpus_documents.deleted_at IS NULL").
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredCorpusDocument, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredCorpusDocument{
			Document:   r.mapper.ToEntity(&res.CorpusDocument),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
