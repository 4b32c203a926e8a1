package contract

import (
	"context"

	"training-builder-be/internal/entity"
	"training-builder-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredCorpusDocument wraps a corpus document with its cosine similarity
// against the query vector.
type ScoredCorpusDocument struct {
	Document   *entity.CorpusDocument
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type CorpusRepository interface {
	Create(ctx context.Context, doc *entity.CorpusDocument) error
	CreateBulk(ctx context.Context, docs []*entity.CorpusDocument) error
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CorpusDocument, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CorpusDocument, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore returns documents whose cosine similarity
	// against the query vector is at least threshold, best first.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*ScoredCorpusDocument, error)
}
