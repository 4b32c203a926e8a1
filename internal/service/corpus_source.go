package service

import (
	"context"
	"fmt"

	"training-builder-be/internal/entity"
	"training-builder-be/internal/repository/unitofwork"
	"training-builder-be/pkg/embedding"
	"training-builder-be/pkg/retrieval"
)

// corpusSource adapts the pgvector-backed corpus repository to the
// retrieval.Source contract: it embeds the query text and returns raw
// similarity candidates. Threshold filtering belongs to the scorer, so the
// repository query is unfiltered.
type corpusSource struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewCorpusSource(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) retrieval.Source {
	return &corpusSource{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (s *corpusSource) Search(ctx context.Context, query retrieval.SourceQuery) ([]entity.CorpusItem, error) {
	res, err := s.embeddingProvider.Generate(query.QueryText, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("failed to embed retrieval query: %w", err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.CorpusRepository().SearchSimilarWithScore(ctx, res.Embedding.Values, query.MaxCandidates, 0)
	if err != nil {
		return nil, fmt.Errorf("corpus similarity search failed: %w", err)
	}

	items := make([]entity.CorpusItem, 0, len(scored))
	for _, sc := range scored {
		items = append(items, entity.CorpusItem{
			Id:            sc.Document.Id,
			Title:         sc.Document.Title,
			Category:      sc.Document.Category,
			CreatedAt:     sc.Document.CreatedAt,
			RawSimilarity: sc.Similarity,
			BaseScore:     sc.Document.BaseScore,
		})
	}
	return items, nil
}
