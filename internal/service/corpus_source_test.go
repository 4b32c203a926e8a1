package service

import (
	"context"
	"testing"
	"time"

	"training-builder-be/internal/entity"
	"training-builder-be/pkg/retrieval"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorpusSourceSearch(t *testing.T) {
	factory := newFakeRepoFactory()
	embedder := &fakeEmbedder{}
	source := NewCorpusSource(factory, embedder)

	sessionId := uuid.New()
	factory.uow.corpus.docs = []*entity.CorpusDocument{
		{
			Id:        uuid.New(),
			SessionId: sessionId,
			Title:     "Giving feedback without friction",
			Category:  "leadership",
			BaseScore: 0.7,
			CreatedAt: time.Now().AddDate(0, -1, 0),
		},
		{
			Id:        uuid.New(),
			SessionId: sessionId,
			Title:     "Running retrospectives",
			Category:  "communication",
			CreatedAt: time.Now().AddDate(-1, 0, 0),
		},
	}

	items, err := source.Search(context.Background(), retrieval.SourceQuery{
		QueryText:     "leadership feedback",
		Category:      "leadership",
		MaxCandidates: 5,
	})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Giving feedback without friction", items[0].Title)
	assert.Equal(t, 0.9, items[0].RawSimilarity)
	assert.Equal(t, 0.7, items[0].BaseScore)

	// Query embeddings are tagged as retrieval queries, not documents.
	require.Len(t, embedder.calls, 1)
	assert.Equal(t, "RETRIEVAL_QUERY", embedder.calls[0])
}

func TestCorpusSourceRespectsCandidateLimit(t *testing.T) {
	factory := newFakeRepoFactory()
	source := NewCorpusSource(factory, &fakeEmbedder{})

	for i := 0; i < 8; i++ {
		factory.uow.corpus.docs = append(factory.uow.corpus.docs, &entity.CorpusDocument{
			Id:        uuid.New(),
			SessionId: uuid.New(),
			Title:     "doc",
			CreatedAt: time.Now(),
		})
	}

	items, err := source.Search(context.Background(), retrieval.SourceQuery{
		QueryText:     "anything",
		MaxCandidates: 3,
	})
	require.NoError(t, err)
	assert.Len(t, items, 3)
}
