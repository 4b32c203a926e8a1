package retrieval

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"training-builder-be/internal/entity"
	"training-builder-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	items []entity.CorpusItem
	err   error
}

func (s *stubSource) Search(ctx context.Context, query SourceQuery) ([]entity.CorpusItem, error) {
	return s.items, s.err
}

func newTestScorer(t *testing.T, source Source, config ScorerConfig, now time.Time) *Scorer {
	t.Helper()
	s, err := NewScorer(source, config, logger.NewNop())
	require.NoError(t, err)
	s.now = func() time.Time { return now }
	return s
}

func corpusItem(category string, createdAt time.Time, similarity, base float64) entity.CorpusItem {
	return entity.CorpusItem{
		Id:            uuid.New(),
		Category:      category,
		CreatedAt:     createdAt,
		RawSimilarity: similarity,
		BaseScore:     base,
	}
}

func TestScorerConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  ScorerConfig
		wantErr bool
	}{
		{"defaults", DefaultScorerConfig(), false},
		{"weights sum to one", ScorerConfig{SimilarityWeight: 0.6, RecencyWeight: 0.2, CategoryWeight: 0.1, BaseScore: 0.1, MaxResults: 5}, false},
		{"weights over one", ScorerConfig{SimilarityWeight: 0.8, RecencyWeight: 0.3, CategoryWeight: 0.2, MaxResults: 5}, true},
		{"negative weight", ScorerConfig{SimilarityWeight: -0.1, MaxResults: 5}, true},
		{"zero max results", ScorerConfig{SimilarityWeight: 0.5, MaxResults: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPerfectItemBlendsToExactlyOne(t *testing.T) {
	now := time.Now()
	config := ScorerConfig{
		SimilarityWeight:    0.4,
		RecencyWeight:       0.3,
		CategoryWeight:      0.2,
		BaseScore:           0.1,
		SimilarityThreshold: 0.0,
		MaxResults:          5,
	}
	s := newTestScorer(t, nil, config, now)

	// rawSimilarity=1, created now (recency=1), matching category.
	item := corpusItem("Leadership", now, 1.0, 0)
	res := s.Rank(entity.SessionMetadata{Category: "Leadership"}, []entity.CorpusItem{item})

	require.Len(t, res.Items, 1)
	assert.InEpsilon(t, 1.0, res.Items[0].BlendedScore, 1e-12)
}

func TestThresholdAppliesToRawSimilarity(t *testing.T) {
	now := time.Now()
	config := DefaultScorerConfig()
	config.SimilarityThreshold = 0.65
	s := newTestScorer(t, nil, config, now)

	// Perfect recency and category cannot rescue a raw similarity of 0.5.
	weak := corpusItem("Leadership", now, 0.5, 1.0)
	strong := corpusItem("Other", now.AddDate(-2, 0, 0), 0.66, 0)

	res := s.Rank(entity.SessionMetadata{Category: "Leadership"}, []entity.CorpusItem{weak, strong})
	require.Len(t, res.Items, 1)
	assert.Equal(t, strong.Id, res.Items[0].Item.Id)
}

func TestRankOrderingAndTieBreak(t *testing.T) {
	now := time.Now()
	config := ScorerConfig{
		SimilarityWeight:    1.0,
		SimilarityThreshold: 0.0,
		MaxResults:          10,
	}
	s := newTestScorer(t, nil, config, now)

	old := corpusItem("", now.AddDate(0, -6, 0), 0.8, 0)
	recent := corpusItem("", now.AddDate(0, 0, -1), 0.8, 0)
	top := corpusItem("", now.AddDate(-1, 0, 0), 0.9, 0)

	res := s.Rank(entity.SessionMetadata{}, []entity.CorpusItem{old, recent, top})
	require.Len(t, res.Items, 3)
	assert.Equal(t, top.Id, res.Items[0].Item.Id)
	// Equal blended scores: more recent wins.
	assert.Equal(t, recent.Id, res.Items[1].Item.Id)
	assert.Equal(t, old.Id, res.Items[2].Item.Id)
}

func TestRankCapsResults(t *testing.T) {
	now := time.Now()
	config := DefaultScorerConfig()
	config.SimilarityThreshold = 0.65
	config.MaxResults = 3
	s := newTestScorer(t, nil, config, now)

	var corpus []entity.CorpusItem
	for i := 0; i < 10; i++ {
		sim := 0.5
		if i < 6 {
			sim = 0.7 + float64(i)*0.01
		}
		corpus = append(corpus, corpusItem("Leadership", now.AddDate(0, 0, -i), sim, 0))
	}

	res := s.Rank(entity.SessionMetadata{Category: "Leadership"}, corpus)
	// 6 items pass the threshold; cap keeps 3, sorted descending.
	require.Len(t, res.Items, 3)
	for i := 1; i < len(res.Items); i++ {
		assert.GreaterOrEqual(t, res.Items[i-1].BlendedScore, res.Items[i].BlendedScore)
	}
	assert.False(t, res.Degraded)
}

func TestRetrieveDegradesOnSourceFailure(t *testing.T) {
	s := newTestScorer(t, &stubSource{err: errors.New("connection refused")}, DefaultScorerConfig(), time.Now())

	res := s.Retrieve(context.Background(), entity.SessionMetadata{Category: "Leadership"})
	assert.True(t, res.Degraded)
	assert.Empty(t, res.Items)
}

func TestRecencyScoreDecay(t *testing.T) {
	now := time.Now()

	assert.Equal(t, 1.0, recencyScore(now, now))
	assert.Equal(t, 1.0, recencyScore(now, now.Add(time.Hour))) // clock skew clamps to 1

	halfLife := recencyScore(now, now.AddDate(0, 0, -90))
	assert.InDelta(t, 0.5, halfLife, 1e-6)

	older := recencyScore(now, now.AddDate(0, 0, -365))
	assert.Less(t, older, halfLife)
	assert.Greater(t, older, 0.0)
	assert.False(t, math.IsNaN(older))
}

func TestBuildQueryText(t *testing.T) {
	text := BuildQueryText(entity.SessionMetadata{
		Category:       "Leadership",
		DesiredOutcome: "Better delegation",
		Topics:         []string{"communication", "trust"},
	})
	assert.Equal(t, "Leadership Better delegation communication trust", text)
}
