package retrieval

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"training-builder-be/internal/entity"
	"training-builder-be/internal/pkg/logger"
)

// recencyHalfLifeDays controls how fast the recency signal decays: an item
// this many days old scores 0.5.
const recencyHalfLifeDays = 90.0

// ScorerConfig carries the blend weights and filtering knobs. The four
// weights are expected to sum to at most 1.0 so a perfect item cannot
// exceed a blended score of 1.0.
type ScorerConfig struct {
	SimilarityWeight float64
	RecencyWeight    float64
	CategoryWeight   float64
	// BaseScore is the constant prior added to every blended score. An
	// item carrying its own quality score in (0,1) scales this term down;
	// an unset (zero) item score leaves it at full value.
	BaseScore           float64
	SimilarityThreshold float64
	MaxResults          int
}

// DefaultScorerConfig returns the production blend.
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		SimilarityWeight:    0.5,
		RecencyWeight:       0.2,
		CategoryWeight:      0.2,
		BaseScore:           0.1,
		SimilarityThreshold: 0.65,
		MaxResults:          5,
	}
}

// Validate rejects configs whose weights could push a blended score past 1.0.
func (c ScorerConfig) Validate() error {
	sum := c.SimilarityWeight + c.RecencyWeight + c.CategoryWeight + c.BaseScore
	if sum > 1.0+1e-9 {
		return fmt.Errorf("scorer weights sum to %.3f, must be <= 1.0", sum)
	}
	for name, w := range map[string]float64{
		"similarityWeight": c.SimilarityWeight,
		"recencyWeight":    c.RecencyWeight,
		"categoryWeight":   c.CategoryWeight,
		"baseScore":        c.BaseScore,
	} {
		if w < 0 {
			return fmt.Errorf("%s must be non-negative, got %.3f", name, w)
		}
	}
	if c.MaxResults <= 0 {
		return fmt.Errorf("maxResults must be positive, got %d", c.MaxResults)
	}
	return nil
}

// ScoredItem pairs a corpus item with its blended score.
type ScoredItem struct {
	Item         entity.CorpusItem
	BlendedScore float64
}

// Result is the ranked retrieval outcome for one generation request.
// Degraded is true when the similarity source could not be reached and an
// empty result was substituted; it is never surfaced as an error.
type Result struct {
	Items    []ScoredItem
	Degraded bool
}

// Scorer ranks corpus items against session metadata using a weighted blend
// of similarity, recency, and category signals.
type Scorer struct {
	source Source
	config ScorerConfig
	logger logger.ILogger
	now    func() time.Time
}

func NewScorer(source Source, config ScorerConfig, log logger.ILogger) (*Scorer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scorer config: %w", err)
	}
	return &Scorer{
		source: source,
		config: config,
		logger: log,
		now:    time.Now,
	}, nil
}

// Retrieve queries the similarity source and ranks the result. A source
// failure degrades to an empty result instead of failing the caller.
func (s *Scorer) Retrieve(ctx context.Context, metadata entity.SessionMetadata) Result {
	query := SourceQuery{
		QueryText:     BuildQueryText(metadata),
		Category:      metadata.Category,
		MaxCandidates: s.config.MaxResults * 4, // headroom before threshold filtering
	}

	corpus, err := s.source.Search(ctx, query)
	if err != nil {
		s.logger.Warn("retrieval", "similarity source unavailable, degrading to empty result", map[string]interface{}{
			"error":    err.Error(),
			"category": metadata.Category,
		})
		return Result{Degraded: true}
	}

	return s.Rank(metadata, corpus)
}

// Rank applies the blend to an already-fetched corpus: items below the raw
// similarity threshold are dropped before ranking (the floor applies to the
// raw signal, so recency or category can never rescue a weak match), the
// rest are sorted by blended score with a recent-first tie break, then
// capped at MaxResults.
func (s *Scorer) Rank(metadata entity.SessionMetadata, corpus []entity.CorpusItem) Result {
	now := s.now()
	scored := make([]ScoredItem, 0, len(corpus))

	for _, item := range corpus {
		if item.RawSimilarity < s.config.SimilarityThreshold {
			continue
		}

		categoryMatch := 0.0
		if item.Category == metadata.Category {
			categoryMatch = 1.0
		}

		// The base term is a constant prior; an item's own quality score
		// scales it when set (zero means unknown and counts as full).
		base := s.config.BaseScore
		if item.BaseScore > 0 && item.BaseScore < 1 {
			base *= item.BaseScore
		}

		blended := s.config.SimilarityWeight*item.RawSimilarity +
			s.config.RecencyWeight*recencyScore(now, item.CreatedAt) +
			s.config.CategoryWeight*categoryMatch +
			base

		scored = append(scored, ScoredItem{Item: item, BlendedScore: blended})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].BlendedScore != scored[j].BlendedScore {
			return scored[i].BlendedScore > scored[j].BlendedScore
		}
		return scored[i].Item.CreatedAt.After(scored[j].Item.CreatedAt)
	})

	if len(scored) > s.config.MaxResults {
		scored = scored[:s.config.MaxResults]
	}

	return Result{Items: scored}
}

// recencyScore decays monotonically with item age, bounded to [0,1].
func recencyScore(now, createdAt time.Time) float64 {
	ageDays := now.Sub(createdAt).Hours() / 24
	if ageDays <= 0 {
		return 1.0
	}
	return math.Pow(0.5, ageDays/recencyHalfLifeDays)
}
