package retrieval

import (
	"context"
	"strings"

	"training-builder-be/internal/entity"
)

// SourceQuery is the request shape of the similarity-retrieval collaborator.
type SourceQuery struct {
	QueryText     string `json:"query_text"`
	Category      string `json:"category"`
	MaxCandidates int    `json:"max_candidates"`
}

// Source is the similarity-retrieval collaborator: it returns corpus items
// with raw similarity scores against the query, or an error the scorer maps
// to a degraded (empty, non-failing) result.
type Source interface {
	Search(ctx context.Context, query SourceQuery) ([]entity.CorpusItem, error)
}

// BuildQueryText derives the retrieval query from session metadata.
func BuildQueryText(metadata entity.SessionMetadata) string {
	parts := make([]string, 0, 3+len(metadata.Topics))
	if metadata.Category != "" {
		parts = append(parts, metadata.Category)
	}
	if metadata.DesiredOutcome != "" {
		parts = append(parts, metadata.DesiredOutcome)
	}
	if metadata.Audience != "" {
		parts = append(parts, metadata.Audience)
	}
	parts = append(parts, metadata.Topics...)
	return strings.Join(parts, " ")
}
