package entity

import (
	"time"

	"github.com/google/uuid"
)

// CorpusItem is one unit of previously authored content available for
// similarity retrieval. RawSimilarity is precomputed by the similarity
// source against the current query; read-only reference data.
type CorpusItem struct {
	Id            uuid.UUID
	Title         string
	Category      string
	CreatedAt     time.Time
	RawSimilarity float64 // [0,1] against the current query
	BaseScore     float64 // editorial quality prior
}
