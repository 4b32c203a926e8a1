package entity

import (
	"time"

	"github.com/google/uuid"
)

// CorpusDocument is an embedded unit of published session content stored
// for similarity retrieval. Document holds the text that was embedded.
type CorpusDocument struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionId      uuid.UUID `gorm:"type:uuid;index"`
	Title          string
	Category       string
	Document       string
	EmbeddingValue []float32
	BaseScore      float64
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
