package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type CorpusDocument struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title          string          `gorm:"type:varchar(255);not null"`
	Category       string          `gorm:"type:varchar(100);index"`
	Document       string          `gorm:"type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"` // nomic-embed-text uses 768 dimensions
	BaseScore      float64         `gorm:"default:0"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt  `gorm:"index"`
}

func (CorpusDocument) TableName() string {
	return "corpus_documents"
}
