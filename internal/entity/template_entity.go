package entity

import (
	"time"

	"github.com/google/uuid"

	"training-builder-be/pkg/outline"
)

// Template is a curated starting outline users can instantiate into a new
// session instead of generating from scratch.
type Template struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	Category    string
	Description string
	Outline     *outline.Document
	IsActive    bool
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
