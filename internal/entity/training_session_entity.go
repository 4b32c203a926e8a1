package entity

import (
	"time"

	"github.com/google/uuid"

	"training-builder-be/pkg/outline"
)

const (
	SessionStatusDraft     = "draft"
	SessionStatusPublished = "published"
)

// TrainingSession is a user-owned authoring workspace: the brief the user
// filled in plus, once chosen, the outline being edited.
type TrainingSession struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId      uuid.UUID `gorm:"type:uuid;index"`
	Title       string
	Description string
	Status      string
	Metadata    SessionMetadata
	Outline     *outline.Document
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	PublishedAt *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}
