package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TrainingSession struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title       string         `gorm:"type:varchar(255);not null"`
	Description string         `gorm:"type:text"`
	Status      string         `gorm:"type:varchar(20);not null;default:'draft';index"`
	Metadata    datatypes.JSON `gorm:"type:jsonb"`
	Outline     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	PublishedAt *time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (TrainingSession) TableName() string {
	return "training_sessions"
}
