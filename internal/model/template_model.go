package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Template struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string         `gorm:"type:varchar(255);not null"`
	Category    string         `gorm:"type:varchar(100);index"`
	Description string         `gorm:"type:text"`
	Outline     datatypes.JSON `gorm:"type:jsonb"`
	IsActive    bool           `gorm:"default:true"`
	SortOrder   int            `gorm:"default:0"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

func (Template) TableName() string {
	return "templates"
}
