package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	NameEn       string     `gorm:"type:varchar(100);not null"`
	NameZh       *string    `gorm:"type:varchar(100)"`
	Slug         string     `gorm:"type:varchar(100);uniqueIndex;not null"`
	ParentID     *uuid.UUID `gorm:"type:uuid;index"`
	DisplayOrder int        `gorm:"not null;default:0"`
	IsActive     bool       `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
