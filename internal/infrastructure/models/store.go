package models

import (
	"time"

	"github.com/google/uuid"
)

type Store struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name             string    `gorm:"type:varchar(200);not null"`
	Slug             string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	WebsiteURL       *string   `gorm:"type:text"`
	DescriptionEn    *string   `gorm:"type:text"`
	DescriptionZh    *string   `gorm:"type:text"`
	Country          *string   `gorm:"type:varchar(2)"`
	Currency         string    `gorm:"type:varchar(3);not null;default:'USD'"`
	CommissionRate   *float64  `gorm:"type:decimal(5,4)"`
	AffiliateNetwork *string   `gorm:"type:varchar(100)"`
	IsActive         bool      `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
