package models

import (
	"time"

	"github.com/google/uuid"
)

type Deal struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TitleEn            string     `gorm:"type:varchar(500);not null"`
	TitleZh            *string    `gorm:"type:varchar(500)"`
	DescriptionEn      *string    `gorm:"type:text"`
	DescriptionZh      *string    `gorm:"type:text"`
	OriginalPrice      *float64   `gorm:"type:decimal(10,2)"`
	SalePrice          *float64   `gorm:"type:decimal(10,2)"`
	Currency           string     `gorm:"type:varchar(3);not null;default:'USD'"`
	DiscountPercentage int        `gorm:"not null;default:0"`
	AffiliateURL       string     `gorm:"type:text;not null"`
	ImageURL           *string    `gorm:"type:text"`
	CouponCode         *string    `gorm:"type:varchar(50)"`
	CategoryID         *uuid.UUID `gorm:"type:uuid;index:idx_deals_category"`
	StoreID            *uuid.UUID `gorm:"type:uuid;index:idx_deals_store"`
	StartDate          *time.Time
	EndDate            *time.Time
	IsActive           bool `gorm:"not null;default:true;index:idx_deals_active"`
	IsFeatured         bool `gorm:"not null;default:false"`
	ClickCount         int  `gorm:"not null;default:0"`
	ViewCount          int  `gorm:"not null;default:0"`
	ConversionCount    int  `gorm:"not null;default:0"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
