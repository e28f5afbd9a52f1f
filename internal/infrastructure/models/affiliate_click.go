package models

import (
	"time"

	"github.com/google/uuid"
)

type AffiliateClick struct {
	ClickID             string     `gorm:"type:varchar(64);primaryKey"`
	DealID              uuid.UUID  `gorm:"type:uuid;not null;index:idx_clicks_deal_ts"`
	UserID              *uuid.UUID `gorm:"type:uuid;index"`
	IPAddress           string     `gorm:"type:varchar(45);not null;index:idx_clicks_ip_ts"`
	UserAgent           *string    `gorm:"type:text"`
	Referrer            *string    `gorm:"type:text"`
	ClickTimestamp      time.Time  `gorm:"not null;index:idx_clicks_deal_ts;index:idx_clicks_ip_ts"`
	Converted           bool       `gorm:"not null;default:false"`
	ConversionTimestamp *time.Time
	CommissionAmount    *float64 `gorm:"type:decimal(10,2)"`
}
