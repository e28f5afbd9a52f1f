package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email             string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash      string    `gorm:"type:varchar(255);not null"`
	FirstName         *string   `gorm:"type:varchar(100)"`
	LastName          *string   `gorm:"type:varchar(100)"`
	PreferredLanguage string    `gorm:"type:varchar(5);not null;default:'en'"`
	PreferredCurrency string    `gorm:"type:varchar(3);not null;default:'USD'"`
	Timezone          *string   `gorm:"type:varchar(50)"`
	IsActive          bool      `gorm:"not null;default:true"`
	EmailVerified     bool      `gorm:"not null;default:false"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
