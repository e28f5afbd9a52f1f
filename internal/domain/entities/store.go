package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// DefaultCommissionRate is used when a store has no rate configured
const DefaultCommissionRate = 0.05

// Store represents a merchant whose deals are listed
type Store struct {
	ID               uuid.UUID    `json:"id"`
	Name             string       `json:"name"`
	Slug             string       `json:"slug"`
	WebsiteURL       null.String  `json:"websiteUrl,omitempty"`
	DescriptionEn    null.String  `json:"descriptionEn,omitempty"`
	DescriptionZh    null.String  `json:"descriptionZh,omitempty"`
	Country          null.String  `json:"country,omitempty"`
	Currency         string       `json:"currency"`
	CommissionRate   null.Float64 `json:"commissionRate,omitempty"`
	AffiliateNetwork null.String  `json:"affiliateNetwork,omitempty"`
	IsActive         bool         `json:"isActive"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// EffectiveCommissionRate returns the store's rate, or fallback when unset.
func (s *Store) EffectiveCommissionRate(fallback float64) float64 {
	if s.CommissionRate.Valid {
		return s.CommissionRate.Float64
	}
	return fallback
}
