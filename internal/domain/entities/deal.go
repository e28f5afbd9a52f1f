package entities

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// DealSort represents a deal list sort key
type DealSort string

const (
	DealSortNewest     DealSort = "newest"
	DealSortPopularity DealSort = "popularity"
	DealSortPriceLow   DealSort = "price_low"
	DealSortPriceHigh  DealSort = "price_high"
)

// ParseDealSort maps a query value to a sort key, defaulting to newest.
func ParseDealSort(s string) DealSort {
	switch DealSort(s) {
	case DealSortPopularity, DealSortPriceLow, DealSortPriceHigh:
		return DealSort(s)
	default:
		return DealSortNewest
	}
}

// Deal represents a discounted offer linking a store and category
type Deal struct {
	ID                 uuid.UUID    `json:"id"`
	TitleEn            string       `json:"titleEn"`
	TitleZh            null.String  `json:"titleZh,omitempty"`
	DescriptionEn      null.String  `json:"descriptionEn,omitempty"`
	DescriptionZh      null.String  `json:"descriptionZh,omitempty"`
	OriginalPrice      null.Float64 `json:"originalPrice,omitempty"`
	SalePrice          null.Float64 `json:"salePrice,omitempty"`
	Currency           string       `json:"currency"`
	DiscountPercentage int          `json:"discountPercentage"`
	AffiliateURL       string       `json:"affiliateUrl"`
	ImageURL           null.String  `json:"imageUrl,omitempty"`
	CouponCode         null.String  `json:"couponCode,omitempty"`
	CategoryID         *uuid.UUID   `json:"categoryId,omitempty"`
	StoreID            *uuid.UUID   `json:"storeId,omitempty"`
	StartDate          null.Time    `json:"startDate,omitempty"`
	EndDate            null.Time    `json:"endDate,omitempty"`
	IsActive           bool         `json:"isActive"`
	IsFeatured         bool         `json:"isFeatured"`
	ClickCount         int          `json:"clickCount"`
	ViewCount          int          `json:"viewCount"`
	ConversionCount    int          `json:"conversionCount"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

// IsExpired reports whether the deal's validity window has passed
func (d *Deal) IsExpired(now time.Time) bool {
	return d.EndDate.Valid && d.EndDate.Time.Before(now)
}

// IsEffectivelyActive reports whether the deal is active and not expired
func (d *Deal) IsEffectivelyActive(now time.Time) bool {
	return d.IsActive && !d.IsExpired(now)
}

// CalculateDiscountPercentage derives the discount from the price pair.
// Returns 0 when either price is absent or the sale price is not a discount.
func (d *Deal) CalculateDiscountPercentage() int {
	if !d.OriginalPrice.Valid || !d.SalePrice.Valid {
		return 0
	}
	original := d.OriginalPrice.Float64
	sale := d.SalePrice.Float64
	if original <= 0 || sale >= original {
		return 0
	}
	return int(math.Round((original - sale) / original * 100))
}

// ListDealsInput represents deal listing query parameters
type ListDealsInput struct {
	Keyword    string
	CategoryID *uuid.UUID
	StoreID    *uuid.UUID
	SortBy     DealSort
	Page       int
	Size       int
}

// CreateDealInput represents input for creating a deal
type CreateDealInput struct {
	TitleEn       string     `json:"titleEn" binding:"required,max=500"`
	TitleZh       string     `json:"titleZh,omitempty" binding:"max=500"`
	DescriptionEn string     `json:"descriptionEn,omitempty"`
	DescriptionZh string     `json:"descriptionZh,omitempty"`
	OriginalPrice *float64   `json:"originalPrice,omitempty" binding:"omitempty,gt=0"`
	SalePrice     *float64   `json:"salePrice,omitempty" binding:"omitempty,gt=0"`
	Currency      string     `json:"currency,omitempty" binding:"omitempty,len=3"`
	AffiliateURL  string     `json:"affiliateUrl" binding:"required"`
	ImageURL      string     `json:"imageUrl,omitempty"`
	CouponCode    string     `json:"couponCode,omitempty" binding:"max=50"`
	CategoryID    *uuid.UUID `json:"categoryId,omitempty"`
	StoreID       *uuid.UUID `json:"storeId,omitempty"`
	StartDate     *time.Time `json:"startDate,omitempty"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	IsFeatured    bool       `json:"isFeatured,omitempty"`
}
