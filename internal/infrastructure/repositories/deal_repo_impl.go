package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"riverdeals.backend/internal/domain/entities"
	domainerrors "riverdeals.backend/internal/domain/errors"
	"riverdeals.backend/internal/infrastructure/models"
	"riverdeals.backend/pkg/utils"
)

// DealRepository implements deal catalog operations
type DealRepository struct {
	db *gorm.DB
}

// NewDealRepository creates a new deal repository
func NewDealRepository(db *gorm.DB) *DealRepository {
	return &DealRepository{db: db}
}

// Create creates a new deal, deriving the discount percentage
func (r *DealRepository) Create(ctx context.Context, deal *entities.Deal) error {
	if deal.ID == uuid.Nil {
		deal.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	if deal.CreatedAt.IsZero() {
		deal.CreatedAt = now
	}
	deal.UpdatedAt = now
	deal.DiscountPercentage = deal.CalculateDiscountPercentage()

	m := toDealModel(deal)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	return nil
}

// Update updates a deal's mutable fields and recomputes the discount
func (r *DealRepository) Update(ctx context.Context, deal *entities.Deal) error {
	deal.UpdatedAt = time.Now()
	deal.DiscountPercentage = deal.CalculateDiscountPercentage()

	result := r.db.WithContext(ctx).Model(&models.Deal{}).Where("id = ?", deal.ID).Updates(map[string]interface{}{
		"title_en":            deal.TitleEn,
		"title_zh":            deal.TitleZh.Ptr(),
		"description_en":      deal.DescriptionEn.Ptr(),
		"description_zh":      deal.DescriptionZh.Ptr(),
		"original_price":      deal.OriginalPrice.Ptr(),
		"sale_price":          deal.SalePrice.Ptr(),
		"currency":            deal.Currency,
		"discount_percentage": deal.DiscountPercentage,
		"affiliate_url":       deal.AffiliateURL,
		"image_url":           deal.ImageURL.Ptr(),
		"coupon_code":         deal.CouponCode.Ptr(),
		"category_id":         deal.CategoryID,
		"store_id":            deal.StoreID,
		"start_date":          deal.StartDate.Ptr(),
		"end_date":            deal.EndDate.Ptr(),
		"is_active":           deal.IsActive,
		"is_featured":         deal.IsFeatured,
		"updated_at":          deal.UpdatedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// GetByID gets a deal by ID regardless of active state
func (r *DealRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Deal, error) {
	var m models.Deal
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toDealEntity(&m), nil
}

// GetActiveByID gets a deal by ID only when it is effectively active
func (r *DealRepository) GetActiveByID(ctx context.Context, id uuid.UUID, now time.Time) (*entities.Deal, error) {
	var m models.Deal
	if err := r.activeScope(ctx, now).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toDealEntity(&m), nil
}

// List lists effectively active deals matching the filter, with a stable
// sort and offset pagination. Returns the page plus the total match count.
func (r *DealRepository) List(ctx context.Context, input entities.ListDealsInput, now time.Time) ([]*entities.Deal, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		db = db.
			Where("is_active = ?", true).
			Where("end_date IS NULL OR end_date > ?", now)
		if input.CategoryID != nil {
			db = db.Where("category_id = ?", *input.CategoryID)
		}
		if input.StoreID != nil {
			db = db.Where("store_id = ?", *input.StoreID)
		}
		if input.Keyword != "" {
			pattern := "%" + strings.ToLower(input.Keyword) + "%"
			db = db.Where(
				"LOWER(title_en) LIKE ? OR LOWER(title_zh) LIKE ? OR LOWER(description_en) LIKE ? OR LOWER(description_zh) LIKE ?",
				pattern, pattern, pattern, pattern,
			)
		}
		return db
	}

	var total int64
	if err := filter(r.db.WithContext(ctx).Model(&models.Deal{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var dealModels []models.Deal
	if err := filter(r.db.WithContext(ctx)).
		Order(orderClause(input.SortBy)).
		Limit(input.Size).
		Offset(utils.PaginationParams{Page: input.Page, Size: input.Size}.CalculateOffset()).
		Find(&dealModels).Error; err != nil {
		return nil, 0, err
	}

	deals := make([]*entities.Deal, 0, len(dealModels))
	for i := range dealModels {
		deals = append(deals, toDealEntity(&dealModels[i]))
	}
	return deals, total, nil
}

// Popular returns up to limit active deals by descending click count
func (r *DealRepository) Popular(ctx context.Context, limit int, now time.Time) ([]*entities.Deal, error) {
	var dealModels []models.Deal
	if err := r.activeScope(ctx, now).
		Order("click_count DESC, id").
		Limit(limit).
		Find(&dealModels).Error; err != nil {
		return nil, err
	}

	deals := make([]*entities.Deal, 0, len(dealModels))
	for i := range dealModels {
		deals = append(deals, toDealEntity(&dealModels[i]))
	}
	return deals, nil
}

// IncrementClickCount atomically bumps the click counter and returns the
// new count. The increment happens in SQL so concurrent callers never
// lose updates.
func (r *DealRepository) IncrementClickCount(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	result := r.db.WithContext(ctx).Raw(
		"UPDATE deals SET click_count = click_count + 1, updated_at = ? WHERE id = ? RETURNING click_count",
		time.Now(), id,
	).Scan(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, domainerrors.ErrNotFound
	}
	return count, nil
}

// CountActive counts effectively active deals
func (r *DealRepository) CountActive(ctx context.Context, now time.Time) (int64, error) {
	var total int64
	if err := r.activeScope(ctx, now).Model(&models.Deal{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// DeactivateExpired flips is_active off for deals past their end date
func (r *DealRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Deal{}).
		Where("is_active = ? AND end_date IS NOT NULL AND end_date <= ?", true, now).
		Updates(map[string]interface{}{"is_active": false, "updated_at": now})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *DealRepository) activeScope(ctx context.Context, now time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("end_date IS NULL OR end_date > ?", now)
}

// orderClause maps a sort key to an ORDER BY with an id tiebreak so the
// ordering is stable across pages.
func orderClause(sort entities.DealSort) string {
	switch sort {
	case entities.DealSortPopularity:
		return "click_count DESC, id"
	case entities.DealSortPriceLow:
		return "sale_price ASC, id"
	case entities.DealSortPriceHigh:
		return "sale_price DESC, id"
	default:
		return "created_at DESC, id"
	}
}

func toDealModel(d *entities.Deal) *models.Deal {
	return &models.Deal{
		ID:                 d.ID,
		TitleEn:            d.TitleEn,
		TitleZh:            d.TitleZh.Ptr(),
		DescriptionEn:      d.DescriptionEn.Ptr(),
		DescriptionZh:      d.DescriptionZh.Ptr(),
		OriginalPrice:      d.OriginalPrice.Ptr(),
		SalePrice:          d.SalePrice.Ptr(),
		Currency:           d.Currency,
		DiscountPercentage: d.DiscountPercentage,
		AffiliateURL:       d.AffiliateURL,
		ImageURL:           d.ImageURL.Ptr(),
		CouponCode:         d.CouponCode.Ptr(),
		CategoryID:         d.CategoryID,
		StoreID:            d.StoreID,
		StartDate:          d.StartDate.Ptr(),
		EndDate:            d.EndDate.Ptr(),
		IsActive:           d.IsActive,
		IsFeatured:         d.IsFeatured,
		ClickCount:         d.ClickCount,
		ViewCount:          d.ViewCount,
		ConversionCount:    d.ConversionCount,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

func toDealEntity(m *models.Deal) *entities.Deal {
	return &entities.Deal{
		ID:                 m.ID,
		TitleEn:            m.TitleEn,
		TitleZh:            null.StringFromPtr(m.TitleZh),
		DescriptionEn:      null.StringFromPtr(m.DescriptionEn),
		DescriptionZh:      null.StringFromPtr(m.DescriptionZh),
		OriginalPrice:      null.Float64FromPtr(m.OriginalPrice),
		SalePrice:          null.Float64FromPtr(m.SalePrice),
		Currency:           m.Currency,
		DiscountPercentage: m.DiscountPercentage,
		AffiliateURL:       m.AffiliateURL,
		ImageURL:           null.StringFromPtr(m.ImageURL),
		CouponCode:         null.StringFromPtr(m.CouponCode),
		CategoryID:         m.CategoryID,
		StoreID:            m.StoreID,
		StartDate:          null.TimeFromPtr(m.StartDate),
		EndDate:            null.TimeFromPtr(m.EndDate),
		IsActive:           m.IsActive,
		IsFeatured:         m.IsFeatured,
		ClickCount:         m.ClickCount,
		ViewCount:          m.ViewCount,
		ConversionCount:    m.ConversionCount,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
