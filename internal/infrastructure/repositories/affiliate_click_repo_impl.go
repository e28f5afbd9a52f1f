package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"riverdeals.backend/internal/domain/entities"
	domainerrors "riverdeals.backend/internal/domain/errors"
	"riverdeals.backend/internal/infrastructure/models"
)

// AffiliateClickRepository implements affiliate click tracking operations
type AffiliateClickRepository struct {
	db *gorm.DB
}

// NewAffiliateClickRepository creates a new affiliate click repository
func NewAffiliateClickRepository(db *gorm.DB) *AffiliateClickRepository {
	return &AffiliateClickRepository{db: db}
}

// Create creates a new affiliate click record
func (r *AffiliateClickRepository) Create(ctx context.Context, click *entities.AffiliateClick) error {
	if click.ClickTimestamp.IsZero() {
		click.ClickTimestamp = time.Now()
	}

	m := &models.AffiliateClick{
		ClickID:        click.ClickID,
		DealID:         click.DealID,
		UserID:         click.UserID,
		IPAddress:      click.IPAddress,
		UserAgent:      click.UserAgent.Ptr(),
		Referrer:       click.Referrer.Ptr(),
		ClickTimestamp: click.ClickTimestamp,
		Converted:      click.Converted,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByClickID gets a click by its ID
func (r *AffiliateClickRepository) GetByClickID(ctx context.Context, clickID string) (*entities.AffiliateClick, error) {
	var m models.AffiliateClick
	if err := r.db.WithContext(ctx).Where("click_id = ?", clickID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toClickEntity(&m), nil
}

// MarkConverted flips converted false->true in a single guarded update.
// The converted=false predicate makes the transition a compare-and-swap:
// of two concurrent callers exactly one update matches, the loser gets
// ErrAlreadyConverted.
func (r *AffiliateClickRepository) MarkConverted(ctx context.Context, clickID string, convertedAt time.Time, commission float64) error {
	result := r.db.WithContext(ctx).Model(&models.AffiliateClick{}).
		Where("click_id = ? AND converted = ?", clickID, false).
		Updates(map[string]interface{}{
			"converted":            true,
			"conversion_timestamp": convertedAt,
			"commission_amount":    commission,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.AffiliateClick{}).
			Where("click_id = ?", clickID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotFound
		}
		return domainerrors.ErrAlreadyConverted
	}
	return nil
}

// CountByDealSince counts clicks for a deal at or after since
func (r *AffiliateClickRepository) CountByDealSince(ctx context.Context, dealID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.AffiliateClick{}).
		Where("deal_id = ? AND click_timestamp >= ?", dealID, since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountConversionsSince counts conversions at or after since
func (r *AffiliateClickRepository) CountConversionsSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.AffiliateClick{}).
		Where("converted = ? AND conversion_timestamp >= ?", true, since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumCommissionsSince sums commissions for conversions at or after since,
// returning 0 when nothing matches
func (r *AffiliateClickRepository) SumCommissionsSince(ctx context.Context, since time.Time) (float64, error) {
	var total float64
	if err := r.db.WithContext(ctx).Model(&models.AffiliateClick{}).
		Select("COALESCE(SUM(commission_amount), 0)").
		Where("converted = ? AND conversion_timestamp >= ?", true, since).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// ListByUserID lists a user's clicks, newest first
func (r *AffiliateClickRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.AffiliateClick, error) {
	var clickModels []models.AffiliateClick
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("click_timestamp DESC").
		Find(&clickModels).Error; err != nil {
		return nil, err
	}

	clicks := make([]*entities.AffiliateClick, 0, len(clickModels))
	for i := range clickModels {
		clicks = append(clicks, toClickEntity(&clickModels[i]))
	}
	return clicks, nil
}

func toClickEntity(m *models.AffiliateClick) *entities.AffiliateClick {
	return &entities.AffiliateClick{
		ClickID:             m.ClickID,
		DealID:              m.DealID,
		UserID:              m.UserID,
		IPAddress:           m.IPAddress,
		UserAgent:           null.StringFromPtr(m.UserAgent),
		Referrer:            null.StringFromPtr(m.Referrer),
		ClickTimestamp:      m.ClickTimestamp,
		Converted:           m.Converted,
		ConversionTimestamp: null.TimeFromPtr(m.ConversionTimestamp),
		CommissionAmount:    null.Float64FromPtr(m.CommissionAmount),
	}
}
