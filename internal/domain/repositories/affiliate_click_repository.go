package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"riverdeals.backend/internal/domain/entities"
)

// AffiliateClickRepository defines affiliate click tracking operations
type AffiliateClickRepository interface {
	Create(ctx context.Context, click *entities.AffiliateClick) error
	GetByClickID(ctx context.Context, clickID string) (*entities.AffiliateClick, error)
	// MarkConverted flips converted false->true for clickID in a single
	// guarded update. Returns ErrNotFound for an unknown id and
	// ErrAlreadyConverted when the transition already happened.
	MarkConverted(ctx context.Context, clickID string, convertedAt time.Time, commission float64) error
	CountByDealSince(ctx context.Context, dealID uuid.UUID, since time.Time) (int64, error)
	CountConversionsSince(ctx context.Context, since time.Time) (int64, error)
	// SumCommissionsSince returns 0 when no converted clicks match.
	SumCommissionsSince(ctx context.Context, since time.Time) (float64, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.AffiliateClick, error)
}
