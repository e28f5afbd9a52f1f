package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"riverdeals.backend/internal/domain/entities"
)

// DealRepository defines deal catalog operations
type DealRepository interface {
	Create(ctx context.Context, deal *entities.Deal) error
	Update(ctx context.Context, deal *entities.Deal) error
	// GetByID returns a deal regardless of its active state.
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Deal, error)
	// GetActiveByID returns a deal only when it is effectively active at now.
	GetActiveByID(ctx context.Context, id uuid.UUID, now time.Time) (*entities.Deal, error)
	// List returns the filtered, sorted, paginated active deals plus the
	// total count matching the filter.
	List(ctx context.Context, input entities.ListDealsInput, now time.Time) ([]*entities.Deal, int64, error)
	// Popular returns up to limit active deals by descending click count.
	Popular(ctx context.Context, limit int, now time.Time) ([]*entities.Deal, error)
	// IncrementClickCount atomically bumps the click counter and returns
	// the new count.
	IncrementClickCount(ctx context.Context, id uuid.UUID) (int, error)
	CountActive(ctx context.Context, now time.Time) (int64, error)
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}
