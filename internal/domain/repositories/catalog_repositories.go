package repositories

import (
	"context"

	"github.com/google/uuid"
	"riverdeals.backend/internal/domain/entities"
)

// CategoryRepository defines category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entities.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Category, error)
	// ListActive returns active categories ordered by display order then name.
	ListActive(ctx context.Context) ([]*entities.Category, error)
}

// StoreRepository defines store data operations
type StoreRepository interface {
	Create(ctx context.Context, store *entities.Store) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Store, error)
	// ListActive returns active stores ordered by name.
	ListActive(ctx context.Context) ([]*entities.Store, error)
}
