package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"riverdeals.backend/internal/domain/entities"
	domainerrors "riverdeals.backend/internal/domain/errors"
	"riverdeals.backend/internal/domain/repositories"
)

// CatalogUsecase handles category and store lookups
type CatalogUsecase struct {
	categoryRepo repositories.CategoryRepository
	storeRepo    repositories.StoreRepository
}

// NewCatalogUsecase creates a new catalog usecase
func NewCatalogUsecase(categoryRepo repositories.CategoryRepository, storeRepo repositories.StoreRepository) *CatalogUsecase {
	return &CatalogUsecase{
		categoryRepo: categoryRepo,
		storeRepo:    storeRepo,
	}
}

// ListCategories returns active categories in display order
func (u *CatalogUsecase) ListCategories(ctx context.Context) ([]*entities.Category, error) {
	return u.categoryRepo.ListActive(ctx)
}

// ListStores returns active stores ordered by name
func (u *CatalogUsecase) ListStores(ctx context.Context) ([]*entities.Store, error) {
	return u.storeRepo.ListActive(ctx)
}

// GetStoreByID returns a store by ID
func (u *CatalogUsecase) GetStoreByID(ctx context.Context, id uuid.UUID) (*entities.Store, error) {
	store, err := u.storeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("store not found")
		}
		return nil, err
	}
	return store, nil
}

// CreateCategory persists a category, used by seeding and provisioning
func (u *CatalogUsecase) CreateCategory(ctx context.Context, category *entities.Category) error {
	return u.categoryRepo.Create(ctx, category)
}

// CreateStore persists a store, used by seeding and provisioning
func (u *CatalogUsecase) CreateStore(ctx context.Context, store *entities.Store) error {
	return u.storeRepo.Create(ctx, store)
}
