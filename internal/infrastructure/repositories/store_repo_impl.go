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
	"riverdeals.backend/pkg/utils"
)

// StoreRepository implements store data operations
type StoreRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates a new store repository
func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

// Create creates a new store
func (r *StoreRepository) Create(ctx context.Context, store *entities.Store) error {
	if store.ID == uuid.Nil {
		store.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	if store.CreatedAt.IsZero() {
		store.CreatedAt = now
	}
	store.UpdatedAt = now

	m := &models.Store{
		ID:               store.ID,
		Name:             store.Name,
		Slug:             store.Slug,
		WebsiteURL:       store.WebsiteURL.Ptr(),
		DescriptionEn:    store.DescriptionEn.Ptr(),
		DescriptionZh:    store.DescriptionZh.Ptr(),
		Country:          store.Country.Ptr(),
		Currency:         store.Currency,
		CommissionRate:   store.CommissionRate.Ptr(),
		AffiliateNetwork: store.AffiliateNetwork.Ptr(),
		IsActive:         store.IsActive,
		CreatedAt:        store.CreatedAt,
		UpdatedAt:        store.UpdatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets a store by ID
func (r *StoreRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Store, error) {
	var m models.Store
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toStoreEntity(&m), nil
}

// ListActive lists active stores ordered by name
func (r *StoreRepository) ListActive(ctx context.Context) ([]*entities.Store, error) {
	var storeModels []models.Store
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name").
		Find(&storeModels).Error; err != nil {
		return nil, err
	}

	stores := make([]*entities.Store, 0, len(storeModels))
	for i := range storeModels {
		stores = append(stores, toStoreEntity(&storeModels[i]))
	}
	return stores, nil
}

func toStoreEntity(m *models.Store) *entities.Store {
	return &entities.Store{
		ID:               m.ID,
		Name:             m.Name,
		Slug:             m.Slug,
		WebsiteURL:       null.StringFromPtr(m.WebsiteURL),
		DescriptionEn:    null.StringFromPtr(m.DescriptionEn),
		DescriptionZh:    null.StringFromPtr(m.DescriptionZh),
		Country:          null.StringFromPtr(m.Country),
		Currency:         m.Currency,
		CommissionRate:   null.Float64FromPtr(m.CommissionRate),
		AffiliateNetwork: null.StringFromPtr(m.AffiliateNetwork),
		IsActive:         m.IsActive,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
