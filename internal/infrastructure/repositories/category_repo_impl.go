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

// CategoryRepository implements category data operations
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, category *entities.Category) error {
	if category.ID == uuid.Nil {
		category.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	category.UpdatedAt = now

	m := &models.Category{
		ID:           category.ID,
		NameEn:       category.NameEn,
		NameZh:       category.NameZh.Ptr(),
		Slug:         category.Slug,
		ParentID:     category.ParentID,
		DisplayOrder: category.DisplayOrder,
		IsActive:     category.IsActive,
		CreatedAt:    category.CreatedAt,
		UpdatedAt:    category.UpdatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Category, error) {
	var m models.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toCategoryEntity(&m), nil
}

// ListActive lists active categories ordered by display order then name
func (r *CategoryRepository) ListActive(ctx context.Context) ([]*entities.Category, error) {
	var categoryModels []models.Category
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order, name_en").
		Find(&categoryModels).Error; err != nil {
		return nil, err
	}

	categories := make([]*entities.Category, 0, len(categoryModels))
	for i := range categoryModels {
		categories = append(categories, toCategoryEntity(&categoryModels[i]))
	}
	return categories, nil
}

func toCategoryEntity(m *models.Category) *entities.Category {
	return &entities.Category{
		ID:           m.ID,
		NameEn:       m.NameEn,
		NameZh:       null.StringFromPtr(m.NameZh),
		Slug:         m.Slug,
		ParentID:     m.ParentID,
		DisplayOrder: m.DisplayOrder,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
