package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"riverdeals.backend/internal/domain/entities"
	domainerrors "riverdeals.backend/internal/domain/errors"
	"riverdeals.backend/internal/domain/repositories"
	"riverdeals.backend/pkg/utils"
)

const (
	defaultPopularLimit = 10
	maxPopularLimit     = 50
)

// DealPage bundles a deal listing with its pagination metadata
type DealPage struct {
	Content []*entities.Deal `json:"content"`
	utils.PaginationMeta
}

// DealUsecase handles deal catalog business logic
type DealUsecase struct {
	dealRepo repositories.DealRepository
	now      func() time.Time
}

// NewDealUsecase creates a new deal usecase
func NewDealUsecase(dealRepo repositories.DealRepository) *DealUsecase {
	return &DealUsecase{
		dealRepo: dealRepo,
		now:      time.Now,
	}
}

// ListDeals returns a filtered, sorted page of effectively active deals.
// All filters are conjunctive. A page past the end yields empty content.
func (u *DealUsecase) ListDeals(ctx context.Context, input entities.ListDealsInput) (*DealPage, error) {
	params := utils.GetPaginationParams(input.Page, input.Size)
	input.Page = params.Page
	input.Size = params.Size
	if input.SortBy == "" {
		input.SortBy = entities.DealSortNewest
	}

	deals, total, err := u.dealRepo.List(ctx, input, u.now())
	if err != nil {
		return nil, err
	}
	if deals == nil {
		deals = []*entities.Deal{}
	}

	return &DealPage{
		Content:        deals,
		PaginationMeta: utils.CalculateMeta(total, params.Page, params.Size),
	}, nil
}

// SearchDeals is ListDeals with a mandatory keyword
func (u *DealUsecase) SearchDeals(ctx context.Context, input entities.ListDealsInput) (*DealPage, error) {
	input.Keyword = strings.TrimSpace(input.Keyword)
	if input.Keyword == "" {
		return nil, domainerrors.BadRequest("search keyword must not be blank")
	}
	return u.ListDeals(ctx, input)
}

// GetDealByID returns a deal only when it is effectively active
func (u *DealUsecase) GetDealByID(ctx context.Context, id uuid.UUID) (*entities.Deal, error) {
	deal, err := u.dealRepo.GetActiveByID(ctx, id, u.now())
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("deal not found")
		}
		return nil, err
	}
	return deal, nil
}

// RecordClick bumps the deal's click counter and returns the new count
func (u *DealUsecase) RecordClick(ctx context.Context, id uuid.UUID) (int, error) {
	count, err := u.dealRepo.IncrementClickCount(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return 0, domainerrors.NotFound("deal not found")
		}
		return 0, err
	}
	return count, nil
}

// GetPopularDeals returns active deals by descending click count
func (u *DealUsecase) GetPopularDeals(ctx context.Context, limit int) ([]*entities.Deal, error) {
	if limit <= 0 {
		limit = defaultPopularLimit
	}
	if limit > maxPopularLimit {
		limit = maxPopularLimit
	}
	return u.dealRepo.Popular(ctx, limit, u.now())
}

// TotalActiveDeals counts effectively active deals
func (u *DealUsecase) TotalActiveDeals(ctx context.Context) (int64, error) {
	return u.dealRepo.CountActive(ctx, u.now())
}

// CreateDeal validates and persists a new deal
func (u *DealUsecase) CreateDeal(ctx context.Context, input *entities.CreateDealInput) (*entities.Deal, error) {
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return nil, domainerrors.BadRequest("end date must not precede start date")
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	deal := &entities.Deal{
		TitleEn:       input.TitleEn,
		TitleZh:       null.NewString(input.TitleZh, input.TitleZh != ""),
		DescriptionEn: null.NewString(input.DescriptionEn, input.DescriptionEn != ""),
		DescriptionZh: null.NewString(input.DescriptionZh, input.DescriptionZh != ""),
		OriginalPrice: null.Float64FromPtr(input.OriginalPrice),
		SalePrice:     null.Float64FromPtr(input.SalePrice),
		Currency:      currency,
		AffiliateURL:  input.AffiliateURL,
		ImageURL:      null.NewString(input.ImageURL, input.ImageURL != ""),
		CouponCode:    null.NewString(input.CouponCode, input.CouponCode != ""),
		CategoryID:    input.CategoryID,
		StoreID:       input.StoreID,
		StartDate:     null.TimeFromPtr(input.StartDate),
		EndDate:       null.TimeFromPtr(input.EndDate),
		IsActive:      true,
		IsFeatured:    input.IsFeatured,
	}

	if err := u.dealRepo.Create(ctx, deal); err != nil {
		return nil, err
	}
	return deal, nil
}
