package repositories

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"riverdeals.backend/internal/domain/entities"
	domainerrors "riverdeals.backend/internal/domain/errors"
)

func newDealRepo(t *testing.T) (*DealRepository, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	createDealTable(t, db)
	return NewDealRepository(db), db
}

func seedDeal(t *testing.T, repo *DealRepository, deal *entities.Deal) *entities.Deal {
	t.Helper()
	if deal.AffiliateURL == "" {
		deal.AffiliateURL = "https://example.com/go"
	}
	if deal.Currency == "" {
		deal.Currency = "USD"
	}
	require.NoError(t, repo.Create(context.Background(), deal))
	return deal
}

func TestDealRepository_CreateDerivesDiscount(t *testing.T) {
	repo, _ := newDealRepo(t)
	ctx := context.Background()

	deal := seedDeal(t, repo, &entities.Deal{
		TitleEn:       "Headphones",
		OriginalPrice: null.Float64From(100.00),
		SalePrice:     null.Float64From(70.00),
		IsActive:      true,
	})

	got, err := repo.GetByID(ctx, deal.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, got.DiscountPercentage)

	// Price change to no-discount clamps back to zero.
	got.SalePrice = null.Float64From(100.00)
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, deal.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.DiscountPercentage)
}

func TestDealRepository_GetActiveByID(t *testing.T) {
	repo, _ := newDealRepo(t)
	ctx := context.Background()
	now := time.Now()

	active := seedDeal(t, repo, &entities.Deal{TitleEn: "Active", IsActive: true})
	inactive := seedDeal(t, repo, &entities.Deal{TitleEn: "Inactive", IsActive: false})
	expired := seedDeal(t, repo, &entities.Deal{
		TitleEn:  "Expired",
		IsActive: true,
		EndDate:  null.TimeFrom(now.Add(-time.Hour)),
	})

	got, err := repo.GetActiveByID(ctx, active.ID, now)
	require.NoError(t, err)
	assert.Equal(t, active.ID, got.ID)

	_, err = repo.GetActiveByID(ctx, inactive.ID, now)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetActiveByID(ctx, expired.ID, now)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetActiveByID(ctx, uuid.New(), now)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestDealRepository_ListFiltersAndPaginates(t *testing.T) {
	repo, _ := newDealRepo(t)
	ctx := context.Background()
	now := time.Now()
	categoryID := uuid.New()
	storeID := uuid.New()

	for i := 0; i < 5; i++ {
		seedDeal(t, repo, &entities.Deal{
			TitleEn:    "In category",
			CategoryID: &categoryID,
			IsActive:   true,
			CreatedAt:  now.Add(time.Duration(-i) * time.Minute),
		})
	}
	seedDeal(t, repo, &entities.Deal{TitleEn: "In store", StoreID: &storeID, IsActive: true})
	seedDeal(t, repo, &entities.Deal{TitleEn: "Inactive", CategoryID: &categoryID, IsActive: false})
	seedDeal(t, repo, &entities.Deal{
		TitleEn:    "Expired",
		CategoryID: &categoryID,
		IsActive:   true,
		EndDate:    null.TimeFrom(now.Add(-time.Hour)),
	})

	deals, total, err := repo.List(ctx, entities.ListDealsInput{
		CategoryID: &categoryID,
		SortBy:     entities.DealSortNewest,
		Page:       0,
		Size:       3,
	}, now)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, deals, 3)

	// Second page holds the remainder; a page past the end is empty.
	deals, total, err = repo.List(ctx, entities.ListDealsInput{
		CategoryID: &categoryID,
		Page:       1,
		Size:       3,
	}, now)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, deals, 2)

	deals, _, err = repo.List(ctx, entities.ListDealsInput{
		CategoryID: &categoryID,
		Page:       5,
		Size:       3,
	}, now)
	require.NoError(t, err)
	assert.Empty(t, deals)

	deals, total, err = repo.List(ctx, entities.ListDealsInput{
		StoreID: &storeID,
		Page:    0,
		Size:    10,
	}, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, deals, 1)
	assert.Equal(t, "In store", deals[0].TitleEn)
}

func TestDealRepository_ListKeywordIsCaseInsensitive(t *testing.T) {
	repo, _ := newDealRepo(t)
	ctx := context.Background()
	now := time.Now()

	seedDeal(t, repo, &entities.Deal{TitleEn: "iPhone 15", IsActive: true})
	seedDeal(t, repo, &entities.Deal{
		TitleEn:       "Laptop stand",
		DescriptionEn: null.StringFrom("Great for iPhone owners too"),
		IsActive:      true,
	})
	seedDeal(t, repo, &entities.Deal{TitleEn: "Coffee maker", IsActive: true})

	deals, total, err := repo.List(ctx, entities.ListDealsInput{
		Keyword: "iphone",
		Page:    0,
		Size:    10,
	}, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, deals, 2)
}

func TestDealRepository_ListSortOrders(t *testing.T) {
	repo, _ := newDealRepo(t)
	ctx := context.Background()
	now := time.Now()
	categoryID := uuid.New()

	clicks := []int{5, 20, 1}
	prices := []float64{39.99, 12.50, 99.00}
	for i := range clicks {
		seedDeal(t, repo, &entities.Deal{
			TitleEn:       "Deal",
			CategoryID:    &categoryID,
			IsActive:      true,
			ClickCount:    clicks[i],
			OriginalPrice: null.Float64From(prices[i] * 2),
			SalePrice:     null.Float64From(prices[i]),
			CreatedAt:     now.Add(time.Duration(i) * time.Minute),
		})
	}

	deals, _, err := repo.List(ctx, entities.ListDealsInput{
		CategoryID: &categoryID,
		SortBy:     entities.DealSortPopularity,
		Page:       0,
		Size:       10,
	}, now)
	require.NoError(t, err)
	require.Len(t, deals, 3)
	assert.Equal(t, []int{20, 5, 1}, []int{deals[0].ClickCount, deals[1].ClickCount, deals[2].ClickCount})

	deals, _, err = repo.List(ctx, entities.ListDealsInput{
		CategoryID: &categoryID,
		SortBy:     entities.DealSortPriceLow,
		Page:       0,
		Size:       10,
	}, now)
	require.NoError(t, err)
	for i := 1; i < len(deals); i++ {
		assert.LessOrEqual(t, deals[i-1].SalePrice.Float64, deals[i].SalePrice.Float64)
	}

	deals, _, err = repo.List(ctx, entities.ListDealsInput{
		CategoryID: &categoryID,
		SortBy:     entities.DealSortPriceHigh,
		Page:       0,
		Size:       10,
	}, now)
	require.NoError(t, err)
	for i := 1; i < len(deals); i++ {
		assert.GreaterOrEqual(t, deals[i-1].SalePrice.Float64, deals[i].SalePrice.Float64)
	}

	deals, _, err = repo.List(ctx, entities.ListDealsInput{
		CategoryID: &categoryID,
		SortBy:     entities.DealSortNewest,
		Page:       0,
		Size:       10,
	}, now)
	require.NoError(t, err)
	for i := 1; i < len(deals); i++ {
		assert.False(t, deals[i-1].CreatedAt.Before(deals[i].CreatedAt), "newest first")
	}
}

func TestDealRepository_Popular(t *testing.T) {
	repo, _ := newDealRepo(t)
	ctx := context.Background()
	now := time.Now()

	for _, clicks := range []int{3, 42, 7, 15} {
		seedDeal(t, repo, &entities.Deal{TitleEn: "Deal", IsActive: true, ClickCount: clicks})
	}
	seedDeal(t, repo, &entities.Deal{TitleEn: "Hidden", IsActive: false, ClickCount: 1000})

	deals, err := repo.Popular(ctx, 2, now)
	require.NoError(t, err)
	require.Len(t, deals, 2)
	assert.Equal(t, 42, deals[0].ClickCount)
	assert.Equal(t, 15, deals[1].ClickCount)
}

func TestDealRepository_IncrementClickCount(t *testing.T) {
	repo, _ := newDealRepo(t)
	ctx := context.Background()

	deal := seedDeal(t, repo, &entities.Deal{TitleEn: "Clicky", IsActive: true})

	count, err := repo.IncrementClickCount(ctx, deal.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = repo.IncrementClickCount(ctx, deal.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = repo.IncrementClickCount(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestDealRepository_IncrementClickCountConcurrent(t *testing.T) {
	repo, _ := newDealRepo(t)
	ctx := context.Background()

	deal := seedDeal(t, repo, &entities.Deal{TitleEn: "Hot deal", IsActive: true})

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.IncrementClickCount(ctx, deal.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := repo.GetByID(ctx, deal.ID)
	require.NoError(t, err)
	assert.Equal(t, n, got.ClickCount, "no lost updates")
}

func TestDealRepository_DeactivateExpired(t *testing.T) {
	repo, _ := newDealRepo(t)
	ctx := context.Background()
	now := time.Now()

	seedDeal(t, repo, &entities.Deal{TitleEn: "Fresh", IsActive: true})
	expired := seedDeal(t, repo, &entities.Deal{
		TitleEn:  "Stale",
		IsActive: true,
		EndDate:  null.TimeFrom(now.Add(-time.Minute)),
	})

	n, err := repo.DeactivateExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.GetByID(ctx, expired.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	total, err := repo.CountActive(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
