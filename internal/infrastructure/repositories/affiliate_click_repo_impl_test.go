package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"riverdeals.backend/internal/domain/entities"
	domainerrors "riverdeals.backend/internal/domain/errors"
)

func newClickRepo(t *testing.T) *AffiliateClickRepository {
	t.Helper()
	db := newTestDB(t)
	createAffiliateClickTable(t, db)
	return NewAffiliateClickRepository(db)
}

func seedClick(t *testing.T, repo *AffiliateClickRepository, click *entities.AffiliateClick) *entities.AffiliateClick {
	t.Helper()
	if click.ClickID == "" {
		click.ClickID = uuid.NewString()
	}
	if click.DealID == uuid.Nil {
		click.DealID = uuid.New()
	}
	if click.IPAddress == "" {
		click.IPAddress = "203.0.113.7"
	}
	require.NoError(t, repo.Create(context.Background(), click))
	return click
}

func TestAffiliateClickRepository_CreateAndGet(t *testing.T) {
	repo := newClickRepo(t)
	ctx := context.Background()

	click := seedClick(t, repo, &entities.AffiliateClick{})

	got, err := repo.GetByClickID(ctx, click.ClickID)
	require.NoError(t, err)
	assert.Equal(t, click.ClickID, got.ClickID)
	assert.False(t, got.Converted)
	assert.False(t, got.ConversionTimestamp.Valid)
	assert.False(t, got.CommissionAmount.Valid)

	_, err = repo.GetByClickID(ctx, "missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAffiliateClickRepository_MarkConvertedOnce(t *testing.T) {
	repo := newClickRepo(t)
	ctx := context.Background()

	click := seedClick(t, repo, &entities.AffiliateClick{})
	convertedAt := time.Now()

	require.NoError(t, repo.MarkConverted(ctx, click.ClickID, convertedAt, 5.00))

	got, err := repo.GetByClickID(ctx, click.ClickID)
	require.NoError(t, err)
	assert.True(t, got.Converted)
	assert.True(t, got.ConversionTimestamp.Valid)
	assert.Equal(t, 5.00, got.CommissionAmount.Float64)

	// Second transition loses and leaves the first result untouched.
	err = repo.MarkConverted(ctx, click.ClickID, time.Now(), 99.00)
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyConverted)

	got, err = repo.GetByClickID(ctx, click.ClickID)
	require.NoError(t, err)
	assert.Equal(t, 5.00, got.CommissionAmount.Float64)

	err = repo.MarkConverted(ctx, "missing", time.Now(), 1.00)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAffiliateClickRepository_Aggregates(t *testing.T) {
	repo := newClickRepo(t)
	ctx := context.Background()
	now := time.Now()
	dealID := uuid.New()

	seedClick(t, repo, &entities.AffiliateClick{DealID: dealID, ClickTimestamp: now.Add(-time.Hour)})
	seedClick(t, repo, &entities.AffiliateClick{DealID: dealID, ClickTimestamp: now.Add(-30 * time.Hour)})
	seedClick(t, repo, &entities.AffiliateClick{ClickTimestamp: now.Add(-time.Minute)})

	count, err := repo.CountByDealSince(ctx, dealID, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = repo.CountByDealSince(ctx, dealID, now.Add(-48*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// No conversions yet: zero count, zero sum (not an error).
	count, err = repo.CountConversionsSince(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, count)

	total, err := repo.SumCommissionsSince(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, total)

	converted := seedClick(t, repo, &entities.AffiliateClick{DealID: dealID, ClickTimestamp: now})
	require.NoError(t, repo.MarkConverted(ctx, converted.ClickID, now, 12.50))
	converted2 := seedClick(t, repo, &entities.AffiliateClick{DealID: dealID, ClickTimestamp: now})
	require.NoError(t, repo.MarkConverted(ctx, converted2.ClickID, now, 7.25))

	count, err = repo.CountConversionsSince(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	total, err = repo.SumCommissionsSince(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.InDelta(t, 19.75, total, 0.0001)
}

func TestAffiliateClickRepository_ListByUserID(t *testing.T) {
	repo := newClickRepo(t)
	ctx := context.Background()
	now := time.Now()
	userID := uuid.New()

	seedClick(t, repo, &entities.AffiliateClick{UserID: &userID, ClickTimestamp: now.Add(-2 * time.Hour)})
	seedClick(t, repo, &entities.AffiliateClick{UserID: &userID, ClickTimestamp: now.Add(-time.Hour)})
	seedClick(t, repo, &entities.AffiliateClick{ClickTimestamp: now})

	clicks, err := repo.ListByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, clicks, 2)
	assert.True(t, clicks[0].ClickTimestamp.After(clicks[1].ClickTimestamp), "newest first")
}
