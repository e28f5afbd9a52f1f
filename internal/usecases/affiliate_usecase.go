package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"riverdeals.backend/internal/domain/entities"
	domainerrors "riverdeals.backend/internal/domain/errors"
	"riverdeals.backend/internal/domain/repositories"
	"riverdeals.backend/internal/infrastructure/ratelimit"
	"riverdeals.backend/pkg/crypto"
	"riverdeals.backend/pkg/logger"
	"riverdeals.backend/pkg/metrics"
)

// Stats window defaults, in line with the public API contract.
const (
	DefaultClickStatsHours     = 24
	DefaultConversionStatsDays = 7
	DefaultCommissionStatsDays = 30
	clickIDByteLength          = 16
)

// AffiliateUsecase handles click tracking and conversion attribution
type AffiliateUsecase struct {
	clickRepo             repositories.AffiliateClickRepository
	dealRepo              repositories.DealRepository
	storeRepo             repositories.StoreRepository
	throttle              ratelimit.Throttle
	defaultCommissionRate float64
	now                   func() time.Time
}

// NewAffiliateUsecase creates a new affiliate usecase
func NewAffiliateUsecase(
	clickRepo repositories.AffiliateClickRepository,
	dealRepo repositories.DealRepository,
	storeRepo repositories.StoreRepository,
	throttle ratelimit.Throttle,
	defaultCommissionRate float64,
) *AffiliateUsecase {
	if defaultCommissionRate <= 0 {
		defaultCommissionRate = entities.DefaultCommissionRate
	}
	return &AffiliateUsecase{
		clickRepo:             clickRepo,
		dealRepo:              dealRepo,
		storeRepo:             storeRepo,
		throttle:              throttle,
		defaultCommissionRate: defaultCommissionRate,
		now:                   time.Now,
	}
}

// TrackClick records an affiliate click and bumps the deal's counter.
// The throttle keys on the client IP alone: one address gets at most one
// tracked click per window across all deals.
func (u *AffiliateUsecase) TrackClick(ctx context.Context, input *entities.TrackClickInput) (string, error) {
	deal, err := u.dealRepo.GetByID(ctx, input.DealID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "", domainerrors.NotFound("deal not found")
		}
		return "", err
	}

	allowed, err := u.throttle.Allow(ctx, input.IPAddress)
	if err != nil {
		return "", err
	}
	if !allowed {
		metrics.AffiliateClicksThrottled.Inc()
		return "", domainerrors.RateLimited("too many clicks from this address")
	}

	clickID, err := crypto.GenerateRandomToken(clickIDByteLength)
	if err != nil {
		return "", err
	}

	click := &entities.AffiliateClick{
		ClickID:        clickID,
		DealID:         deal.ID,
		UserID:         input.UserID,
		IPAddress:      input.IPAddress,
		UserAgent:      null.NewString(input.UserAgent, input.UserAgent != ""),
		Referrer:       null.NewString(input.Referrer, input.Referrer != ""),
		ClickTimestamp: u.now(),
	}
	if err := u.clickRepo.Create(ctx, click); err != nil {
		return "", err
	}

	if _, err := u.dealRepo.IncrementClickCount(ctx, deal.ID); err != nil {
		return "", err
	}

	metrics.AffiliateClicksTotal.Inc()
	return clickID, nil
}

// RecordConversion attributes an order to a click at most once. The
// commission uses the store's rate when the deal has one, otherwise the
// configured default.
func (u *AffiliateUsecase) RecordConversion(ctx context.Context, clickID string, orderAmount float64) (*entities.AffiliateClick, error) {
	if orderAmount <= 0 {
		return nil, domainerrors.BadRequest("order amount must be positive")
	}

	click, err := u.clickRepo.GetByClickID(ctx, clickID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("click not found")
		}
		return nil, err
	}
	if click.Converted {
		return nil, domainerrors.AlreadyConverted("click already converted")
	}

	rate, err := u.commissionRate(ctx, click.DealID)
	if err != nil {
		return nil, err
	}
	commission := orderAmount * rate

	if err := u.clickRepo.MarkConverted(ctx, clickID, u.now(), commission); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyConverted) {
			return nil, domainerrors.AlreadyConverted("click already converted")
		}
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("click not found")
		}
		return nil, err
	}

	metrics.AffiliateConversionsTotal.Inc()
	metrics.CommissionEarned.Add(commission)

	return u.clickRepo.GetByClickID(ctx, clickID)
}

// ResolveRedirect returns the deal's affiliate URL, tracking the click on
// a best-effort basis. A throttled or failed track never blocks the
// redirect itself.
func (u *AffiliateUsecase) ResolveRedirect(ctx context.Context, input *entities.TrackClickInput) (*entities.RedirectResult, error) {
	deal, err := u.dealRepo.GetByID(ctx, input.DealID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("deal not found")
		}
		return nil, err
	}

	clickID, err := u.TrackClick(ctx, input)
	if err != nil {
		logger.Warn(ctx, "click tracking failed during redirect",
			zap.String("deal_id", deal.ID.String()), zap.Error(err))
		clickID = ""
	}

	return &entities.RedirectResult{
		AffiliateURL: deal.AffiliateURL,
		ClickID:      clickID,
	}, nil
}

// TotalClicksForDeal counts clicks on a deal inside the window
func (u *AffiliateUsecase) TotalClicksForDeal(ctx context.Context, dealID uuid.UUID, hours int) (int64, error) {
	if hours <= 0 {
		hours = DefaultClickStatsHours
	}
	since := u.now().Add(-time.Duration(hours) * time.Hour)
	return u.clickRepo.CountByDealSince(ctx, dealID, since)
}

// TotalConversions counts conversions inside the window
func (u *AffiliateUsecase) TotalConversions(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		days = DefaultConversionStatsDays
	}
	since := u.now().AddDate(0, 0, -days)
	return u.clickRepo.CountConversionsSince(ctx, since)
}

// TotalCommissions sums commission amounts inside the window, 0 when empty
func (u *AffiliateUsecase) TotalCommissions(ctx context.Context, days int) (float64, error) {
	if days <= 0 {
		days = DefaultCommissionStatsDays
	}
	since := u.now().AddDate(0, 0, -days)
	return u.clickRepo.SumCommissionsSince(ctx, since)
}

// UserClickHistory lists a user's clicks, newest first
func (u *AffiliateUsecase) UserClickHistory(ctx context.Context, userID uuid.UUID) ([]*entities.AffiliateClick, error) {
	return u.clickRepo.ListByUserID(ctx, userID)
}

func (u *AffiliateUsecase) commissionRate(ctx context.Context, dealID uuid.UUID) (float64, error) {
	deal, err := u.dealRepo.GetByID(ctx, dealID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return u.defaultCommissionRate, nil
		}
		return 0, err
	}
	if deal.StoreID == nil {
		return u.defaultCommissionRate, nil
	}

	store, err := u.storeRepo.GetByID(ctx, *deal.StoreID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return u.defaultCommissionRate, nil
		}
		return 0, err
	}
	return store.EffectiveCommissionRate(u.defaultCommissionRate), nil
}
