package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"riverdeals.backend/internal/domain/entities"
	domainerrors "riverdeals.backend/internal/domain/errors"
)

// Repo stubs with function fields, nil funcs fail loudly so a test only
// wires what it exercises.

type dealRepoStub struct {
	createFn         func(ctx context.Context, deal *entities.Deal) error
	updateFn         func(ctx context.Context, deal *entities.Deal) error
	getByIDFn        func(ctx context.Context, id uuid.UUID) (*entities.Deal, error)
	getActiveByIDFn  func(ctx context.Context, id uuid.UUID, now time.Time) (*entities.Deal, error)
	listFn           func(ctx context.Context, input entities.ListDealsInput, now time.Time) ([]*entities.Deal, int64, error)
	popularFn        func(ctx context.Context, limit int, now time.Time) ([]*entities.Deal, error)
	incrementClickFn func(ctx context.Context, id uuid.UUID) (int, error)
	countActiveFn    func(ctx context.Context, now time.Time) (int64, error)
}

func (s *dealRepoStub) Create(ctx context.Context, deal *entities.Deal) error {
	return s.createFn(ctx, deal)
}

func (s *dealRepoStub) Update(ctx context.Context, deal *entities.Deal) error {
	return s.updateFn(ctx, deal)
}

func (s *dealRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.Deal, error) {
	return s.getByIDFn(ctx, id)
}

func (s *dealRepoStub) GetActiveByID(ctx context.Context, id uuid.UUID, now time.Time) (*entities.Deal, error) {
	return s.getActiveByIDFn(ctx, id, now)
}

func (s *dealRepoStub) List(ctx context.Context, input entities.ListDealsInput, now time.Time) ([]*entities.Deal, int64, error) {
	return s.listFn(ctx, input, now)
}

func (s *dealRepoStub) Popular(ctx context.Context, limit int, now time.Time) ([]*entities.Deal, error) {
	return s.popularFn(ctx, limit, now)
}

func (s *dealRepoStub) IncrementClickCount(ctx context.Context, id uuid.UUID) (int, error) {
	return s.incrementClickFn(ctx, id)
}

func (s *dealRepoStub) CountActive(ctx context.Context, now time.Time) (int64, error) {
	return s.countActiveFn(ctx, now)
}

func (s *dealRepoStub) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

type clickRepoStub struct {
	createFn          func(ctx context.Context, click *entities.AffiliateClick) error
	getByClickIDFn    func(ctx context.Context, clickID string) (*entities.AffiliateClick, error)
	markConvertedFn   func(ctx context.Context, clickID string, convertedAt time.Time, commission float64) error
	countByDealFn     func(ctx context.Context, dealID uuid.UUID, since time.Time) (int64, error)
	countConversionFn func(ctx context.Context, since time.Time) (int64, error)
	sumCommissionsFn  func(ctx context.Context, since time.Time) (float64, error)
	listByUserFn      func(ctx context.Context, userID uuid.UUID) ([]*entities.AffiliateClick, error)
}

func (s *clickRepoStub) Create(ctx context.Context, click *entities.AffiliateClick) error {
	return s.createFn(ctx, click)
}

func (s *clickRepoStub) GetByClickID(ctx context.Context, clickID string) (*entities.AffiliateClick, error) {
	return s.getByClickIDFn(ctx, clickID)
}

func (s *clickRepoStub) MarkConverted(ctx context.Context, clickID string, convertedAt time.Time, commission float64) error {
	return s.markConvertedFn(ctx, clickID, convertedAt, commission)
}

func (s *clickRepoStub) CountByDealSince(ctx context.Context, dealID uuid.UUID, since time.Time) (int64, error) {
	return s.countByDealFn(ctx, dealID, since)
}

func (s *clickRepoStub) CountConversionsSince(ctx context.Context, since time.Time) (int64, error) {
	return s.countConversionFn(ctx, since)
}

func (s *clickRepoStub) SumCommissionsSince(ctx context.Context, since time.Time) (float64, error) {
	return s.sumCommissionsFn(ctx, since)
}

func (s *clickRepoStub) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.AffiliateClick, error) {
	return s.listByUserFn(ctx, userID)
}

type storeRepoStub struct {
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*entities.Store, error)
	listActiveFn func(ctx context.Context) ([]*entities.Store, error)
}

func (s *storeRepoStub) Create(ctx context.Context, store *entities.Store) error {
	return nil
}

func (s *storeRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.Store, error) {
	if s.getByIDFn == nil {
		return nil, domainerrors.ErrNotFound
	}
	return s.getByIDFn(ctx, id)
}

func (s *storeRepoStub) ListActive(ctx context.Context) ([]*entities.Store, error) {
	return s.listActiveFn(ctx)
}

type categoryRepoStub struct {
	listActiveFn func(ctx context.Context) ([]*entities.Category, error)
}

func (s *categoryRepoStub) Create(ctx context.Context, category *entities.Category) error {
	return nil
}

func (s *categoryRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.Category, error) {
	return nil, domainerrors.ErrNotFound
}

func (s *categoryRepoStub) ListActive(ctx context.Context) ([]*entities.Category, error) {
	return s.listActiveFn(ctx)
}

type userRepoStub struct {
	createFn           func(ctx context.Context, user *entities.User) error
	getByIDFn          func(ctx context.Context, id uuid.UUID) (*entities.User, error)
	getActiveByEmailFn func(ctx context.Context, email string) (*entities.User, error)
	existsByEmailFn    func(ctx context.Context, email string) (bool, error)
	updateProfileFn    func(ctx context.Context, user *entities.User) error
}

func (s *userRepoStub) Create(ctx context.Context, user *entities.User) error {
	return s.createFn(ctx, user)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return s.getByIDFn(ctx, id)
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) GetActiveByEmail(ctx context.Context, email string) (*entities.User, error) {
	return s.getActiveByEmailFn(ctx, email)
}

func (s *userRepoStub) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.existsByEmailFn(ctx, email)
}

func (s *userRepoStub) UpdateProfile(ctx context.Context, user *entities.User) error {
	return s.updateProfileFn(ctx, user)
}

func (s *userRepoStub) SetEmailVerified(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (s *userRepoStub) Deactivate(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (s *userRepoStub) CountActive(ctx context.Context) (int64, error) {
	return 0, nil
}

type throttleStub struct {
	allowFn func(ctx context.Context, source string) (bool, error)
}

func (s *throttleStub) Allow(ctx context.Context, source string) (bool, error) {
	if s.allowFn == nil {
		return true, nil
	}
	return s.allowFn(ctx, source)
}
