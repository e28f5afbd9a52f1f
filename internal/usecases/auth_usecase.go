package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"riverdeals.backend/internal/domain/entities"
	domainerrors "riverdeals.backend/internal/domain/errors"
	"riverdeals.backend/internal/domain/repositories"
	"riverdeals.backend/pkg/crypto"
	"riverdeals.backend/pkg/jwt"
)

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	jwtService *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(userRepo repositories.UserRepository, jwtService *jwt.JWTService) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates an account and returns a signed token
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	exists, err := u.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainerrors.Conflict("email already registered")
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	language := input.PreferredLanguage
	if language == "" {
		language = "en"
	}

	user := &entities.User{
		Email:             email,
		PasswordHash:      passwordHash,
		FirstName:         null.NewString(input.FirstName, input.FirstName != ""),
		LastName:          null.NewString(input.LastName, input.LastName != ""),
		PreferredLanguage: language,
		PreferredCurrency: "USD",
		IsActive:          true,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return u.authResponse(user)
}

// Login authenticates a user. Absent, inactive, and wrong-password cases
// all return the same generic error so callers cannot probe for accounts.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := u.userRepo.GetActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.InvalidCredentials()
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.InvalidCredentials()
	}

	return u.authResponse(user)
}

// Validate checks a token's signature and expiry
func (u *AuthUsecase) Validate(token string) *entities.TokenValidation {
	claims, err := u.jwtService.ValidateToken(token)
	if err != nil {
		return &entities.TokenValidation{Valid: false}
	}
	return &entities.TokenValidation{
		Valid:  true,
		Email:  claims.Email,
		UserID: claims.UserID,
	}
}

// GetUserByID returns a user by ID
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the provided profile fields
func (u *AuthUsecase) UpdateProfile(ctx context.Context, id uuid.UUID, input *entities.UpdateProfileInput) (*entities.User, error) {
	user, err := u.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != "" {
		user.FirstName = null.StringFrom(input.FirstName)
	}
	if input.LastName != "" {
		user.LastName = null.StringFrom(input.LastName)
	}
	if input.PreferredLanguage != "" {
		user.PreferredLanguage = input.PreferredLanguage
	}
	if input.PreferredCurrency != "" {
		user.PreferredCurrency = input.PreferredCurrency
	}
	if input.Timezone != "" {
		user.Timezone = null.StringFrom(input.Timezone)
	}

	if err := u.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// VerifyEmail marks the user's email address as verified
func (u *AuthUsecase) VerifyEmail(ctx context.Context, id uuid.UUID) error {
	if err := u.userRepo.SetEmailVerified(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("user not found")
		}
		return err
	}
	return nil
}

// Deactivate disables the account
func (u *AuthUsecase) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := u.userRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("user not found")
		}
		return err
	}
	return nil
}

// TotalActiveUsers counts active accounts
func (u *AuthUsecase) TotalActiveUsers(ctx context.Context) (int64, error) {
	return u.userRepo.CountActive(ctx)
}

func (u *AuthUsecase) authResponse(user *entities.User) (*entities.AuthResponse, error) {
	token, err := u.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{
		Token:    token,
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName(),
	}, nil
}
