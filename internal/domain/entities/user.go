package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// User represents a registered account
type User struct {
	ID                uuid.UUID   `json:"id"`
	Email             string      `json:"email"`
	PasswordHash      string      `json:"-"`
	FirstName         null.String `json:"firstName,omitempty"`
	LastName          null.String `json:"lastName,omitempty"`
	PreferredLanguage string      `json:"preferredLanguage"`
	PreferredCurrency string      `json:"preferredCurrency"`
	Timezone          null.String `json:"timezone,omitempty"`
	IsActive          bool        `json:"isActive"`
	EmailVerified     bool        `json:"emailVerified"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

// FullName derives a display name: first+last, whichever is present, else email
func (u *User) FullName() string {
	parts := make([]string, 0, 2)
	if u.FirstName.Valid && u.FirstName.String != "" {
		parts = append(parts, u.FirstName.String)
	}
	if u.LastName.Valid && u.LastName.String != "" {
		parts = append(parts, u.LastName.String)
	}
	if len(parts) == 0 {
		return u.Email
	}
	return strings.Join(parts, " ")
}

// RegisterInput represents input for user registration
type RegisterInput struct {
	Email             string `json:"email" binding:"required,email"`
	Password          string `json:"password" binding:"required,min=8"`
	FirstName         string `json:"firstName,omitempty" binding:"max=100"`
	LastName          string `json:"lastName,omitempty" binding:"max=100"`
	PreferredLanguage string `json:"preferredLanguage,omitempty" binding:"omitempty,oneof=en zh"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileInput represents input for profile updates
type UpdateProfileInput struct {
	FirstName         string `json:"firstName,omitempty" binding:"max=100"`
	LastName          string `json:"lastName,omitempty" binding:"max=100"`
	PreferredLanguage string `json:"preferredLanguage,omitempty" binding:"omitempty,oneof=en zh"`
	PreferredCurrency string `json:"preferredCurrency,omitempty" binding:"omitempty,len=3"`
	Timezone          string `json:"timezone,omitempty" binding:"max=50"`
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	Token    string    `json:"token"`
	UserID   uuid.UUID `json:"userId"`
	Email    string    `json:"email"`
	FullName string    `json:"fullName"`
}

// TokenValidation represents the outcome of a token validation
type TokenValidation struct {
	Valid  bool      `json:"valid"`
	Email  string    `json:"email,omitempty"`
	UserID uuid.UUID `json:"userId,omitempty"`
}
