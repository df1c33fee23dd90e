package auth

import (
	"github.com/google/uuid"

	"github.com/get-hunter/hero365-app-sub002/internal/users"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
)

// LoginRequest is the credentials payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// BusinessSummary is the compact business view returned with a login.
type BusinessSummary struct {
	ID   uuid.UUID        `json:"id"`
	Name string           `json:"name"`
	Slug string           `json:"slug"`
	Role enums.MemberRole `json:"role"`
}

// LoginResponse carries the access token plus the caller's businesses.
type LoginResponse struct {
	AccessToken string            `json:"access_token"`
	Businesses  []BusinessSummary `json:"businesses"`
	User        *users.UserDTO    `json:"user"`
}

// SwitchBusinessResponse carries a token re-scoped to another business.
type SwitchBusinessResponse struct {
	AccessToken string           `json:"access_token"`
	BusinessID  uuid.UUID        `json:"business_id"`
	Role        enums.MemberRole `json:"role"`
}

// RegisterResponse carries the identifiers created during onboarding.
type RegisterResponse struct {
	UserID     uuid.UUID `json:"user_id"`
	BusinessID uuid.UUID `json:"business_id"`
	Slug       string    `json:"slug"`
}
