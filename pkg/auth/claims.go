package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID           uuid.UUID
	ActiveBusinessID *uuid.UUID
	Role             enums.MemberRole
	JTI              string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID           uuid.UUID        `json:"user_id"`
	ActiveBusinessID *uuid.UUID       `json:"active_business_id,omitempty"`
	Role             enums.MemberRole `json:"role"`
	jwt.RegisteredClaims
}
