package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/get-hunter/hero365-app-sub002/internal/memberships"
	"github.com/get-hunter/hero365-app-sub002/internal/users"
	pkgauth "github.com/get-hunter/hero365-app-sub002/pkg/auth"
	"github.com/get-hunter/hero365-app-sub002/pkg/config"
	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
	pkgerrors "github.com/get-hunter/hero365-app-sub002/pkg/errors"
	"github.com/get-hunter/hero365-app-sub002/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	SwitchBusiness(ctx context.Context, userID, businessID uuid.UUID) (*SwitchBusinessResponse, error)
}

type service struct {
	users       userRepository
	memberships membershipsRepository
	jwtCfg      config.JWTConfig
}

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type membershipsRepository interface {
	ListUserBusinesses(ctx context.Context, userID uuid.UUID) ([]memberships.MembershipWithBusiness, error)
	GetMembership(ctx context.Context, userID, businessID uuid.UUID) (*models.BusinessMembership, error)
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo        userRepository
	MembershipsRepo membershipsRepository
	JWTConfig       config.JWTConfig
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.MembershipsRepo == nil {
		return nil, fmt.Errorf("memberships repository is required")
	}
	return &service{
		users:       params.UserRepo,
		memberships: params.MembershipsRepo,
		jwtCfg:      params.JWTConfig,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	userBusinesses, err := s.memberships.ListUserBusinesses(ctx, user.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list businesses")
	}
	if len(userBusinesses) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update last login")
	}
	user.LastLoginAt = &now

	summaries := make([]BusinessSummary, 0, len(userBusinesses))
	for _, m := range userBusinesses {
		summaries = append(summaries, BusinessSummary{
			ID:   m.BusinessID,
			Name: m.BusinessName,
			Slug: m.BusinessSlug,
			Role: m.Role,
		})
	}

	primary := userBusinesses[0]
	activeBusinessID := primary.BusinessID

	tokenPayload := pkgauth.AccessTokenPayload{
		UserID:           user.ID,
		ActiveBusinessID: &activeBusinessID,
		Role:             primary.Role,
	}
	accessToken, err := pkgauth.MintAccessToken(s.jwtCfg, now, tokenPayload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &LoginResponse{
		AccessToken: accessToken,
		Businesses:  summaries,
		User:        users.FromModel(user),
	}, nil
}

// SwitchBusiness mints a token scoped to another business the user belongs to.
func (s *service) SwitchBusiness(ctx context.Context, userID, businessID uuid.UUID) (*SwitchBusinessResponse, error) {
	membership, err := s.memberships.GetMembership(ctx, userID, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not a member of this business")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup membership")
	}
	if !membership.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not a member of this business")
	}

	accessToken, err := pkgauth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID:           userID,
		ActiveBusinessID: &businessID,
		Role:             membership.Role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &SwitchBusinessResponse{
		AccessToken: accessToken,
		BusinessID:  businessID,
		Role:        membership.Role,
	}, nil
}

func (s *service) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	input := strings.TrimSpace(email)
	if input == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	user, err := s.users.FindByEmail(ctx, strings.ToLower(input))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	valid, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid || !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}
