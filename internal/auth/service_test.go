package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/get-hunter/hero365-app-sub002/internal/memberships"
	pkgauth "github.com/get-hunter/hero365-app-sub002/pkg/auth"
	"github.com/get-hunter/hero365-app-sub002/pkg/config"
	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
	pkgerrors "github.com/get-hunter/hero365-app-sub002/pkg/errors"
	"github.com/get-hunter/hero365-app-sub002/pkg/security"
)

func TestServiceLoginIssuesTokenForPrimaryBusiness(t *testing.T) {
	password := "owner-secret"
	hashed := mustHashPassword(t, password)
	user := &models.User{
		ID:           uuid.New(),
		Email:        "owner@example.com",
		PasswordHash: hashed,
		FirstName:    "Olive",
		LastName:     "Owner",
		IsActive:     true,
	}
	businessID := uuid.New()
	businessList := []memberships.MembershipWithBusiness{{
		MembershipID: uuid.New(),
		BusinessID:   businessID,
		UserID:       user.ID,
		BusinessName: "Hero Plumbing",
		BusinessSlug: "hero-plumbing",
		Role:         enums.MemberRoleOwner,
	}}
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "hero365",
		ExpirationMinutes: 30,
	}

	svc, err := buildTestService(user, businessList, cfg)
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: password,
	})
	require.NoError(t, err)

	claims, err := pkgauth.ParseAccessToken(cfg, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, enums.MemberRoleOwner, claims.Role)
	require.NotNil(t, claims.ActiveBusinessID)
	assert.Equal(t, businessID, *claims.ActiveBusinessID)
	require.Len(t, resp.Businesses, 1)
	assert.Equal(t, "hero-plumbing", resp.Businesses[0].Slug)
	require.NotNil(t, resp.User)
	assert.NotNil(t, resp.User.LastLoginAt, "expected last login to be recorded")
}

func TestServiceLoginRequiresMembership(t *testing.T) {
	password := "no-biz"
	hashed := mustHashPassword(t, password)
	user := &models.User{
		ID:           uuid.New(),
		Email:        "no-biz@example.com",
		PasswordHash: hashed,
		FirstName:    "Nora",
		LastName:     "User",
		IsActive:     true,
	}
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "hero365",
		ExpirationMinutes: 30,
	}

	svc, err := buildTestService(user, nil, cfg)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: password,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestServiceLoginRejectsWrongPassword(t *testing.T) {
	hashed := mustHashPassword(t, "right-password")
	user := &models.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: hashed,
		IsActive:     true,
	}
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "hero365",
		ExpirationMinutes: 30,
	}

	svc, err := buildTestService(user, nil, cfg)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "wrong-password",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestServiceLoginUnknownEmail(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "hero365",
		ExpirationMinutes: 30,
	}
	svc, err := NewService(ServiceParams{
		UserRepo:        stubUserRepo{err: gorm.ErrRecordNotFound},
		MembershipsRepo: stubMembershipsRepo{},
		JWTConfig:       cfg,
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "missing@example.com",
		Password: "whatever",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestServiceSwitchBusinessMintsScopedToken(t *testing.T) {
	userID := uuid.New()
	businessID := uuid.New()
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "hero365",
		ExpirationMinutes: 30,
	}
	svc, err := NewService(ServiceParams{
		UserRepo: stubUserRepo{},
		MembershipsRepo: stubMembershipsRepo{membership: &models.BusinessMembership{
			BusinessID: businessID,
			UserID:     userID,
			Role:       enums.MemberRoleManager,
			IsActive:   true,
		}},
		JWTConfig: cfg,
	})
	require.NoError(t, err)

	resp, err := svc.SwitchBusiness(context.Background(), userID, businessID)
	require.NoError(t, err)
	claims, err := pkgauth.ParseAccessToken(cfg, resp.AccessToken)
	require.NoError(t, err)
	require.NotNil(t, claims.ActiveBusinessID)
	assert.Equal(t, businessID, *claims.ActiveBusinessID)
	assert.Equal(t, enums.MemberRoleManager, claims.Role)

	_, err = svc.SwitchBusiness(context.Background(), userID, uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func buildTestService(user *models.User, businessList []memberships.MembershipWithBusiness, jwtCfg config.JWTConfig) (Service, error) {
	return NewService(ServiceParams{
		UserRepo:        stubUserRepo{user: user},
		MembershipsRepo: stubMembershipsRepo{businesses: businessList},
		JWTConfig:       jwtCfg,
	})
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	require.NoError(t, err)
	return hash
}

type stubUserRepo struct {
	user *models.User
	err  error
}

func (s stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if s.user != nil && s.user.ID == id {
		s.user.LastLoginAt = &at
	}
	return nil
}

type stubMembershipsRepo struct {
	businesses []memberships.MembershipWithBusiness
	membership *models.BusinessMembership
	err        error
}

func (s stubMembershipsRepo) ListUserBusinesses(ctx context.Context, userID uuid.UUID) ([]memberships.MembershipWithBusiness, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.businesses, nil
}

func (s stubMembershipsRepo) GetMembership(ctx context.Context, userID, businessID uuid.UUID) (*models.BusinessMembership, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.membership == nil || s.membership.BusinessID != businessID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.membership, nil
}
