package auth

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/get-hunter/hero365-app-sub002/internal/businesses"
	"github.com/get-hunter/hero365-app-sub002/internal/memberships"
	"github.com/get-hunter/hero365-app-sub002/internal/users"
	"github.com/get-hunter/hero365-app-sub002/pkg/config"
	"github.com/get-hunter/hero365-app-sub002/pkg/db"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
	pkgerrors "github.com/get-hunter/hero365-app-sub002/pkg/errors"
	"github.com/get-hunter/hero365-app-sub002/pkg/phone"
	"github.com/get-hunter/hero365-app-sub002/pkg/security"
	"github.com/get-hunter/hero365-app-sub002/pkg/types"
)

// RegisterRequest contains the payload required for onboarding a new business.
type RegisterRequest struct {
	FirstName    string         `json:"first_name" validate:"required"`
	LastName     string         `json:"last_name" validate:"required"`
	Email        string         `json:"email" validate:"required,email"`
	Password     string         `json:"password" validate:"required,min=8"`
	Phone        *string        `json:"phone,omitempty"`
	BusinessName string         `json:"business_name" validate:"required"`
	Industry     *string        `json:"industry,omitempty"`
	Timezone     string         `json:"timezone,omitempty"`
	Address      *types.Address `json:"address,omitempty"`
	AcceptTOS    bool           `json:"accept_tos"`
}

// RegisterService handles the onboarding transaction.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	DB             *db.Client
	PasswordConfig config.PasswordConfig
	PhoneConfig    config.PhoneConfig
}

type registerService struct {
	db          *db.Client
	passwordCfg config.PasswordConfig
	phoneCfg    config.PhoneConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &registerService{
		db:          params.DB,
		passwordCfg: params.PasswordConfig,
		phoneCfg:    params.PhoneConfig,
	}, nil
}

func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if strings.TrimSpace(req.BusinessName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business_name is required")
	}
	if !req.AcceptTOS {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "accept_tos must be true")
	}

	var normalizedPhone *string
	if req.Phone != nil && strings.TrimSpace(*req.Phone) != "" {
		p, err := phone.Normalize(*req.Phone, s.phoneCfg.DefaultCountryCode)
		if err != nil {
			return nil, err
		}
		normalizedPhone = &p
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var resp RegisterResponse
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)
		businessRepo := businesses.NewRepository(tx)
		membershipRepo := memberships.NewRepository(tx)

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
		}

		user, err := userRepo.Create(ctx, users.CreateUserDTO{
			Email:        email,
			PasswordHash: passwordHash,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Phone:        normalizedPhone,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}

		business, err := businessRepo.Create(ctx, businesses.CreateBusinessDTO{
			Name:     req.BusinessName,
			Industry: req.Industry,
			Phone:    normalizedPhone,
			Email:    &email,
			Address:  req.Address,
			Timezone: req.Timezone,
			OwnerID:  user.ID,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create business")
		}

		if _, err := membershipRepo.CreateMembership(
			ctx,
			business.ID,
			user.ID,
			enums.MemberRoleOwner,
			nil,
			nil,
		); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create membership")
		}

		resp = RegisterResponse{
			UserID:     user.ID,
			BusinessID: business.ID,
			Slug:       business.Slug,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
