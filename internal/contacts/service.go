package contacts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/get-hunter/hero365-app-sub002/pkg/config"
	"github.com/get-hunter/hero365-app-sub002/pkg/db"
	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
	pkgerrors "github.com/get-hunter/hero365-app-sub002/pkg/errors"
	"github.com/get-hunter/hero365-app-sub002/pkg/pagination"
	"github.com/get-hunter/hero365-app-sub002/pkg/phone"
)

const uniqueEmailConstraint = "uq_contacts_business_email"

// Service manages per-business contacts.
type Service interface {
	Create(ctx context.Context, businessID uuid.UUID, req CreateContactRequest) (*ContactDTO, error)
	Get(ctx context.Context, businessID, id uuid.UUID) (*ContactDTO, error)
	List(ctx context.Context, businessID uuid.UUID, filter ListFilter, page pagination.Params) (*ContactList, error)
	Update(ctx context.Context, businessID, id uuid.UUID, req UpdateContactRequest) (*ContactDTO, error)
	Delete(ctx context.Context, businessID, id uuid.UUID) error
}

type contactRepo interface {
	Create(ctx context.Context, contact *models.Contact) error
	FindByID(ctx context.Context, businessID, id uuid.UUID) (*models.Contact, error)
	List(ctx context.Context, businessID uuid.UUID, filter ListFilter, page pagination.Params) ([]models.Contact, string, error)
	Update(ctx context.Context, businessID, id uuid.UUID, updates map[string]any) error
	Deactivate(ctx context.Context, businessID, id uuid.UUID) error
}

// ServiceParams bundles the dependencies for the contacts service.
type ServiceParams struct {
	Repo        contactRepo
	PhoneConfig config.PhoneConfig
}

type service struct {
	repo     contactRepo
	phoneCfg config.PhoneConfig
}

// NewService constructs the contacts service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("contact repository is required")
	}
	return &service{repo: params.Repo, phoneCfg: params.PhoneConfig}, nil
}

func (s *service) Create(ctx context.Context, businessID uuid.UUID, req CreateContactRequest) (*ContactDTO, error) {
	if !req.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid contact type")
	}
	if strings.TrimSpace(req.FirstName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "first_name is required")
	}

	if req.Phone != nil && strings.TrimSpace(*req.Phone) != "" {
		normalized, err := phone.Normalize(*req.Phone, s.phoneCfg.DefaultCountryCode)
		if err != nil {
			return nil, err
		}
		req.Phone = &normalized
	} else {
		req.Phone = nil
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			req.Email = nil
		} else {
			req.Email = &email
		}
	}

	contact := req.toModel(businessID)
	if err := s.repo.Create(ctx, contact); err != nil {
		if db.IsUniqueViolation(err, uniqueEmailConstraint) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a contact with this email already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create contact")
	}
	return FromModel(contact), nil
}

func (s *service) Get(ctx context.Context, businessID, id uuid.UUID) (*ContactDTO, error) {
	contact, err := s.repo.FindByID(ctx, businessID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "contact not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load contact")
	}
	return FromModel(contact), nil
}

func (s *service) List(ctx context.Context, businessID uuid.UUID, filter ListFilter, page pagination.Params) (*ContactList, error) {
	rows, next, err := s.repo.List(ctx, businessID, filter, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list contacts")
	}
	out := make([]ContactDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return &ContactList{Contacts: out, NextCursor: next}, nil
}

func (s *service) Update(ctx context.Context, businessID, id uuid.UUID, req UpdateContactRequest) (*ContactDTO, error) {
	updates := map[string]any{}

	if req.Type != nil {
		if !req.Type.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid contact type")
		}
		updates["type"] = *req.Type
	}
	if req.FirstName != nil {
		if strings.TrimSpace(*req.FirstName) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "first_name cannot be empty")
		}
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = req.LastName
	}
	if req.Company != nil {
		updates["company"] = req.Company
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		updates["email"] = email
	}
	if req.Phone != nil {
		if strings.TrimSpace(*req.Phone) == "" {
			updates["phone"] = nil
		} else {
			normalized, err := phone.Normalize(*req.Phone, s.phoneCfg.DefaultCountryCode)
			if err != nil {
				return nil, err
			}
			updates["phone"] = normalized
		}
	}
	if req.Address != nil {
		updates["address"] = req.Address
	}
	if req.Tags != nil {
		updates["tags"] = pq.StringArray(req.Tags)
	}
	if req.Notes != nil {
		updates["notes"] = req.Notes
	}

	if err := s.repo.Update(ctx, businessID, id, updates); err != nil {
		if db.IsUniqueViolation(err, uniqueEmailConstraint) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a contact with this email already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update contact")
	}
	return s.Get(ctx, businessID, id)
}

func (s *service) Delete(ctx context.Context, businessID, id uuid.UUID) error {
	if _, err := s.Get(ctx, businessID, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, businessID, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deactivate contact")
	}
	return nil
}
