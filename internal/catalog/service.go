package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/get-hunter/hero365-app-sub002/internal/businesses"
	"github.com/get-hunter/hero365-app-sub002/pkg/db"
	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
	pkgerrors "github.com/get-hunter/hero365-app-sub002/pkg/errors"
)

const (
	uniqueServiceNameConstraint = "uq_business_services_name"
	uniqueServiceSlugConstraint = "uq_business_services_slug"
	uniqueAreaConstraint        = "uq_service_areas_business_postal"
)

// Service manages the trade taxonomy, business offerings and coverage.
type Service interface {
	BrowseTaxonomy(ctx context.Context) ([]CategoryDTO, error)
	ListTemplates(ctx context.Context, activityID uuid.UUID) ([]ServiceTemplateDTO, error)
	CreateService(ctx context.Context, businessID uuid.UUID, req CreateServiceRequest) (*BusinessServiceDTO, error)
	ListServices(ctx context.Context, businessID uuid.UUID, includeInactive bool) ([]BusinessServiceDTO, error)
	RetireService(ctx context.Context, businessID, serviceID uuid.UUID) error
	AddArea(ctx context.Context, businessID uuid.UUID, req AddServiceAreaRequest) (*ServiceAreaDTO, error)
	ListAreas(ctx context.Context, businessID uuid.UUID) ([]ServiceAreaDTO, error)
	RemoveArea(ctx context.Context, businessID, areaID uuid.UUID) error
	CoversPostalCode(ctx context.Context, businessID uuid.UUID, postalCode string) (*ServiceAreaDTO, error)
}

type catalogRepo interface {
	ListCategories(ctx context.Context) ([]models.TradeCategory, error)
	ListActivities(ctx context.Context, categoryID *uuid.UUID) ([]models.TradeActivity, error)
	ListTemplates(ctx context.Context, activityID uuid.UUID) ([]models.ServiceTemplate, error)
	FindTemplateByID(ctx context.Context, id uuid.UUID) (*models.ServiceTemplate, error)
	CreateService(ctx context.Context, svc *models.BusinessService) error
	FindServiceByID(ctx context.Context, businessID, id uuid.UUID) (*models.BusinessService, error)
	ListServices(ctx context.Context, businessID uuid.UUID, includeInactive bool) ([]models.BusinessService, error)
	UpdateService(ctx context.Context, businessID, id uuid.UUID, updates map[string]any) error
	CreateArea(ctx context.Context, area *models.ServiceArea) error
	ListAreas(ctx context.Context, businessID uuid.UUID) ([]models.ServiceArea, error)
	FindActiveArea(ctx context.Context, businessID uuid.UUID, postalCode string) (*models.ServiceArea, error)
	DeactivateArea(ctx context.Context, businessID, id uuid.UUID) error
}

// ServiceParams bundles the dependencies for the catalog service.
type ServiceParams struct {
	Repo catalogRepo
}

type service struct {
	repo catalogRepo
}

// NewService constructs the catalog service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	return &service{repo: params.Repo}, nil
}

// BrowseTaxonomy returns every category with its activities nested.
func (s *service) BrowseTaxonomy(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list trade categories")
	}
	activities, err := s.repo.ListActivities(ctx, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list trade activities")
	}

	byCategory := map[uuid.UUID][]ActivityDTO{}
	for i := range activities {
		dto := activityFromModel(&activities[i])
		byCategory[dto.CategoryID] = append(byCategory[dto.CategoryID], dto)
	}

	out := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		dto := categoryFromModel(&categories[i])
		dto.Activities = byCategory[dto.ID]
		out = append(out, dto)
	}
	return out, nil
}

func (s *service) ListTemplates(ctx context.Context, activityID uuid.UUID) ([]ServiceTemplateDTO, error) {
	rows, err := s.repo.ListTemplates(ctx, activityID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list service templates")
	}
	out := make([]ServiceTemplateDTO, 0, len(rows))
	for i := range rows {
		out = append(out, templateFromModel(&rows[i]))
	}
	return out, nil
}

// CreateService offers a service, optionally seeded from a system template.
// Template fields fill anything the request leaves blank.
func (s *service) CreateService(ctx context.Context, businessID uuid.UUID, req CreateServiceRequest) (*BusinessServiceDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service name is required")
	}
	slug := businesses.Slugify(name)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service name must contain letters or digits")
	}

	svc := &models.BusinessService{
		BusinessID:   businessID,
		TemplateID:   req.TemplateID,
		Slug:         slug,
		Name:         name,
		Description:  req.Description,
		PricingModel: req.PricingModel,
		Price:        req.Price,
		IsActive:     true,
	}

	if req.TemplateID != nil {
		tmpl, err := s.repo.FindTemplateByID(ctx, *req.TemplateID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service template not found")
		}
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load service template")
		}
		if svc.Description == "" {
			svc.Description = tmpl.Description
		}
		if svc.PricingModel == "" {
			svc.PricingModel = tmpl.PricingModel
		}
		if svc.Price == nil {
			svc.Price = tmpl.SuggestedPrice
		}
	}
	if svc.PricingModel == "" {
		svc.PricingModel = models.PricingModelFixed
	}
	if !validPricingModel(svc.PricingModel) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid pricing model")
	}
	if svc.Price != nil && svc.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service price cannot be negative")
	}

	if err := s.repo.CreateService(ctx, svc); err != nil {
		if db.IsUniqueViolation(err, uniqueServiceNameConstraint) ||
			db.IsUniqueViolation(err, uniqueServiceSlugConstraint) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a service with this name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create business service")
	}
	return serviceFromModel(svc), nil
}

func (s *service) ListServices(ctx context.Context, businessID uuid.UUID, includeInactive bool) ([]BusinessServiceDTO, error) {
	rows, err := s.repo.ListServices(ctx, businessID, includeInactive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list business services")
	}
	out := make([]BusinessServiceDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *serviceFromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) RetireService(ctx context.Context, businessID, serviceID uuid.UUID) error {
	_, err := s.repo.FindServiceByID(ctx, businessID, serviceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "business service not found")
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load business service")
	}
	err = s.repo.UpdateService(ctx, businessID, serviceID, map[string]any{"is_active": false})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "retire business service")
	}
	return nil
}

func (s *service) AddArea(ctx context.Context, businessID uuid.UUID, req AddServiceAreaRequest) (*ServiceAreaDTO, error) {
	postal := strings.ToUpper(strings.TrimSpace(req.PostalCode))
	if postal == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "postal_code is required")
	}
	country := strings.ToUpper(strings.TrimSpace(req.Country))
	if country == "" {
		country = "US"
	}
	if req.TravelFee != nil && req.TravelFee.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "travel fee cannot be negative")
	}

	area := &models.ServiceArea{
		BusinessID: businessID,
		PostalCode: postal,
		City:       strings.TrimSpace(req.City),
		Region:     strings.TrimSpace(req.Region),
		Country:    country,
		TravelFee:  req.TravelFee,
		IsActive:   true,
	}
	if err := s.repo.CreateArea(ctx, area); err != nil {
		if db.IsUniqueViolation(err, uniqueAreaConstraint) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "postal code is already covered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create service area")
	}
	return areaFromModel(area), nil
}

func (s *service) ListAreas(ctx context.Context, businessID uuid.UUID) ([]ServiceAreaDTO, error) {
	rows, err := s.repo.ListAreas(ctx, businessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list service areas")
	}
	out := make([]ServiceAreaDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *areaFromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) RemoveArea(ctx context.Context, businessID, areaID uuid.UUID) error {
	if err := s.repo.DeactivateArea(ctx, businessID, areaID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deactivate service area")
	}
	return nil
}

// CoversPostalCode reports whether the business serves the postal code,
// returning the matched area so callers can surface the travel fee.
func (s *service) CoversPostalCode(ctx context.Context, businessID uuid.UUID, postalCode string) (*ServiceAreaDTO, error) {
	postal := strings.ToUpper(strings.TrimSpace(postalCode))
	if postal == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "postal_code is required")
	}

	area, err := s.repo.FindActiveArea(ctx, businessID, postal)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "postal code is not covered")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "look up coverage")
	}
	return areaFromModel(area), nil
}

func validPricingModel(model string) bool {
	switch model {
	case models.PricingModelFixed, models.PricingModelHourly,
		models.PricingModelPerUnit, models.PricingModelQuoteRequired:
		return true
	}
	return false
}
