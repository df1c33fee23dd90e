package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
	pkgerrors "github.com/get-hunter/hero365-app-sub002/pkg/errors"
)

type stubCatalogRepo struct {
	categories []models.TradeCategory
	activities []models.TradeActivity
	templates  map[uuid.UUID]*models.ServiceTemplate
	services   map[uuid.UUID]*models.BusinessService
	areas      map[uuid.UUID]*models.ServiceArea
	createErr  error
}

func newStubCatalogRepo() *stubCatalogRepo {
	return &stubCatalogRepo{
		templates: map[uuid.UUID]*models.ServiceTemplate{},
		services:  map[uuid.UUID]*models.BusinessService{},
		areas:     map[uuid.UUID]*models.ServiceArea{},
	}
}

func (s *stubCatalogRepo) ListCategories(_ context.Context) ([]models.TradeCategory, error) {
	return s.categories, nil
}

func (s *stubCatalogRepo) ListActivities(_ context.Context, categoryID *uuid.UUID) ([]models.TradeActivity, error) {
	if categoryID == nil {
		return s.activities, nil
	}
	var out []models.TradeActivity
	for _, a := range s.activities {
		if a.CategoryID == *categoryID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubCatalogRepo) ListTemplates(_ context.Context, activityID uuid.UUID) ([]models.ServiceTemplate, error) {
	var out []models.ServiceTemplate
	for _, t := range s.templates {
		if t.ActivityID == activityID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (s *stubCatalogRepo) FindTemplateByID(_ context.Context, id uuid.UUID) (*models.ServiceTemplate, error) {
	if t, ok := s.templates[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCatalogRepo) CreateService(_ context.Context, svc *models.BusinessService) error {
	if s.createErr != nil {
		return s.createErr
	}
	svc.ID = uuid.New()
	s.services[svc.ID] = svc
	return nil
}

func (s *stubCatalogRepo) FindServiceByID(_ context.Context, businessID, id uuid.UUID) (*models.BusinessService, error) {
	if svc, ok := s.services[id]; ok && svc.BusinessID == businessID {
		return svc, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCatalogRepo) ListServices(_ context.Context, businessID uuid.UUID, includeInactive bool) ([]models.BusinessService, error) {
	var out []models.BusinessService
	for _, svc := range s.services {
		if svc.BusinessID != businessID {
			continue
		}
		if !includeInactive && !svc.IsActive {
			continue
		}
		out = append(out, *svc)
	}
	return out, nil
}

func (s *stubCatalogRepo) UpdateService(_ context.Context, businessID, id uuid.UUID, updates map[string]any) error {
	if svc, ok := s.services[id]; ok && svc.BusinessID == businessID {
		if active, ok := updates["is_active"].(bool); ok {
			svc.IsActive = active
		}
	}
	return nil
}

func (s *stubCatalogRepo) CreateArea(_ context.Context, area *models.ServiceArea) error {
	if s.createErr != nil {
		return s.createErr
	}
	area.ID = uuid.New()
	s.areas[area.ID] = area
	return nil
}

func (s *stubCatalogRepo) ListAreas(_ context.Context, businessID uuid.UUID) ([]models.ServiceArea, error) {
	var out []models.ServiceArea
	for _, a := range s.areas {
		if a.BusinessID == businessID && a.IsActive {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *stubCatalogRepo) FindActiveArea(_ context.Context, businessID uuid.UUID, postalCode string) (*models.ServiceArea, error) {
	for _, a := range s.areas {
		if a.BusinessID == businessID && a.PostalCode == postalCode && a.IsActive {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCatalogRepo) DeactivateArea(_ context.Context, businessID, id uuid.UUID) error {
	if a, ok := s.areas[id]; ok && a.BusinessID == businessID {
		a.IsActive = false
	}
	return nil
}

func mustCatalogService(t *testing.T, repo catalogRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo})
	require.NoError(t, err)
	return svc
}

func TestBrowseTaxonomyNestsActivities(t *testing.T) {
	repo := newStubCatalogRepo()
	plumbing := models.TradeCategory{ID: uuid.New(), Slug: "plumbing", Name: "Plumbing", SortOrder: 1}
	hvac := models.TradeCategory{ID: uuid.New(), Slug: "hvac", Name: "HVAC", SortOrder: 2}
	repo.categories = []models.TradeCategory{plumbing, hvac}
	repo.activities = []models.TradeActivity{
		{ID: uuid.New(), CategoryID: plumbing.ID, Slug: "drain-cleaning", Name: "Drain Cleaning"},
		{ID: uuid.New(), CategoryID: plumbing.ID, Slug: "water-heater-install", Name: "Water Heater Installation"},
		{ID: uuid.New(), CategoryID: hvac.ID, Slug: "ac-repair", Name: "AC Repair"},
	}
	svc := mustCatalogService(t, repo)

	out, err := svc.BrowseTaxonomy(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Len(t, out[0].Activities, 2)
	assert.Len(t, out[1].Activities, 1)
}

func TestCreateServiceSeedsFromTemplate(t *testing.T) {
	repo := newStubCatalogRepo()
	price := decimal.RequireFromString("189.00")
	tmpl := &models.ServiceTemplate{
		ID:             uuid.New(),
		ActivityID:     uuid.New(),
		Name:           "Drain Cleaning",
		Description:    "Clearing clogged drains and sewer lines",
		PricingModel:   models.PricingModelFixed,
		SuggestedPrice: &price,
	}
	repo.templates[tmpl.ID] = tmpl
	svc := mustCatalogService(t, repo)

	dto, err := svc.CreateService(context.Background(), uuid.New(), CreateServiceRequest{
		TemplateID: &tmpl.ID,
		Name:       "Drain Cleaning",
	})
	require.NoError(t, err)
	assert.Equal(t, tmpl.Description, dto.Description)
	require.NotNil(t, dto.Price)
	assert.True(t, dto.Price.Equal(price), "price not seeded from template: %v", dto.Price)
	assert.Equal(t, models.PricingModelFixed, dto.PricingModel)
}

func TestCreateServiceAssignsSlug(t *testing.T) {
	repo := newStubCatalogRepo()
	svc := mustCatalogService(t, repo)

	dto, err := svc.CreateService(context.Background(), uuid.New(), CreateServiceRequest{
		Name: "  Water Heater Install & Flush  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "water-heater-install-flush", dto.Slug)
	assert.Equal(t, "Water Heater Install & Flush", dto.Name)

	_, err = svc.CreateService(context.Background(), uuid.New(), CreateServiceRequest{Name: "!!!"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCreateServiceMapsDuplicateSlugToConflict(t *testing.T) {
	repo := newStubCatalogRepo()
	repo.createErr = errors.New(`ERROR: duplicate key value violates unique constraint "uq_business_services_slug"`)
	svc := mustCatalogService(t, repo)

	_, err := svc.CreateService(context.Background(), uuid.New(), CreateServiceRequest{Name: "Drain Cleaning"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestCreateServiceMapsDuplicateNameToConflict(t *testing.T) {
	repo := newStubCatalogRepo()
	repo.createErr = errors.New(`ERROR: duplicate key value violates unique constraint "uq_business_services_name"`)
	svc := mustCatalogService(t, repo)

	_, err := svc.CreateService(context.Background(), uuid.New(), CreateServiceRequest{Name: "Drain Cleaning"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestCreateServiceRejectsBadPricingModel(t *testing.T) {
	repo := newStubCatalogRepo()
	svc := mustCatalogService(t, repo)

	_, err := svc.CreateService(context.Background(), uuid.New(), CreateServiceRequest{
		Name:         "Drain Cleaning",
		PricingModel: "subscription",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCoverageLookup(t *testing.T) {
	repo := newStubCatalogRepo()
	svc := mustCatalogService(t, repo)
	businessID := uuid.New()

	added, err := svc.AddArea(context.Background(), businessID, AddServiceAreaRequest{
		PostalCode: " 78701 ",
		City:       "Austin",
		Region:     "TX",
	})
	require.NoError(t, err)
	assert.Equal(t, "78701", added.PostalCode)
	assert.Equal(t, "US", added.Country)

	match, err := svc.CoversPostalCode(context.Background(), businessID, "78701")
	require.NoError(t, err)
	assert.Equal(t, added.ID, match.ID)

	_, err = svc.CoversPostalCode(context.Background(), businessID, "10001")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	require.NoError(t, svc.RemoveArea(context.Background(), businessID, added.ID))
	_, err = svc.CoversPostalCode(context.Background(), businessID, "78701")
	assert.Error(t, err, "deactivated area should not match")
}
