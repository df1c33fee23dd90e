package templates

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
	pkgerrors "github.com/get-hunter/hero365-app-sub002/pkg/errors"
	pkgredis "github.com/get-hunter/hero365-app-sub002/pkg/redis"
)

func TestResolveDefaultPrefersExplicitPreference(t *testing.T) {
	businessID := uuid.New()
	preferred := systemTemplate(enums.TemplateTypeEstimate, "Modern Estimate", false)
	repo := &stubRepo{
		preferred:       preferred,
		businessDefault: businessTemplate(businessID, enums.TemplateTypeEstimate, true),
		systemDefault:   systemTemplate(enums.TemplateTypeEstimate, "Classic Estimate", true),
	}
	svc := mustService(t, repo, nil)

	got, err := svc.ResolveDefault(context.Background(), businessID, enums.TemplateTypeEstimate)
	require.NoError(t, err)
	assert.Equal(t, preferred.ID, got.ID)
}

func TestResolveDefaultFallsBackToBusinessDefault(t *testing.T) {
	businessID := uuid.New()
	businessDefault := businessTemplate(businessID, enums.TemplateTypeInvoice, true)
	repo := &stubRepo{
		businessDefault: businessDefault,
		systemDefault:   systemTemplate(enums.TemplateTypeInvoice, "Classic Invoice", true),
	}
	svc := mustService(t, repo, nil)

	got, err := svc.ResolveDefault(context.Background(), businessID, enums.TemplateTypeInvoice)
	require.NoError(t, err)
	assert.Equal(t, businessDefault.ID, got.ID)
}

func TestResolveDefaultFallsBackToSystemDefault(t *testing.T) {
	businessID := uuid.New()
	systemDefault := systemTemplate(enums.TemplateTypeEstimate, "Classic Estimate", true)
	repo := &stubRepo{systemDefault: systemDefault}
	svc := mustService(t, repo, nil)

	got, err := svc.ResolveDefault(context.Background(), businessID, enums.TemplateTypeEstimate)
	require.NoError(t, err)
	assert.Equal(t, systemDefault.ID, got.ID)
	assert.True(t, got.IsSystem)
}

func TestResolveDefaultErrsWhenChainIsEmpty(t *testing.T) {
	svc := mustService(t, &stubRepo{}, nil)

	_, err := svc.ResolveDefault(context.Background(), uuid.New(), enums.TemplateTypeInvoice)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestResolveDefaultRejectsInvalidType(t *testing.T) {
	svc := mustService(t, &stubRepo{}, nil)

	_, err := svc.ResolveDefault(context.Background(), uuid.New(), enums.TemplateType("receipt"))
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestResolveDefaultUsesCache(t *testing.T) {
	businessID := uuid.New()
	systemDefault := systemTemplate(enums.TemplateTypeEstimate, "Classic Estimate", true)
	repo := &stubRepo{systemDefault: systemDefault}
	cache := newStubCache()
	svc := mustService(t, repo, cache)
	ctx := context.Background()

	_, err := svc.ResolveDefault(ctx, businessID, enums.TemplateTypeEstimate)
	require.NoError(t, err)
	require.Equal(t, 1, repo.systemLookups)

	_, err = svc.ResolveDefault(ctx, businessID, enums.TemplateTypeEstimate)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.systemLookups, "cache should shortcut the chain")
}

func TestSetPreferenceInvalidatesCache(t *testing.T) {
	businessID := uuid.New()
	systemDefault := systemTemplate(enums.TemplateTypeEstimate, "Classic Estimate", true)
	repo := &stubRepo{systemDefault: systemDefault}
	cache := newStubCache()
	svc := mustService(t, repo, cache)
	ctx := context.Background()

	_, err := svc.ResolveDefault(ctx, businessID, enums.TemplateTypeEstimate)
	require.NoError(t, err)
	key := cache.TemplateDefaultKey(businessID.String(), string(enums.TemplateTypeEstimate))
	_, err = cache.Get(ctx, key)
	require.NoError(t, err, "expected cache entry after resolve")

	require.NoError(t, svc.SetPreference(ctx, businessID, systemDefault.ID, enums.TemplateTypeEstimate))
	_, err = cache.Get(ctx, key)
	assert.ErrorIs(t, err, pkgredis.Nil, "expected cache entry to be invalidated")
	assert.Equal(t, 1, repo.upserts)
}

func TestSetPreferenceRejectsForeignTemplate(t *testing.T) {
	businessID := uuid.New()
	other := businessTemplate(uuid.New(), enums.TemplateTypeEstimate, false)
	repo := &stubRepo{byID: map[uuid.UUID]*models.DocumentTemplate{other.ID: other}}
	svc := mustService(t, repo, nil)

	err := svc.SetPreference(context.Background(), businessID, other.ID, enums.TemplateTypeEstimate)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestSetBusinessDefaultRejectsSystemTemplate(t *testing.T) {
	businessID := uuid.New()
	sys := systemTemplate(enums.TemplateTypeInvoice, "Classic Invoice", true)
	repo := &stubRepo{byID: map[uuid.UUID]*models.DocumentTemplate{sys.ID: sys}}
	svc := mustService(t, repo, nil)

	err := svc.SetBusinessDefault(context.Background(), businessID, sys.ID, enums.TemplateTypeInvoice)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func mustService(t *testing.T, repo templateRepo, cache defaultCache) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo, Cache: cache, CacheTTL: time.Minute})
	require.NoError(t, err)
	return svc
}

func systemTemplate(tt enums.TemplateType, name string, isDefault bool) *models.DocumentTemplate {
	return &models.DocumentTemplate{
		ID:           uuid.New(),
		TemplateType: tt,
		Name:         name,
		IsSystem:     true,
		IsDefault:    isDefault,
		IsActive:     true,
	}
}

func businessTemplate(businessID uuid.UUID, tt enums.TemplateType, isDefault bool) *models.DocumentTemplate {
	return &models.DocumentTemplate{
		ID:           uuid.New(),
		BusinessID:   &businessID,
		TemplateType: tt,
		Name:         "Custom",
		IsDefault:    isDefault,
		IsActive:     true,
	}
}

type stubRepo struct {
	preferred       *models.DocumentTemplate
	businessDefault *models.DocumentTemplate
	systemDefault   *models.DocumentTemplate
	byID            map[uuid.UUID]*models.DocumentTemplate

	systemLookups int
	upserts       int
}

func (s *stubRepo) Create(ctx context.Context, dto CreateTemplateDTO) (*models.DocumentTemplate, error) {
	tmpl := dto.ToModel()
	tmpl.ID = uuid.New()
	return tmpl, nil
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.DocumentTemplate, error) {
	if s.byID != nil {
		if tmpl, ok := s.byID[id]; ok {
			return tmpl, nil
		}
	}
	for _, tmpl := range []*models.DocumentTemplate{s.preferred, s.businessDefault, s.systemDefault} {
		if tmpl != nil && tmpl.ID == id {
			return tmpl, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) ListForBusiness(ctx context.Context, businessID uuid.UUID, tt enums.TemplateType) ([]models.DocumentTemplate, error) {
	var out []models.DocumentTemplate
	for _, tmpl := range []*models.DocumentTemplate{s.preferred, s.businessDefault, s.systemDefault} {
		if tmpl != nil {
			out = append(out, *tmpl)
		}
	}
	return out, nil
}

func (s *stubRepo) FindPreferred(ctx context.Context, businessID uuid.UUID, tt enums.TemplateType) (*models.DocumentTemplate, error) {
	if s.preferred == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.preferred, nil
}

func (s *stubRepo) FindBusinessDefault(ctx context.Context, businessID uuid.UUID, tt enums.TemplateType) (*models.DocumentTemplate, error) {
	if s.businessDefault == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.businessDefault, nil
}

func (s *stubRepo) FindSystemDefault(ctx context.Context, tt enums.TemplateType) (*models.DocumentTemplate, error) {
	s.systemLookups++
	if s.systemDefault == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.systemDefault, nil
}

func (s *stubRepo) SetBusinessDefault(ctx context.Context, businessID, templateID uuid.UUID, tt enums.TemplateType) error {
	return nil
}

func (s *stubRepo) UpsertPreference(ctx context.Context, businessID, templateID uuid.UUID, tt enums.TemplateType) error {
	s.upserts++
	return nil
}

func (s *stubRepo) DeletePreference(ctx context.Context, businessID uuid.UUID, tt enums.TemplateType) error {
	return nil
}

type stubCache struct {
	data map[string]string
}

func newStubCache() *stubCache {
	return &stubCache{data: make(map[string]string)}
}

func (c *stubCache) Get(ctx context.Context, key string) (string, error) {
	v, ok := c.data[key]
	if !ok {
		return "", pkgredis.Nil
	}
	return v, nil
}

func (c *stubCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	c.data[key] = value.(string)
	return nil
}

func (c *stubCache) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *stubCache) TemplateDefaultKey(businessID, templateType string) string {
	return "h365:tmpl:default:" + businessID + ":" + templateType
}
