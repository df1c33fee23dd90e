package templates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
	pkgerrors "github.com/get-hunter/hero365-app-sub002/pkg/errors"
	"github.com/get-hunter/hero365-app-sub002/pkg/logger"
	pkgredis "github.com/get-hunter/hero365-app-sub002/pkg/redis"
)

// Service resolves and manages document template defaults.
type Service interface {
	ResolveDefault(ctx context.Context, businessID uuid.UUID, templateType enums.TemplateType) (*TemplateDTO, error)
	List(ctx context.Context, businessID uuid.UUID, templateType enums.TemplateType) ([]TemplateDTO, error)
	Create(ctx context.Context, dto CreateTemplateDTO) (*TemplateDTO, error)
	SetBusinessDefault(ctx context.Context, businessID, templateID uuid.UUID, templateType enums.TemplateType) error
	SetPreference(ctx context.Context, businessID, templateID uuid.UUID, templateType enums.TemplateType) error
	ClearPreference(ctx context.Context, businessID uuid.UUID, templateType enums.TemplateType) error
}

type templateRepo interface {
	Create(ctx context.Context, dto CreateTemplateDTO) (*models.DocumentTemplate, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.DocumentTemplate, error)
	ListForBusiness(ctx context.Context, businessID uuid.UUID, templateType enums.TemplateType) ([]models.DocumentTemplate, error)
	FindPreferred(ctx context.Context, businessID uuid.UUID, templateType enums.TemplateType) (*models.DocumentTemplate, error)
	FindBusinessDefault(ctx context.Context, businessID uuid.UUID, templateType enums.TemplateType) (*models.DocumentTemplate, error)
	FindSystemDefault(ctx context.Context, templateType enums.TemplateType) (*models.DocumentTemplate, error)
	SetBusinessDefault(ctx context.Context, businessID, templateID uuid.UUID, templateType enums.TemplateType) error
	UpsertPreference(ctx context.Context, businessID, templateID uuid.UUID, templateType enums.TemplateType) error
	DeletePreference(ctx context.Context, businessID uuid.UUID, templateType enums.TemplateType) error
}

type defaultCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	TemplateDefaultKey(businessID, templateType string) string
}

// ServiceParams bundles the dependencies for the template service.
type ServiceParams struct {
	Repo     templateRepo
	Cache    defaultCache
	CacheTTL time.Duration
	Logger   *logger.Logger
}

type service struct {
	repo     templateRepo
	cache    defaultCache
	cacheTTL time.Duration
	log      *logger.Logger
}

// NewService constructs a template service. Cache is optional; when nil the
// resolution always hits the database.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("template repository is required")
	}
	ttl := params.CacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &service{
		repo:     params.Repo,
		cache:    params.Cache,
		cacheTTL: ttl,
		log:      params.Logger,
	}, nil
}

// ResolveDefault walks the three-tier chain: explicit business preference,
// then the business's own default, then the system default. The winning
// template id is cached per business and type.
func (s *service) ResolveDefault(ctx context.Context, businessID uuid.UUID, templateType enums.TemplateType) (*TemplateDTO, error) {
	if !templateType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid template type")
	}

	if cached := s.cachedTemplate(ctx, businessID, templateType); cached != nil {
		return FromModel(cached), nil
	}

	tmpl, err := s.repo.FindPreferred(ctx, businessID, templateType)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup template preference")
	}
	if tmpl == nil {
		tmpl, err = s.repo.FindBusinessDefault(ctx, businessID, templateType)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup business default template")
		}
	}
	if tmpl == nil {
		tmpl, err = s.repo.FindSystemDefault(ctx, templateType)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("no default %s template", templateType))
		}
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup system default template")
		}
	}

	s.cacheTemplate(ctx, businessID, templateType, tmpl.ID)
	return FromModel(tmpl), nil
}

func (s *service) List(ctx context.Context, businessID uuid.UUID, templateType enums.TemplateType) ([]TemplateDTO, error) {
	if !templateType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid template type")
	}
	rows, err := s.repo.ListForBusiness(ctx, businessID, templateType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list templates")
	}
	out := make([]TemplateDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, dto CreateTemplateDTO) (*TemplateDTO, error) {
	if !dto.TemplateType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid template type")
	}
	if dto.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	tmpl, err := s.repo.Create(ctx, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create template")
	}
	return FromModel(tmpl), nil
}

func (s *service) SetBusinessDefault(ctx context.Context, businessID, templateID uuid.UUID, templateType enums.TemplateType) error {
	if err := s.ownedByBusiness(ctx, businessID, templateID, templateType); err != nil {
		return err
	}
	if err := s.repo.SetBusinessDefault(ctx, businessID, templateID, templateType); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "set business default")
	}
	s.invalidate(ctx, businessID, templateType)
	return nil
}

func (s *service) SetPreference(ctx context.Context, businessID, templateID uuid.UUID, templateType enums.TemplateType) error {
	tmpl, err := s.repo.FindByID(ctx, templateID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "template not found")
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load template")
	}
	if tmpl.TemplateType != templateType {
		return pkgerrors.New(pkgerrors.CodeValidation, "template type mismatch")
	}
	if !tmpl.IsSystem && (tmpl.BusinessID == nil || *tmpl.BusinessID != businessID) {
		return pkgerrors.New(pkgerrors.CodeForbidden, "template belongs to another business")
	}
	if err := s.repo.UpsertPreference(ctx, businessID, templateID, templateType); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save template preference")
	}
	s.invalidate(ctx, businessID, templateType)
	return nil
}

func (s *service) ClearPreference(ctx context.Context, businessID uuid.UUID, templateType enums.TemplateType) error {
	if err := s.repo.DeletePreference(ctx, businessID, templateType); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear template preference")
	}
	s.invalidate(ctx, businessID, templateType)
	return nil
}

func (s *service) ownedByBusiness(ctx context.Context, businessID, templateID uuid.UUID, templateType enums.TemplateType) error {
	tmpl, err := s.repo.FindByID(ctx, templateID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "template not found")
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load template")
	}
	if tmpl.TemplateType != templateType {
		return pkgerrors.New(pkgerrors.CodeValidation, "template type mismatch")
	}
	if tmpl.BusinessID == nil || *tmpl.BusinessID != businessID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "template belongs to another business")
	}
	return nil
}

func (s *service) cachedTemplate(ctx context.Context, businessID uuid.UUID, templateType enums.TemplateType) *models.DocumentTemplate {
	if s.cache == nil {
		return nil
	}
	key := s.cache.TemplateDefaultKey(businessID.String(), string(templateType))
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, pkgredis.Nil) && s.log != nil {
			s.log.Warn(ctx, "template cache read failed")
		}
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	tmpl, err := s.repo.FindByID(ctx, id)
	if err != nil || !tmpl.IsActive {
		return nil
	}
	return tmpl
}

func (s *service) cacheTemplate(ctx context.Context, businessID uuid.UUID, templateType enums.TemplateType, templateID uuid.UUID) {
	if s.cache == nil {
		return
	}
	key := s.cache.TemplateDefaultKey(businessID.String(), string(templateType))
	if err := s.cache.Set(ctx, key, templateID.String(), s.cacheTTL); err != nil && s.log != nil {
		s.log.Warn(ctx, "template cache write failed")
	}
}

func (s *service) invalidate(ctx context.Context, businessID uuid.UUID, templateType enums.TemplateType) {
	if s.cache == nil {
		return
	}
	key := s.cache.TemplateDefaultKey(businessID.String(), string(templateType))
	if err := s.cache.Del(ctx, key); err != nil && s.log != nil {
		s.log.Warn(ctx, "template cache invalidation failed")
	}
}
