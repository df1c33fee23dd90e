package businesses

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
)

const maxSlugAttempts = 50

// Repository exposes business persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a businesses repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new business and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateBusinessDTO) (*models.Business, error) {
	business := dto.ToModel()
	if business.Slug == "" {
		slug, err := r.AvailableSlug(ctx, Slugify(dto.Name))
		if err != nil {
			return nil, err
		}
		business.Slug = slug
	}
	if err := r.db.WithContext(ctx).Create(business).Error; err != nil {
		return nil, err
	}
	return business, nil
}

// FindByID loads a business by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Business, error) {
	var business models.Business
	if err := r.db.WithContext(ctx).First(&business, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

// FindBySlug loads a business by its slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Business, error) {
	var business models.Business
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&business).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

// AvailableSlug finds a free slug derived from base, appending a counter
// when the base is already taken.
func (r *Repository) AvailableSlug(ctx context.Context, base string) (string, error) {
	if base == "" {
		base = "business-" + uuid.NewString()[:8]
	}
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		candidate := NextSlugCandidate(base, attempt)
		var existing models.Business
		err := r.db.WithContext(ctx).Select("id").Where("slug = ?", candidate).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("no free slug for base %q", base)
}
