package contacts

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
	"github.com/get-hunter/hero365-app-sub002/pkg/pagination"
)

// Repository exposes contact persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a contact row.
func (r *Repository) Create(ctx context.Context, contact *models.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

// FindByID loads a contact scoped to the business.
func (r *Repository) FindByID(ctx context.Context, businessID, id uuid.UUID) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND id = ?", businessID, id).
		First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// ListFilter narrows a contact listing.
type ListFilter struct {
	Type   *enums.ContactType
	Search string
}

// List returns one page of active contacts for the business plus the cursor
// for the next page.
func (r *Repository) List(ctx context.Context, businessID uuid.UUID, filter ListFilter, page pagination.Params) ([]models.Contact, string, error) {
	q := r.db.WithContext(ctx).
		Where("business_id = ? AND is_active", businessID)

	if filter.Type != nil {
		q = q.Where("type = ?", *filter.Type)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"lower(first_name) LIKE ? OR lower(coalesce(last_name, '')) LIKE ? OR lower(coalesce(company, '')) LIKE ? OR lower(coalesce(email, '')) LIKE ?",
			like, like, like, like,
		)
	}

	cursor, err := pagination.ParseCursor(page.Cursor)
	if err != nil {
		return nil, "", err
	}
	if cursor != nil {
		q = q.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Contact
	err = q.Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(page.Limit)).
		Find(&rows).Error
	if err != nil {
		return nil, "", err
	}

	rows, next := pagination.TrimPage(rows, page.Limit, func(c models.Contact) pagination.Cursor {
		return pagination.Cursor{CreatedAt: c.CreatedAt, ID: c.ID}
	})
	return rows, next, nil
}

// Update applies the non-nil columns.
func (r *Repository) Update(ctx context.Context, businessID, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Contact{}).
		Where("business_id = ? AND id = ?", businessID, id).
		Updates(updates).Error
}

// Deactivate soft-deletes the contact.
func (r *Repository) Deactivate(ctx context.Context, businessID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Contact{}).
		Where("business_id = ? AND id = ?", businessID, id).
		UpdateColumn("is_active", false).Error
}

// ReplaceTags overwrites the tag array.
func (r *Repository) ReplaceTags(ctx context.Context, businessID, id uuid.UUID, tags []string) error {
	return r.db.WithContext(ctx).
		Model(&models.Contact{}).
		Where("business_id = ? AND id = ?", businessID, id).
		UpdateColumn("tags", pq.StringArray(tags)).Error
}
