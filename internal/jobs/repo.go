package jobs

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/get-hunter/hero365-app-sub002/pkg/db"
	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
	"github.com/get-hunter/hero365-app-sub002/pkg/pagination"
)

// jobCounterType is the document_counters row jobs draw their numbers from.
const jobCounterType = "job"

// Repository exposes job persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a job row.
func (r *Repository) Create(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

// NextJobNumber reserves the next sequential number for the business from
// its document counter; call inside the same transaction as the insert.
func (r *Repository) NextJobNumber(ctx context.Context, businessID uuid.UUID) (int64, error) {
	return db.NextSequence(ctx, r.db, businessID, jobCounterType)
}

// FindByID loads a job scoped to the business.
func (r *Repository) FindByID(ctx context.Context, businessID, id uuid.UUID) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND id = ?", businessID, id).
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// ListFilter narrows a job listing.
type ListFilter struct {
	Status         *enums.JobStatus
	AssignedUserID *uuid.UUID
	ContactID      *uuid.UUID
}

// List returns one page of jobs for the business plus the cursor for the
// next page, empty when no rows remain.
func (r *Repository) List(ctx context.Context, businessID uuid.UUID, filter ListFilter, page pagination.Params) ([]models.Job, string, error) {
	q := r.db.WithContext(ctx).Where("business_id = ?", businessID)

	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.AssignedUserID != nil {
		q = q.Where("assigned_user_id = ?", *filter.AssignedUserID)
	}
	if filter.ContactID != nil {
		q = q.Where("contact_id = ?", *filter.ContactID)
	}

	cursor, err := pagination.ParseCursor(page.Cursor)
	if err != nil {
		return nil, "", err
	}
	if cursor != nil {
		q = q.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Job
	err = q.Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(page.Limit)).
		Find(&rows).Error
	if err != nil {
		return nil, "", err
	}

	rows, next := pagination.TrimPage(rows, page.Limit, func(j models.Job) pagination.Cursor {
		return pagination.Cursor{CreatedAt: j.CreatedAt, ID: j.ID}
	})
	return rows, next, nil
}

// Update applies the provided columns.
func (r *Repository) Update(ctx context.Context, businessID, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("business_id = ? AND id = ?", businessID, id).
		Updates(updates).Error
}

// AppendActivity records a timeline entry. Activities are append-only.
func (r *Repository) AppendActivity(ctx context.Context, activity *models.JobActivity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

// ListActivities returns the job timeline, newest first.
func (r *Repository) ListActivities(ctx context.Context, businessID, jobID uuid.UUID, limit int) ([]models.JobActivity, error) {
	var rows []models.JobActivity
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND job_id = ?", businessID, jobID).
		Order("created_at DESC").
		Limit(pagination.NormalizeLimit(limit)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
