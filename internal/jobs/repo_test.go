package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
	"github.com/get-hunter/hero365-app-sub002/pkg/pagination"
)

func setupJobsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	jobs := `
CREATE TABLE IF NOT EXISTS jobs (
  id TEXT PRIMARY KEY,
  business_id TEXT NOT NULL,
  project_id TEXT,
  contact_id TEXT,
  job_number INTEGER NOT NULL,
  title TEXT NOT NULL,
  description TEXT,
  status TEXT NOT NULL DEFAULT 'draft',
  priority TEXT NOT NULL DEFAULT 'medium',
  assigned_user_id TEXT,
  job_address TEXT,
  scheduled_start_at DATETIME,
  scheduled_end_at DATETIME,
  completed_at DATETIME,
  total_amount NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	activities := `
CREATE TABLE IF NOT EXISTS job_activities (
  id TEXT PRIMARY KEY,
  business_id TEXT NOT NULL,
  job_id TEXT NOT NULL,
  actor_user_id TEXT,
  activity_type TEXT NOT NULL,
  message TEXT NOT NULL,
  payload TEXT,
  created_at DATETIME
);`
	counters := `
CREATE TABLE IF NOT EXISTS document_counters (
  business_id TEXT NOT NULL,
  document_type TEXT NOT NULL,
  next_number INTEGER NOT NULL DEFAULT 1,
  PRIMARY KEY (business_id, document_type)
);`
	require.NoError(t, db.Exec(jobs).Error)
	require.NoError(t, db.Exec(activities).Error)
	require.NoError(t, db.Exec(counters).Error)
	return db
}

func createTestJob(t *testing.T, db *gorm.DB, businessID uuid.UUID, number int64, status enums.JobStatus, created time.Time) *models.Job {
	t.Helper()

	job := &models.Job{
		ID:         uuid.New(),
		BusinessID: businessID,
		JobNumber:  number,
		Title:      "Water heater install",
		Status:     status,
		Priority:   enums.JobPriorityMedium,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

func TestNextJobNumberIsSequential(t *testing.T) {
	db := setupJobsTestDB(t)
	repo := NewRepository(db)
	businessID := uuid.New()
	ctx := context.Background()

	first, err := repo.NextJobNumber(ctx, businessID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)

	second, err := repo.NextJobNumber(ctx, businessID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second)

	third, err := repo.NextJobNumber(ctx, businessID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), third)
}

func TestNextJobNumberIsScopedPerBusiness(t *testing.T) {
	db := setupJobsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	alpha := uuid.New()
	beta := uuid.New()

	n, err := repo.NextJobNumber(ctx, alpha)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.NextJobNumber(ctx, alpha)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.NextJobNumber(ctx, beta)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestNextJobNumberDoesNotDisturbBillingCounters(t *testing.T) {
	db := setupJobsTestDB(t)
	repo := NewRepository(db)
	businessID := uuid.New()
	ctx := context.Background()

	_, err := repo.NextJobNumber(ctx, businessID)
	require.NoError(t, err)

	var counters []models.DocumentCounter
	require.NoError(t, db.Where("business_id = ?", businessID).Find(&counters).Error)
	require.Len(t, counters, 1)
	assert.Equal(t, "job", counters[0].DocumentType)
	assert.Equal(t, int64(2), counters[0].NextNumber)
}

func TestListFiltersByStatusAndAssignee(t *testing.T) {
	db := setupJobsTestDB(t)
	repo := NewRepository(db)
	businessID := uuid.New()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	draft := createTestJob(t, db, businessID, 1, enums.JobStatusDraft, base)
	scheduled := createTestJob(t, db, businessID, 2, enums.JobStatusScheduled, base.Add(time.Hour))
	createTestJob(t, db, uuid.New(), 1, enums.JobStatusDraft, base)

	assignee := uuid.New()
	require.NoError(t, repo.Update(ctx, businessID, scheduled.ID, map[string]any{"assigned_user_id": assignee}))

	all, next, err := repo.List(ctx, businessID, ListFilter{}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, scheduled.ID, all[0].ID)
	assert.Empty(t, next)

	status := enums.JobStatusDraft
	drafts, _, err := repo.List(ctx, businessID, ListFilter{Status: &status}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, draft.ID, drafts[0].ID)

	mine, _, err := repo.List(ctx, businessID, ListFilter{AssignedUserID: &assignee}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, scheduled.ID, mine[0].ID)
}

func TestListPagesWithCursor(t *testing.T) {
	db := setupJobsTestDB(t)
	repo := NewRepository(db)
	businessID := uuid.New()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := int64(1); i <= 3; i++ {
		createTestJob(t, db, businessID, i, enums.JobStatusDraft, base.Add(time.Duration(i)*time.Hour))
	}

	first, next, err := repo.List(ctx, businessID, ListFilter{}, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.NotEmpty(t, next)
	assert.Equal(t, int64(3), first[0].JobNumber)

	second, last, err := repo.List(ctx, businessID, ListFilter{}, pagination.Params{Limit: 2, Cursor: next})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, int64(1), second[0].JobNumber)
	assert.Empty(t, last)
}

func TestFindByIDIsBusinessScoped(t *testing.T) {
	db := setupJobsTestDB(t)
	repo := NewRepository(db)
	businessID := uuid.New()
	ctx := context.Background()

	job := createTestJob(t, db, businessID, 1, enums.JobStatusDraft, time.Now().UTC())

	found, err := repo.FindByID(ctx, businessID, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, found.ID)

	_, err = repo.FindByID(ctx, uuid.New(), job.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestActivitiesAreNewestFirst(t *testing.T) {
	db := setupJobsTestDB(t)
	repo := NewRepository(db)
	businessID := uuid.New()
	ctx := context.Background()

	job := createTestJob(t, db, businessID, 1, enums.JobStatusDraft, time.Now().UTC())

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, msg := range []string{"job #1 created", "status changed from draft to scheduled"} {
		activity := &models.JobActivity{
			ID:           uuid.New(),
			BusinessID:   businessID,
			JobID:        job.ID,
			ActivityType: ActivityCreated,
			Message:      msg,
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.AppendActivity(ctx, activity))
	}

	rows, err := repo.ListActivities(ctx, businessID, job.ID, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "status changed from draft to scheduled", rows[0].Message)
}
