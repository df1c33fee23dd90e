package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/get-hunter/hero365-app-sub002/pkg/db"
	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
	pkgerrors "github.com/get-hunter/hero365-app-sub002/pkg/errors"
	"github.com/get-hunter/hero365-app-sub002/pkg/pagination"
	"github.com/get-hunter/hero365-app-sub002/pkg/types"
)

// Activity type labels recorded on the job timeline.
const (
	ActivityCreated       = "created"
	ActivityStatusChanged = "status_changed"
	ActivityAssigned      = "assigned"
)

// Service manages per-business jobs and their timelines.
type Service interface {
	Create(ctx context.Context, businessID uuid.UUID, actorID *uuid.UUID, req CreateJobRequest) (*JobDTO, error)
	Get(ctx context.Context, businessID, id uuid.UUID) (*JobDTO, error)
	List(ctx context.Context, businessID uuid.UUID, filter ListFilter, page pagination.Params) (*JobList, error)
	ChangeStatus(ctx context.Context, businessID, id uuid.UUID, actorID *uuid.UUID, to enums.JobStatus) (*JobDTO, error)
	Assign(ctx context.Context, businessID, id uuid.UUID, actorID *uuid.UUID, assigneeID uuid.UUID) (*JobDTO, error)
	Timeline(ctx context.Context, businessID, id uuid.UUID, limit int) ([]ActivityDTO, error)
}

// ServiceParams bundles the dependencies for the jobs service.
type ServiceParams struct {
	DB *db.Client
}

type service struct {
	db *db.Client
}

// NewService constructs the jobs service.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	return &service{db: params.DB}, nil
}

func (s *service) Create(ctx context.Context, businessID uuid.UUID, actorID *uuid.UUID, req CreateJobRequest) (*JobDTO, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	priority := enums.JobPriorityMedium
	if req.Priority != nil {
		if !req.Priority.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid job priority")
		}
		priority = *req.Priority
	}
	if req.ScheduledStartAt != nil && req.ScheduledEndAt != nil && !req.ScheduledEndAt.After(*req.ScheduledStartAt) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "scheduled_end_at must be after scheduled_start_at")
	}

	var job *models.Job
	err := s.db.WithTenantTx(ctx, businessID, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		number, err := repo.NextJobNumber(ctx, businessID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reserve job number")
		}

		status := enums.JobStatusDraft
		if req.ScheduledStartAt != nil {
			status = enums.JobStatusScheduled
		}

		job = &models.Job{
			BusinessID:       businessID,
			ProjectID:        req.ProjectID,
			ContactID:        req.ContactID,
			JobNumber:        number,
			Title:            req.Title,
			Description:      req.Description,
			Status:           status,
			Priority:         priority,
			AssignedUserID:   req.AssignedUserID,
			JobAddress:       req.JobAddress,
			ScheduledStartAt: req.ScheduledStartAt,
			ScheduledEndAt:   req.ScheduledEndAt,
		}
		if err := repo.Create(ctx, job); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create job")
		}

		activity := &models.JobActivity{
			BusinessID:   businessID,
			JobID:        job.ID,
			ActorUserID:  actorID,
			ActivityType: ActivityCreated,
			Message:      fmt.Sprintf("job #%d created", job.JobNumber),
			Payload:      types.JSONMap{"status": string(job.Status)},
		}
		if err := repo.AppendActivity(ctx, activity); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record job activity")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(job), nil
}

func (s *service) Get(ctx context.Context, businessID, id uuid.UUID) (*JobDTO, error) {
	repo := NewRepository(s.db.DB())
	job, err := repo.FindByID(ctx, businessID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "job not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load job")
	}
	return FromModel(job), nil
}

func (s *service) List(ctx context.Context, businessID uuid.UUID, filter ListFilter, page pagination.Params) (*JobList, error) {
	repo := NewRepository(s.db.DB())
	rows, next, err := repo.List(ctx, businessID, filter, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list jobs")
	}
	out := make([]JobDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return &JobList{Jobs: out, NextCursor: next}, nil
}

func (s *service) ChangeStatus(ctx context.Context, businessID, id uuid.UUID, actorID *uuid.UUID, to enums.JobStatus) (*JobDTO, error) {
	if !to.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid job status")
	}

	var updated *models.Job
	err := s.db.WithTenantTx(ctx, businessID, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		job, err := repo.FindByID(ctx, businessID, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "job not found")
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load job")
		}

		if !CanTransition(job.Status, to) {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("cannot move job from %s to %s", job.Status, to))
		}

		updates := map[string]any{"status": to}
		if to == enums.JobStatusCompleted {
			now := time.Now().UTC()
			updates["completed_at"] = now
			job.CompletedAt = &now
		}
		if err := repo.Update(ctx, businessID, id, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update job status")
		}

		activity := &models.JobActivity{
			BusinessID:   businessID,
			JobID:        job.ID,
			ActorUserID:  actorID,
			ActivityType: ActivityStatusChanged,
			Message:      fmt.Sprintf("status changed from %s to %s", job.Status, to),
			Payload:      types.JSONMap{"from": string(job.Status), "to": string(to)},
		}
		if err := repo.AppendActivity(ctx, activity); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record job activity")
		}

		job.Status = to
		updated = job
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

func (s *service) Assign(ctx context.Context, businessID, id uuid.UUID, actorID *uuid.UUID, assigneeID uuid.UUID) (*JobDTO, error) {
	var updated *models.Job
	err := s.db.WithTenantTx(ctx, businessID, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		job, err := repo.FindByID(ctx, businessID, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "job not found")
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load job")
		}
		if job.Status.IsTerminal() {
			return pkgerrors.New(pkgerrors.CodeValidation, "cannot assign a closed job")
		}

		if err := repo.Update(ctx, businessID, id, map[string]any{"assigned_user_id": assigneeID}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "assign job")
		}

		activity := &models.JobActivity{
			BusinessID:   businessID,
			JobID:        job.ID,
			ActorUserID:  actorID,
			ActivityType: ActivityAssigned,
			Message:      "job assigned",
			Payload:      types.JSONMap{"assigned_user_id": assigneeID.String()},
		}
		if err := repo.AppendActivity(ctx, activity); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record job activity")
		}

		job.AssignedUserID = &assigneeID
		updated = job
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

func (s *service) Timeline(ctx context.Context, businessID, id uuid.UUID, limit int) ([]ActivityDTO, error) {
	repo := NewRepository(s.db.DB())
	rows, err := repo.ListActivities(ctx, businessID, id, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list job activities")
	}
	out := make([]ActivityDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *activityFromModel(&rows[i]))
	}
	return out, nil
}
