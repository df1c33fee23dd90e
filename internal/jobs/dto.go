package jobs

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
	"github.com/get-hunter/hero365-app-sub002/pkg/types"
)

// JobDTO is the transport shape for a job.
type JobDTO struct {
	ID               uuid.UUID         `json:"id"`
	BusinessID       uuid.UUID         `json:"business_id"`
	ProjectID        *uuid.UUID        `json:"project_id,omitempty"`
	ContactID        *uuid.UUID        `json:"contact_id,omitempty"`
	JobNumber        int64             `json:"job_number"`
	Title            string            `json:"title"`
	Description      *string           `json:"description,omitempty"`
	Status           enums.JobStatus   `json:"status"`
	Priority         enums.JobPriority `json:"priority"`
	AssignedUserID   *uuid.UUID        `json:"assigned_user_id,omitempty"`
	JobAddress       *types.Address    `json:"job_address,omitempty"`
	ScheduledStartAt *time.Time        `json:"scheduled_start_at,omitempty"`
	ScheduledEndAt   *time.Time        `json:"scheduled_end_at,omitempty"`
	CompletedAt      *time.Time        `json:"completed_at,omitempty"`
	TotalAmount      decimal.Decimal   `json:"total_amount"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// JobList wraps one page of jobs plus the cursor for the next page.
type JobList struct {
	Jobs       []JobDTO `json:"jobs"`
	NextCursor string   `json:"next_cursor,omitempty"`
}

// CreateJobRequest is the inbound payload for creating a job.
type CreateJobRequest struct {
	ProjectID        *uuid.UUID         `json:"project_id,omitempty"`
	ContactID        *uuid.UUID         `json:"contact_id,omitempty"`
	Title            string             `json:"title" validate:"required"`
	Description      *string            `json:"description,omitempty"`
	Priority         *enums.JobPriority `json:"priority,omitempty"`
	AssignedUserID   *uuid.UUID         `json:"assigned_user_id,omitempty"`
	JobAddress       *types.Address     `json:"job_address,omitempty"`
	ScheduledStartAt *time.Time         `json:"scheduled_start_at,omitempty"`
	ScheduledEndAt   *time.Time         `json:"scheduled_end_at,omitempty"`
}

// ActivityDTO is the transport shape for a job timeline entry.
type ActivityDTO struct {
	ID           uuid.UUID     `json:"id"`
	JobID        uuid.UUID     `json:"job_id"`
	ActorUserID  *uuid.UUID    `json:"actor_user_id,omitempty"`
	ActivityType string        `json:"activity_type"`
	Message      string        `json:"message"`
	Payload      types.JSONMap `json:"payload,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

func FromModel(m *models.Job) *JobDTO {
	if m == nil {
		return nil
	}

	return &JobDTO{
		ID:               m.ID,
		BusinessID:       m.BusinessID,
		ProjectID:        m.ProjectID,
		ContactID:        m.ContactID,
		JobNumber:        m.JobNumber,
		Title:            m.Title,
		Description:      m.Description,
		Status:           m.Status,
		Priority:         m.Priority,
		AssignedUserID:   m.AssignedUserID,
		JobAddress:       m.JobAddress,
		ScheduledStartAt: m.ScheduledStartAt,
		ScheduledEndAt:   m.ScheduledEndAt,
		CompletedAt:      m.CompletedAt,
		TotalAmount:      m.TotalAmount,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func activityFromModel(m *models.JobActivity) *ActivityDTO {
	if m == nil {
		return nil
	}

	return &ActivityDTO{
		ID:           m.ID,
		JobID:        m.JobID,
		ActorUserID:  m.ActorUserID,
		ActivityType: m.ActivityType,
		Message:      m.Message,
		Payload:      m.Payload,
		CreatedAt:    m.CreatedAt,
	}
}
