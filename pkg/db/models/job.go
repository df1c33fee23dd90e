package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
	"github.com/get-hunter/hero365-app-sub002/pkg/types"
)

// Job is a unit of schedulable field work. JobNumber is sequential per
// business and assigned by the jobs service.
type Job struct {
	ID               uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessID       uuid.UUID         `gorm:"column:business_id;type:uuid;not null"`
	ProjectID        *uuid.UUID        `gorm:"column:project_id;type:uuid"`
	ContactID        *uuid.UUID        `gorm:"column:contact_id;type:uuid"`
	JobNumber        int64             `gorm:"column:job_number;not null"`
	Title            string            `gorm:"column:title;not null"`
	Description      *string           `gorm:"column:description"`
	Status           enums.JobStatus   `gorm:"column:status;not null;default:'draft'"`
	Priority         enums.JobPriority `gorm:"column:priority;not null;default:'medium'"`
	AssignedUserID   *uuid.UUID        `gorm:"column:assigned_user_id;type:uuid"`
	JobAddress       *types.Address    `gorm:"column:job_address;type:jsonb"`
	ScheduledStartAt *time.Time        `gorm:"column:scheduled_start_at"`
	ScheduledEndAt   *time.Time        `gorm:"column:scheduled_end_at"`
	CompletedAt      *time.Time        `gorm:"column:completed_at"`
	TotalAmount      decimal.Decimal   `gorm:"column:total_amount;type:numeric(12,2);not null;default:0"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
