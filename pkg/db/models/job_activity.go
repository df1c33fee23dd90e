package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/get-hunter/hero365-app-sub002/pkg/types"
)

// JobActivity is an append-only timeline entry for a job (status changes,
// notes, assignments). Rows are never updated.
type JobActivity struct {
	ID           uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessID   uuid.UUID     `gorm:"column:business_id;type:uuid;not null"`
	JobID        uuid.UUID     `gorm:"column:job_id;type:uuid;not null"`
	ActorUserID  *uuid.UUID    `gorm:"column:actor_user_id;type:uuid"`
	ActivityType string        `gorm:"column:activity_type;not null"`
	Message      string        `gorm:"column:message;not null"`
	Payload      types.JSONMap `gorm:"column:payload;type:jsonb"`
	CreatedAt    time.Time     `gorm:"column:created_at;autoCreateTime"`
}
