package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
)

// Project groups related jobs for a single contact.
type Project struct {
	ID          uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessID  uuid.UUID           `gorm:"column:business_id;type:uuid;not null"`
	ContactID   *uuid.UUID          `gorm:"column:contact_id;type:uuid"`
	Name        string              `gorm:"column:name;not null"`
	Description *string             `gorm:"column:description"`
	Status      enums.ProjectStatus `gorm:"column:status;not null;default:'planning'"`
	StartDate   *time.Time          `gorm:"column:start_date"`
	EndDate     *time.Time          `gorm:"column:end_date"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
