package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/get-hunter/hero365-app-sub002/pkg/types"
)

// Business is the multi-tenancy unit; nearly every table is scoped to one.
type Business struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string         `gorm:"column:name;not null"`
	Slug      string         `gorm:"column:slug;not null;uniqueIndex"`
	Industry  *string        `gorm:"column:industry"`
	Phone     *string        `gorm:"column:phone"`
	Email     *string        `gorm:"column:email"`
	Website   *string        `gorm:"column:website"`
	Address   *types.Address `gorm:"column:address;type:jsonb"`
	Timezone  string         `gorm:"column:timezone;not null;default:'UTC'"`
	OwnerID   uuid.UUID      `gorm:"column:owner_id;type:uuid;not null"`
	IsActive  bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
