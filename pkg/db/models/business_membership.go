package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
)

// BusinessMembership links a user with a business and captures their role
// plus granted permissions. An empty permission set is filled with the
// role's defaults by a database trigger on insert/update.
type BusinessMembership struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessID      uuid.UUID        `gorm:"column:business_id;type:uuid;not null"`
	UserID          uuid.UUID        `gorm:"column:user_id;type:uuid;not null"`
	Role            enums.MemberRole `gorm:"column:role;not null"`
	Permissions     pq.StringArray   `gorm:"column:permissions;type:text[]"`
	InvitedByUserID *uuid.UUID       `gorm:"column:invited_by_user_id;type:uuid"`
	IsActive        bool             `gorm:"column:is_active;not null;default:true"`
	JoinedAt        time.Time        `gorm:"column:joined_at;autoCreateTime"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
