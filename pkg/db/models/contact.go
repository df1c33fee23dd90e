package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
	"github.com/get-hunter/hero365-app-sub002/pkg/types"
)

// Contact is a per-business customer, lead, prospect, or vendor record.
// Phone is normalized to E.164 before persistence.
type Contact struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessID uuid.UUID         `gorm:"column:business_id;type:uuid;not null"`
	Type       enums.ContactType `gorm:"column:type;not null;default:'lead'"`
	FirstName  string            `gorm:"column:first_name;not null"`
	LastName   *string           `gorm:"column:last_name"`
	Company    *string           `gorm:"column:company"`
	Email      *string           `gorm:"column:email"`
	Phone      *string           `gorm:"column:phone"`
	Address    *types.Address    `gorm:"column:address;type:jsonb"`
	Tags       pq.StringArray    `gorm:"column:tags;type:text[]"`
	Notes      *string           `gorm:"column:notes"`
	IsActive   bool              `gorm:"column:is_active;not null;default:true"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
