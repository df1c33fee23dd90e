package memberships

import (
	"time"

	"github.com/google/uuid"

	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
)

// MembershipDTO is the transport shape for a raw membership record.
type MembershipDTO struct {
	ID              uuid.UUID        `json:"id"`
	BusinessID      uuid.UUID        `json:"business_id"`
	UserID          uuid.UUID        `json:"user_id"`
	Role            enums.MemberRole `json:"role"`
	Permissions     []string         `json:"permissions"`
	InvitedByUserID *uuid.UUID       `json:"invited_by_user_id,omitempty"`
	IsActive        bool             `json:"is_active"`
	JoinedAt        time.Time        `json:"joined_at"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// MembershipWithBusiness includes basic business metadata + membership info.
type MembershipWithBusiness struct {
	MembershipID uuid.UUID        `json:"membership_id"`
	BusinessID   uuid.UUID        `json:"business_id"`
	UserID       uuid.UUID        `json:"user_id"`
	BusinessName string           `json:"business_name"`
	BusinessSlug string           `json:"business_slug"`
	Role         enums.MemberRole `json:"role"`
	Permissions  []string         `json:"permissions"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ToDTO converts a model to the external DTO.
func ToDTO(m *models.BusinessMembership) *MembershipDTO {
	if m == nil {
		return nil
	}

	return &MembershipDTO{
		ID:              m.ID,
		BusinessID:      m.BusinessID,
		UserID:          m.UserID,
		Role:            m.Role,
		Permissions:     append([]string(nil), m.Permissions...),
		InvitedByUserID: copyUUIDPointer(m.InvitedByUserID),
		IsActive:        m.IsActive,
		JoinedAt:        m.JoinedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func copyUUIDPointer(src *uuid.UUID) *uuid.UUID {
	if src == nil {
		return nil
	}
	dst := *src
	return &dst
}
