package contacts

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
	"github.com/get-hunter/hero365-app-sub002/pkg/types"
)

// ContactDTO is the transport shape for a contact.
type ContactDTO struct {
	ID         uuid.UUID         `json:"id"`
	BusinessID uuid.UUID         `json:"business_id"`
	Type       enums.ContactType `json:"type"`
	FirstName  string            `json:"first_name"`
	LastName   *string           `json:"last_name,omitempty"`
	Company    *string           `json:"company,omitempty"`
	Email      *string           `json:"email,omitempty"`
	Phone      *string           `json:"phone,omitempty"`
	Address    *types.Address    `json:"address,omitempty"`
	Tags       []string          `json:"tags"`
	Notes      *string           `json:"notes,omitempty"`
	IsActive   bool              `json:"is_active"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// ContactList wraps one page of contacts plus the cursor for the next page.
type ContactList struct {
	Contacts   []ContactDTO `json:"contacts"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// CreateContactRequest is the inbound payload for creating a contact.
type CreateContactRequest struct {
	Type      enums.ContactType `json:"type" validate:"required"`
	FirstName string            `json:"first_name" validate:"required"`
	LastName  *string           `json:"last_name,omitempty"`
	Company   *string           `json:"company,omitempty"`
	Email     *string           `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string           `json:"phone,omitempty"`
	Address   *types.Address    `json:"address,omitempty"`
	Tags      []string          `json:"tags,omitempty"`
	Notes     *string           `json:"notes,omitempty"`
}

// UpdateContactRequest carries partial updates; nil fields are untouched.
type UpdateContactRequest struct {
	Type      *enums.ContactType `json:"type,omitempty"`
	FirstName *string            `json:"first_name,omitempty"`
	LastName  *string            `json:"last_name,omitempty"`
	Company   *string            `json:"company,omitempty"`
	Email     *string            `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string            `json:"phone,omitempty"`
	Address   *types.Address     `json:"address,omitempty"`
	Tags      []string           `json:"tags,omitempty"`
	Notes     *string            `json:"notes,omitempty"`
}

func FromModel(m *models.Contact) *ContactDTO {
	if m == nil {
		return nil
	}

	return &ContactDTO{
		ID:         m.ID,
		BusinessID: m.BusinessID,
		Type:       m.Type,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		Company:    m.Company,
		Email:      m.Email,
		Phone:      m.Phone,
		Address:    m.Address,
		Tags:       append([]string(nil), m.Tags...),
		Notes:      m.Notes,
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (r CreateContactRequest) toModel(businessID uuid.UUID) *models.Contact {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return &models.Contact{
		BusinessID: businessID,
		Type:       r.Type,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Company:    r.Company,
		Email:      r.Email,
		Phone:      r.Phone,
		Address:    r.Address,
		Tags:       pq.StringArray(tags),
		Notes:      r.Notes,
		IsActive:   true,
	}
}
