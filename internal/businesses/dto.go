package businesses

import (
	"time"

	"github.com/google/uuid"

	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
	"github.com/get-hunter/hero365-app-sub002/pkg/types"
)

// BusinessDTO is the transport shape for a business.
type BusinessDTO struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Slug      string         `json:"slug"`
	Industry  *string        `json:"industry,omitempty"`
	Phone     *string        `json:"phone,omitempty"`
	Email     *string        `json:"email,omitempty"`
	Website   *string        `json:"website,omitempty"`
	Address   *types.Address `json:"address,omitempty"`
	Timezone  string         `json:"timezone"`
	OwnerID   uuid.UUID      `json:"owner_id"`
	IsActive  bool           `json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// CreateBusinessDTO holds the data required by the repo to persist a new business.
type CreateBusinessDTO struct {
	Name     string
	Slug     string
	Industry *string
	Phone    *string
	Email    *string
	Website  *string
	Address  *types.Address
	Timezone string
	OwnerID  uuid.UUID
}

func FromModel(b *models.Business) *BusinessDTO {
	if b == nil {
		return nil
	}

	return &BusinessDTO{
		ID:        b.ID,
		Name:      b.Name,
		Slug:      b.Slug,
		Industry:  b.Industry,
		Phone:     b.Phone,
		Email:     b.Email,
		Website:   b.Website,
		Address:   b.Address,
		Timezone:  b.Timezone,
		OwnerID:   b.OwnerID,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (c CreateBusinessDTO) ToModel() *models.Business {
	timezone := c.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	return &models.Business{
		Name:     c.Name,
		Slug:     c.Slug,
		Industry: c.Industry,
		Phone:    c.Phone,
		Email:    c.Email,
		Website:  c.Website,
		Address:  c.Address,
		Timezone: timezone,
		OwnerID:  c.OwnerID,
		IsActive: true,
	}
}
