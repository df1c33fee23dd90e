package memberships

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/get-hunter/hero365-app-sub002/internal/permissions"
	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
)

// Repository exposes membership persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListUserBusinesses returns the businesses a user belongs to along with
// membership metadata.
func (r *Repository) ListUserBusinesses(ctx context.Context, userID uuid.UUID) ([]MembershipWithBusiness, error) {
	var rows []membershipWithBusinessRow

	err := r.db.WithContext(ctx).
		Model(&models.BusinessMembership{}).
		Select("business_memberships.*, businesses.name AS business_name, businesses.slug AS business_slug").
		Joins("JOIN businesses ON businesses.id = business_memberships.business_id").
		Where("business_memberships.user_id = ? AND business_memberships.is_active", userID).
		Order("businesses.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return membershipRowsToDTO(rows), nil
}

// GetMembership retrieves a membership by user and business.
func (r *Repository) GetMembership(ctx context.Context, userID, businessID uuid.UUID) (*models.BusinessMembership, error) {
	var membership models.BusinessMembership
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND business_id = ?", userID, businessID).
		First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// CreateMembership persists a new membership record. When no explicit
// permissions are passed the role defaults are applied, matching the
// database trigger for rows created outside the application.
func (r *Repository) CreateMembership(ctx context.Context, businessID, userID uuid.UUID, role enums.MemberRole, invitedBy *uuid.UUID, perms []string) (*models.BusinessMembership, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid member role %q", role)
	}
	if len(perms) == 0 {
		perms = permissions.DefaultsForRole(role)
	}

	membership := &models.BusinessMembership{
		BusinessID:      businessID,
		UserID:          userID,
		Role:            role,
		Permissions:     pq.StringArray(perms),
		InvitedByUserID: invitedBy,
		IsActive:        true,
	}

	if err := r.db.WithContext(ctx).Create(membership).Error; err != nil {
		return nil, err
	}
	return membership, nil
}

// UpdateRole changes the membership role and resets permissions to the new
// role's defaults.
func (r *Repository) UpdateRole(ctx context.Context, membershipID uuid.UUID, role enums.MemberRole) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid member role %q", role)
	}
	return r.db.WithContext(ctx).
		Model(&models.BusinessMembership{}).
		Where("id = ?", membershipID).
		Updates(map[string]any{
			"role":        role,
			"permissions": pq.StringArray(permissions.DefaultsForRole(role)),
		}).Error
}

// UserHasRole reports whether the user holds one of the provided roles for
// the business.
func (r *Repository) UserHasRole(ctx context.Context, userID, businessID uuid.UUID, roles ...enums.MemberRole) (bool, error) {
	if len(roles) == 0 {
		return false, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.BusinessMembership{}).
		Where("user_id = ? AND business_id = ? AND is_active AND role IN ?", userID, businessID, roles).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UserHasPermission evaluates the membership's stored permission set. A
// revoked or missing membership grants nothing, regardless of what the
// actor's token still claims.
func (r *Repository) UserHasPermission(ctx context.Context, userID, businessID uuid.UUID, permission string) (bool, error) {
	membership, err := r.GetMembership(ctx, userID, businessID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !membership.IsActive {
		return false, nil
	}
	return permissions.Has(membership.Permissions, permission), nil
}

// Deactivate soft-removes the membership.
func (r *Repository) Deactivate(ctx context.Context, membershipID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.BusinessMembership{}).
		Where("id = ?", membershipID).
		UpdateColumn("is_active", false).Error
}
