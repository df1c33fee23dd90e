package memberships

import (
	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
)

type membershipWithBusinessRow struct {
	models.BusinessMembership
	BusinessName string `gorm:"column:business_name"`
	BusinessSlug string `gorm:"column:business_slug"`
}

func membershipWithBusinessFromRow(row membershipWithBusinessRow) MembershipWithBusiness {
	return MembershipWithBusiness{
		MembershipID: row.ID,
		BusinessID:   row.BusinessID,
		UserID:       row.UserID,
		BusinessName: row.BusinessName,
		BusinessSlug: row.BusinessSlug,
		Role:         row.Role,
		Permissions:  append([]string(nil), row.Permissions...),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func membershipRowsToDTO(rows []membershipWithBusinessRow) []MembershipWithBusiness {
	out := make([]MembershipWithBusiness, 0, len(rows))
	for _, row := range rows {
		out = append(out, membershipWithBusinessFromRow(row))
	}
	return out
}
