package permissions

import (
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
)

// Permission names handed out by role defaults. The wildcard grants everything.
const (
	Wildcard = "*"

	ViewContacts   = "view_contacts"
	EditContacts   = "edit_contacts"
	DeleteContacts = "delete_contacts"
	ViewJobs       = "view_jobs"
	EditJobs       = "edit_jobs"
	DeleteJobs     = "delete_jobs"
	ViewProjects   = "view_projects"
	EditProjects   = "edit_projects"
	DeleteProjects = "delete_projects"
	ViewEstimates  = "view_estimates"
	EditEstimates  = "edit_estimates"
	ViewInvoices   = "view_invoices"
	EditInvoices   = "edit_invoices"
	ManageTeam     = "manage_team"
	ManageServices = "manage_services"
	ManageBilling  = "manage_billing"
)

// DefaultsForRole returns the permission set granted to a role when a
// membership is created without explicit permissions. The lists mirror
// get_default_permissions_for_role in the schema so application code and
// the database trigger always agree.
func DefaultsForRole(role enums.MemberRole) []string {
	switch role {
	case enums.MemberRoleOwner:
		return []string{
			Wildcard,
			ViewContacts, EditContacts, DeleteContacts,
			ViewJobs, EditJobs, DeleteJobs,
			ViewProjects, EditProjects, DeleteProjects,
			ViewEstimates, EditEstimates,
			ViewInvoices, EditInvoices,
			ManageTeam, ManageServices, ManageBilling,
		}
	case enums.MemberRoleAdmin:
		return []string{
			ViewContacts, EditContacts, DeleteContacts,
			ViewJobs, EditJobs, DeleteJobs,
			ViewProjects, EditProjects, DeleteProjects,
			ViewEstimates, EditEstimates,
			ViewInvoices, EditInvoices,
			ManageTeam, ManageServices,
		}
	case enums.MemberRoleManager:
		return []string{
			ViewContacts, EditContacts,
			ViewJobs, EditJobs,
			ViewProjects, EditProjects,
			ViewEstimates, EditEstimates,
			ViewInvoices,
		}
	case enums.MemberRoleEmployee:
		return []string{
			ViewContacts,
			ViewJobs, EditJobs,
			ViewProjects,
		}
	case enums.MemberRoleContractor:
		return []string{ViewJobs, EditJobs}
	case enums.MemberRoleViewer:
		return []string{ViewContacts, ViewJobs, ViewProjects}
	default:
		return []string{ViewJobs}
	}
}

// Has reports whether the granted set covers the requested permission.
// The wildcard entry covers everything.
func Has(granted []string, permission string) bool {
	for _, p := range granted {
		if p == Wildcard || p == permission {
			return true
		}
	}
	return false
}
