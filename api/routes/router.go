package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/get-hunter/hero365-app-sub002/api/controllers"
	"github.com/get-hunter/hero365-app-sub002/api/middleware"
	"github.com/get-hunter/hero365-app-sub002/internal/auth"
	"github.com/get-hunter/hero365-app-sub002/internal/billing"
	"github.com/get-hunter/hero365-app-sub002/internal/catalog"
	"github.com/get-hunter/hero365-app-sub002/internal/contacts"
	"github.com/get-hunter/hero365-app-sub002/internal/jobs"
	"github.com/get-hunter/hero365-app-sub002/internal/memberships"
	"github.com/get-hunter/hero365-app-sub002/internal/permissions"
	"github.com/get-hunter/hero365-app-sub002/internal/subscriptions"
	"github.com/get-hunter/hero365-app-sub002/internal/templates"
	"github.com/get-hunter/hero365-app-sub002/pkg/config"
	"github.com/get-hunter/hero365-app-sub002/pkg/db"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
	"github.com/get-hunter/hero365-app-sub002/pkg/logger"
	"github.com/get-hunter/hero365-app-sub002/pkg/metrics"
	"github.com/get-hunter/hero365-app-sub002/pkg/redis"
)

// MembershipStore serves both the membership listing endpoint and the
// live authorization checks the route guards run.
type MembershipStore interface {
	middleware.MembershipChecker
	ListUserBusinesses(ctx context.Context, userID uuid.UUID) ([]memberships.MembershipWithBusiness, error)
}

// RouterParams bundles everything the HTTP surface needs.
type RouterParams struct {
	Config  *config.Config
	Logger  *logger.Logger
	DB      db.Pinger
	Redis   *redis.Client
	Metrics *metrics.HTTPMetrics

	// MetricsHandler serves the Prometheus scrape endpoint when set.
	MetricsHandler http.Handler

	AuthService     auth.Service
	RegisterService auth.RegisterService
	Memberships     MembershipStore
	Templates       templates.Service
	Contacts        contacts.Service
	Jobs            jobs.Service
	Estimates       billing.EstimateService
	Invoices        billing.InvoiceService
	Subscriptions   subscriptions.Service
	Catalog         catalog.Service
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.Metrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, p.Redis))
	})

	if p.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", p.MetricsHandler)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).Post("/login", controllers.Login(p.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, p.Redis, logg)).Post("/register", controllers.Register(p.RegisterService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Post("/auth/switch-business", controllers.SwitchBusiness(p.AuthService, logg))
		r.Get("/me/businesses", controllers.MyBusinesses(p.Memberships, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireBusiness(logg))

			r.Route("/templates", func(r chi.Router) {
				r.Get("/", controllers.TemplateList(p.Templates, logg))
				r.Get("/default", controllers.TemplateResolveDefault(p.Templates, logg))
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRoles(p.Memberships, logg, enums.MemberRoleOwner, enums.MemberRoleAdmin))
					r.Post("/", controllers.TemplateCreate(p.Templates, logg))
					r.Put("/default", controllers.TemplateSetDefault(p.Templates, logg))
					r.Put("/preference", controllers.TemplateSetPreference(p.Templates, logg))
					r.Delete("/preference", controllers.TemplateClearPreference(p.Templates, logg))
				})
			})

			r.Route("/contacts", func(r chi.Router) {
				r.With(middleware.RequirePermission(permissions.ViewContacts, p.Memberships, logg)).Get("/", controllers.ContactList(p.Contacts, logg))
				r.With(middleware.RequirePermission(permissions.ViewContacts, p.Memberships, logg)).Get("/{contactID}", controllers.ContactGet(p.Contacts, logg))
				r.With(middleware.RequirePermission(permissions.EditContacts, p.Memberships, logg)).Post("/", controllers.ContactCreate(p.Contacts, logg))
				r.With(middleware.RequirePermission(permissions.EditContacts, p.Memberships, logg)).Patch("/{contactID}", controllers.ContactUpdate(p.Contacts, logg))
				r.With(middleware.RequirePermission(permissions.DeleteContacts, p.Memberships, logg)).Delete("/{contactID}", controllers.ContactDelete(p.Contacts, logg))
			})

			r.Route("/jobs", func(r chi.Router) {
				r.With(middleware.RequirePermission(permissions.ViewJobs, p.Memberships, logg)).Get("/", controllers.JobList(p.Jobs, logg))
				r.With(middleware.RequirePermission(permissions.ViewJobs, p.Memberships, logg)).Get("/{jobID}", controllers.JobGet(p.Jobs, logg))
				r.With(middleware.RequirePermission(permissions.ViewJobs, p.Memberships, logg)).Get("/{jobID}/timeline", controllers.JobTimeline(p.Jobs, logg))
				r.With(middleware.RequirePermission(permissions.EditJobs, p.Memberships, logg)).Post("/", controllers.JobCreate(p.Jobs, logg))
				r.With(middleware.RequirePermission(permissions.EditJobs, p.Memberships, logg)).Post("/{jobID}/status", controllers.JobChangeStatus(p.Jobs, logg))
				r.With(middleware.RequirePermission(permissions.EditJobs, p.Memberships, logg)).Post("/{jobID}/assign", controllers.JobAssign(p.Jobs, logg))
			})

			r.Route("/estimates", func(r chi.Router) {
				r.With(middleware.RequirePermission(permissions.ViewEstimates, p.Memberships, logg)).Get("/", controllers.EstimateList(p.Estimates, logg))
				r.With(middleware.RequirePermission(permissions.ViewEstimates, p.Memberships, logg)).Get("/{estimateID}", controllers.EstimateGet(p.Estimates, logg))
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(permissions.EditEstimates, p.Memberships, logg))
					r.Post("/", controllers.EstimateCreate(p.Estimates, logg))
					r.Post("/{estimateID}/send", controllers.EstimateSend(p.Estimates, logg))
					r.Post("/{estimateID}/approve", controllers.EstimateApprove(p.Estimates, logg))
					r.Post("/{estimateID}/decline", controllers.EstimateDecline(p.Estimates, logg))
					r.Post("/{estimateID}/convert", controllers.EstimateConvert(p.Estimates, logg))
				})
			})

			r.Route("/invoices", func(r chi.Router) {
				r.With(middleware.RequirePermission(permissions.ViewInvoices, p.Memberships, logg)).Get("/", controllers.InvoiceList(p.Invoices, logg))
				r.With(middleware.RequirePermission(permissions.ViewInvoices, p.Memberships, logg)).Get("/{invoiceID}", controllers.InvoiceGet(p.Invoices, logg))
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(permissions.EditInvoices, p.Memberships, logg))
					r.Post("/", controllers.InvoiceCreate(p.Invoices, logg))
					r.Post("/{invoiceID}/send", controllers.InvoiceSend(p.Invoices, logg))
					r.Post("/{invoiceID}/payments", controllers.InvoiceRecordPayment(p.Invoices, logg))
				})
				r.With(middleware.RequirePermission(permissions.ManageBilling, p.Memberships, logg)).Post("/{invoiceID}/void", controllers.InvoiceVoid(p.Invoices, logg))
			})

			r.Route("/plans", func(r chi.Router) {
				r.Get("/", controllers.PlanList(p.Subscriptions, logg))
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRoles(p.Memberships, logg, enums.MemberRoleOwner, enums.MemberRoleAdmin))
					r.Post("/", controllers.PlanCreate(p.Subscriptions, logg))
					r.Delete("/{planID}", controllers.PlanRetire(p.Subscriptions, logg))
				})
			})

			r.Route("/subscriptions", func(r chi.Router) {
				r.Get("/", controllers.SubscriptionList(p.Subscriptions, logg))
				r.Get("/{subscriptionID}", controllers.SubscriptionGet(p.Subscriptions, logg))
				r.Post("/", controllers.SubscriptionEnroll(p.Subscriptions, logg))
				r.Post("/{subscriptionID}/pause", controllers.SubscriptionPause(p.Subscriptions, logg))
				r.Post("/{subscriptionID}/resume", controllers.SubscriptionResume(p.Subscriptions, logg))
				r.Post("/{subscriptionID}/cancel", controllers.SubscriptionCancel(p.Subscriptions, logg))
			})

			r.Route("/catalog", func(r chi.Router) {
				r.Get("/taxonomy", controllers.CatalogTaxonomy(p.Catalog, logg))
				r.Get("/activities/{activityID}/templates", controllers.CatalogTemplates(p.Catalog, logg))
			})

			r.Route("/services", func(r chi.Router) {
				r.Get("/", controllers.ServiceList(p.Catalog, logg))
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(permissions.ManageServices, p.Memberships, logg))
					r.Post("/", controllers.ServiceCreate(p.Catalog, logg))
					r.Delete("/{serviceID}", controllers.ServiceRetire(p.Catalog, logg))
				})
			})

			r.Route("/service-areas", func(r chi.Router) {
				r.Get("/", controllers.AreaList(p.Catalog, logg))
				r.Get("/coverage", controllers.AreaCoverage(p.Catalog, logg))
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(permissions.ManageServices, p.Memberships, logg))
					r.Post("/", controllers.AreaAdd(p.Catalog, logg))
					r.Delete("/{areaID}", controllers.AreaRemove(p.Catalog, logg))
				})
			})
		})
	})

	return r
}
