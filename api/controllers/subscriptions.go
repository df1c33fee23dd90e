package controllers

import (
	"net/http"
	"strings"

	"github.com/get-hunter/hero365-app-sub002/api/responses"
	"github.com/get-hunter/hero365-app-sub002/api/validators"
	"github.com/get-hunter/hero365-app-sub002/internal/subscriptions"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
	pkgerrors "github.com/get-hunter/hero365-app-sub002/pkg/errors"
	"github.com/get-hunter/hero365-app-sub002/pkg/logger"
)

// PlanCreate publishes a membership plan for the active business.
func PlanCreate(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID, err := businessIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload subscriptions.CreatePlanRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreatePlan(r.Context(), businessID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// PlanList returns the business's plans, optionally including retired ones.
func PlanList(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID, err := businessIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		includeInactive, err := validators.ParseQueryBool(r, "include_inactive")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListPlans(r.Context(), businessID, includeInactive)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// PlanRetire deactivates a plan so new enrollments stop.
func PlanRetire(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID, err := businessIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		planID, err := pathUUID(r, "planID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RetirePlan(r.Context(), businessID, planID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "retired"})
	}
}

// SubscriptionEnroll signs a customer up for a plan.
func SubscriptionEnroll(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID, err := businessIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload subscriptions.EnrollRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Enroll(r.Context(), businessID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// SubscriptionGet fetches a single customer subscription.
func SubscriptionGet(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID, err := businessIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "subscriptionID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sub, err := svc.Get(r.Context(), businessID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sub)
	}
}

// SubscriptionList returns subscriptions with optional status and email filters.
func SubscriptionList(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID, err := businessIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var status *enums.SubscriptionStatus
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			parsed := enums.SubscriptionStatus(raw)
			if !parsed.IsValid() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid subscription status"))
				return
			}
			status = &parsed
		}
		email := strings.TrimSpace(r.URL.Query().Get("email"))

		list, err := svc.List(r.Context(), businessID, status, email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// subscriptionTransition wires a lifecycle action to a handler.
func subscriptionTransition(action func(svc subscriptions.Service, r *http.Request) (*subscriptions.SubscriptionDTO, error), svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		updated, err := action(svc, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// SubscriptionPause suspends billing and benefits for an active subscription.
func SubscriptionPause(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return subscriptionTransition(func(svc subscriptions.Service, r *http.Request) (*subscriptions.SubscriptionDTO, error) {
		businessID, err := businessIDFrom(r)
		if err != nil {
			return nil, err
		}
		id, err := pathUUID(r, "subscriptionID")
		if err != nil {
			return nil, err
		}
		return svc.Pause(r.Context(), businessID, id)
	}, svc, logg)
}

// SubscriptionResume reactivates a paused subscription.
func SubscriptionResume(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return subscriptionTransition(func(svc subscriptions.Service, r *http.Request) (*subscriptions.SubscriptionDTO, error) {
		businessID, err := businessIDFrom(r)
		if err != nil {
			return nil, err
		}
		id, err := pathUUID(r, "subscriptionID")
		if err != nil {
			return nil, err
		}
		return svc.Resume(r.Context(), businessID, id)
	}, svc, logg)
}

// SubscriptionCancel ends a subscription permanently.
func SubscriptionCancel(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return subscriptionTransition(func(svc subscriptions.Service, r *http.Request) (*subscriptions.SubscriptionDTO, error) {
		businessID, err := businessIDFrom(r)
		if err != nil {
			return nil, err
		}
		id, err := pathUUID(r, "subscriptionID")
		if err != nil {
			return nil, err
		}
		return svc.Cancel(r.Context(), businessID, id)
	}, svc, logg)
}
