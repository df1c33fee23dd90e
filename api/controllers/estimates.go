package controllers

import (
	"net/http"
	"strings"

	"github.com/get-hunter/hero365-app-sub002/api/responses"
	"github.com/get-hunter/hero365-app-sub002/api/validators"
	"github.com/get-hunter/hero365-app-sub002/internal/billing"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
	pkgerrors "github.com/get-hunter/hero365-app-sub002/pkg/errors"
	"github.com/get-hunter/hero365-app-sub002/pkg/logger"
)

// EstimateCreate drafts an estimate with computed line totals.
func EstimateCreate(svc billing.EstimateService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID, err := businessIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload billing.CreateEstimateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), businessID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// EstimateGet fetches an estimate with its line items.
func EstimateGet(svc billing.EstimateService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID, err := businessIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "estimateID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		estimate, err := svc.Get(r.Context(), businessID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, estimate)
	}
}

// EstimateList pages through estimates with optional status and contact filters.
func EstimateList(svc billing.EstimateService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID, err := businessIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var filter billing.EstimateFilter
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status := enums.EstimateStatus(raw)
			if !status.IsValid() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid estimate status"))
				return
			}
			filter.Status = &status
		}
		if filter.ContactID, err = validators.ParseQueryUUID(r, "contact_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), businessID, filter, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// estimateTransition wires a one-shot status action to a handler.
func estimateTransition(action func(svc billing.EstimateService, r *http.Request) (*billing.EstimateDTO, error), svc billing.EstimateService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		updated, err := action(svc, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// EstimateSend marks a draft estimate as sent.
func EstimateSend(svc billing.EstimateService, logg *logger.Logger) http.HandlerFunc {
	return estimateTransition(func(svc billing.EstimateService, r *http.Request) (*billing.EstimateDTO, error) {
		businessID, err := businessIDFrom(r)
		if err != nil {
			return nil, err
		}
		id, err := pathUUID(r, "estimateID")
		if err != nil {
			return nil, err
		}
		return svc.Send(r.Context(), businessID, id)
	}, svc, logg)
}

// EstimateApprove records customer approval.
func EstimateApprove(svc billing.EstimateService, logg *logger.Logger) http.HandlerFunc {
	return estimateTransition(func(svc billing.EstimateService, r *http.Request) (*billing.EstimateDTO, error) {
		businessID, err := businessIDFrom(r)
		if err != nil {
			return nil, err
		}
		id, err := pathUUID(r, "estimateID")
		if err != nil {
			return nil, err
		}
		return svc.Approve(r.Context(), businessID, id)
	}, svc, logg)
}

// EstimateDecline records customer rejection.
func EstimateDecline(svc billing.EstimateService, logg *logger.Logger) http.HandlerFunc {
	return estimateTransition(func(svc billing.EstimateService, r *http.Request) (*billing.EstimateDTO, error) {
		businessID, err := businessIDFrom(r)
		if err != nil {
			return nil, err
		}
		id, err := pathUUID(r, "estimateID")
		if err != nil {
			return nil, err
		}
		return svc.Decline(r.Context(), businessID, id)
	}, svc, logg)
}

// EstimateConvert turns an approved estimate into a draft invoice.
func EstimateConvert(svc billing.EstimateService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID, err := businessIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "estimateID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoice, err := svc.ConvertToInvoice(r.Context(), businessID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, invoice)
	}
}
