package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/get-hunter/hero365-app-sub002/api/responses"
	"github.com/get-hunter/hero365-app-sub002/api/validators"
	"github.com/get-hunter/hero365-app-sub002/internal/templates"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
	pkgerrors "github.com/get-hunter/hero365-app-sub002/pkg/errors"
	"github.com/get-hunter/hero365-app-sub002/pkg/logger"
	"github.com/get-hunter/hero365-app-sub002/pkg/types"
)

func templateTypeFromQuery(r *http.Request) (enums.TemplateType, error) {
	raw := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("type")))
	t := enums.TemplateType(raw)
	if !t.IsValid() {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "type must be estimate or invoice")
	}
	return t, nil
}

// TemplateList returns the templates visible to the active business for a type.
func TemplateList(svc templates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID, err := businessIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		templateType, err := templateTypeFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), businessID, templateType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// TemplateResolveDefault returns the template billing will use for a document type.
func TemplateResolveDefault(svc templates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID, err := businessIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		templateType, err := templateTypeFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resolved, err := svc.ResolveDefault(r.Context(), businessID, templateType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resolved)
	}
}

type createTemplateRequest struct {
	TemplateType enums.TemplateType `json:"template_type" validate:"required"`
	Name         string             `json:"name" validate:"required,min=1"`
	Description  *string            `json:"description,omitempty"`
	Branding     types.JSONMap      `json:"branding,omitempty"`
}

// TemplateCreate stores a business-owned template.
func TemplateCreate(svc templates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID, err := businessIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createTemplateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !payload.TemplateType.IsValid() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "template_type must be estimate or invoice"))
			return
		}

		created, err := svc.Create(r.Context(), templates.CreateTemplateDTO{
			BusinessID:   businessID,
			TemplateType: payload.TemplateType,
			Name:         payload.Name,
			Description:  payload.Description,
			Branding:     payload.Branding,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

type templateSelectionRequest struct {
	TemplateID   uuid.UUID          `json:"template_id" validate:"required"`
	TemplateType enums.TemplateType `json:"template_type" validate:"required"`
}

// TemplateSetDefault marks a template as the business default for its type.
func TemplateSetDefault(svc templates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID, err := businessIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload templateSelectionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !payload.TemplateType.IsValid() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "template_type must be estimate or invoice"))
			return
		}

		if err := svc.SetBusinessDefault(r.Context(), businessID, payload.TemplateID, payload.TemplateType); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "default_set"})
	}
}

// TemplateSetPreference pins an explicit per-business template preference.
func TemplateSetPreference(svc templates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID, err := businessIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload templateSelectionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !payload.TemplateType.IsValid() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "template_type must be estimate or invoice"))
			return
		}

		if err := svc.SetPreference(r.Context(), businessID, payload.TemplateID, payload.TemplateType); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "preference_set"})
	}
}

// TemplateClearPreference removes a pinned preference so resolution falls back.
func TemplateClearPreference(svc templates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID, err := businessIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		templateType, err := templateTypeFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.ClearPreference(r.Context(), businessID, templateType); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "preference_cleared"})
	}
}
