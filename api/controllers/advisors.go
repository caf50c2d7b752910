package controllers

import (
	"net/http"

	"github.com/serviteca/serviteca-backend/api/responses"
	"github.com/serviteca/serviteca-backend/api/validators"
	advisorsvc "github.com/serviteca/serviteca-backend/internal/advisors"
	pkgerrors "github.com/serviteca/serviteca-backend/pkg/errors"
	"github.com/serviteca/serviteca-backend/pkg/logger"
)

type createAdvisorRequest struct {
	Name       string  `json:"name" validate:"required"`
	DocumentID string  `json:"document_id" validate:"required"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
}

func CreateAdvisor(svc advisorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "advisor service unavailable"))
			return
		}

		var payload createAdvisorRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		advisor, err := svc.Create(r.Context(), advisorsvc.CreateInput{
			Name:       validators.SanitizeString(payload.Name, 120),
			DocumentID: validators.SanitizeString(payload.DocumentID, 32),
			Email:      payload.Email,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, advisor)
	}
}

func ListAdvisors(svc advisorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "advisor service unavailable"))
			return
		}

		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}
