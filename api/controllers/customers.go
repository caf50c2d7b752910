package controllers

import (
	"net/http"

	"github.com/serviteca/serviteca-backend/api/responses"
	"github.com/serviteca/serviteca-backend/api/validators"
	customersvc "github.com/serviteca/serviteca-backend/internal/customers"
	pkgerrors "github.com/serviteca/serviteca-backend/pkg/errors"
	"github.com/serviteca/serviteca-backend/pkg/logger"
)

type createCustomerRequest struct {
	Name       string  `json:"name" validate:"required"`
	DocumentID string  `json:"document_id" validate:"required"`
	Phone      *string `json:"phone,omitempty"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
}

func CreateCustomer(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		var payload createCustomerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Create(r.Context(), customersvc.CreateInput{
			Name:       validators.SanitizeString(payload.Name, 120),
			DocumentID: validators.SanitizeString(payload.DocumentID, 32),
			Phone:      payload.Phone,
			Email:      payload.Email,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, customer)
	}
}

func ListCustomers(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
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
