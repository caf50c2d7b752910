package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/serviteca/serviteca-backend/api/responses"
	"github.com/serviteca/serviteca-backend/api/validators"
	tiresvc "github.com/serviteca/serviteca-backend/internal/tires"
	pkgerrors "github.com/serviteca/serviteca-backend/pkg/errors"
	"github.com/serviteca/serviteca-backend/pkg/logger"
)

type registerTireRequest struct {
	SKU       string          `json:"sku" validate:"required"`
	Brand     string          `json:"brand" validate:"required"`
	Model     string          `json:"model" validate:"required"`
	Size      string          `json:"size" validate:"required"`
	SalePrice decimal.Decimal `json:"sale_price"`
}

// RegisterTire handles catalog registration. Every new tire starts with an
// empty inventory record.
func RegisterTire(svc tiresvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tire service unavailable"))
			return
		}

		var payload registerTireRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tire, err := svc.Register(r.Context(), tiresvc.RegisterInput{
			SKU:       validators.SanitizeString(payload.SKU, 64),
			Brand:     validators.SanitizeString(payload.Brand, 80),
			Model:     validators.SanitizeString(payload.Model, 80),
			Size:      validators.SanitizeString(payload.Size, 40),
			SalePrice: payload.SalePrice,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, tire)
	}
}

func ListTires(svc tiresvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tire service unavailable"))
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

func GetTire(svc tiresvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tire service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "tireId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tire id"))
			return
		}

		ctx := logg.WithTireID(r.Context(), id.String())
		tire, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, tire)
	}
}
