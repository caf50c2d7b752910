package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/serviteca/serviteca-backend/api/responses"
	"github.com/serviteca/serviteca-backend/api/validators"
	inventorysvc "github.com/serviteca/serviteca-backend/internal/inventory"
	pkgerrors "github.com/serviteca/serviteca-backend/pkg/errors"
	"github.com/serviteca/serviteca-backend/pkg/logger"
)

type adjustInventoryRequest struct {
	Delta            int `json:"delta"`
	MinimumThreshold int `json:"minimum_threshold" validate:"min=0"`
}

// AdjustInventory applies a relative stock movement to one tire.
func AdjustInventory(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		tireID, err := uuid.Parse(chi.URLParam(r, "tireId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tire id"))
			return
		}

		ctx := logg.WithTireID(r.Context(), tireID.String())

		var payload adjustInventoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		record, err := svc.Adjust(ctx, inventorysvc.AdjustInput{
			TireID:           tireID,
			Delta:            payload.Delta,
			MinimumThreshold: payload.MinimumThreshold,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// ListInventory returns the stock report with low-stock annotations.
func ListInventory(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}
