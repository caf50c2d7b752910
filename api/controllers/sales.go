package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/serviteca/serviteca-backend/api/responses"
	"github.com/serviteca/serviteca-backend/api/validators"
	salesvc "github.com/serviteca/serviteca-backend/internal/sales"
	pkgerrors "github.com/serviteca/serviteca-backend/pkg/errors"
	"github.com/serviteca/serviteca-backend/pkg/logger"
)

type saleItemRequest struct {
	TireID   uuid.UUID `json:"tire_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"required,min=1"`
}

type createSaleRequest struct {
	CustomerID uuid.UUID         `json:"customer_id" validate:"required"`
	AdvisorID  uuid.UUID         `json:"advisor_id" validate:"required"`
	Items      []saleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateSale records a sale with all of its stock movements.
func CreateSale(svc salesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sale service unavailable"))
			return
		}

		var payload createSaleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]salesvc.SaleItemInput, 0, len(payload.Items))
		for _, item := range payload.Items {
			items = append(items, salesvc.SaleItemInput{
				TireID:   item.TireID,
				Quantity: item.Quantity,
			})
		}

		sale, err := svc.Create(r.Context(), salesvc.CreateSaleInput{
			CustomerID: payload.CustomerID,
			AdvisorID:  payload.AdvisorID,
			Items:      items,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, sale)
	}
}

func ListSales(svc salesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sale service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.List(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}

func GetSale(svc salesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sale service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "saleId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sale id"))
			return
		}

		ctx := logg.WithSaleID(r.Context(), id.String())
		sale, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, sale)
	}
}

// ListSaleLineItems returns the drill-down rows for one sale.
func ListSaleLineItems(svc salesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sale service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "saleId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sale id"))
			return
		}

		ctx := logg.WithSaleID(r.Context(), id.String())
		rows, err := svc.LineItems(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}
