package controllers

import (
	"net/http"

	"github.com/merodoctor/merodoctor-backend/api/middleware"
	"github.com/merodoctor/merodoctor-backend/api/responses"
	"github.com/merodoctor/merodoctor-backend/api/validators"
	cartsvc "github.com/merodoctor/merodoctor-backend/internal/cart"
	pkgerrors "github.com/merodoctor/merodoctor-backend/pkg/errors"
	"github.com/merodoctor/merodoctor-backend/pkg/logger"
)

type addCartItemRequest struct {
	MedicineKey string `json:"medicine_key" validate:"required"`
	Dosage      string `json:"dosage" validate:"required"`
}

type updateCartItemRequest struct {
	MedicineKey string `json:"medicine_key" validate:"required"`
	Dosage      string `json:"dosage" validate:"required"`
	Delta       int    `json:"delta" validate:"required"`
}

func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		record, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartDTO(record))
	}
}

// CartAddItem adds one purchase of a medicine at the chosen dosage,
// incrementing the existing line when the pair is already in the cart.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		record, err := svc.AddItem(r.Context(), sessionID, payload.MedicineKey, payload.Dosage)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartDTO(record))
	}
}

// CartUpdateItem applies a signed quantity delta; a line dropping to zero or
// below is removed.
func CartUpdateItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		record, err := svc.UpdateQuantity(r.Context(), sessionID, payload.MedicineKey, payload.Dosage, payload.Delta)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartDTO(record))
	}
}
