package controllers

import (
	"net/http"

	"github.com/merodoctor/merodoctor-backend/api/middleware"
	"github.com/merodoctor/merodoctor-backend/api/responses"
	"github.com/merodoctor/merodoctor-backend/api/validators"
	subscriptionsvc "github.com/merodoctor/merodoctor-backend/internal/subscriptions"
	"github.com/merodoctor/merodoctor-backend/pkg/enums"
	pkgerrors "github.com/merodoctor/merodoctor-backend/pkg/errors"
	"github.com/merodoctor/merodoctor-backend/pkg/logger"
)

type subscribeRequest struct {
	Plan string `json:"plan" validate:"required"`
}

func ListPlans(svc subscriptionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plans, err := svc.ListPlans(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]planDTO, 0, len(plans))
		for _, plan := range plans {
			out = append(out, newPlanDTO(plan))
		}
		responses.WriteSuccess(w, out)
	}
}

func SubscriptionFetch(svc subscriptionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		plan, err := svc.Current(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if plan == nil {
			responses.WriteSuccess(w, map[string]any{"subscribed": false})
			return
		}
		responses.WriteSuccess(w, map[string]any{"subscribed": true, "plan": newPlanDTO(*plan)})
	}
}

func Subscribe(svc subscriptionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "subscriptions service unavailable"))
			return
		}

		var payload subscribeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		planID, err := enums.ParsePlanID(payload.Plan)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid subscription plan"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		plan, err := svc.Subscribe(r.Context(), sessionID, planID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"subscribed": true, "plan": newPlanDTO(*plan)})
	}
}
