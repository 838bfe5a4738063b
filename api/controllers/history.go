package controllers

import (
	"net/http"

	"github.com/merodoctor/merodoctor-backend/api/middleware"
	"github.com/merodoctor/merodoctor-backend/api/responses"
	"github.com/merodoctor/merodoctor-backend/internal/history"
	"github.com/merodoctor/merodoctor-backend/internal/session"
	pkgerrors "github.com/merodoctor/merodoctor-backend/pkg/errors"
	"github.com/merodoctor/merodoctor-backend/pkg/logger"
)

// History returns the session's activity log, newest first.
func History(sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())

		var entries history.Log
		err := sessions.View(r.Context(), sessionID, func(state *session.State) error {
			entries = make(history.Log, len(state.History))
			copy(entries, state.History)
			return nil
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, entries)
	}
}
