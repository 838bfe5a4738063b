package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/merodoctor/merodoctor-backend/api/middleware"
	"github.com/merodoctor/merodoctor-backend/api/responses"
	"github.com/merodoctor/merodoctor-backend/api/validators"
	appointmentsvc "github.com/merodoctor/merodoctor-backend/internal/appointments"
	pkgerrors "github.com/merodoctor/merodoctor-backend/pkg/errors"
	"github.com/merodoctor/merodoctor-backend/pkg/logger"
)

type bookAppointmentRequest struct {
	DoctorID int    `json:"doctor_id" validate:"required,min=1"`
	Date     string `json:"date" validate:"required"`
	Time     string `json:"time"`
}

type quoteDTO struct {
	Doctor doctorDTO       `json:"doctor"`
	Fee    feeBreakdownDTO `json:"fee"`
}

type bookingDTO struct {
	Doctor doctorDTO       `json:"doctor"`
	Date   string          `json:"date"`
	Time   string          `json:"time,omitempty"`
	Fee    feeBreakdownDTO `json:"fee"`
}

// AppointmentQuote previews the consultation fee for a doctor under the
// session's subscription, the figures the booking form shows.
func AppointmentQuote(svc appointmentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctorID, err := strconv.Atoi(chi.URLParam(r, "doctorId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid doctor id"))
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithDoctorID(ctx, doctorID)
		}

		sessionID := middleware.SessionIDFromContext(ctx)
		quote, err := svc.QuoteFee(ctx, sessionID, doctorID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, quoteDTO{
			Doctor: newDoctorDTO(quote.Doctor),
			Fee:    newFeeBreakdownDTO(quote.Fee),
		})
	}
}

func BookAppointment(svc appointmentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload bookAppointmentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithDoctorID(ctx, payload.DoctorID)
		}

		sessionID := middleware.SessionIDFromContext(ctx)
		booking, err := svc.Book(ctx, sessionID, appointmentsvc.BookInput{
			DoctorID: payload.DoctorID,
			Date:     payload.Date,
			Time:     payload.Time,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, bookingDTO{
			Doctor: newDoctorDTO(booking.Doctor),
			Date:   booking.Date,
			Time:   booking.Time,
			Fee:    newFeeBreakdownDTO(booking.Fee),
		})
	}
}
