package appointments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/merodoctor/merodoctor-backend/internal/catalog"
	"github.com/merodoctor/merodoctor-backend/internal/history"
	"github.com/merodoctor/merodoctor-backend/internal/pricing"
	"github.com/merodoctor/merodoctor-backend/internal/session"
	"github.com/merodoctor/merodoctor-backend/pkg/db/models"
	"github.com/merodoctor/merodoctor-backend/pkg/enums"
	pkgerrors "github.com/merodoctor/merodoctor-backend/pkg/errors"
)

// Quote is the fee preview for booking a doctor under the session's current
// subscription.
type Quote struct {
	Doctor models.Doctor        `json:"doctor"`
	Fee    pricing.FeeBreakdown `json:"fee"`
}

// Booking is a confirmed appointment.
type Booking struct {
	Doctor models.Doctor        `json:"doctor"`
	Date   string               `json:"date"`
	Time   string               `json:"time"`
	Fee    pricing.FeeBreakdown `json:"fee"`
}

// BookInput carries the appointment slot. Date is required, time may be
// blank when the caller leaves the slot open.
type BookInput struct {
	DoctorID int
	Date     string
	Time     string
}

type Service interface {
	QuoteFee(ctx context.Context, sessionID string, doctorID int) (*Quote, error)
	Book(ctx context.Context, sessionID string, input BookInput) (*Booking, error)
}

type stateAccessor interface {
	Update(ctx context.Context, sessionID string, fn func(*session.State) error) error
	View(ctx context.Context, sessionID string, fn func(*session.State) error) error
}

type service struct {
	catalog  catalog.Service
	sessions stateAccessor
	now      func() time.Time
}

func NewService(catalogSvc catalog.Service, sessions *session.Manager) (Service, error) {
	if catalogSvc == nil {
		return nil, fmt.Errorf("appointments: catalog service is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("appointments: session manager is required")
	}
	return &service{
		catalog:  catalogSvc,
		sessions: sessions,
		now:      time.Now,
	}, nil
}

func (s *service) QuoteFee(ctx context.Context, sessionID string, doctorID int) (*Quote, error) {
	doctor, err := s.bookableDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	var fee pricing.FeeBreakdown
	err = s.sessions.View(ctx, sessionID, func(state *session.State) error {
		breakdown, err := s.feeForState(ctx, state, doctor)
		if err != nil {
			return err
		}
		fee = breakdown
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Quote{Doctor: *doctor, Fee: fee}, nil
}

// Book validates the slot and doctor, prices the consultation under the
// session's subscription and records the booking in the history.
func (s *service) Book(ctx context.Context, sessionID string, input BookInput) (*Booking, error) {
	input.Date = strings.TrimSpace(input.Date)
	input.Time = strings.TrimSpace(input.Time)
	if input.Date == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "please select a date")
	}

	doctor, err := s.bookableDoctor(ctx, input.DoctorID)
	if err != nil {
		return nil, err
	}

	var booking *Booking
	err = s.sessions.Update(ctx, sessionID, func(state *session.State) error {
		fee, err := s.feeForState(ctx, state, doctor)
		if err != nil {
			return err
		}

		booking = &Booking{
			Doctor: *doctor,
			Date:   input.Date,
			Time:   input.Time,
			Fee:    fee,
		}

		baseFee := fee.BaseFee
		discount := fee.Discount
		finalFee := fee.FinalFee
		state.History = state.History.Push(history.Entry{
			Kind:      enums.HistoryKindAppointment,
			At:        s.now().UTC(),
			Action:    fmt.Sprintf("Appointment booked with %s", doctor.Name),
			Specialty: doctor.Specialty,
			Date:      input.Date,
			Time:      input.Time,
			Fee:       &baseFee,
			Discount:  &discount,
			FinalFee:  &finalFee,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *service) bookableDoctor(ctx context.Context, doctorID int) (*models.Doctor, error) {
	doctor, err := s.catalog.GetDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !doctor.Available {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "doctor is not available for booking")
	}
	return doctor, nil
}

func (s *service) feeForState(ctx context.Context, state *session.State, doctor *models.Doctor) (pricing.FeeBreakdown, error) {
	var plan *models.SubscriptionPlan
	if state.Subscription != nil {
		loaded, err := s.catalog.GetPlan(ctx, *state.Subscription)
		if err != nil {
			return pricing.FeeBreakdown{}, err
		}
		plan = loaded
	}
	return pricing.AppointmentFee(doctor.Fee, plan), nil
}
