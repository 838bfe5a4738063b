package triage

import (
	"context"
	"fmt"
	"time"

	"github.com/merodoctor/merodoctor-backend/internal/catalog"
	"github.com/merodoctor/merodoctor-backend/internal/history"
	"github.com/merodoctor/merodoctor-backend/internal/session"
	"github.com/merodoctor/merodoctor-backend/pkg/db/models"
	"github.com/merodoctor/merodoctor-backend/pkg/enums"
	pkgerrors "github.com/merodoctor/merodoctor-backend/pkg/errors"
	"github.com/merodoctor/merodoctor-backend/pkg/metrics"
)

const urgentAction = "Urgent consultation recommended"

// Result is the outcome of a symptom analysis. Exactly one of Doctors or
// Recommendations is populated, keyed off Urgent.
type Result struct {
	Urgent          bool             `json:"urgent"`
	Symptoms        []string         `json:"symptoms"`
	Doctors         []models.Doctor  `json:"doctors,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
}

// Recommendation pairs a catalog medicine with the dosage options it can be
// added to the cart with.
type Recommendation struct {
	Medicine      models.Medicine        `json:"medicine"`
	DosageOptions []catalog.DosageOption `json:"dosage_options"`
}

type Service interface {
	Analyze(ctx context.Context, sessionID string, symptoms []string) (*Result, error)
}

type stateUpdater interface {
	Update(ctx context.Context, sessionID string, fn func(*session.State) error) error
}

type service struct {
	catalog  catalog.Service
	sessions stateUpdater
	metrics  *metrics.TriageMetrics
	now      func() time.Time
}

// NewService builds the symptom analysis service. Metrics may be nil.
func NewService(catalogSvc catalog.Service, sessions *session.Manager, triageMetrics *metrics.TriageMetrics) (Service, error) {
	if catalogSvc == nil {
		return nil, fmt.Errorf("triage: catalog service is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("triage: session manager is required")
	}
	return &service{
		catalog:  catalogSvc,
		sessions: sessions,
		metrics:  triageMetrics,
		now:      time.Now,
	}, nil
}

func (s *service) Analyze(ctx context.Context, sessionID string, symptoms []string) (*Result, error) {
	cleaned, symptomText := NormalizeSymptoms(symptoms)
	if len(cleaned) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "enter at least one symptom")
	}

	if IsUrgent(symptomText) {
		return s.analyzeUrgent(ctx, sessionID, cleaned)
	}
	return s.analyzeRecommendations(ctx, sessionID, cleaned, symptomText)
}

func (s *service) analyzeUrgent(ctx context.Context, sessionID string, symptoms []string) (*Result, error) {
	doctors, err := s.catalog.ListAvailableDoctors(ctx)
	if err != nil {
		return nil, err
	}

	err = s.sessions.Update(ctx, sessionID, func(state *session.State) error {
		state.History = state.History.Push(historyEntry(s.now(), symptoms, nil, urgentAction))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncUrgent()
	return &Result{
		Urgent:   true,
		Symptoms: symptoms,
		Doctors:  doctors,
	}, nil
}

func (s *service) analyzeRecommendations(ctx context.Context, sessionID string, symptoms []string, symptomText string) (*Result, error) {
	keys := RecommendKeys(symptomText)

	recommendations := make([]Recommendation, 0, len(keys))
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		medicine, err := s.catalog.GetMedicine(ctx, key)
		if err != nil {
			return nil, err
		}
		recommendations = append(recommendations, Recommendation{
			Medicine:      *medicine,
			DosageOptions: catalog.DosageOptions(),
		})
		names = append(names, medicine.Name)
	}

	err := s.sessions.Update(ctx, sessionID, func(state *session.State) error {
		state.History = state.History.Push(historyEntry(s.now(), symptoms, names, ""))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncRecommended()
	return &Result{
		Urgent:          false,
		Symptoms:        symptoms,
		Recommendations: recommendations,
	}, nil
}

func historyEntry(at time.Time, symptoms, medicines []string, action string) history.Entry {
	return history.Entry{
		Kind:      enums.HistoryKindAnalysis,
		At:        at,
		Symptoms:  symptoms,
		Medicines: medicines,
		Action:    action,
	}
}
