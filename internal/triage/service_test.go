package triage

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/merodoctor/merodoctor-backend/internal/catalog"
	"github.com/merodoctor/merodoctor-backend/internal/session"
	"github.com/merodoctor/merodoctor-backend/pkg/db/models"
	"github.com/merodoctor/merodoctor-backend/pkg/enums"
	pkgerrors "github.com/merodoctor/merodoctor-backend/pkg/errors"
	"github.com/merodoctor/merodoctor-backend/pkg/logger"
	"github.com/merodoctor/merodoctor-backend/pkg/metrics"
)

func newTestService(t *testing.T) (Service, *session.Manager, *prometheus.Registry) {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "triage-test"})
	mgr, err := session.NewManager(session.NewMemoryStore(), logg)
	if err != nil {
		t.Fatalf("session.NewManager: %v", err)
	}

	registry := prometheus.NewRegistry()
	svc, err := NewService(&stubCatalog{}, mgr, metrics.NewTriageMetrics(registry))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, mgr, registry
}

func analysisCount(t *testing.T, registry *prometheus.Registry, outcome string) float64 {
	t.Helper()
	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, family := range families {
		if family.GetName() != "symptom_analyses_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "outcome" && label.GetValue() == outcome {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestAnalyzeRejectsEmptyInput(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	_, err := svc.Analyze(context.Background(), "sess", []string{" ", ""})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("Analyze(empty) error = %v, want validation error", err)
	}
}

func TestAnalyzeUrgentPath(t *testing.T) {
	t.Parallel()

	svc, mgr, _ := newTestService(t)
	ctx := context.Background()

	result, err := svc.Analyze(ctx, "sess-urgent", []string{"severe chest pain"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !result.Urgent {
		t.Fatal("expected urgent result")
	}
	if len(result.Recommendations) != 0 {
		t.Fatalf("urgent result carries recommendations: %+v", result.Recommendations)
	}
	if len(result.Doctors) != 1 || result.Doctors[0].Name != "Dr. Anil Shrestha" {
		t.Fatalf("doctors = %+v", result.Doctors)
	}

	err = mgr.View(ctx, "sess-urgent", func(state *session.State) error {
		if len(state.History) != 1 {
			t.Fatalf("history = %+v", state.History)
		}
		entry := state.History[0]
		if entry.Kind != enums.HistoryKindAnalysis || entry.Action != "Urgent consultation recommended" {
			t.Fatalf("history entry = %+v", entry)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestAnalyzeRecommendationPath(t *testing.T) {
	t.Parallel()

	svc, mgr, registry := newTestService(t)
	ctx := context.Background()

	result, err := svc.Analyze(ctx, "sess-rec", []string{"Fever", "Headache"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.Urgent {
		t.Fatal("expected non-urgent result")
	}
	if len(result.Recommendations) != 2 {
		t.Fatalf("recommendations = %+v", result.Recommendations)
	}
	if result.Recommendations[0].Medicine.Key != "paracetamol" {
		t.Fatalf("first recommendation = %+v", result.Recommendations[0].Medicine)
	}
	if len(result.Recommendations[0].DosageOptions) != 2 {
		t.Fatalf("dosage options = %+v", result.Recommendations[0].DosageOptions)
	}

	err = mgr.View(ctx, "sess-rec", func(state *session.State) error {
		if len(state.History) != 1 {
			t.Fatalf("history = %+v", state.History)
		}
		entry := state.History[0]
		if entry.Action != "" || len(entry.Medicines) != 2 {
			t.Fatalf("history entry = %+v", entry)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}

	if got := analysisCount(t, registry, "recommended"); got != 1 {
		t.Fatalf("recommended counter = %v, want 1", got)
	}
}

type stubCatalog struct{}

func (c *stubCatalog) GetMedicine(_ context.Context, key string) (*models.Medicine, error) {
	names := map[string]string{
		"paracetamol": "Paracetamol 500mg",
		"ibuprofen":   "Ibuprofen 400mg",
	}
	name, ok := names[key]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "medicine not found")
	}
	return &models.Medicine{Key: key, Name: name, UnitPrice: decimal.NewFromInt(25)}, nil
}

func (c *stubCatalog) ListMedicines(context.Context) ([]models.Medicine, error) {
	return nil, nil
}

func (c *stubCatalog) GetDoctor(context.Context, int) (*models.Doctor, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "doctor not found")
}

func (c *stubCatalog) ListDoctors(context.Context) ([]models.Doctor, error) {
	return c.ListAvailableDoctors(context.Background())
}

func (c *stubCatalog) ListAvailableDoctors(context.Context) ([]models.Doctor, error) {
	return []models.Doctor{
		{ID: 1, Name: "Dr. Anil Shrestha", Specialty: "General Physician", Available: true, Fee: decimal.NewFromInt(500)},
	}, nil
}

func (c *stubCatalog) GetPlan(context.Context, enums.PlanID) (*models.SubscriptionPlan, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "subscription plan not found")
}

func (c *stubCatalog) ListPlans(context.Context) ([]models.SubscriptionPlan, error) {
	return nil, nil
}

var _ catalog.Service = (*stubCatalog)(nil)
