package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/merodoctor/merodoctor-backend/internal/catalog"
	"github.com/merodoctor/merodoctor-backend/internal/session"
	"github.com/merodoctor/merodoctor-backend/pkg/db/models"
	"github.com/merodoctor/merodoctor-backend/pkg/enums"
	pkgerrors "github.com/merodoctor/merodoctor-backend/pkg/errors"
	"github.com/merodoctor/merodoctor-backend/pkg/logger"
)

func newTestCart(t *testing.T) (Service, *session.Manager) {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "cart-test"})
	mgr, err := session.NewManager(session.NewMemoryStore(), logg)
	if err != nil {
		t.Fatalf("session.NewManager: %v", err)
	}
	svc, err := NewService(&stubCatalog{}, mgr)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, mgr
}

func TestAddItemDeduplicatesOnKeyAndDosage(t *testing.T) {
	t.Parallel()

	svc, _ := newTestCart(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "sess", "paracetamol", "1 tablet"); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := svc.AddItem(ctx, "sess", "paracetamol", "1 tablet"); err != nil {
		t.Fatalf("AddItem again: %v", err)
	}
	got, err := svc.AddItem(ctx, "sess", "paracetamol", "2 tablets")
	if err != nil {
		t.Fatalf("AddItem other dosage: %v", err)
	}

	if len(got.Lines) != 2 {
		t.Fatalf("lines = %+v", got.Lines)
	}
	if got.Lines[0].Quantity != 2 || got.Lines[1].Quantity != 1 {
		t.Fatalf("quantities = %d, %d", got.Lines[0].Quantity, got.Lines[1].Quantity)
	}
	if got.ItemCount != 3 {
		t.Fatalf("item count = %d, want 3", got.ItemCount)
	}
	// 25 * 1 * 2 + 25 * 2 * 1
	if !got.Totals.Subtotal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("subtotal = %s, want 100", got.Totals.Subtotal)
	}
}

func TestAddItemUnknownMedicine(t *testing.T) {
	t.Parallel()

	svc, _ := newTestCart(t)
	_, err := svc.AddItem(context.Background(), "sess", "nope", "1 tablet")
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestAddItemUnknownDosage(t *testing.T) {
	t.Parallel()

	svc, _ := newTestCart(t)
	_, err := svc.AddItem(context.Background(), "sess", "paracetamol", "3 tablets")
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("error = %v, want validation error", err)
	}
}

func TestUpdateQuantityRemovesAtZero(t *testing.T) {
	t.Parallel()

	svc, _ := newTestCart(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "sess", "paracetamol", "1 tablet"); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	got, err := svc.UpdateQuantity(ctx, "sess", "paracetamol", "1 tablet", -1)
	if err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if len(got.Lines) != 0 || got.ItemCount != 0 {
		t.Fatalf("cart after removal = %+v", got)
	}
	if !got.Totals.Total.Equal(decimal.Zero) {
		t.Fatalf("total = %s, want 0", got.Totals.Total)
	}
}

func TestUpdateQuantityMissingLine(t *testing.T) {
	t.Parallel()

	svc, _ := newTestCart(t)
	_, err := svc.UpdateQuantity(context.Background(), "sess", "paracetamol", "1 tablet", 1)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestGetAppliesSubscriptionDiscount(t *testing.T) {
	t.Parallel()

	svc, mgr := newTestCart(t)
	ctx := context.Background()

	err := mgr.Update(ctx, "sess", func(state *session.State) error {
		plan := enums.PlanPremium
		state.Subscription = &plan
		return nil
	})
	if err != nil {
		t.Fatalf("seed subscription: %v", err)
	}

	// 40 units of the 25-rupee single tablet puts the subtotal at 1000.
	if _, err := svc.AddItem(ctx, "sess", "paracetamol", "1 tablet"); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	got, err := svc.UpdateQuantity(ctx, "sess", "paracetamol", "1 tablet", 39)
	if err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}

	if !got.Totals.Subtotal.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("subtotal = %s, want 1000", got.Totals.Subtotal)
	}
	if !got.Totals.Discount.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("discount = %s, want 150", got.Totals.Discount)
	}
	if !got.Totals.Total.Equal(decimal.NewFromInt(850)) {
		t.Fatalf("total = %s, want 850", got.Totals.Total)
	}
}

type stubCatalog struct{}

func (c *stubCatalog) GetMedicine(_ context.Context, key string) (*models.Medicine, error) {
	if key != "paracetamol" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "medicine not found")
	}
	return &models.Medicine{Key: key, Name: "Paracetamol 500mg", UnitPrice: decimal.NewFromInt(25)}, nil
}

func (c *stubCatalog) ListMedicines(context.Context) ([]models.Medicine, error) {
	return nil, nil
}

func (c *stubCatalog) GetDoctor(context.Context, int) (*models.Doctor, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "doctor not found")
}

func (c *stubCatalog) ListDoctors(context.Context) ([]models.Doctor, error) {
	return nil, nil
}

func (c *stubCatalog) ListAvailableDoctors(context.Context) ([]models.Doctor, error) {
	return nil, nil
}

func (c *stubCatalog) GetPlan(_ context.Context, id enums.PlanID) (*models.SubscriptionPlan, error) {
	if id != enums.PlanPremium {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "subscription plan not found")
	}
	return &models.SubscriptionPlan{
		ID:           enums.PlanPremium,
		Name:         "Premium Plan",
		Price:        decimal.NewFromInt(1000),
		DiscountRate: decimal.NewFromFloat(0.15),
		DiscountCap:  decimal.NewFromInt(200),
	}, nil
}

func (c *stubCatalog) ListPlans(context.Context) ([]models.SubscriptionPlan, error) {
	return nil, nil
}

var _ catalog.Service = (*stubCatalog)(nil)
