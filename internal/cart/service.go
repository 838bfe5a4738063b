package cart

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/merodoctor/merodoctor-backend/internal/catalog"
	"github.com/merodoctor/merodoctor-backend/internal/pricing"
	"github.com/merodoctor/merodoctor-backend/internal/session"
	"github.com/merodoctor/merodoctor-backend/pkg/db/models"
	"github.com/merodoctor/merodoctor-backend/pkg/enums"
	pkgerrors "github.com/merodoctor/merodoctor-backend/pkg/errors"
)

// Cart is the priced view of a session's cart. ItemCount is the total
// quantity across lines, what a badge would show.
type Cart struct {
	Lines     []Line         `json:"lines"`
	Totals    pricing.Totals `json:"totals"`
	ItemCount int            `json:"item_count"`
}

// Line is one cart entry with its extended price. UnitTotal is the price of
// a single purchase of the line's dosage, LineTotal multiplies in quantity.
type Line struct {
	MedicineKey string               `json:"medicine_key"`
	Name        string               `json:"name"`
	UnitPrice   decimal.Decimal      `json:"unit_price"`
	Dosage      catalog.DosageOption `json:"dosage"`
	Quantity    int                  `json:"quantity"`
	UnitTotal   decimal.Decimal      `json:"unit_total"`
	LineTotal   decimal.Decimal      `json:"line_total"`
}

type Service interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	AddItem(ctx context.Context, sessionID, medicineKey, dosageLabel string) (*Cart, error)
	UpdateQuantity(ctx context.Context, sessionID, medicineKey, dosageLabel string, delta int) (*Cart, error)
}

type stateAccessor interface {
	Update(ctx context.Context, sessionID string, fn func(*session.State) error) error
	View(ctx context.Context, sessionID string, fn func(*session.State) error) error
}

type service struct {
	catalog  catalog.Service
	sessions stateAccessor
}

func NewService(catalogSvc catalog.Service, sessions *session.Manager) (Service, error) {
	if catalogSvc == nil {
		return nil, fmt.Errorf("cart: catalog service is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("cart: session manager is required")
	}
	return &service{catalog: catalogSvc, sessions: sessions}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	var snapshot []session.CartLine
	var planID *enums.PlanID
	err := s.sessions.View(ctx, sessionID, func(state *session.State) error {
		snapshot = cloneLines(state.Cart)
		planID = activePlanID(state)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.price(ctx, snapshot, planID)
}

func (s *service) AddItem(ctx context.Context, sessionID, medicineKey, dosageLabel string) (*Cart, error) {
	medicine, err := s.catalog.GetMedicine(ctx, medicineKey)
	if err != nil {
		return nil, err
	}
	dosage, ok := catalog.FindDosageOption(dosageLabel)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown dosage option")
	}

	var snapshot []session.CartLine
	var planID *enums.PlanID
	err = s.sessions.Update(ctx, sessionID, func(state *session.State) error {
		idx := findLine(state.Cart, medicine.Key, dosage.Label)
		if idx >= 0 {
			state.Cart[idx].Quantity++
		} else {
			state.Cart = append(state.Cart, session.CartLine{
				MedicineKey: medicine.Key,
				Name:        medicine.Name,
				UnitPrice:   medicine.UnitPrice,
				Dosage:      dosage,
				Quantity:    1,
			})
		}
		snapshot = cloneLines(state.Cart)
		planID = activePlanID(state)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.price(ctx, snapshot, planID)
}

func (s *service) UpdateQuantity(ctx context.Context, sessionID, medicineKey, dosageLabel string, delta int) (*Cart, error) {
	if delta == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity change must be non-zero")
	}

	var snapshot []session.CartLine
	var planID *enums.PlanID
	err := s.sessions.Update(ctx, sessionID, func(state *session.State) error {
		idx := findLine(state.Cart, medicineKey, dosageLabel)
		if idx < 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart")
		}
		state.Cart[idx].Quantity += delta
		if state.Cart[idx].Quantity <= 0 {
			state.Cart = append(state.Cart[:idx], state.Cart[idx+1:]...)
		}
		snapshot = cloneLines(state.Cart)
		planID = activePlanID(state)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.price(ctx, snapshot, planID)
}

// price turns a cart snapshot into its priced view, applying the session's
// subscription discount when one is active.
func (s *service) price(ctx context.Context, lines []session.CartLine, planID *enums.PlanID) (*Cart, error) {
	plan, err := s.loadPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	out := &Cart{Lines: make([]Line, 0, len(lines))}
	inputs := make([]pricing.LineInput, 0, len(lines))
	for _, line := range lines {
		unitTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Dosage.Quantity)))
		out.Lines = append(out.Lines, Line{
			MedicineKey: line.MedicineKey,
			Name:        line.Name,
			UnitPrice:   line.UnitPrice,
			Dosage:      line.Dosage,
			Quantity:    line.Quantity,
			UnitTotal:   unitTotal,
			LineTotal:   unitTotal.Mul(decimal.NewFromInt(int64(line.Quantity))),
		})
		inputs = append(inputs, pricing.LineInput{
			UnitPrice:      line.UnitPrice,
			DosageQuantity: line.Dosage.Quantity,
			Quantity:       line.Quantity,
		})
		out.ItemCount += line.Quantity
	}
	out.Totals = pricing.CartTotals(inputs, plan)
	return out, nil
}

func (s *service) loadPlan(ctx context.Context, planID *enums.PlanID) (*models.SubscriptionPlan, error) {
	if planID == nil {
		return nil, nil
	}
	plan, err := s.catalog.GetPlan(ctx, *planID)
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func findLine(lines []session.CartLine, medicineKey, dosageLabel string) int {
	for i, line := range lines {
		if line.MedicineKey == medicineKey && line.Dosage.Label == dosageLabel {
			return i
		}
	}
	return -1
}

func cloneLines(lines []session.CartLine) []session.CartLine {
	out := make([]session.CartLine, len(lines))
	copy(out, lines)
	return out
}

func activePlanID(state *session.State) *enums.PlanID {
	if state.Subscription == nil {
		return nil
	}
	id := *state.Subscription
	return &id
}
