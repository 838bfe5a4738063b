package orders

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/merodoctor/merodoctor-backend/internal/catalog"
	"github.com/merodoctor/merodoctor-backend/internal/history"
	"github.com/merodoctor/merodoctor-backend/internal/pricing"
	"github.com/merodoctor/merodoctor-backend/internal/session"
	"github.com/merodoctor/merodoctor-backend/pkg/db/models"
	"github.com/merodoctor/merodoctor-backend/pkg/enums"
	pkgerrors "github.com/merodoctor/merodoctor-backend/pkg/errors"
)

// Customer is the delivery contact captured at checkout.
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes,omitempty"`
}

// Item is an order line snapshot. Price is the extended line price, unit
// price times dosage tablets times quantity.
type Item struct {
	Name     string          `json:"name"`
	Dosage   string          `json:"dosage"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Payment summarizes the money side of a placed order. Total includes the
// delivery fee.
type Payment struct {
	Method      enums.PaymentMethod `json:"method"`
	Subtotal    decimal.Decimal     `json:"subtotal"`
	Discount    decimal.Decimal     `json:"discount"`
	DeliveryFee decimal.Decimal     `json:"delivery_fee"`
	Total       decimal.Decimal     `json:"total"`
}

// Order is an immutable snapshot of a completed checkout.
type Order struct {
	OrderID      string        `json:"order_id"`
	Date         time.Time     `json:"date"`
	Items        []Item        `json:"items"`
	Customer     Customer      `json:"customer"`
	Payment      Payment       `json:"payment"`
	Subscription *enums.PlanID `json:"subscription,omitempty"`
}

// Summary is the checkout preview shown before an order is confirmed.
type Summary struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	Discount    decimal.Decimal `json:"discount"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
}

// PlaceOrderInput is everything checkout needs beyond the session itself.
type PlaceOrderInput struct {
	Customer      Customer
	PaymentMethod enums.PaymentMethod
}

type Service interface {
	CheckoutSummary(ctx context.Context, sessionID string) (*Summary, error)
	PlaceOrder(ctx context.Context, sessionID string, input PlaceOrderInput) (*Order, error)
}

type stateAccessor interface {
	Update(ctx context.Context, sessionID string, fn func(*session.State) error) error
	View(ctx context.Context, sessionID string, fn func(*session.State) error) error
}

type service struct {
	catalog  catalog.Service
	sessions stateAccessor
	now      func() time.Time

	mu         sync.Mutex
	lastMillis int64
}

func NewService(catalogSvc catalog.Service, sessions *session.Manager) (Service, error) {
	if catalogSvc == nil {
		return nil, fmt.Errorf("orders: catalog service is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("orders: session manager is required")
	}
	return &service{
		catalog:  catalogSvc,
		sessions: sessions,
		now:      time.Now,
	}, nil
}

func (s *service) CheckoutSummary(ctx context.Context, sessionID string) (*Summary, error) {
	var summary *Summary
	err := s.sessions.View(ctx, sessionID, func(state *session.State) error {
		if len(state.Cart) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "your cart is empty")
		}
		plan, err := s.activePlan(ctx, state)
		if err != nil {
			return err
		}
		totals := pricing.CartTotals(lineInputs(state.Cart), plan)
		summary = &Summary{
			Subtotal:    totals.Subtotal,
			Discount:    totals.Discount,
			DeliveryFee: pricing.DeliveryFee,
			Total:       totals.Total.Add(pricing.DeliveryFee),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// PlaceOrder validates the input, snapshots and prices the cart, records the
// order in the history and clears the cart. All validation happens before
// any state changes; a rejected order leaves the session untouched.
func (s *service) PlaceOrder(ctx context.Context, sessionID string, input PlaceOrderInput) (*Order, error) {
	customer, err := normalizeCustomer(input.Customer)
	if err != nil {
		return nil, err
	}
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method")
	}
	if input.PaymentMethod != enums.PaymentMethodCOD {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			"online payment methods are coming soon, please select cash on delivery")
	}

	var order *Order
	err = s.sessions.Update(ctx, sessionID, func(state *session.State) error {
		if len(state.Cart) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "your cart is empty")
		}
		plan, err := s.activePlan(ctx, state)
		if err != nil {
			return err
		}

		totals := pricing.CartTotals(lineInputs(state.Cart), plan)
		finalTotal := totals.Total.Add(pricing.DeliveryFee)

		order = &Order{
			OrderID:  s.nextOrderID(),
			Date:     s.now().UTC(),
			Items:    orderItems(state.Cart),
			Customer: customer,
			Payment: Payment{
				Method:      input.PaymentMethod,
				Subtotal:    totals.Subtotal,
				Discount:    totals.Discount,
				DeliveryFee: pricing.DeliveryFee,
				Total:       finalTotal,
			},
		}
		if state.Subscription != nil {
			id := *state.Subscription
			order.Subscription = &id
		}

		total := finalTotal
		discount := totals.Discount
		state.History = state.History.Push(history.Entry{
			Kind:     enums.HistoryKindOrder,
			At:       order.Date,
			Action:   "Order Placed",
			OrderID:  order.OrderID,
			Items:    itemLabels(order.Items),
			Total:    &total,
			Discount: &discount,
		})
		state.Cart = []session.CartLine{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *service) activePlan(ctx context.Context, state *session.State) (*models.SubscriptionPlan, error) {
	if state.Subscription == nil {
		return nil, nil
	}
	return s.catalog.GetPlan(ctx, *state.Subscription)
}

// nextOrderID derives ids from wall-clock milliseconds, bumping forward on
// collision so two orders in the same millisecond stay distinct.
func (s *service) nextOrderID() string {
	millis := s.now().UnixMilli()
	s.mu.Lock()
	if millis <= s.lastMillis {
		millis = s.lastMillis + 1
	}
	s.lastMillis = millis
	s.mu.Unlock()
	return fmt.Sprintf("ORD-%d", millis)
}

func normalizeCustomer(customer Customer) (Customer, error) {
	customer.Name = strings.TrimSpace(customer.Name)
	customer.Phone = strings.TrimSpace(customer.Phone)
	customer.Address = strings.TrimSpace(customer.Address)
	customer.Notes = strings.TrimSpace(customer.Notes)

	switch {
	case customer.Name == "":
		return customer, pkgerrors.New(pkgerrors.CodeValidation, "missing customer name")
	case customer.Phone == "":
		return customer, pkgerrors.New(pkgerrors.CodeValidation, "missing customer phone")
	case customer.Address == "":
		return customer, pkgerrors.New(pkgerrors.CodeValidation, "missing delivery address")
	}
	return customer, nil
}

func lineInputs(lines []session.CartLine) []pricing.LineInput {
	inputs := make([]pricing.LineInput, 0, len(lines))
	for _, line := range lines {
		inputs = append(inputs, pricing.LineInput{
			UnitPrice:      line.UnitPrice,
			DosageQuantity: line.Dosage.Quantity,
			Quantity:       line.Quantity,
		})
	}
	return inputs
}

func orderItems(lines []session.CartLine) []Item {
	items := make([]Item, 0, len(lines))
	for _, line := range lines {
		extended := line.UnitPrice.
			Mul(decimal.NewFromInt(int64(line.Dosage.Quantity))).
			Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, Item{
			Name:     line.Name,
			Dosage:   line.Dosage.Label,
			Quantity: line.Quantity,
			Price:    extended,
		})
	}
	return items
}

func itemLabels(items []Item) []string {
	labels := make([]string, 0, len(items))
	for _, item := range items {
		labels = append(labels, fmt.Sprintf("%s (%s) × %d", item.Name, item.Dosage, item.Quantity))
	}
	return labels
}
