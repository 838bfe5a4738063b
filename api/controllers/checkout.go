package controllers

import (
	"net/http"
	"time"

	"github.com/merodoctor/merodoctor-backend/api/middleware"
	"github.com/merodoctor/merodoctor-backend/api/responses"
	"github.com/merodoctor/merodoctor-backend/api/validators"
	"github.com/merodoctor/merodoctor-backend/internal/orders"
	"github.com/merodoctor/merodoctor-backend/pkg/enums"
	pkgerrors "github.com/merodoctor/merodoctor-backend/pkg/errors"
	"github.com/merodoctor/merodoctor-backend/pkg/logger"
)

type placeOrderRequest struct {
	Name          string `json:"name" validate:"required,max=120"`
	Phone         string `json:"phone" validate:"required,max=32"`
	Address       string `json:"address" validate:"required,max=500"`
	Notes         string `json:"notes" validate:"max=1000"`
	PaymentMethod string `json:"payment_method" validate:"required"`
}

type checkoutSummaryDTO struct {
	Subtotal    Amount `json:"subtotal"`
	Discount    Amount `json:"discount"`
	DeliveryFee Amount `json:"delivery_fee"`
	Total       Amount `json:"total"`
}

type orderItemDTO struct {
	Name     string `json:"name"`
	Dosage   string `json:"dosage"`
	Quantity int    `json:"quantity"`
	Price    Amount `json:"price"`
}

type orderDTO struct {
	OrderID      string             `json:"order_id"`
	Date         time.Time          `json:"date"`
	Items        []orderItemDTO     `json:"items"`
	Payment      orderPaymentDTO    `json:"payment"`
	Subscription string             `json:"subscription,omitempty"`
	Summary      checkoutSummaryDTO `json:"summary"`
}

type orderPaymentDTO struct {
	Method string `json:"method"`
}

func CheckoutSummary(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		summary, err := svc.CheckoutSummary(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCheckoutSummaryDTO(summary))
	}
}

// Checkout places a cash-on-delivery order from the session's cart.
func Checkout(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var payload placeOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(payload.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown payment method"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		order, err := svc.PlaceOrder(r.Context(), sessionID, orders.PlaceOrderInput{
			Customer: orders.Customer{
				Name:    payload.Name,
				Phone:   payload.Phone,
				Address: payload.Address,
				Notes:   payload.Notes,
			},
			PaymentMethod: method,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newOrderDTO(order))
	}
}

func newCheckoutSummaryDTO(summary *orders.Summary) checkoutSummaryDTO {
	return checkoutSummaryDTO{
		Subtotal:    amount(summary.Subtotal),
		Discount:    amount(summary.Discount),
		DeliveryFee: amount(summary.DeliveryFee),
		Total:       amount(summary.Total),
	}
}

func newOrderDTO(order *orders.Order) orderDTO {
	items := make([]orderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemDTO{
			Name:     item.Name,
			Dosage:   item.Dosage,
			Quantity: item.Quantity,
			Price:    amount(item.Price),
		})
	}

	out := orderDTO{
		OrderID: order.OrderID,
		Date:    order.Date,
		Items:   items,
		Payment: orderPaymentDTO{Method: string(order.Payment.Method)},
		Summary: checkoutSummaryDTO{
			Subtotal:    amount(order.Payment.Subtotal),
			Discount:    amount(order.Payment.Discount),
			DeliveryFee: amount(order.Payment.DeliveryFee),
			Total:       amount(order.Payment.Total),
		},
	}
	if order.Subscription != nil {
		out.Subscription = string(*order.Subscription)
	}
	return out
}
