package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/merodoctor/merodoctor-backend/pkg/db/models"
)

// DeliveryFee is added at the checkout summary and final order stage only;
// it is not part of cart totals.
var DeliveryFee = decimal.NewFromInt(50)

// LineInput carries the pricing-relevant fields of one cart line.
type LineInput struct {
	UnitPrice      decimal.Decimal
	DosageQuantity int
	Quantity       int
}

// Totals is the cart-level payment breakdown, full precision.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// FeeBreakdown is the consultation fee breakdown, full precision.
type FeeBreakdown struct {
	BaseFee  decimal.Decimal `json:"base_fee"`
	Discount decimal.Decimal `json:"discount"`
	FinalFee decimal.Decimal `json:"final_fee"`
}

// CartTotals sums unit price × dosage multiplier × quantity across lines and
// applies the plan discount clamped to the plan cap. A nil plan means no
// discount. The total can never go negative: the rate is a fraction of the
// subtotal and the cap only lowers the discount further.
func CartTotals(lines []LineInput, plan *models.SubscriptionPlan) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		lineTotal := line.UnitPrice.
			Mul(decimal.NewFromInt(int64(line.DosageQuantity))).
			Mul(decimal.NewFromInt(int64(line.Quantity)))
		subtotal = subtotal.Add(lineTotal)
	}

	discount := decimal.Zero
	if plan != nil {
		discount = clamp(subtotal.Mul(plan.DiscountRate), plan.DiscountCap)
	}

	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal.Sub(discount),
	}
}

// AppointmentFee applies the plan's appointment discount to the consultation
// fee. Plans without an appointment discount rate leave the fee untouched.
func AppointmentFee(baseFee decimal.Decimal, plan *models.SubscriptionPlan) FeeBreakdown {
	discount := decimal.Zero
	if plan != nil && plan.GrantsAppointmentDiscount() {
		discount = clamp(baseFee.Mul(plan.AppointmentDiscountRate), plan.AppointmentDiscountCap)
	}

	return FeeBreakdown{
		BaseFee:  baseFee,
		Discount: discount,
		FinalFee: baseFee.Sub(discount),
	}
}

func clamp(amount, cap decimal.Decimal) decimal.Decimal {
	if amount.GreaterThan(cap) {
		return cap
	}
	return amount
}
