package controllers

import (
	"github.com/shopspring/decimal"

	cartsvc "github.com/merodoctor/merodoctor-backend/internal/cart"
	"github.com/merodoctor/merodoctor-backend/internal/pricing"
	"github.com/merodoctor/merodoctor-backend/pkg/db/models"
)

// Amount is a money value plus its rupee display string. Cart and order
// amounts render with paisa ("Rs 850.00"), consultation fees without
// ("Rs 680").
type Amount struct {
	Value   decimal.Decimal `json:"value"`
	Display string          `json:"display"`
}

func amount(value decimal.Decimal) Amount {
	return Amount{Value: value, Display: pricing.FormatAmount(value)}
}

func feeAmount(value decimal.Decimal) Amount {
	return Amount{Value: value, Display: pricing.FormatFee(value)}
}

type medicineDTO struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	UnitPrice Amount `json:"unit_price"`
	Stock     int    `json:"stock"`
	Category  string `json:"category"`
}

func newMedicineDTO(m models.Medicine) medicineDTO {
	return medicineDTO{
		Key:       m.Key,
		Name:      m.Name,
		UnitPrice: amount(m.UnitPrice),
		Stock:     m.Stock,
		Category:  m.Category,
	}
}

type doctorDTO struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Specialty string  `json:"specialty"`
	Rating    float64 `json:"rating"`
	Available bool    `json:"available"`
	Fee       Amount  `json:"fee"`
}

func newDoctorDTO(d models.Doctor) doctorDTO {
	return doctorDTO{
		ID:        d.ID,
		Name:      d.Name,
		Specialty: d.Specialty,
		Rating:    d.Rating,
		Available: d.Available,
		Fee:       feeAmount(d.Fee),
	}
}

type planDTO struct {
	ID                      string `json:"id"`
	Name                    string `json:"name"`
	Price                   Amount `json:"price"`
	DiscountRate            string `json:"discount_rate"`
	DiscountCap             Amount `json:"discount_cap"`
	AppointmentDiscountRate string `json:"appointment_discount_rate,omitempty"`
	AppointmentDiscountCap  Amount `json:"appointment_discount_cap"`
}

func newPlanDTO(p models.SubscriptionPlan) planDTO {
	return planDTO{
		ID:                      string(p.ID),
		Name:                    p.Name,
		Price:                   amount(p.Price),
		DiscountRate:            p.DiscountRate.String(),
		DiscountCap:             amount(p.DiscountCap),
		AppointmentDiscountRate: p.AppointmentDiscountRate.String(),
		AppointmentDiscountCap:  amount(p.AppointmentDiscountCap),
	}
}

type cartLineDTO struct {
	MedicineKey string `json:"medicine_key"`
	Name        string `json:"name"`
	Dosage      string `json:"dosage"`
	Quantity    int    `json:"quantity"`
	UnitTotal   Amount `json:"unit_total"`
	LineTotal   Amount `json:"line_total"`
}

type cartDTO struct {
	Lines     []cartLineDTO `json:"lines"`
	ItemCount int           `json:"item_count"`
	Subtotal  Amount        `json:"subtotal"`
	Discount  Amount        `json:"discount"`
	Total     Amount        `json:"total"`
}

func newCartDTO(c *cartsvc.Cart) cartDTO {
	lines := make([]cartLineDTO, 0, len(c.Lines))
	for _, line := range c.Lines {
		lines = append(lines, cartLineDTO{
			MedicineKey: line.MedicineKey,
			Name:        line.Name,
			Dosage:      line.Dosage.Label,
			Quantity:    line.Quantity,
			UnitTotal:   amount(line.UnitTotal),
			LineTotal:   amount(line.LineTotal),
		})
	}
	return cartDTO{
		Lines:     lines,
		ItemCount: c.ItemCount,
		Subtotal:  amount(c.Totals.Subtotal),
		Discount:  amount(c.Totals.Discount),
		Total:     amount(c.Totals.Total),
	}
}

type feeBreakdownDTO struct {
	BaseFee  Amount `json:"base_fee"`
	Discount Amount `json:"discount"`
	FinalFee Amount `json:"final_fee"`
}

func newFeeBreakdownDTO(fee pricing.FeeBreakdown) feeBreakdownDTO {
	return feeBreakdownDTO{
		BaseFee:  feeAmount(fee.BaseFee),
		Discount: feeAmount(fee.Discount),
		FinalFee: feeAmount(fee.FinalFee),
	}
}
