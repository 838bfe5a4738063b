package session

import (
	"github.com/shopspring/decimal"

	"github.com/merodoctor/merodoctor-backend/internal/catalog"
	"github.com/merodoctor/merodoctor-backend/internal/history"
	"github.com/merodoctor/merodoctor-backend/pkg/enums"
)

// State is the per-session mutable state: the cart, the active subscription
// and the bounded history. It is the unit of persistence; everything else in
// the system is reference data.
type State struct {
	Cart         []CartLine    `json:"cart"`
	Subscription *enums.PlanID `json:"subscription,omitempty"`
	History      history.Log   `json:"history"`
}

// CartLine is one cart entry. Identity for deduplication is the pair
// (medicine key, dosage label); quantity stays positive while the line exists.
type CartLine struct {
	MedicineKey string               `json:"medicine_key"`
	Name        string               `json:"name"`
	UnitPrice   decimal.Decimal      `json:"unit_price"`
	Dosage      catalog.DosageOption `json:"dosage"`
	Quantity    int                  `json:"quantity"`
}

// NewState returns an empty session state.
func NewState() *State {
	return &State{
		Cart:    []CartLine{},
		History: history.Log{},
	}
}
