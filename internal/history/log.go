package history

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/merodoctor/merodoctor-backend/pkg/enums"
)

// MaxEntries bounds the session history; older entries are evicted silently.
const MaxEntries = 20

// Entry is one record in the session history. Fields are populated per kind:
// analysis entries carry symptoms and optionally medicines, order entries the
// order summary, appointment entries the fee breakdown.
type Entry struct {
	Kind enums.HistoryKind `json:"kind"`
	At   time.Time         `json:"at"`

	Symptoms  []string `json:"symptoms,omitempty"`
	Medicines []string `json:"medicines,omitempty"`
	Action    string   `json:"action,omitempty"`

	OrderID  string           `json:"order_id,omitempty"`
	Items    []string         `json:"items,omitempty"`
	Total    *decimal.Decimal `json:"total,omitempty"`
	Discount *decimal.Decimal `json:"discount,omitempty"`

	Specialty string           `json:"specialty,omitempty"`
	Date      string           `json:"date,omitempty"`
	Time      string           `json:"time,omitempty"`
	Fee       *decimal.Decimal `json:"fee,omitempty"`
	FinalFee  *decimal.Decimal `json:"final_fee,omitempty"`
}

// Log is a bounded, newest-first record of user-facing actions.
type Log []Entry

// Push inserts the entry at the head and evicts past MaxEntries.
func (l Log) Push(entry Entry) Log {
	next := make(Log, 0, len(l)+1)
	next = append(next, entry)
	next = append(next, l...)
	if len(next) > MaxEntries {
		next = next[:MaxEntries]
	}
	return next
}
