package contract

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionFact is one contract line item attributed to a salesperson inside
// a period window. Subtotal is integer VND; CommissionPct is the service's
// configured commission percentage.
type CommissionFact struct {
	ContractItemID string
	ContractCode   string
	ServiceName    string
	Date           time.Time
	Subtotal       int64
	CommissionPct  decimal.Decimal
}

// CommissionAmount computes the line's commission, rounded half-up at the
// final amount only.
func (f CommissionFact) CommissionAmount() int64 {
	return decimal.NewFromInt(f.Subtotal).
		Mul(f.CommissionPct).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}
