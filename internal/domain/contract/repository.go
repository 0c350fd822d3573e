package contract

import (
	"context"
	"time"
)

// ContractRepository reads sales attribution facts for the payroll engine.
// The same scan backs both the commission aggregator and the KPI resolver's
// actual-revenue computation.
type ContractRepository interface {
	ListCommissionFacts(ctx context.Context, staffID string, from, to time.Time) ([]CommissionFact, error)
}
