package finance

import "context"

// FinanceRepository writes disbursement transactions for the payroll engine.
type FinanceRepository interface {
	CreateTransaction(ctx context.Context, tx Transaction) (Transaction, error)
}
