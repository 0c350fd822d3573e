package finance

import "time"

// TransactionType enum
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction - one cash movement in the studio ledger. Payroll finalization
// writes an expense transaction here for each disbursement.
type Transaction struct {
	ID           string
	Type         TransactionType
	MainCategory string
	Category     string
	Amount       int64
	Description  string
	Date         time.Time
	ContractID   *string
	StaffID      *string
	Vendor       *string
	CreatedAt    time.Time
}
