package payroll

import "context"

// ItemUpdate overwrites an existing auto-generated item in place during
// reconciliation.
type ItemUpdate struct {
	ID     string
	Title  string
	Amount int64
}

// SlipSync is the batched outcome of one reconciliation pass for one slip:
// stale auto items to delete, current ones to insert or update, and the
// totals recomputed from the resulting item set. Repositories apply it as a
// single transaction.
type SlipSync struct {
	SlipID    string
	Inserts   []SalaryItem
	Updates   []ItemUpdate
	DeleteIDs []string
	Totals    SlipTotals
}

// PayrollRepository defines data access for periods, slips and ledger items.
type PayrollRepository interface {
	// Periods
	CreatePeriod(ctx context.Context, period SalaryPeriod) (SalaryPeriod, error)
	GetPeriodByID(ctx context.Context, id string) (SalaryPeriod, error)
	GetPeriodByMonthYear(ctx context.Context, month, year int) (SalaryPeriod, error)
	ListPeriods(ctx context.Context) ([]SalaryPeriod, error)

	// Slips
	CreateSlip(ctx context.Context, slip SalarySlip) (SalarySlip, error)
	GetSlipByID(ctx context.Context, id string) (SalarySlip, error)
	GetSlipByStaffPeriod(ctx context.Context, staffID, periodID string) (SalarySlip, error)
	ListSlipsByPeriod(ctx context.Context, periodID string) ([]SalarySlip, error)
	UpdateSlipTotals(ctx context.Context, slipID string, totals SlipTotals) error

	// Items
	CreateItem(ctx context.Context, item SalaryItem) (SalaryItem, error)
	GetItemByID(ctx context.Context, id string) (SalaryItem, error)
	DeleteItem(ctx context.Context, id string) error
	ListItemsBySlip(ctx context.Context, slipID string) ([]SalaryItem, error)
	ListItemsByPeriod(ctx context.Context, periodID string) ([]SalaryItem, error)
	ListAllowanceItemsByPeriod(ctx context.Context, periodID string) ([]SalaryItem, error)

	// Reconciliation: apply one sync outcome atomically.
	ApplySlipSync(ctx context.Context, sync SlipSync) error
}
