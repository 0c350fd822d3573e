package payroll

import "context"

// PayrollService is the payroll engine surface consumed by the HTTP layer.
type PayrollService interface {
	// Periods
	OpenOrGetPeriod(ctx context.Context, req OpenPeriodRequest) (SalaryPeriodResponse, error)
	ListPeriods(ctx context.Context) ([]SalaryPeriodResponse, error)

	// Magic Sync
	MagicSync(ctx context.Context, periodID string, staffID *string) (SyncResult, error)

	// Allowance carry-forward
	CopyPreviousAllowances(ctx context.Context, periodID string, req CopyAllowancesRequest) (CopyAllowancesResponse, error)

	// Slips
	InitializeSlip(ctx context.Context, req InitializeSlipRequest) (SalarySlipResponse, error)
	ListSlips(ctx context.Context, periodID string) ([]SalarySlipResponse, error)
	ListSlipItems(ctx context.Context, slipID string) ([]SalaryItemResponse, error)
	ListPeriodItems(ctx context.Context, periodID string) ([]SalaryItemResponse, error)

	// Items
	SaveItem(ctx context.Context, req SaveItemRequest) (SalaryItemResponse, error)
	DeleteItem(ctx context.Context, id string) error

	// Finalization
	FinalizeSlip(ctx context.Context, slipID string) (FinalizeResponse, error)
}
