package payroll

import "errors"

var (
	ErrPeriodNotFound         = errors.New("salary period not found")
	ErrPeriodAlreadyExists    = errors.New("salary period already exists for this month and year")
	ErrPreviousPeriodNotFound = errors.New("previous salary period not found")
	ErrSlipNotFound           = errors.New("salary slip not found")
	ErrSlipAlreadyExists      = errors.New("salary slip already exists for this staff and period")
	ErrItemNotFound           = errors.New("salary item not found")
	ErrInvalidKPIRule         = errors.New("kpi rule target and reward must be positive")
	ErrNothingToPay           = errors.New("net pay must be positive to finalize")
	ErrStaffNotFound          = errors.New("staff not found")
)
