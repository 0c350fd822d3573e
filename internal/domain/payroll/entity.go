package payroll

import (
	"time"
)

// PeriodStatus enum
type PeriodStatus string

const (
	PeriodStatusOpen   PeriodStatus = "open"
	PeriodStatusClosed PeriodStatus = "closed"
)

// SalaryPeriod - One calendar month of payroll. Unique per (month, year).
type SalaryPeriod struct {
	ID        string
	Month     int
	Year      int
	StartDate time.Time
	EndDate   time.Time
	Status    PeriodStatus
	CreatedAt time.Time
}

// PeriodBounds returns the first and last calendar day of the given month.
// time.Date normalizes day 0 of the next month to the last day of this one,
// which handles 28/29/30/31-day months and leap years.
func PeriodBounds(month, year int) (start, end time.Time) {
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
	return start, end
}

// PreviousPeriod returns the (month, year) pair immediately before the given
// one, rolling January back to December of the prior year.
func PreviousPeriod(month, year int) (int, int) {
	if month == 1 {
		return 12, year - 1
	}
	return month - 1, year
}

// SalarySlip - Per-staff, per-period container of ledger items.
// Totals are derived from items and never treated as a source of truth.
type SalarySlip struct {
	ID              string
	StaffID         string
	SalaryPeriodID  string
	TotalEarnings   int64
	TotalDeductions int64
	NetPay          int64
	Note            *string
	CreatedAt       time.Time

	// Joined fields
	StaffName *string
	StaffCode *string
}

// ItemType enum
type ItemType string

const (
	ItemTypeHard       ItemType = "HARD"
	ItemTypeCommission ItemType = "COMMISSION"
	ItemTypeWork       ItemType = "WORK"
	ItemTypeReward     ItemType = "REWARD"
	ItemTypeAllowance  ItemType = "ALLOWANCE"
	ItemTypePenalty    ItemType = "PENALTY"
	ItemTypeAdvance    ItemType = "ADVANCE"
	ItemTypeAdjust     ItemType = "ADJUST"
	ItemTypeKPI        ItemType = "KPI"
)

// ItemSource enum
type ItemSource string

const (
	SourceManual        ItemSource = "manual"
	SourceTask          ItemSource = "task"
	SourceContract      ItemSource = "contract"
	SourceNoiQuy        ItemSource = "noi_quy"
	SourceTransaction   ItemSource = "transaction"
	SourceKPI           ItemSource = "kpi"
	SourceAllowance     ItemSource = "allowance"
	SourceAllowanceCopy ItemSource = "allowance_copy"
)

// SalaryItem - One signed monetary line on a slip. Amounts are integer VND;
// positive is an earning, negative a deduction.
type SalaryItem struct {
	ID           string
	SalarySlipID string
	Type         ItemType
	Title        string
	Amount       int64
	Source       ItemSource
	RefID        *string
	CreatedAt    time.Time

	// Joined field for period-wide listings
	StaffID *string
}

// IsAutoGenerated reports whether the item is owned by the sync pass:
// task and contract items always, KPI items only when carrying an auto rule.
func (i SalaryItem) IsAutoGenerated() bool {
	switch i.Source {
	case SourceTask, SourceContract:
		return true
	case SourceKPI:
		return i.RefID != nil && IsKPIRuleRef(*i.RefID)
	}
	return false
}

// SlipTotals is the derived triple recomputed from a slip's items.
type SlipTotals struct {
	Earnings   int64
	Deductions int64
	NetPay     int64
}

// ComputeTotals derives slip totals from signed items:
// earnings = sum of positive amounts, deductions = sum of |negative amounts|,
// net pay = earnings - deductions.
func ComputeTotals(items []SalaryItem) SlipTotals {
	var t SlipTotals
	for _, item := range items {
		if item.Amount > 0 {
			t.Earnings += item.Amount
		} else {
			t.Deductions += -item.Amount
		}
	}
	t.NetPay = t.Earnings - t.Deductions
	return t
}
