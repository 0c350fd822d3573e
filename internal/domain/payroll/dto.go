package payroll

import (
	"time"

	"github.com/bellastudio/studio-backend-go/internal/pkg/validator"
)

// ========== PERIOD DTOs ==========

type OpenPeriodRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *OpenPeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < 2020 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be 2020 or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SalaryPeriodResponse struct {
	ID        string `json:"id"`
	Month     int    `json:"month"`
	Year      int    `json:"year"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

// ========== SYNC DTOs ==========

type SyncRequest struct {
	StaffID *string `json:"staff_id,omitempty"` // nil = every active staff member
}

// SyncFailure records one staff member whose sync step failed during a bulk
// run. Siblings are unaffected.
type SyncFailure struct {
	StaffID string `json:"staff_id"`
	Error   string `json:"error"`
}

type SyncResult struct {
	Success      bool          `json:"success"`
	SlipsUpdated int           `json:"slips_updated"`
	Failures     []SyncFailure `json:"failures,omitempty"`
}

// ========== ALLOWANCE CARRY-FORWARD DTOs ==========

type CopyAllowancesRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *CopyAllowancesRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < 2020 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be 2020 or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CopyAllowancesResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

// ========== SLIP DTOs ==========

type InitializeSlipRequest struct {
	PeriodID string `json:"period_id"`
	StaffID  string `json:"staff_id"`
}

func (r *InitializeSlipRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PeriodID) {
		errs = append(errs, validator.ValidationError{Field: "period_id", Message: "is required"})
	}
	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{Field: "staff_id", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SalarySlipResponse struct {
	ID              string  `json:"id"`
	StaffID         string  `json:"staff_id"`
	StaffName       string  `json:"staff_name,omitempty"`
	StaffCode       string  `json:"staff_code,omitempty"`
	SalaryPeriodID  string  `json:"salary_period_id"`
	TotalEarnings   int64   `json:"total_earnings"`
	TotalDeductions int64   `json:"total_deductions"`
	NetPay          int64   `json:"net_pay"`
	Note            *string `json:"note,omitempty"`
}

// ========== ITEM DTOs ==========

// AutoKPIRequest is the typed form of an automatic revenue-threshold bonus.
// When present on SaveItemRequest the item is created as a KPI item whose
// amount is computed by the next sync, not taken from the request.
type AutoKPIRequest struct {
	TargetRevenue   int64  `json:"target_revenue"`
	RewardMagnitude int64  `json:"reward_magnitude"`
	RewardType      string `json:"reward_type"` // "FIXED" or "PERCENT"
}

type SaveItemRequest struct {
	SalarySlipID string          `json:"salary_slip_id"`
	Type         string          `json:"type"`
	Title        string          `json:"title"`
	Amount       int64           `json:"amount"`
	Source       string          `json:"source"`
	AutoKPI      *AutoKPIRequest `json:"auto_kpi,omitempty"`
}

var itemTypes = []string{
	string(ItemTypeHard), string(ItemTypeCommission), string(ItemTypeWork),
	string(ItemTypeReward), string(ItemTypeAllowance), string(ItemTypePenalty),
	string(ItemTypeAdvance), string(ItemTypeAdjust), string(ItemTypeKPI),
}

var itemSources = []string{
	string(SourceManual), string(SourceTask), string(SourceContract),
	string(SourceNoiQuy), string(SourceTransaction), string(SourceKPI),
	string(SourceAllowance), string(SourceAllowanceCopy),
}

func (r *SaveItemRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SalarySlipID) {
		errs = append(errs, validator.ValidationError{Field: "salary_slip_id", Message: "is required"})
	}
	if !validator.IsInSlice(r.Type, itemTypes) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "is not a valid item type"})
	}
	if !validator.IsInSlice(r.Source, itemSources) {
		errs = append(errs, validator.ValidationError{Field: "source", Message: "is not a valid item source"})
	}

	if r.AutoKPI != nil {
		if r.Type != string(ItemTypeKPI) {
			errs = append(errs, validator.ValidationError{Field: "type", Message: "must be KPI when auto_kpi is set"})
		}
		if r.AutoKPI.TargetRevenue <= 0 {
			errs = append(errs, validator.ValidationError{Field: "auto_kpi.target_revenue", Message: "must be positive"})
		}
		if r.AutoKPI.RewardMagnitude <= 0 {
			errs = append(errs, validator.ValidationError{Field: "auto_kpi.reward_magnitude", Message: "must be positive"})
		}
		if r.AutoKPI.RewardType != string(RewardTypeFixed) && r.AutoKPI.RewardType != string(RewardTypePercent) {
			errs = append(errs, validator.ValidationError{Field: "auto_kpi.reward_type", Message: "must be 'FIXED' or 'PERCENT'"})
		}
	} else {
		if validator.IsEmpty(r.Title) {
			errs = append(errs, validator.ValidationError{Field: "title", Message: "is required"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SalaryItemResponse struct {
	ID           string  `json:"id"`
	SalarySlipID string  `json:"salary_slip_id"`
	Type         string  `json:"type"`
	Title        string  `json:"title"`
	Amount       int64   `json:"amount"`
	Source       string  `json:"source"`
	RefID        *string `json:"ref_id,omitempty"`
	CreatedAt    string  `json:"created_at,omitempty"`
}

// ========== FINALIZATION DTOs ==========

type FinalizeResponse struct {
	TransactionID string `json:"transaction_id"`
	Amount        int64  `json:"amount"`
	Date          string `json:"date"`
}

// ========== MAPPING HELPERS ==========

func ToPeriodResponse(p SalaryPeriod) SalaryPeriodResponse {
	return SalaryPeriodResponse{
		ID:        p.ID,
		Month:     p.Month,
		Year:      p.Year,
		StartDate: p.StartDate.Format("2006-01-02"),
		EndDate:   p.EndDate.Format("2006-01-02"),
		Status:    string(p.Status),
	}
}

func ToSlipResponse(s SalarySlip) SalarySlipResponse {
	resp := SalarySlipResponse{
		ID:              s.ID,
		StaffID:         s.StaffID,
		SalaryPeriodID:  s.SalaryPeriodID,
		TotalEarnings:   s.TotalEarnings,
		TotalDeductions: s.TotalDeductions,
		NetPay:          s.NetPay,
		Note:            s.Note,
	}
	if s.StaffName != nil {
		resp.StaffName = *s.StaffName
	}
	if s.StaffCode != nil {
		resp.StaffCode = *s.StaffCode
	}
	return resp
}

func ToItemResponse(i SalaryItem) SalaryItemResponse {
	resp := SalaryItemResponse{
		ID:           i.ID,
		SalarySlipID: i.SalarySlipID,
		Type:         string(i.Type),
		Title:        i.Title,
		Amount:       i.Amount,
		Source:       string(i.Source),
		RefID:        i.RefID,
	}
	if !i.CreatedAt.IsZero() {
		resp.CreatedAt = i.CreatedAt.Format(time.RFC3339)
	}
	return resp
}

func ToItemResponses(items []SalaryItem) []SalaryItemResponse {
	result := make([]SalaryItemResponse, 0, len(items))
	for _, i := range items {
		result = append(result, ToItemResponse(i))
	}
	return result
}
