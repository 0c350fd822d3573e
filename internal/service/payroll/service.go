package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bellastudio/studio-backend-go/internal/domain/contract"
	"github.com/bellastudio/studio-backend-go/internal/domain/finance"
	"github.com/bellastudio/studio-backend-go/internal/domain/payroll"
	"github.com/bellastudio/studio-backend-go/internal/domain/staff"
	"github.com/bellastudio/studio-backend-go/internal/domain/task"
	"github.com/bellastudio/studio-backend-go/internal/pkg/database"
)

type PayrollServiceImpl struct {
	db           *database.DB
	payrollRepo  payroll.PayrollRepository
	staffRepo    staff.StaffRepository
	taskRepo     task.TaskRepository
	contractRepo contract.ContractRepository
	financeRepo  finance.FinanceRepository
	now          func() time.Time
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	staffRepo staff.StaffRepository,
	taskRepo task.TaskRepository,
	contractRepo contract.ContractRepository,
	financeRepo finance.FinanceRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:           db,
		payrollRepo:  payrollRepo,
		staffRepo:    staffRepo,
		taskRepo:     taskRepo,
		contractRepo: contractRepo,
		financeRepo:  financeRepo,
		now:          time.Now,
	}
}

// ========== PERIODS ==========

// OpenOrGetPeriod returns the period for (month, year), creating it when it
// does not exist yet. Concurrent opens of the same month converge on the row
// that won the unique constraint.
func (s *PayrollServiceImpl) OpenOrGetPeriod(ctx context.Context, req payroll.OpenPeriodRequest) (payroll.SalaryPeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalaryPeriodResponse{}, err
	}

	existing, err := s.payrollRepo.GetPeriodByMonthYear(ctx, req.Month, req.Year)
	if err == nil {
		return payroll.ToPeriodResponse(existing), nil
	}
	if !errors.Is(err, payroll.ErrPeriodNotFound) {
		return payroll.SalaryPeriodResponse{}, fmt.Errorf("failed to look up salary period: %w", err)
	}

	start, end := payroll.PeriodBounds(req.Month, req.Year)
	created, err := s.payrollRepo.CreatePeriod(ctx, payroll.SalaryPeriod{
		Month:     req.Month,
		Year:      req.Year,
		StartDate: start,
		EndDate:   end,
		Status:    payroll.PeriodStatusOpen,
	})
	if err != nil {
		if errors.Is(err, payroll.ErrPeriodAlreadyExists) {
			// Lost the race; the winner's row is the period.
			existing, err = s.payrollRepo.GetPeriodByMonthYear(ctx, req.Month, req.Year)
			if err != nil {
				return payroll.SalaryPeriodResponse{}, fmt.Errorf("failed to re-fetch salary period: %w", err)
			}
			return payroll.ToPeriodResponse(existing), nil
		}
		return payroll.SalaryPeriodResponse{}, fmt.Errorf("failed to create salary period: %w", err)
	}

	return payroll.ToPeriodResponse(created), nil
}

func (s *PayrollServiceImpl) ListPeriods(ctx context.Context) ([]payroll.SalaryPeriodResponse, error) {
	periods, err := s.payrollRepo.ListPeriods(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary periods: %w", err)
	}

	result := make([]payroll.SalaryPeriodResponse, 0, len(periods))
	for _, p := range periods {
		result = append(result, payroll.ToPeriodResponse(p))
	}
	return result, nil
}

// ========== SLIPS ==========

// InitializeSlip creates an empty slip for the staff member in the period.
// Re-initializing returns the existing slip untouched.
func (s *PayrollServiceImpl) InitializeSlip(ctx context.Context, req payroll.InitializeSlipRequest) (payroll.SalarySlipResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalarySlipResponse{}, err
	}

	if _, err := s.payrollRepo.GetPeriodByID(ctx, req.PeriodID); err != nil {
		return payroll.SalarySlipResponse{}, err
	}
	if _, err := s.staffRepo.GetByID(ctx, req.StaffID); err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) {
			return payroll.SalarySlipResponse{}, payroll.ErrStaffNotFound
		}
		return payroll.SalarySlipResponse{}, err
	}

	existing, err := s.payrollRepo.GetSlipByStaffPeriod(ctx, req.StaffID, req.PeriodID)
	if err == nil {
		return payroll.ToSlipResponse(existing), nil
	}
	if !errors.Is(err, payroll.ErrSlipNotFound) {
		return payroll.SalarySlipResponse{}, fmt.Errorf("failed to look up salary slip: %w", err)
	}

	created, err := s.payrollRepo.CreateSlip(ctx, payroll.SalarySlip{
		StaffID:        req.StaffID,
		SalaryPeriodID: req.PeriodID,
	})
	if err != nil {
		if errors.Is(err, payroll.ErrSlipAlreadyExists) {
			existing, err = s.payrollRepo.GetSlipByStaffPeriod(ctx, req.StaffID, req.PeriodID)
			if err != nil {
				return payroll.SalarySlipResponse{}, fmt.Errorf("failed to re-fetch salary slip: %w", err)
			}
			return payroll.ToSlipResponse(existing), nil
		}
		return payroll.SalarySlipResponse{}, fmt.Errorf("failed to create salary slip: %w", err)
	}

	return payroll.ToSlipResponse(created), nil
}

func (s *PayrollServiceImpl) ListSlips(ctx context.Context, periodID string) ([]payroll.SalarySlipResponse, error) {
	if _, err := s.payrollRepo.GetPeriodByID(ctx, periodID); err != nil {
		return nil, err
	}

	slips, err := s.payrollRepo.ListSlipsByPeriod(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary slips: %w", err)
	}

	result := make([]payroll.SalarySlipResponse, 0, len(slips))
	for _, slip := range slips {
		result = append(result, payroll.ToSlipResponse(slip))
	}
	return result, nil
}

func (s *PayrollServiceImpl) ListSlipItems(ctx context.Context, slipID string) ([]payroll.SalaryItemResponse, error) {
	if _, err := s.payrollRepo.GetSlipByID(ctx, slipID); err != nil {
		return nil, err
	}

	items, err := s.payrollRepo.ListItemsBySlip(ctx, slipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary items: %w", err)
	}
	return payroll.ToItemResponses(items), nil
}

func (s *PayrollServiceImpl) ListPeriodItems(ctx context.Context, periodID string) ([]payroll.SalaryItemResponse, error) {
	if _, err := s.payrollRepo.GetPeriodByID(ctx, periodID); err != nil {
		return nil, err
	}

	items, err := s.payrollRepo.ListItemsByPeriod(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary items: %w", err)
	}
	return payroll.ToItemResponses(items), nil
}

// ========== ITEMS ==========

// SaveItem appends a manual ledger item to a slip. When the request carries
// an auto-KPI rule the item is stored with a zero amount and the encoded rule
// as its ref-id; the next sync pass resolves it against actual revenue.
func (s *PayrollServiceImpl) SaveItem(ctx context.Context, req payroll.SaveItemRequest) (payroll.SalaryItemResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalaryItemResponse{}, err
	}

	slip, err := s.payrollRepo.GetSlipByID(ctx, req.SalarySlipID)
	if err != nil {
		return payroll.SalaryItemResponse{}, err
	}

	item := payroll.SalaryItem{
		SalarySlipID: slip.ID,
		Type:         payroll.ItemType(req.Type),
		Title:        req.Title,
		Amount:       req.Amount,
		Source:       payroll.ItemSource(req.Source),
	}

	if req.AutoKPI != nil {
		rule, err := payroll.NewKPIRule(req.AutoKPI.TargetRevenue, req.AutoKPI.RewardMagnitude, payroll.RewardType(req.AutoKPI.RewardType))
		if err != nil {
			return payroll.SalaryItemResponse{}, err
		}
		refID := rule.RefID()
		item.Type = payroll.ItemTypeKPI
		item.Source = payroll.SourceKPI
		item.Title = rule.PendingTitle()
		item.Amount = 0
		item.RefID = &refID
	}

	created, err := s.payrollRepo.CreateItem(ctx, item)
	if err != nil {
		return payroll.SalaryItemResponse{}, fmt.Errorf("failed to create salary item: %w", err)
	}

	if err := s.recomputeSlipTotals(ctx, slip.ID); err != nil {
		return payroll.SalaryItemResponse{}, err
	}

	return payroll.ToItemResponse(created), nil
}

func (s *PayrollServiceImpl) DeleteItem(ctx context.Context, id string) error {
	item, err := s.payrollRepo.GetItemByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.payrollRepo.DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("failed to delete salary item: %w", err)
	}

	return s.recomputeSlipTotals(ctx, item.SalarySlipID)
}

// recomputeSlipTotals re-derives stored slip totals from the current item
// set. Items are the source of truth; totals are a cache.
func (s *PayrollServiceImpl) recomputeSlipTotals(ctx context.Context, slipID string) error {
	items, err := s.payrollRepo.ListItemsBySlip(ctx, slipID)
	if err != nil {
		return fmt.Errorf("failed to list salary items: %w", err)
	}
	if err := s.payrollRepo.UpdateSlipTotals(ctx, slipID, payroll.ComputeTotals(items)); err != nil {
		return fmt.Errorf("failed to update slip totals: %w", err)
	}
	return nil
}
