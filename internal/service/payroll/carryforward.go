package payroll

import (
	"context"
	"errors"
	"fmt"

	"github.com/bellastudio/studio-backend-go/internal/domain/payroll"
)

// ========== ALLOWANCE CARRY-FORWARD ==========

// CopyPreviousAllowances copies every allowance item from the previous
// month's period into the matching slips of the target period. Staff without
// a slip in the target period are skipped. The copy is not deduplicated:
// running it twice doubles the allowances, which is why the client confirms
// before calling.
func (s *PayrollServiceImpl) CopyPreviousAllowances(ctx context.Context, periodID string, req payroll.CopyAllowancesRequest) (payroll.CopyAllowancesResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.CopyAllowancesResponse{}, err
	}

	if _, err := s.payrollRepo.GetPeriodByID(ctx, periodID); err != nil {
		return payroll.CopyAllowancesResponse{}, err
	}

	prevMonth, prevYear := payroll.PreviousPeriod(req.Month, req.Year)
	prevPeriod, err := s.payrollRepo.GetPeriodByMonthYear(ctx, prevMonth, prevYear)
	if err != nil {
		if errors.Is(err, payroll.ErrPeriodNotFound) {
			return payroll.CopyAllowancesResponse{}, payroll.ErrPreviousPeriodNotFound
		}
		return payroll.CopyAllowancesResponse{}, fmt.Errorf("failed to look up previous period: %w", err)
	}

	items, err := s.payrollRepo.ListAllowanceItemsByPeriod(ctx, prevPeriod.ID)
	if err != nil {
		return payroll.CopyAllowancesResponse{}, fmt.Errorf("failed to list previous allowances: %w", err)
	}

	count := 0
	touched := make(map[string]bool)
	for _, item := range items {
		if item.StaffID == nil {
			continue
		}

		slip, err := s.payrollRepo.GetSlipByStaffPeriod(ctx, *item.StaffID, periodID)
		if errors.Is(err, payroll.ErrSlipNotFound) {
			continue
		}
		if err != nil {
			return payroll.CopyAllowancesResponse{}, fmt.Errorf("failed to look up target slip: %w", err)
		}

		_, err = s.payrollRepo.CreateItem(ctx, payroll.SalaryItem{
			SalarySlipID: slip.ID,
			Type:         payroll.ItemTypeAllowance,
			Title:        item.Title,
			Amount:       item.Amount,
			Source:       payroll.SourceAllowanceCopy,
		})
		if err != nil {
			return payroll.CopyAllowancesResponse{}, fmt.Errorf("failed to copy allowance item: %w", err)
		}
		count++
		touched[slip.ID] = true
	}

	for slipID := range touched {
		if err := s.recomputeSlipTotals(ctx, slipID); err != nil {
			return payroll.CopyAllowancesResponse{}, err
		}
	}

	return payroll.CopyAllowancesResponse{Success: true, Count: count}, nil
}
