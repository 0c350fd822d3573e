package payroll

import (
	"context"
	"fmt"

	"github.com/bellastudio/studio-backend-go/internal/domain/finance"
	"github.com/bellastudio/studio-backend-go/internal/domain/payroll"
)

// ========== FINALIZATION ==========

// FinalizeSlip disburses a slip: it records the net pay as an expense
// transaction in the studio ledger, then appends a negative ADVANCE item
// referencing that transaction so the slip's net settles to zero. A slip
// whose net pay is already zero or negative has nothing to disburse.
func (s *PayrollServiceImpl) FinalizeSlip(ctx context.Context, slipID string) (payroll.FinalizeResponse, error) {
	slip, err := s.payrollRepo.GetSlipByID(ctx, slipID)
	if err != nil {
		return payroll.FinalizeResponse{}, err
	}

	items, err := s.payrollRepo.ListItemsBySlip(ctx, slipID)
	if err != nil {
		return payroll.FinalizeResponse{}, fmt.Errorf("failed to list salary items: %w", err)
	}

	totals := payroll.ComputeTotals(items)
	if totals.NetPay <= 0 {
		return payroll.FinalizeResponse{}, payroll.ErrNothingToPay
	}

	period, err := s.payrollRepo.GetPeriodByID(ctx, slip.SalaryPeriodID)
	if err != nil {
		return payroll.FinalizeResponse{}, err
	}

	staffName := slip.StaffID
	if slip.StaffName != nil {
		staffName = *slip.StaffName
	}

	now := s.now()
	txID := fmt.Sprintf("pay-%s-%d", slip.ID, now.UnixMilli())
	vendor := "Chuyển khoản"
	staffID := slip.StaffID

	tx, err := s.financeRepo.CreateTransaction(ctx, finance.Transaction{
		ID:           txID,
		Type:         finance.TransactionTypeExpense,
		MainCategory: "Lương nhân viên",
		Category:     "Thanh toán lương",
		Amount:       totals.NetPay,
		Description:  fmt.Sprintf("Thanh toán lương T%d/%d - %s", period.Month, period.Year, staffName),
		Date:         now,
		StaffID:      &staffID,
		Vendor:       &vendor,
	})
	if err != nil {
		return payroll.FinalizeResponse{}, fmt.Errorf("failed to record disbursement transaction: %w", err)
	}

	refID := tx.ID
	_, err = s.payrollRepo.CreateItem(ctx, payroll.SalaryItem{
		SalarySlipID: slip.ID,
		Type:         payroll.ItemTypeAdvance,
		Title:        "Đã thanh toán (Auto)",
		Amount:       -totals.NetPay,
		Source:       payroll.SourceTransaction,
		RefID:        &refID,
	})
	if err != nil {
		// The ledger transaction exists but the slip item does not. The
		// caller retries and the slip settles on the next attempt.
		return payroll.FinalizeResponse{}, fmt.Errorf("failed to record payment item: %w", err)
	}

	if err := s.recomputeSlipTotals(ctx, slip.ID); err != nil {
		return payroll.FinalizeResponse{}, err
	}

	return payroll.FinalizeResponse{
		TransactionID: tx.ID,
		Amount:        totals.NetPay,
		Date:          now.Format("2006-01-02"),
	}, nil
}
