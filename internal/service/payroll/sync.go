package payroll

import (
	"context"
	"errors"
	"fmt"

	"github.com/bellastudio/studio-backend-go/internal/domain/payroll"
	"github.com/bellastudio/studio-backend-go/internal/domain/staff"
	"github.com/bellastudio/studio-backend-go/internal/domain/task"
)

// ========== MAGIC SYNC ==========

// MagicSync reconciles auto-generated ledger items for one staff member, or
// for every active staff member when staffID is nil. Each staff member is an
// independent unit of work: a failure is recorded and the run moves on.
func (s *PayrollServiceImpl) MagicSync(ctx context.Context, periodID string, staffID *string) (payroll.SyncResult, error) {
	period, err := s.payrollRepo.GetPeriodByID(ctx, periodID)
	if err != nil {
		return payroll.SyncResult{}, err
	}

	var targets []staff.Staff
	if staffID != nil {
		st, err := s.staffRepo.GetByID(ctx, *staffID)
		if err != nil {
			if errors.Is(err, staff.ErrStaffNotFound) {
				return payroll.SyncResult{}, payroll.ErrStaffNotFound
			}
			return payroll.SyncResult{}, err
		}
		targets = []staff.Staff{st}
	} else {
		targets, err = s.staffRepo.ListActive(ctx)
		if err != nil {
			return payroll.SyncResult{}, fmt.Errorf("failed to list active staff: %w", err)
		}
	}

	result := payroll.SyncResult{}
	for _, st := range targets {
		if err := s.syncStaff(ctx, period, st); err != nil {
			result.Failures = append(result.Failures, payroll.SyncFailure{
				StaffID: st.ID,
				Error:   err.Error(),
			})
			continue
		}
		result.SlipsUpdated++
	}
	result.Success = len(result.Failures) == 0

	return result, nil
}

// syncStaff runs one reconciliation pass for one staff member: gather facts,
// compute the desired auto-item set, diff it against the slip's current auto
// items, and apply the difference atomically together with recomputed totals.
func (s *PayrollServiceImpl) syncStaff(ctx context.Context, period payroll.SalaryPeriod, st staff.Staff) error {
	slip, err := s.payrollRepo.GetSlipByStaffPeriod(ctx, st.ID, period.ID)
	if errors.Is(err, payroll.ErrSlipNotFound) {
		slip, err = s.payrollRepo.CreateSlip(ctx, payroll.SalarySlip{
			StaffID:        st.ID,
			SalaryPeriodID: period.ID,
		})
	}
	if err != nil {
		return fmt.Errorf("failed to ensure salary slip: %w", err)
	}

	desired, revenue, err := s.buildDesiredItems(ctx, period, st, slip.ID)
	if err != nil {
		return err
	}

	existing, err := s.payrollRepo.ListItemsBySlip(ctx, slip.ID)
	if err != nil {
		return fmt.Errorf("failed to list salary items: %w", err)
	}

	sync := reconcile(slip.ID, existing, desired, revenue)
	if err := s.payrollRepo.ApplySlipSync(ctx, sync); err != nil {
		return fmt.Errorf("failed to apply slip sync: %w", err)
	}
	return nil
}

// buildDesiredItems computes, from source-of-truth facts, the full set of
// auto items the slip should carry after this pass. It also returns the
// staff member's attributed contract revenue for the window, which the KPI
// resolver consumes.
func (s *PayrollServiceImpl) buildDesiredItems(ctx context.Context, period payroll.SalaryPeriod, st staff.Staff, slipID string) ([]payroll.SalaryItem, int64, error) {
	var desired []payroll.SalaryItem

	// Base salary
	if st.BaseSalary > 0 {
		staffRef := st.ID
		desired = append(desired, payroll.SalaryItem{
			SalarySlipID: slipID,
			Type:         payroll.ItemTypeHard,
			Title:        "Lương cứng",
			Amount:       st.BaseSalary,
			Source:       payroll.SourceNoiQuy,
			RefID:        &staffRef,
		})
	}

	// Task piece wages
	wageFacts, err := s.taskRepo.ListWageFacts(ctx, st.ID, period.StartDate, period.EndDate)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list task wage facts: %w", err)
	}
	for _, f := range wageFacts {
		ref := f.TaskID
		desired = append(desired, payroll.SalaryItem{
			SalarySlipID: slipID,
			Type:         payroll.ItemTypeWork,
			Title:        workItemTitle(f),
			Amount:       f.Amount,
			Source:       payroll.SourceTask,
			RefID:        &ref,
		})
	}

	// Sales commissions and attributed revenue
	commissionFacts, err := s.contractRepo.ListCommissionFacts(ctx, st.ID, period.StartDate, period.EndDate)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list commission facts: %w", err)
	}
	var revenue int64
	for _, f := range commissionFacts {
		revenue += f.Subtotal
		ref := f.ContractItemID
		desired = append(desired, payroll.SalaryItem{
			SalarySlipID: slipID,
			Type:         payroll.ItemTypeCommission,
			Title:        fmt.Sprintf("Hoa hồng %s - %s", f.ContractCode, f.ServiceName),
			Amount:       f.CommissionAmount(),
			Source:       payroll.SourceContract,
			RefID:        &ref,
		})
	}

	return desired, revenue, nil
}

// workItemTitle renders the slip line for one task piece wage, matching the
// printed payslip layout: task, customer, contract code, due date.
func workItemTitle(f task.WageFact) string {
	customer := f.CustomerName
	if customer == "" {
		customer = "Khách lẻ"
	}
	code := f.ContractCode
	if code == "" {
		code = "N/A"
	}
	return fmt.Sprintf("%s - %s - %s - %s", f.TaskName, customer, code, f.DueDate.Format("02/01/2006"))
}

// reconcile diffs the desired auto-item set against the slip's current items
// and produces one batched sync. Auto items are keyed by (source, ref-id):
// present on both sides means update in place when stale, desired-only means
// insert, existing-only means the backing fact disappeared and the item goes.
// KPI rule items are never inserted or deleted here; their amount and title
// are re-resolved against revenue. Manual items pass through untouched.
func reconcile(slipID string, existing, desired []payroll.SalaryItem, revenue int64) payroll.SlipSync {
	sync := payroll.SlipSync{SlipID: slipID}

	desiredByKey := make(map[string]payroll.SalaryItem, len(desired))
	for _, item := range desired {
		desiredByKey[itemKey(item)] = item
	}

	matched := make(map[string]bool, len(desired))
	final := make([]payroll.SalaryItem, 0, len(existing)+len(desired))

	for _, item := range existing {
		if item.Type == payroll.ItemTypeKPI && item.IsAutoGenerated() {
			rule, err := payroll.ParseKPIRuleRef(*item.RefID)
			if err != nil {
				// Unparseable rule token; leave the item alone.
				final = append(final, item)
				continue
			}
			amount, met := rule.Resolve(revenue)
			title := rule.ResolvedTitle(revenue, met)
			if item.Amount != amount || item.Title != title {
				sync.Updates = append(sync.Updates, payroll.ItemUpdate{ID: item.ID, Title: title, Amount: amount})
			}
			item.Amount = amount
			item.Title = title
			final = append(final, item)
			continue
		}

		if !syncOwned(item) {
			final = append(final, item)
			continue
		}

		key := itemKey(item)
		want, ok := desiredByKey[key]
		if !ok {
			sync.DeleteIDs = append(sync.DeleteIDs, item.ID)
			continue
		}
		matched[key] = true
		if item.Amount != want.Amount || item.Title != want.Title {
			sync.Updates = append(sync.Updates, payroll.ItemUpdate{ID: item.ID, Title: want.Title, Amount: want.Amount})
		}
		item.Amount = want.Amount
		item.Title = want.Title
		final = append(final, item)
	}

	for _, item := range desired {
		if !matched[itemKey(item)] {
			sync.Inserts = append(sync.Inserts, item)
			final = append(final, item)
		}
	}

	sync.Totals = payroll.ComputeTotals(final)
	return sync
}

// syncOwned reports whether the sync pass owns the item's lifecycle. Task and
// contract items always; base-salary items are the noi_quy rows keyed by a
// staff ref-id. Manual noi_quy adjustments carry no ref-id and stay manual.
func syncOwned(item payroll.SalaryItem) bool {
	switch item.Source {
	case payroll.SourceTask, payroll.SourceContract:
		return true
	case payroll.SourceNoiQuy:
		return item.RefID != nil
	}
	return false
}

func itemKey(item payroll.SalaryItem) string {
	ref := ""
	if item.RefID != nil {
		ref = *item.RefID
	}
	return string(item.Source) + ":" + ref
}
