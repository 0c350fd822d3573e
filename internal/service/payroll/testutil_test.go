package payroll

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bellastudio/studio-backend-go/internal/domain/contract"
	"github.com/bellastudio/studio-backend-go/internal/domain/finance"
	"github.com/bellastudio/studio-backend-go/internal/domain/payroll"
	"github.com/bellastudio/studio-backend-go/internal/domain/staff"
	"github.com/bellastudio/studio-backend-go/internal/domain/task"
)

// ========== IN-MEMORY FAKES ==========

type fakePayrollRepo struct {
	periods []payroll.SalaryPeriod
	slips   []payroll.SalarySlip
	items   []payroll.SalaryItem
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{}
}

func (r *fakePayrollRepo) CreatePeriod(_ context.Context, p payroll.SalaryPeriod) (payroll.SalaryPeriod, error) {
	for _, existing := range r.periods {
		if existing.Month == p.Month && existing.Year == p.Year {
			return payroll.SalaryPeriod{}, payroll.ErrPeriodAlreadyExists
		}
	}
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now()
	r.periods = append(r.periods, p)
	return p, nil
}

func (r *fakePayrollRepo) GetPeriodByID(_ context.Context, id string) (payroll.SalaryPeriod, error) {
	for _, p := range r.periods {
		if p.ID == id {
			return p, nil
		}
	}
	return payroll.SalaryPeriod{}, payroll.ErrPeriodNotFound
}

func (r *fakePayrollRepo) GetPeriodByMonthYear(_ context.Context, month, year int) (payroll.SalaryPeriod, error) {
	for _, p := range r.periods {
		if p.Month == month && p.Year == year {
			return p, nil
		}
	}
	return payroll.SalaryPeriod{}, payroll.ErrPeriodNotFound
}

func (r *fakePayrollRepo) ListPeriods(_ context.Context) ([]payroll.SalaryPeriod, error) {
	return append([]payroll.SalaryPeriod(nil), r.periods...), nil
}

func (r *fakePayrollRepo) CreateSlip(_ context.Context, s payroll.SalarySlip) (payroll.SalarySlip, error) {
	for _, existing := range r.slips {
		if existing.StaffID == s.StaffID && existing.SalaryPeriodID == s.SalaryPeriodID {
			return payroll.SalarySlip{}, payroll.ErrSlipAlreadyExists
		}
	}
	s.ID = uuid.NewString()
	s.CreatedAt = time.Now()
	r.slips = append(r.slips, s)
	return s, nil
}

func (r *fakePayrollRepo) GetSlipByID(_ context.Context, id string) (payroll.SalarySlip, error) {
	for _, s := range r.slips {
		if s.ID == id {
			return s, nil
		}
	}
	return payroll.SalarySlip{}, payroll.ErrSlipNotFound
}

func (r *fakePayrollRepo) GetSlipByStaffPeriod(_ context.Context, staffID, periodID string) (payroll.SalarySlip, error) {
	for _, s := range r.slips {
		if s.StaffID == staffID && s.SalaryPeriodID == periodID {
			return s, nil
		}
	}
	return payroll.SalarySlip{}, payroll.ErrSlipNotFound
}

func (r *fakePayrollRepo) ListSlipsByPeriod(_ context.Context, periodID string) ([]payroll.SalarySlip, error) {
	var result []payroll.SalarySlip
	for _, s := range r.slips {
		if s.SalaryPeriodID == periodID {
			result = append(result, s)
		}
	}
	return result, nil
}

func (r *fakePayrollRepo) UpdateSlipTotals(_ context.Context, slipID string, totals payroll.SlipTotals) error {
	for i, s := range r.slips {
		if s.ID == slipID {
			r.slips[i].TotalEarnings = totals.Earnings
			r.slips[i].TotalDeductions = totals.Deductions
			r.slips[i].NetPay = totals.NetPay
			return nil
		}
	}
	return payroll.ErrSlipNotFound
}

func (r *fakePayrollRepo) CreateItem(_ context.Context, item payroll.SalaryItem) (payroll.SalaryItem, error) {
	item.ID = uuid.NewString()
	item.CreatedAt = time.Now()
	r.items = append(r.items, item)
	return item, nil
}

func (r *fakePayrollRepo) GetItemByID(_ context.Context, id string) (payroll.SalaryItem, error) {
	for _, item := range r.items {
		if item.ID == id {
			return item, nil
		}
	}
	return payroll.SalaryItem{}, payroll.ErrItemNotFound
}

func (r *fakePayrollRepo) DeleteItem(_ context.Context, id string) error {
	for i, item := range r.items {
		if item.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return payroll.ErrItemNotFound
}

func (r *fakePayrollRepo) ListItemsBySlip(_ context.Context, slipID string) ([]payroll.SalaryItem, error) {
	var result []payroll.SalaryItem
	for _, item := range r.items {
		if item.SalarySlipID == slipID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (r *fakePayrollRepo) ListItemsByPeriod(ctx context.Context, periodID string) ([]payroll.SalaryItem, error) {
	var result []payroll.SalaryItem
	for _, item := range r.items {
		slip, err := r.GetSlipByID(ctx, item.SalarySlipID)
		if err != nil || slip.SalaryPeriodID != periodID {
			continue
		}
		staffID := slip.StaffID
		item.StaffID = &staffID
		result = append(result, item)
	}
	return result, nil
}

func (r *fakePayrollRepo) ListAllowanceItemsByPeriod(ctx context.Context, periodID string) ([]payroll.SalaryItem, error) {
	items, err := r.ListItemsByPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}
	var result []payroll.SalaryItem
	for _, item := range items {
		if item.Type == payroll.ItemTypeAllowance {
			result = append(result, item)
		}
	}
	return result, nil
}

func (r *fakePayrollRepo) ApplySlipSync(ctx context.Context, sync payroll.SlipSync) error {
	for _, id := range sync.DeleteIDs {
		if err := r.DeleteItem(ctx, id); err != nil {
			return err
		}
	}
	for _, u := range sync.Updates {
		found := false
		for i, item := range r.items {
			if item.ID == u.ID {
				r.items[i].Title = u.Title
				r.items[i].Amount = u.Amount
				found = true
				break
			}
		}
		if !found {
			return payroll.ErrItemNotFound
		}
	}
	for _, item := range sync.Inserts {
		if _, err := r.CreateItem(ctx, item); err != nil {
			return err
		}
	}
	return r.UpdateSlipTotals(ctx, sync.SlipID, sync.Totals)
}

type fakeStaffRepo struct {
	staff []staff.Staff
}

func (r *fakeStaffRepo) GetByID(_ context.Context, id string) (staff.Staff, error) {
	for _, s := range r.staff {
		if s.ID == id {
			return s, nil
		}
	}
	return staff.Staff{}, staff.ErrStaffNotFound
}

func (r *fakeStaffRepo) ListActive(_ context.Context) ([]staff.Staff, error) {
	var result []staff.Staff
	for _, s := range r.staff {
		if s.Status == staff.StatusActive {
			result = append(result, s)
		}
	}
	return result, nil
}

type fakeTaskRepo struct {
	facts map[string][]task.WageFact
	err   error
}

func (r *fakeTaskRepo) ListWageFacts(_ context.Context, staffID string, from, to time.Time) ([]task.WageFact, error) {
	if r.err != nil {
		return nil, r.err
	}
	var result []task.WageFact
	for _, f := range r.facts[staffID] {
		if !f.DueDate.Before(from) && !f.DueDate.After(to) {
			result = append(result, f)
		}
	}
	return result, nil
}

type fakeContractRepo struct {
	facts map[string][]contract.CommissionFact
}

func (r *fakeContractRepo) ListCommissionFacts(_ context.Context, staffID string, from, to time.Time) ([]contract.CommissionFact, error) {
	var result []contract.CommissionFact
	for _, f := range r.facts[staffID] {
		if !f.Date.Before(from) && !f.Date.After(to) {
			result = append(result, f)
		}
	}
	return result, nil
}

type fakeFinanceRepo struct {
	transactions []finance.Transaction
}

func (r *fakeFinanceRepo) CreateTransaction(_ context.Context, tx finance.Transaction) (finance.Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	tx.CreatedAt = time.Now()
	r.transactions = append(r.transactions, tx)
	return tx, nil
}

// ========== TEST HARNESS ==========

type testEnv struct {
	svc     *PayrollServiceImpl
	payroll *fakePayrollRepo
	staff   *fakeStaffRepo
	tasks   *fakeTaskRepo
	sales   *fakeContractRepo
	ledger  *fakeFinanceRepo
}

func newTestEnv() *testEnv {
	env := &testEnv{
		payroll: newFakePayrollRepo(),
		staff:   &fakeStaffRepo{},
		tasks:   &fakeTaskRepo{facts: map[string][]task.WageFact{}},
		sales:   &fakeContractRepo{facts: map[string][]contract.CommissionFact{}},
		ledger:  &fakeFinanceRepo{},
	}
	env.svc = &PayrollServiceImpl{
		payrollRepo:  env.payroll,
		staffRepo:    env.staff,
		taskRepo:     env.tasks,
		contractRepo: env.sales,
		financeRepo:  env.ledger,
		now:          time.Now,
	}
	return env
}

func (e *testEnv) addStaff(id, name string, baseSalary int64) {
	e.staff.staff = append(e.staff.staff, staff.Staff{
		ID:         id,
		Code:       "2024-0001",
		Name:       name,
		Role:       "Nhân viên",
		BaseSalary: baseSalary,
		Status:     staff.StatusActive,
	})
}

func (e *testEnv) openPeriod(month, year int) payroll.SalaryPeriod {
	start, end := payroll.PeriodBounds(month, year)
	p, _ := e.payroll.CreatePeriod(context.Background(), payroll.SalaryPeriod{
		Month:     month,
		Year:      year,
		StartDate: start,
		EndDate:   end,
		Status:    payroll.PeriodStatusOpen,
	})
	return p
}

func (e *testEnv) slipItems(slipID string) []payroll.SalaryItem {
	items, _ := e.payroll.ListItemsBySlip(context.Background(), slipID)
	return items
}

func (e *testEnv) slip(staffID, periodID string) payroll.SalarySlip {
	s, _ := e.payroll.GetSlipByStaffPeriod(context.Background(), staffID, periodID)
	return s
}
