package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bellastudio/studio-backend-go/internal/domain/payroll"
	"github.com/bellastudio/studio-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== PERIODS ==========

func (r *payrollRepository) CreatePeriod(ctx context.Context, period payroll.SalaryPeriod) (payroll.SalaryPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_periods (month, year, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, month, year, start_date, end_date, status, created_at
	`

	var p payroll.SalaryPeriod
	err := q.QueryRow(ctx, query,
		period.Month, period.Year, period.StartDate, period.EndDate, period.Status,
	).Scan(
		&p.ID, &p.Month, &p.Year, &p.StartDate, &p.EndDate, &p.Status, &p.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_salary_period_month_year") {
			return payroll.SalaryPeriod{}, payroll.ErrPeriodAlreadyExists
		}
		return payroll.SalaryPeriod{}, fmt.Errorf("failed to create salary period: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) GetPeriodByID(ctx context.Context, id string) (payroll.SalaryPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, month, year, start_date, end_date, status, created_at
		FROM salary_periods
		WHERE id = $1
	`

	var p payroll.SalaryPeriod
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Month, &p.Year, &p.StartDate, &p.EndDate, &p.Status, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalaryPeriod{}, payroll.ErrPeriodNotFound
		}
		return payroll.SalaryPeriod{}, fmt.Errorf("failed to get salary period: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) GetPeriodByMonthYear(ctx context.Context, month, year int) (payroll.SalaryPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, month, year, start_date, end_date, status, created_at
		FROM salary_periods
		WHERE month = $1 AND year = $2
	`

	var p payroll.SalaryPeriod
	err := q.QueryRow(ctx, query, month, year).Scan(
		&p.ID, &p.Month, &p.Year, &p.StartDate, &p.EndDate, &p.Status, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalaryPeriod{}, payroll.ErrPeriodNotFound
		}
		return payroll.SalaryPeriod{}, fmt.Errorf("failed to get salary period: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) ListPeriods(ctx context.Context) ([]payroll.SalaryPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, month, year, start_date, end_date, status, created_at
		FROM salary_periods
		ORDER BY year DESC, month DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary periods: %w", err)
	}
	defer rows.Close()

	var periods []payroll.SalaryPeriod
	for rows.Next() {
		var p payroll.SalaryPeriod
		if err := rows.Scan(&p.ID, &p.Month, &p.Year, &p.StartDate, &p.EndDate, &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan salary period: %w", err)
		}
		periods = append(periods, p)
	}

	return periods, rows.Err()
}

// ========== SLIPS ==========

func (r *payrollRepository) CreateSlip(ctx context.Context, slip payroll.SalarySlip) (payroll.SalarySlip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_slips (staff_id, salary_period_id, total_earnings, total_deductions, net_pay, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, staff_id, salary_period_id, total_earnings, total_deductions, net_pay, note, created_at
	`

	var s payroll.SalarySlip
	err := q.QueryRow(ctx, query,
		slip.StaffID, slip.SalaryPeriodID, slip.TotalEarnings, slip.TotalDeductions, slip.NetPay, slip.Note,
	).Scan(
		&s.ID, &s.StaffID, &s.SalaryPeriodID, &s.TotalEarnings, &s.TotalDeductions, &s.NetPay, &s.Note, &s.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_salary_slip_staff_period") {
			return payroll.SalarySlip{}, payroll.ErrSlipAlreadyExists
		}
		return payroll.SalarySlip{}, fmt.Errorf("failed to create salary slip: %w", err)
	}

	return s, nil
}

const slipSelect = `
	SELECT ss.id, ss.staff_id, ss.salary_period_id, ss.total_earnings, ss.total_deductions,
		   ss.net_pay, ss.note, ss.created_at, st.name, st.code
	FROM salary_slips ss
	JOIN staff st ON st.id = ss.staff_id
`

func scanSlip(row pgx.Row) (payroll.SalarySlip, error) {
	var s payroll.SalarySlip
	err := row.Scan(
		&s.ID, &s.StaffID, &s.SalaryPeriodID, &s.TotalEarnings, &s.TotalDeductions,
		&s.NetPay, &s.Note, &s.CreatedAt, &s.StaffName, &s.StaffCode,
	)
	return s, err
}

func (r *payrollRepository) GetSlipByID(ctx context.Context, id string) (payroll.SalarySlip, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanSlip(q.QueryRow(ctx, slipSelect+` WHERE ss.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalarySlip{}, payroll.ErrSlipNotFound
		}
		return payroll.SalarySlip{}, fmt.Errorf("failed to get salary slip: %w", err)
	}
	return s, nil
}

func (r *payrollRepository) GetSlipByStaffPeriod(ctx context.Context, staffID, periodID string) (payroll.SalarySlip, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanSlip(q.QueryRow(ctx, slipSelect+` WHERE ss.staff_id = $1 AND ss.salary_period_id = $2`, staffID, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalarySlip{}, payroll.ErrSlipNotFound
		}
		return payroll.SalarySlip{}, fmt.Errorf("failed to get salary slip: %w", err)
	}
	return s, nil
}

func (r *payrollRepository) ListSlipsByPeriod(ctx context.Context, periodID string) ([]payroll.SalarySlip, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, slipSelect+` WHERE ss.salary_period_id = $1 ORDER BY st.name`, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary slips: %w", err)
	}
	defer rows.Close()

	var slips []payroll.SalarySlip
	for rows.Next() {
		s, err := scanSlip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary slip: %w", err)
		}
		slips = append(slips, s)
	}

	return slips, rows.Err()
}

func (r *payrollRepository) UpdateSlipTotals(ctx context.Context, slipID string, totals payroll.SlipTotals) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_slips
		SET total_earnings = $2, total_deductions = $3, net_pay = $4
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, slipID, totals.Earnings, totals.Deductions, totals.NetPay)
	if err != nil {
		return fmt.Errorf("failed to update slip totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrSlipNotFound
	}

	return nil
}

// ========== ITEMS ==========

func (r *payrollRepository) CreateItem(ctx context.Context, item payroll.SalaryItem) (payroll.SalaryItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_items (salary_slip_id, type, title, amount, source, ref_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, salary_slip_id, type, title, amount, source, ref_id, created_at
	`

	var i payroll.SalaryItem
	err := q.QueryRow(ctx, query,
		item.SalarySlipID, item.Type, item.Title, item.Amount, item.Source, item.RefID,
	).Scan(
		&i.ID, &i.SalarySlipID, &i.Type, &i.Title, &i.Amount, &i.Source, &i.RefID, &i.CreatedAt,
	)
	if err != nil {
		return payroll.SalaryItem{}, fmt.Errorf("failed to create salary item: %w", err)
	}

	return i, nil
}

func (r *payrollRepository) GetItemByID(ctx context.Context, id string) (payroll.SalaryItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, salary_slip_id, type, title, amount, source, ref_id, created_at
		FROM salary_items
		WHERE id = $1
	`

	var i payroll.SalaryItem
	err := q.QueryRow(ctx, query, id).Scan(
		&i.ID, &i.SalarySlipID, &i.Type, &i.Title, &i.Amount, &i.Source, &i.RefID, &i.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalaryItem{}, payroll.ErrItemNotFound
		}
		return payroll.SalaryItem{}, fmt.Errorf("failed to get salary item: %w", err)
	}

	return i, nil
}

func (r *payrollRepository) DeleteItem(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM salary_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete salary item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrItemNotFound
	}

	return nil
}

func (r *payrollRepository) ListItemsBySlip(ctx context.Context, slipID string) ([]payroll.SalaryItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, salary_slip_id, type, title, amount, source, ref_id, created_at
		FROM salary_items
		WHERE salary_slip_id = $1
		ORDER BY created_at, id
	`

	rows, err := q.Query(ctx, query, slipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary items: %w", err)
	}
	defer rows.Close()

	var items []payroll.SalaryItem
	for rows.Next() {
		var i payroll.SalaryItem
		if err := rows.Scan(&i.ID, &i.SalarySlipID, &i.Type, &i.Title, &i.Amount, &i.Source, &i.RefID, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan salary item: %w", err)
		}
		items = append(items, i)
	}

	return items, rows.Err()
}

func (r *payrollRepository) ListItemsByPeriod(ctx context.Context, periodID string) ([]payroll.SalaryItem, error) {
	return r.listPeriodItems(ctx, periodID, "")
}

func (r *payrollRepository) ListAllowanceItemsByPeriod(ctx context.Context, periodID string) ([]payroll.SalaryItem, error) {
	return r.listPeriodItems(ctx, periodID, string(payroll.ItemTypeAllowance))
}

func (r *payrollRepository) listPeriodItems(ctx context.Context, periodID, itemType string) ([]payroll.SalaryItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT si.id, si.salary_slip_id, si.type, si.title, si.amount, si.source, si.ref_id, si.created_at,
			   ss.staff_id
		FROM salary_items si
		JOIN salary_slips ss ON ss.id = si.salary_slip_id
		WHERE ss.salary_period_id = $1
	`
	args := []any{periodID}
	if itemType != "" {
		query += ` AND si.type = $2`
		args = append(args, itemType)
	}
	query += ` ORDER BY si.created_at, si.id`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary items: %w", err)
	}
	defer rows.Close()

	var items []payroll.SalaryItem
	for rows.Next() {
		var i payroll.SalaryItem
		if err := rows.Scan(&i.ID, &i.SalarySlipID, &i.Type, &i.Title, &i.Amount, &i.Source, &i.RefID, &i.CreatedAt, &i.StaffID); err != nil {
			return nil, fmt.Errorf("failed to scan salary item: %w", err)
		}
		items = append(items, i)
	}

	return items, rows.Err()
}

// ========== RECONCILIATION ==========

// ApplySlipSync applies one reconciliation outcome atomically: stale items
// go, fresh ones come in, resolved ones are rewritten, and the slip totals
// land in the same transaction.
func (r *payrollRepository) ApplySlipSync(ctx context.Context, sync payroll.SlipSync) error {
	return WithTransaction(ctx, r.db, func(txCtx context.Context, _ pgx.Tx) error {
		for _, id := range sync.DeleteIDs {
			if err := r.DeleteItem(txCtx, id); err != nil {
				return err
			}
		}

		for _, u := range sync.Updates {
			q := GetQuerier(txCtx, r.db)
			tag, err := q.Exec(txCtx, `UPDATE salary_items SET title = $2, amount = $3 WHERE id = $1`, u.ID, u.Title, u.Amount)
			if err != nil {
				return fmt.Errorf("failed to update salary item: %w", err)
			}
			if tag.RowsAffected() == 0 {
				return payroll.ErrItemNotFound
			}
		}

		for _, item := range sync.Inserts {
			if _, err := r.CreateItem(txCtx, item); err != nil {
				return err
			}
		}

		return r.UpdateSlipTotals(txCtx, sync.SlipID, sync.Totals)
	})
}
