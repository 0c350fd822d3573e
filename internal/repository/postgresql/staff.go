package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/bellastudio/studio-backend-go/internal/domain/staff"
	"github.com/bellastudio/studio-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type staffRepository struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) staff.StaffRepository {
	return &staffRepository{db: db}
}

const staffSelect = `
	SELECT id, code, name, role, phone, email, base_salary, status, start_date, created_at, updated_at
	FROM staff
`

func (r *staffRepository) GetByID(ctx context.Context, id string) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	var s staff.Staff
	err := q.QueryRow(ctx, staffSelect+` WHERE id = $1`, id).Scan(
		&s.ID, &s.Code, &s.Name, &s.Role, &s.Phone, &s.Email, &s.BaseSalary, &s.Status, &s.StartDate, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		return staff.Staff{}, fmt.Errorf("failed to get staff: %w", err)
	}

	return s, nil
}

func (r *staffRepository) ListActive(ctx context.Context) ([]staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, staffSelect+` WHERE status = $1 ORDER BY name`, staff.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	defer rows.Close()

	var result []staff.Staff
	for rows.Next() {
		var s staff.Staff
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.Role, &s.Phone, &s.Email, &s.BaseSalary, &s.Status, &s.StartDate, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		result = append(result, s)
	}

	return result, rows.Err()
}
