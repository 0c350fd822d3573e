package postgresql

import (
	"context"
	"fmt"

	"github.com/bellastudio/studio-backend-go/internal/domain/finance"
	"github.com/bellastudio/studio-backend-go/internal/pkg/database"
)

type financeRepository struct {
	db *database.DB
}

func NewFinanceRepository(db *database.DB) finance.FinanceRepository {
	return &financeRepository{db: db}
}

func (r *financeRepository) CreateTransaction(ctx context.Context, tx finance.Transaction) (finance.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO transactions (id, type, main_category, category, amount, description, date, contract_id, staff_id, vendor)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, type, main_category, category, amount, description, date, contract_id, staff_id, vendor, created_at
	`

	var t finance.Transaction
	err := q.QueryRow(ctx, query,
		tx.ID, tx.Type, tx.MainCategory, tx.Category, tx.Amount, tx.Description, tx.Date, tx.ContractID, tx.StaffID, tx.Vendor,
	).Scan(
		&t.ID, &t.Type, &t.MainCategory, &t.Category, &t.Amount, &t.Description, &t.Date, &t.ContractID, &t.StaffID, &t.Vendor, &t.CreatedAt,
	)
	if err != nil {
		return finance.Transaction{}, fmt.Errorf("failed to create transaction: %w", err)
	}

	return t, nil
}
