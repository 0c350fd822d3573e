package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/bellastudio/studio-backend-go/internal/domain/contract"
	"github.com/bellastudio/studio-backend-go/internal/pkg/database"
)

type contractRepository struct {
	db *database.DB
}

func NewContractRepository(db *database.DB) contract.ContractRepository {
	return &contractRepository{db: db}
}

// ListCommissionFacts returns one row per contract line item sold by the
// staff member inside the window. The commission percentage comes from the
// service catalog; line items whose service has no commission still count
// toward revenue, so they are returned with a zero percentage.
func (r *contractRepository) ListCommissionFacts(ctx context.Context, staffID string, from, to time.Time) ([]contract.CommissionFact, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ci.id, c.contract_code, COALESCE(s.name, ci.description, ''), c.signed_date,
			   ci.subtotal, COALESCE(s.commission_pct, 0)
		FROM contract_items ci
		JOIN contracts c ON c.id = ci.contract_id
		LEFT JOIN services s ON s.id = ci.service_id
		WHERE c.staff_id = $1
		  AND c.signed_date BETWEEN $2 AND $3
		ORDER BY c.signed_date, ci.id
	`

	rows, err := q.Query(ctx, query, staffID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list commission facts: %w", err)
	}
	defer rows.Close()

	var facts []contract.CommissionFact
	for rows.Next() {
		var f contract.CommissionFact
		if err := rows.Scan(&f.ContractItemID, &f.ContractCode, &f.ServiceName, &f.Date, &f.Subtotal, &f.CommissionPct); err != nil {
			return nil, fmt.Errorf("failed to scan commission fact: %w", err)
		}
		facts = append(facts, f)
	}

	return facts, rows.Err()
}
