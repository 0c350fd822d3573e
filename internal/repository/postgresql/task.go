package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/bellastudio/studio-backend-go/internal/domain/task"
	"github.com/bellastudio/studio-backend-go/internal/pkg/database"
)

type taskRepository struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.TaskRepository {
	return &taskRepository{db: db}
}

// ListWageFacts resolves the joins once so the payroll engine consumes flat
// facts: the task, the customer and contract it belongs to, and the piece
// wage configured on the task's service template (or overridden per task).
// Tasks without a positive wage never reach payroll.
func (r *taskRepository) ListWageFacts(ctx context.Context, staffID string, from, to time.Time) ([]task.WageFact, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.name, COALESCE(cu.name, ''), COALESCE(c.contract_code, ''), t.due_date,
			   COALESCE(t.wage_override, st.work_salary, 0),
			   COALESCE(st.work_salary_source, '')
		FROM tasks t
		LEFT JOIN contracts c ON c.id = t.contract_id
		LEFT JOIN customers cu ON cu.id = c.customer_id
		LEFT JOIN service_tasks st ON st.id = t.service_task_id
		WHERE t.assignee_id = $1
		  AND t.due_date BETWEEN $2 AND $3
		  AND COALESCE(t.wage_override, st.work_salary, 0) > 0
		ORDER BY t.due_date, t.id
	`

	rows, err := q.Query(ctx, query, staffID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list wage facts: %w", err)
	}
	defer rows.Close()

	var facts []task.WageFact
	for rows.Next() {
		var f task.WageFact
		if err := rows.Scan(&f.TaskID, &f.TaskName, &f.CustomerName, &f.ContractCode, &f.DueDate, &f.Amount, &f.WageSource); err != nil {
			return nil, fmt.Errorf("failed to scan wage fact: %w", err)
		}
		facts = append(facts, f)
	}

	return facts, rows.Err()
}
