package task

import (
	"context"
	"time"
)

// TaskRepository reads wage facts for the payroll engine. Only tasks assigned
// to the staff member, due inside [from, to], and backed by a piece-wage
// configuration qualify.
type TaskRepository interface {
	ListWageFacts(ctx context.Context, staffID string, from, to time.Time) ([]WageFact, error)
}
