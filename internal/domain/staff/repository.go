package staff

import "context"

// StaffRepository defines data access for staff members.
type StaffRepository interface {
	GetByID(ctx context.Context, id string) (Staff, error)
	ListActive(ctx context.Context) ([]Staff, error)
}
