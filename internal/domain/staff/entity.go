package staff

import "time"

// Status enum
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// Staff - studio staff member. BaseSalary is integer VND and feeds the HARD
// item injected by payroll sync.
type Staff struct {
	ID         string
	Code       string
	Name       string
	Role       string
	Phone      *string
	Email      *string
	BaseSalary int64
	Status     Status
	StartDate  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
