package response

import (
	"errors"
	"net/http"

	"github.com/bellastudio/studio-backend-go/internal/domain/payroll"
	"github.com/bellastudio/studio-backend-go/internal/domain/staff"
	"github.com/bellastudio/studio-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Payroll domain errors
	case errors.Is(err, payroll.ErrPeriodNotFound):
		NotFound(w, "Salary period not found")
	case errors.Is(err, payroll.ErrPreviousPeriodNotFound):
		NotFound(w, "Previous salary period not found")
	case errors.Is(err, payroll.ErrPeriodAlreadyExists):
		Conflict(w, "Salary period already exists")
	case errors.Is(err, payroll.ErrSlipNotFound):
		NotFound(w, "Salary slip not found")
	case errors.Is(err, payroll.ErrSlipAlreadyExists):
		Conflict(w, "Salary slip already exists for this staff and period")
	case errors.Is(err, payroll.ErrItemNotFound):
		NotFound(w, "Salary item not found")
	case errors.Is(err, payroll.ErrInvalidKPIRule):
		BadRequest(w, "Invalid KPI rule", nil)
	case errors.Is(err, payroll.ErrNothingToPay):
		BadRequest(w, "Slip has nothing left to pay", nil)
	case errors.Is(err, payroll.ErrStaffNotFound):
		NotFound(w, "Staff not found")

	// Staff domain errors
	case errors.Is(err, staff.ErrStaffNotFound):
		NotFound(w, "Staff not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
