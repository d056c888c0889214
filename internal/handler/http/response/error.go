package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/policy"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/quota"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/shortleave"
	"github.com/go-playground/validator/v10"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			details[fe.Field()] = "failed on the '" + fe.Tag() + "' rule"
		}
		ValidationError(w, details)
		return
	}

	switch {
	// Policy domain errors
	case errors.Is(err, policy.ErrPolicyNotFound):
		NotFound(w, "No policy version effective on the requested date")
	case errors.Is(err, policy.ErrUnknownGroup):
		BadRequest(w, "Unknown employee group", nil)
	case errors.Is(err, policy.ErrInvalidPolicy):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrMalformedPunch):
		BadRequest(w, "Checkout precedes check-in", nil)

	// Short-leave domain errors
	case errors.Is(err, shortleave.ErrRequestNotFound):
		NotFound(w, "Short leave request not found")
	case errors.Is(err, shortleave.ErrQuotaExhausted):
		BadRequest(w, "Monthly short leave quota exhausted", nil)
	case errors.Is(err, shortleave.ErrOutsideWindow):
		BadRequest(w, "Requested times fall outside the configured window", nil)
	case errors.Is(err, shortleave.ErrAlreadyProcessed):
		Conflict(w, "Short leave request already processed")
	case errors.Is(err, shortleave.ErrDuplicateForDate):
		Conflict(w, "A short leave request already exists for this date")

	// Quota domain errors
	case errors.Is(err, quota.ErrConflict):
		Conflict(w, "Concurrent quota update, please retry")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
