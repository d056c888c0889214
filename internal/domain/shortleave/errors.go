package shortleave

import "errors"

// Short-leave domain errors
var (
	ErrRequestNotFound   = errors.New("short leave request not found")
	ErrQuotaExhausted    = errors.New("monthly short leave quota exhausted")
	ErrOutsideWindow     = errors.New("requested times fall outside the configured window")
	ErrAlreadyProcessed  = errors.New("short leave request already approved or rejected")
	ErrDuplicateForDate  = errors.New("a short leave request already exists for this date")
)
