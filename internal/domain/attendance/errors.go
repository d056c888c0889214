package attendance

import "errors"

// Attendance domain errors
var (
	// ErrMalformedPunch flags a checkout earlier than its check-in. The day is
	// marked StatusError with zero working minutes; nothing is silently flipped.
	ErrMalformedPunch = errors.New("checkout precedes check-in")

	ErrRecordNotFound   = errors.New("attendance record not found")
	ErrEmployeeNotFound = errors.New("employee not found")
)
