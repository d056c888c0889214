package attendance

import (
	"context"
	"time"
)

// Engine derives attendance records from punches, policies and the calendar.
type Engine interface {
	// ComputeDay classifies one employee-day and commits its quota effects.
	// Recomputing the same day first reverses any quota previously consumed
	// for that exact date, so re-runs never leak quota.
	ComputeDay(ctx context.Context, employeeID string, date time.Time) (Record, error)

	// ComputeRange computes every day in [from, to] in date order.
	// Per-day failures are embedded as StatusError records; they do not abort
	// the range.
	ComputeRange(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)

	// ComputeBatch runs ComputeRange for many employees in parallel.
	// Cancellation between employees leaves no partial quota state; an
	// in-flight employee-month is rolled back before the error returns.
	ComputeBatch(ctx context.Context, employeeIDs []string, from, to time.Time) (BatchResult, error)
}
