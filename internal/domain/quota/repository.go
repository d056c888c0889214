package quota

import "context"

// Ledger is the per-employee, per-month short-leave counter.
//
// TryConsume and Release must be atomic and serialized per (employee, month)
// key; calls for different employees may proceed concurrently. The engine
// guarantees it consumes at most once per employee-date and releases before
// any recomputation, so the ledger itself never needs per-date bookkeeping.
type Ledger interface {
	// TryConsume increments the counter only while countUsed < cap.
	// Returns false, without mutating state, once the cap is reached.
	TryConsume(ctx context.Context, employeeID string, ym YearMonth, cap int) (bool, error)

	// Release decrements the counter, failing with ErrNegativeRelease if the
	// counter is already zero.
	Release(ctx context.Context, employeeID string, ym YearMonth) error

	// CountUsed reads the current counter; missing entries read as zero.
	CountUsed(ctx context.Context, employeeID string, ym YearMonth) (int, error)
}
