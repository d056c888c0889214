package calendar

import (
	"context"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/policy"
)

// Context answers calendar questions for a single (date, group) pair.
type Context interface {
	// FactFor resolves weekend and holiday status for the date as seen by the
	// given group. Failures are wrapped in ErrLookupFailed.
	FactFor(ctx context.Context, date time.Time, group policy.Group) (Fact, error)
}
