package shortleave

import (
	"context"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/quota"
)

// Service handles short-leave applications and their approval state.
type Service interface {
	// Submit validates the slot against the employee's group policy and the
	// monthly cap, then stores a pending request.
	Submit(ctx context.Context, req SubmitRequest) (Request, error)

	// Decide approves or rejects a pending request.
	Decide(ctx context.Context, req DecideRequest) (Request, error)

	ListPending(ctx context.Context) ([]Request, error)

	// MonthlyUsage returns the "N of maxPerMonth used" read model for the UI.
	MonthlyUsage(ctx context.Context, employeeID string, year int, month time.Month) (quota.Usage, error)
}
