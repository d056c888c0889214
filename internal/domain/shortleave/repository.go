package shortleave

import (
	"context"
	"time"
)

// Repository stores short-leave requests.
type Repository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	Update(ctx context.Context, req Request) error
	ListByEmployeeMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]Request, error)
	ListPending(ctx context.Context) ([]Request, error)

	// ApprovedOn reports whether an approved request covers the employee-date,
	// and which slot it targets. The engine's pre-approval check reads this.
	ApprovedOn(ctx context.Context, employeeID string, date time.Time) (*Request, error)
}
