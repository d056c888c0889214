package attendance

import (
	"context"
	"time"
)

// PunchRepository reads normalized punch pairs from the external punch store.
// Both timestamps may be nil when no data has arrived yet.
type PunchRepository interface {
	GetPunch(ctx context.Context, employeeID string, date time.Time) (PunchPair, error)
}

// LeaveRepository answers approved-leave questions. Leave approval workflow
// itself lives outside the engine.
type LeaveRepository interface {
	ApprovedLeaveCovering(ctx context.Context, employeeID string, date time.Time) (bool, error)
}

// EmployeeRepository lists the roster the batch driver iterates over.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
}

// RecordRepository persists finalized attendance records. Upsert replaces the
// record for an (employee, date) wholesale; recomputation never patches fields.
type RecordRepository interface {
	Upsert(ctx context.Context, rec Record) (Record, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Record, error)
	ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)
}
