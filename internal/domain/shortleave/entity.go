package shortleave

import (
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/policy"
)

// Slot names which configured window a request targets.
type Slot string

const (
	SlotMorning Slot = "morning"
	SlotEvening Slot = "evening"
)

// RequestStatus is the approval state of a short-leave request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// Request is one pre-approval application for a quota-limited short leave.
// The engine only ever sees approved requests; the approval workflow itself
// is portal plumbing.
type Request struct {
	ID         string
	EmployeeID string
	Group      policy.Group
	Date       time.Time
	Slot       Slot
	StartTime  policy.MinuteOfDay
	EndTime    policy.MinuteOfDay
	Reason     string
	Status     RequestStatus
	DecidedBy  string
	CreatedAt  time.Time
}
