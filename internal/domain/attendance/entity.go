package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/policy"
)

// Status is the final attendance classification for one employee-day.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half_day"
	// StatusExcused marks a weekend/holiday/approved-leave day without punches.
	// It is not counted as absence.
	StatusExcused Status = "excused"
	// StatusError marks a day the engine could not classify; it needs review
	// and carries no overtime or quota side effects.
	StatusError Status = "error"
)

// ShortLeaveWindow names which configured slot a punch gap fell into.
type ShortLeaveWindow string

const (
	WindowNone    ShortLeaveWindow = "none"
	WindowMorning ShortLeaveWindow = "morning"
	WindowEvening ShortLeaveWindow = "evening"
)

// PunchPair is the normalized time-clock input for one employee-day.
// The punch store is the source of truth; the engine only reads it.
type PunchPair struct {
	EmployeeID string
	Date       time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time
}

// DayOutcome is the classifier's verdict. It is replaced wholesale on
// recomputation, never patched.
type DayOutcome struct {
	Status              Status
	WorkingMinutes      int
	LateByMinutes       int
	HalfDay             bool
	ShortLeaveWindowHit ShortLeaveWindow
	QuotaConsumed       bool
	Notes               []string
}

// Record is the finalized engine output for one employee-day.
type Record struct {
	ID         string
	EmployeeID string
	Group      policy.Group
	Date       time.Time

	Outcome DayOutcome

	OvertimeMinutes          int
	OvertimeRequiresApproval bool

	// PolicyVersionID pins the record to the policy version active on Date,
	// so later policy edits never rewrite history implicitly.
	PolicyVersionID string

	ComputedAt time.Time
}

// Employee is the minimal roster row the engine needs: identity plus group
// (any per-employee group override is resolved upstream into Group).
type Employee struct {
	ID    string
	Name  string
	Group policy.Group
}
