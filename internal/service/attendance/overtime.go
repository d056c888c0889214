package attendance

import (
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/policy"
)

// ComputeOvertime derives overtime minutes and the approval flag from a
// classified outcome. Pure: never fails, never returns negative minutes.
//
// Day-kind precedence: holiday, then weekend, then normal day. Weekend and
// holiday overtime is auto-approved; only normal-day overtime can require
// pre-approval.
func ComputeOvertime(out attendance.DayOutcome, p policy.GroupPolicy, fact calendar.Fact) (minutes int, requiresApproval bool) {
	if out.Status == attendance.StatusError {
		return 0, false
	}

	if fact.Holiday != nil && p.Overtime.Holiday.AllHoursAsOT {
		return out.WorkingMinutes, false
	}

	if fact.IsWeekend && p.Overtime.NormalDay.WeekendFullOT {
		return out.WorkingMinutes, false
	}

	if fact.IsNonWorking() {
		// Non-working day whose policy grants no special overtime.
		return 0, false
	}

	// Normal day: overtime must be earned via a full qualifying day. A half
	// or absent day never accrues it, even when a long stay pushes raw
	// minutes past the threshold.
	if out.Status == attendance.StatusHalfDay || out.Status == attendance.StatusAbsent {
		return 0, false
	}
	threshold := int(p.Overtime.NormalDay.MinHoursForOT * 60)
	if out.WorkingMinutes < threshold {
		return 0, false
	}

	extra := out.WorkingMinutes - p.RequiredMinutes()
	if extra <= 0 {
		return 0, false
	}
	return extra, p.Overtime.NormalDay.PreApprovalRequired
}
