package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/policy"
)

// ClassifierInput carries everything classification needs, resolved eagerly
// by the engine. Classify never performs I/O.
type ClassifierInput struct {
	Punch  attendance.PunchPair
	Policy policy.GroupPolicy
	Fact   calendar.Fact

	// QuotaRemaining is the query-not-consume answer for the month: whether
	// countUsed < maxPerMonth at classification time.
	QuotaRemaining bool

	// PreApprovedSlot is the slot of an approved short-leave request covering
	// this date, or WindowNone. Only consulted when the policy requires
	// pre-approval.
	PreApprovedSlot attendance.ShortLeaveWindow

	// Location anchors clock-time thresholds onto punch timestamps.
	Location *time.Location
}

func (in ClassifierInput) minuteOf(t time.Time) policy.MinuteOfDay {
	local := t.In(in.loc())
	return policy.MinuteOfDay(local.Hour()*60 + local.Minute())
}

func (in ClassifierInput) loc() *time.Location {
	if in.Location != nil {
		return in.Location
	}
	return time.UTC
}

// Classify derives the day outcome for one punch pair. It is deterministic:
// same input, same outcome. The only failure mode is a malformed punch pair
// (checkout before check-in), surfaced as attendance.ErrMalformedPunch.
func Classify(in ClassifierInput) (attendance.DayOutcome, error) {
	out := attendance.DayOutcome{
		Status:              attendance.StatusAbsent,
		ShortLeaveWindowHit: attendance.WindowNone,
	}
	p := in.Policy

	if in.Punch.CheckIn == nil {
		if in.Fact.IsNonWorking() {
			out.Status = attendance.StatusExcused
			out.Notes = append(out.Notes, nonWorkingNote(in.Fact))
		} else {
			out.Notes = append(out.Notes, "no check-in recorded")
		}
		return out, nil
	}

	if in.Punch.CheckOut == nil {
		// An open pair is not credited; a forgotten checkout must not turn
		// into an unbounded working-time claim.
		out.Notes = append(out.Notes, "incomplete punch")
		return out, nil
	}

	if in.Punch.CheckOut.Before(*in.Punch.CheckIn) {
		return attendance.DayOutcome{}, attendance.ErrMalformedPunch
	}
	out.WorkingMinutes = int(in.Punch.CheckOut.Sub(*in.Punch.CheckIn).Minutes())

	// Weekend and holiday work skips the lateness machinery entirely; the
	// overtime calculator credits the hours.
	if in.Fact.IsNonWorking() {
		out.Status = attendance.StatusPresent
		out.Notes = append(out.Notes, nonWorkingNote(in.Fact)+" work")
		return out, nil
	}

	checkIn := in.minuteOf(*in.Punch.CheckIn)
	checkOut := in.minuteOf(*in.Punch.CheckOut)

	if checkIn > p.LateArrival.GraceUntil {
		out.LateByMinutes = max(0, int(checkIn-p.StandardStart))
	}

	// Arrival at or past the half-day-before threshold is too late to count
	// at all.
	tooLate := checkIn >= p.LateArrival.HalfDayBefore
	if tooLate {
		out.Notes = append(out.Notes, "arrival too late")
	}

	if checkIn > p.HalfDay.AppliesAfter || checkOut < p.HalfDay.AppliesBefore {
		out.HalfDay = true
	}

	out.ShortLeaveWindowHit = windowHit(p, checkIn, checkOut)

	// A short leave excuses the half day only when the policy says so and the
	// slot is usable (capacity left, pre-approval satisfied when required).
	// The working-minutes floor applies only under minimumWorkingHoursRequired.
	// Excusal never clears lateness.
	if out.HalfDay && out.ShortLeaveWindowHit != attendance.WindowNone &&
		p.HalfDay.ShortLeaveExcusesHalfDay &&
		in.QuotaRemaining && preApprovalSatisfied(p, in.PreApprovedSlot, out.ShortLeaveWindowHit) {
		allowance := slotMinutes(p, out.ShortLeaveWindowHit)
		if !p.ShortLeave.MinimumWorkingHoursRequired ||
			out.WorkingMinutes >= p.RequiredMinutes()-allowance {
			out.HalfDay = false
			out.Notes = append(out.Notes, "half day covered by short leave")
		}
	}

	// Final precedence: absent > half_day > late > present.
	switch {
	case tooLate:
		out.Status = attendance.StatusAbsent
	case out.HalfDay:
		out.Status = attendance.StatusHalfDay
	case out.LateByMinutes > 0:
		out.Status = attendance.StatusLate
		out.Notes = append(out.Notes, "arrived after grace period")
	default:
		out.Status = attendance.StatusPresent
	}

	return out, nil
}

// windowHit tests whether the punch gap at either end of the day fits
// entirely inside a configured short-leave slot. Arrivals within the grace
// period leave no gap that needs excusing.
func windowHit(p policy.GroupPolicy, checkIn, checkOut policy.MinuteOfDay) attendance.ShortLeaveWindow {
	if checkIn > p.LateArrival.GraceUntil &&
		p.ShortLeave.MorningWindow.Contains(p.StandardStart, checkIn) {
		return attendance.WindowMorning
	}
	if checkOut < p.StandardEnd &&
		p.ShortLeave.EveningWindow.Contains(checkOut, p.StandardEnd) {
		return attendance.WindowEvening
	}
	return attendance.WindowNone
}

func preApprovalSatisfied(p policy.GroupPolicy, approved, hit attendance.ShortLeaveWindow) bool {
	if !p.ShortLeave.PreApprovalRequired {
		return true
	}
	return approved == hit
}

func slotMinutes(p policy.GroupPolicy, w attendance.ShortLeaveWindow) int {
	switch w {
	case attendance.WindowMorning:
		return p.ShortLeave.MorningWindow.Minutes()
	case attendance.WindowEvening:
		return p.ShortLeave.EveningWindow.Minutes()
	default:
		return 0
	}
}

func nonWorkingNote(f calendar.Fact) string {
	if f.Holiday != nil {
		return "holiday"
	}
	return "weekend"
}
