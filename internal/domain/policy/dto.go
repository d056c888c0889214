package policy

import (
	"fmt"
	"time"
)

// CreateVersionRequest is the settings payload the admin UI submits.
// Times are "HH:MM" strings, matching the group working-hours screen.
// Structural validation runs via validator tags at the handler boundary;
// the cross-field invariants run in GroupPolicy.Validate after conversion.
type CreateVersionRequest struct {
	Group         string `json:"group" validate:"required,oneof=group_a group_b"`
	EffectiveDate string `json:"effective_date" validate:"required,datetime=2006-01-02"`

	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`

	LateArrival struct {
		GracePeriodUntil string `json:"grace_period_until" validate:"required,datetime=15:04"`
		HalfDayAfter     string `json:"half_day_after" validate:"required,datetime=15:04"`
		HalfDayBefore    string `json:"half_day_before" validate:"required,datetime=15:04"`
	} `json:"late_arrival_policy"`

	ShortLeave struct {
		MorningStart                string `json:"morning_start" validate:"required,datetime=15:04"`
		MorningEnd                  string `json:"morning_end" validate:"required,datetime=15:04"`
		EveningStart                string `json:"evening_start" validate:"required,datetime=15:04"`
		EveningEnd                  string `json:"evening_end" validate:"required,datetime=15:04"`
		MaxPerMonth                 int    `json:"max_per_month" validate:"gte=0"`
		PreApprovalRequired         bool   `json:"pre_approval_required"`
		MinimumWorkingHoursRequired bool   `json:"minimum_working_hours_required"`
	} `json:"short_leave_policy"`

	HalfDayRule struct {
		AppliesAfter             string `json:"applies_after" validate:"required,datetime=15:04"`
		AppliesBefore            string `json:"applies_before" validate:"required,datetime=15:04"`
		ShortLeaveExcusesHalfDay bool   `json:"short_leave_excuses_half_day"`
	} `json:"half_day_rule"`

	Overtime struct {
		NormalDay struct {
			MinHoursForOT       float64 `json:"min_hours_for_ot" validate:"gte=0"`
			WeekendFullOT       bool    `json:"weekend_full_ot"`
			PreApprovalRequired bool    `json:"pre_approval_required"`
		} `json:"normal_day"`
		Holiday struct {
			AllHoursAsOT bool `json:"all_hours_as_ot"`
		} `json:"holiday"`
	} `json:"overtime_policy"`
}

// ToVersion converts the request into a domain Version. Defaults are applied
// here, once, at the boundary; nothing downstream re-derives sub-objects.
func (r CreateVersionRequest) ToVersion() (Version, error) {
	group := Group(r.Group)
	switch group {
	case GroupA, GroupB:
	default:
		return Version{}, fmt.Errorf("%w: %q", ErrUnknownGroup, r.Group)
	}

	effective, err := time.Parse("2006-01-02", r.EffectiveDate)
	if err != nil {
		return Version{}, fmt.Errorf("invalid effective date: %w", err)
	}

	parse := func(dst *MinuteOfDay, s string) {
		if err != nil {
			return
		}
		var m MinuteOfDay
		m, err = ParseMinuteOfDay(s)
		*dst = m
	}

	p := GroupPolicy{Group: group}
	parse(&p.StandardStart, r.StartTime)
	parse(&p.StandardEnd, r.EndTime)
	parse(&p.LateArrival.GraceUntil, r.LateArrival.GracePeriodUntil)
	parse(&p.LateArrival.HalfDayAfter, r.LateArrival.HalfDayAfter)
	parse(&p.LateArrival.HalfDayBefore, r.LateArrival.HalfDayBefore)
	parse(&p.ShortLeave.MorningWindow.Start, r.ShortLeave.MorningStart)
	parse(&p.ShortLeave.MorningWindow.End, r.ShortLeave.MorningEnd)
	parse(&p.ShortLeave.EveningWindow.Start, r.ShortLeave.EveningStart)
	parse(&p.ShortLeave.EveningWindow.End, r.ShortLeave.EveningEnd)
	parse(&p.HalfDay.AppliesAfter, r.HalfDayRule.AppliesAfter)
	parse(&p.HalfDay.AppliesBefore, r.HalfDayRule.AppliesBefore)
	if err != nil {
		return Version{}, err
	}

	p.ShortLeave.MaxPerMonth = r.ShortLeave.MaxPerMonth
	p.ShortLeave.PreApprovalRequired = r.ShortLeave.PreApprovalRequired
	p.ShortLeave.MinimumWorkingHoursRequired = r.ShortLeave.MinimumWorkingHoursRequired
	p.HalfDay.ShortLeaveExcusesHalfDay = r.HalfDayRule.ShortLeaveExcusesHalfDay
	p.Overtime.NormalDay.MinHoursForOT = r.Overtime.NormalDay.MinHoursForOT
	p.Overtime.NormalDay.WeekendFullOT = r.Overtime.NormalDay.WeekendFullOT
	p.Overtime.NormalDay.PreApprovalRequired = r.Overtime.NormalDay.PreApprovalRequired
	p.Overtime.Holiday.AllHoursAsOT = r.Overtime.Holiday.AllHoursAsOT

	if err := p.Validate(); err != nil {
		return Version{}, err
	}

	return Version{
		Group:         group,
		EffectiveDate: effective,
		Policy:        p,
	}, nil
}

// VersionResponse is the API shape of a policy version.
type VersionResponse struct {
	ID            string `json:"id"`
	Group         string `json:"group"`
	EffectiveDate string `json:"effective_date"`

	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	RequiredMinutes int    `json:"required_minutes"`

	GracePeriodUntil string `json:"grace_period_until"`
	HalfDayAfter     string `json:"half_day_after"`
	HalfDayBefore    string `json:"half_day_before"`

	ShortLeaveMorning     string  `json:"short_leave_morning"`
	ShortLeaveEvening     string  `json:"short_leave_evening"`
	ShortLeaveMaxPerMonth int     `json:"short_leave_max_per_month"`
	MinHoursForOT         float64 `json:"min_hours_for_ot"`
	WeekendFullOT         bool    `json:"weekend_full_ot"`
	HolidayAllHoursAsOT   bool    `json:"holiday_all_hours_as_ot"`
}

// ToResponse maps a Version onto its API shape.
func (v Version) ToResponse() VersionResponse {
	p := v.Policy
	return VersionResponse{
		ID:                    v.ID,
		Group:                 string(v.Group),
		EffectiveDate:         v.EffectiveDate.Format("2006-01-02"),
		StartTime:             p.StandardStart.String(),
		EndTime:               p.StandardEnd.String(),
		RequiredMinutes:       p.RequiredMinutes(),
		GracePeriodUntil:      p.LateArrival.GraceUntil.String(),
		HalfDayAfter:          p.LateArrival.HalfDayAfter.String(),
		HalfDayBefore:         p.LateArrival.HalfDayBefore.String(),
		ShortLeaveMorning:     p.ShortLeave.MorningWindow.Start.String() + "-" + p.ShortLeave.MorningWindow.End.String(),
		ShortLeaveEvening:     p.ShortLeave.EveningWindow.Start.String() + "-" + p.ShortLeave.EveningWindow.End.String(),
		ShortLeaveMaxPerMonth: p.ShortLeave.MaxPerMonth,
		MinHoursForOT:         p.Overtime.NormalDay.MinHoursForOT,
		WeekendFullOT:         p.Overtime.NormalDay.WeekendFullOT,
		HolidayAllHoursAsOT:   p.Overtime.Holiday.AllHoursAsOT,
	}
}
