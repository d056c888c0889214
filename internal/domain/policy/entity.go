package policy

import (
	"fmt"
	"time"
)

// Group identifies an employee cohort with its own working-hours policy.
type Group string

const (
	GroupA Group = "group_a"
	GroupB Group = "group_b"
)

// MinuteOfDay is a clock time expressed as minutes since midnight.
// Punch comparisons are done on this type so a policy edit never depends
// on the wall-clock date the punch was recorded on.
type MinuteOfDay int

// ParseMinuteOfDay parses "HH:MM" into a MinuteOfDay.
func ParseMinuteOfDay(s string) (MinuteOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return MinuteOfDay(t.Hour()*60 + t.Minute()), nil
}

// MustMinuteOfDay is ParseMinuteOfDay for trusted literals (fixtures, tests).
func MustMinuteOfDay(s string) MinuteOfDay {
	m, err := ParseMinuteOfDay(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m MinuteOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// At anchors the clock time onto a calendar date in the given location.
func (m MinuteOfDay) At(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), int(m)/60, int(m)%60, 0, 0, loc)
}

// Window is a half-open-free inclusive clock-time range, e.g. a short-leave slot.
type Window struct {
	Start MinuteOfDay
	End   MinuteOfDay
}

// Contains reports whether [start, end] lies entirely inside the window.
func (w Window) Contains(start, end MinuteOfDay) bool {
	return start >= w.Start && end <= w.End
}

// Minutes is the window length.
func (w Window) Minutes() int {
	return int(w.End - w.Start)
}

// LateArrivalRule governs grace periods and the half-day arrival thresholds.
type LateArrivalRule struct {
	GraceUntil    MinuteOfDay
	HalfDayAfter  MinuteOfDay
	HalfDayBefore MinuteOfDay
}

// ShortLeaveRule bounds the quota-limited short-leave slots.
type ShortLeaveRule struct {
	MorningWindow               Window
	EveningWindow               Window
	MaxPerMonth                 int
	PreApprovalRequired         bool
	MinimumWorkingHoursRequired bool
}

// HalfDayRule decides when presence collapses to a half day.
type HalfDayRule struct {
	AppliesAfter             MinuteOfDay
	AppliesBefore            MinuteOfDay
	ShortLeaveExcusesHalfDay bool
}

// NormalDayOvertime is the overtime rule for ordinary working days.
type NormalDayOvertime struct {
	MinHoursForOT       float64
	WeekendFullOT       bool
	PreApprovalRequired bool
}

// HolidayOvertime is the overtime rule for holidays.
type HolidayOvertime struct {
	AllHoursAsOT bool
}

// OvertimeRule groups the day-kind overtime policies.
type OvertimeRule struct {
	NormalDay NormalDayOvertime
	Holiday   HolidayOvertime
}

// GroupPolicy is one immutable policy version for a group. Edits never mutate
// a version in place; they append a new version with a later effective date.
type GroupPolicy struct {
	Group         Group
	StandardStart MinuteOfDay
	StandardEnd   MinuteOfDay
	LateArrival   LateArrivalRule
	ShortLeave    ShortLeaveRule
	HalfDay       HalfDayRule
	Overtime      OvertimeRule
}

// RequiredMinutes is the full working day length.
func (p GroupPolicy) RequiredMinutes() int {
	return int(p.StandardEnd - p.StandardStart)
}

// Version is a GroupPolicy plus the date it took effect.
type Version struct {
	ID            string
	Group         Group
	EffectiveDate time.Time
	Policy        GroupPolicy
	CreatedAt     time.Time
}

// Validate enforces the structural invariants a policy version must hold
// before it is accepted at the ingestion boundary.
func (p GroupPolicy) Validate() error {
	if p.StandardEnd <= p.StandardStart {
		return fmt.Errorf("%w: standard end %s not after start %s", ErrInvalidPolicy, p.StandardEnd, p.StandardStart)
	}
	la := p.LateArrival
	if !(la.GraceUntil <= la.HalfDayAfter && la.HalfDayAfter <= la.HalfDayBefore && la.HalfDayBefore <= p.StandardEnd) {
		return fmt.Errorf("%w: late-arrival thresholds out of order", ErrInvalidPolicy)
	}
	sl := p.ShortLeave
	if sl.MorningWindow.End > sl.EveningWindow.Start {
		return fmt.Errorf("%w: short-leave windows overlap", ErrInvalidPolicy)
	}
	if sl.MorningWindow.Start > sl.MorningWindow.End || sl.EveningWindow.Start > sl.EveningWindow.End {
		return fmt.Errorf("%w: short-leave window inverted", ErrInvalidPolicy)
	}
	if sl.MaxPerMonth < 0 {
		return fmt.Errorf("%w: negative short-leave cap", ErrInvalidPolicy)
	}
	if p.Overtime.NormalDay.MinHoursForOT < 0 {
		return fmt.Errorf("%w: negative overtime threshold", ErrInvalidPolicy)
	}
	return nil
}
