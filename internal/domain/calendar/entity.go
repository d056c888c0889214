package calendar

import (
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/policy"
)

// HolidayType distinguishes the annual calendar from one-off special days.
type HolidayType string

const (
	HolidayAnnual  HolidayType = "annual"
	HolidaySpecial HolidayType = "special"
)

// HolidayEntry is one row of the holiday calendar. An empty ApplicableGroups
// slice means the holiday covers every group.
type HolidayEntry struct {
	ID               string
	Date             time.Time
	Type             HolidayType
	Name             string
	ApplicableGroups []policy.Group
}

// AppliesTo reports whether the entry covers the given group.
func (h HolidayEntry) AppliesTo(group policy.Group) bool {
	if len(h.ApplicableGroups) == 0 {
		return true
	}
	for _, g := range h.ApplicableGroups {
		if g == group {
			return true
		}
	}
	return false
}

// Fact is the calendar context for one date, resolved for one group.
type Fact struct {
	Date      time.Time
	IsWeekend bool
	Holiday   *HolidayEntry
}

// IsNonWorking reports whether the date is exempt from attendance for the group.
func (f Fact) IsNonWorking() bool {
	return f.IsWeekend || f.Holiday != nil
}
