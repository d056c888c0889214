package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/policy"
)

// DefaultWeekendDays is used when no weekend configuration has been saved.
var DefaultWeekendDays = []time.Weekday{time.Saturday, time.Sunday}

type ContextImpl struct {
	holidays calendar.HolidayRepository
	weekends calendar.WeekendConfigRepository
}

func NewContext(holidays calendar.HolidayRepository, weekends calendar.WeekendConfigRepository) calendar.Context {
	return &ContextImpl{holidays: holidays, weekends: weekends}
}

// FactFor implements calendar.Context.
func (c *ContextImpl) FactFor(ctx context.Context, date time.Time, group policy.Group) (calendar.Fact, error) {
	days, err := c.weekends.WeekendDays(ctx)
	if err != nil {
		return calendar.Fact{}, fmt.Errorf("%w: weekend config: %v", calendar.ErrLookupFailed, err)
	}
	if len(days) == 0 {
		days = DefaultWeekendDays
	}

	fact := calendar.Fact{Date: date}
	for _, d := range days {
		if date.Weekday() == d {
			fact.IsWeekend = true
			break
		}
	}

	entries, err := c.holidays.HolidaysOn(ctx, date)
	if err != nil {
		return calendar.Fact{}, fmt.Errorf("%w: holidays on %s: %v", calendar.ErrLookupFailed, date.Format("2006-01-02"), err)
	}
	fact.Holiday = pickHoliday(entries, group)

	return fact, nil
}

// pickHoliday selects the applicable entry with the narrowest group scope:
// an entry naming the group explicitly beats one covering all groups, so a
// date with overlapping entries never applies ambiguously.
func pickHoliday(entries []calendar.HolidayEntry, group policy.Group) *calendar.HolidayEntry {
	var best *calendar.HolidayEntry
	bestScope := -1
	for i := range entries {
		e := entries[i]
		if !e.AppliesTo(group) {
			continue
		}
		scope := len(e.ApplicableGroups)
		if scope == 0 {
			// covers everyone, weakest claim
			if best == nil {
				best = &entries[i]
				bestScope = 0
			}
			continue
		}
		if bestScope <= 0 || scope < bestScope {
			best = &entries[i]
			bestScope = scope
		}
	}
	return best
}
