package calendar

import (
	"context"
	"time"
)

// HolidayRepository reads the holiday calendar maintained by the portal.
type HolidayRepository interface {
	// HolidaysFor returns every entry in the given month.
	HolidaysFor(ctx context.Context, year int, month time.Month) ([]HolidayEntry, error)

	// HolidaysOn returns every entry on a single date.
	HolidaysOn(ctx context.Context, date time.Time) ([]HolidayEntry, error)
}

// WeekendConfigRepository reads the UI-configurable weekend-day set.
type WeekendConfigRepository interface {
	WeekendDays(ctx context.Context) ([]time.Weekday, error)
}
