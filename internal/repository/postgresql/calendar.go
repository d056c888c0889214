package postgresql

import (
	"context"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/policy"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) calendar.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

const holidaySelect = `
	SELECT id, holiday_date, holiday_type, name, applicable_groups
	FROM holidays
`

// HolidaysFor implements calendar.HolidayRepository.
func (r *holidayRepositoryImpl) HolidaysFor(ctx context.Context, year int, month time.Month) ([]calendar.HolidayEntry, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, holidaySelect+`
		WHERE EXTRACT(YEAR FROM holiday_date) = $1
		AND EXTRACT(MONTH FROM holiday_date) = $2
		ORDER BY holiday_date ASC
	`, year, int(month))
	if err != nil {
		return nil, err
	}
	return collectHolidays(rows)
}

// HolidaysOn implements calendar.HolidayRepository.
func (r *holidayRepositoryImpl) HolidaysOn(ctx context.Context, date time.Time) ([]calendar.HolidayEntry, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, holidaySelect+`
		WHERE holiday_date = $1
		ORDER BY id ASC
	`, date)
	if err != nil {
		return nil, err
	}
	return collectHolidays(rows)
}

func collectHolidays(rows pgx.Rows) ([]calendar.HolidayEntry, error) {
	defer rows.Close()

	entries := make([]calendar.HolidayEntry, 0)
	for rows.Next() {
		var entry calendar.HolidayEntry
		var holidayType string
		var groups []string
		if err := rows.Scan(&entry.ID, &entry.Date, &holidayType, &entry.Name, &groups); err != nil {
			return nil, err
		}
		entry.Type = calendar.HolidayType(holidayType)
		for _, g := range groups {
			entry.ApplicableGroups = append(entry.ApplicableGroups, policy.Group(g))
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

type weekendConfigRepositoryImpl struct {
	db *database.DB
}

func NewWeekendConfigRepository(db *database.DB) calendar.WeekendConfigRepository {
	return &weekendConfigRepositoryImpl{db: db}
}

// WeekendDays implements calendar.WeekendConfigRepository. Days are stored as
// integer weekday numbers (0 = Sunday) in a single settings row.
func (r *weekendConfigRepositoryImpl) WeekendDays(ctx context.Context) ([]time.Weekday, error) {
	q := GetQuerier(ctx, r.db)

	var raw []int
	err := q.QueryRow(ctx,
		`SELECT weekend_days FROM calendar_settings ORDER BY updated_at DESC LIMIT 1`,
	).Scan(&raw)
	if err != nil {
		return nil, err
	}

	days := make([]time.Weekday, 0, len(raw))
	for _, d := range raw {
		days = append(days, time.Weekday(d))
	}
	return days, nil
}
