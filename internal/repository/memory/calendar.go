package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/calendar"
	"github.com/google/uuid"
)

// HolidayRepository is an in-memory holiday calendar.
type HolidayRepository struct {
	mu      sync.RWMutex
	entries []calendar.HolidayEntry
}

func NewHolidayRepository() *HolidayRepository {
	return &HolidayRepository{}
}

// Add stores a holiday entry.
func (r *HolidayRepository) Add(e calendar.HolidayEntry) calendar.HolidayEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	r.entries = append(r.entries, e)
	return e
}

// HolidaysFor implements calendar.HolidayRepository.
func (r *HolidayRepository) HolidaysFor(_ context.Context, year int, month time.Month) ([]calendar.HolidayEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []calendar.HolidayEntry
	for _, e := range r.entries {
		if e.Date.Year() == year && e.Date.Month() == month {
			out = append(out, e)
		}
	}
	return out, nil
}

// HolidaysOn implements calendar.HolidayRepository.
func (r *HolidayRepository) HolidaysOn(_ context.Context, date time.Time) ([]calendar.HolidayEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []calendar.HolidayEntry
	for _, e := range r.entries {
		if sameDay(e.Date, date) {
			out = append(out, e)
		}
	}
	return out, nil
}

// WeekendConfigRepository is an in-memory weekend-day set.
type WeekendConfigRepository struct {
	mu   sync.RWMutex
	days []time.Weekday
}

func NewWeekendConfigRepository(days ...time.Weekday) *WeekendConfigRepository {
	return &WeekendConfigRepository{days: days}
}

// WeekendDays implements calendar.WeekendConfigRepository.
func (r *WeekendConfigRepository) WeekendDays(_ context.Context) ([]time.Weekday, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]time.Weekday, len(r.days))
	copy(out, r.days)
	return out, nil
}

// SetWeekendDays replaces the configured set.
func (r *WeekendConfigRepository) SetWeekendDays(days []time.Weekday) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.days = append([]time.Weekday(nil), days...)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
