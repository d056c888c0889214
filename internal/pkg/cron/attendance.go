package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
)

// AttendanceJobs finalizes attendance records after each working day closes.
type AttendanceJobs struct {
	engine       attendance.Engine
	loc          *time.Location
	finalizeHour int
}

func NewAttendanceJobs(engine attendance.Engine, loc *time.Location, finalizeHour int) *AttendanceJobs {
	return &AttendanceJobs{
		engine:       engine,
		loc:          loc,
		finalizeHour: finalizeHour,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("finalize_previous_day", 1*time.Hour, j.FinalizePreviousDay)
}

// FinalizePreviousDay recomputes yesterday for the whole active roster.
// The job ticks hourly but only does work during the configured local hour,
// so each day is finalized once.
func (j *AttendanceJobs) FinalizePreviousDay(ctx context.Context) error {
	now := time.Now().In(j.loc)
	if now.Hour() != j.finalizeHour {
		return nil
	}

	yesterday := now.AddDate(0, 0, -1)
	day := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, j.loc)

	slog.Info("Cron: Finalizing previous day", "date", day.Format("2006-01-02"))

	result, err := j.engine.ComputeBatch(ctx, nil, day, day)
	if err != nil {
		return fmt.Errorf("finalize %s: %w", day.Format("2006-01-02"), err)
	}

	slog.Info("Cron: Finalized previous day",
		"date", day.Format("2006-01-02"),
		"computed", result.Computed,
		"error_days", len(result.ErrorDays))
	return nil
}
