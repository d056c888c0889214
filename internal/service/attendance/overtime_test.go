package attendance

import (
	"testing"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-engine-go/internal/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func present(minutes int) attendance.DayOutcome {
	return attendance.DayOutcome{Status: attendance.StatusPresent, WorkingMinutes: minutes}
}

func TestOvertimeNormalDayBeyondThreshold(t *testing.T) {
	// 08:30 to 17:00 is 510 minutes against a 465-minute day.
	minutes, approval := ComputeOvertime(present(510), fixtures.DefaultGroupAPolicy(), workingDay())

	assert.Equal(t, 45, minutes)
	assert.True(t, approval)
}

func TestOvertimeBelowQualifyingThreshold(t *testing.T) {
	minutes, _ := ComputeOvertime(present(460), fixtures.DefaultGroupAPolicy(), workingDay())
	assert.Equal(t, 0, minutes)
}

func TestOvertimeExactRequiredDay(t *testing.T) {
	// Meeting the threshold exactly earns zero extra minutes, never negative.
	minutes, approval := ComputeOvertime(present(465), fixtures.DefaultGroupAPolicy(), workingDay())

	assert.Equal(t, 0, minutes)
	assert.False(t, approval)
}

func TestOvertimeWeekendFullCredit(t *testing.T) {
	fact := calendar.Fact{Date: testDay, IsWeekend: true}
	minutes, approval := ComputeOvertime(present(300), fixtures.DefaultGroupAPolicy(), fact)

	assert.Equal(t, 300, minutes)
	assert.False(t, approval)
}

func TestOvertimeWeekendWithoutFullOT(t *testing.T) {
	pol := fixtures.DefaultGroupAPolicy()
	pol.Overtime.NormalDay.WeekendFullOT = false

	fact := calendar.Fact{Date: testDay, IsWeekend: true}
	minutes, _ := ComputeOvertime(present(300), pol, fact)

	assert.Equal(t, 0, minutes)
}

func TestOvertimeHolidayAllHours(t *testing.T) {
	fact := calendar.Fact{Date: testDay, Holiday: &calendar.HolidayEntry{Name: "Poya"}}
	minutes, approval := ComputeOvertime(present(240), fixtures.DefaultGroupAPolicy(), fact)

	assert.Equal(t, 240, minutes)
	assert.False(t, approval)
}

func TestOvertimeHolidayBeatsWeekend(t *testing.T) {
	pol := fixtures.DefaultGroupAPolicy()
	pol.Overtime.NormalDay.WeekendFullOT = false

	fact := calendar.Fact{
		Date:      testDay,
		IsWeekend: true,
		Holiday:   &calendar.HolidayEntry{Name: "Poya"},
	}
	minutes, _ := ComputeOvertime(present(200), pol, fact)

	assert.Equal(t, 200, minutes)
}

func TestOvertimeHalfDayEarnsNothing(t *testing.T) {
	// 495 minutes clears the 465-minute threshold, but a half day never
	// accrues overtime.
	out := attendance.DayOutcome{Status: attendance.StatusHalfDay, WorkingMinutes: 495}
	minutes, approval := ComputeOvertime(out, fixtures.DefaultGroupAPolicy(), workingDay())

	assert.Equal(t, 0, minutes)
	assert.False(t, approval)
}

func TestOvertimeAbsentDayEarnsNothing(t *testing.T) {
	out := attendance.DayOutcome{Status: attendance.StatusAbsent, WorkingMinutes: 480}
	minutes, _ := ComputeOvertime(out, fixtures.DefaultGroupAPolicy(), workingDay())

	assert.Equal(t, 0, minutes)
}

func TestOvertimeLateArrivalLongStay(t *testing.T) {
	// Arriving at 10:15 makes the day a half day; staying until 18:30 puts
	// 495 raw minutes on the clock, which must still earn nothing.
	out, err := Classify(ClassifierInput{
		Punch:          punchAt(t, "10:15", "18:30"),
		Policy:         fixtures.DefaultGroupAPolicy(),
		Fact:           workingDay(),
		QuotaRemaining: true,
	})
	require.NoError(t, err)
	require.Equal(t, attendance.StatusHalfDay, out.Status)
	require.Equal(t, 495, out.WorkingMinutes)

	minutes, approval := ComputeOvertime(out, fixtures.DefaultGroupAPolicy(), workingDay())
	assert.Equal(t, 0, minutes)
	assert.False(t, approval)
}

func TestOvertimeErrorDayEarnsNothing(t *testing.T) {
	out := attendance.DayOutcome{Status: attendance.StatusError, WorkingMinutes: 900}
	minutes, approval := ComputeOvertime(out, fixtures.DefaultGroupAPolicy(), workingDay())

	assert.Equal(t, 0, minutes)
	assert.False(t, approval)
}

func TestOvertimeGroupBThreshold(t *testing.T) {
	// Group B needs 8.75 hours before any overtime accrues.
	minutes, _ := ComputeOvertime(present(520), fixtures.DefaultGroupBPolicy(), workingDay())
	assert.Equal(t, 0, minutes)

	minutes, approval := ComputeOvertime(present(555), fixtures.DefaultGroupBPolicy(), workingDay())
	assert.Equal(t, 30, minutes)
	assert.True(t, approval)
}
