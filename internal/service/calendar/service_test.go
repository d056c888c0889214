package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/policy"
	"github.com/cmlabs-hris/attendance-engine-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-06-07 is a Saturday, 2025-06-04 a Wednesday.
var (
	saturday  = time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
	wednesday = time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
)

func TestFactForDefaultWeekend(t *testing.T) {
	ctx := NewContext(memory.NewHolidayRepository(), memory.NewWeekendConfigRepository())

	fact, err := ctx.FactFor(context.Background(), saturday, policy.GroupA)
	require.NoError(t, err)
	assert.True(t, fact.IsWeekend)
	assert.True(t, fact.IsNonWorking())

	fact, err = ctx.FactFor(context.Background(), wednesday, policy.GroupA)
	require.NoError(t, err)
	assert.False(t, fact.IsWeekend)
	assert.False(t, fact.IsNonWorking())
}

func TestFactForConfiguredWeekend(t *testing.T) {
	// A Friday-Saturday weekend configuration.
	weekends := memory.NewWeekendConfigRepository(time.Friday, time.Saturday)
	ctx := NewContext(memory.NewHolidayRepository(), weekends)

	sunday := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)
	fact, err := ctx.FactFor(context.Background(), sunday, policy.GroupA)
	require.NoError(t, err)
	assert.False(t, fact.IsWeekend)

	friday := time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)
	fact, err = ctx.FactFor(context.Background(), friday, policy.GroupA)
	require.NoError(t, err)
	assert.True(t, fact.IsWeekend)
}

func TestFactForHoliday(t *testing.T) {
	holidays := memory.NewHolidayRepository()
	holidays.Add(calendar.HolidayEntry{Date: wednesday, Type: calendar.HolidayAnnual, Name: "Poson Poya"})
	ctx := NewContext(holidays, memory.NewWeekendConfigRepository())

	fact, err := ctx.FactFor(context.Background(), wednesday, policy.GroupA)
	require.NoError(t, err)
	require.NotNil(t, fact.Holiday)
	assert.Equal(t, "Poson Poya", fact.Holiday.Name)
	assert.True(t, fact.IsNonWorking())
}

func TestFactForGroupScopedHoliday(t *testing.T) {
	holidays := memory.NewHolidayRepository()
	holidays.Add(calendar.HolidayEntry{
		Date:             wednesday,
		Type:             calendar.HolidaySpecial,
		Name:             "Field Shutdown",
		ApplicableGroups: []policy.Group{policy.GroupB},
	})
	ctx := NewContext(holidays, memory.NewWeekendConfigRepository())

	factA, err := ctx.FactFor(context.Background(), wednesday, policy.GroupA)
	require.NoError(t, err)
	assert.Nil(t, factA.Holiday)

	factB, err := ctx.FactFor(context.Background(), wednesday, policy.GroupB)
	require.NoError(t, err)
	require.NotNil(t, factB.Holiday)
	assert.Equal(t, "Field Shutdown", factB.Holiday.Name)
}

func TestFactForNarrowestHolidayWins(t *testing.T) {
	holidays := memory.NewHolidayRepository()
	holidays.Add(calendar.HolidayEntry{Date: wednesday, Type: calendar.HolidayAnnual, Name: "All Groups"})
	holidays.Add(calendar.HolidayEntry{
		Date:             wednesday,
		Type:             calendar.HolidaySpecial,
		Name:             "Group B Only",
		ApplicableGroups: []policy.Group{policy.GroupB},
	})
	ctx := NewContext(holidays, memory.NewWeekendConfigRepository())

	factB, err := ctx.FactFor(context.Background(), wednesday, policy.GroupB)
	require.NoError(t, err)
	require.NotNil(t, factB.Holiday)
	assert.Equal(t, "Group B Only", factB.Holiday.Name)

	factA, err := ctx.FactFor(context.Background(), wednesday, policy.GroupA)
	require.NoError(t, err)
	require.NotNil(t, factA.Holiday)
	assert.Equal(t, "All Groups", factA.Holiday.Name)
}
