package policy

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/policy"
	"github.com/cmlabs-hris/attendance-engine-go/internal/fixtures"
	"github.com/cmlabs-hris/attendance-engine-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() policy.CreateVersionRequest {
	req := policy.CreateVersionRequest{
		Group:         "group_a",
		EffectiveDate: "2025-07-01",
		StartTime:     "08:30",
		EndTime:       "16:15",
	}
	req.LateArrival.GracePeriodUntil = "09:00"
	req.LateArrival.HalfDayAfter = "10:00"
	req.LateArrival.HalfDayBefore = "14:45"
	req.ShortLeave.MorningStart = "08:30"
	req.ShortLeave.MorningEnd = "10:00"
	req.ShortLeave.EveningStart = "14:45"
	req.ShortLeave.EveningEnd = "16:15"
	req.ShortLeave.MaxPerMonth = 2
	req.ShortLeave.PreApprovalRequired = true
	req.HalfDayRule.AppliesAfter = "10:00"
	req.HalfDayRule.AppliesBefore = "14:45"
	req.Overtime.NormalDay.MinHoursForOT = 7.75
	req.Overtime.NormalDay.WeekendFullOT = true
	req.Overtime.Holiday.AllHoursAsOT = true
	return req
}

func TestCreateVersionAndResolve(t *testing.T) {
	svc := NewService(memory.NewPolicyRepository())
	ctx := context.Background()

	v, err := svc.CreateVersion(ctx, validCreateRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, v.ID)
	assert.Equal(t, 465, v.Policy.RequiredMinutes())

	resolved, err := svc.Resolve(ctx, policy.GroupA, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, v.ID, resolved.ID)
}

func TestResolveIgnoresFutureVersions(t *testing.T) {
	repo := memory.NewPolicyRepository()
	svc := NewService(repo)
	ctx := context.Background()

	old := policy.Version{
		Group:         policy.GroupA,
		EffectiveDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Policy:        fixtures.DefaultGroupAPolicy(),
	}
	_, err := repo.AppendVersion(ctx, old)
	require.NoError(t, err)

	newer := fixtures.DefaultGroupAPolicy()
	newer.LateArrival.GraceUntil = policy.MustMinuteOfDay("09:15")
	_, err = repo.AppendVersion(ctx, policy.Version{
		Group:         policy.GroupA,
		EffectiveDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		Policy:        newer,
	})
	require.NoError(t, err)

	// A June date sees the January version, not the September edit, so
	// historical recomputation stays stable.
	resolved, err := svc.Resolve(ctx, policy.GroupA, time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, policy.MustMinuteOfDay("09:00"), resolved.Policy.LateArrival.GraceUntil)

	resolved, err = svc.Resolve(ctx, policy.GroupA, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, policy.MustMinuteOfDay("09:15"), resolved.Policy.LateArrival.GraceUntil)
}

func TestResolveNoEffectiveVersion(t *testing.T) {
	svc := NewService(memory.NewPolicyRepository())

	_, err := svc.Resolve(context.Background(), policy.GroupA, time.Now())
	assert.ErrorIs(t, err, policy.ErrPolicyNotFound)
}

func TestCreateVersionRejectsBadPayload(t *testing.T) {
	svc := NewService(memory.NewPolicyRepository())
	ctx := context.Background()

	bad := validCreateRequest()
	bad.StartTime = "25:99"
	_, err := svc.CreateVersion(ctx, bad)
	assert.Error(t, err)

	bad = validCreateRequest()
	bad.Group = "group_c"
	_, err = svc.CreateVersion(ctx, bad)
	assert.Error(t, err)
}

func TestCreateVersionRejectsInvertedThresholds(t *testing.T) {
	svc := NewService(memory.NewPolicyRepository())

	bad := validCreateRequest()
	bad.LateArrival.HalfDayAfter = "15:00"
	bad.LateArrival.HalfDayBefore = "10:00"
	_, err := svc.CreateVersion(context.Background(), bad)
	assert.ErrorIs(t, err, policy.ErrInvalidPolicy)
}

func TestListVersionsOrderedByEffectiveDate(t *testing.T) {
	repo := memory.NewPolicyRepository()
	svc := NewService(repo)
	ctx := context.Background()

	dates := []time.Time{
		time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		_, err := repo.AppendVersion(ctx, policy.Version{
			Group:         policy.GroupA,
			EffectiveDate: d,
			Policy:        fixtures.DefaultGroupAPolicy(),
		})
		require.NoError(t, err)
	}

	versions, err := svc.ListVersions(ctx, policy.GroupA)
	require.NoError(t, err)
	require.Len(t, versions, 3)
	assert.True(t, versions[0].EffectiveDate.Before(versions[1].EffectiveDate))
	assert.True(t, versions[1].EffectiveDate.Before(versions[2].EffectiveDate))
}
