// Package fixtures holds the stock policy configuration both employee groups
// start from. Deployments append their own versions on top; these rows only
// seed an empty store.
package fixtures

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/policy"
)

// DefaultGroupAPolicy is the office cohort: 08:30 to 16:15.
func DefaultGroupAPolicy() policy.GroupPolicy {
	return policy.GroupPolicy{
		Group:         policy.GroupA,
		StandardStart: policy.MustMinuteOfDay("08:30"),
		StandardEnd:   policy.MustMinuteOfDay("16:15"),
		LateArrival: policy.LateArrivalRule{
			GraceUntil:    policy.MustMinuteOfDay("09:00"),
			HalfDayAfter:  policy.MustMinuteOfDay("10:00"),
			HalfDayBefore: policy.MustMinuteOfDay("14:45"),
		},
		ShortLeave: policy.ShortLeaveRule{
			MorningWindow: policy.Window{
				Start: policy.MustMinuteOfDay("08:30"),
				End:   policy.MustMinuteOfDay("10:00"),
			},
			EveningWindow: policy.Window{
				Start: policy.MustMinuteOfDay("14:45"),
				End:   policy.MustMinuteOfDay("16:15"),
			},
			MaxPerMonth:                 2,
			PreApprovalRequired:         true,
			MinimumWorkingHoursRequired: true,
		},
		HalfDay: policy.HalfDayRule{
			AppliesAfter:             policy.MustMinuteOfDay("10:00"),
			AppliesBefore:            policy.MustMinuteOfDay("14:45"),
			ShortLeaveExcusesHalfDay: false,
		},
		Overtime: policy.OvertimeRule{
			NormalDay: policy.NormalDayOvertime{
				MinHoursForOT:       7.75,
				WeekendFullOT:       true,
				PreApprovalRequired: true,
			},
			Holiday: policy.HolidayOvertime{AllHoursAsOT: true},
		},
	}
}

// DefaultGroupBPolicy is the field cohort: 08:00 to 16:45.
func DefaultGroupBPolicy() policy.GroupPolicy {
	return policy.GroupPolicy{
		Group:         policy.GroupB,
		StandardStart: policy.MustMinuteOfDay("08:00"),
		StandardEnd:   policy.MustMinuteOfDay("16:45"),
		LateArrival: policy.LateArrivalRule{
			GraceUntil:    policy.MustMinuteOfDay("08:15"),
			HalfDayAfter:  policy.MustMinuteOfDay("09:30"),
			HalfDayBefore: policy.MustMinuteOfDay("15:15"),
		},
		ShortLeave: policy.ShortLeaveRule{
			MorningWindow: policy.Window{
				Start: policy.MustMinuteOfDay("08:00"),
				End:   policy.MustMinuteOfDay("09:30"),
			},
			EveningWindow: policy.Window{
				Start: policy.MustMinuteOfDay("15:15"),
				End:   policy.MustMinuteOfDay("16:45"),
			},
			MaxPerMonth:                 2,
			PreApprovalRequired:         true,
			MinimumWorkingHoursRequired: true,
		},
		HalfDay: policy.HalfDayRule{
			AppliesAfter:             policy.MustMinuteOfDay("09:30"),
			AppliesBefore:            policy.MustMinuteOfDay("15:15"),
			ShortLeaveExcusesHalfDay: true,
		},
		Overtime: policy.OvertimeRule{
			NormalDay: policy.NormalDayOvertime{
				MinHoursForOT:       8.75,
				WeekendFullOT:       true,
				PreApprovalRequired: true,
			},
			Holiday: policy.HolidayOvertime{AllHoursAsOT: true},
		},
	}
}

// SeedDefaultPolicies appends the stock version for any group that has no
// version effective today. Calling it on a populated store is a no-op.
func SeedDefaultPolicies(ctx context.Context, repo policy.Repository, effectiveDate time.Time) error {
	defaults := []policy.GroupPolicy{DefaultGroupAPolicy(), DefaultGroupBPolicy()}

	for _, p := range defaults {
		_, err := repo.LatestEffective(ctx, p.Group, effectiveDate)
		if err == nil {
			continue
		}
		if !errors.Is(err, policy.ErrPolicyNotFound) {
			return err
		}
		if _, err := repo.AppendVersion(ctx, policy.Version{
			Group:         p.Group,
			EffectiveDate: effectiveDate,
			Policy:        p,
		}); err != nil {
			return err
		}
	}
	return nil
}
