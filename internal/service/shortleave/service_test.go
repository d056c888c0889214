package shortleave

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/quota"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/shortleave"
	"github.com/cmlabs-hris/attendance-engine-go/internal/fixtures"
	"github.com/cmlabs-hris/attendance-engine-go/internal/repository/memory"
	policyService "github.com/cmlabs-hris/attendance-engine-go/internal/service/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	svc      shortleave.Service
	requests *memory.ShortLeaveRepository
	ledger   *memory.QuotaLedger
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	policyRepo := memory.NewPolicyRepository()
	seedDate := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, fixtures.SeedDefaultPolicies(context.Background(), policyRepo, seedDate))

	f := &serviceFixture{
		requests: memory.NewShortLeaveRepository(),
		ledger:   memory.NewQuotaLedger(),
	}
	employees := memory.NewEmployeeRepository(
		attendance.Employee{ID: "emp-a", Name: "Amara", Group: "group_a"},
	)
	f.svc = NewService(f.requests, employees, policyService.NewService(policyRepo), f.ledger)
	return f
}

func morningRequest() shortleave.SubmitRequest {
	return shortleave.SubmitRequest{
		EmployeeID: "emp-a",
		Date:       "2025-06-04",
		Slot:       "morning",
		StartTime:  "08:30",
		EndTime:    "09:30",
		Reason:     "bank errand",
	}
}

func TestSubmitCreatesPendingRequest(t *testing.T) {
	f := newServiceFixture(t)

	req, err := f.svc.Submit(context.Background(), morningRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, req.ID)
	assert.Equal(t, shortleave.StatusPending, req.Status)
	assert.Equal(t, shortleave.SlotMorning, req.Slot)
}

func TestSubmitRejectsTimesOutsideWindow(t *testing.T) {
	f := newServiceFixture(t)

	// Group A's morning window closes at 10:00.
	bad := morningRequest()
	bad.StartTime = "09:30"
	bad.EndTime = "10:30"

	_, err := f.svc.Submit(context.Background(), bad)
	assert.ErrorIs(t, err, shortleave.ErrOutsideWindow)
}

func TestSubmitRejectsInvertedTimes(t *testing.T) {
	f := newServiceFixture(t)

	bad := morningRequest()
	bad.StartTime = "09:30"
	bad.EndTime = "09:00"

	_, err := f.svc.Submit(context.Background(), bad)
	assert.ErrorIs(t, err, shortleave.ErrOutsideWindow)
}

func TestSubmitRejectsDuplicateApprovedDate(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	first, err := f.svc.Submit(ctx, morningRequest())
	require.NoError(t, err)
	_, err = f.svc.Decide(ctx, shortleave.DecideRequest{ID: first.ID, Approve: true, DecidedBy: "mgr-1"})
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, morningRequest())
	assert.ErrorIs(t, err, shortleave.ErrDuplicateForDate)
}

func TestSubmitRejectsWhenQuotaExhausted(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	ym := quota.YearMonth{Year: 2025, Month: 6}
	for i := 0; i < 2; i++ {
		ok, err := f.ledger.TryConsume(ctx, "emp-a", ym, 2)
		require.NoError(t, err)
		require.True(t, ok)
	}

	_, err := f.svc.Submit(ctx, morningRequest())
	assert.ErrorIs(t, err, shortleave.ErrQuotaExhausted)
}

func TestDecideApproveAndReject(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	submitted, err := f.svc.Submit(ctx, morningRequest())
	require.NoError(t, err)

	approved, err := f.svc.Decide(ctx, shortleave.DecideRequest{ID: submitted.ID, Approve: true, DecidedBy: "mgr-1"})
	require.NoError(t, err)
	assert.Equal(t, shortleave.StatusApproved, approved.Status)
	assert.Equal(t, "mgr-1", approved.DecidedBy)

	// A processed request cannot be decided twice.
	_, err = f.svc.Decide(ctx, shortleave.DecideRequest{ID: submitted.ID, Approve: false, DecidedBy: "mgr-2"})
	assert.ErrorIs(t, err, shortleave.ErrAlreadyProcessed)
}

func TestDecideRejectPersistsReason(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	submitted, err := f.svc.Submit(ctx, morningRequest())
	require.NoError(t, err)

	rejected, err := f.svc.Decide(ctx, shortleave.DecideRequest{
		ID:        submitted.ID,
		Approve:   false,
		DecidedBy: "mgr-1",
		Reason:    "coverage gap that morning",
	})
	require.NoError(t, err)
	assert.Equal(t, shortleave.StatusRejected, rejected.Status)

	// The stated reason must survive the round trip through the store.
	stored, err := f.requests.GetByID(ctx, submitted.ID)
	require.NoError(t, err)
	assert.Equal(t, "coverage gap that morning", stored.Reason)
	assert.Equal(t, "mgr-1", stored.DecidedBy)
}

func TestDecideUnknownRequest(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.svc.Decide(context.Background(), shortleave.DecideRequest{ID: "missing", Approve: true, DecidedBy: "mgr-1"})
	assert.ErrorIs(t, err, shortleave.ErrRequestNotFound)
}

func TestListPendingReturnsOnlyPending(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	first, err := f.svc.Submit(ctx, morningRequest())
	require.NoError(t, err)

	second := morningRequest()
	second.Date = "2025-06-05"
	_, err = f.svc.Submit(ctx, second)
	require.NoError(t, err)

	_, err = f.svc.Decide(ctx, shortleave.DecideRequest{ID: first.ID, Approve: false, DecidedBy: "mgr-1"})
	require.NoError(t, err)

	pending, err := f.svc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "2025-06-05", pending[0].Date.Format("2006-01-02"))
}

func TestMonthlyUsage(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	ym := quota.YearMonth{Year: 2025, Month: 6}
	ok, err := f.ledger.TryConsume(ctx, "emp-a", ym, 2)
	require.NoError(t, err)
	require.True(t, ok)

	usage, err := f.svc.MonthlyUsage(ctx, "emp-a", 2025, time.June)
	require.NoError(t, err)

	assert.Equal(t, 1, usage.CountUsed)
	assert.Equal(t, 2, usage.Cap)
	assert.Equal(t, 1, usage.Remaining)
	assert.Equal(t, "2025-06", usage.YearMonth)
}
