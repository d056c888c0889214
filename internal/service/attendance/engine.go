package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/policy"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/quota"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/shortleave"
	"golang.org/x/sync/errgroup"
)

// phase is the per-day computation state. Transitions only move forward;
// recomputation starts a fresh computation after reversing quota effects.
type phase int

const (
	phaseUnclassified phase = iota
	phaseClassified
	phaseOvertimed
	phaseFinalized
)

type EngineImpl struct {
	punches    attendance.PunchRepository
	leaves     attendance.LeaveRepository
	employees  attendance.EmployeeRepository
	records    attendance.RecordRepository
	requests   shortleave.Repository
	resolver   policy.Resolver
	calendar   calendar.Context
	ledger     quota.Ledger
	loc        *time.Location
	maxWorkers int
}

type EngineOption func(*EngineImpl)

// WithLocation sets the timezone punch timestamps are interpreted in.
func WithLocation(loc *time.Location) EngineOption {
	return func(e *EngineImpl) { e.loc = loc }
}

// WithMaxWorkers bounds the per-employee fan-out of ComputeBatch.
func WithMaxWorkers(n int) EngineOption {
	return func(e *EngineImpl) { e.maxWorkers = n }
}

func NewEngine(
	punches attendance.PunchRepository,
	leaves attendance.LeaveRepository,
	employees attendance.EmployeeRepository,
	records attendance.RecordRepository,
	requests shortleave.Repository,
	resolver policy.Resolver,
	cal calendar.Context,
	ledger quota.Ledger,
	opts ...EngineOption,
) attendance.Engine {
	e := &EngineImpl{
		punches:    punches,
		leaves:     leaves,
		employees:  employees,
		records:    records,
		requests:   requests,
		resolver:   resolver,
		calendar:   cal,
		ledger:     ledger,
		loc:        time.UTC,
		maxWorkers: 8,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// computation walks one employee-day through the state machine.
type computation struct {
	phase   phase
	emp     attendance.Employee
	date    time.Time
	version policy.Version
	fact    calendar.Fact
	outcome attendance.DayOutcome
	otMin   int
	otAppr  bool
}

// ComputeDay implements attendance.Engine.
func (e *EngineImpl) ComputeDay(ctx context.Context, employeeID string, date time.Time) (attendance.Record, error) {
	rec, _, err := e.computeDay(ctx, employeeID, date)
	return rec, err
}

// computeDay additionally reports whether quota was consumed during this call,
// which the batch driver needs for cancellation rollback.
func (e *EngineImpl) computeDay(ctx context.Context, employeeID string, date time.Time) (attendance.Record, bool, error) {
	date = e.dayOf(date)

	emp, err := e.employees.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.Record{}, false, fmt.Errorf("load employee %s: %w", employeeID, err)
	}

	// Recomputation always starts by reversing any quota this exact date
	// consumed before, so policy or punch edits never leak quota.
	if _, err := e.releasePrior(ctx, emp.ID, date); err != nil {
		return attendance.Record{}, false, err
	}

	comp := computation{phase: phaseUnclassified, emp: emp, date: date}

	rec, consumed, dayErr := e.classifyAndFinalize(ctx, &comp)
	if dayErr != nil {
		// Per-day failure: persist an error record with no overtime or quota
		// side effects and surface the cause.
		errRec := e.errorRecord(emp, date, dayErr)
		if stored, upErr := e.records.Upsert(ctx, errRec); upErr == nil {
			errRec = stored
		}
		return errRec, false, dayErr
	}
	return rec, consumed, nil
}

func (e *EngineImpl) classifyAndFinalize(ctx context.Context, comp *computation) (attendance.Record, bool, error) {
	version, err := e.resolver.Resolve(ctx, comp.emp.Group, comp.date)
	if err != nil {
		return attendance.Record{}, false, err
	}
	comp.version = version
	pol := version.Policy

	fact, err := e.calendar.FactFor(ctx, comp.date, comp.emp.Group)
	if err != nil {
		return attendance.Record{}, false, err
	}
	comp.fact = fact

	punch, err := e.punches.GetPunch(ctx, comp.emp.ID, comp.date)
	if err != nil {
		return attendance.Record{}, false, fmt.Errorf("load punch: %w", err)
	}

	onLeave := false
	if punch.CheckIn == nil {
		onLeave, err = e.leaves.ApprovedLeaveCovering(ctx, comp.emp.ID, comp.date)
		if err != nil {
			return attendance.Record{}, false, fmt.Errorf("leave lookup: %w", err)
		}
	}

	approvedSlot := attendance.WindowNone
	if pol.ShortLeave.PreApprovalRequired {
		req, err := e.requests.ApprovedOn(ctx, comp.emp.ID, comp.date)
		if err != nil {
			return attendance.Record{}, false, fmt.Errorf("short leave lookup: %w", err)
		}
		if req != nil {
			if req.Slot == shortleave.SlotMorning {
				approvedSlot = attendance.WindowMorning
			} else {
				approvedSlot = attendance.WindowEvening
			}
		}
	}

	ym := quota.YearMonth{Year: comp.date.Year(), Month: int(comp.date.Month())}
	used, err := e.ledger.CountUsed(ctx, comp.emp.ID, ym)
	if err != nil {
		return attendance.Record{}, false, fmt.Errorf("quota lookup: %w", err)
	}

	outcome, err := Classify(ClassifierInput{
		Punch:           punch,
		Policy:          pol,
		Fact:            fact,
		QuotaRemaining:  used < pol.ShortLeave.MaxPerMonth,
		PreApprovedSlot: approvedSlot,
		Location:        e.loc,
	})
	if err != nil {
		return attendance.Record{}, false, err
	}
	comp.phase = phaseClassified

	// Approved full-day leave suppresses absence for missing punches. The
	// classifier never sees leave state; it is applied here, on the caller
	// side of the boundary.
	if onLeave && outcome.Status == attendance.StatusAbsent && punch.CheckIn == nil {
		outcome.Status = attendance.StatusExcused
		outcome.Notes = append(outcome.Notes, "approved leave")
	}
	comp.outcome = outcome

	comp.otMin, comp.otAppr = ComputeOvertime(outcome, pol, fact)
	comp.phase = phaseOvertimed

	consumed, err := e.commitQuota(ctx, comp, pol, ym)
	if err != nil {
		return attendance.Record{}, false, err
	}
	comp.outcome.QuotaConsumed = consumed

	rec := attendance.Record{
		EmployeeID:               comp.emp.ID,
		Group:                    comp.emp.Group,
		Date:                     comp.date,
		Outcome:                  comp.outcome,
		OvertimeMinutes:          comp.otMin,
		OvertimeRequiresApproval: comp.otAppr,
		PolicyVersionID:          version.ID,
		ComputedAt:               time.Now().UTC(),
	}
	stored, err := e.records.Upsert(ctx, rec)
	if err != nil {
		return attendance.Record{}, false, fmt.Errorf("persist record: %w", err)
	}
	comp.phase = phaseFinalized
	return stored, consumed, nil
}

// commitQuota consumes quota when the day newly qualifies: a window was hit
// and, where the policy demands it, an approved request covers the slot.
// The minimum-working-hours flag is deliberately independent of consumption.
func (e *EngineImpl) commitQuota(ctx context.Context, comp *computation, pol policy.GroupPolicy, ym quota.YearMonth) (bool, error) {
	if comp.outcome.ShortLeaveWindowHit == attendance.WindowNone {
		return false, nil
	}
	if pol.ShortLeave.PreApprovalRequired {
		// ClassifierInput carried the approved slot; re-derive qualification
		// the same way so consumption and classification agree.
		req, err := e.requests.ApprovedOn(ctx, comp.emp.ID, comp.date)
		if err != nil {
			return false, fmt.Errorf("short leave lookup: %w", err)
		}
		if req == nil || string(req.Slot) != string(comp.outcome.ShortLeaveWindowHit) {
			return false, nil
		}
	}

	ok, err := e.ledger.TryConsume(ctx, comp.emp.ID, ym, pol.ShortLeave.MaxPerMonth)
	if errors.Is(err, quota.ErrConflict) {
		// One retry on a consume/release race, then surface.
		ok, err = e.ledger.TryConsume(ctx, comp.emp.ID, ym, pol.ShortLeave.MaxPerMonth)
	}
	if err != nil {
		return false, fmt.Errorf("consume quota: %w", err)
	}
	return ok, nil
}

// releasePrior reverses the quota effect of an earlier computation of the
// same employee-date, if there was one.
func (e *EngineImpl) releasePrior(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	prior, err := e.records.GetByEmployeeAndDate(ctx, employeeID, date)
	if errors.Is(err, attendance.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load prior record: %w", err)
	}
	if !prior.Outcome.QuotaConsumed {
		return false, nil
	}
	ym := quota.YearMonth{Year: date.Year(), Month: int(date.Month())}
	if err := e.ledger.Release(ctx, employeeID, ym); err != nil {
		if errors.Is(err, quota.ErrConflict) {
			err = e.ledger.Release(ctx, employeeID, ym)
		}
		if err != nil {
			return false, fmt.Errorf("release prior quota: %w", err)
		}
	}
	return true, nil
}

// ComputeRange implements attendance.Engine. Dates are processed strictly in
// order; a failing day yields a StatusError record and the range continues.
// Cancellation mid-range releases the quota this run consumed, matching the
// batch path.
func (e *EngineImpl) ComputeRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	records, consumed, err := e.computeRange(ctx, employeeID, from, to, nil)
	if err != nil {
		e.rollback(consumed)
		return records, err
	}
	return records, nil
}

// consumedDay tracks a quota consumption made during one run, for rollback.
type consumedDay struct {
	employeeID string
	date       time.Time
}

func (e *EngineImpl) computeRange(ctx context.Context, employeeID string, from, to time.Time, errs *[]attendance.DayError) ([]attendance.Record, []consumedDay, error) {
	from, to = e.dayOf(from), e.dayOf(to)
	if to.Before(from) {
		return nil, nil, fmt.Errorf("invalid range: %s after %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	}

	var records []attendance.Record
	var consumed []consumedDay

	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			// Cancellation between days: the caller rolls back what this run
			// consumed so far.
			return records, consumed, err
		}

		rec, didConsume, err := e.computeDay(ctx, employeeID, d)
		if err != nil {
			slog.Warn("attendance day failed",
				"employee_id", employeeID,
				"date", d.Format("2006-01-02"),
				"error", err)
			if errs != nil {
				*errs = append(*errs, attendance.DayError{
					EmployeeID: employeeID,
					Date:       d.Format("2006-01-02"),
					Reason:     err.Error(),
				})
			}
		}
		if didConsume {
			consumed = append(consumed, consumedDay{employeeID: employeeID, date: d})
		}
		if rec.EmployeeID != "" {
			records = append(records, rec)
		}
	}
	return records, consumed, nil
}

// ComputeBatch implements attendance.Engine. Distinct employees are
// embarrassingly parallel; all dates for one employee stay on one goroutine
// so a shared (employee, month) ledger entry is only ever touched in order.
func (e *EngineImpl) ComputeBatch(ctx context.Context, employeeIDs []string, from, to time.Time) (attendance.BatchResult, error) {
	if len(employeeIDs) == 0 {
		active, err := e.employees.ListActive(ctx)
		if err != nil {
			return attendance.BatchResult{}, fmt.Errorf("list active employees: %w", err)
		}
		for _, emp := range active {
			employeeIDs = append(employeeIDs, emp.ID)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.maxWorkers)

	results := make([]attendance.BatchResult, len(employeeIDs))
	for i, id := range employeeIDs {
		g.Go(func() error {
			var dayErrs []attendance.DayError
			records, consumed, err := e.computeRange(gctx, id, from, to, &dayErrs)
			if err != nil {
				// Cancelled mid-employee: reverse this run's quota effects so
				// no partial month state survives the abort.
				e.rollback(consumed)
				return err
			}
			results[i] = attendance.BatchResult{Computed: len(records), ErrorDays: dayErrs}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return attendance.BatchResult{}, err
	}

	var total attendance.BatchResult
	for _, r := range results {
		total.Computed += r.Computed
		total.ErrorDays = append(total.ErrorDays, r.ErrorDays...)
	}
	return total, nil
}

// rollback releases quota consumed during an aborted run and clears the
// consumption flag on the already-persisted records. It runs on a background
// context because the run's context is already dead.
func (e *EngineImpl) rollback(consumed []consumedDay) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, c := range consumed {
		ym := quota.YearMonth{Year: c.date.Year(), Month: int(c.date.Month())}
		if err := e.ledger.Release(ctx, c.employeeID, ym); err != nil {
			slog.Error("quota rollback failed",
				"employee_id", c.employeeID,
				"date", c.date.Format("2006-01-02"),
				"error", err)
			continue
		}
		rec, err := e.records.GetByEmployeeAndDate(ctx, c.employeeID, c.date)
		if err != nil {
			continue
		}
		rec.Outcome.QuotaConsumed = false
		if _, err := e.records.Upsert(ctx, rec); err != nil {
			slog.Error("record rollback failed",
				"employee_id", c.employeeID,
				"date", c.date.Format("2006-01-02"),
				"error", err)
		}
	}
}

func (e *EngineImpl) errorRecord(emp attendance.Employee, date time.Time, cause error) attendance.Record {
	return attendance.Record{
		EmployeeID: emp.ID,
		Group:      emp.Group,
		Date:       date,
		Outcome: attendance.DayOutcome{
			Status:              attendance.StatusError,
			ShortLeaveWindowHit: attendance.WindowNone,
			Notes:               []string{cause.Error()},
		},
		ComputedAt: time.Now().UTC(),
	}
}

func (e *EngineImpl) dayOf(t time.Time) time.Time {
	local := t.In(e.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, e.loc)
}
