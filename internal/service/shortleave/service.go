package shortleave

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/policy"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/quota"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/shortleave"
	"github.com/go-playground/validator/v10"
)

type ServiceImpl struct {
	requests  shortleave.Repository
	employees attendance.EmployeeRepository
	resolver  policy.Resolver
	ledger    quota.Ledger
	validate  *validator.Validate
}

func NewService(
	requests shortleave.Repository,
	employees attendance.EmployeeRepository,
	resolver policy.Resolver,
	ledger quota.Ledger,
) shortleave.Service {
	return &ServiceImpl{
		requests:  requests,
		employees: employees,
		resolver:  resolver,
		ledger:    ledger,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Submit implements shortleave.Service.
func (s *ServiceImpl) Submit(ctx context.Context, req shortleave.SubmitRequest) (shortleave.Request, error) {
	if err := s.validate.Struct(req); err != nil {
		return shortleave.Request{}, fmt.Errorf("short leave payload rejected: %w", err)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return shortleave.Request{}, fmt.Errorf("invalid date: %w", err)
	}

	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return shortleave.Request{}, fmt.Errorf("load employee: %w", err)
	}

	version, err := s.resolver.Resolve(ctx, emp.Group, date)
	if err != nil {
		return shortleave.Request{}, err
	}
	pol := version.Policy

	start, err := policy.ParseMinuteOfDay(req.StartTime)
	if err != nil {
		return shortleave.Request{}, err
	}
	end, err := policy.ParseMinuteOfDay(req.EndTime)
	if err != nil {
		return shortleave.Request{}, err
	}

	slot := shortleave.Slot(req.Slot)
	window := pol.ShortLeave.MorningWindow
	if slot == shortleave.SlotEvening {
		window = pol.ShortLeave.EveningWindow
	}
	if !window.Contains(start, end) || start >= end {
		return shortleave.Request{}, fmt.Errorf("%w: %s slot for %s is %s-%s",
			shortleave.ErrOutsideWindow, slot, emp.Group, window.Start, window.End)
	}

	if existing, err := s.requests.ApprovedOn(ctx, emp.ID, date); err != nil {
		return shortleave.Request{}, fmt.Errorf("duplicate check: %w", err)
	} else if existing != nil {
		return shortleave.Request{}, shortleave.ErrDuplicateForDate
	}

	ym := quota.YearMonth{Year: date.Year(), Month: int(date.Month())}
	used, err := s.ledger.CountUsed(ctx, emp.ID, ym)
	if err != nil {
		return shortleave.Request{}, fmt.Errorf("quota lookup: %w", err)
	}
	if used >= pol.ShortLeave.MaxPerMonth {
		return shortleave.Request{}, fmt.Errorf("%w: %d of %d used in %s",
			shortleave.ErrQuotaExhausted, used, pol.ShortLeave.MaxPerMonth, ym)
	}

	stored, err := s.requests.Create(ctx, shortleave.Request{
		EmployeeID: emp.ID,
		Group:      emp.Group,
		Date:       date,
		Slot:       slot,
		StartTime:  start,
		EndTime:    end,
		Reason:     req.Reason,
		Status:     shortleave.StatusPending,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return shortleave.Request{}, fmt.Errorf("store short leave request: %w", err)
	}
	return stored, nil
}

// Decide implements shortleave.Service.
func (s *ServiceImpl) Decide(ctx context.Context, req shortleave.DecideRequest) (shortleave.Request, error) {
	if err := s.validate.Struct(req); err != nil {
		return shortleave.Request{}, fmt.Errorf("decision payload rejected: %w", err)
	}

	r, err := s.requests.GetByID(ctx, req.ID)
	if err != nil {
		return shortleave.Request{}, err
	}
	if r.Status != shortleave.StatusPending {
		return shortleave.Request{}, shortleave.ErrAlreadyProcessed
	}

	if req.Approve {
		r.Status = shortleave.StatusApproved
	} else {
		r.Status = shortleave.StatusRejected
		if req.Reason != "" {
			r.Reason = req.Reason
		}
	}
	r.DecidedBy = req.DecidedBy

	if err := s.requests.Update(ctx, r); err != nil {
		return shortleave.Request{}, fmt.Errorf("update short leave request: %w", err)
	}
	return r, nil
}

// ListPending implements shortleave.Service.
func (s *ServiceImpl) ListPending(ctx context.Context) ([]shortleave.Request, error) {
	return s.requests.ListPending(ctx)
}

// MonthlyUsage implements shortleave.Service.
func (s *ServiceImpl) MonthlyUsage(ctx context.Context, employeeID string, year int, month time.Month) (quota.Usage, error) {
	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return quota.Usage{}, fmt.Errorf("load employee: %w", err)
	}

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	version, err := s.resolver.Resolve(ctx, emp.Group, monthStart)
	if err != nil {
		return quota.Usage{}, err
	}
	maxPerMonth := version.Policy.ShortLeave.MaxPerMonth

	ym := quota.YearMonth{Year: year, Month: int(month)}
	used, err := s.ledger.CountUsed(ctx, emp.ID, ym)
	if err != nil {
		return quota.Usage{}, fmt.Errorf("quota lookup: %w", err)
	}

	return quota.Usage{
		EmployeeID: emp.ID,
		YearMonth:  ym.String(),
		CountUsed:  used,
		Cap:        maxPerMonth,
		Remaining:  max(0, maxPerMonth-used),
	}, nil
}
