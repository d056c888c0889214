package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/google/uuid"
)

type dayKey struct {
	employeeID string
	day        string
}

func keyOf(employeeID string, date time.Time) dayKey {
	return dayKey{employeeID: employeeID, day: date.Format("2006-01-02")}
}

// PunchRepository is an in-memory punch store.
type PunchRepository struct {
	mu      sync.RWMutex
	punches map[dayKey]attendance.PunchPair
}

func NewPunchRepository() *PunchRepository {
	return &PunchRepository{punches: make(map[dayKey]attendance.PunchPair)}
}

// SetPunch stores or replaces a punch pair (backfills included).
func (r *PunchRepository) SetPunch(p attendance.PunchPair) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.punches[keyOf(p.EmployeeID, p.Date)] = p
}

// GetPunch implements attendance.PunchRepository. A missing pair is a valid
// "no data yet" answer, not an error.
func (r *PunchRepository) GetPunch(_ context.Context, employeeID string, date time.Time) (attendance.PunchPair, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.punches[keyOf(employeeID, date)]; ok {
		return p, nil
	}
	return attendance.PunchPair{EmployeeID: employeeID, Date: date}, nil
}

// LeaveRepository is an in-memory approved-leave lookup.
type LeaveRepository struct {
	mu       sync.RWMutex
	approved map[dayKey]bool
}

func NewLeaveRepository() *LeaveRepository {
	return &LeaveRepository{approved: make(map[dayKey]bool)}
}

// Approve marks a date as covered by approved leave.
func (r *LeaveRepository) Approve(employeeID string, date time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.approved[keyOf(employeeID, date)] = true
}

// ApprovedLeaveCovering implements attendance.LeaveRepository.
func (r *LeaveRepository) ApprovedLeaveCovering(_ context.Context, employeeID string, date time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.approved[keyOf(employeeID, date)], nil
}

// EmployeeRepository is an in-memory roster.
type EmployeeRepository struct {
	mu        sync.RWMutex
	employees map[string]attendance.Employee
}

func NewEmployeeRepository(employees ...attendance.Employee) *EmployeeRepository {
	r := &EmployeeRepository{employees: make(map[string]attendance.Employee)}
	for _, e := range employees {
		r.employees[e.ID] = e
	}
	return r
}

// Add stores an employee.
func (r *EmployeeRepository) Add(e attendance.Employee) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.employees[e.ID] = e
}

// GetByID implements attendance.EmployeeRepository.
func (r *EmployeeRepository) GetByID(_ context.Context, id string) (attendance.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.employees[id]; ok {
		return e, nil
	}
	return attendance.Employee{}, attendance.ErrEmployeeNotFound
}

// ListActive implements attendance.EmployeeRepository.
func (r *EmployeeRepository) ListActive(_ context.Context) ([]attendance.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]attendance.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// RecordRepository is an in-memory attendance record store.
type RecordRepository struct {
	mu      sync.RWMutex
	records map[dayKey]attendance.Record
}

func NewRecordRepository() *RecordRepository {
	return &RecordRepository{records: make(map[dayKey]attendance.Record)}
}

// Upsert implements attendance.RecordRepository. The record for an
// (employee, date) is replaced wholesale; the id survives replacement.
func (r *RecordRepository) Upsert(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := keyOf(rec.EmployeeID, rec.Date)
	if prior, ok := r.records[k]; ok && rec.ID == "" {
		rec.ID = prior.ID
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	r.records[k] = rec
	return rec, nil
}

// GetByEmployeeAndDate implements attendance.RecordRepository.
func (r *RecordRepository) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if rec, ok := r.records[keyOf(employeeID, date)]; ok {
		return rec, nil
	}
	return attendance.Record{}, attendance.ErrRecordNotFound
}

// ListByEmployeeRange implements attendance.RecordRepository.
func (r *RecordRepository) ListByEmployeeRange(_ context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []attendance.Record
	for _, rec := range r.records {
		if rec.EmployeeID != employeeID {
			continue
		}
		if rec.Date.Before(from) || rec.Date.After(to) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
