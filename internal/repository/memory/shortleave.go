package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/shortleave"
	"github.com/google/uuid"
)

// ShortLeaveRepository is an in-memory short-leave request store.
type ShortLeaveRepository struct {
	mu       sync.RWMutex
	requests map[string]shortleave.Request
}

func NewShortLeaveRepository() *ShortLeaveRepository {
	return &ShortLeaveRepository{requests: make(map[string]shortleave.Request)}
}

// Create implements shortleave.Repository.
func (r *ShortLeaveRepository) Create(_ context.Context, req shortleave.Request) (shortleave.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	r.requests[req.ID] = req
	return req, nil
}

// GetByID implements shortleave.Repository.
func (r *ShortLeaveRepository) GetByID(_ context.Context, id string) (shortleave.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if req, ok := r.requests[id]; ok {
		return req, nil
	}
	return shortleave.Request{}, shortleave.ErrRequestNotFound
}

// Update implements shortleave.Repository.
func (r *ShortLeaveRepository) Update(_ context.Context, req shortleave.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[req.ID]; !ok {
		return shortleave.ErrRequestNotFound
	}
	r.requests[req.ID] = req
	return nil
}

// ListByEmployeeMonth implements shortleave.Repository.
func (r *ShortLeaveRepository) ListByEmployeeMonth(_ context.Context, employeeID string, year int, month time.Month) ([]shortleave.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []shortleave.Request
	for _, req := range r.requests {
		if req.EmployeeID == employeeID && req.Date.Year() == year && req.Date.Month() == month {
			out = append(out, req)
		}
	}
	sortByDate(out)
	return out, nil
}

// ListPending implements shortleave.Repository.
func (r *ShortLeaveRepository) ListPending(_ context.Context) ([]shortleave.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []shortleave.Request
	for _, req := range r.requests {
		if req.Status == shortleave.StatusPending {
			out = append(out, req)
		}
	}
	sortByDate(out)
	return out, nil
}

// ApprovedOn implements shortleave.Repository.
func (r *ShortLeaveRepository) ApprovedOn(_ context.Context, employeeID string, date time.Time) (*shortleave.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, req := range r.requests {
		if req.EmployeeID == employeeID && req.Status == shortleave.StatusApproved && sameDay(req.Date, date) {
			found := req
			return &found, nil
		}
	}
	return nil, nil
}

func sortByDate(reqs []shortleave.Request) {
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].Date.Before(reqs[j].Date) })
}
