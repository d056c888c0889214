package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/policy"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/shortleave"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shortLeaveRepositoryImpl struct {
	db *database.DB
}

func NewShortLeaveRepository(db *database.DB) shortleave.Repository {
	return &shortLeaveRepositoryImpl{db: db}
}

const shortLeaveSelect = `
	SELECT id, employee_id, group_name, leave_date, slot,
	       start_minute, end_minute, reason, status, decided_by, created_at
	FROM short_leave_requests
`

// Create implements shortleave.Repository.
func (r *shortLeaveRepositoryImpl) Create(ctx context.Context, req shortleave.Request) (shortleave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO short_leave_requests (
			id, employee_id, group_name, leave_date, slot,
			start_minute, end_minute, reason, status, decided_by, created_at
		)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created_at
	`
	err := q.QueryRow(ctx, query,
		req.EmployeeID, string(req.Group), req.Date, string(req.Slot),
		int(req.StartTime), int(req.EndTime), req.Reason,
		string(req.Status), nullableID(req.DecidedBy),
	).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return shortleave.Request{}, err
	}
	return req, nil
}

// GetByID implements shortleave.Repository.
func (r *shortLeaveRepositoryImpl) GetByID(ctx context.Context, id string) (shortleave.Request, error) {
	q := GetQuerier(ctx, r.db)

	row := q.QueryRow(ctx, shortLeaveSelect+` WHERE id = $1`, id)
	req, err := scanShortLeave(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shortleave.Request{}, shortleave.ErrRequestNotFound
		}
		return shortleave.Request{}, err
	}
	return req, nil
}

// Update implements shortleave.Repository.
func (r *shortLeaveRepositoryImpl) Update(ctx context.Context, req shortleave.Request) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `
		UPDATE short_leave_requests
		SET status = $2, decided_by = $3, reason = $4
		WHERE id = $1
	`, req.ID, string(req.Status), nullableID(req.DecidedBy), req.Reason)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return shortleave.ErrRequestNotFound
	}
	return nil
}

// ListByEmployeeMonth implements shortleave.Repository.
func (r *shortLeaveRepositoryImpl) ListByEmployeeMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]shortleave.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, shortLeaveSelect+`
		WHERE employee_id = $1
		AND EXTRACT(YEAR FROM leave_date) = $2
		AND EXTRACT(MONTH FROM leave_date) = $3
		ORDER BY leave_date ASC
	`, employeeID, year, int(month))
	if err != nil {
		return nil, err
	}
	return collectShortLeaves(rows)
}

// ListPending implements shortleave.Repository.
func (r *shortLeaveRepositoryImpl) ListPending(ctx context.Context) ([]shortleave.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, shortLeaveSelect+`
		WHERE status = 'pending'
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	return collectShortLeaves(rows)
}

// ApprovedOn implements shortleave.Repository. Nil means no approved request
// covers the employee-date.
func (r *shortLeaveRepositoryImpl) ApprovedOn(ctx context.Context, employeeID string, date time.Time) (*shortleave.Request, error) {
	q := GetQuerier(ctx, r.db)

	row := q.QueryRow(ctx, shortLeaveSelect+`
		WHERE employee_id = $1 AND leave_date = $2 AND status = 'approved'
		LIMIT 1
	`, employeeID, date)
	req, err := scanShortLeave(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func collectShortLeaves(rows pgx.Rows) ([]shortleave.Request, error) {
	defer rows.Close()

	requests := make([]shortleave.Request, 0)
	for rows.Next() {
		req, err := scanShortLeave(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func scanShortLeave(row rowScanner) (shortleave.Request, error) {
	var req shortleave.Request
	var group, slot, status string
	var startMinute, endMinute int
	var decidedBy *string
	err := row.Scan(
		&req.ID, &req.EmployeeID, &group, &req.Date, &slot,
		&startMinute, &endMinute, &req.Reason, &status, &decidedBy, &req.CreatedAt,
	)
	if err != nil {
		return shortleave.Request{}, err
	}
	req.Group = policy.Group(group)
	req.Slot = shortleave.Slot(slot)
	req.StartTime = policy.MinuteOfDay(startMinute)
	req.EndTime = policy.MinuteOfDay(endMinute)
	req.Status = shortleave.RequestStatus(status)
	if decidedBy != nil {
		req.DecidedBy = *decidedBy
	}
	return req, nil
}
