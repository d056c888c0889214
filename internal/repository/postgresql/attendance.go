package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/policy"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type punchRepositoryImpl struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) attendance.PunchRepository {
	return &punchRepositoryImpl{db: db}
}

// GetPunch implements attendance.PunchRepository. A missing row means the
// terminal has sent nothing for that day, which is a valid empty pair.
func (r *punchRepositoryImpl) GetPunch(ctx context.Context, employeeID string, date time.Time) (attendance.PunchPair, error) {
	q := GetQuerier(ctx, r.db)

	pair := attendance.PunchPair{EmployeeID: employeeID, Date: date}
	err := q.QueryRow(ctx, `
		SELECT check_in, check_out
		FROM punches
		WHERE employee_id = $1 AND punch_date = $2
	`, employeeID, date).Scan(&pair.CheckIn, &pair.CheckOut)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return pair, nil
		}
		return attendance.PunchPair{}, err
	}
	return pair, nil
}

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) attendance.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

// ApprovedLeaveCovering implements attendance.LeaveRepository.
func (r *leaveRepositoryImpl) ApprovedLeaveCovering(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var covered bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM leave_grants
			WHERE employee_id = $1
			AND status = 'approved'
			AND start_date <= $2 AND end_date >= $2
		)
	`, employeeID, date).Scan(&covered)
	if err != nil {
		return false, err
	}
	return covered, nil
}

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) attendance.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// GetByID implements attendance.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Employee, error) {
	q := GetQuerier(ctx, r.db)

	var emp attendance.Employee
	var group string
	err := q.QueryRow(ctx, `
		SELECT id, full_name, group_name
		FROM employees
		WHERE id = $1 AND deleted_at IS NULL
	`, id).Scan(&emp.ID, &emp.Name, &group)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Employee{}, attendance.ErrEmployeeNotFound
		}
		return attendance.Employee{}, err
	}
	emp.Group = policy.Group(group)
	return emp, nil
}

// ListActive implements attendance.EmployeeRepository.
func (r *employeeRepositoryImpl) ListActive(ctx context.Context) ([]attendance.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, full_name, group_name
		FROM employees
		WHERE deleted_at IS NULL
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]attendance.Employee, 0)
	for rows.Next() {
		var emp attendance.Employee
		var group string
		if err := rows.Scan(&emp.ID, &emp.Name, &group); err != nil {
			return nil, err
		}
		emp.Group = policy.Group(group)
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

type recordRepositoryImpl struct {
	db *database.DB
}

func NewRecordRepository(db *database.DB) attendance.RecordRepository {
	return &recordRepositoryImpl{db: db}
}

// Upsert implements attendance.RecordRepository. The (employee, date) row is
// replaced wholesale so a recomputation can never leave stale fields behind.
func (r *recordRepositoryImpl) Upsert(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	notes, err := json.Marshal(rec.Outcome.Notes)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("encode notes: %w", err)
	}

	query := `
		INSERT INTO attendance_records (
			id, employee_id, group_name, record_date,
			status, working_minutes, late_by_minutes, half_day,
			short_leave_window_hit, quota_consumed, notes,
			overtime_minutes, overtime_requires_approval,
			policy_version_id, computed_at
		)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (employee_id, record_date) DO UPDATE SET
			group_name = EXCLUDED.group_name,
			status = EXCLUDED.status,
			working_minutes = EXCLUDED.working_minutes,
			late_by_minutes = EXCLUDED.late_by_minutes,
			half_day = EXCLUDED.half_day,
			short_leave_window_hit = EXCLUDED.short_leave_window_hit,
			quota_consumed = EXCLUDED.quota_consumed,
			notes = EXCLUDED.notes,
			overtime_minutes = EXCLUDED.overtime_minutes,
			overtime_requires_approval = EXCLUDED.overtime_requires_approval,
			policy_version_id = EXCLUDED.policy_version_id,
			computed_at = EXCLUDED.computed_at
		RETURNING id
	`
	err = q.QueryRow(ctx, query,
		rec.EmployeeID, string(rec.Group), rec.Date,
		string(rec.Outcome.Status), rec.Outcome.WorkingMinutes,
		rec.Outcome.LateByMinutes, rec.Outcome.HalfDay,
		string(rec.Outcome.ShortLeaveWindowHit), rec.Outcome.QuotaConsumed, notes,
		rec.OvertimeMinutes, rec.OvertimeRequiresApproval,
		nullableID(rec.PolicyVersionID), rec.ComputedAt,
	).Scan(&rec.ID)
	if err != nil {
		return attendance.Record{}, err
	}
	return rec, nil
}

// GetByEmployeeAndDate implements attendance.RecordRepository.
func (r *recordRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	row := q.QueryRow(ctx, recordSelect+`
		WHERE employee_id = $1 AND record_date = $2
	`, employeeID, date)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, err
	}
	return rec, nil
}

// ListByEmployeeRange implements attendance.RecordRepository.
func (r *recordRepositoryImpl) ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, recordSelect+`
		WHERE employee_id = $1 AND record_date BETWEEN $2 AND $3
		ORDER BY record_date ASC
	`, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

const recordSelect = `
	SELECT id, employee_id, group_name, record_date,
	       status, working_minutes, late_by_minutes, half_day,
	       short_leave_window_hit, quota_consumed, notes,
	       overtime_minutes, overtime_requires_approval,
	       policy_version_id, computed_at
	FROM attendance_records
`

func scanRecord(row rowScanner) (attendance.Record, error) {
	var rec attendance.Record
	var group, status, windowHit string
	var policyVersionID *string
	var notes []byte
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &group, &rec.Date,
		&status, &rec.Outcome.WorkingMinutes, &rec.Outcome.LateByMinutes,
		&rec.Outcome.HalfDay, &windowHit, &rec.Outcome.QuotaConsumed, &notes,
		&rec.OvertimeMinutes, &rec.OvertimeRequiresApproval,
		&policyVersionID, &rec.ComputedAt,
	)
	if err != nil {
		return attendance.Record{}, err
	}
	rec.Group = policy.Group(group)
	rec.Outcome.Status = attendance.Status(status)
	rec.Outcome.ShortLeaveWindowHit = attendance.ShortLeaveWindow(windowHit)
	if policyVersionID != nil {
		rec.PolicyVersionID = *policyVersionID
	}
	if len(notes) > 0 {
		if err := json.Unmarshal(notes, &rec.Outcome.Notes); err != nil {
			return attendance.Record{}, fmt.Errorf("decode notes: %w", err)
		}
	}
	return rec, nil
}

// nullableID maps the empty string to SQL NULL for uuid foreign keys.
func nullableID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
