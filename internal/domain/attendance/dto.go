package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordResponse is the API shape of a finalized record. Hour-valued fields
// are decimals so 7.75-hour policies round-trip without float drift.
type RecordResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Group      string `json:"group"`
	Date       string `json:"date"`

	Status              string   `json:"status"`
	WorkingMinutes      int      `json:"working_minutes"`
	WorkingHours        string   `json:"working_hours"`
	LateByMinutes       int      `json:"late_by_minutes"`
	ShortLeaveWindowHit string   `json:"short_leave_window_hit"`
	QuotaConsumed       bool     `json:"quota_consumed"`
	Notes               []string `json:"notes,omitempty"`

	OvertimeMinutes          int    `json:"overtime_minutes"`
	OvertimeHours            string `json:"overtime_hours"`
	OvertimeRequiresApproval bool   `json:"overtime_requires_approval"`

	PolicyVersionID string `json:"policy_version_id"`
	ComputedAt      string `json:"computed_at"`
}

func minutesToHours(m int) string {
	return decimal.NewFromInt(int64(m)).Div(decimal.NewFromInt(60)).Round(2).String()
}

// ToResponse maps a Record onto its API shape.
func (r Record) ToResponse() RecordResponse {
	return RecordResponse{
		ID:                       r.ID,
		EmployeeID:               r.EmployeeID,
		Group:                    string(r.Group),
		Date:                     r.Date.Format("2006-01-02"),
		Status:                   string(r.Outcome.Status),
		WorkingMinutes:           r.Outcome.WorkingMinutes,
		WorkingHours:             minutesToHours(r.Outcome.WorkingMinutes),
		LateByMinutes:            r.Outcome.LateByMinutes,
		ShortLeaveWindowHit:      string(r.Outcome.ShortLeaveWindowHit),
		QuotaConsumed:            r.Outcome.QuotaConsumed,
		Notes:                    r.Outcome.Notes,
		OvertimeMinutes:          r.OvertimeMinutes,
		OvertimeHours:            minutesToHours(r.OvertimeMinutes),
		OvertimeRequiresApproval: r.OvertimeRequiresApproval,
		PolicyVersionID:          r.PolicyVersionID,
		ComputedAt:               r.ComputedAt.Format(time.RFC3339),
	}
}

// ComputeDayRequest triggers a single-day computation.
type ComputeDayRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
}

// ComputeRangeRequest triggers a range computation for one employee.
type ComputeRangeRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	From       string `json:"from" validate:"required,datetime=2006-01-02"`
	To         string `json:"to" validate:"required,datetime=2006-01-02"`
}

// ComputeBatchRequest triggers a parallel recompute. An empty employee list
// means the whole active roster.
type ComputeBatchRequest struct {
	EmployeeIDs []string `json:"employee_ids"`
	From        string   `json:"from" validate:"required,datetime=2006-01-02"`
	To          string   `json:"to" validate:"required,datetime=2006-01-02"`
}

// DayError reports one employee-day the batch could not classify.
type DayError struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Reason     string `json:"reason"`
}

// BatchResult summarizes a batch run.
type BatchResult struct {
	Computed  int        `json:"computed"`
	ErrorDays []DayError `json:"error_days,omitempty"`
}
