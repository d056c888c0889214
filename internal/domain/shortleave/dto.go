package shortleave

import "time"

// SubmitRequest is the application payload.
type SubmitRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Slot       string `json:"slot" validate:"required,oneof=morning evening"`
	StartTime  string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime    string `json:"end_time" validate:"required,datetime=15:04"`
	Reason     string `json:"reason" validate:"max=500"`
}

// DecideRequest approves or rejects a pending request.
type DecideRequest struct {
	ID        string `json:"-"`
	Approve   bool   `json:"approve"`
	DecidedBy string `json:"decided_by" validate:"required"`
	Reason    string `json:"reason" validate:"max=500"`
}

// RequestResponse is the API shape of a request.
type RequestResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Group      string `json:"group"`
	Date       string `json:"date"`
	Slot       string `json:"slot"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Reason     string `json:"reason,omitempty"`
	Status     string `json:"status"`
	DecidedBy  string `json:"decided_by,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// ToResponse maps a Request onto its API shape.
func (r Request) ToResponse() RequestResponse {
	return RequestResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		Group:      string(r.Group),
		Date:       r.Date.Format("2006-01-02"),
		Slot:       string(r.Slot),
		StartTime:  r.StartTime.String(),
		EndTime:    r.EndTime.String(),
		Reason:     r.Reason,
		Status:     string(r.Status),
		DecidedBy:  r.DecidedBy,
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
	}
}
