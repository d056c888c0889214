package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type AttendanceHandler interface {
	ComputeDay(w http.ResponseWriter, r *http.Request)
	ComputeRange(w http.ResponseWriter, r *http.Request)
	ComputeBatch(w http.ResponseWriter, r *http.Request)
	GetRecord(w http.ResponseWriter, r *http.Request)
	ListRecords(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	engine   attendance.Engine
	records  attendance.RecordRepository
	validate *validator.Validate
}

func NewAttendanceHandler(engine attendance.Engine, records attendance.RecordRepository) AttendanceHandler {
	return &attendanceHandlerImpl{
		engine:   engine,
		records:  records,
		validate: validator.New(),
	}
}

// ComputeDay implements AttendanceHandler.
func (h *attendanceHandlerImpl) ComputeDay(w http.ResponseWriter, r *http.Request) {
	var req attendance.ComputeDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.HandleError(w, err)
		return
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	rec, err := h.engine.ComputeDay(r.Context(), req.EmployeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rec.ToResponse())
}

// ComputeRange implements AttendanceHandler.
func (h *attendanceHandlerImpl) ComputeRange(w http.ResponseWriter, r *http.Request) {
	var req attendance.ComputeRangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.HandleError(w, err)
		return
	}

	from, _ := time.Parse("2006-01-02", req.From)
	to, _ := time.Parse("2006-01-02", req.To)
	if to.Before(from) {
		response.BadRequest(w, "'to' must not precede 'from'", nil)
		return
	}

	records, err := h.engine.ComputeRange(r.Context(), req.EmployeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.ToResponse())
	}
	response.Success(w, out)
}

// ComputeBatch implements AttendanceHandler.
func (h *attendanceHandlerImpl) ComputeBatch(w http.ResponseWriter, r *http.Request) {
	var req attendance.ComputeBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.HandleError(w, err)
		return
	}

	from, _ := time.Parse("2006-01-02", req.From)
	to, _ := time.Parse("2006-01-02", req.To)
	if to.Before(from) {
		response.BadRequest(w, "'to' must not precede 'from'", nil)
		return
	}

	result, err := h.engine.ComputeBatch(r.Context(), req.EmployeeIDs, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetRecord implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetRecord(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	date, err := time.Parse("2006-01-02", chi.URLParam(r, "date"))
	if err != nil {
		response.BadRequest(w, "Invalid date, expected YYYY-MM-DD", nil)
		return
	}

	rec, err := h.records.GetByEmployeeAndDate(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rec.ToResponse())
}

// ListRecords implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		response.BadRequest(w, "Invalid 'from' query parameter, expected YYYY-MM-DD", nil)
		return
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		response.BadRequest(w, "Invalid 'to' query parameter, expected YYYY-MM-DD", nil)
		return
	}

	records, err := h.records.ListByEmployeeRange(r.Context(), employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.ToResponse())
	}
	response.Success(w, out)
}
