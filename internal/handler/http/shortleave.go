package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/shortleave"
	"github.com/cmlabs-hris/attendance-engine-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ShortLeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	MonthlyUsage(w http.ResponseWriter, r *http.Request)
}

type shortLeaveHandlerImpl struct {
	shortLeaveService shortleave.Service
}

func NewShortLeaveHandler(shortLeaveService shortleave.Service) ShortLeaveHandler {
	return &shortLeaveHandlerImpl{
		shortLeaveService: shortLeaveService,
	}
}

// Submit implements ShortLeaveHandler.
func (h *shortLeaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req shortleave.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.shortLeaveService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Short leave request submitted", created.ToResponse())
}

// Decide implements ShortLeaveHandler.
func (h *shortLeaveHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	var req shortleave.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	decided, err := h.shortLeaveService.Decide(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Short leave request processed", decided.ToResponse())
}

// ListPending implements ShortLeaveHandler.
func (h *shortLeaveHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.shortLeaveService.ListPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]shortleave.RequestResponse, 0, len(pending))
	for _, req := range pending {
		out = append(out, req.ToResponse())
	}
	response.Success(w, out)
}

// MonthlyUsage implements ShortLeaveHandler. Month defaults to the current one.
func (h *shortLeaveHandlerImpl) MonthlyUsage(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	now := time.Now()
	year, month := now.Year(), now.Month()
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			response.BadRequest(w, "Invalid 'month' query parameter, expected YYYY-MM", nil)
			return
		}
		year, month = parsed.Year(), parsed.Month()
	} else if rawYear := r.URL.Query().Get("year"); rawYear != "" {
		parsedYear, err := strconv.Atoi(rawYear)
		if err != nil {
			response.BadRequest(w, "Invalid 'year' query parameter", nil)
			return
		}
		year = parsedYear
	}

	usage, err := h.shortLeaveService.MonthlyUsage(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, usage)
}
