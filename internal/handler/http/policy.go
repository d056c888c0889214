package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/policy"
	"github.com/cmlabs-hris/attendance-engine-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PolicyHandler interface {
	ListVersions(w http.ResponseWriter, r *http.Request)
	CreateVersion(w http.ResponseWriter, r *http.Request)
	GetEffective(w http.ResponseWriter, r *http.Request)
}

type policyHandlerImpl struct {
	policyService policy.Service
}

func NewPolicyHandler(policyService policy.Service) PolicyHandler {
	return &policyHandlerImpl{
		policyService: policyService,
	}
}

// ListVersions implements PolicyHandler.
func (h *policyHandlerImpl) ListVersions(w http.ResponseWriter, r *http.Request) {
	group := policy.Group(chi.URLParam(r, "group"))

	versions, err := h.policyService.ListVersions(r.Context(), group)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]policy.VersionResponse, 0, len(versions))
	for _, v := range versions {
		out = append(out, v.ToResponse())
	}
	response.Success(w, out)
}

// CreateVersion implements PolicyHandler. Settings edits never mutate an
// existing version; each save appends a new effective-dated one.
func (h *policyHandlerImpl) CreateVersion(w http.ResponseWriter, r *http.Request) {
	var req policy.CreateVersionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Group = chi.URLParam(r, "group")

	v, err := h.policyService.CreateVersion(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Policy version created", v.ToResponse())
}

// GetEffective implements PolicyHandler. The date defaults to today.
func (h *policyHandlerImpl) GetEffective(w http.ResponseWriter, r *http.Request) {
	group := policy.Group(chi.URLParam(r, "group"))

	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(w, "Invalid 'date' query parameter, expected YYYY-MM-DD", nil)
			return
		}
		date = parsed
	}

	v, err := h.policyService.Resolve(r.Context(), group, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, v.ToResponse())
}
