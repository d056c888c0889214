package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/fixtures"
	"github.com/cmlabs-hris/attendance-engine-go/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/attendance-engine-go/internal/service/attendance"
	calendarService "github.com/cmlabs-hris/attendance-engine-go/internal/service/calendar"
	policyService "github.com/cmlabs-hris/attendance-engine-go/internal/service/policy"
	shortLeaveService "github.com/cmlabs-hris/attendance-engine-go/internal/service/shortleave"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const routerTestSecret = "test-secret-key-for-jwt"

type routerFixture struct {
	router    *chi.Mux
	tokenAuth *jwtauth.JWTAuth
	punches   *memory.PunchRepository
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	policyRepo := memory.NewPolicyRepository()
	seedDate := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, fixtures.SeedDefaultPolicies(context.Background(), policyRepo, seedDate))

	punches := memory.NewPunchRepository()
	leaves := memory.NewLeaveRepository()
	employees := memory.NewEmployeeRepository(
		attendance.Employee{ID: "emp-a", Name: "Amara", Group: "group_a"},
	)
	records := memory.NewRecordRepository()
	requests := memory.NewShortLeaveRepository()
	ledger := memory.NewQuotaLedger()

	policySvc := policyService.NewService(policyRepo)
	calendarCtx := calendarService.NewContext(memory.NewHolidayRepository(), memory.NewWeekendConfigRepository())
	engine := attendanceService.NewEngine(punches, leaves, employees, records, requests, policySvc, calendarCtx, ledger)
	shortLeaveSvc := shortLeaveService.NewService(requests, employees, policySvc, ledger)

	tokenAuth := jwtauth.New("HS256", []byte(routerTestSecret), nil)
	router := NewRouter(
		tokenAuth,
		NewAttendanceHandler(engine, records),
		NewPolicyHandler(policySvc),
		NewShortLeaveHandler(shortLeaveSvc),
	)
	return &routerFixture{router: router, tokenAuth: tokenAuth, punches: punches}
}

func (f *routerFixture) token(t *testing.T, admin bool) string {
	t.Helper()
	_, tokenString, err := f.tokenAuth.Encode(map[string]interface{}{
		"sub":      "user-1",
		"is_admin": admin,
	})
	require.NoError(t, err)
	return tokenString
}

func (f *routerFixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestRouterRejectsMissingToken(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/policies/group_a/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouterRejectsNonAdminCompute(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/attendance/compute/day", f.token(t, false), map[string]string{
		"employee_id": "emp-a",
		"date":        "2025-06-04",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestComputeDayEndpoint(t *testing.T) {
	f := newRouterFixture(t)
	day := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
	in := time.Date(2025, 6, 4, 8, 30, 0, 0, time.UTC)
	out := time.Date(2025, 6, 4, 16, 15, 0, 0, time.UTC)
	f.punches.SetPunch(attendance.PunchPair{EmployeeID: "emp-a", Date: day, CheckIn: &in, CheckOut: &out})

	w := f.do(t, http.MethodPost, "/api/v1/attendance/compute/day", f.token(t, true), map[string]string{
		"employee_id": "emp-a",
		"date":        "2025-06-04",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                      `json:"success"`
		Data    attendance.RecordResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "present", resp.Data.Status)
	assert.Equal(t, 465, resp.Data.WorkingMinutes)
	assert.Equal(t, "7.75", resp.Data.WorkingHours)
}

func TestComputeDayUnknownEmployee(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/attendance/compute/day", f.token(t, true), map[string]string{
		"employee_id": "emp-x",
		"date":        "2025-06-04",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestComputeDayValidationFailure(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/attendance/compute/day", f.token(t, true), map[string]string{
		"employee_id": "emp-a",
		"date":        "04-06-2025",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGetEffectivePolicyEndpoint(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/policies/group_a/?date=2025-06-04", f.token(t, false), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			StartTime       string `json:"start_time"`
			RequiredMinutes int    `json:"required_minutes"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "08:30", resp.Data.StartTime)
	assert.Equal(t, 465, resp.Data.RequiredMinutes)
}

func TestShortLeaveSubmitEndpoint(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/short-leaves/", f.token(t, false), map[string]string{
		"employee_id": "emp-a",
		"date":        "2025-06-04",
		"slot":        "morning",
		"start_time":  "08:30",
		"end_time":    "09:30",
		"reason":      "bank errand",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}
