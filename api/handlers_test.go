package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainpay/hr-engine/attendance"
	"github.com/chainpay/hr-engine/auth"
	"github.com/chainpay/hr-engine/payroll"
	"github.com/chainpay/hr-engine/portal"
	"github.com/chainpay/hr-engine/roster"
	"github.com/chainpay/hr-engine/store"
)

type fixture struct {
	handler *Handler
	router  http.Handler
	cache   *store.Memory
	roster  *roster.Roster
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	r := roster.NewRoster()
	hash, err := auth.HashPassword("hunter2")
	require.NoError(t, err)
	_, err = r.Add(roster.EmployeeForm{
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Email:      "ada@example.com",
		Position:   "Engineer",
		Department: "Engineering",
		HireDate:   attendance.NewDate(2025, time.January, 6),
		Salary:     decimal.NewFromInt(104000),
		PayrollInfo: payroll.PayrollInfo{
			PayFrequency: payroll.PayWeekly,
		},
	}, hash, time.Now())
	require.NoError(t, err)

	cache := store.NewMemory()
	settings := attendance.DefaultSettings()
	sessions := portal.NewManager(r, cache, settings, "test-secret", time.Hour)
	reg := payroll.NewRegister()
	h := NewHandler(sessions, r, reg, cache, settings)

	return &fixture{
		handler: h,
		router:  NewRouter(h, "test"),
		cache:   cache,
		roster:  r,
	}
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) login(t *testing.T) string {
	t.Helper()

	rec := f.do(t, http.MethodPost, "/api/auth/login", "", LoginRequest{
		Email:    "ada@example.com",
		Password: "hunter2",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// =============================================================================
// AUTH
// =============================================================================

func TestLogin_Success(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/auth/login", "", LoginRequest{
		Email:    "ada@example.com",
		Password: "hunter2",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Employee.PasswordHash, "hash never leaves the API")
	assert.True(t, resp.Session.IsActive)
}

func TestLogin_BadCredentials(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/auth/login", "", LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPortal_RequiresToken(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/me/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/me/dashboard", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// =============================================================================
// CLOCK FLOW
// =============================================================================

func TestClockInOut_Flow(t *testing.T) {
	f := newFixture(t)
	token := f.login(t)

	rec := f.do(t, http.MethodPost, "/api/me/clock-in", token, ClockInRequest{Location: "office"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var entry attendance.TimeEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.True(t, entry.Open())

	// Second clock-in the same day conflicts.
	rec = f.do(t, http.MethodPost, "/api/me/clock-in", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/me/clock-out", token, ClockOutRequest{Notes: "done"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var closed attendance.TimeEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &closed))
	assert.True(t, closed.Closed())

	// Balances exist for the day.
	rec = f.do(t, http.MethodGet, "/api/me/balances", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var balances []payroll.DailyBalance
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &balances))
	assert.Len(t, balances, 1)
}

func TestClockOut_WithoutEntryConflicts(t *testing.T) {
	f := newFixture(t)
	token := f.login(t)

	rec := f.do(t, http.MethodPost, "/api/me/clock-out", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	token := f.login(t)

	rec := f.do(t, http.MethodGet, "/api/me/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats portal.DashboardStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 20, stats.LeaveBalance.Vacation)
}

// =============================================================================
// REQUESTS
// =============================================================================

func TestLeaveFlow(t *testing.T) {
	f := newFixture(t)
	token := f.login(t)

	rec := f.do(t, http.MethodPost, "/api/me/leaves", token, portal.LeaveRequestForm{
		Type:      portal.LeaveVacation,
		StartDate: attendance.NewDate(2026, time.September, 7),
		EndDate:   attendance.NewDate(2026, time.September, 11),
		Reason:    "trip",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var req portal.LeaveRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &req))
	assert.Equal(t, 5, req.Days)

	rec = f.do(t, http.MethodPost, "/api/me/leaves/"+req.ID+"/cancel", token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Cancelling again conflicts.
	rec = f.do(t, http.MethodPost, "/api/me/leaves/"+req.ID+"/cancel", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

// =============================================================================
// ADMIN
// =============================================================================

func TestAdmin_EmployeeCRUD(t *testing.T) {
	f := newFixture(t)

	form := roster.EmployeeForm{
		FirstName:  "Grace",
		LastName:   "Hopper",
		Email:      "grace@example.com",
		Position:   "Engineer",
		Department: "Research",
		HireDate:   attendance.NewDate(2025, time.March, 3),
		Salary:     decimal.NewFromInt(120000),
		Password:   "s3cret",
	}
	rec := f.do(t, http.MethodPost, "/api/admin/employees", "", CreateEmployeeRequest{EmployeeForm: form})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created roster.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Empty(t, created.PasswordHash)

	rec = f.do(t, http.MethodGet, "/api/admin/employees/"+created.ID, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/admin/employees/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/admin/employees/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdmin_CreateEmployeeValidation(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/admin/employees", "", CreateEmployeeRequest{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Fields, "field messages surface to the form")
}

func TestAdmin_PayrollFlow(t *testing.T) {
	f := newFixture(t)
	token := f.login(t)

	// Give the employee a closed entry so processing has hours to price.
	rec := f.do(t, http.MethodPost, "/api/me/clock-in", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = f.do(t, http.MethodPost, "/api/me/clock-out", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	today := attendance.Today()
	rec = f.do(t, http.MethodPost, "/api/admin/payroll/periods", "", CreatePeriodRequest{
		StartDate: today.AddDays(-7),
		EndDate:   today.AddDays(7),
		PayDate:   today.AddDays(10),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var period payroll.PayrollPeriod
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &period))

	rec = f.do(t, http.MethodPost, fmt.Sprintf("/api/admin/payroll/periods/%s/process", period.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var processed payroll.PayrollPeriod
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &processed))
	assert.Equal(t, payroll.PeriodProcessed, processed.Status)

	// Re-processing conflicts.
	rec = f.do(t, http.MethodPost, fmt.Sprintf("/api/admin/payroll/periods/%s/process", period.ID), "", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodGet, fmt.Sprintf("/api/admin/payroll/periods/%s/payslips", period.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var slips []payroll.PaySlip
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slips))
	require.Len(t, slips, 1)

	// The slip renders as a PDF.
	rec = f.do(t, http.MethodGet, "/api/admin/payslips/"+slips[0].ID+"/pdf", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.NotZero(t, rec.Body.Len())
}

func TestAdmin_Dashboard(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/admin/dashboard", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats roster.DashboardStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.TotalEmployees)
}

// =============================================================================
// SNAPSHOT MIRRORING
// =============================================================================

func TestMutationsMirrorSnapshots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	token := f.login(t)

	rec := f.do(t, http.MethodPost, "/api/me/clock-in", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	// The session snapshot now holds the open entry.
	emp, ok := f.roster.ByEmail("ada@example.com")
	require.True(t, ok)
	var snap portal.SessionSnapshot
	found, err := store.Load(ctx, f.cache, store.SessionKey(emp.ID), &snap)
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, snap.Entries, 1)

	// Admin mutations mirror the admin snapshot.
	rec = f.do(t, http.MethodPost, "/api/admin/payroll/periods", "", CreatePeriodRequest{
		StartDate: attendance.Today(),
		EndDate:   attendance.Today().AddDays(6),
		PayDate:   attendance.Today().AddDays(11),
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var admin AdminSnapshot
	found, err = store.Load(ctx, f.cache, store.AdminKey, &admin)
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, admin.Periods, 1)
	assert.Len(t, admin.Employees, 1)
}
