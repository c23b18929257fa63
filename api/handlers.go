/*
handlers.go - HTTP API handlers for the HR engine

PURPOSE:
  Exposes the attendance/payroll engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Auth:
    POST   /api/auth/login             Portal login
    POST   /api/auth/logout            Portal logout

  Portal (bearer token):
    GET    /api/me                     Session + employee
    GET    /api/me/dashboard           Dashboard aggregation
    POST   /api/me/clock-in            Open today's entry
    POST   /api/me/clock-out           Close today's entry
    GET    /api/me/entries             Time entries, newest first
    GET    /api/me/balances            Daily balances, newest first
    POST   /api/me/balances/recalculate Recalculate one date
    POST   /api/me/leaves              File a leave request
    GET    /api/me/leaves              List leave requests
    POST   /api/me/leaves/{id}/cancel  Cancel a pending request
    POST   /api/me/complaints          File a complaint
    GET    /api/me/complaints          List complaints
    POST   /api/me/resignation         File the resignation letter
    GET    /api/me/resignation         Fetch the resignation letter

  Admin:
    GET    /api/admin/employees        List roster (filterable)
    POST   /api/admin/employees        Create employee
    GET    /api/admin/employees/{id}   Get employee
    PUT    /api/admin/employees/{id}   Update employee
    DELETE /api/admin/employees/{id}   Delete employee
    GET    /api/admin/dashboard        Admin dashboard stats
    GET    /api/admin/payroll/periods  List payroll periods
    POST   /api/admin/payroll/periods  Create draft period
    DELETE /api/admin/payroll/periods/{id}          Delete period
    POST   /api/admin/payroll/periods/{id}/process  Process period
    GET    /api/admin/payroll/periods/{id}/payslips List period slips
    GET    /api/admin/payslips/{id}    Get pay slip
    GET    /api/admin/payslips/{id}/pdf Rendered slip PDF

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 401: Missing/invalid session token, bad credentials
  - 404: Resource not found
  - 409: Precondition conflicts (already clocked in, period processed)
  - 500: Internal errors

SECURITY NOTE:
  Admin endpoints carry no authentication yet; they are meant to sit behind
  an internal network boundary.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chainpay/hr-engine/attendance"
	"github.com/chainpay/hr-engine/auth"
	"github.com/chainpay/hr-engine/payroll"
	"github.com/chainpay/hr-engine/portal"
	"github.com/chainpay/hr-engine/roster"
	"github.com/chainpay/hr-engine/store"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Sessions *portal.Manager
	Roster   *roster.Roster
	Register *payroll.Register
	Cache    store.SnapshotStore
	Settings attendance.Settings
}

func NewHandler(sessions *portal.Manager, r *roster.Roster, reg *payroll.Register, cache store.SnapshotStore, settings attendance.Settings) *Handler {
	return &Handler{
		Sessions: sessions,
		Roster:   r,
		Register: reg,
		Cache:    cache,
		Settings: settings,
	}
}

type contextKey string

const stateKey contextKey = "portal-state"

// sessionMiddleware resolves the bearer token to a live session state.
func (h *Handler) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			writeError(w, http.StatusUnauthorized, portal.ErrNoSession)
			return
		}
		state, err := h.Sessions.Authenticate(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, err)
			return
		}
		ctx := context.WithValue(r.Context(), stateKey, state)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionState(r *http.Request) *portal.State {
	return r.Context().Value(stateKey).(*portal.State)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := ErrorResponse{Error: err.Error()}
	var verrs roster.ValidationErrors
	if errors.As(err, &verrs) {
		resp.Fields = verrs
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps domain sentinels onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, portal.ErrInvalidCredentials),
		errors.Is(err, portal.ErrNoSession),
		errors.Is(err, auth.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, err)
	case errors.Is(err, roster.ErrEmployeeNotFound),
		errors.Is(err, payroll.ErrPeriodNotFound),
		errors.Is(err, payroll.ErrSlipNotFound),
		errors.Is(err, portal.ErrLeaveNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, attendance.ErrAlreadyClockedIn),
		errors.Is(err, attendance.ErrNoOpenEntry),
		errors.Is(err, attendance.ErrEntryClosed),
		errors.Is(err, portal.ErrNoEntryForDate),
		errors.Is(err, portal.ErrLeaveNotPending),
		errors.Is(err, portal.ErrResignationFiled),
		errors.Is(err, roster.ErrDuplicateEmail),
		errors.Is(err, payroll.ErrPeriodProcessed):
		writeError(w, http.StatusConflict, err)
	default:
		var verrs roster.ValidationErrors
		if errors.As(err, &verrs) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
	}
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// sanitize strips credentials from an employee record before it leaves the
// API.
func sanitize(e roster.Employee) roster.Employee {
	e.PasswordHash = ""
	return e
}

// persistSession mirrors the session snapshot after a mutation. Best-effort.
func (h *Handler) persistSession(ctx context.Context, state *portal.State) {
	_ = h.Sessions.Persist(ctx, state.Session().ID)
}

// persistAdmin mirrors the admin snapshot after a mutation. Best-effort.
func (h *Handler) persistAdmin(ctx context.Context) {
	_ = SaveAdminSnapshot(ctx, h.Cache, h.Roster, h.Register)
}

// =============================================================================
// AUTH HANDLERS
// =============================================================================

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	token, state, err := h.Sessions.Login(r.Context(), req.Email, req.Password, time.Now())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Token:    token,
		Session:  state.Session(),
		Employee: sanitize(state.Employee()),
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)
	if err := h.Sessions.Logout(r.Context(), state.Session().ID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// PORTAL HANDLERS
// =============================================================================

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"session":  state.Session(),
		"employee": sanitize(state.Employee()),
	})
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)
	writeJSON(w, http.StatusOK, state.Dashboard(time.Now()))
}

func (h *Handler) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req ClockInRequest
	if r.ContentLength > 0 {
		if err := decode(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	state := sessionState(r)
	entry, err := state.ClockIn(time.Now(), req.Location, req.Notes)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.persistSession(r.Context(), state)
	writeJSON(w, http.StatusCreated, entry)
}

func (h *Handler) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req ClockOutRequest
	if r.ContentLength > 0 {
		if err := decode(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	state := sessionState(r)
	entry, err := state.ClockOut(time.Now(), req.Notes)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.persistSession(r.Context(), state)
	writeJSON(w, http.StatusOK, entry)
}

func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionState(r).Entries())
}

func (h *Handler) ListBalances(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionState(r).Balances())
}

func (h *Handler) RecalculateBalance(w http.ResponseWriter, r *http.Request) {
	var req RecalculateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	state := sessionState(r)
	if err := state.RecalculateBalance(req.Date, time.Now()); err != nil {
		writeDomainError(w, err)
		return
	}
	h.persistSession(r.Context(), state)
	writeJSON(w, http.StatusOK, state.Balances())
}

func (h *Handler) SubmitLeave(w http.ResponseWriter, r *http.Request) {
	var form portal.LeaveRequestForm
	if err := decode(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	state := sessionState(r)
	req := state.SubmitLeaveRequest(form, time.Now())
	h.persistSession(r.Context(), state)
	writeJSON(w, http.StatusCreated, req)
}

func (h *Handler) ListLeaves(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionState(r).LeaveRequests())
}

func (h *Handler) CancelLeave(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)
	if err := state.CancelLeaveRequest(chi.URLParam(r, "id"), time.Now()); err != nil {
		writeDomainError(w, err)
		return
	}
	h.persistSession(r.Context(), state)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SubmitComplaint(w http.ResponseWriter, r *http.Request) {
	var form portal.ComplaintForm
	if err := decode(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	state := sessionState(r)
	c := state.SubmitComplaint(form, time.Now())
	h.persistSession(r.Context(), state)
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) ListComplaints(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionState(r).Complaints())
}

func (h *Handler) SubmitResignation(w http.ResponseWriter, r *http.Request) {
	var form portal.ResignationForm
	if err := decode(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	state := sessionState(r)
	letter, err := state.SubmitResignation(form, time.Now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.persistSession(r.Context(), state)
	writeJSON(w, http.StatusCreated, letter)
}

func (h *Handler) GetResignation(w http.ResponseWriter, r *http.Request) {
	letter, ok := sessionState(r).Resignation()
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("no resignation letter"))
		return
	}
	writeJSON(w, http.StatusOK, letter)
}

// =============================================================================
// ADMIN HANDLERS - Roster
// =============================================================================

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := roster.Filters{
		Search:     q.Get("search"),
		Department: q.Get("department"),
		Status:     roster.EmployeeStatus(q.Get("status")),
		Position:   q.Get("position"),
	}

	employees := h.Roster.List(filters)
	out := make([]roster.Employee, 0, len(employees))
	for _, e := range employees {
		out = append(out, sanitize(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	hash := ""
	if req.Password != "" {
		var err error
		hash, err = auth.HashPassword(req.Password)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}

	emp, err := h.Roster.Add(req.EmployeeForm, hash, time.Now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.persistAdmin(r.Context())
	writeJSON(w, http.StatusCreated, sanitize(emp))
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.Roster.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, roster.ErrEmployeeNotFound)
		return
	}
	writeJSON(w, http.StatusOK, sanitize(emp))
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var form roster.EmployeeForm
	if err := decode(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	emp, err := h.Roster.Update(chi.URLParam(r, "id"), form, time.Now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.persistAdmin(r.Context())
	writeJSON(w, http.StatusOK, sanitize(emp))
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.Roster.Delete(chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	h.persistAdmin(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	stats := h.Roster.Stats(h.Register.Periods(), attendance.Today())
	for i := range stats.RecentHires {
		stats.RecentHires[i] = sanitize(stats.RecentHires[i])
	}
	writeJSON(w, http.StatusOK, stats)
}

// =============================================================================
// ADMIN HANDLERS - Payroll
// =============================================================================

func (h *Handler) ListPeriods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Register.Periods())
}

func (h *Handler) CreatePeriod(w http.ResponseWriter, r *http.Request) {
	var req CreatePeriodRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	period := h.Register.AddPeriod(req.StartDate, req.EndDate, req.PayDate, time.Now())
	h.persistAdmin(r.Context())
	writeJSON(w, http.StatusCreated, period)
}

func (h *Handler) DeletePeriod(w http.ResponseWriter, r *http.Request) {
	if err := h.Register.DeletePeriod(chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	h.persistAdmin(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// ProcessPeriod generates pay slips for every active employee from their
// cached session entries.
func (h *Handler) ProcessPeriod(w http.ResponseWriter, r *http.Request) {
	employees := h.Roster.List(roster.Filters{Status: roster.StatusActive})
	refs := make([]payroll.EmployeeRef, 0, len(employees))
	for _, e := range employees {
		refs = append(refs, e.PayRef())
	}

	entriesFor := func(employeeID string) []attendance.TimeEntry {
		var snap portal.SessionSnapshot
		found, err := store.Load(r.Context(), h.Cache, store.SessionKey(employeeID), &snap)
		if err != nil || !found {
			return nil
		}
		return snap.Entries
	}

	period, err := h.Register.Process(chi.URLParam(r, "id"), refs, entriesFor, h.Settings, time.Now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.persistAdmin(r.Context())
	writeJSON(w, http.StatusOK, period)
}

func (h *Handler) ListPeriodSlips(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.Register.Period(id); !ok {
		writeError(w, http.StatusNotFound, payroll.ErrPeriodNotFound)
		return
	}
	writeJSON(w, http.StatusOK, h.Register.Slips(id))
}

func (h *Handler) GetSlip(w http.ResponseWriter, r *http.Request) {
	slip, ok := h.Register.Slip(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, payroll.ErrSlipNotFound)
		return
	}
	writeJSON(w, http.StatusOK, slip)
}

func (h *Handler) GetSlipPDF(w http.ResponseWriter, r *http.Request) {
	slip, ok := h.Register.Slip(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, payroll.ErrSlipNotFound)
		return
	}
	period, ok := h.Register.Period(slip.PayPeriodID)
	if !ok {
		writeError(w, http.StatusNotFound, payroll.ErrPeriodNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payslip-%s.pdf", slip.ID))
	if err := payroll.RenderSlipPDF(slip, period, w); err != nil {
		writeError(w, http.StatusInternalServerError, err)
	}
}
