/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. CORS:          Cross-origin requests for the frontend
  2. RequestLogger: Structured request logging (httplog over slog)
  3. CleanPath
  4. Recoverer:     Panic recovery (500 instead of crash)
  5. Heartbeat:     Liveness probe on /health

ROUTE GROUPS:
  /api/auth/*       Portal login/logout
  /api/me/*         Employee portal (bearer token)
  /api/admin/*      Admin roster and payroll operations

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, env string) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-engine"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))
	r.Use(middleware.CleanPath)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/health"))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Login)
			r.With(h.sessionMiddleware).Post("/logout", h.Logout)
		})

		// Employee portal, behind the session token.
		r.Route("/me", func(r chi.Router) {
			r.Use(h.sessionMiddleware)

			r.Get("/", h.Me)
			r.Get("/dashboard", h.Dashboard)
			r.Post("/clock-in", h.ClockIn)
			r.Post("/clock-out", h.ClockOut)
			r.Get("/entries", h.ListEntries)
			r.Get("/balances", h.ListBalances)
			r.Post("/balances/recalculate", h.RecalculateBalance)

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", h.ListLeaves)
				r.Post("/", h.SubmitLeave)
				r.Post("/{id}/cancel", h.CancelLeave)
			})
			r.Route("/complaints", func(r chi.Router) {
				r.Get("/", h.ListComplaints)
				r.Post("/", h.SubmitComplaint)
			})
			r.Route("/resignation", func(r chi.Router) {
				r.Get("/", h.GetResignation)
				r.Post("/", h.SubmitResignation)
			})
		})

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.ListEmployees)
				r.Post("/", h.CreateEmployee)
				r.Get("/{id}", h.GetEmployee)
				r.Put("/{id}", h.UpdateEmployee)
				r.Delete("/{id}", h.DeleteEmployee)
			})
			r.Get("/dashboard", h.AdminDashboard)
			r.Route("/payroll/periods", func(r chi.Router) {
				r.Get("/", h.ListPeriods)
				r.Post("/", h.CreatePeriod)
				r.Delete("/{id}", h.DeletePeriod)
				r.Post("/{id}/process", h.ProcessPeriod)
				r.Get("/{id}/payslips", h.ListPeriodSlips)
			})
			r.Route("/payslips", func(r chi.Router) {
				r.Get("/{id}", h.GetSlip)
				r.Get("/{id}/pdf", h.GetSlipPDF)
			})
		})
	})

	return r
}
