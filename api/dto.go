/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *Request: Request body types from clients
  - *Response: Response wrappers

VALIDATION:
  Validation is done in handlers and domain code, not in DTOs. DTOs are pure
  data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/chainpay/hr-engine/attendance"
	"github.com/chainpay/hr-engine/portal"
	"github.com/chainpay/hr-engine/roster"
)

// =============================================================================
// AUTH
// =============================================================================

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token    string                 `json:"token"`
	Session  portal.EmployeeSession `json:"session"`
	Employee roster.Employee        `json:"employee"`
}

// =============================================================================
// ATTENDANCE
// =============================================================================

type ClockInRequest struct {
	Location string `json:"location,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

type ClockOutRequest struct {
	Notes string `json:"notes,omitempty"`
}

type RecalculateRequest struct {
	Date attendance.Date `json:"date"`
}

// =============================================================================
// ADMIN
// =============================================================================

type CreateEmployeeRequest struct {
	roster.EmployeeForm
}

type CreatePeriodRequest struct {
	StartDate attendance.Date `json:"start_date"`
	EndDate   attendance.Date `json:"end_date"`
	PayDate   attendance.Date `json:"pay_date"`
}

// =============================================================================
// ERRORS
// =============================================================================

type ErrorResponse struct {
	Error  string              `json:"error"`
	Fields []roster.FieldError `json:"fields,omitempty"`
}
