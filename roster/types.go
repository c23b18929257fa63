/*
types.go - Employee roster entities

PURPOSE:
  The full employee record owned by the admin side. The payroll package sees
  only the EmployeeRef slice of it; the portal reads it through a session.

SEE ALSO:
  - roster.go: The roster store
  - validate.go: Form validation for create/update
*/
package roster

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/chainpay/hr-engine/attendance"
	"github.com/chainpay/hr-engine/payroll"
)

// =============================================================================
// EMPLOYEE
// =============================================================================

type EmployeeStatus string

const (
	StatusActive     EmployeeStatus = "active"
	StatusInactive   EmployeeStatus = "inactive"
	StatusTerminated EmployeeStatus = "terminated"
)

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
}

type Employee struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"` // human-facing number, EMP0001
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Position   string `json:"position"`
	Department string `json:"department"`

	HireDate attendance.Date `json:"hire_date"`
	Salary   decimal.Decimal `json:"salary"` // annual
	Status   EmployeeStatus  `json:"status"`

	PayrollInfo      payroll.PayrollInfo `json:"payroll_info"`
	Address          Address             `json:"address"`
	EmergencyContact EmergencyContact    `json:"emergency_contact"`

	// bcrypt hash; empty means the account cannot log in.
	PasswordHash string `json:"password_hash,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

func (e Employee) Active() bool {
	return e.Status == StatusActive
}

// PayRef projects the record down to what payslip generation needs.
func (e Employee) PayRef() payroll.EmployeeRef {
	return payroll.EmployeeRef{
		ID:           e.ID,
		Name:         e.FullName(),
		AnnualSalary: e.Salary,
		Info:         e.PayrollInfo,
	}
}
