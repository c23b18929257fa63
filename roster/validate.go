package roster

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/chainpay/hr-engine/attendance"
	"github.com/chainpay/hr-engine/payroll"
)

// EmployeeForm is the mutable input for creating or updating an employee.
type EmployeeForm struct {
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Position   string          `json:"position"`
	Department string          `json:"department"`
	HireDate   attendance.Date `json:"hire_date"`
	Salary     decimal.Decimal `json:"salary"`
	Status     EmployeeStatus  `json:"status"`

	PayrollInfo      payroll.PayrollInfo `json:"payroll_info"`
	Address          Address             `json:"address"`
	EmergencyContact EmergencyContact    `json:"emergency_contact"`

	Password string `json:"password,omitempty"`
}

// FieldError reports one invalid form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates every failed field so a form can surface them
// all at once.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the form the way the employee dialog does: names, a
// plausible email, position, department, hire date and a positive salary are
// all required. Returns nil when the form is acceptable.
func (f EmployeeForm) Validate() error {
	var errs ValidationErrors

	if f.FirstName == "" || f.LastName == "" {
		errs = append(errs, FieldError{"name", "first name and last name are required"})
	}
	if f.Email == "" || !strings.Contains(f.Email, "@") {
		errs = append(errs, FieldError{"email", "valid email address is required"})
	}
	if f.Position == "" || f.Department == "" {
		errs = append(errs, FieldError{"position", "position and department are required"})
	}
	if f.HireDate.IsZero() {
		errs = append(errs, FieldError{"hire_date", "hire date is required"})
	}
	if f.Salary.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, FieldError{"salary", "valid salary is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
