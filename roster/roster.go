/*
roster.go - Admin employee roster

PURPOSE:
  Mutex-guarded in-memory collection of employee records. The admin side's
  half of the persisted snapshot; the payroll register holds the other half.

SEE ALSO:
  - stats.go: Admin dashboard aggregation over the roster
*/
package roster

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrEmployeeNotFound is returned when a referenced employee does not
	// exist in the roster.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrDuplicateEmail is returned when adding an employee whose email is
	// already on the roster.
	ErrDuplicateEmail = errors.New("email already registered")
)

// =============================================================================
// ROSTER
// =============================================================================

type Roster struct {
	mu        sync.RWMutex
	employees []Employee
	nextNum   int
}

func NewRoster() *Roster {
	return &Roster{nextNum: 1}
}

// Add validates the form and appends a new employee record. The password
// hash is computed by the caller; the roster never sees plaintext.
func (r *Roster) Add(form EmployeeForm, passwordHash string, now time.Time) (Employee, error) {
	if err := form.Validate(); err != nil {
		return Employee{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.employees {
		if strings.EqualFold(e.Email, form.Email) {
			return Employee{}, ErrDuplicateEmail
		}
	}

	status := form.Status
	if status == "" {
		status = StatusActive
	}

	e := Employee{
		ID:               uuid.NewString(),
		EmployeeID:       fmt.Sprintf("EMP%04d", r.nextNum),
		FirstName:        form.FirstName,
		LastName:         form.LastName,
		Email:            form.Email,
		Phone:            form.Phone,
		Position:         form.Position,
		Department:       form.Department,
		HireDate:         form.HireDate,
		Salary:           form.Salary,
		Status:           status,
		PayrollInfo:      form.PayrollInfo,
		Address:          form.Address,
		EmergencyContact: form.EmergencyContact,
		PasswordHash:     passwordHash,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	r.nextNum++
	r.employees = append(r.employees, e)
	return e, nil
}

// Update validates the form and replaces the mutable fields of an existing
// record. Identity, employee number, password hash and CreatedAt survive.
func (r *Roster) Update(id string, form EmployeeForm, now time.Time) (Employee, error) {
	if err := form.Validate(); err != nil {
		return Employee{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.employees {
		if e.ID != id {
			continue
		}
		e.FirstName = form.FirstName
		e.LastName = form.LastName
		e.Email = form.Email
		e.Phone = form.Phone
		e.Position = form.Position
		e.Department = form.Department
		e.HireDate = form.HireDate
		e.Salary = form.Salary
		if form.Status != "" {
			e.Status = form.Status
		}
		e.PayrollInfo = form.PayrollInfo
		e.Address = form.Address
		e.EmergencyContact = form.EmergencyContact
		e.UpdatedAt = now
		r.employees[i] = e
		return e, nil
	}
	return Employee{}, ErrEmployeeNotFound
}

func (r *Roster) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.employees {
		if e.ID == id {
			r.employees = append(r.employees[:i], r.employees[i+1:]...)
			return nil
		}
	}
	return ErrEmployeeNotFound
}

func (r *Roster) Get(id string) (Employee, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.employees {
		if e.ID == id {
			return e, true
		}
	}
	return Employee{}, false
}

// ByEmail is the login lookup. Case-insensitive.
func (r *Roster) ByEmail(email string) (Employee, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.employees {
		if strings.EqualFold(e.Email, email) {
			return e, true
		}
	}
	return Employee{}, false
}

// Filters narrows List output. Zero-valued fields match everything.
type Filters struct {
	Search     string
	Department string
	Status     EmployeeStatus
	Position   string
}

func (f Filters) match(e Employee) bool {
	if f.Department != "" && e.Department != f.Department {
		return false
	}
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	if f.Position != "" && e.Position != f.Position {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		haystack := strings.ToLower(e.FullName() + " " + e.Email + " " + e.EmployeeID)
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

func (r *Roster) List(f Filters) []Employee {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Employee
	for _, e := range r.employees {
		if f.match(e) {
			out = append(out, e)
		}
	}
	return out
}

// =============================================================================
// SNAPSHOT SUPPORT
// =============================================================================

func (r *Roster) Snapshot() []Employee {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Employee, len(r.employees))
	copy(out, r.employees)
	return out
}

// Restore replaces the roster from a persisted snapshot and re-derives the
// employee number sequence from the restored records.
func (r *Roster) Restore(employees []Employee) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.employees = employees
	r.nextNum = 1
	for _, e := range employees {
		var n int
		if _, err := fmt.Sscanf(e.EmployeeID, "EMP%d", &n); err == nil && n >= r.nextNum {
			r.nextNum = n + 1
		}
	}
}
