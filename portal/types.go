/*
Package portal holds the per-employee self-service state: the session, the
attendance entry and balance collections, and the request records the
employee files (leave, complaints, resignation).

All state lives in one State container per logged-in employee, guarded by a
mutex. Operations mutate the container atomically and never touch another
employee's state.
*/
package portal

import (
	"time"

	"github.com/chainpay/hr-engine/attendance"
	"github.com/chainpay/hr-engine/payroll"
	"github.com/chainpay/hr-engine/roster"
)

// =============================================================================
// SESSION
// =============================================================================

type EmployeeSession struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	LoginTime    time.Time `json:"login_time"`
	LastActivity time.Time `json:"last_activity"`
	IsActive     bool      `json:"is_active"`
}

// =============================================================================
// LEAVE REQUESTS
// =============================================================================

type LeaveType string

const (
	LeaveVacation  LeaveType = "vacation"
	LeaveSick      LeaveType = "sick"
	LeavePersonal  LeaveType = "personal"
	LeaveMaternity LeaveType = "maternity"
	LeavePaternity LeaveType = "paternity"
	LeaveEmergency LeaveType = "emergency"
)

type LeaveStatus string

const (
	LeavePending   LeaveStatus = "pending"
	LeaveApproved  LeaveStatus = "approved"
	LeaveRejected  LeaveStatus = "rejected"
	LeaveCancelled LeaveStatus = "cancelled"
)

type LeaveRequest struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	Type        LeaveType       `json:"type"`
	StartDate   attendance.Date `json:"start_date"`
	EndDate     attendance.Date `json:"end_date"`
	Days        int             `json:"days"`
	Reason      string          `json:"reason"`
	Status      LeaveStatus     `json:"status"`
	AppliedDate time.Time       `json:"applied_date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type LeaveRequestForm struct {
	Type      LeaveType       `json:"type"`
	StartDate attendance.Date `json:"start_date"`
	EndDate   attendance.Date `json:"end_date"`
	Reason    string          `json:"reason"`
}

// =============================================================================
// COMPLAINTS
// =============================================================================

type ComplaintCategory string

const (
	ComplaintHarassment     ComplaintCategory = "harassment"
	ComplaintDiscrimination ComplaintCategory = "discrimination"
	ComplaintSafety         ComplaintCategory = "safety"
	ComplaintPolicy         ComplaintCategory = "policy"
	ComplaintWorkplace      ComplaintCategory = "workplace"
	ComplaintOther          ComplaintCategory = "other"
)

type ComplaintPriority string

const (
	PriorityLow    ComplaintPriority = "low"
	PriorityMedium ComplaintPriority = "medium"
	PriorityHigh   ComplaintPriority = "high"
	PriorityUrgent ComplaintPriority = "urgent"
)

type ComplaintStatus string

const (
	ComplaintSubmitted   ComplaintStatus = "submitted"
	ComplaintUnderReview ComplaintStatus = "under-review"
	ComplaintResolved    ComplaintStatus = "resolved"
	ComplaintClosed      ComplaintStatus = "closed"
)

type Complaint struct {
	ID            string            `json:"id"`
	EmployeeID    string            `json:"employee_id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Category      ComplaintCategory `json:"category"`
	Priority      ComplaintPriority `json:"priority"`
	Status        ComplaintStatus   `json:"status"`
	IsAnonymous   bool              `json:"is_anonymous"`
	SubmittedDate time.Time         `json:"submitted_date"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type ComplaintForm struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    ComplaintCategory `json:"category"`
	Priority    ComplaintPriority `json:"priority"`
	IsAnonymous bool              `json:"is_anonymous"`
}

// =============================================================================
// RESIGNATION
// =============================================================================

type ResignationStatus string

const (
	ResignationSubmitted    ResignationStatus = "submitted"
	ResignationAcknowledged ResignationStatus = "acknowledged"
	ResignationAccepted     ResignationStatus = "accepted"
	ResignationWithdrawn    ResignationStatus = "withdrawn"
)

type ResignationLetter struct {
	ID                 string            `json:"id"`
	EmployeeID         string            `json:"employee_id"`
	LastWorkingDay     attendance.Date   `json:"last_working_day"`
	Reason             string            `json:"reason"`
	AdditionalComments string            `json:"additional_comments,omitempty"`
	Status             ResignationStatus `json:"status"`
	SubmittedDate      time.Time         `json:"submitted_date"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

type ResignationForm struct {
	LastWorkingDay     attendance.Date `json:"last_working_day"`
	Reason             string          `json:"reason"`
	AdditionalComments string          `json:"additional_comments,omitempty"`
}

// =============================================================================
// SESSION SNAPSHOT - Persisted employee-side state
// =============================================================================

// SessionSnapshot is the employee side of the persisted cache: one entry per
// session, mirrored best-effort after every mutation.
type SessionSnapshot struct {
	Session     EmployeeSession        `json:"session"`
	Employee    roster.Employee        `json:"employee"`
	Entries     []attendance.TimeEntry `json:"entries"`
	Balances    []payroll.DailyBalance `json:"balances"`
	Leaves      []LeaveRequest         `json:"leave_requests"`
	Complaints  []Complaint            `json:"complaints"`
	Resignation *ResignationLetter     `json:"resignation,omitempty"`
}
