/*
requests.go - Leave requests, complaints and resignation letters

PURPOSE:
  The self-service filings an employee submits through the portal. Each is
  recorded into the session state; HR-side workflow (approval, investigation)
  is out of scope for the portal, which only files and cancels.
*/
package portal

import (
	"time"

	"github.com/google/uuid"
)

// SubmitLeaveRequest files a pending leave request. Days counts calendar
// days, inclusive of both endpoints.
func (s *State) SubmitLeaveRequest(form LeaveRequestForm, now time.Time) LeaveRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	days := 0
	for d := form.StartDate; d.BeforeOrEqual(form.EndDate); d = d.AddDays(1) {
		days++
	}

	req := LeaveRequest{
		ID:          uuid.NewString(),
		EmployeeID:  s.employee.ID,
		Type:        form.Type,
		StartDate:   form.StartDate,
		EndDate:     form.EndDate,
		Days:        days,
		Reason:      form.Reason,
		Status:      LeavePending,
		AppliedDate: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.leaves = append([]LeaveRequest{req}, s.leaves...)
	s.touchLocked(now)
	return req
}

// CancelLeaveRequest cancels a still-pending request.
func (s *State) CancelLeaveRequest(id string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, req := range s.leaves {
		if req.ID != id {
			continue
		}
		if req.Status != LeavePending {
			return ErrLeaveNotPending
		}
		req.Status = LeaveCancelled
		req.UpdatedAt = now
		s.leaves[i] = req
		s.touchLocked(now)
		return nil
	}
	return ErrLeaveNotFound
}

func (s *State) SubmitComplaint(form ComplaintForm, now time.Time) Complaint {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := Complaint{
		ID:            uuid.NewString(),
		EmployeeID:    s.employee.ID,
		Title:         form.Title,
		Description:   form.Description,
		Category:      form.Category,
		Priority:      form.Priority,
		Status:        ComplaintSubmitted,
		IsAnonymous:   form.IsAnonymous,
		SubmittedDate: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.complaints = append([]Complaint{c}, s.complaints...)
	s.touchLocked(now)
	return c
}

// SubmitResignation files the session's resignation letter. Only one letter
// may exist per session.
func (s *State) SubmitResignation(form ResignationForm, now time.Time) (ResignationLetter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.resignation != nil {
		return ResignationLetter{}, ErrResignationFiled
	}

	r := ResignationLetter{
		ID:                 uuid.NewString(),
		EmployeeID:         s.employee.ID,
		LastWorkingDay:     form.LastWorkingDay,
		Reason:             form.Reason,
		AdditionalComments: form.AdditionalComments,
		Status:             ResignationSubmitted,
		SubmittedDate:      now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	s.resignation = &r
	s.touchLocked(now)
	return r, nil
}
