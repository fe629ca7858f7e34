// internal/domain/models/leave.go
package models

import "time"

// Leave request states.
const (
	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveRejected = "rejected"
)

// LeaveRequest is a time-off request filed by an employee.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	From       time.Time
	To         time.Time
	Reason     string
	Status     string
	CreatedAt  time.Time
}

// Days returns the inclusive number of calendar days covered.
func (l LeaveRequest) Days() int {
	if l.To.Before(l.From) {
		return 0
	}
	return int(l.To.Sub(l.From).Hours()/24) + 1
}
