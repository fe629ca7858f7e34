// internal/domain/models/employee.go
package models

import "time"

// Employee status values.
const (
	EmployeeActive   = "Active"
	EmployeeInactive = "Inactive"
)

// NoTime is what the dashboards show for a check-in/out that has not happened.
const NoTime = "--:-- --"

// Employee is a roster entry shown on the admin dashboard.
type Employee struct {
	ID             string
	Name           string
	Position       string
	Department     string
	Email          string
	Phone          string
	Status         string // Active | Inactive
	CheckIn        string // e.g. "09:02 AM" or NoTime
	CheckOut       string
	HoursThisWeek  float64
	AttendanceRate int       // percent
	Location       *GeoPoint // nil when the employee is not reporting a position
	CreatedAt      time.Time
}

// IsActive reports whether the employee is currently marked active.
func (e Employee) IsActive() bool {
	return e.Status == EmployeeActive
}

// Initials returns up to two initials for avatar placeholders.
func (e Employee) Initials() string {
	out := make([]rune, 0, 2)
	takeNext := true
	for _, r := range e.Name {
		if r == ' ' {
			takeNext = true
			continue
		}
		if takeNext {
			out = append(out, r)
			takeNext = false
			if len(out) == 2 {
				break
			}
		}
	}
	return string(out)
}

// AttendanceSummary is the aggregate card set on the admin overview.
type AttendanceSummary struct {
	TotalEmployees   int
	PresentToday     int
	OnLeave          int
	Absent           int
	LateArrivals     int
	AverageWorkHours float64
}

// AttendanceRecord is one day in an employee's attendance log.
type AttendanceRecord struct {
	Date     time.Time
	CheckIn  string
	CheckOut string
	Hours    float64
	Status   string // Present | Late | Absent | Leave
}
