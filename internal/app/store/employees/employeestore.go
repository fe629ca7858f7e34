// internal/app/store/employees/employeestore.go
package employeestore

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/attendhub/internal/domain/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned when no employee has the requested ID.
var ErrNotFound = errors.New("employee not found")

// NewEmployee is the input for Create.
type NewEmployee struct {
	Name       string
	Position   string
	Department string
	Email      string
	Phone      string
}

// Store is the in-memory employee roster plus the company-wide attendance
// summary shown on the admin overview.
type Store struct {
	mu        sync.RWMutex
	employees map[string]models.Employee
	summary   models.AttendanceSummary
	now       func() time.Time
}

// New returns a roster seeded with the demo employees. now may be nil.
func New(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	s := &Store{
		employees: make(map[string]models.Employee),
		now:       now,
		summary: models.AttendanceSummary{
			TotalEmployees:   42,
			PresentToday:     38,
			OnLeave:          3,
			Absent:           1,
			LateArrivals:     5,
			AverageWorkHours: 7.8,
		},
	}
	created := now().Add(-90 * 24 * time.Hour)
	for i, e := range seedEmployees() {
		e.CreatedAt = created.Add(time.Duration(i) * time.Minute)
		s.employees[e.ID] = e
	}
	return s
}

func seedEmployees() []models.Employee {
	return []models.Employee{
		{
			ID: "emp-1", Name: "Alex Johnson", Position: "Software Developer", Department: "Engineering",
			Email: "alex.j@company.com", Phone: "(555) 123-4567", Status: models.EmployeeActive,
			CheckIn: "09:02 AM", CheckOut: models.NoTime, HoursThisWeek: 24.5, AttendanceRate: 98,
			Location: &models.GeoPoint{Lat: 40.7128, Lng: -74.006},
		},
		{
			ID: "emp-2", Name: "Sarah Miller", Position: "UX Designer", Department: "Design",
			Email: "sarah.m@company.com", Phone: "(555) 987-6543", Status: models.EmployeeActive,
			CheckIn: "08:47 AM", CheckOut: models.NoTime, HoursThisWeek: 26, AttendanceRate: 100,
			Location: &models.GeoPoint{Lat: 40.7142, Lng: -74.0078},
		},
		{
			ID: "emp-3", Name: "David Chen", Position: "Project Manager", Department: "Product",
			Email: "david.c@company.com", Phone: "(555) 456-7890", Status: models.EmployeeInactive,
			CheckIn: models.NoTime, CheckOut: models.NoTime, HoursThisWeek: 18, AttendanceRate: 85,
		},
	}
}

// List returns the roster in the order employees were added.
func (s *Store) List(ctx context.Context) []models.Employee {
	s.mu.RLock()
	out := make([]models.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		out = append(out, e)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Get returns one employee.
func (s *Store) Get(ctx context.Context, id string) (models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.employees[id]
	if !ok {
		return models.Employee{}, ErrNotFound
	}
	return e, nil
}

// Create adds an employee. New employees start inactive with no
// attendance for today.
func (s *Store) Create(ctx context.Context, in NewEmployee) (models.Employee, error) {
	e := models.Employee{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(in.Name),
		Position:   strings.TrimSpace(in.Position),
		Department: strings.TrimSpace(in.Department),
		Email:      strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:      strings.TrimSpace(in.Phone),
		Status:     models.EmployeeInactive,
		CheckIn:    models.NoTime,
		CheckOut:   models.NoTime,
		CreatedAt:  s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[e.ID] = e
	s.summary.TotalEmployees++
	return e, nil
}

// Departments returns the distinct departments on the roster, sorted.
func (s *Store) Departments(ctx context.Context) []string {
	s.mu.RLock()
	seen := map[string]bool{}
	for _, e := range s.employees {
		if e.Department != "" {
			seen[e.Department] = true
		}
	}
	s.mu.RUnlock()

	out := make([]string, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Summary returns the attendance summary cards.
func (s *Store) Summary(ctx context.Context) models.AttendanceSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

// RecordCheckIn marks the employee active with the given check-in time and
// clears any earlier check-out.
func (s *Store) RecordCheckIn(ctx context.Context, id, at string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.employees[id]
	if !ok {
		return ErrNotFound
	}
	if e.Status != models.EmployeeActive {
		s.summary.PresentToday++
	}
	e.Status = models.EmployeeActive
	e.CheckIn = at
	e.CheckOut = models.NoTime
	s.employees[id] = e
	return nil
}

// RecordCheckOut marks the employee inactive with the given check-out time.
func (s *Store) RecordCheckOut(ctx context.Context, id, at string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.employees[id]
	if !ok {
		return ErrNotFound
	}
	e.Status = models.EmployeeInactive
	e.CheckOut = at
	s.employees[id] = e
	return nil
}

// Attendance returns the employee's attendance log for the last `days`
// weekdays, newest first. The history is synthetic but stable for a given
// employee and date.
func (s *Store) Attendance(ctx context.Context, id string, days int) ([]models.AttendanceRecord, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	out := make([]models.AttendanceRecord, 0, days)
	day := truncateDay(s.now()).AddDate(0, 0, -1)
	for len(out) < days {
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			out = append(out, syntheticDay(id, day))
		}
		day = day.AddDate(0, 0, -1)
	}
	return out, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func syntheticDay(id string, day time.Time) models.AttendanceRecord {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id + day.Format("2006-01-02")))
	n := h.Sum32() % 20

	switch {
	case n == 0:
		return models.AttendanceRecord{Date: day, CheckIn: models.NoTime, CheckOut: models.NoTime, Status: "Absent"}
	case n == 1:
		return models.AttendanceRecord{Date: day, CheckIn: models.NoTime, CheckOut: models.NoTime, Status: "Leave"}
	case n <= 4:
		return models.AttendanceRecord{Date: day, CheckIn: fmt.Sprintf("09:%02d AM", 15+n*3), CheckOut: "05:45 PM", Hours: 8.2, Status: "Late"}
	default:
		return models.AttendanceRecord{Date: day, CheckIn: fmt.Sprintf("08:%02d AM", 40+n), CheckOut: "05:30 PM", Hours: 8.5, Status: "Present"}
	}
}
