// internal/app/store/workday/workdaystore.go
package workdaystore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dalemusser/attendhub/internal/app/system/timezones"
	"github.com/dalemusser/attendhub/internal/domain/models"
	"github.com/google/uuid"
)

// ClockFormat is how check-in/out times are displayed.
const ClockFormat = "03:04 PM"

// hourMinute is the layout of SiteSettings.WorkdayStart and WorkdayEnd.
const hourMinute = "15:04"

var (
	ErrAlreadyCheckedIn  = errors.New("already checked in")
	ErrAlreadyCheckedOut = errors.New("already checked out")
	ErrInvalidRange      = errors.New("leave ends before it starts")
	ErrInsufficientLeave = errors.New("not enough leave days remaining")
)

// Settings supplies the site-wide workday rules and leave allowance.
type Settings interface {
	Get(ctx context.Context) models.SiteSettings
}

// Day is one employee's dashboard state for today.
type Day struct {
	CheckedIn       bool
	CheckIn         string
	CheckOut        string
	Late            bool // last check-in was after the grace period
	LeftEarly       bool // last check-out was before the workday end
	TotalHours      string
	RemainingLeaves int
	Tasks           []models.Task
	Meetings        []models.Meeting
	Activity        []models.Activity
}

type record struct {
	day       Day
	leaves    []models.LeaveRequest
	leaveUsed int // days reserved by requests this year
}

// Store keeps per-employee workday state. Records are created on first use.
// The leave allowance, lateness cutoff and workday end are read from
// settings on every call, so admin changes apply immediately.
type Store struct {
	mu       sync.RWMutex
	records  map[string]*record
	settings Settings
	now      func() time.Time
}

// New creates an empty store reading its rules from settings. now may be
// nil.
func New(settings Settings, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{records: make(map[string]*record), settings: settings, now: now}
}

// remaining is the allowance left after used days; never negative.
func remaining(set models.SiteSettings, used int) int {
	return max(set.AnnualLeaveDays-used, 0)
}

// clockAt parses an "HH:MM" setting as that time on day's date in day's
// zone.
func clockAt(day time.Time, hm string) (time.Time, bool) {
	t, err := time.Parse(hourMinute, hm)
	if err != nil {
		return time.Time{}, false
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, day.Location()), true
}

// localNow is the current time in the workplace zone.
func (s *Store) localNow(set models.SiteSettings) time.Time {
	return s.now().In(timezones.Location(set.Timezone))
}

// recordLocked returns the record for id, seeding it if needed. Caller
// holds the write lock.
func (s *Store) recordLocked(id string) *record {
	if rec, ok := s.records[id]; ok {
		return rec
	}
	rec := &record{day: s.seed(id)}
	if id == "emp-1" {
		rec.leaveUsed = 8
	}
	s.records[id] = rec
	return rec
}

func (s *Store) seed(id string) Day {
	now := s.now()
	if id == "emp-1" {
		return Day{
			CheckedIn:       true,
			CheckIn:         "09:02 AM",
			CheckOut:        models.NoTime,
			TotalHours:      "24h 30m",
			Meetings: []models.Meeting{
				{ID: "m-1", Title: "Weekly Sprint Planning", Time: "10:30 AM", Host: "Sarah Miller"},
				{ID: "m-2", Title: "Project Review", Time: "02:15 PM", Host: "David Chen"},
			},
			Tasks: []models.Task{
				{ID: "t-1", Title: "Finish dashboard UI", Priority: "High", Status: "In Progress", Deadline: "Today"},
				{ID: "t-2", Title: "API integration", Priority: "Medium", Status: "To Do", Deadline: "Tomorrow"},
				{ID: "t-3", Title: "Documentation update", Priority: "Low", Status: "In Progress", Deadline: "28 Apr"},
			},
			Activity: []models.Activity{
				{ID: "a-1", Action: "Checked in", Actor: "You", At: now.Add(-time.Hour)},
				{ID: "a-2", Action: "Completed task: Fix login issue", Actor: "You", At: now.Add(-24 * time.Hour)},
				{ID: "a-3", Action: "Submitted timesheet", Actor: "You", At: now.Add(-25 * time.Hour)},
			},
		}
	}
	return Day{
		CheckIn:    models.NoTime,
		CheckOut:   models.NoTime,
		TotalHours: "0h 0m",
	}
}

func cloneDay(d Day) Day {
	d.Tasks = append([]models.Task(nil), d.Tasks...)
	d.Meetings = append([]models.Meeting(nil), d.Meetings...)
	d.Activity = append([]models.Activity(nil), d.Activity...)
	return d
}

// Today returns a copy of the employee's state for today, with the leave
// balance computed against the current allowance.
func (s *Store) Today(ctx context.Context, employeeID string) Day {
	set := s.settings.Get(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.recordLocked(employeeID)
	d := cloneDay(rec.day)
	d.RemainingLeaves = remaining(set, rec.leaveUsed)
	return d
}

func (s *Store) addActivityLocked(rec *record, action string) {
	a := models.Activity{ID: uuid.NewString(), Action: action, Actor: "You", At: s.now()}
	rec.day.Activity = append([]models.Activity{a}, rec.day.Activity...)
}

// CheckIn records a check-in at the current workplace time and returns the
// formatted time. A check-in later than WorkdayStart plus LateAfterMinutes
// is marked late.
func (s *Store) CheckIn(ctx context.Context, employeeID string) (string, error) {
	set := s.settings.Get(ctx)
	now := s.localNow(set)
	late := false
	if start, ok := clockAt(now, set.WorkdayStart); ok {
		late = now.After(start.Add(time.Duration(set.LateAfterMinutes) * time.Minute))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.recordLocked(employeeID)
	if rec.day.CheckedIn {
		return "", ErrAlreadyCheckedIn
	}
	at := now.Format(ClockFormat)
	rec.day.CheckedIn = true
	rec.day.CheckIn = at
	rec.day.CheckOut = models.NoTime
	rec.day.Late = late
	rec.day.LeftEarly = false
	if late {
		s.addActivityLocked(rec, "Checked in late")
	} else {
		s.addActivityLocked(rec, "Checked in")
	}
	return at, nil
}

// CheckOut records a check-out at the current workplace time and returns
// the formatted time. A check-out before WorkdayEnd is marked early.
func (s *Store) CheckOut(ctx context.Context, employeeID string) (string, error) {
	set := s.settings.Get(ctx)
	now := s.localNow(set)
	early := false
	if end, ok := clockAt(now, set.WorkdayEnd); ok {
		early = now.Before(end)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.recordLocked(employeeID)
	if !rec.day.CheckedIn {
		return "", ErrAlreadyCheckedOut
	}
	at := now.Format(ClockFormat)
	rec.day.CheckedIn = false
	rec.day.CheckOut = at
	rec.day.LeftEarly = early
	if early {
		s.addActivityLocked(rec, "Checked out early")
	} else {
		s.addActivityLocked(rec, "Checked out")
	}
	return at, nil
}

// Leaves returns the employee's leave requests, newest first.
func (s *Store) Leaves(ctx context.Context, employeeID string) []models.LeaveRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[employeeID]
	if !ok {
		return nil
	}
	out := append([]models.LeaveRequest(nil), rec.leaves...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// RequestLeave files a pending leave request and reserves its days from the
// remaining allowance in the current site settings.
func (s *Store) RequestLeave(ctx context.Context, employeeID string, from, to time.Time, reason string) (models.LeaveRequest, error) {
	if to.Before(from) {
		return models.LeaveRequest{}, ErrInvalidRange
	}
	req := models.LeaveRequest{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		From:       from,
		To:         to,
		Reason:     reason,
		Status:     models.LeavePending,
		CreatedAt:  s.now(),
	}

	set := s.settings.Get(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.recordLocked(employeeID)
	if left := remaining(set, rec.leaveUsed); req.Days() > left {
		return models.LeaveRequest{}, fmt.Errorf("%w: requested %d, remaining %d",
			ErrInsufficientLeave, req.Days(), left)
	}
	rec.leaveUsed += req.Days()
	rec.leaves = append(rec.leaves, req)
	s.addActivityLocked(rec, fmt.Sprintf("Requested leave: %s to %s",
		from.Format("Jan 2"), to.Format("Jan 2")))
	return req, nil
}
