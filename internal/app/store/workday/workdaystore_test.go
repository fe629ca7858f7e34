package workdaystore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	settingsstore "github.com/dalemusser/attendhub/internal/app/store/settings"
	workdaystore "github.com/dalemusser/attendhub/internal/app/store/workday"
	"github.com/dalemusser/attendhub/internal/domain/models"
)

func newStore(at time.Time) *workdaystore.Store {
	return workdaystore.New(settingsstore.New(), func() time.Time { return at })
}

func TestToday_SeededEmployee(t *testing.T) {
	s := newStore(time.Date(2025, 4, 23, 10, 0, 0, 0, time.UTC))
	d := s.Today(context.Background(), "emp-1")

	if !d.CheckedIn || d.CheckIn != "09:02 AM" || d.CheckOut != models.NoTime {
		t.Errorf("check state = %+v", d)
	}
	if d.TotalHours != "24h 30m" || d.RemainingLeaves != 12 {
		t.Errorf("stats = %q / %d", d.TotalHours, d.RemainingLeaves)
	}
	if len(d.Tasks) != 3 || len(d.Meetings) != 2 || len(d.Activity) != 3 {
		t.Errorf("tasks=%d meetings=%d activity=%d", len(d.Tasks), len(d.Meetings), len(d.Activity))
	}
}

func TestToday_OtherEmployeeDefaults(t *testing.T) {
	s := newStore(time.Now())
	d := s.Today(context.Background(), "emp-9")
	if d.CheckedIn || d.RemainingLeaves != 20 || len(d.Tasks) != 0 {
		t.Errorf("defaults = %+v", d)
	}
}

func TestToday_ReturnsCopy(t *testing.T) {
	s := newStore(time.Now())
	d := s.Today(context.Background(), "emp-1")
	d.Tasks[0].Title = "changed"
	if s.Today(context.Background(), "emp-1").Tasks[0].Title == "changed" {
		t.Error("Today exposed internal slice")
	}
}

func TestCheckOutThenIn(t *testing.T) {
	s := newStore(time.Date(2025, 4, 23, 17, 31, 0, 0, time.UTC))
	ctx := context.Background()

	at, err := s.CheckOut(ctx, "emp-1")
	if err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	if at != "05:31 PM" {
		t.Errorf("check-out time = %q", at)
	}
	if _, err := s.CheckOut(ctx, "emp-1"); !errors.Is(err, workdaystore.ErrAlreadyCheckedOut) {
		t.Errorf("second CheckOut err = %v", err)
	}

	d := s.Today(ctx, "emp-1")
	if d.CheckedIn || d.CheckOut != "05:31 PM" || d.Activity[0].Action != "Checked out" {
		t.Errorf("after check-out: %+v", d)
	}

	if _, err := s.CheckIn(ctx, "emp-1"); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if _, err := s.CheckIn(ctx, "emp-1"); !errors.Is(err, workdaystore.ErrAlreadyCheckedIn) {
		t.Errorf("second CheckIn err = %v", err)
	}
	d = s.Today(ctx, "emp-1")
	if !d.CheckedIn || d.CheckOut != models.NoTime {
		t.Errorf("after check-in: %+v", d)
	}
}

func TestRequestLeave(t *testing.T) {
	now := time.Date(2025, 4, 23, 10, 0, 0, 0, time.UTC)
	s := newStore(now)
	ctx := context.Background()

	from := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 5, 7, 0, 0, 0, 0, time.UTC)
	req, err := s.RequestLeave(ctx, "emp-1", from, to, "Family event")
	if err != nil {
		t.Fatalf("RequestLeave: %v", err)
	}
	if req.Status != models.LeavePending || req.Days() != 3 || req.ID == "" {
		t.Errorf("request = %+v", req)
	}
	if got := s.Today(ctx, "emp-1").RemainingLeaves; got != 9 {
		t.Errorf("RemainingLeaves = %d, want 9", got)
	}
	if leaves := s.Leaves(ctx, "emp-1"); len(leaves) != 1 || leaves[0].ID != req.ID {
		t.Errorf("Leaves = %+v", leaves)
	}
}

func TestRequestLeave_Rejections(t *testing.T) {
	s := newStore(time.Now())
	ctx := context.Background()
	day := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)

	if _, err := s.RequestLeave(ctx, "emp-1", day, day.AddDate(0, 0, -1), ""); !errors.Is(err, workdaystore.ErrInvalidRange) {
		t.Errorf("reversed range err = %v", err)
	}
	if _, err := s.RequestLeave(ctx, "emp-1", day, day.AddDate(0, 0, 30), ""); !errors.Is(err, workdaystore.ErrInsufficientLeave) {
		t.Errorf("too long err = %v", err)
	}
	if got := s.Today(ctx, "emp-1").RemainingLeaves; got != 12 {
		t.Errorf("rejected requests changed allowance: %d", got)
	}
	if len(s.Leaves(ctx, "emp-unknown")) != 0 {
		t.Error("unknown employee has leaves")
	}
}

func TestLeaveAllowanceFollowsSettings(t *testing.T) {
	ctx := context.Background()
	settings := settingsstore.New()
	s := workdaystore.New(settings, func() time.Time { return time.Date(2025, 4, 23, 10, 0, 0, 0, time.UTC) })

	if got := s.Today(ctx, "emp-9").RemainingLeaves; got != 20 {
		t.Fatalf("RemainingLeaves = %d, want 20", got)
	}

	set := settings.Get(ctx)
	set.AnnualLeaveDays = 5
	settings.Save(ctx, set)

	if got := s.Today(ctx, "emp-9").RemainingLeaves; got != 5 {
		t.Errorf("after lowering allowance: RemainingLeaves = %d, want 5", got)
	}
	// emp-1 has used 8 days, more than the new allowance.
	if got := s.Today(ctx, "emp-1").RemainingLeaves; got != 0 {
		t.Errorf("over-used allowance: RemainingLeaves = %d, want 0", got)
	}

	day := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)
	if _, err := s.RequestLeave(ctx, "emp-9", day, day.AddDate(0, 0, 5), ""); !errors.Is(err, workdaystore.ErrInsufficientLeave) {
		t.Errorf("6 days against 5 err = %v", err)
	}
	if _, err := s.RequestLeave(ctx, "emp-9", day, day.AddDate(0, 0, 4), ""); err != nil {
		t.Fatalf("5 days against 5: %v", err)
	}

	set.AnnualLeaveDays = 8
	settings.Save(ctx, set)
	if got := s.Today(ctx, "emp-9").RemainingLeaves; got != 3 {
		t.Errorf("after raising allowance: RemainingLeaves = %d, want 3", got)
	}
}

func TestCheckIn_LateAfterGracePeriod(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		at     time.Time
		late   bool
		action string
	}{
		{"before start", time.Date(2025, 4, 23, 8, 55, 0, 0, time.UTC), false, "Checked in"},
		{"inside grace", time.Date(2025, 4, 23, 9, 15, 0, 0, time.UTC), false, "Checked in"},
		{"after grace", time.Date(2025, 4, 23, 9, 16, 0, 0, time.UTC), true, "Checked in late"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newStore(tc.at)
			if _, err := s.CheckIn(ctx, "emp-9"); err != nil {
				t.Fatalf("CheckIn: %v", err)
			}
			d := s.Today(ctx, "emp-9")
			if d.Late != tc.late {
				t.Errorf("Late = %v, want %v", d.Late, tc.late)
			}
			if d.Activity[0].Action != tc.action {
				t.Errorf("activity = %q, want %q", d.Activity[0].Action, tc.action)
			}
		})
	}
}

func TestCheckIn_UsesWorkplaceZone(t *testing.T) {
	ctx := context.Background()
	settings := settingsstore.New()
	set := settings.Get(ctx)
	set.Timezone = "America/New_York"
	settings.Save(ctx, set)

	// 13:30 UTC is 09:30 in New York during daylight saving time.
	s := workdaystore.New(settings, func() time.Time { return time.Date(2025, 4, 23, 13, 30, 0, 0, time.UTC) })
	at, err := s.CheckIn(ctx, "emp-9")
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if at != "09:30 AM" {
		t.Errorf("check-in time = %q, want 09:30 AM", at)
	}
	if !s.Today(ctx, "emp-9").Late {
		t.Error("09:30 check-in not marked late")
	}
}

func TestCheckOut_BeforeWorkdayEnd(t *testing.T) {
	ctx := context.Background()
	settings := settingsstore.New()
	set := settings.Get(ctx)
	set.WorkdayEnd = "18:00"
	settings.Save(ctx, set)

	s := workdaystore.New(settings, func() time.Time { return time.Date(2025, 4, 23, 17, 31, 0, 0, time.UTC) })
	if _, err := s.CheckOut(ctx, "emp-1"); err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	d := s.Today(ctx, "emp-1")
	if !d.LeftEarly || d.Activity[0].Action != "Checked out early" {
		t.Errorf("early check-out: LeftEarly=%v activity=%q", d.LeftEarly, d.Activity[0].Action)
	}
}
