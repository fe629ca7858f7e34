// internal/app/features/employeedash/handler.go
package employeedash

import (
	"context"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/attendhub/internal/app/features/errors"
	accountstore "github.com/dalemusser/attendhub/internal/app/store/accounts"
	employeestore "github.com/dalemusser/attendhub/internal/app/store/employees"
	workdaystore "github.com/dalemusser/attendhub/internal/app/store/workday"
	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"github.com/dalemusser/attendhub/internal/app/system/viewdata"
	"github.com/dalemusser/attendhub/internal/domain/models"
	"go.uber.org/zap"
)

// attendanceDays is how many past weekdays the attendance tab lists.
const attendanceDays = 10

type Handler struct {
	Log       *zap.Logger
	ErrLog    *uierrors.ErrorLogger
	Accounts  *accountstore.Store
	Employees *employeestore.Store
	Workday   *workdaystore.Store

	now func() time.Time
}

func NewHandler(
	errLog *uierrors.ErrorLogger,
	accounts *accountstore.Store,
	employees *employeestore.Store,
	workday *workdaystore.Store,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Log:       logger,
		ErrLog:    errLog,
		Accounts:  accounts,
		Employees: employees,
		Workday:   workday,
		now:       time.Now,
	}
}

// SetClock overrides the clock used for the date header and leave form.
func (h *Handler) SetClock(now func() time.Time) { h.now = now }

/*─────────────────────────────────────────────────────────────────────────────*
| View model                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// profile is the signed-in employee as the dashboard shows them.
type profile struct {
	LoginID    string
	EmployeeID string
	Name       string
	Initials   string
	Position   string
	Department string
	Email      string
	Phone      string
}

type leaveForm struct {
	From   string
	To     string
	Reason string
}

type dashData struct {
	viewdata.BaseVM
	Tab        string
	Me         profile
	Today      string
	Day        workdaystore.Day
	Attendance []models.AttendanceRecord
	Leaves     []models.LeaveRequest
	Form       leaveForm
	MinDate    string
}

var tabTitles = map[string]string{
	tabOverview:   "Dashboard",
	tabAttendance: "My attendance",
	tabTasks:      "My tasks",
	tabLeaves:     "Leave",
	tabProfile:    "Profile",
}

const (
	tabOverview   = "overview"
	tabAttendance = "attendance"
	tabTasks      = "tasks"
	tabLeaves     = "leaves"
	tabProfile    = "profile"
)

// notices are the fixed messages a redirect can ask the next page to show.
var notices = map[string]string{
	"checked-in":      "You are checked in.",
	"checked-out":     "You are checked out.",
	"already-in":      "You are already checked in.",
	"already-out":     "You are not checked in.",
	"leave-requested": "Leave request submitted.",
}

// me resolves the signed-in login to a profile. Accounts without a roster
// entry still get a usable profile keyed by login ID.
func (h *Handler) me(ctx context.Context, r *http.Request) profile {
	loginID := auth.CurrentLoginID(r)
	p := profile{LoginID: loginID, EmployeeID: loginID, Name: loginID, Email: loginID}

	acct, ok := h.Accounts.Get(ctx, loginID)
	if !ok {
		return p
	}
	p.Name = acct.Name
	p.Position = acct.Position
	p.Department = acct.Department
	if acct.EmployeeID != "" {
		p.EmployeeID = acct.EmployeeID
	}

	if e, err := h.Employees.Get(ctx, p.EmployeeID); err == nil {
		p.Name = e.Name
		p.Position = e.Position
		p.Department = e.Department
		p.Email = e.Email
		p.Phone = e.Phone
	}
	p.Initials = models.Employee{Name: p.Name}.Initials()
	return p
}

func (h *Handler) base(r *http.Request, tab string) dashData {
	ctx := r.Context()
	me := h.me(ctx, r)
	data := dashData{
		BaseVM:  viewdata.NewBaseVM(r, tabTitles[tab]),
		Tab:     tab,
		Me:      me,
		Today:   h.now().Format("Monday, January 2, 2006"),
		Day:     h.Workday.Today(ctx, me.EmployeeID),
		MinDate: h.now().Format(dateLayout),
	}
	data.Notice = notices[r.URL.Query().Get("notice")]
	return data
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request, status int, data dashData) {
	viewdata.Render(w, r, status, "employee_dashboard", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET pages                                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeOverview is also the fallback for sub-paths the dashboard does not
// know.
func (h *Handler) ServeOverview(w http.ResponseWriter, r *http.Request) {
	h.show(w, r, http.StatusOK, h.base(r, tabOverview))
}

func (h *Handler) ServeAttendance(w http.ResponseWriter, r *http.Request) {
	data := h.base(r, tabAttendance)
	recs, err := h.Employees.Attendance(r.Context(), data.Me.EmployeeID, attendanceDays)
	if err != nil {
		// No roster entry means no history to show.
		h.Log.Debug("no attendance history", zap.String("employee_id", data.Me.EmployeeID), zap.Error(err))
	}
	data.Attendance = recs
	h.show(w, r, http.StatusOK, data)
}

func (h *Handler) ServeTasks(w http.ResponseWriter, r *http.Request) {
	h.show(w, r, http.StatusOK, h.base(r, tabTasks))
}

func (h *Handler) ServeLeaves(w http.ResponseWriter, r *http.Request) {
	data := h.base(r, tabLeaves)
	data.Leaves = h.Workday.Leaves(r.Context(), data.Me.EmployeeID)
	h.show(w, r, http.StatusOK, data)
}

func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	h.show(w, r, http.StatusOK, h.base(r, tabProfile))
}
