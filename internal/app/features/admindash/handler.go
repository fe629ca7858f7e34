// internal/app/features/admindash/handler.go
package admindash

import (
	"net/http"
	"time"

	uierrors "github.com/dalemusser/attendhub/internal/app/features/errors"
	accountstore "github.com/dalemusser/attendhub/internal/app/store/accounts"
	"github.com/dalemusser/attendhub/internal/app/store/activity"
	employeestore "github.com/dalemusser/attendhub/internal/app/store/employees"
	loginstore "github.com/dalemusser/attendhub/internal/app/store/logins"
	notificationstore "github.com/dalemusser/attendhub/internal/app/store/notifications"
	settingsstore "github.com/dalemusser/attendhub/internal/app/store/settings"
	"github.com/dalemusser/attendhub/internal/app/system/auditlog"
	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"github.com/dalemusser/attendhub/internal/app/system/timezones"
	"github.com/dalemusser/attendhub/internal/app/system/viewdata"
	"github.com/dalemusser/attendhub/internal/domain/models"
	"go.uber.org/zap"
)

const (
	overviewEmployees     = 5
	overviewNotifications = 3
	overviewActivity      = 5
	detailAttendanceDays  = 10
)

type Handler struct {
	Log           *zap.Logger
	ErrLog        *uierrors.ErrorLogger
	Accounts      *accountstore.Store
	Employees     *employeestore.Store
	Notifications *notificationstore.Store
	Activity      *activity.Store
	Settings      *settingsstore.Store
	Logins        *loginstore.Store
	AuditLog      *auditlog.Logger

	// InitialPassword, when set, gives every added employee a login with
	// this password and their email as login ID.
	InitialPassword string

	now func() time.Time
}

// Deps groups the stores the admin dashboard reads and writes.
type Deps struct {
	Accounts      *accountstore.Store
	Employees     *employeestore.Store
	Notifications *notificationstore.Store
	Activity      *activity.Store
	Settings      *settingsstore.Store
	Logins        *loginstore.Store
}

func NewHandler(errLog *uierrors.ErrorLogger, deps Deps, audit *auditlog.Logger, initialPassword string, logger *zap.Logger) *Handler {
	return &Handler{
		Log:             logger,
		ErrLog:          errLog,
		Accounts:        deps.Accounts,
		Employees:       deps.Employees,
		Notifications:   deps.Notifications,
		Activity:        deps.Activity,
		Settings:        deps.Settings,
		Logins:          deps.Logins,
		AuditLog:        audit,
		InitialPassword: initialPassword,
		now:             time.Now,
	}
}

// SetClock overrides the clock used for the date header.
func (h *Handler) SetClock(now func() time.Time) { h.now = now }

/*─────────────────────────────────────────────────────────────────────────────*
| View model                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	tabOverview      = "overview"
	tabEmployees     = "employees"
	tabEmployee      = "employee"
	tabAddEmployee   = "add-employee"
	tabAttendance    = "attendance"
	tabGeofence      = "geofence"
	tabNotifications = "notifications"
	tabReports       = "reports"
	tabSettings      = "settings"
)

var tabTitles = map[string]string{
	tabOverview:      "Admin dashboard",
	tabEmployees:     "Employees",
	tabEmployee:      "Employee",
	tabAddEmployee:   "Add employee",
	tabAttendance:    "Attendance",
	tabGeofence:      "Geofence",
	tabNotifications: "Notifications",
	tabReports:       "Reports",
	tabSettings:      "Settings",
}

var notices = map[string]string{
	"employee-added":    "Employee added.",
	"notification-sent": "Notification sent.",
	"notification-read": "Notification marked as read.",
	"geofence-updated":  "Geofence updated.",
	"settings-saved":    "Settings saved.",
}

type adminData struct {
	viewdata.BaseVM
	Tab       string
	Today     string
	Name      string
	Position  string
	LastLogin string
	Unread    int

	Summary       models.AttendanceSummary
	Employees     []models.Employee
	Employee      models.Employee
	Attendance    []models.AttendanceRecord
	Notifications []models.Notification
	Activity      []models.Activity
	Geofence      models.Geofence
	Settings      models.SiteSettings
	Departments   []string
	Reports       []reportRow
	Timezones     []timezones.ZoneGroup

	EmployeeForm employeeForm
	NotifyForm   notifyForm
	GeoForm      geofenceForm
	SettingsForm settingsForm
}

func (h *Handler) base(r *http.Request, tab string) adminData {
	ctx := r.Context()
	loginID := auth.CurrentLoginID(r)

	loc := h.Settings.Location()

	data := adminData{
		BaseVM:    viewdata.NewBaseVM(r, tabTitles[tab]),
		Tab:       tab,
		Today:     h.now().In(loc).Format("Monday, January 2, 2006"),
		Name:      loginID,
		LastLogin: "First sign-in",
		Unread:    h.Notifications.UnreadCount(ctx),
	}
	if acct, ok := h.Accounts.Get(ctx, loginID); ok {
		data.Name = acct.Name
		data.Position = acct.Position
	}
	if prev, ok := h.Logins.Previous(ctx, loginID); ok {
		data.LastLogin = prev.CreatedAt.In(loc).Format("Jan 2, 03:04 PM")
	}
	data.Notice = notices[r.URL.Query().Get("notice")]
	return data
}

// zoneGroups lists the time zones for the settings form. The list is
// embedded, so a load failure leaves the select empty and Valid rejects
// every submission.
func zoneGroups() []timezones.ZoneGroup {
	groups, _ := timezones.Groups()
	return groups
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request, status int, data adminData) {
	viewdata.Render(w, r, status, "admin_dashboard", data)
}

// actorName is the name recorded in the activity feed for the signed-in
// admin.
func (h *Handler) actorName(r *http.Request) string {
	loginID := auth.CurrentLoginID(r)
	if n := h.Accounts.DisplayName(loginID); n != "" {
		return n
	}
	return loginID
}
