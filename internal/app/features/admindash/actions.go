// internal/app/features/admindash/actions.go
package admindash

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	accountstore "github.com/dalemusser/attendhub/internal/app/store/accounts"
	employeestore "github.com/dalemusser/attendhub/internal/app/store/employees"
	notificationstore "github.com/dalemusser/attendhub/internal/app/store/notifications"
	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"github.com/dalemusser/attendhub/internal/app/system/gate"
	"github.com/dalemusser/attendhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/attendhub/internal/app/system/inputval"
	"github.com/dalemusser/attendhub/internal/app/system/timezones"
	"github.com/dalemusser/attendhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func adminPath(sub string) string { return gate.AdminDashboardPath + sub }

func redirectWithNotice(w http.ResponseWriter, r *http.Request, path, notice string) {
	gate.RedirectTo(w, r, path+"?notice="+notice)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Add employee                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

type employeeForm struct {
	Name       string `validate:"notblank,max=100" label:"Name"`
	Position   string `validate:"notblank,max=100" label:"Position"`
	Department string `validate:"notblank,max=100" label:"Department"`
	Email      string `validate:"required,email,max=254" label:"Email"`
	Phone      string `validate:"omitempty,max=30" label:"Phone"`
}

func (h *Handler) HandleAddEmployee(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", adminPath("/add-employee"))
		return
	}
	ctx := r.Context()

	in := employeeForm{
		Name:       htmlsanitize.PlainText(r.PostFormValue("name")),
		Position:   htmlsanitize.PlainText(r.PostFormValue("position")),
		Department: htmlsanitize.PlainText(r.PostFormValue("department")),
		Email:      strings.ToLower(strings.TrimSpace(r.PostFormValue("email"))),
		Phone:      strings.TrimSpace(r.PostFormValue("phone")),
	}
	reRender := func(msg string) {
		data := h.base(r, tabAddEmployee)
		data.Departments = h.Employees.Departments(ctx)
		data.EmployeeForm = in
		data.Error = msg
		h.show(w, r, http.StatusUnprocessableEntity, data)
	}

	if res := inputval.Validate(in); res.HasErrors() {
		reRender(res.First())
		return
	}
	if h.InitialPassword != "" {
		if _, exists := h.Accounts.Get(ctx, in.Email); exists {
			reRender("An account with this email already exists.")
			return
		}
	}

	e, err := h.Employees.Create(ctx, employeestore.NewEmployee{
		Name:       in.Name,
		Position:   in.Position,
		Department: in.Department,
		Email:      in.Email,
		Phone:      in.Phone,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create employee failed", err, "Could not add the employee.", adminPath("/employees"))
		return
	}

	if h.InitialPassword != "" {
		acct := models.Account{
			LoginID:    e.Email,
			Name:       e.Name,
			Role:       models.RoleEmployee,
			EmployeeID: e.ID,
			Position:   e.Position,
			Department: e.Department,
		}
		if err := h.Accounts.Add(ctx, acct, h.InitialPassword); err != nil {
			level := zap.ErrorLevel
			if errors.Is(err, accountstore.ErrDuplicate) {
				level = zap.WarnLevel
			}
			h.Log.Log(level, "create login for employee failed", zap.String("employee_id", e.ID), zap.Error(err))
		}
	}

	who := h.actorName(r)
	h.Activity.Record(ctx, "Added new employee: "+e.Name, who)
	h.AuditLog.EmployeeCreated(ctx, r, auth.CurrentLoginID(r), e.ID, e.Name)
	h.Log.Info("employee added", zap.String("employee_id", e.ID), zap.String("by", who))

	redirectWithNotice(w, r, adminPath("/employees/"+e.ID), "employee-added")
}

/*─────────────────────────────────────────────────────────────────────────────*
| Notifications                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type notifyForm struct {
	Title      string `validate:"notblank,max=120" label:"Title"`
	Message    string `validate:"notblank,max=2000" label:"Message"`
	Type       string `validate:"oneof=alert info warning" label:"Type"`
	Recipients string `validate:"oneof=all department individual" label:"Recipients"`
	Department string `validate:"required_if=Recipients department" label:"Department"`
	EmployeeID string `validate:"required_if=Recipients individual" label:"Employee"`
	Priority   string `validate:"oneof=low normal high" label:"Priority"`
}

func defaultNotifyForm() notifyForm {
	return notifyForm{
		Type:       models.NotificationInfo,
		Recipients: models.RecipientsAll,
		Priority:   "normal",
	}
}

func (h *Handler) HandleSendNotification(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", adminPath("/notifications"))
		return
	}
	ctx := r.Context()

	in := notifyForm{
		Title:      htmlsanitize.PlainText(r.PostFormValue("title")),
		Message:    htmlsanitize.Sanitize(r.PostFormValue("message")),
		Type:       strings.TrimSpace(r.PostFormValue("type")),
		Recipients: strings.TrimSpace(r.PostFormValue("recipients")),
		Department: strings.TrimSpace(r.PostFormValue("department")),
		EmployeeID: strings.TrimSpace(r.PostFormValue("employee_id")),
		Priority:   strings.TrimSpace(r.PostFormValue("priority")),
	}
	if in.Type == "" {
		in.Type = models.NotificationInfo
	}
	if in.Priority == "" {
		in.Priority = "normal"
	}

	reRender := func(msg string) {
		data := h.base(r, tabNotifications)
		data.Notifications = h.Notifications.List(ctx)
		data.Departments = h.Employees.Departments(ctx)
		data.Employees = h.Employees.List(ctx)
		data.NotifyForm = in
		data.Error = msg
		h.show(w, r, http.StatusUnprocessableEntity, data)
	}

	if res := inputval.Validate(in); res.HasErrors() {
		reRender(res.First())
		return
	}

	target := "everyone"
	switch in.Recipients {
	case models.RecipientsAll:
		in.Department, in.EmployeeID = "", ""
	case models.RecipientsDepartment:
		in.EmployeeID = ""
		target = in.Department + " team"
	case models.RecipientsIndividual:
		in.Department = ""
		e, err := h.Employees.Get(ctx, in.EmployeeID)
		if err != nil {
			reRender("Choose an employee from the list.")
			return
		}
		target = e.Name
	}

	sent := h.Notifications.Send(ctx, models.Notification{
		Type:       in.Type,
		Title:      in.Title,
		Message:    in.Message,
		Recipients: in.Recipients,
		Department: in.Department,
		EmployeeID: in.EmployeeID,
		Priority:   in.Priority,
		Read:       true,
	})

	h.Activity.Record(ctx, fmt.Sprintf("Sent notification to %s: %s", target, sent.Title), h.actorName(r))
	h.AuditLog.NotificationSent(ctx, r, auth.CurrentLoginID(r), sent.ID, in.Recipients)

	redirectWithNotice(w, r, adminPath("/notifications"), "notification-sent")
}

func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.Notifications.MarkRead(r.Context(), id)
	if errors.Is(err, notificationstore.ErrNotFound) {
		h.ErrLog.LogNotFound(w, r, "notification not found", err, "That notification does not exist.", adminPath("/notifications"))
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "mark read failed", err, "Could not update the notification.", adminPath("/notifications"))
		return
	}
	redirectWithNotice(w, r, adminPath("/notifications"), "notification-read")
}

/*─────────────────────────────────────────────────────────────────────────────*
| Geofence                                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

// geofenceForm keeps the raw strings so a bad number is echoed back as typed.
type geofenceForm struct {
	Name      string
	Latitude  string
	Longitude string
	Radius    string
}

type geofenceInput struct {
	Name      string  `validate:"notblank,max=100" label:"Name"`
	Latitude  float64 `validate:"latitude" label:"Latitude"`
	Longitude float64 `validate:"longitude" label:"Longitude"`
	Radius    int     `validate:"gte=50,lte=10000" label:"Radius"`
}

func geofenceFormFrom(g models.Geofence) geofenceForm {
	return geofenceForm{
		Name:      g.Name,
		Latitude:  strconv.FormatFloat(g.Center.Lat, 'f', -1, 64),
		Longitude: strconv.FormatFloat(g.Center.Lng, 'f', -1, 64),
		Radius:    strconv.Itoa(g.RadiusMeters),
	}
}

func (f geofenceForm) parse() (geofenceInput, string) {
	in := geofenceInput{Name: f.Name}
	var err error
	if in.Latitude, err = strconv.ParseFloat(f.Latitude, 64); err != nil {
		return in, "Latitude must be a number."
	}
	if in.Longitude, err = strconv.ParseFloat(f.Longitude, 64); err != nil {
		return in, "Longitude must be a number."
	}
	if in.Radius, err = strconv.Atoi(f.Radius); err != nil {
		return in, "Radius must be a whole number of meters."
	}
	if res := inputval.Validate(in); res.HasErrors() {
		return in, res.First()
	}
	return in, ""
}

func (h *Handler) HandleGeofence(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", adminPath("/geofence"))
		return
	}
	ctx := r.Context()

	form := geofenceForm{
		Name:      htmlsanitize.PlainText(r.PostFormValue("name")),
		Latitude:  strings.TrimSpace(r.PostFormValue("latitude")),
		Longitude: strings.TrimSpace(r.PostFormValue("longitude")),
		Radius:    strings.TrimSpace(r.PostFormValue("radius")),
	}
	in, msg := form.parse()
	if msg != "" {
		data := h.base(r, tabGeofence)
		data.Geofence = h.Settings.Geofence(ctx)
		data.Employees = h.Employees.List(ctx)
		data.GeoForm = form
		data.Error = msg
		h.show(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	h.Settings.SaveGeofence(ctx, models.Geofence{
		Name:         in.Name,
		Center:       models.GeoPoint{Lat: in.Latitude, Lng: in.Longitude},
		RadiusMeters: in.Radius,
	})

	h.Activity.Record(ctx, "Updated geofence: "+in.Name, h.actorName(r))
	h.AuditLog.GeofenceUpdated(ctx, r, auth.CurrentLoginID(r), in.Name)

	redirectWithNotice(w, r, adminPath("/geofence"), "geofence-updated")
}

/*─────────────────────────────────────────────────────────────────────────────*
| Settings                                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

type settingsForm struct {
	SiteName         string
	WorkdayStart     string
	WorkdayEnd       string
	LateAfterMinutes string
	AnnualLeaveDays  string
	Timezone         string
}

type settingsInput struct {
	SiteName         string `validate:"notblank,max=60" label:"Site name"`
	WorkdayStart     string `validate:"required,datetime=15:04" label:"Workday start"`
	WorkdayEnd       string `validate:"required,datetime=15:04" label:"Workday end"`
	LateAfterMinutes int    `validate:"gte=0,lte=240" label:"Late after"`
	AnnualLeaveDays  int    `validate:"gte=0,lte=60" label:"Annual leave"`
	Timezone         string `validate:"required" label:"Time zone"`
}

func settingsFormFrom(s models.SiteSettings) settingsForm {
	return settingsForm{
		SiteName:         s.SiteName,
		WorkdayStart:     s.WorkdayStart,
		WorkdayEnd:       s.WorkdayEnd,
		LateAfterMinutes: strconv.Itoa(s.LateAfterMinutes),
		AnnualLeaveDays:  strconv.Itoa(s.AnnualLeaveDays),
		Timezone:         s.Timezone,
	}
}

func (f settingsForm) parse() (settingsInput, string) {
	in := settingsInput{SiteName: f.SiteName, WorkdayStart: f.WorkdayStart, WorkdayEnd: f.WorkdayEnd, Timezone: f.Timezone}
	var err error
	if in.LateAfterMinutes, err = strconv.Atoi(f.LateAfterMinutes); err != nil {
		return in, "Late after must be a whole number of minutes."
	}
	if in.AnnualLeaveDays, err = strconv.Atoi(f.AnnualLeaveDays); err != nil {
		return in, "Annual leave must be a whole number of days."
	}
	if res := inputval.Validate(in); res.HasErrors() {
		return in, res.First()
	}
	start, _ := time.Parse("15:04", in.WorkdayStart)
	end, _ := time.Parse("15:04", in.WorkdayEnd)
	if !end.After(start) {
		return in, "Workday end must be after workday start."
	}
	if !timezones.Valid(in.Timezone) {
		return in, "Choose a time zone from the list."
	}
	return in, ""
}

func (h *Handler) HandleSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", adminPath("/settings"))
		return
	}
	ctx := r.Context()

	form := settingsForm{
		SiteName:         htmlsanitize.PlainText(r.PostFormValue("site_name")),
		WorkdayStart:     strings.TrimSpace(r.PostFormValue("workday_start")),
		WorkdayEnd:       strings.TrimSpace(r.PostFormValue("workday_end")),
		LateAfterMinutes: strings.TrimSpace(r.PostFormValue("late_after_minutes")),
		AnnualLeaveDays:  strings.TrimSpace(r.PostFormValue("annual_leave_days")),
		Timezone:         strings.TrimSpace(r.PostFormValue("timezone")),
	}
	in, msg := form.parse()
	if msg != "" {
		data := h.base(r, tabSettings)
		data.Settings = h.Settings.Get(ctx)
		data.SettingsForm = form
		data.Timezones = zoneGroups()
		data.Error = msg
		h.show(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	h.Settings.Save(ctx, models.SiteSettings(in))

	h.Activity.Record(ctx, "Updated workplace settings", h.actorName(r))
	h.AuditLog.SettingsUpdated(ctx, r, auth.CurrentLoginID(r))

	redirectWithNotice(w, r, adminPath("/settings"), "settings-saved")
}
