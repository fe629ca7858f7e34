// internal/app/features/admindash/pages.go
package admindash

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	employeestore "github.com/dalemusser/attendhub/internal/app/store/employees"
	"github.com/dalemusser/attendhub/internal/app/system/csvutil"
	"github.com/dalemusser/attendhub/internal/app/system/gate"
	"github.com/dalemusser/attendhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ServeOverview is also the fallback for unknown sub-paths.
func (h *Handler) ServeOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := h.base(r, tabOverview)
	data.Summary = h.Employees.Summary(ctx)
	data.Employees = head(h.Employees.List(ctx), overviewEmployees)
	data.Notifications = h.Notifications.Recent(ctx, overviewNotifications)
	data.Activity = h.Activity.Recent(ctx, overviewActivity)
	h.show(w, r, http.StatusOK, data)
}

func head(list []models.Employee, n int) []models.Employee {
	if len(list) > n {
		return list[:n]
	}
	return list
}

func (h *Handler) ServeEmployees(w http.ResponseWriter, r *http.Request) {
	data := h.base(r, tabEmployees)
	data.Employees = h.Employees.List(r.Context())
	h.show(w, r, http.StatusOK, data)
}

func (h *Handler) ServeEmployee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	e, err := h.Employees.Get(ctx, id)
	if errors.Is(err, employeestore.ErrNotFound) {
		h.ErrLog.LogNotFound(w, r, "employee not found", err, "That employee does not exist.", gate.AdminDashboardPath+"/employees")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load employee failed", err, "Could not load the employee.", gate.AdminDashboardPath+"/employees")
		return
	}

	data := h.base(r, tabEmployee)
	data.Title = e.Name
	data.Employee = e
	data.Attendance, err = h.Employees.Attendance(ctx, id, detailAttendanceDays)
	if err != nil {
		h.Log.Warn("employee attendance unavailable", zap.String("employee_id", id), zap.Error(err))
	}
	h.show(w, r, http.StatusOK, data)
}

func (h *Handler) ServeAddEmployee(w http.ResponseWriter, r *http.Request) {
	data := h.base(r, tabAddEmployee)
	data.Departments = h.Employees.Departments(r.Context())
	h.show(w, r, http.StatusOK, data)
}

func (h *Handler) ServeAttendance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := h.base(r, tabAttendance)
	data.Summary = h.Employees.Summary(ctx)
	data.Employees = h.Employees.List(ctx)
	h.show(w, r, http.StatusOK, data)
}

func (h *Handler) ServeGeofence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := h.base(r, tabGeofence)
	data.Geofence = h.Settings.Geofence(ctx)
	data.GeoForm = geofenceFormFrom(data.Geofence)
	data.Employees = h.Employees.List(ctx)
	h.show(w, r, http.StatusOK, data)
}

func (h *Handler) ServeNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := h.base(r, tabNotifications)
	data.Notifications = h.Notifications.List(ctx)
	data.Departments = h.Employees.Departments(ctx)
	data.Employees = h.Employees.List(ctx)
	data.NotifyForm = defaultNotifyForm()
	h.show(w, r, http.StatusOK, data)
}

func (h *Handler) ServeSettings(w http.ResponseWriter, r *http.Request) {
	data := h.base(r, tabSettings)
	data.Settings = h.Settings.Get(r.Context())
	data.SettingsForm = settingsFormFrom(data.Settings)
	data.Timezones = zoneGroups()
	h.show(w, r, http.StatusOK, data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Reports                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

// reportRow aggregates the roster by department.
type reportRow struct {
	Department string
	Headcount  int
	Active     int
	TotalHours float64
	AvgRate    int
}

func buildReport(employees []models.Employee) []reportRow {
	byDept := map[string]*reportRow{}
	rateSum := map[string]int{}
	for _, e := range employees {
		dept := e.Department
		if dept == "" {
			dept = "Unassigned"
		}
		row, ok := byDept[dept]
		if !ok {
			row = &reportRow{Department: dept}
			byDept[dept] = row
		}
		row.Headcount++
		if e.IsActive() {
			row.Active++
		}
		row.TotalHours += e.HoursThisWeek
		rateSum[dept] += e.AttendanceRate
	}

	out := make([]reportRow, 0, len(byDept))
	for dept, row := range byDept {
		row.AvgRate = rateSum[dept] / row.Headcount
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Department < out[j].Department })
	return out
}

// ServeReports renders the department report, or the per-employee CSV
// when format=csv.
func (h *Handler) ServeReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	employees := h.Employees.List(ctx)

	if r.URL.Query().Get("format") == "csv" {
		rows := make([][]string, 0, len(employees))
		for _, e := range employees {
			rows = append(rows, []string{
				e.Name, e.Department, e.Position, e.Status,
				strconv.FormatFloat(e.HoursThisWeek, 'f', 1, 64),
				strconv.Itoa(e.AttendanceRate),
			})
		}
		name := fmt.Sprintf("attendance-%s.csv", h.now().Format("2006-01-02"))
		header := []string{"Name", "Department", "Position", "Status", "Hours this week", "Attendance rate"}
		if err := csvutil.Write(w, name, header, rows); err != nil {
			h.Log.Error("csv export failed", zap.Error(err))
		}
		return
	}

	data := h.base(r, tabReports)
	data.Summary = h.Employees.Summary(ctx)
	data.Reports = buildReport(employees)
	h.show(w, r, http.StatusOK, data)
}
