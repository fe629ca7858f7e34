package home

import (
	"net/http"

	"github.com/dalemusser/attendhub/internal/app/system/viewdata"
	"github.com/dalemusser/attendhub/internal/domain/models"
	"go.uber.org/zap"
)

// Handler holds dependencies needed to serve the home page.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

type feature struct {
	Title       string
	Description string
}

type step struct {
	Number int
	Title  string
	Text   string
}

type homeData struct {
	viewdata.BaseVM
	Tagline  string
	Features []feature
	Steps    []step
	Benefits []string
	CTAURL   string
	CTALabel string
}

var features = []feature{
	{"Geofenced check-in", "Employees check in from their phone when they arrive inside the office boundary."},
	{"Live attendance", "See who is present, late or on leave at a glance, updated as people check in and out."},
	{"Leave management", "Employees request time off from their dashboard; admins see every request in one place."},
	{"Team notifications", "Send announcements to everyone, a department, or a single employee."},
	{"Reports", "Weekly hours and attendance rates per employee, ready for payroll."},
	{"Role-based access", "Employees see their own day; administrators manage the whole workplace."},
}

var steps = []step{
	{1, "Set your office boundary", "Draw a geofence around your workplace from the admin dashboard."},
	{2, "Invite your team", "Add employees with their department and contact details."},
	{3, "Track attendance", "Check-ins and check-outs flow into the dashboard and reports."},
}

var benefits = []string{
	"No more paper timesheets",
	"Fewer payroll disputes",
	"Clear view of late arrivals and absences",
	"Works on any device with a browser",
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	base := viewdata.NewBaseVM(r, "Welcome")

	data := homeData{
		BaseVM:   base,
		Tagline:  models.DefaultTagline,
		Features: features,
		Steps:    steps,
		Benefits: benefits,
		CTAURL:   "/login",
		CTALabel: "Get started",
	}
	if base.IsLoggedIn {
		data.CTAURL = base.DashboardURL
		data.CTALabel = "Go to your dashboard"
	}

	viewdata.Render(w, r, http.StatusOK, "home", data)
}
