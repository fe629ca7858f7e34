// internal/app/system/gate/routes.go
package gate

import (
	"path"
	"strings"

	"github.com/dalemusser/attendhub/internal/domain/models"
)

// Route paths the gate knows about.
const (
	HomePath              = "/"
	LoginPath             = "/login"
	EmployeeDashboardPath = "/employee-dashboard"
	AdminDashboardPath    = "/admin-dashboard"
)

// Route is the class a navigation path belongs to.
type Route uint8

const (
	RouteUnmatched Route = iota
	RoutePublic
	RouteLogin
	RouteEmployeeDashboard
	RouteAdminDashboard
)

func (r Route) String() string {
	switch r {
	case RoutePublic:
		return "public"
	case RouteLogin:
		return "login"
	case RouteEmployeeDashboard:
		return "employee_dashboard"
	case RouteAdminDashboard:
		return "admin_dashboard"
	default:
		return "unmatched"
	}
}

// protectedRoute pairs a dashboard prefix with the role it requires.
type protectedRoute struct {
	route        Route
	prefix       string
	requiredRole models.Role
}

// protected is the static route-requirement table.
var protected = [...]protectedRoute{
	{route: RouteEmployeeDashboard, prefix: EmployeeDashboardPath, requiredRole: models.RoleEmployee},
	{route: RouteAdminDashboard, prefix: AdminDashboardPath, requiredRole: models.RoleAdmin},
}

// RequiredRole returns the role a protected route demands. ok is false for
// routes that are not protected.
func RequiredRole(r Route) (models.Role, bool) {
	for _, p := range protected {
		if p.route == r {
			return p.requiredRole, true
		}
	}
	return 0, false
}

// Classify maps a request path to its route class. Dashboards match their
// root and every path beneath it, so sub-navigation cannot bypass the gate.
func Classify(p string) Route {
	p = cleanPath(p)

	switch p {
	case HomePath:
		return RoutePublic
	case LoginPath:
		return RouteLogin
	}

	for _, pr := range protected {
		if p == pr.prefix || strings.HasPrefix(p, pr.prefix+"/") {
			return pr.route
		}
	}
	return RouteUnmatched
}

// cleanPath normalizes dot segments, duplicate and trailing slashes so that
// "/admin-dashboard/../login" cannot be classified as a dashboard path.
func cleanPath(p string) string {
	if p == "" {
		return HomePath
	}
	if p[0] != '/' {
		p = "/" + p
	}
	return path.Clean(p)
}

// DashboardFor returns the dashboard root a role lands on after login.
func DashboardFor(role models.Role) string {
	for _, p := range protected {
		if p.requiredRole == role {
			return p.prefix
		}
	}
	return LoginPath
}
