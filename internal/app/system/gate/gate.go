// Package gate decides, for every navigation, whether the requested view is
// rendered or the browser is redirected elsewhere.
//
// Decide is a pure function of (session.State, path). It never renders an
// error page: a request that is not allowed is always sent to one of a fixed
// set of destinations (home, login, or the caller's own dashboard).
//
// Decision table:
//
//	route               state                    outcome
//	public  (/)         any                      render home
//	login   (/login)    logged out               render login
//	login   (/login)    employee                 redirect /employee-dashboard
//	login   (/login)    admin                    redirect /admin-dashboard
//	/employee-dashboard employee                 render employee dashboard
//	/employee-dashboard anything else            redirect /login
//	/admin-dashboard    admin                    render admin dashboard
//	/admin-dashboard    anything else            redirect /login
//	anything else       any                      redirect /
package gate

import (
	"github.com/dalemusser/attendhub/internal/app/system/session"
)

// View identifies what a Render decision shows.
type View uint8

const (
	ViewNone View = iota
	ViewHome
	ViewLogin
	ViewEmployeeDashboard
	ViewAdminDashboard
)

func (v View) String() string {
	switch v {
	case ViewHome:
		return "home"
	case ViewLogin:
		return "login"
	case ViewEmployeeDashboard:
		return "employee_dashboard"
	case ViewAdminDashboard:
		return "admin_dashboard"
	default:
		return "none"
	}
}

// Kind tags a Decision.
type Kind uint8

const (
	Render Kind = iota + 1
	Redirect
)

func (k Kind) String() string {
	switch k {
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	default:
		return "invalid"
	}
}

// Decision is the gate's answer for one navigation: either Render(View) or
// Redirect(Location).
type Decision struct {
	Kind     Kind
	View     View   // set when Kind == Render
	Location string // set when Kind == Redirect
	Route    Route
}

func render(route Route, v View) Decision {
	return Decision{Kind: Render, View: v, Route: route}
}

func redirect(route Route, location string) Decision {
	return Decision{Kind: Redirect, Location: location, Route: route}
}

// IsRender reports whether the decision lets the view through.
func (d Decision) IsRender() bool { return d.Kind == Render }

// Decide evaluates the decision table for state and path.
func Decide(state session.State, path string) Decision {
	route := Classify(path)

	switch route {
	case RoutePublic:
		return render(route, ViewHome)

	case RouteLogin:
		role, ok := state.Role()
		if !ok {
			return render(route, ViewLogin)
		}
		// A signed-in user never sees the login form again.
		return redirect(route, DashboardFor(role))

	case RouteEmployeeDashboard, RouteAdminDashboard:
		required, _ := RequiredRole(route)
		if state.Is(required) {
			return render(route, dashboardView(route))
		}
		return redirect(route, LoginPath)

	default:
		return redirect(RouteUnmatched, HomePath)
	}
}

func dashboardView(r Route) View {
	if r == RouteAdminDashboard {
		return ViewAdminDashboard
	}
	return ViewEmployeeDashboard
}
