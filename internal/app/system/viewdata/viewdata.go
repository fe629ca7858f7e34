// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"github.com/dalemusser/attendhub/internal/app/system/gate"
	"github.com/dalemusser/attendhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/gorilla/csrf"
)

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title"),
//	}
type BaseVM struct {
	SiteName string

	// Session snapshot (from auth.LoadSession)
	IsLoggedIn   bool
	Role         string
	RoleLabel    string
	LoginID      string
	UserName     string
	DashboardURL string

	// Page context
	Title           string
	CurrentPath     string
	DashboardActive bool // CurrentPath is the dashboard or one of its tabs
	Year            int

	// CSRF protection
	CSRFToken string
	CSRFField template.HTML

	// Flash messages
	Error  string
	Notice string
}

// NameLookup resolves a login ID to a display name.
// This is set by bootstrap to avoid circular dependencies.
type NameLookup func(loginID string) string

// SiteNameLoader returns the current site name.
type SiteNameLoader func() string

var (
	nameLookup     NameLookup
	siteNameLoader SiteNameLoader
)

// SetNameLookup sets the function used to resolve display names.
// Call this once at startup from bootstrap.
func SetNameLookup(fn NameLookup) { nameLookup = fn }

// SetSiteNameLoader sets the function used to load the site name.
// Call this once at startup from bootstrap.
func SetSiteNameLoader(fn SiteNameLoader) { siteNameLoader = fn }

// NewBaseVM creates a fully populated BaseVM for a page.
func NewBaseVM(r *http.Request, title string) BaseVM {
	state := auth.CurrentState(r)
	loginID := auth.CurrentLoginID(r)

	vm := BaseVM{
		SiteName:    models.DefaultSiteName,
		IsLoggedIn:  state.Authenticated(),
		LoginID:     loginID,
		Title:       title,
		CurrentPath: r.URL.Path,
		Year:        time.Now().Year(),
		CSRFToken:   csrf.Token(r),
		CSRFField:   csrf.TemplateField(r),
	}

	if role, ok := state.Role(); ok {
		vm.Role = role.String()
		vm.RoleLabel = role.Label()
		vm.DashboardURL = gate.DashboardFor(role)
		vm.DashboardActive = underPath(vm.CurrentPath, vm.DashboardURL)
		vm.UserName = loginID
		if nameLookup != nil {
			if n := nameLookup(loginID); n != "" {
				vm.UserName = n
			}
		}
	}

	if siteNameLoader != nil {
		if n := siteNameLoader(); n != "" {
			vm.SiteName = n
		}
	}

	return vm
}

func underPath(current, prefix string) bool {
	if prefix == "" {
		return false
	}
	return current == prefix || strings.HasPrefix(current, prefix+"/")
}

// Render writes the named page template with status. The engine buffers
// output; on failure templates.Render logs and answers 500, which only
// takes effect for pages sent with 200.
func Render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	templates.Render(w, r, name, data)
}
