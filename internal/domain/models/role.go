// internal/domain/models/role.go
package models

import "strings"

// Role is the permission class of a signed-in user. It is a closed set:
// the zero value is not a valid role, and "no role" is expressed by the
// absence of a Role (see session.State), never by an empty string.
type Role uint8

const (
	RoleEmployee Role = iota + 1
	RoleAdmin
)

// AllRoles lists every role in display order.
var AllRoles = []Role{RoleEmployee, RoleAdmin}

// String returns the wire form stored in the session cookie.
func (r Role) String() string {
	switch r {
	case RoleEmployee:
		return "employee"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// Label returns the display label used in templates.
func (r Role) Label() string {
	switch r {
	case RoleEmployee:
		return "Employee"
	case RoleAdmin:
		return "Administrator"
	default:
		return "Unknown"
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleAdmin
}

// ParseRole converts a wire string into a Role. Matching is case-insensitive
// and ignores surrounding whitespace. Unknown values (including "") return
// ok=false.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "employee":
		return RoleEmployee, true
	case "admin":
		return RoleAdmin, true
	default:
		return 0, false
	}
}
