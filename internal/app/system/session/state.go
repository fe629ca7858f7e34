// Package session holds the authentication state of one running UI
// instance: whether someone is signed in and, if so, as which role.
//
// State is an immutable snapshot. The only way to obtain a signed-in State
// is to reduce a Login action, so "authenticated" and "has a role" can never
// disagree. Callers pass snapshots explicitly (the HTTP layer carries one in
// the request context); nothing reads a package-level variable.
package session

import "github.com/dalemusser/attendhub/internal/domain/models"

// State is a snapshot of who is signed in. The zero value is LoggedOut.
type State struct {
	role    models.Role
	hasRole bool
}

// LoggedOut returns the initial state.
func LoggedOut() State {
	return State{}
}

// Authenticated reports whether a login action produced this state.
func (s State) Authenticated() bool {
	return s.hasRole
}

// Role returns the signed-in role, or ok=false when logged out.
func (s State) Role() (role models.Role, ok bool) {
	return s.role, s.hasRole
}

// Is reports whether the state is signed in as exactly role.
func (s State) Is(role models.Role) bool {
	return s.hasRole && s.role == role
}

func (s State) String() string {
	if !s.hasRole {
		return "logged-out"
	}
	return "logged-in:" + s.role.String()
}

// Action is a state transition request. Build one with Login or Logout.
type Action struct {
	kind actionKind
	role models.Role
}

type actionKind uint8

const (
	actionLogout actionKind = iota
	actionLogin
)

// Login returns the action that signs in as role. The caller is trusted to
// have validated credentials already.
func Login(role models.Role) Action {
	return Action{kind: actionLogin, role: role}
}

// Logout returns the action that resets to LoggedOut.
func Logout() Action {
	return Action{kind: actionLogout}
}

// Reduce applies a to s and returns the resulting snapshot. It never
// mutates s.
//
// A Login action carrying an invalid role yields LoggedOut: a role the gate
// does not know cannot authorize anything.
func Reduce(s State, a Action) State {
	switch a.kind {
	case actionLogin:
		if !a.role.Valid() {
			return LoggedOut()
		}
		return State{role: a.role, hasRole: true}
	default:
		return LoggedOut()
	}
}

// FromRole rebuilds a snapshot from a role decoded out of storage (the
// session cookie). It goes through Reduce so the login action stays the
// only producer of signed-in states.
func FromRole(role models.Role) State {
	return Reduce(LoggedOut(), Login(role))
}
