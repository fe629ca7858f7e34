package session_test

import (
	"sync"
	"testing"

	"github.com/dalemusser/attendhub/internal/app/system/session"
	"github.com/dalemusser/attendhub/internal/domain/models"
)

func TestLoggedOut_IsInitialState(t *testing.T) {
	s := session.LoggedOut()
	if s.Authenticated() {
		t.Error("LoggedOut().Authenticated() = true, want false")
	}
	if _, ok := s.Role(); ok {
		t.Error("LoggedOut().Role() reported a role")
	}
	if s != (session.State{}) {
		t.Error("zero State should equal LoggedOut()")
	}
}

func TestReduce_Login(t *testing.T) {
	for _, role := range models.AllRoles {
		s := session.Reduce(session.LoggedOut(), session.Login(role))
		if !s.Authenticated() {
			t.Errorf("login(%v): not authenticated", role)
		}
		got, ok := s.Role()
		if !ok || got != role {
			t.Errorf("login(%v): Role() = (%v, %v)", role, got, ok)
		}
		if !s.Is(role) {
			t.Errorf("login(%v): Is(%v) = false", role, role)
		}
	}
}

func TestReduce_LoginReplacesPreviousRole(t *testing.T) {
	s := session.Reduce(session.LoggedOut(), session.Login(models.RoleEmployee))
	s = session.Reduce(s, session.Login(models.RoleAdmin))
	if !s.Is(models.RoleAdmin) {
		t.Errorf("state = %v, want logged-in:admin", s)
	}
	if s.Is(models.RoleEmployee) {
		t.Error("previous role leaked into new state")
	}
}

func TestReduce_LoginInvalidRoleDenies(t *testing.T) {
	s := session.Reduce(session.LoggedOut(), session.Login(models.Role(0)))
	if s.Authenticated() {
		t.Error("login with invalid role produced an authenticated state")
	}
	s = session.Reduce(session.FromRole(models.RoleAdmin), session.Login(models.Role(42)))
	if s.Authenticated() {
		t.Error("login with invalid role kept an authenticated state")
	}
}

func TestReduce_LogoutIsIdempotent(t *testing.T) {
	signedIn := session.FromRole(models.RoleEmployee)
	once := session.Reduce(signedIn, session.Logout())
	twice := session.Reduce(once, session.Logout())

	if once != session.LoggedOut() {
		t.Errorf("after one logout: %v, want logged-out", once)
	}
	if once != twice {
		t.Errorf("logout not idempotent: once=%v twice=%v", once, twice)
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	before := session.FromRole(models.RoleAdmin)
	_ = session.Reduce(before, session.Logout())
	if !before.Is(models.RoleAdmin) {
		t.Error("Reduce mutated its input state")
	}
}

func TestState_String(t *testing.T) {
	if got := session.LoggedOut().String(); got != "logged-out" {
		t.Errorf("String() = %q", got)
	}
	if got := session.FromRole(models.RoleAdmin).String(); got != "logged-in:admin" {
		t.Errorf("String() = %q", got)
	}
}

func TestHolder_Lifecycle(t *testing.T) {
	h := session.NewHolder()
	if h.Snapshot().Authenticated() {
		t.Fatal("new holder should start logged out")
	}

	snap := h.Login(models.RoleEmployee)
	if !snap.Is(models.RoleEmployee) || !h.Snapshot().Is(models.RoleEmployee) {
		t.Fatalf("after login: %v", h.Snapshot())
	}

	h.Logout()
	first := h.Snapshot()
	h.Logout()
	if h.Snapshot() != first || first.Authenticated() {
		t.Errorf("logout twice: %v then %v", first, h.Snapshot())
	}
}

func TestHolder_SnapshotsAreIndependent(t *testing.T) {
	h := session.NewHolder()
	snap := h.Login(models.RoleAdmin)
	h.Logout()
	if !snap.Is(models.RoleAdmin) {
		t.Error("earlier snapshot changed after a later dispatch")
	}
}

func TestHolder_ConcurrentReaders(t *testing.T) {
	h := session.NewHolder()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				h.Login(models.RoleEmployee)
			} else {
				h.Logout()
			}
			s := h.Snapshot()
			if s.Authenticated() {
				if _, ok := s.Role(); !ok {
					t.Error("authenticated snapshot without a role")
				}
			}
		}(i)
	}
	wg.Wait()
}
