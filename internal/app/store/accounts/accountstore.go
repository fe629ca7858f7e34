// internal/app/store/accounts/accountstore.go
package accountstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dalemusser/attendhub/internal/domain/models"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for an unknown login ID or a wrong
// password. Callers must not tell the two apart in the UI.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrDuplicate is returned when adding a login ID that already exists.
var ErrDuplicate = errors.New("login id already exists")

// Store is the in-memory login directory. Login IDs are matched
// case-insensitively.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]models.Account
	cost     int
	dummy    []byte
}

// Seed is an account created at startup.
type Seed struct {
	LoginID    string
	Name       string
	Role       models.Role
	EmployeeID string
	Position   string
	Department string
}

// DefaultSeeds are the demo accounts, matching the seeded roster.
func DefaultSeeds() []Seed {
	return []Seed{
		{LoginID: "alex.j@company.com", Name: "Alex Johnson", Role: models.RoleEmployee, EmployeeID: "emp-1", Position: "Software Developer", Department: "Engineering"},
		{LoginID: "sarah.m@company.com", Name: "Sarah Miller", Role: models.RoleEmployee, EmployeeID: "emp-2", Position: "UX Designer", Department: "Design"},
		{LoginID: "david.c@company.com", Name: "David Chen", Role: models.RoleEmployee, EmployeeID: "emp-3", Position: "Project Manager", Department: "Product"},
		{LoginID: "maria.r@company.com", Name: "Maria Rodriguez", Role: models.RoleAdmin, Position: "HR Administrator", Department: "Human Resources"},
	}
}

// New builds a directory holding seeds, all sharing seedPassword.
// cost is the bcrypt cost; 0 means bcrypt.DefaultCost.
func New(seeds []Seed, seedPassword string, cost int) (*Store, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	s := &Store{accounts: make(map[string]models.Account), cost: cost}

	// Compared against on unknown login IDs so both failure paths do the
	// same bcrypt work.
	dummy, err := bcrypt.GenerateFromPassword([]byte("attendhub-dummy"), cost)
	if err != nil {
		return nil, fmt.Errorf("hash dummy password: %w", err)
	}
	s.dummy = dummy

	for _, sd := range seeds {
		acct := models.Account{
			LoginID:    sd.LoginID,
			Name:       sd.Name,
			Role:       sd.Role,
			EmployeeID: sd.EmployeeID,
			Position:   sd.Position,
			Department: sd.Department,
		}
		if err := s.Add(context.Background(), acct, seedPassword); err != nil {
			return nil, fmt.Errorf("seed %s: %w", sd.LoginID, err)
		}
	}
	return s, nil
}

func key(loginID string) string {
	return strings.ToLower(strings.TrimSpace(loginID))
}

// Add stores acct with a bcrypt hash of password.
func (s *Store) Add(ctx context.Context, acct models.Account, password string) error {
	if !acct.Role.Valid() {
		return fmt.Errorf("add account %q: invalid role", acct.LoginID)
	}
	k := key(acct.LoginID)
	if k == "" {
		return fmt.Errorf("add account: empty login id")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	acct.LoginID = k
	acct.PasswordHash = hash

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[k]; exists {
		return ErrDuplicate
	}
	s.accounts[k] = acct
	return nil
}

// Authenticate checks password against the stored hash for loginID.
func (s *Store) Authenticate(ctx context.Context, loginID, password string) (models.Account, error) {
	s.mu.RLock()
	acct, ok := s.accounts[key(loginID)]
	s.mu.RUnlock()

	if !ok {
		_ = bcrypt.CompareHashAndPassword(s.dummy, []byte(password))
		return models.Account{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(password)); err != nil {
		return models.Account{}, ErrInvalidCredentials
	}
	return acct, nil
}

// Get returns the account for loginID.
func (s *Store) Get(ctx context.Context, loginID string) (models.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.accounts[key(loginID)]
	return acct, ok
}

// DisplayName returns the account name, or "" for unknown login IDs.
func (s *Store) DisplayName(loginID string) string {
	acct, ok := s.Get(context.Background(), loginID)
	if !ok {
		return ""
	}
	return acct.Name
}

// List returns all accounts ordered by login ID.
func (s *Store) List(ctx context.Context) []models.Account {
	s.mu.RLock()
	out := make([]models.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].LoginID < out[j].LoginID })
	return out
}
