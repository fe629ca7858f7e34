// internal/domain/models/account.go
package models

// Account is an entry in the mock login directory. It maps a login ID to
// the role the login action reports for it.
type Account struct {
	LoginID      string
	Name         string
	Role         Role
	PasswordHash []byte
	EmployeeID   string // roster entry for employees; empty for admins
	Position     string
	Department   string
}
