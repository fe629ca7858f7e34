// internal/domain/models/notification.go
package models

import "time"

// Notification types.
const (
	NotificationAlert   = "alert"
	NotificationInfo    = "info"
	NotificationWarning = "warning"
)

// Recipient scopes for an outgoing notification.
const (
	RecipientsAll        = "all"
	RecipientsDepartment = "department"
	RecipientsIndividual = "individual"
)

// Notification is an entry in the admin notification feed. Sending one only
// records it; there is no delivery channel.
type Notification struct {
	ID         string
	Type       string // alert | info | warning
	Title      string
	Message    string
	Recipients string // all | department | individual
	Department string
	EmployeeID string
	Priority   string // low | normal | high
	CreatedAt  time.Time
	Read       bool
}
