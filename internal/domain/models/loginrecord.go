// internal/domain/models/loginrecord.go
package models

import "time"

// LoginRecord is one successful login, kept for "last login" display.
type LoginRecord struct {
	LoginID   string
	IP        string
	UserAgent string
	CreatedAt time.Time
}
