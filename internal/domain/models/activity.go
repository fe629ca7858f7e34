// internal/domain/models/activity.go
package models

import "time"

// Activity is one line in a "recent activity" feed.
type Activity struct {
	ID     string
	Action string
	Actor  string // "You", "System", or a person's name
	At     time.Time
}
