// internal/domain/models/workday.go
package models

// Task is an item on the employee's task board.
type Task struct {
	ID       string
	Title    string
	Priority string // High | Medium | Low
	Status   string // To Do | In Progress | Done
	Deadline string
}

// Meeting is an upcoming meeting shown on the employee overview.
type Meeting struct {
	ID    string
	Title string
	Time  string
	Host  string
}
