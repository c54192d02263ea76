package models

// Task statuses as stored and served. IN_PROGRESS is accepted but never
// produced by a toggle.
const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

// ValidStatus reports whether s is one of the known task statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task is one task row, scoped to its owner. UserID never leaves the server.
type Task struct {
	ID          string `json:"id"`
	UserID      string `json:"-"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedAt   int64  `json:"createdAt"`
}

// Toggled returns a copy flipped between PENDING and COMPLETED. IN_PROGRESS
// counts as not completed, so it toggles to COMPLETED.
func (t Task) Toggled() Task {
	if t.Status == StatusCompleted {
		t.Status = StatusPending
	} else {
		t.Status = StatusCompleted
	}
	return t
}
