package models

// AuditEntry is one recorded mutation in a user's server-side audit trail.
// Timestamp is milliseconds since the Unix epoch, matching the task model.
type AuditEntry struct {
	ID        string `json:"id"`
	UserID    string `json:"userId,omitempty"`
	Action    string `json:"action"`
	Timestamp int64  `json:"timestamp"`
	Details   string `json:"details"`
}
