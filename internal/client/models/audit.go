package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction classifies a recorded mutation.
type AuditAction string

const (
	ActionCreate       AuditAction = "CREATE"
	ActionToggle       AuditAction = "TOGGLE"
	ActionDelete       AuditAction = "DELETE"
	ActionUpdate       AuditAction = "UPDATE"
	ActionReorder      AuditAction = "REORDER"
	ActionImport       AuditAction = "IMPORT"
	ActionClear        AuditAction = "CLEAR"
	ActionAuth         AuditAction = "AUTH"
	ActionSessionClear AuditAction = "SESSION_CLEAR"
)

// AuditEntry is an immutable record of one mutation. Entries are never
// modified after creation; the log they live in is append-only apart from
// a wholesale clear.
type AuditEntry struct {
	ID        string      `json:"id"`
	Action    AuditAction `json:"action"`
	Timestamp int64       `json:"timestamp"`
	Details   string      `json:"details"`
	UserID    string      `json:"userId,omitempty"`
}

// NewAuditEntry stamps a fresh entry with an id and the current time (ms).
func NewAuditEntry(action AuditAction, details string) AuditEntry {
	return AuditEntry{
		ID:        uuid.NewString(),
		Action:    action,
		Timestamp: time.Now().UnixMilli(),
		Details:   details,
	}
}
