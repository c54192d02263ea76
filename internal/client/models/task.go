// Package models defines client-side data models: tasks, audit entries and
// local auth metadata. JSON field names follow the export/import file format,
// so a serialized task round-trips unchanged through backups.
package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "PENDING"
	StatusInProgress TaskStatus = "IN_PROGRESS" // reserved, not reachable via toggle
	StatusCompleted  TaskStatus = "COMPLETED"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task is a single unit of work.
//
// ID and CreatedAt are immutable after creation. CreatedAt is milliseconds
// since epoch and serves as the default sort key (newest first).
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	CreatedAt   int64      `json:"createdAt"`
}

// NewTask returns a pending task with a fresh id and the current timestamp.
// Title validation is the caller's responsibility.
func NewTask(title, description string) Task {
	return Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Status:      StatusPending,
		CreatedAt:   time.Now().UnixMilli(),
	}
}

// Toggled returns a copy of t with status flipped between PENDING and
// COMPLETED. The reserved IN_PROGRESS state toggles to COMPLETED.
func (t Task) Toggled() Task {
	if t.Status == StatusCompleted {
		t.Status = StatusPending
	} else {
		t.Status = StatusCompleted
	}
	return t
}
