package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/zerotask/zerotask/internal/client/models"
	"github.com/zerotask/zerotask/internal/client/repositories/logs"
	"github.com/zerotask/zerotask/internal/logging"
)

// MaxLogEntries bounds the retained audit log; the oldest entries are
// silently evicted once the bound is exceeded.
const MaxLogEntries = 50

// AuditRecorder keeps an append-only, size-bounded log of mutations,
// independent of the task collection's lifetime.
//
// Append is best-effort: a persistence failure is logged and the in-memory
// entry is kept, so a flaky disk never blocks a user action.
type AuditRecorder struct {
	mu      sync.Mutex
	repo    logs.Repository
	log     logging.Logger
	userID  string
	entries []models.AuditEntry // newest first
}

func NewAuditRecorder(repo logs.Repository, log logging.Logger) *AuditRecorder {
	return &AuditRecorder{repo: repo, log: log}
}

// Load hydrates the in-memory log from the backing store, applying the
// retention bound to whatever was persisted.
func (r *AuditRecorder) Load(ctx context.Context) error {
	entries, err := r.repo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load audit log: %w", err)
	}
	if len(entries) > MaxLogEntries {
		entries = entries[:MaxLogEntries]
	}

	r.mu.Lock()
	r.entries = entries
	r.mu.Unlock()
	return nil
}

// SetUser attaches a user id to subsequently appended entries. Pass an empty
// string in single-user deployments.
func (r *AuditRecorder) SetUser(id string) {
	r.mu.Lock()
	r.userID = id
	r.mu.Unlock()
}

// Append records one mutation. It always succeeds: the entry is stamped,
// prepended, and the log truncated to MaxLogEntries; persistence failures are
// logged, never returned.
func (r *AuditRecorder) Append(ctx context.Context, action models.AuditAction, details string) models.AuditEntry {
	entry := models.NewAuditEntry(action, details)

	r.mu.Lock()
	entry.UserID = r.userID
	r.entries = append([]models.AuditEntry{entry}, r.entries...)
	if len(r.entries) > MaxLogEntries {
		r.entries = r.entries[:MaxLogEntries]
	}
	r.mu.Unlock()

	if err := r.repo.Insert(ctx, entry); err != nil {
		r.log.Error(ctx, "failed to persist audit entry", "action", action, "error", err)
		return entry
	}
	if err := r.repo.Prune(ctx, MaxLogEntries); err != nil {
		r.log.Error(ctx, "failed to prune audit log", "error", err)
	}
	return entry
}

// Clear empties the in-memory log and the backing store.
func (r *AuditRecorder) Clear(ctx context.Context) error {
	if err := r.repo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear audit log: %w", err)
	}

	r.mu.Lock()
	r.entries = nil
	r.mu.Unlock()
	return nil
}

// List returns the retained entries, newest first.
func (r *AuditRecorder) List() []models.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.AuditEntry, len(r.entries))
	copy(out, r.entries)
	return out
}
