package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zerotask/zerotask/internal/common"
	"github.com/zerotask/zerotask/internal/logging"
	"github.com/zerotask/zerotask/internal/server/models"
	"github.com/zerotask/zerotask/internal/server/repositories/repomanager"
)

// MaxAuditEntries bounds each user's server-side audit trail.
const MaxAuditEntries = 50

// TaskService implements the per-user task collection. Every mutation is
// recorded in the user's audit trail, best-effort.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *TaskService {
	return &TaskService{db: db, repomanager: m, log: log}
}

// List returns the user's tasks, newest first.
func (s *TaskService) List(ctx context.Context, userID string) ([]models.Task, error) {
	return s.repomanager.Tasks(s.db).GetAllByUser(ctx, userID)
}

// Create inserts a task. An incoming id and creation time are preserved so
// a client-side import keeps its identities; absent ones are assigned.
func (s *TaskService) Create(ctx context.Context, userID string, in models.Task) (*models.Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", common.ErrValidation)
	}
	if in.Status == "" {
		in.Status = models.StatusPending
	}
	if !models.ValidStatus(in.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", common.ErrValidation, in.Status)
	}
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	if in.CreatedAt == 0 {
		in.CreatedAt = time.Now().UnixMilli()
	}
	in.UserID = userID

	if err := s.repomanager.Tasks(s.db).Create(ctx, &in); err != nil {
		return nil, err
	}
	s.recordAudit(ctx, userID, "CREATE", "Added task: "+in.Title)
	return &in, nil
}

// Update replaces title, description, and status of one task.
func (s *TaskService) Update(ctx context.Context, userID, id, title, description, status string) (*models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", common.ErrValidation)
	}

	repo := s.repomanager.Tasks(s.db)
	task, err := repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	task.Title = title
	task.Description = description
	if status != "" {
		if !models.ValidStatus(status) {
			return nil, fmt.Errorf("%w: unknown status %q", common.ErrValidation, status)
		}
		task.Status = status
	}

	if err := repo.Update(ctx, task); err != nil {
		return nil, err
	}
	s.recordAudit(ctx, userID, "UPDATE", "Updated task: "+task.Title)
	return task, nil
}

// Toggle flips a task between PENDING and COMPLETED.
func (s *TaskService) Toggle(ctx context.Context, userID, id string) (*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)
	task, err := repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	flipped := task.Toggled()
	if err := repo.Update(ctx, &flipped); err != nil {
		return nil, err
	}
	s.recordAudit(ctx, userID, "TOGGLE",
		fmt.Sprintf("Toggled task: %s (%s)", flipped.Title, flipped.Status))
	return &flipped, nil
}

// Delete removes one task; an unknown id fails with ErrNotFound.
func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	repo := s.repomanager.Tasks(s.db)
	task, err := repo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := repo.DeleteByID(ctx, userID, id); err != nil {
		return err
	}
	s.recordAudit(ctx, userID, "DELETE", "Deleted task: "+task.Title)
	return nil
}

// Clear removes every task the user owns.
func (s *TaskService) Clear(ctx context.Context, userID string) error {
	if err := s.repomanager.Tasks(s.db).Clear(ctx, userID); err != nil {
		return err
	}
	s.recordAudit(ctx, userID, "CLEAR", "Cleared all tasks from system")
	return nil
}

// Audit returns the user's audit trail, newest first.
func (s *TaskService) Audit(ctx context.Context, userID string) ([]models.AuditEntry, error) {
	return s.repomanager.Audit(s.db).GetAllByUser(ctx, userID)
}

// recordAudit appends one entry and prunes the trail to MaxAuditEntries.
// Failures are logged, never surfaced: the mutation itself already happened.
func (s *TaskService) recordAudit(ctx context.Context, userID, action, details string) {
	entry := models.AuditEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Action:    action,
		Timestamp: time.Now().UnixMilli(),
		Details:   details,
	}
	repo := s.repomanager.Audit(s.db)
	if err := repo.Insert(ctx, entry); err != nil {
		s.log.Error(ctx, "failed to record audit entry", "action", action, "error", err)
		return
	}
	if err := repo.Prune(ctx, userID, MaxAuditEntries); err != nil {
		s.log.Error(ctx, "failed to prune audit trail", "error", err)
	}
}
