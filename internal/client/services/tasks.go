// Package services contains the application services of the ZeroTask client:
// the task store, the audit recorder and local passcode auth. Services own
// their in-memory state and delegate durability to a storage.Backend chosen
// at construction.
package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/zerotask/zerotask/internal/client/models"
	"github.com/zerotask/zerotask/internal/client/storage"
	"github.com/zerotask/zerotask/internal/common"
	"github.com/zerotask/zerotask/internal/logging"
)

// TaskService is the single authoritative owner of the task collection,
// newest first. Every mutation is persist-then-apply: the backend write
// happens before the in-memory sequence changes, so a failed write leaves
// the collection exactly as it was.
//
// Reorder is the one exception to durability: ordering is session-local and
// the backend keeps its own creation-time order.
type TaskService struct {
	mu      sync.Mutex
	backend *storage.Backend
	audit   *AuditRecorder
	log     logging.Logger
	tasks   []models.Task
}

func NewTaskService(backend *storage.Backend, audit *AuditRecorder, log logging.Logger) *TaskService {
	return &TaskService{backend: backend, audit: audit, log: log}
}

// Load hydrates the in-memory collection from the backend.
func (s *TaskService) Load(ctx context.Context) error {
	tasks, err := s.backend.Tasks.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
	return nil
}

// Add validates the title, persists a fresh pending task and prepends it.
func (s *TaskService) Add(ctx context.Context, title, description string) (models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Task{}, fmt.Errorf("%w: title must not be empty", common.ErrValidation)
	}

	task := models.NewTask(title, description)
	if err := s.backend.Tasks.Upsert(ctx, task); err != nil {
		return models.Task{}, fmt.Errorf("failed to persist task: %w", err)
	}

	s.mu.Lock()
	s.tasks = append([]models.Task{task}, s.tasks...)
	s.mu.Unlock()

	s.audit.Append(ctx, models.ActionCreate, "Added task: "+title)
	return task, nil
}

// Toggle flips a task between PENDING and COMPLETED.
func (s *TaskService) Toggle(ctx context.Context, id string) (models.Task, error) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return models.Task{}, fmt.Errorf("%w: task %s", common.ErrNotFound, id)
	}
	flipped := s.tasks[i].Toggled()
	s.mu.Unlock()

	if err := s.backend.Tasks.Upsert(ctx, flipped); err != nil {
		return models.Task{}, fmt.Errorf("failed to persist toggle: %w", err)
	}

	s.mu.Lock()
	// re-resolve the index: an audit append or load cannot have moved it in
	// the single-threaded UI model, but the lock was released for I/O
	if j := s.indexLocked(id); j >= 0 {
		s.tasks[j] = flipped
	}
	s.mu.Unlock()

	s.audit.Append(ctx, models.ActionToggle,
		fmt.Sprintf("Toggled task: %s (%s)", flipped.Title, flipped.Status))
	return flipped, nil
}

// Update replaces title and description; status and creation time are
// untouched.
func (s *TaskService) Update(ctx context.Context, id, title, description string) (models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Task{}, fmt.Errorf("%w: title must not be empty", common.ErrValidation)
	}

	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return models.Task{}, fmt.Errorf("%w: task %s", common.ErrNotFound, id)
	}
	updated := s.tasks[i]
	updated.Title = title
	updated.Description = description
	s.mu.Unlock()

	if err := s.backend.Tasks.Upsert(ctx, updated); err != nil {
		return models.Task{}, fmt.Errorf("failed to persist update: %w", err)
	}

	s.mu.Lock()
	if j := s.indexLocked(id); j >= 0 {
		s.tasks[j] = updated
	}
	s.mu.Unlock()

	s.audit.Append(ctx, models.ActionUpdate, "Updated task: "+title)
	return updated, nil
}

// Remove deletes a task. An unknown id is an error, never a silent no-op.
func (s *TaskService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: task %s", common.ErrNotFound, id)
	}
	title := s.tasks[i].Title
	s.mu.Unlock()

	if err := s.backend.Tasks.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.mu.Lock()
	if j := s.indexLocked(id); j >= 0 {
		s.tasks = append(s.tasks[:j], s.tasks[j+1:]...)
	}
	s.mu.Unlock()

	s.audit.Append(ctx, models.ActionDelete, "Deleted task: "+title)
	return nil
}

// Reorder replaces the in-memory order with newOrder, which must be a
// permutation of the current collection. The new order is session-local:
// backends keep their own creation-time order.
func (s *TaskService) Reorder(ctx context.Context, newOrder []models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(newOrder) != len(s.tasks) {
		return fmt.Errorf("%w: reorder must contain exactly the current tasks", common.ErrValidation)
	}
	current := make(map[string]struct{}, len(s.tasks))
	for _, t := range s.tasks {
		current[t.ID] = struct{}{}
	}
	for _, t := range newOrder {
		if _, ok := current[t.ID]; !ok {
			return fmt.Errorf("%w: unknown task %s in reorder", common.ErrValidation, t.ID)
		}
		delete(current, t.ID)
	}

	s.tasks = make([]models.Task, len(newOrder))
	copy(s.tasks, newOrder)

	s.audit.Append(ctx, models.ActionReorder, "Reordered tasks")
	return nil
}

// ImportAll destructively replaces the collection with the provided list.
func (s *TaskService) ImportAll(ctx context.Context, tasks []models.Task) error {
	for _, t := range tasks {
		if strings.TrimSpace(t.Title) == "" {
			return fmt.Errorf("%w: imported task %s has an empty title", common.ErrValidation, t.ID)
		}
		if t.Status != "" && !t.Status.Valid() {
			return fmt.Errorf("%w: imported task %s has unknown status %q", common.ErrValidation, t.ID, t.Status)
		}
	}

	if err := s.backend.Tasks.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear tasks before import: %w", err)
	}
	for _, t := range tasks {
		if err := s.backend.Tasks.Upsert(ctx, t); err != nil {
			return fmt.Errorf("failed to persist imported task %s: %w", t.ID, err)
		}
	}

	s.mu.Lock()
	s.tasks = make([]models.Task, len(tasks))
	copy(s.tasks, tasks)
	s.mu.Unlock()

	s.audit.Append(ctx, models.ActionImport, fmt.Sprintf("Imported %d tasks from backup", len(tasks)))
	return nil
}

// ClearAll empties the collection and the backing store.
func (s *TaskService) ClearAll(ctx context.Context) error {
	if err := s.backend.Tasks.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}

	s.mu.Lock()
	s.tasks = nil
	s.mu.Unlock()

	s.audit.Append(ctx, models.ActionClear, "Cleared all tasks from system")
	return nil
}

// List returns a copy of the current collection, newest first (or in the
// session-local order after a Reorder).
func (s *TaskService) List() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get returns one task by id.
func (s *TaskService) Get(id string) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.tasks[i], nil
	}
	return models.Task{}, fmt.Errorf("%w: task %s", common.ErrNotFound, id)
}

func (s *TaskService) indexLocked(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
