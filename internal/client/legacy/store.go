// Package legacy reads the flat-file store used by early releases: one JSON
// file per collection in the data directory. It exists only as a migration
// source; nothing writes to it anymore.
package legacy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zerotask/zerotask/internal/client/models"
)

// Flat-file names carried over from the first storage layout.
const (
	TasksFile = "zero-task-data"
	LogsFile  = "zero-task-audit-log"
	ThemeFile = "zero-task-theme"
)

// Store reads the legacy flat files under dir. A missing file is treated as
// an empty collection, so a fresh install migrates as a no-op.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Exists reports whether any legacy file is present.
func (s *Store) Exists() bool {
	for _, name := range []string{TasksFile, LogsFile, ThemeFile} {
		if _, err := os.Stat(filepath.Join(s.dir, name)); err == nil {
			return true
		}
	}
	return false
}

// Tasks reads the legacy task collection (JSON array of Task).
func (s *Store) Tasks() ([]models.Task, error) {
	var tasks []models.Task
	if err := s.readJSON(TasksFile, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Logs reads the legacy audit log (JSON array of AuditEntry).
func (s *Store) Logs() ([]models.AuditEntry, error) {
	var logs []models.AuditEntry
	if err := s.readJSON(LogsFile, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// Theme reads the legacy theme preference ("light" or "dark"). Returns an
// empty string when the file is absent.
func (s *Store) Theme() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, ThemeFile))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read legacy theme: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *Store) readJSON(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read legacy file %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse legacy file %s: %w", name, err)
	}
	return nil
}
