// Package view derives the visible task list from the authoritative
// collection, a free-text query and a status filter. It is pure: no side
// effects, no persistence, identical inputs yield identical output.
package view

import (
	"strings"

	"github.com/zerotask/zerotask/internal/client/models"
)

// StatusFilter narrows the visible list by completion state.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterActive    StatusFilter = "active"    // status != COMPLETED
	FilterCompleted StatusFilter = "completed" // status == COMPLETED
)

// ComputeVisible returns the tasks matching query and filter, preserving the
// relative order of the input. The query is trimmed and matched case-folded
// as a substring of title or description. An unknown filter behaves like
// FilterAll.
func ComputeVisible(tasks []models.Task, query string, filter StatusFilter) []models.Task {
	q := strings.ToLower(strings.TrimSpace(query))

	result := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if q != "" {
			title := strings.ToLower(t.Title)
			desc := strings.ToLower(t.Description)
			if !strings.Contains(title, q) && !strings.Contains(desc, q) {
				continue
			}
		}

		switch filter {
		case FilterActive:
			if t.Status == models.StatusCompleted {
				continue
			}
		case FilterCompleted:
			if t.Status != models.StatusCompleted {
				continue
			}
		}

		result = append(result, t)
	}
	return result
}
