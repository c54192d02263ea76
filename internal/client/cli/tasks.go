package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/zerotask/zerotask/internal/client/models"
	"github.com/zerotask/zerotask/internal/client/view"
)

// getSimpleText, getMultiline and getPasscode are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getMultiline  = GetMultiline
	getPasscode   = GetPasscode
)

func statusMark(t models.Task) string {
	if t.Status == models.StatusCompleted {
		return "[x]"
	}
	return "[ ]"
}

// Add prompts for a title and description and creates a new pending task.
func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getMultiline(a.reader, "Enter description", os.Stdout)
	if err != nil {
		return err
	}

	task, err := a.tasks.Add(ctx, title, description)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn("Added:", task.Title)
	return nil
}

// List prints the visible tasks, newest first, numbered from 1.
func (a *App) List(ctx context.Context) error {
	visible := a.visible()
	if len(visible) == 0 {
		printlnFn("No tasks to show.")
		return nil
	}
	for i, t := range visible {
		printlnFn(fmt.Sprintf("%3d %s %s", i+1, statusMark(t), t.Title))
	}
	return nil
}

// Show prints one task in full.
func (a *App) Show(ctx context.Context, arg string) error {
	task, err := a.taskAt(arg)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	printlnFn(statusMark(task), task.Title)
	if task.Description != "" {
		printlnFn(task.Description)
	}
	printlnFn("Status: ", string(task.Status))
	printlnFn("Created:", time.UnixMilli(task.CreatedAt).Format(time.RFC1123))
	printlnFn("ID:     ", task.ID)
	return nil
}

// Toggle flips a task between pending and completed.
func (a *App) Toggle(ctx context.Context, arg string) error {
	task, err := a.taskAt(arg)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	toggled, err := a.tasks.Toggle(ctx, task.ID)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("%s is now %s", toggled.Title, toggled.Status))
	return nil
}

// Update prompts for a new title and description for an existing task.
func (a *App) Update(ctx context.Context, arg string) error {
	task, err := a.taskAt(arg)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	title, err := getSimpleText(a.reader, fmt.Sprintf("Enter new title (was %q)", task.Title), os.Stdout)
	if err != nil {
		return err
	}
	description, err := getMultiline(a.reader, "Enter new description", os.Stdout)
	if err != nil {
		return err
	}

	updated, err := a.tasks.Update(ctx, task.ID, title, description)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn("Updated:", updated.Title)
	return nil
}

// Delete removes a task.
func (a *App) Delete(ctx context.Context, arg string) error {
	task, err := a.taskAt(arg)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	if err := a.tasks.Remove(ctx, task.ID); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn("Deleted:", task.Title)
	return nil
}

// Move repositions a task within the list. It only operates on the full,
// unfiltered collection: positions in a filtered view would be ambiguous.
func (a *App) Move(ctx context.Context, fromArg, toArg string) error {
	if a.query != "" || a.filter != view.FilterAll {
		printlnFn("Clear the search and filter before moving tasks.")
		return nil
	}

	current := a.tasks.List()
	from, err := parsePosition(fromArg, len(current))
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	to, err := parsePosition(toArg, len(current))
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	moved := current[from]
	reordered := append(current[:from], current[from+1:]...)
	reordered = append(reordered[:to], append([]models.Task{moved}, reordered[to:]...)...)

	if err := a.tasks.Reorder(ctx, reordered); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Moved %q to position %d", moved.Title, to+1))
	return nil
}

func parsePosition(arg string, size int) (int, error) {
	var n int
	if _, err := fmt.Sscanf(arg, "%d", &n); err != nil {
		return 0, fmt.Errorf("not a task number: %q", arg)
	}
	if n < 1 || n > size {
		return 0, fmt.Errorf("no task #%d in the current list", n)
	}
	return n - 1, nil
}

// Clear deletes every task after an explicit confirmation.
func (a *App) Clear(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Delete ALL tasks? Type 'yes' to confirm", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "yes" {
		printlnFn("Aborted.")
		return nil
	}

	if err := a.tasks.ClearAll(ctx); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn("All tasks deleted.")
	return nil
}
